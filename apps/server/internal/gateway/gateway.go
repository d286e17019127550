package gateway

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"sheriff-lite/apps/server/internal/auth"
	"sheriff-lite/apps/server/internal/codec"
	"sheriff-lite/apps/server/internal/gate"
	"sheriff-lite/apps/server/internal/lobby"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // TODO: Restrict in production
	},
}

// Connection represents a WebSocket client connection.
type Connection struct {
	ID       string
	UserID   uint64
	Nickname string
	Conn     *websocket.Conn
	Send     chan []byte
	Gateway  *Gateway
	LastPing time.Time

	// Current gate association
	GateID string
	Gate   *gate.Gate
}

// Gateway manages WebSocket connections.
type Gateway struct {
	mu          sync.RWMutex
	connections map[string]*Connection
	userConns   map[uint64]*Connection // userID -> connection
	nextConnID  uint64
	errSeq      uint64
	lobby       *lobby.Lobby
	auth        auth.Service
}

// New creates a new Gateway instance.
func New(lby *lobby.Lobby, authService auth.Service) *Gateway {
	return &Gateway{
		connections: make(map[string]*Connection),
		userConns:   make(map[uint64]*Connection),
		lobby:       lby,
		auth:        authService,
	}
}

// HandleWebSocket handles WebSocket upgrade and connection.
func (g *Gateway) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Gateway] Upgrade error: %v", err)
		return
	}

	g.mu.Lock()
	g.nextConnID++
	connID := fmt.Sprintf("conn_%d", g.nextConnID)

	c := &Connection{
		ID:       connID,
		Conn:     conn,
		Send:     make(chan []byte, 256),
		Gateway:  g,
		LastPing: time.Now(),
	}
	g.connections[connID] = c
	g.mu.Unlock()

	log.Printf("[Gateway] Client connected: %s, total: %d", connID, len(g.connections))

	go c.readPump()
	go c.writePump()
}

func (c *Connection) readPump() {
	defer func() {
		c.Gateway.removeConnection(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(65536)
	c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		c.LastPing = time.Now()
		return nil
	})

	for {
		messageType, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[Gateway] Read error: %v", err)
			}
			break
		}

		if messageType == websocket.TextMessage {
			c.handleMessage(message)
		}
	}
}

func (c *Connection) handleMessage(data []byte) {
	var env codec.ClientEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		log.Printf("[Gateway] Failed to unmarshal: %v", err)
		c.sendError(1, "invalid message format")
		return
	}

	log.Printf("[Gateway] Received from %s: type=%s gate=%s", c.ID, env.Type, env.GateID)

	switch env.Type {
	case "join":
		c.handleJoin(env.Join)
	case "offer":
		c.handleOffer(env.Offer)
	case "stepDay":
		c.handleStepDay()
	case "leave":
		c.handleLeave()
	default:
		log.Printf("[Gateway] Unknown message type: %q", env.Type)
	}
}

// handleJoin authenticates the connection and quick-starts a gate. A
// valid session token reuses its account; anyone else gets a guest one.
func (c *Connection) handleJoin(req *codec.JoinRequest) {
	if req == nil {
		c.sendError(2, "missing join payload")
		return
	}

	userID, username, ok := uint64(0), "", false
	if req.Token != "" {
		userID, username, ok = c.Gateway.auth.ResolveSession(req.Token)
	}
	if !ok {
		var err error
		userID, _, err = c.Gateway.auth.GuestLogin()
		if err != nil {
			c.sendError(2, "guest login failed")
			return
		}
	}
	nickname := req.Name
	if nickname == "" {
		nickname = username
	}

	c.Gateway.bindUser(c, userID)
	c.UserID = userID
	c.Nickname = nickname

	// A reconnecting player already has a seat; resume instead of joining.
	if g := c.Gateway.lobby.GetGate(c.GateID); g != nil && c.Gate != nil {
		if err := g.SubmitEvent(gate.Event{Type: gate.EventConnResume, UserID: userID}); err == nil {
			return
		}
	}

	g, err := c.Gateway.lobby.QuickStart(userID, c.Gateway.broadcastToUser)
	if err != nil {
		c.sendError(2, err.Error())
		return
	}

	c.GateID = g.ID
	c.Gate = g

	if err := g.SubmitEvent(gate.Event{
		Type:     gate.EventJoinGate,
		UserID:   userID,
		Nickname: nickname,
	}); err != nil {
		c.sendError(2, err.Error())
		return
	}

	log.Printf("[Gateway] User %d joined gate %s", userID, g.ID)
}

func (c *Connection) handleOffer(req *codec.OfferRequest) {
	if c.Gate == nil {
		c.sendError(3, "not at a gate")
		return
	}
	if req == nil {
		c.sendError(4, "missing offer payload")
		return
	}

	err := c.Gate.SubmitEvent(gate.Event{
		Type:   gate.EventOffer,
		UserID: c.UserID,
		Offer:  req,
	})
	if err != nil {
		c.sendError(4, err.Error())
	}
}

func (c *Connection) handleStepDay() {
	if c.Gate == nil {
		c.sendError(3, "not at a gate")
		return
	}

	err := c.Gate.SubmitEvent(gate.Event{
		Type:   gate.EventStepDay,
		UserID: c.UserID,
	})
	if err != nil {
		c.sendError(5, err.Error())
	}
}

func (c *Connection) handleLeave() {
	if c.Gate == nil {
		return
	}

	c.Gate.SubmitEvent(gate.Event{
		Type:   gate.EventLeave,
		UserID: c.UserID,
	})
	c.GateID = ""
	c.Gate = nil
}

func (c *Connection) sendError(code int32, msg string) {
	data := codec.Wrap(c.GateID, atomic.AddUint64(&c.Gateway.errSeq, 1), codec.ServerEnvelope{
		Type: "error",
		Error: &codec.ErrorResponse{
			Code:    code,
			Message: msg,
		},
	})
	select {
	case c.Send <- data:
	default:
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (g *Gateway) bindUser(c *Connection, userID uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if old := g.userConns[userID]; old != nil && old != c {
		// A newer connection supersedes the old one.
		old.UserID = 0
	}
	g.userConns[userID] = c
}

func (g *Gateway) removeConnection(c *Connection) {
	g.mu.Lock()
	if g.userConns[c.UserID] == c {
		delete(g.userConns, c.UserID)
	}
	delete(g.connections, c.ID)
	total := len(g.connections)
	g.mu.Unlock()

	// Mark the seat offline; the gate keeps it for a possible resume.
	if c.Gate != nil && c.UserID != 0 {
		c.Gate.SubmitEvent(gate.Event{
			Type:   gate.EventConnLost,
			UserID: c.UserID,
		})
	}
	log.Printf("[Gateway] Client disconnected: %s, total: %d", c.ID, total)
}

// broadcastToUser sends a message to a specific user.
func (g *Gateway) broadcastToUser(userID uint64, data []byte) {
	g.mu.RLock()
	c := g.userConns[userID]
	g.mu.RUnlock()

	if c != nil {
		select {
		case c.Send <- data:
		default:
			// Drop if buffer full
		}
	}
}

// Broadcast sends a message to all connections.
func (g *Gateway) Broadcast(message []byte) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, c := range g.connections {
		select {
		case c.Send <- message:
		default:
			// Drop message if buffer full
		}
	}
}
