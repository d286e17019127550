package gate

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"sheriff-lite/apps/server/internal/codec"
	"sheriff-lite/apps/server/internal/ledger"
	"sheriff-lite/goods"
	"sheriff-lite/smuggle"
	"sheriff-lite/smuggle/npc"
	"sheriff-lite/smuggle/sheriff"
)

// Gate is one checkpoint with an actor model: every mutation flows
// through the event channel, the run loop owns all state.
type Gate struct {
	ID     string
	Config GateConfig

	mu      sync.RWMutex
	session *smuggle.Session
	cp      *smuggle.Checkpoint

	players   map[uint64]*PlayerConn     // userID -> player merchant
	hands     map[uint64]goods.GoodList  // dealt goods per player
	declarers map[uint64]*playerDeclarer // player offer injection
	npcIDs    []uint64

	closed   bool
	stopOnce sync.Once

	events chan Event
	done   chan struct{}

	serverSeq  uint64
	emptySince time.Time

	broadcast func(userID uint64, data []byte)
	ledger    ledger.Service
	dayID     string
	dayTape   []ledger.EventItem

	npcManager *npc.Manager

	// Optional callbacks invoked after each encounter settles.
	settleHooks []SettleHook
}

// GateConfig contains checkpoint settings.
type GateConfig struct {
	MaxMerchants int
	MaxBundle    int
	StartingGold int64
	Authority    int
	SheriffBrain string
	NPCCount     int
	Seed         int64
}

// PlayerConn represents a connected player acting as a merchant.
type PlayerConn struct {
	UserID   uint64
	Nickname string
	Online   bool
	LastSeen time.Time
}

// Event types for the actor message queue.
type EventType int

const (
	EventJoinGate EventType = iota
	EventOffer
	EventStepDay
	EventLeave
	EventConnLost
	EventConnResume
	EventClose
)

// Event represents a message to the gate actor.
type Event struct {
	Type     EventType
	UserID   uint64
	Nickname string
	Offer    *codec.OfferRequest
	Response chan error
}

// SettleInfo is emitted when an encounter settlement is finalized.
type SettleInfo struct {
	GateID     string
	Settlement smuggle.Settlement
}

// SettleHook is a post-settlement callback.
type SettleHook func(info SettleInfo)

var (
	ErrGateClosed    = errors.New("gate closed")
	ErrNotJoined     = errors.New("not at this gate")
	ErrAlreadySeated = errors.New("already at this gate")
)

const (
	emptyGateTTL  = 60 * time.Second
	maxGateEvents = 256
)

// New creates a gate, spins up its NPC merchants, and starts the
// actor goroutine. Returns nil when the engine cannot be built.
func New(
	id string,
	cfg GateConfig,
	broadcastFn func(userID uint64, data []byte),
	ledgerService ledger.Service,
	npcMgr ...*npc.Manager,
) *Gate {
	g := &Gate{
		ID:         id,
		Config:     cfg,
		players:    make(map[uint64]*PlayerConn),
		hands:      make(map[uint64]goods.GoodList),
		declarers:  make(map[uint64]*playerDeclarer),
		events:     make(chan Event, maxGateEvents),
		done:       make(chan struct{}),
		broadcast:  broadcastFn,
		ledger:     ledgerService,
		emptySince: time.Now(),
		dayID:      fmt.Sprintf("%s_day", id),
	}
	if len(npcMgr) > 0 && npcMgr[0] != nil {
		g.npcManager = npcMgr[0]
	}

	session, err := smuggle.NewSession(smuggle.Config{
		MaxMerchants: cfg.MaxMerchants,
		MaxBundle:    cfg.MaxBundle,
		StartingGold: cfg.StartingGold,
		Authority:    float64(cfg.Authority),
		Seed:         cfg.Seed,
	})
	if err != nil {
		log.Printf("[Gate %s] Failed to create session: %v", id, err)
		return nil
	}
	g.session = session

	brainName := cfg.SheriffBrain
	if brainName == "" {
		brainName = "bayes"
	}
	brain, err := sheriff.New(brainName, rand.New(rand.NewSource(session.Rand().Int63())))
	if err != nil {
		log.Printf("[Gate %s] Failed to create sheriff brain: %v", id, err)
		session.Close()
		return nil
	}
	g.cp = smuggle.NewCheckpoint(session, brain)

	if g.npcManager != nil {
		g.spawnNPCs(cfg.NPCCount)
	}

	go g.run()

	log.Printf("[Gate %s] Created (authority=%d, bundle=%d, sheriff=%s, npcs=%d)",
		id, cfg.Authority, cfg.MaxBundle, brain.Name(), len(g.npcIDs))
	return g
}

func (g *Gate) spawnNPCs(n int) {
	personas := g.npcManager.Registry().All()
	if n > len(personas) {
		n = len(personas)
	}
	for i := 0; i < n; i++ {
		inst, err := g.npcManager.Spawn(g.cp, personas[i])
		if err != nil {
			log.Printf("[Gate %s] NPC spawn failed: %v", g.ID, err)
			continue
		}
		g.npcIDs = append(g.npcIDs, inst.AgentID)
	}
}

// SubmitEvent queues an event for the actor. Blocks until handled when
// the event carries a response channel.
func (g *Gate) SubmitEvent(e Event) error {
	if e.Response == nil {
		e.Response = make(chan error, 1)
	}
	select {
	case g.events <- e:
	case <-g.done:
		return ErrGateClosed
	}
	select {
	case err := <-e.Response:
		return err
	case <-g.done:
		return ErrGateClosed
	}
}

// run is the main actor loop.
func (g *Gate) run() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case event := <-g.events:
			err := g.handleEvent(event)
			if event.Response != nil {
				event.Response <- err
			}
		case <-ticker.C:
			g.tick()
		case <-g.done:
			log.Printf("[Gate %s] Actor stopped", g.ID)
			return
		}
	}
}

func (g *Gate) handleEvent(e Event) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed && e.Type != EventClose {
		return ErrGateClosed
	}

	switch e.Type {
	case EventJoinGate:
		return g.handleJoin(e.UserID, e.Nickname)
	case EventOffer:
		return g.handleOffer(e.UserID, e.Offer)
	case EventStepDay:
		return g.handleStepDay()
	case EventLeave:
		return g.handleLeave(e.UserID)
	case EventConnLost:
		return g.handleConnLost(e.UserID)
	case EventConnResume:
		return g.handleConnResume(e.UserID)
	case EventClose:
		g.closeLocked()
		return nil
	default:
		return fmt.Errorf("unknown event type %d", e.Type)
	}
}

// tick reclaims gates that have sat empty too long.
func (g *Gate) tick() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return
	}
	if len(g.players) == 0 && time.Since(g.emptySince) > emptyGateTTL {
		log.Printf("[Gate %s] Empty for %s, closing", g.ID, emptyGateTTL)
		g.closeLocked()
	}
}

func (g *Gate) handleJoin(userID uint64, nickname string) error {
	if _, exists := g.players[userID]; exists {
		return ErrAlreadySeated
	}
	if nickname == "" {
		nickname = fmt.Sprintf("Merchant_%d", userID)
	}

	pd := &playerDeclarer{name: nickname}
	if err := g.cp.AddMerchant(&smuggle.Merchant{
		ID:          userID,
		Name:        nickname,
		Tier:        smuggle.Tier0,
		Personality: smuggle.PersonalityProfile{RiskTolerance: 5, Greed: 5, HonestyBias: 5},
		Brain:       pd,
	}); err != nil {
		return err
	}

	g.players[userID] = &PlayerConn{
		UserID:   userID,
		Nickname: nickname,
		Online:   true,
		LastSeen: time.Now(),
	}
	g.declarers[userID] = pd

	g.dealTo(userID)
	g.broadcastSnapshot()
	log.Printf("[Gate %s] User %d joined as %s", g.ID, userID, nickname)
	return nil
}

// dealTo draws a fresh hand for a player and sends it privately.
func (g *Gate) dealTo(userID uint64) {
	hand := g.session.Deck().DrawHand()
	g.hands[userID] = hand
	g.sendTo(userID, codec.ServerEnvelope{
		Type:     "dealHand",
		DealHand: codec.HandToDeal(userID, hand),
	})
}

func (g *Gate) handleOffer(userID uint64, req *codec.OfferRequest) error {
	p := g.players[userID]
	if p == nil {
		return ErrNotJoined
	}
	if req == nil {
		return fmt.Errorf("empty offer")
	}
	hand := g.hands[userID]

	offer, err := buildOffer(req, hand, g.Config.MaxBundle)
	if err != nil {
		return err
	}
	g.declarers[userID].queue(offer)

	result, err := g.cp.RunEncounter(userID)
	if err != nil {
		return err
	}
	g.settleAndBroadcast(p.Nickname, smuggle.Tier0, result)

	// The cart is gone either way; deal the next load.
	g.dealTo(userID)
	return nil
}

// handleStepDay runs one visit for every NPC merchant.
func (g *Gate) handleStepDay() error {
	if len(g.npcIDs) == 0 {
		return fmt.Errorf("no merchants on the road")
	}
	for _, agentID := range g.npcIDs {
		m := g.cp.Merchant(agentID)
		if m == nil {
			continue
		}
		result, err := g.cp.RunEncounter(agentID)
		if err != nil {
			log.Printf("[Gate %s] NPC %d encounter failed: %v", g.ID, agentID, err)
			continue
		}
		g.settleAndBroadcast(m.Name, m.Tier, result)
	}
	return nil
}

func (g *Gate) settleAndBroadcast(name string, tier smuggle.Tier, result *smuggle.Settlement) {
	g.broadcastAll(codec.ServerEnvelope{
		Type: "arrival",
		Arrival: &codec.Arrival{
			AgentID: result.AgentID,
			Name:    name,
			Tier:    tier.String(),
		},
	})
	view := codec.SettlementToView(result)
	g.broadcastAll(codec.ServerEnvelope{Type: "settlement", Settlement: view})
	g.broadcastSnapshot()

	g.recordSettlement(result)
	for _, hook := range g.settleHooks {
		hook(SettleInfo{GateID: g.ID, Settlement: *result})
	}
}

// recordSettlement appends the encounter to the ledger stream and the
// per-day tape used for history upserts.
func (g *Gate) recordSettlement(result *smuggle.Settlement) {
	if g.ledger == nil {
		return
	}
	item := ledger.EncounterToEventItem(result)
	g.ledger.AppendGateEvent(g.dayID, item)
	g.dayTape = append(g.dayTape, item)

	summary := map[string]any{
		"gate_id":      g.ID,
		"encounters":   g.session.History().Len(),
		"sheriff_gold": g.cp.SheriffGold(),
	}
	for userID := range g.players {
		g.ledger.UpsertDayHistory(userID, g.dayID, time.Now().UTC(), summary, g.dayTape)
	}
}

func (g *Gate) handleLeave(userID uint64) error {
	if g.players[userID] == nil {
		return ErrNotJoined
	}
	delete(g.players, userID)
	delete(g.hands, userID)
	delete(g.declarers, userID)
	if len(g.players) == 0 {
		g.emptySince = time.Now()
	}
	g.broadcastSnapshot()
	log.Printf("[Gate %s] User %d left", g.ID, userID)
	return nil
}

func (g *Gate) handleConnLost(userID uint64) error {
	if p := g.players[userID]; p != nil {
		p.Online = false
		p.LastSeen = time.Now()
	}
	return nil
}

func (g *Gate) handleConnResume(userID uint64) error {
	p := g.players[userID]
	if p == nil {
		return ErrNotJoined
	}
	p.Online = true
	p.LastSeen = time.Now()
	// Resync: snapshot plus the standing hand.
	g.sendSnapshotTo(userID)
	if hand, ok := g.hands[userID]; ok {
		g.sendTo(userID, codec.ServerEnvelope{
			Type:     "dealHand",
			DealHand: codec.HandToDeal(userID, hand),
		})
	}
	return nil
}

func (g *Gate) closeLocked() {
	if g.closed {
		return
	}
	g.closed = true
	g.session.Close()
	g.stopOnce.Do(func() { close(g.done) })
}

// Close shuts the gate down.
func (g *Gate) Close() {
	g.SubmitEvent(Event{Type: EventClose})
}

// Snapshot returns the current checkpoint state.
func (g *Gate) Snapshot() smuggle.Snapshot {
	return g.cp.Snapshot()
}

// PlayerCount returns how many humans are at the gate.
func (g *Gate) PlayerCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.players)
}

// Closed reports whether the gate has shut down.
func (g *Gate) Closed() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.closed
}

// AddSettleHook registers a post-settlement callback.
func (g *Gate) AddSettleHook(hook SettleHook) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.settleHooks = append(g.settleHooks, hook)
}

func (g *Gate) broadcastSnapshot() {
	snap := g.cp.Snapshot()
	g.broadcastAll(codec.ServerEnvelope{Type: "snapshot", Snapshot: &snap})
}

func (g *Gate) sendSnapshotTo(userID uint64) {
	snap := g.cp.Snapshot()
	g.sendTo(userID, codec.ServerEnvelope{Type: "snapshot", Snapshot: &snap})
}

func (g *Gate) broadcastAll(env codec.ServerEnvelope) {
	g.serverSeq++
	data := codec.Wrap(g.ID, g.serverSeq, env)
	for userID, p := range g.players {
		if p.Online {
			g.broadcast(userID, data)
		}
	}
}

func (g *Gate) sendTo(userID uint64, env codec.ServerEnvelope) {
	g.serverSeq++
	g.broadcast(userID, codec.Wrap(g.ID, g.serverSeq, env))
}
