package lobby

import (
	"fmt"
	"log"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"sheriff-lite/apps/server/internal/gate"
	"sheriff-lite/apps/server/internal/ledger"
	"sheriff-lite/smuggle/npc"
)

const closedGateCacheSize = 64

// GateSummary captures the final state of a closed gate for the lobby list.
type GateSummary struct {
	GateID      string    `json:"gate_id"`
	Encounters  int       `json:"encounters"`
	SheriffGold int64     `json:"sheriff_gold"`
	SheriffName string    `json:"sheriff_name"`
	ClosedAt    time.Time `json:"closed_at"`
}

// Lobby manages the open gates and keeps a small cache of closed ones.
type Lobby struct {
	mu     sync.RWMutex
	gates  map[string]*gate.Gate
	nextID uint64

	defaultConfig gate.GateConfig
	ledger        ledger.Service
	npcManager    *npc.Manager

	closedGates *lru.Cache[string, GateSummary]
}

// New creates a lobby. ledgerService may be a noop service; npcManager
// supplies merchant personas for every gate it opens.
func New(ledgerService ledger.Service, npcManager *npc.Manager) *Lobby {
	cache, err := lru.New[string, GateSummary](closedGateCacheSize)
	if err != nil {
		// Only reachable with a non-positive size constant.
		panic(err)
	}
	return &Lobby{
		gates: make(map[string]*gate.Gate),
		defaultConfig: gate.GateConfig{
			MaxMerchants: 8,
			MaxBundle:    5,
			StartingGold: 50,
			Authority:    5,
			SheriffBrain: "bayes",
			NPCCount:     3,
		},
		ledger:      ledgerService,
		npcManager:  npcManager,
		closedGates: cache,
	}
}

// QuickStart finds or creates a gate for the player.
func (l *Lobby) QuickStart(userID uint64, broadcastFn func(userID uint64, data []byte)) (*gate.Gate, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.reapClosedLocked()

	// NPCs take seats too, so leave room for a couple of humans per gate.
	for _, g := range l.gates {
		if g.Closed() {
			continue
		}
		if g.PlayerCount()+g.Config.NPCCount < g.Config.MaxMerchants {
			log.Printf("[Lobby] QuickStart: user %d joining existing gate %s", userID, g.ID)
			return g, nil
		}
	}

	l.nextID++
	gateID := fmt.Sprintf("gate_%d", l.nextID)
	g := gate.New(gateID, l.defaultConfig, broadcastFn, l.ledger, l.npcManager)
	if g == nil {
		return nil, fmt.Errorf("failed to create gate")
	}
	l.gates[gateID] = g

	log.Printf("[Lobby] QuickStart: user %d opened new gate %s", userID, gateID)
	return g, nil
}

// GetGate returns a gate by ID, or nil if unknown or already closed.
func (l *Lobby) GetGate(gateID string) *gate.Gate {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reapClosedLocked()
	return l.gates[gateID]
}

// ListGates returns all open gate IDs.
func (l *Lobby) ListGates() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reapClosedLocked()
	ids := make([]string, 0, len(l.gates))
	for id := range l.gates {
		ids = append(ids, id)
	}
	return ids
}

// RecentlyClosed returns cached summaries of closed gates, newest last.
func (l *Lobby) RecentlyClosed() []GateSummary {
	l.mu.RLock()
	defer l.mu.RUnlock()
	summaries := make([]GateSummary, 0, l.closedGates.Len())
	for _, key := range l.closedGates.Keys() {
		if summary, ok := l.closedGates.Peek(key); ok {
			summaries = append(summaries, summary)
		}
	}
	return summaries
}

// reapClosedLocked moves gates that shut themselves down (empty-gate TTL
// or explicit close) out of the live map and into the summary cache.
func (l *Lobby) reapClosedLocked() {
	for id, g := range l.gates {
		if !g.Closed() {
			continue
		}
		snap := g.Snapshot()
		l.closedGates.Add(id, GateSummary{
			GateID:      id,
			Encounters:  snap.Encounters,
			SheriffGold: snap.SheriffGold,
			SheriffName: snap.SheriffName,
			ClosedAt:    time.Now().UTC(),
		})
		delete(l.gates, id)
		log.Printf("[Lobby] Gate %s reaped (%d encounters)", id, snap.Encounters)
	}
}
