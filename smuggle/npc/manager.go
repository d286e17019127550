package npc

import (
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"sheriff-lite/smuggle"
)

// MerchantInstance represents an active merchant at a checkpoint.
type MerchantInstance struct {
	AgentID uint64
	Persona *MerchantPersona
	Brain   *StrategyBrain
}

// Manager manages merchant NPC lifecycle at checkpoints.
type Manager struct {
	registry  *PersonaRegistry
	instances map[uint64]*MerchantInstance
	mu        sync.RWMutex
	rng       *rand.Rand
	nextID    uint64
}

// NewManager creates a merchant manager with the given persona
// registry.
func NewManager(registry *PersonaRegistry) *Manager {
	return &Manager{
		registry:  registry,
		instances: make(map[uint64]*MerchantInstance),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		nextID:    9_000_000, // NPC IDs start high to avoid real-user collisions
	}
}

// Registry returns the underlying PersonaRegistry.
func (m *Manager) Registry() *PersonaRegistry {
	return m.registry
}

// Spawn creates a merchant from a persona and registers it at the
// checkpoint.
func (m *Manager) Spawn(cp *smuggle.Checkpoint, persona *MerchantPersona) (*MerchantInstance, error) {
	m.mu.Lock()
	m.nextID++
	agentID := m.nextID
	seed := m.rng.Int63()
	m.mu.Unlock()

	brain := NewStrategyBrain(persona, seed)
	if err := cp.AddMerchant(&smuggle.Merchant{
		ID:          agentID,
		Name:        persona.Name,
		Tier:        persona.Tier,
		Personality: persona.Profile,
		Brain:       brain,
	}); err != nil {
		return nil, fmt.Errorf("spawn merchant %s: %w", persona.Name, err)
	}

	inst := &MerchantInstance{
		AgentID: agentID,
		Persona: persona,
		Brain:   brain,
	}
	m.mu.Lock()
	m.instances[agentID] = inst
	m.mu.Unlock()

	log.Printf("[NPC] Spawned %s (ID=%d, tier=%s)", persona.Name, agentID, persona.Tier)
	return inst, nil
}

// Get returns the merchant instance for an agent ID, or nil.
func (m *Manager) Get(agentID uint64) *MerchantInstance {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.instances[agentID]
}

// IsNPC checks whether an agent ID belongs to a spawned merchant.
func (m *Manager) IsNPC(agentID uint64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.instances[agentID] != nil
}

// Despawn removes a merchant from tracking.
func (m *Manager) Despawn(agentID uint64) {
	m.mu.Lock()
	inst := m.instances[agentID]
	delete(m.instances, agentID)
	m.mu.Unlock()

	if inst != nil {
		log.Printf("[NPC] Despawned %s (ID=%d)", inst.Persona.Name, agentID)
	}
}
