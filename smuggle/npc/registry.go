package npc

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"sheriff-lite/smuggle"
)

// PersonaRegistry holds all merchant persona definitions.
type PersonaRegistry struct {
	mu       sync.RWMutex
	personas map[string]*MerchantPersona
}

// NewRegistry creates an empty registry.
func NewRegistry() *PersonaRegistry {
	return &PersonaRegistry{
		personas: make(map[string]*MerchantPersona),
	}
}

// LoadFromFile loads merchant personas from a JSON file.
func (r *PersonaRegistry) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read personas file: %w", err)
	}
	return r.LoadFromJSON(data)
}

// LoadFromJSON loads merchant personas from raw JSON bytes.
func (r *PersonaRegistry) LoadFromJSON(data []byte) error {
	var list []*MerchantPersona
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("parse personas JSON: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range list {
		if p.ID == "" {
			continue
		}
		if !validProfile(p.Profile) {
			return fmt.Errorf("persona %q: personality scalars must be in [0,10]", p.ID)
		}
		r.personas[p.ID] = p
	}
	return nil
}

func validProfile(p smuggle.PersonalityProfile) bool {
	for _, v := range []float64{p.RiskTolerance, p.Greed, p.HonestyBias} {
		if v < 0 || v > 10 {
			return false
		}
	}
	return true
}

// Get returns a persona by ID.
func (r *PersonaRegistry) Get(id string) *MerchantPersona {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.personas[id]
}

// All returns a snapshot of all personas.
func (r *PersonaRegistry) All() []*MerchantPersona {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*MerchantPersona, 0, len(r.personas))
	for _, p := range r.personas {
		out = append(out, p)
	}
	return out
}

// ByTier returns all personas of the given tier.
func (r *PersonaRegistry) ByTier(tier smuggle.Tier) []*MerchantPersona {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*MerchantPersona
	for _, p := range r.personas {
		if p.Tier == tier {
			out = append(out, p)
		}
	}
	return out
}

// Count returns the total number of registered personas.
func (r *PersonaRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.personas)
}
