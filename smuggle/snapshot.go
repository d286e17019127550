package smuggle

import "sort"

type MerchantSnapshot struct {
	ID          uint64             `json:"id"`
	Name        string             `json:"name"`
	Tier        Tier               `json:"tier"`
	Gold        int64              `json:"gold"`
	Personality PersonalityProfile `json:"personality"`
}

type Snapshot struct {
	SessionID   string             `json:"session_id"`
	Round       uint16             `json:"round"`
	SheriffGold int64              `json:"sheriff_gold"`
	SheriffName string             `json:"sheriff_name"`
	Encounters  int                `json:"encounters"`
	Stats       Stats              `json:"stats"`
	Merchants   []MerchantSnapshot `json:"merchants"`

	LastSettlement *Settlement `json:"last_settlement,omitempty"`
}

func (c *Checkpoint) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		SessionID:   c.session.ID,
		Round:       c.round,
		SheriffGold: c.sheriffGold,
		SheriffName: c.sheriff.Name(),
		Encounters:  c.session.history.Len(),
		Stats:       c.session.history.Stats(),
	}
	if c.lastResult != nil {
		last := *c.lastResult
		s.LastSettlement = &last
	}

	for _, m := range c.merchants {
		s.Merchants = append(s.Merchants, MerchantSnapshot{
			ID:          m.ID,
			Name:        m.Name,
			Tier:        m.Tier,
			Gold:        m.gold,
			Personality: m.Personality,
		})
	}
	sort.Slice(s.Merchants, func(i, j int) bool { return s.Merchants[i].ID < s.Merchants[j].ID })

	return s
}
