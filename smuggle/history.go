package smuggle

import (
	"sheriff-lite/goods"
)

// EncounterEvent is one settled encounter. Created once on append,
// never mutated afterward; Seq is assigned by the owning History and
// increases strictly.
type EncounterEvent struct {
	Seq            uint64         `json:"seq"`
	AgentID        uint64         `json:"agent_id"`
	Declared       Declaration    `json:"declared"`
	Actual         goods.GoodList `json:"actual"`
	WasInspected   bool           `json:"was_inspected"`
	WasCaughtLying bool           `json:"was_caught_lying"`
	BribeOffered   int64          `json:"bribe_offered"`
	BribeAccepted  bool           `json:"bribe_accepted"`
	WasProactive   bool           `json:"was_proactive"`
}

// HasBribe reports whether a bribe was on the table in this encounter.
func (e EncounterEvent) HasBribe() bool { return e.BribeOffered > 0 }

// History is the append-only encounter log for one session. It is the
// single source of truth; every view returns copies so callers cannot
// disturb the ordering.
type History struct {
	events  []EncounterEvent
	nextSeq uint64
}

func NewHistory() *History {
	return &History{nextSeq: 1}
}

// Append assigns the next sequence number and stores the event.
// A partially built event must never reach here: the caller settles
// the encounter fully first.
func (h *History) Append(e EncounterEvent) EncounterEvent {
	e.Seq = h.nextSeq
	h.nextSeq++
	h.events = append(h.events, e)
	return e
}

// Len returns the number of recorded encounters.
func (h *History) Len() int { return len(h.events) }

// All returns a copy of the full log, oldest first.
func (h *History) All() []EncounterEvent {
	out := make([]EncounterEvent, len(h.events))
	copy(out, h.events)
	return out
}

// Tail returns a copy of the newest n events, oldest first.
func (h *History) Tail(n int) []EncounterEvent {
	if n <= 0 {
		return nil
	}
	if n > len(h.events) {
		n = len(h.events)
	}
	out := make([]EncounterEvent, n)
	copy(out, h.events[len(h.events)-n:])
	return out
}

// TierTail returns the bounded window a merchant of the given tier may
// observe.
func (h *History) TierTail(t Tier) []EncounterEvent {
	return h.Tail(t.Window())
}

// ForAgent returns every event belonging to one agent, oldest first.
func (h *History) ForAgent(agentID uint64) []EncounterEvent {
	var out []EncounterEvent
	for _, e := range h.events {
		if e.AgentID == agentID {
			out = append(out, e)
		}
	}
	return out
}

// Reset drops every event. Sequence numbering restarts; the store is
// logically a fresh session afterward.
func (h *History) Reset() {
	h.events = nil
	h.nextSeq = 1
}

// Stats are aggregate rates over a set of encounters. Always computed
// fresh from the events, never cached.
type Stats struct {
	Encounters      int     `json:"encounters"`
	InspectionRate  float64 `json:"inspection_rate"`   // inspected / total
	CatchRate       float64 `json:"catch_rate"`        // caught lying / inspected
	BribeAcceptRate float64 `json:"bribe_accept_rate"` // accepted / bribe-bearing
	BribeCount      int     `json:"bribe_count"`
}

// AggregateStats computes rates over an arbitrary window. Empty
// windows yield all-zero stats.
func AggregateStats(events []EncounterEvent) Stats {
	s := Stats{Encounters: len(events)}
	if len(events) == 0 {
		return s
	}
	inspected, caught, accepted := 0, 0, 0
	for _, e := range events {
		if e.WasInspected {
			inspected++
			if e.WasCaughtLying {
				caught++
			}
		}
		if e.HasBribe() {
			s.BribeCount++
			if e.BribeAccepted {
				accepted++
			}
		}
	}
	s.InspectionRate = float64(inspected) / float64(len(events))
	if inspected > 0 {
		s.CatchRate = float64(caught) / float64(inspected)
	}
	if s.BribeCount > 0 {
		s.BribeAcceptRate = float64(accepted) / float64(s.BribeCount)
	}
	return s
}

// Stats computes aggregate rates over the full log.
func (h *History) Stats() Stats {
	return AggregateStats(h.events)
}
