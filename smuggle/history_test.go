package smuggle

import (
	"testing"

	"sheriff-lite/goods"
)

func TestHistoryAppendAssignsMonotonicSeq(t *testing.T) {
	h := NewHistory()
	for i := 0; i < 5; i++ {
		e := h.Append(EncounterEvent{AgentID: 1})
		if e.Seq != uint64(i+1) {
			t.Fatalf("seq: got %d, want %d", e.Seq, i+1)
		}
	}
	all := h.All()
	for i := 1; i < len(all); i++ {
		if all[i].Seq <= all[i-1].Seq {
			t.Fatalf("ordering broken at %d: %d then %d", i, all[i-1].Seq, all[i].Seq)
		}
	}
}

func TestHistoryViewsAreCopies(t *testing.T) {
	h := NewHistory()
	h.Append(EncounterEvent{AgentID: 1, BribeOffered: 10})

	view := h.All()
	view[0].BribeOffered = 999

	if got := h.All()[0].BribeOffered; got != 10 {
		t.Fatalf("store mutated through view: got %d, want 10", got)
	}
}

func TestHistoryTailBounds(t *testing.T) {
	h := NewHistory()
	for i := 0; i < 12; i++ {
		h.Append(EncounterEvent{AgentID: uint64(i + 1)})
	}

	tail := h.Tail(5)
	if len(tail) != 5 {
		t.Fatalf("tail length: got %d, want 5", len(tail))
	}
	if tail[0].Seq != 8 || tail[4].Seq != 12 {
		t.Fatalf("tail window wrong: first=%d last=%d", tail[0].Seq, tail[4].Seq)
	}

	if got := len(h.Tail(100)); got != 12 {
		t.Fatalf("oversized tail: got %d, want 12", got)
	}
	if h.Tail(0) != nil {
		t.Fatalf("zero tail should be nil")
	}

	if got := len(h.TierTail(Tier0)); got != Tier0.Window() {
		t.Fatalf("tier0 tail: got %d, want %d", got, Tier0.Window())
	}
}

func TestHistoryForAgent(t *testing.T) {
	h := NewHistory()
	h.Append(EncounterEvent{AgentID: 1})
	h.Append(EncounterEvent{AgentID: 2})
	h.Append(EncounterEvent{AgentID: 1})

	mine := h.ForAgent(1)
	if len(mine) != 2 {
		t.Fatalf("agent view: got %d events, want 2", len(mine))
	}
	for _, e := range mine {
		if e.AgentID != 1 {
			t.Fatalf("foreign event in agent view: %+v", e)
		}
	}
}

func TestHistoryResetRestartsSequence(t *testing.T) {
	h := NewHistory()
	h.Append(EncounterEvent{AgentID: 1})
	h.Append(EncounterEvent{AgentID: 1})
	h.Reset()

	if h.Len() != 0 {
		t.Fatalf("reset left %d events", h.Len())
	}
	if e := h.Append(EncounterEvent{AgentID: 1}); e.Seq != 1 {
		t.Fatalf("seq after reset: got %d, want 1", e.Seq)
	}
}

func TestAggregateStatsComputedFresh(t *testing.T) {
	h := NewHistory()
	h.Append(EncounterEvent{AgentID: 1, WasInspected: true, WasCaughtLying: true})
	h.Append(EncounterEvent{AgentID: 1, WasInspected: true})
	h.Append(EncounterEvent{AgentID: 1, BribeOffered: 5, BribeAccepted: true})
	h.Append(EncounterEvent{AgentID: 1, BribeOffered: 5})

	s := h.Stats()
	if s.Encounters != 4 {
		t.Fatalf("encounters: got %d", s.Encounters)
	}
	if s.InspectionRate != 0.5 {
		t.Fatalf("inspection rate: got %v, want 0.5", s.InspectionRate)
	}
	if s.CatchRate != 0.5 {
		t.Fatalf("catch rate: got %v, want 0.5", s.CatchRate)
	}
	if s.BribeAcceptRate != 0.5 {
		t.Fatalf("bribe accept rate: got %v, want 0.5", s.BribeAcceptRate)
	}

	// Stats must track the log, not a cache.
	h.Append(EncounterEvent{AgentID: 1, WasInspected: true})
	if got := h.Stats().InspectionRate; got != 0.6 {
		t.Fatalf("stale stats after append: got %v, want 0.6", got)
	}

	if s := AggregateStats(nil); s.InspectionRate != 0 || s.CatchRate != 0 || s.BribeAcceptRate != 0 {
		t.Fatalf("empty window should be all zero: %+v", s)
	}
}

func TestSessionIsolation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 1
	a, err := NewSession(cfg)
	if err != nil {
		t.Fatalf("session a: %v", err)
	}
	b, err := NewSession(cfg)
	if err != nil {
		t.Fatalf("session b: %v", err)
	}

	a.History().Append(EncounterEvent{AgentID: 1, Actual: goods.GoodList{goods.GoodSilk}})
	if b.History().Len() != 0 {
		t.Fatalf("sessions share history")
	}

	if err := a.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if a.History().Len() != 0 {
		t.Fatalf("reset did not clear history")
	}

	a.Close()
	if err := a.Reset(); err != ErrSessionClosed {
		t.Fatalf("reset after close: got %v, want ErrSessionClosed", err)
	}
}
