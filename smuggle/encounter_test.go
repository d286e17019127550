package smuggle

import (
	"testing"

	"sheriff-lite/goods"
)

// scriptedDeclarer always plans the same offer.
type scriptedDeclarer struct {
	offer Offer
}

func (s *scriptedDeclarer) Plan(MerchantView) Offer { return s.offer }
func (s *scriptedDeclarer) Name() string            { return "scripted" }

// scriptedInspector returns a fixed verdict sequence.
type scriptedInspector struct {
	verdicts []Verdict
	calls    int
}

func (s *scriptedInspector) Decide(InspectorView) Verdict {
	v := s.verdicts[s.calls]
	if s.calls < len(s.verdicts)-1 {
		s.calls++
	}
	return v
}

func (s *scriptedInspector) Name() string { return "scripted" }

func newTestCheckpoint(t *testing.T, offer Offer, verdicts ...Verdict) (*Checkpoint, *Session) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Seed = 42
	session, err := NewSession(cfg)
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	cp := NewCheckpoint(session, &scriptedInspector{verdicts: verdicts})
	err = cp.AddMerchant(&Merchant{
		ID:          7,
		Name:        "Test Merchant",
		Tier:        Tier1,
		Personality: PersonalityProfile{RiskTolerance: 0, Greed: 5, HonestyBias: 0},
		Brain:       &scriptedDeclarer{offer: offer},
	})
	if err != nil {
		t.Fatalf("add merchant: %v", err)
	}
	return cp, session
}

func TestEncounterHonestInspected(t *testing.T) {
	offer := Offer{
		Declared:  Declaration{Good: goods.GoodBread, Count: 3},
		Actual:    goods.GoodList{goods.GoodBread, goods.GoodBread, goods.GoodBread},
		Archetype: ArchetypeHonest,
	}
	cp, session := newTestCheckpoint(t, offer, Verdict{Inspect: true})

	s, err := cp.RunEncounter(7)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !s.Inspected || s.CaughtLying {
		t.Fatalf("honest inspection flags wrong: %+v", s)
	}
	// Goods pass (3 bread = 9) plus compensation (3 x fine 2 = 6).
	if s.MerchantDelta != 9+6 {
		t.Fatalf("merchant delta: got %d, want 15", s.MerchantDelta)
	}
	if s.SheriffDelta != -6 {
		t.Fatalf("sheriff delta: got %d, want -6", s.SheriffDelta)
	}

	ev := session.History().All()
	if len(ev) != 1 || !ev[0].WasInspected || ev[0].WasCaughtLying {
		t.Fatalf("event not recorded correctly: %+v", ev)
	}
}

func TestEncounterLiarCaught(t *testing.T) {
	offer := Offer{
		Declared:  Declaration{Good: goods.GoodApples, Count: 3},
		Actual:    goods.GoodList{goods.GoodApples, goods.GoodSilk, goods.GoodMead},
		Archetype: ArchetypeMixed,
	}
	// Inspect, then refuse every negotiation bribe.
	cp, session := newTestCheckpoint(t, offer, Verdict{Inspect: true})

	s, err := cp.RunEncounter(7)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !s.Inspected {
		t.Fatalf("expected inspection, got %+v", s)
	}
	if !s.CaughtLying {
		t.Fatalf("liar not caught: %+v", s)
	}
	// Silk (fine 5) and mead (fine 4) confiscated; one apple passes.
	if len(s.Confiscated) != 2 {
		t.Fatalf("confiscated: got %v", s.Confiscated)
	}
	if s.MerchantDelta != 2-9 {
		t.Fatalf("merchant delta: got %d, want -7", s.MerchantDelta)
	}
	if s.SheriffDelta != 9 {
		t.Fatalf("sheriff delta: got %d, want 9", s.SheriffDelta)
	}

	ev := session.History().All()
	if len(ev) != 1 || !ev[0].WasCaughtLying {
		t.Fatalf("caught-lying event not recorded: %+v", ev)
	}
}

func TestEncounterProactiveBribeAccepted(t *testing.T) {
	offer := Offer{
		Declared:  Declaration{Good: goods.GoodCheese, Count: 2},
		Actual:    goods.GoodList{goods.GoodCheese, goods.GoodPepper},
		Bribe:     4,
		Archetype: ArchetypeLowContraband,
	}
	cp, session := newTestCheckpoint(t, offer, Verdict{Inspect: false, AcceptBribe: true})

	s, err := cp.RunEncounter(7)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if s.Inspected {
		t.Fatalf("bribed sheriff still inspected")
	}
	if s.Bribe != 4 || !s.Proactive {
		t.Fatalf("bribe accounting wrong: %+v", s)
	}
	// Cheese 3 + pepper 6 pass, minus the bribe.
	if s.MerchantDelta != 9-4 {
		t.Fatalf("merchant delta: got %d, want 5", s.MerchantDelta)
	}
	if s.SheriffDelta != 4 {
		t.Fatalf("sheriff delta: got %d, want 4", s.SheriffDelta)
	}

	ev := session.History().All()[0]
	if !ev.BribeAccepted || !ev.WasProactive || ev.BribeOffered != 4 {
		t.Fatalf("bribe event wrong: %+v", ev)
	}
}

func TestEncounterNegotiationCanSettle(t *testing.T) {
	offer := Offer{
		Declared:  Declaration{Good: goods.GoodApples, Count: 2},
		Actual:    goods.GoodList{goods.GoodApples, goods.GoodApples, goods.GoodSilk, goods.GoodSilk},
		Archetype: ArchetypeHighContraband,
	}
	// First verdict threatens inspection; once the merchant proposes,
	// the sheriff takes the money.
	cp, session := newTestCheckpoint(t, offer,
		Verdict{Inspect: true},
		Verdict{Inspect: false, AcceptBribe: true},
	)

	s, err := cp.RunEncounter(7)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if s.Inspected {
		t.Fatalf("settled negotiation must not inspect: %+v", s)
	}
	if s.Bribe <= 0 {
		t.Fatalf("settlement without a bribe: %+v", s)
	}
	if s.Proactive {
		t.Fatalf("negotiated bribe marked proactive")
	}

	ev := session.History().All()[0]
	if ev.WasInspected || !ev.BribeAccepted || ev.BribeOffered != s.Bribe {
		t.Fatalf("negotiated event wrong: %+v", ev)
	}
}

func TestEncounterRejectedNegotiationKeepsBribeOnRecord(t *testing.T) {
	offer := Offer{
		Declared:  Declaration{Good: goods.GoodApples, Count: 2},
		Actual:    goods.GoodList{goods.GoodApples, goods.GoodApples, goods.GoodSilk, goods.GoodSilk},
		Archetype: ArchetypeHighContraband,
	}
	// The sheriff refuses every bribe, so the merchant's negotiation
	// offer goes nowhere and the search happens anyway.
	cp, session := newTestCheckpoint(t, offer, Verdict{Inspect: true})

	s, err := cp.RunEncounter(7)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !s.Inspected || !s.CaughtLying {
		t.Fatalf("rejected negotiation must end in inspection: %+v", s)
	}
	if s.Bribe != 0 {
		t.Fatalf("no bribe changed hands, got %d", s.Bribe)
	}

	ev := session.History().All()[0]
	if ev.BribeAccepted {
		t.Fatalf("rejected bribe marked accepted: %+v", ev)
	}
	if ev.BribeOffered <= 0 {
		t.Fatalf("negotiation offer missing from the record: %+v", ev)
	}
}

func TestEncounterInvalidOfferLeavesHistoryClean(t *testing.T) {
	offer := Offer{
		Declared: Declaration{Good: goods.GoodApples, Count: 2},
		Actual:   goods.GoodList{goods.GoodApples},
		Bribe:    -5,
	}
	cp, session := newTestCheckpoint(t, offer, Verdict{})

	if _, err := cp.RunEncounter(7); err == nil {
		t.Fatalf("negative bribe must be rejected")
	}
	if session.History().Len() != 0 {
		t.Fatalf("failed encounter reached the history")
	}

	if _, err := cp.RunEncounter(99); err != ErrUnknownAgent {
		t.Fatalf("unknown agent: got %v", err)
	}
}
