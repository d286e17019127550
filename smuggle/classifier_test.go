package smuggle

import (
	"testing"

	"sheriff-lite/goods"
)

func declared20() Declaration {
	// 5 chickens at 4 = declared value 20
	return Declaration{Good: goods.GoodChickens, Count: 5}
}

func TestClassifyUnknownBelowMinEvents(t *testing.T) {
	events := []EncounterEvent{
		{WasInspected: true}, {WasInspected: true}, {WasInspected: true}, {WasInspected: true},
	}
	if got := Classify(events, events, DefaultClassifierConfig()); got != PatternUnknown {
		t.Fatalf("4 events: got %v, want UNKNOWN", got)
	}
	if got := Classify(nil, nil, DefaultClassifierConfig()); got != PatternUnknown {
		t.Fatalf("empty history: got %v, want UNKNOWN", got)
	}
}

func TestClassifyStrictAllInspectedNoBribes(t *testing.T) {
	var events []EncounterEvent
	for i := 0; i < 10; i++ {
		events = append(events, EncounterEvent{Declared: declared20(), WasInspected: true})
	}
	if got := Classify(events, events, DefaultClassifierConfig()); got != PatternStrict {
		t.Fatalf("all-inspected history: got %v, want STRICT", got)
	}
}

func TestClassifyCorruptNineOfTenBribesTaken(t *testing.T) {
	var events []EncounterEvent
	for i := 0; i < 10; i++ {
		events = append(events, EncounterEvent{
			Declared:      declared20(),
			BribeOffered:  8,
			BribeAccepted: i < 9,
		})
	}
	if got := Classify(events, events, DefaultClassifierConfig()); got != PatternCorrupt {
		t.Fatalf("9/10 bribes taken: got %v, want CORRUPT", got)
	}
}

// A sheriff who takes most bribes but still searches bribe-bearing
// carts reads as strict, never corrupt. Both routes to that verdict
// are pinned here.
func TestClassifyStrictBeatsCorrupt(t *testing.T) {
	cfg := DefaultClassifierConfig()

	// Route 1: overall inspection pressure fires first. All ten events
	// carry bribes, 80% accepted, 60% inspected.
	var overall []EncounterEvent
	for i := 0; i < 10; i++ {
		overall = append(overall, EncounterEvent{
			Declared:      declared20(),
			BribeOffered:  10,
			BribeAccepted: i < 8,
			WasInspected:  i >= 4,
		})
	}
	if got := Classify(overall, overall, cfg); got != PatternStrict {
		t.Fatalf("route 1: got %v, want STRICT", got)
	}
	if got := Classify(overall, overall, cfg); got == PatternCorrupt {
		t.Fatalf("route 1 must never be CORRUPT")
	}

	// Route 2: overall inspection stays low; only the bribe-bearing
	// subset shows the pressure. Five bribe events: 80% accepted, 60%
	// inspected; five quiet events dilute the overall rate to 0.3.
	subset := []EncounterEvent{
		{Declared: declared20(), BribeOffered: 10, BribeAccepted: true, WasInspected: true},
		{Declared: declared20(), BribeOffered: 10, BribeAccepted: true, WasInspected: true},
		{Declared: declared20(), BribeOffered: 10, BribeAccepted: true, WasInspected: true},
		{Declared: declared20(), BribeOffered: 10, BribeAccepted: true},
		{Declared: declared20(), BribeOffered: 10},
		{Declared: declared20()},
		{Declared: declared20()},
		{Declared: declared20()},
		{Declared: declared20()},
		{Declared: declared20()},
	}
	if got := Classify(subset, subset, cfg); got != PatternStrict {
		t.Fatalf("route 2: got %v, want STRICT", got)
	}
}

func TestClassifyConsultsLongWindowWhenBribeSparse(t *testing.T) {
	// Recent: low inspection, no bribes — unreadable on its own.
	var recent []EncounterEvent
	for i := 0; i < 6; i++ {
		recent = append(recent, EncounterEvent{Declared: declared20(), WasInspected: i < 2})
	}
	// Long view: 45% inspection, above the 0.4 long-window bar.
	var long []EncounterEvent
	for i := 0; i < 20; i++ {
		long = append(long, EncounterEvent{Declared: declared20(), WasInspected: i < 9})
	}
	if got := Classify(recent, long, DefaultClassifierConfig()); got != PatternStrict {
		t.Fatalf("long-window strict: got %v, want STRICT", got)
	}

	// Same recent window against a calm long view stays unknown.
	if got := Classify(recent, recent, DefaultClassifierConfig()); got != PatternUnknown {
		t.Fatalf("calm long view: got %v, want UNKNOWN", got)
	}
}

func TestClassifyGreedyNeedsHighBribePreference(t *testing.T) {
	// Eight bribe events on declared value 20: four fat bribes (ratio
	// 0.5) with 3/4 taken, four thin (0.25) with 1/4 taken. Acceptance
	// 0.5 sits in the greedy band and the fat-vs-thin gap is 0.5.
	build := func(fatTaken, thinTaken int) []EncounterEvent {
		var events []EncounterEvent
		for i := 0; i < 4; i++ {
			events = append(events, EncounterEvent{
				Declared:      declared20(),
				BribeOffered:  10,
				BribeAccepted: i < fatTaken,
				WasInspected:  i >= 3, // 1 of 4 inspected
			})
		}
		for i := 0; i < 4; i++ {
			events = append(events, EncounterEvent{
				Declared:      declared20(),
				BribeOffered:  5,
				BribeAccepted: i < thinTaken,
				WasInspected:  i >= 3,
			})
		}
		// Quiet filler keeps overall inspection low.
		events = append(events, EncounterEvent{Declared: declared20()}, EncounterEvent{Declared: declared20()})
		return events
	}

	if got := Classify(build(3, 1), build(3, 1), DefaultClassifierConfig()); got != PatternGreedy {
		t.Fatalf("high-bribe preference: got %v, want GREEDY", got)
	}

	// Same acceptance rate spread evenly across fat and thin bribes is
	// indifference, not greed.
	if got := Classify(build(2, 2), build(2, 2), DefaultClassifierConfig()); got != PatternUnknown {
		t.Fatalf("no preference: got %v, want UNKNOWN", got)
	}
}
