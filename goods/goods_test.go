package goods

import (
	"math/rand"
	"testing"
)

func TestContrabandFlag(t *testing.T) {
	for _, g := range LegalGoods() {
		if g.IsContraband() {
			t.Fatalf("%s flagged contraband", g)
		}
	}
	for _, g := range ContrabandGoods() {
		if !g.IsContraband() {
			t.Fatalf("%s not flagged contraband", g)
		}
	}
}

func TestUnknownGoodFallsBackToDefaults(t *testing.T) {
	unknown := Good(0x7E)
	if unknown.Valid() {
		t.Fatalf("0x7E should not be in catalog")
	}
	if got := unknown.UnitValue(); got != DefaultUnitValue {
		t.Fatalf("unknown unit value: got %d, want %d", got, DefaultUnitValue)
	}
	if got := unknown.Penalty(); got != DefaultUnitValue {
		t.Fatalf("unknown penalty: got %d, want %d", got, DefaultUnitValue)
	}
}

func TestParseGoodRoundTrip(t *testing.T) {
	for _, g := range AllGoods {
		parsed, err := ParseGood(g.String())
		if err != nil {
			t.Fatalf("parse %s: %v", g, err)
		}
		if parsed != g {
			t.Fatalf("round trip %s: got %v", g, parsed)
		}
	}
	if _, err := ParseGood("dragons"); err == nil {
		t.Fatalf("expected error for unknown good name")
	}
}

func TestAnalyzeSplitsLegalAndContraband(t *testing.T) {
	bundle := GoodList{GoodApples, GoodApples, GoodSilk, GoodPepper, GoodBread}
	a := bundle.Analyze()

	if a.LegalCounts[GoodApples] != 2 || a.LegalCounts[GoodBread] != 1 {
		t.Fatalf("legal counts wrong: %+v", a.LegalCounts)
	}
	if a.ContrabandCounts[GoodSilk] != 1 || a.ContrabandCounts[GoodPepper] != 1 {
		t.Fatalf("contraband counts wrong: %+v", a.ContrabandCounts)
	}
	if a.LegalValue != 2*2+3 {
		t.Fatalf("legal value: got %d, want 7", a.LegalValue)
	}
	if a.ContrabandValue != 8+6 {
		t.Fatalf("contraband value: got %d, want 14", a.ContrabandValue)
	}
}

func TestMostFrequent(t *testing.T) {
	bundle := GoodList{GoodCheese, GoodApples, GoodCheese, GoodSilk, GoodCheese}
	g, n := bundle.MostFrequent()
	if g != GoodCheese || n != 3 {
		t.Fatalf("most frequent: got %s x%d, want cheese x3", g, n)
	}

	g, n = GoodList{}.MostFrequent()
	if g != GoodInvalid || n != 0 {
		t.Fatalf("empty bundle: got %s x%d", g, n)
	}
}

func TestMatchesDeclaration(t *testing.T) {
	bundle := GoodList{GoodBread, GoodBread, GoodBread}
	if !bundle.Matches(GoodBread, 3) {
		t.Fatalf("exact bundle should match declaration")
	}
	if bundle.Matches(GoodBread, 2) {
		t.Fatalf("count mismatch should not match")
	}
	if (GoodList{GoodBread, GoodSilk, GoodBread}).Matches(GoodBread, 3) {
		t.Fatalf("hidden contraband should not match")
	}
}

func TestDeckDrawAndRedraw(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	deck := NewDeck(rng)

	total := deck.Remaining()
	hand := deck.DrawHand()
	if len(hand) != HandSize {
		t.Fatalf("hand size: got %d, want %d", len(hand), HandSize)
	}
	if deck.Remaining() != total-HandSize {
		t.Fatalf("stock not reduced: %d", deck.Remaining())
	}

	redrawn := deck.Redraw(hand, []int{0, 2, 99})
	if len(redrawn) != HandSize {
		t.Fatalf("redrawn hand size: got %d, want %d", len(redrawn), HandSize)
	}
}

func TestDeckReshufflesWhenDry(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	deck := NewDeck(rng)
	total := deck.Remaining()

	// Drain past one full stock; Draw must transparently rebuild.
	drawn := deck.Draw(total + 3)
	if len(drawn) != total+3 {
		t.Fatalf("drew %d, want %d", len(drawn), total+3)
	}
}
