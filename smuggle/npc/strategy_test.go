package npc

import (
	"math"
	"testing"

	"sheriff-lite/goods"
	"sheriff-lite/smuggle"
)

func testPersona(tier smuggle.Tier, risk, greed, honesty float64) *MerchantPersona {
	return &MerchantPersona{
		ID:   "test",
		Name: "Test Merchant",
		Tier: tier,
		Profile: smuggle.PersonalityProfile{
			RiskTolerance: risk,
			Greed:         greed,
			HonestyBias:   honesty,
		},
	}
}

func mixedHand() goods.GoodList {
	return goods.GoodList{
		goods.GoodApples, goods.GoodApples, goods.GoodCheese,
		goods.GoodBread, goods.GoodSilk, goods.GoodMead,
	}
}

func TestWeightRowsSumToOne(t *testing.T) {
	for tier, table := range archetypeWeights {
		for bucket, row := range table {
			sum := 0.0
			for _, w := range row {
				if w < 0 {
					t.Fatalf("tier %v bucket %d holds negative weight", tier, bucket)
				}
				sum += w
			}
			if math.Abs(sum-1) > 0.01 {
				t.Fatalf("tier %v bucket %d sums to %v", tier, bucket, sum)
			}
		}
	}
}

func TestRiskBucketBounds(t *testing.T) {
	cases := []struct {
		score float64
		want  int
	}{
		{0, 0}, {1.9, 0}, {2, 1}, {5, 2}, {9.9, 4}, {10, 4},
	}
	for _, c := range cases {
		if got := riskBucket(c.score); got != c.want {
			t.Fatalf("riskBucket(%v): got %d, want %d", c.score, got, c.want)
		}
	}
	if _, ok := archetypeWeights[smuggle.Tier(9)]; ok {
		t.Fatalf("test assumes 9 is not a real tier")
	}
	if w := weightsFor(smuggle.Tier(9), 5); w != archetypeWeights[smuggle.Tier0][2] {
		t.Fatalf("unknown tier must fall back to the bottom table")
	}
}

func TestRiskScoreNeutralNeverPegged(t *testing.T) {
	b := NewStrategyBrain(testPersona(smuggle.Tier1, 5, 5, 5), 11)

	// A fresh session: no sheriff stats at all.
	score := b.RiskScore(smuggle.MerchantView{Hand: mixedHand(), MaxBundle: 5})
	if score <= 0 || score >= 10 {
		t.Fatalf("neutral merchant with ignorant view pegged at %v", score)
	}
}

func TestRiskScoreRespondsToSheriff(t *testing.T) {
	persona := testPersona(smuggle.Tier1, 7, 7, 3)
	b := NewStrategyBrain(persona, 13)

	easy := b.RiskScore(smuggle.MerchantView{
		SheriffStats: smuggle.Stats{InspectionRate: 0.1, CatchRate: 0},
	})
	harsh := b.RiskScore(smuggle.MerchantView{
		SheriffStats: smuggle.Stats{InspectionRate: 0.9, CatchRate: 0.8},
	})
	if harsh >= easy {
		t.Fatalf("aggressive sheriff did not dent appetite: easy %v, harsh %v", easy, harsh)
	}
}

func TestTopTierReadsRecentWindow(t *testing.T) {
	persona := testPersona(smuggle.Tier2, 5, 5, 5)
	b := NewStrategyBrain(persona, 17)

	// Recent window: nothing inspected, so pass rate 1.
	var soft []smuggle.EncounterEvent
	for i := 0; i < 10; i++ {
		soft = append(soft, smuggle.EncounterEvent{})
	}
	base := b.RiskScore(smuggle.MerchantView{})
	boosted := b.RiskScore(smuggle.MerchantView{Recent: soft})
	if boosted <= base {
		t.Fatalf("loose sheriff not exploited: base %v, boosted %v", base, boosted)
	}

	// Recent window: everything inspected and caught.
	var hot []smuggle.EncounterEvent
	for i := 0; i < 10; i++ {
		hot = append(hot, smuggle.EncounterEvent{WasInspected: true, WasCaughtLying: true})
	}
	spooked := b.RiskScore(smuggle.MerchantView{Recent: hot})
	if spooked >= base {
		t.Fatalf("hot streak not respected: base %v, spooked %v", base, spooked)
	}

	// Lower tiers ignore the window entirely.
	low := NewStrategyBrain(testPersona(smuggle.Tier0, 5, 5, 5), 17)
	if low.RiskScore(smuggle.MerchantView{Recent: soft}) != low.RiskScore(smuggle.MerchantView{}) {
		t.Fatalf("bottom tier must not read the pattern window")
	}
}

// A saint (honesty 10) must come out honest far more often than the raw
// weight table alone would allow, because both conscience gates fire.
func TestConscienceGatesDominate(t *testing.T) {
	b := NewStrategyBrain(testPersona(smuggle.Tier2, 8, 8, 10), 19)
	view := smuggle.MerchantView{Hand: mixedHand(), MaxBundle: 5}

	honest := 0
	const trials = 1000
	for i := 0; i < trials; i++ {
		offer := b.Plan(view)
		if !offer.IsLying() {
			honest++
		}
	}
	if frac := float64(honest) / trials; frac < 0.7 {
		t.Fatalf("saint lied too often: honest fraction %v", frac)
	}
}

func TestScoundrelActuallySmuggles(t *testing.T) {
	b := NewStrategyBrain(testPersona(smuggle.Tier2, 10, 10, 0), 23)
	view := smuggle.MerchantView{Hand: mixedHand(), MaxBundle: 5}

	lies := 0
	const trials = 1000
	for i := 0; i < trials; i++ {
		if b.Plan(view).IsLying() {
			lies++
		}
	}
	if frac := float64(lies) / trials; frac < 0.5 {
		t.Fatalf("fearless scoundrel barely lied: %v", frac)
	}
}

func TestPlanOfferAlwaysWellFormed(t *testing.T) {
	sheriffPatterns := []smuggle.Pattern{
		smuggle.PatternUnknown, smuggle.PatternStrict,
		smuggle.PatternCorrupt, smuggle.PatternGreedy,
	}
	hands := []goods.GoodList{
		mixedHand(),
		{goods.GoodApples, goods.GoodApples, goods.GoodApples}, // all legal
		{goods.GoodSilk, goods.GoodMead, goods.GoodCrossbow},   // all contraband
		{},
	}

	for seed := int64(0); seed < 20; seed++ {
		b := NewStrategyBrain(testPersona(smuggle.Tier1, 8, 8, 2), seed)
		for _, hand := range hands {
			for _, pat := range sheriffPatterns {
				offer := b.Plan(smuggle.MerchantView{
					Hand:      hand,
					MaxBundle: 5,
					Pattern:   pat,
				})
				if len(offer.Actual) > 5 {
					t.Fatalf("bundle overflows cart: %d goods", len(offer.Actual))
				}
				if offer.Declared.Count < 0 {
					t.Fatalf("negative declaration")
				}
				if offer.Declared.Count != len(offer.Actual) {
					t.Fatalf("declared %d units but carries %d", offer.Declared.Count, len(offer.Actual))
				}
				if offer.Bribe < 0 {
					t.Fatalf("negative bribe")
				}
				if ceiling := offer.Actual.Analyze().ContrabandValue; offer.Bribe > ceiling {
					t.Fatalf("bribe %d exceeds contraband value %d", offer.Bribe, ceiling)
				}
				if !offer.IsLying() && offer.Bribe > 0 {
					t.Fatalf("honest cart volunteered a bribe")
				}
				for _, g := range offer.Actual {
					if g == goods.GoodInvalid {
						t.Fatalf("bundle holds the invalid good")
					}
				}
			}
		}
	}
}

func TestEmptyLegalHandFallsBackToEmptyCart(t *testing.T) {
	// Honesty 10 with gate 1 nearly always firing, no legal goods held:
	// the fallback is a truthful empty cart, never a phantom bundle.
	b := NewStrategyBrain(testPersona(smuggle.Tier0, 0, 0, 10), 29)
	for i := 0; i < 50; i++ {
		offer := b.Plan(smuggle.MerchantView{
			Hand:      goods.GoodList{goods.GoodSilk, goods.GoodCrossbow},
			MaxBundle: 5,
		})
		if !offer.IsLying() && len(offer.Actual) != 0 {
			t.Fatalf("honest fallback conjured goods: %v", offer.Actual)
		}
	}
}

func TestBribeRidesGreedAndPattern(t *testing.T) {
	offer := smuggle.Offer{
		Declared:  smuggle.Declaration{Good: goods.GoodApples, Count: 3},
		Actual:    goods.GoodList{goods.GoodSilk, goods.GoodSilk, goods.GoodMead},
		Archetype: smuggle.ArchetypeHighContraband,
	}

	greedy := NewStrategyBrainWithConfig(testPersona(smuggle.Tier1, 5, 10, 0), noVarianceConfig(), 31)
	timid := NewStrategyBrainWithConfig(testPersona(smuggle.Tier1, 5, 0, 0), noVarianceConfig(), 31)
	if g, m := greedy.bribeFor(offer, smuggle.PatternUnknown), timid.bribeFor(offer, smuggle.PatternUnknown); g <= m {
		t.Fatalf("greed did not raise the bribe: greedy %d, timid %d", g, m)
	}

	plain := greedy.bribeFor(offer, smuggle.PatternUnknown)
	fat := greedy.bribeFor(offer, smuggle.PatternGreedy)
	if fat <= plain {
		t.Fatalf("greedy sheriff not indulged: plain %d, topped %d", plain, fat)
	}

	if b := greedy.bribeFor(smuggle.Offer{Actual: goods.GoodList{goods.GoodApples}}, smuggle.PatternGreedy); b != 0 {
		t.Fatalf("contraband-free cart produced bribe %d", b)
	}
}

func noVarianceConfig() StrategyConfig {
	cfg := DefaultStrategyConfig()
	cfg.BribeVariance = 0
	return cfg
}

func TestRegistryLoadAndValidation(t *testing.T) {
	r := NewRegistry()
	err := r.LoadFromJSON([]byte(`[
		{"id":"m1","name":"Maud","tier":0,"profile":{"riskTolerance":3,"greed":4,"honestyBias":8}},
		{"id":"m2","name":"Voss","tier":2,"profile":{"riskTolerance":9,"greed":9,"honestyBias":1}},
		{"id":"","name":"nameless"}
	]`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if r.Count() != 2 {
		t.Fatalf("count: got %d, want 2 (blank ID skipped)", r.Count())
	}
	if p := r.Get("m2"); p == nil || p.Profile.Greed != 9 {
		t.Fatalf("m2 not loaded: %+v", p)
	}
	if got := r.ByTier(smuggle.Tier0); len(got) != 1 || got[0].ID != "m1" {
		t.Fatalf("ByTier(0): %+v", got)
	}

	bad := NewRegistry()
	err = bad.LoadFromJSON([]byte(`[{"id":"x","profile":{"riskTolerance":11}}]`))
	if err == nil {
		t.Fatalf("out-of-range profile must be rejected")
	}
}

func TestDefaultRosterIsValid(t *testing.T) {
	roster := DefaultRoster()
	if roster.Count() < 6 {
		t.Fatalf("roster holds %d personas", roster.Count())
	}
	for _, tier := range []smuggle.Tier{smuggle.Tier0, smuggle.Tier1, smuggle.Tier2} {
		if len(roster.ByTier(tier)) == 0 {
			t.Fatalf("no persona at tier %v", tier)
		}
	}
	for _, p := range roster.All() {
		if !validProfile(p.Profile) {
			t.Fatalf("persona %q carries out-of-range profile", p.ID)
		}
	}
}
