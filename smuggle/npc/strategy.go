package npc

import (
	"math/rand"
	"sort"

	"sheriff-lite/goods"
	"sheriff-lite/smuggle"
)

// StrategyConfig names the tuned constants of the risk-scored
// selector. Defaults are balance-critical; override, don't edit.
type StrategyConfig struct {
	// Risk score shape
	BaseScore     float64
	RiskFactor    float64
	GreedFactor   float64
	HonestyFactor float64

	InspectionPenalty float64 // per point of opponent inspection rate
	CatchPenalty      float64 // per point of opponent catch rate

	// Top-tier pattern bonus
	PassRateFloor float64 // recent pass rate above this => exploit
	PassBonus     float64
	CatchRateCeil float64 // recent catch rate above this => back off
	CatchMalus    float64

	// Conscience gates
	RefuseMinHonesty float64 // gate 1 arms at this honesty
	RefusePerPoint   float64 // chance per point over (RefuseMinHonesty-1)
	RevertMinHonesty float64 // gate 2 arms at this honesty
	RevertPerPoint   float64

	// Bribe shaping
	BribeBase      float64 // ceiling fraction at neutral personality
	BribeGreedStep float64
	BribeRiskStep  float64
	BribeVariance  float64 // uniform jitter, breaks fixed patterns
	GreedyTopUp    float64 // extra ratio vs a known greedy sheriff
}

func DefaultStrategyConfig() StrategyConfig {
	return StrategyConfig{
		BaseScore:         5,
		RiskFactor:        0.5,
		GreedFactor:       0.4,
		HonestyFactor:     0.5,
		InspectionPenalty: 3,
		CatchPenalty:      2,
		PassRateFloor:     0.7,
		PassBonus:         1.5,
		CatchRateCeil:     0.5,
		CatchMalus:        2,
		RefuseMinHonesty:  8,
		RefusePerPoint:    0.25,
		RevertMinHonesty:  7,
		RevertPerPoint:    0.05,
		BribeBase:         0.25,
		BribeGreedStep:    0.03,
		BribeRiskStep:     0.01,
		BribeVariance:     0.15,
		GreedyTopUp:       0.15,
	}
}

// proactiveBribeChance is how readily a lying merchant volunteers a
// bribe, by what it believes about the sheriff.
var proactiveBribeChance = map[smuggle.Pattern]float64{
	smuggle.PatternCorrupt: 0.8,
	smuggle.PatternGreedy:  0.5,
	smuggle.PatternUnknown: 0.25,
	smuggle.PatternStrict:  0.1,
}

// StrategyBrain turns a persona plus observed sheriff behavior into a
// declared/actual bundle and bribe. Implements smuggle.Declarer.
type StrategyBrain struct {
	Persona *MerchantPersona
	cfg     StrategyConfig
	rng     *rand.Rand
}

// NewStrategyBrain creates a StrategyBrain from a persona definition.
func NewStrategyBrain(persona *MerchantPersona, seed int64) *StrategyBrain {
	return &StrategyBrain{
		Persona: persona,
		cfg:     DefaultStrategyConfig(),
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// NewStrategyBrainWithConfig is NewStrategyBrain with explicit tuning.
func NewStrategyBrainWithConfig(persona *MerchantPersona, cfg StrategyConfig, seed int64) *StrategyBrain {
	b := NewStrategyBrain(persona, seed)
	b.cfg = cfg
	return b
}

func (b *StrategyBrain) Name() string { return b.Persona.Name }

// Plan implements smuggle.Declarer.
func (b *StrategyBrain) Plan(view smuggle.MerchantView) smuggle.Offer {
	score := b.RiskScore(view)
	archetype := b.chooseArchetype(score)
	offer := b.synthesize(archetype, view)

	if offer.IsLying() && b.rng.Float64() < proactiveBribeChance[view.Pattern] {
		offer.Bribe = b.bribeFor(offer, view.Pattern)
	}
	return offer
}

// RiskScore folds personality and observed sheriff behavior into a
// [0,10] appetite for smuggling. Top-tier merchants additionally read
// the recent pattern window, exploiting a sheriff who waves most
// carts through and backing off one who keeps catching liars.
func (b *StrategyBrain) RiskScore(view smuggle.MerchantView) float64 {
	p := b.Persona.Profile
	cfg := b.cfg

	score := cfg.BaseScore
	score += (p.RiskTolerance - 5) * cfg.RiskFactor
	score += (p.Greed - 5) * cfg.GreedFactor
	score -= (p.HonestyBias - 5) * cfg.HonestyFactor

	score -= view.SheriffStats.InspectionRate * cfg.InspectionPenalty
	score -= view.SheriffStats.CatchRate * cfg.CatchPenalty

	if b.Persona.Tier == smuggle.Tier2 && len(view.Recent) > 0 {
		recent := smuggle.AggregateStats(view.Recent)
		if 1-recent.InspectionRate > cfg.PassRateFloor {
			score += cfg.PassBonus
		}
		if recent.CatchRate > cfg.CatchRateCeil {
			score -= cfg.CatchMalus
		}
	}

	return clampScore(score)
}

// chooseArchetype samples from the tier weight table, subject to both
// conscience gates.
func (b *StrategyBrain) chooseArchetype(score float64) smuggle.Archetype {
	p := b.Persona.Profile
	cfg := b.cfg

	// Gate 1: the truly honest sometimes refuse to lie at all.
	if p.HonestyBias >= cfg.RefuseMinHonesty {
		refuse := (p.HonestyBias - (cfg.RefuseMinHonesty - 1)) * cfg.RefusePerPoint
		if b.rng.Float64() < refuse {
			return smuggle.ArchetypeHonest
		}
	}

	archetype := sampleArchetype(weightsFor(b.Persona.Tier, score), b.rng)

	// Gate 2: second thoughts after picking a dishonest plan.
	if archetype.Dishonest() && p.HonestyBias >= cfg.RevertMinHonesty {
		revert := (p.HonestyBias - (cfg.RevertMinHonesty - 1)) * cfg.RevertPerPoint
		if b.rng.Float64() < revert {
			return smuggle.ArchetypeHonest
		}
	}
	return archetype
}

// sampleArchetype draws from a weight vector. Rounding remainders
// fall to the last archetype.
func sampleArchetype(weights [smuggle.NumArchetypes]float64, rng *rand.Rand) smuggle.Archetype {
	roll := rng.Float64()
	acc := 0.0
	for i, w := range weights {
		acc += w
		if roll < acc {
			return smuggle.Archetype(i)
		}
	}
	return smuggle.ArchetypeHighContraband
}

// synthesize builds the concrete bundle for the chosen archetype from
// the goods actually held, substituting nearest-value held goods when
// the ideal mix is unavailable. Hands that cannot support the
// archetype fall back to an honest cart.
func (b *StrategyBrain) synthesize(a smuggle.Archetype, view smuggle.MerchantView) smuggle.Offer {
	legal := filterGoods(view.Hand, false)
	contraband := filterGoods(view.Hand, true)
	maxN := view.MaxBundle

	switch a {
	case smuggle.ArchetypeCoverLie:
		if len(legal) < 2 {
			break
		}
		// Carry the richest legal goods, claim them all as the
		// cheapest kind on board.
		sortByValue(legal, true)
		bundle := legal.Clone()
		if len(bundle) > maxN {
			bundle = bundle[:maxN]
		}
		claim := bundle[len(bundle)-1]
		if claim == bundle[0] {
			break // single-kind cart, nothing to lie about
		}
		return claimedOffer(a, bundle, claim)

	case smuggle.ArchetypeMixed:
		if len(contraband) == 0 || len(legal) == 0 {
			break
		}
		sortByValue(contraband, false)
		cover := coverBundle(legal, maxN-1)
		run := maxN - len(cover)
		if run > 2 {
			run = 2
		}
		if run > len(contraband) {
			run = len(contraband)
		}
		bundle := append(cover.Clone(), contraband[:run]...)
		return claimedOffer(a, bundle, cover[0])

	case smuggle.ArchetypeLowContraband:
		if len(contraband) == 0 || len(legal) == 0 {
			break
		}
		sortByValue(contraband, true)
		cover := coverBundle(legal, maxN-1)
		bundle := append(cover.Clone(), contraband[0])
		return claimedOffer(a, bundle, cover[0])

	case smuggle.ArchetypeHighContraband:
		if len(contraband) == 0 {
			break
		}
		sortByValue(contraband, true)
		bundle := contraband.Clone()
		if len(bundle) > maxN {
			bundle = bundle[:maxN]
		}
		if len(bundle) < maxN && len(legal) > 0 {
			// Nearest-value legal filler keeps the cart plausible.
			bundle = append(bundle, nearestFiller(legal, maxN-len(bundle), bundle[0].UnitValue())...)
		}
		claim := bestClaim(legal)
		return claimedOffer(a, bundle, claim)
	}

	return honestOffer(legal, maxN)
}

// honestOffer carries the most frequent legal good and declares it
// truthfully. An all-contraband hand yields an empty, truthful cart.
func honestOffer(legal goods.GoodList, maxN int) smuggle.Offer {
	if len(legal) == 0 {
		return smuggle.Offer{
			Declared:  smuggle.Declaration{Good: goods.GoodApples, Count: 0},
			Archetype: smuggle.ArchetypeHonest,
		}
	}
	g, n := legal.MostFrequent()
	if n > maxN {
		n = maxN
	}
	bundle := make(goods.GoodList, n)
	for i := range bundle {
		bundle[i] = g
	}
	return smuggle.Offer{
		Declared:  smuggle.Declaration{Good: g, Count: n},
		Actual:    bundle,
		Archetype: smuggle.ArchetypeHonest,
	}
}

// claimedOffer declares the whole bundle as count units of claim.
func claimedOffer(a smuggle.Archetype, bundle goods.GoodList, claim goods.Good) smuggle.Offer {
	return smuggle.Offer{
		Declared:  smuggle.Declaration{Good: claim, Count: len(bundle)},
		Actual:    bundle,
		Archetype: a,
	}
}

// coverBundle picks up to n legal goods, most frequent kind first, to
// serve as the plausible face of the cart.
func coverBundle(legal goods.GoodList, n int) goods.GoodList {
	if n < 1 {
		n = 1
	}
	g, have := legal.MostFrequent()
	if have > n {
		have = n
	}
	cover := make(goods.GoodList, have)
	for i := range cover {
		cover[i] = g
	}
	return cover
}

// bestClaim picks the declaration face for a contraband run: the most
// frequent legal good held, or apples when holding none.
func bestClaim(legal goods.GoodList) goods.Good {
	if len(legal) == 0 {
		return goods.GoodApples
	}
	g, _ := legal.MostFrequent()
	return g
}

// nearestFiller returns up to n legal goods closest in unit value to
// target, dearest-first on ties.
func nearestFiller(legal goods.GoodList, n int, target int64) goods.GoodList {
	pool := legal.Clone()
	sort.SliceStable(pool, func(i, j int) bool {
		di := absInt64(pool[i].UnitValue() - target)
		dj := absInt64(pool[j].UnitValue() - target)
		if di != dj {
			return di < dj
		}
		return pool[i].UnitValue() > pool[j].UnitValue()
	})
	if n > len(pool) {
		n = len(pool)
	}
	return pool[:n]
}

// bribeFor sizes a proactive bribe: a personality-scaled fraction of
// the profit ceiling with injected variance, never negative and never
// above the ceiling.
func (b *StrategyBrain) bribeFor(offer smuggle.Offer, pattern smuggle.Pattern) int64 {
	analysis := offer.Actual.Analyze()
	ceiling := analysis.ContrabandValue
	if ceiling <= 0 {
		return 0
	}

	p := b.Persona.Profile
	ratio := b.cfg.BribeBase + p.Greed*b.cfg.BribeGreedStep - p.RiskTolerance*b.cfg.BribeRiskStep
	if pattern == smuggle.PatternGreedy {
		ratio += b.cfg.GreedyTopUp
	}
	ratio *= 1 + b.cfg.BribeVariance*(b.rng.Float64()*2-1)

	bribe := int64(float64(ceiling) * ratio)
	if bribe < 1 {
		bribe = 1
	}
	if bribe > ceiling {
		bribe = ceiling
	}
	return bribe
}

func filterGoods(hand goods.GoodList, contraband bool) goods.GoodList {
	var out goods.GoodList
	for _, g := range hand {
		if g.IsContraband() == contraband {
			out = append(out, g)
		}
	}
	return out
}

func sortByValue(gl goods.GoodList, desc bool) {
	sort.SliceStable(gl, func(i, j int) bool {
		if desc {
			return gl[i].UnitValue() > gl[j].UnitValue()
		}
		return gl[i].UnitValue() < gl[j].UnitValue()
	})
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
