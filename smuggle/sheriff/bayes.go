package sheriff

import (
	"math/rand"

	"sheriff-lite/goods"
	"sheriff-lite/smuggle"
)

type declKey struct {
	Good  goods.Good
	Count int
}

// FreqTable maps implied declarations to relative frequency. Values
// over all observed keys sum to 1 (each simulated hand contributes
// exactly one key).
type FreqTable map[declKey]float64

// BayesBrain decides inspect/accept by combining a per-merchant
// honesty prior with two frozen population models: how honest hands
// look after redraws, and how smuggling hands look.
type BayesBrain struct {
	cfg Config
	rng *rand.Rand

	honest   FreqTable
	smuggler FreqTable
	trained  bool
}

// NewBayesBrain builds an untrained brain. Call Train before first
// use; the registry factory does this for you.
func NewBayesBrain(cfg Config, rng *rand.Rand) (*BayesBrain, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &BayesBrain{cfg: cfg, rng: rng}, nil
}

func (b *BayesBrain) Name() string { return "bayes" }

// Train runs the Monte-Carlo simulation and freezes both tables.
// Idempotent: once trained, repeat calls are no-ops. Use Retrain for
// an explicit rebuild.
func (b *BayesBrain) Train() {
	if b.trained {
		return
	}
	b.Retrain()
}

// Retrain rebuilds both population tables from fresh simulated hands.
func (b *BayesBrain) Retrain() {
	deck := goods.NewDeck(b.rng)
	b.honest = b.simulate(deck, honestRedraw)
	b.smuggler = b.simulate(deck, smugglerRedraw)
	b.trained = true
}

// simulate draws SimHands hands, applies one redraw pass under the
// given policy, and tallies each hand's most frequent (good, count)
// pair as its implied declaration.
func (b *BayesBrain) simulate(deck *goods.Deck, policy func(goods.GoodList) []int) FreqTable {
	counts := make(map[declKey]int)
	for i := 0; i < b.cfg.SimHands; i++ {
		hand := deck.DrawHand()
		hand = deck.Redraw(hand, policy(hand))
		g, n := hand.MostFrequent()
		if g == goods.GoodInvalid {
			continue
		}
		counts[declKey{Good: g, Count: n}]++
	}

	table := make(FreqTable, len(counts))
	total := float64(b.cfg.SimHands)
	for k, n := range counts {
		table[k] = float64(n) / total
	}
	return table
}

// honestRedraw discards every contraband item: honest merchants dump
// anything they cannot declare.
func honestRedraw(hand goods.GoodList) []int {
	var discard []int
	for i, g := range hand {
		if g.IsContraband() {
			discard = append(discard, i)
		}
	}
	return discard
}

// smugglerRedraw keeps contraband and churns the legal filler, fishing
// for more high-value cargo.
func smugglerRedraw(hand goods.GoodList) []int {
	var discard []int
	for i, g := range hand {
		if !g.IsContraband() {
			discard = append(discard, i)
		}
	}
	return discard
}

// PriorHonest estimates P(honest) from a merchant's past encounters:
// the fraction not caught lying, with un-inspected encounters counted
// as honest. No history yields the configured default. The result is
// clamped away from 0 and 1 so a spotless (or hopeless) record cannot
// collapse the Bayesian update to certainty.
func (b *BayesBrain) PriorHonest(history []smuggle.EncounterEvent) float64 {
	if len(history) == 0 {
		return b.cfg.DefaultPrior
	}
	caught := 0
	for _, e := range history {
		if e.WasInspected && e.WasCaughtLying {
			caught++
		}
	}
	prior := 1 - float64(caught)/float64(len(history))
	if prior < b.cfg.Epsilon {
		prior = b.cfg.Epsilon
	}
	if prior > 1-b.cfg.Epsilon {
		prior = 1 - b.cfg.Epsilon
	}
	return prior
}

// PosteriorHonest applies Bayes over the frozen tables. Declarations
// unseen by either population fall back to Epsilon; a degenerate
// denominator returns the neutral 0.5.
func (b *BayesBrain) PosteriorHonest(decl smuggle.Declaration, prior float64) float64 {
	key := declKey{Good: decl.Good, Count: decl.Count}
	pdh := b.lookup(b.honest, key)
	pds := b.lookup(b.smuggler, key)

	denom := pdh*prior + pds*(1-prior)
	if denom == 0 {
		return 0.5
	}
	return pdh * prior / denom
}

func (b *BayesBrain) lookup(table FreqTable, key declKey) float64 {
	if f, ok := table[key]; ok && f > 0 {
		return f
	}
	return b.cfg.Epsilon
}

// Decide implements smuggle.Inspector. It never errors: malformed
// declarations and unknown goods all resolve through safe defaults.
func (b *BayesBrain) Decide(view smuggle.InspectorView) smuggle.Verdict {
	b.Train()

	prior := b.PriorHonest(view.History)
	pHonest := b.PosteriorHonest(view.Declared, prior)
	return b.evaluate(pHonest, view.Declared.Value(), view.BribeOffered)
}

// evaluate compares the expected value of inspecting against taking
// the bribe, under the regime chosen by the posterior.
func (b *BayesBrain) evaluate(pHonest float64, declaredValue, bribe int64) smuggle.Verdict {
	pLie := 1 - pHonest
	assumedContraband := b.cfg.ContrabandMultiplier * float64(declaredValue)

	evInspect := pLie*assumedContraband - pHonest*float64(declaredValue)
	evAccept := float64(bribe) * b.cfg.BribeWeight

	var inspect bool
	if pHonest < b.cfg.RiskThreshold {
		// Suspicious regime: straight EV comparison.
		inspect = evInspect > evAccept
	} else {
		// Uncertain regime: a certain bribe beats a doubtful search.
		inspect = evInspect > b.cfg.UncertainBias*evAccept
	}

	return smuggle.Verdict{
		Inspect:     inspect,
		AcceptBribe: !inspect && bribe > 0,
	}
}
