package sheriff

import (
	"math/rand"

	"sheriff-lite/smuggle"
)

// RuleBrain is the simple non-Bayesian inspector: a flat search rate
// nudged by how implausible the declaration looks, and a bribe floor
// expressed as a fraction of declared value. It satisfies the same
// contract as BayesBrain, including accept => no inspect.
type RuleBrain struct {
	SearchRate float64 // base inspection probability
	BribeFloor float64 // min bribe/declared-value ratio to be bought

	rng *rand.Rand
}

func NewRuleBrain(rng *rand.Rand) *RuleBrain {
	return &RuleBrain{
		SearchRate: 0.35,
		BribeFloor: 0.3,
		rng:        rng,
	}
}

func (r *RuleBrain) Name() string { return "rule" }

func (r *RuleBrain) Decide(view smuggle.InspectorView) smuggle.Verdict {
	declared := view.Declared.Value()

	// A fat enough bribe always buys passage.
	if view.BribeOffered > 0 && declared > 0 &&
		float64(view.BribeOffered) >= r.BribeFloor*float64(declared) {
		return smuggle.Verdict{Inspect: false, AcceptBribe: true}
	}

	chance := r.SearchRate
	if view.Declared.Count > 3 {
		chance += 0.1 * float64(view.Declared.Count-3)
	}
	if chance > 0.95 {
		chance = 0.95
	}

	inspect := r.rng.Float64() < chance
	return smuggle.Verdict{
		Inspect:     inspect,
		AcceptBribe: !inspect && view.BribeOffered > 0,
	}
}
