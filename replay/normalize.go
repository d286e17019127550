package replay

import (
	"fmt"
	"sort"
	"strings"

	"sheriff-lite/goods"
	"sheriff-lite/smuggle"
)

type normalizedMerchant struct {
	agentID uint64
	name    string
	tier    smuggle.Tier
	profile smuggle.PersonalityProfile
}

type normalizedVisit struct {
	agentID uint64
	offer   *smuggle.Offer
}

type normalizedSpec struct {
	authority int
	maxBundle int
	sheriff   string
	merchants []normalizedMerchant
	byAgent   map[uint64]normalizedMerchant
	visits    []normalizedVisit
}

func normalizeSpec(spec DaySpec) (normalizedSpec, error) {
	var out normalizedSpec
	out.authority = spec.Authority
	out.maxBundle = spec.MaxBundle
	out.sheriff = strings.TrimSpace(spec.Sheriff)

	if out.authority < 0 || out.authority > 10 {
		return out, &ReplayError{StepIndex: -1, Reason: "invalid_authority", Message: "authority must be in [0,10]"}
	}
	if out.maxBundle <= 0 || out.maxBundle > goods.HandSize {
		return out, &ReplayError{
			StepIndex: -1,
			Reason:    "invalid_bundle_limit",
			Message:   fmt.Sprintf("max_bundle must be in [1,%d]", goods.HandSize),
		}
	}
	if out.sheriff == "" {
		out.sheriff = "bayes"
	}
	if len(spec.Merchants) == 0 {
		return out, &ReplayError{StepIndex: -1, Reason: "invalid_merchants", Message: "at least one merchant is required"}
	}

	out.byAgent = make(map[uint64]normalizedMerchant, len(spec.Merchants))
	for i, m := range spec.Merchants {
		if m.AgentID == 0 {
			return out, &ReplayError{StepIndex: -1, Reason: "invalid_merchant", Message: fmt.Sprintf("merchant %d: agent_id must be > 0", i)}
		}
		if _, exists := out.byAgent[m.AgentID]; exists {
			return out, &ReplayError{StepIndex: -1, Reason: "duplicate_merchant", Message: fmt.Sprintf("duplicate agent_id %d", m.AgentID)}
		}
		if m.Tier > uint8(smuggle.Tier2) {
			return out, &ReplayError{StepIndex: -1, Reason: "invalid_tier", Message: fmt.Sprintf("merchant %d: tier out of range", i)}
		}
		if !profileInRange(m.Profile) {
			return out, &ReplayError{StepIndex: -1, Reason: "invalid_profile", Message: fmt.Sprintf("merchant %d: personality scalars must be in [0,10]", i)}
		}
		name := strings.TrimSpace(m.Name)
		if name == "" {
			name = fmt.Sprintf("M%d", m.AgentID)
		}
		nm := normalizedMerchant{
			agentID: m.AgentID,
			name:    name,
			tier:    smuggle.Tier(m.Tier),
			profile: m.Profile,
		}
		out.merchants = append(out.merchants, nm)
		out.byAgent[m.AgentID] = nm
	}

	if len(spec.Visits) == 0 {
		return out, &ReplayError{StepIndex: -1, Reason: "invalid_visits", Message: "at least one visit is required"}
	}
	out.visits = make([]normalizedVisit, 0, len(spec.Visits))
	for i, v := range spec.Visits {
		if _, ok := out.byAgent[v.AgentID]; !ok {
			return out, &ReplayError{
				StepIndex: int32(i),
				Reason:    "unknown_merchant",
				Message:   fmt.Sprintf("agent %d is not on the road", v.AgentID),
				Expected:  &ExpectedState{KnownAgents: knownAgents(out.merchants)},
			}
		}
		offer, err := parseOffer(v.Offer, out.maxBundle, int32(i))
		if err != nil {
			return out, err
		}
		out.visits = append(out.visits, normalizedVisit{agentID: v.AgentID, offer: offer})
	}
	return out, nil
}

func parseOffer(spec *OfferSpec, maxBundle int, step int32) (*smuggle.Offer, error) {
	if spec == nil {
		return nil, nil
	}
	declared, err := goods.ParseGood(strings.TrimSpace(spec.DeclaredGood))
	if err != nil {
		return nil, &ReplayError{
			StepIndex: step,
			Reason:    "invalid_good",
			Message:   fmt.Sprintf("declared_good: %v", err),
			Expected:  &ExpectedState{KnownGoods: goodNames()},
		}
	}
	if spec.DeclaredCount < 0 {
		return nil, &ReplayError{StepIndex: step, Reason: "invalid_offer", Message: "declared_count must be >= 0"}
	}
	if spec.Bribe < 0 {
		return nil, &ReplayError{StepIndex: step, Reason: "invalid_offer", Message: "bribe must be >= 0"}
	}
	if len(spec.Actual) > maxBundle {
		return nil, &ReplayError{
			StepIndex: step,
			Reason:    "bundle_too_large",
			Message:   fmt.Sprintf("cart holds %d goods, limit is %d", len(spec.Actual), maxBundle),
			Expected:  &ExpectedState{MaxBundle: maxBundle},
		}
	}

	actual := make(goods.GoodList, 0, len(spec.Actual))
	for i, s := range spec.Actual {
		g, err := goods.ParseGood(strings.TrimSpace(s))
		if err != nil {
			return nil, &ReplayError{
				StepIndex: step,
				Reason:    "invalid_good",
				Message:   fmt.Sprintf("actual[%d]: %v", i, err),
				Expected:  &ExpectedState{KnownGoods: goodNames()},
			}
		}
		actual = append(actual, g)
	}

	offer := &smuggle.Offer{
		Declared: smuggle.Declaration{Good: declared, Count: spec.DeclaredCount},
		Actual:   actual,
		Bribe:    spec.Bribe,
	}
	if offer.IsLying() {
		offer.Archetype = smuggle.ArchetypeMixed
	} else {
		offer.Archetype = smuggle.ArchetypeHonest
	}
	return offer, nil
}

func profileInRange(p smuggle.PersonalityProfile) bool {
	for _, v := range []float64{p.RiskTolerance, p.Greed, p.HonestyBias} {
		if v < 0 || v > 10 {
			return false
		}
	}
	return true
}

func knownAgents(merchants []normalizedMerchant) []uint64 {
	out := make([]uint64, 0, len(merchants))
	for _, m := range merchants {
		out = append(out, m.agentID)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func goodNames() []string {
	out := make([]string, 0, len(goods.AllGoods))
	for _, g := range goods.AllGoods {
		out = append(out, g.String())
	}
	return out
}

func seedFromSpec(rng *RNGSpec) int64 {
	if rng == nil {
		return 0
	}
	return rng.Seed
}
