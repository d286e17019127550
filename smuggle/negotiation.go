package smuggle

import "math/rand"

// NegotiationState 谈判状态机
type NegotiationState byte

const (
	NegIdle       NegotiationState = 0
	NegThreatened NegotiationState = 1
	NegOffered    NegotiationState = 2
	NegCountered  NegotiationState = 3
	NegResolved   NegotiationState = 4
)

var NegotiationStateDictionary = map[NegotiationState]string{
	NegIdle:       "IDLE",
	NegThreatened: "THREATENED",
	NegOffered:    "OFFERED",
	NegCountered:  "COUNTERED",
	NegResolved:   "RESOLVED",
}

func (s NegotiationState) String() string {
	if v, ok := NegotiationStateDictionary[s]; ok {
		return v
	}
	return "IDLE"
}

// maxNegotiationRounds bounds the exchange: one opening offer, one
// counter. The machine cannot loop.
const maxNegotiationRounds = 2

// Negotiation is the short-lived state of one threatened inspection.
// Created when the sheriff signals intent, discarded once resolved;
// never persisted.
type Negotiation struct {
	state       NegotiationState
	ThreatLevel float64
	Round       int
	LastOffer   int64
	LastDemand  int64

	inspect bool  // valid once resolved
	settled int64 // bribe that changed hands, 0 if inspection
}

func NewNegotiation() *Negotiation {
	return &Negotiation{state: NegIdle}
}

func (n *Negotiation) State() NegotiationState { return n.state }

// Resolved reports whether the machine has terminated, and if so
// whether the resolution is an inspection and what bribe settled it.
func (n *Negotiation) Resolved() (done bool, inspect bool, settled int64) {
	return n.state == NegResolved, n.inspect, n.settled
}

// Threaten moves Idle→Threatened. Threat level grows with the
// estimated contraband value at stake and the sheriff's authority.
func (n *Negotiation) Threaten(estContraband int64, authority float64) error {
	if n.state != NegIdle {
		return ErrNegotiationPhase
	}
	level := authority/10 + float64(estContraband)/40
	if level > 1 {
		level = 1
	}
	n.ThreatLevel = level
	n.state = NegThreatened
	return nil
}

// Propose is the merchant's opening move: either an initial bribe or
// an outright refusal. Bold (high risk tolerance) and honest
// personalities refuse more readily. Refusal resolves to inspection.
func (n *Negotiation) Propose(p PersonalityProfile, contrabandValue, ceiling int64, rng *rand.Rand) (offer int64, refused bool, err error) {
	if n.state != NegThreatened {
		return 0, false, ErrNegotiationPhase
	}

	refuseChance := p.RiskTolerance*0.03 + p.HonestyBias*0.04 - n.ThreatLevel*0.2
	if refuseChance < 0 {
		refuseChance = 0
	}
	if rng.Float64() < refuseChance {
		n.state = NegResolved
		n.inspect = true
		return 0, true, nil
	}

	// Opening offer: a threat-scaled slice of the contraband value,
	// trimmed by greed (greedy merchants open low) and capped by the
	// rational ceiling.
	base := float64(contrabandValue) * (0.25 + n.ThreatLevel*0.35)
	base *= 1 - p.Greed*0.02
	offer = int64(base)
	if offer < 1 {
		offer = 1
	}
	if offer > ceiling {
		offer = ceiling
	}
	n.Round = 1
	n.LastOffer = offer
	n.state = NegOffered
	return offer, false, nil
}

// Accept is the sheriff taking the current offer. Resolves no-inspect.
func (n *Negotiation) Accept() error {
	switch n.state {
	case NegOffered:
		n.settled = n.LastOffer
	case NegCountered:
		n.settled = n.LastDemand
	default:
		return ErrNegotiationPhase
	}
	n.state = NegResolved
	n.inspect = false
	return nil
}

// Counter is the sheriff demanding more. Only one counter is allowed;
// a second exhausts the round budget.
func (n *Negotiation) Counter(demand int64) error {
	if n.state != NegOffered {
		return ErrNegotiationPhase
	}
	if n.Round >= maxNegotiationRounds {
		return ErrNegotiationClosed
	}
	if demand <= n.LastOffer {
		demand = n.LastOffer + 1
	}
	n.Round++
	n.LastDemand = demand
	n.state = NegCountered
	return nil
}

// Respond is the merchant answering a counter-demand: pay up (bounded
// by the rational ceiling) or give up, which resolves to inspection.
// Willingness shrinks with each round by construction, so the machine
// always terminates here.
func (n *Negotiation) Respond(p PersonalityProfile, ceiling int64, rng *rand.Rand) (accepted bool, err error) {
	if n.state != NegCountered {
		return false, ErrNegotiationPhase
	}

	n.state = NegResolved
	if n.LastDemand > ceiling {
		n.inspect = true
		return false, nil
	}

	// Paying above the opening offer stings; timid and greedy
	// personalities cave more often than bold ones.
	cave := 0.75 - p.RiskTolerance*0.04 + p.Greed*0.02 - n.ThreatLevel*0.1
	if cave < 0.1 {
		cave = 0.1
	}
	if rng.Float64() < cave {
		n.inspect = false
		n.settled = n.LastDemand
		return true, nil
	}
	n.inspect = true
	return false, nil
}
