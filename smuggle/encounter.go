package smuggle

import (
	"fmt"
	"sync"

	"sheriff-lite/goods"
)

// counterDemandFactor scales the sheriff's counter-demand over the
// merchant's opening offer.
const counterDemandFactor = 1.5

// Merchant is one declaring agent at the checkpoint.
type Merchant struct {
	ID          uint64
	Name        string
	Tier        Tier
	Personality PersonalityProfile
	Brain       Declarer

	gold int64
}

func (m *Merchant) Gold() int64 { return m.gold }

// Settlement is the full accounting of one resolved encounter.
type Settlement struct {
	AgentID     uint64      `json:"agent_id"`
	Archetype   Archetype   `json:"archetype"`
	Declared    Declaration `json:"declared"`
	Inspected   bool        `json:"inspected"`
	CaughtLying bool        `json:"caught_lying"`

	Bribe     int64 `json:"bribe"`     // amount that actually changed hands
	Proactive bool  `json:"proactive"` // bribe offered before any threat

	Confiscated goods.GoodList `json:"confiscated,omitempty"`
	Passed      goods.GoodList `json:"passed,omitempty"`

	MerchantDelta int64 `json:"merchant_delta"`
	SheriffDelta  int64 `json:"sheriff_delta"`

	Event EncounterEvent `json:"event"` // as appended, with its sequence number
}

// Checkpoint runs encounters between registered merchants and one
// sheriff brain, settling outcomes into the session history.
type Checkpoint struct {
	mu sync.Mutex

	session *Session
	sheriff Inspector

	merchants   map[uint64]*Merchant
	sheriffGold int64

	round      uint16
	lastResult *Settlement
}

func NewCheckpoint(session *Session, sheriff Inspector) *Checkpoint {
	return &Checkpoint{
		session:   session,
		sheriff:   sheriff,
		merchants: make(map[uint64]*Merchant),
	}
}

// AddMerchant registers a declaring agent. Fails once the checkpoint
// is full or the ID is taken.
func (c *Checkpoint) AddMerchant(m *Merchant) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if m == nil || m.ID == InvalidAgent {
		return fmt.Errorf("merchant must have a nonzero ID")
	}
	if len(c.merchants) >= c.session.cfg.MaxMerchants {
		return fmt.Errorf("checkpoint full (%d merchants)", len(c.merchants))
	}
	if c.merchants[m.ID] != nil {
		return fmt.Errorf("merchant %d already registered", m.ID)
	}
	m.gold = c.session.cfg.StartingGold
	c.merchants[m.ID] = m
	return nil
}

func (c *Checkpoint) Merchant(id uint64) *Merchant {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.merchants[id]
}

func (c *Checkpoint) SheriffGold() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sheriffGold
}

func (c *Checkpoint) Round() uint16 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.round
}

func (c *Checkpoint) LastSettlement() *Settlement {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastResult
}

// RunEncounter drives one full encounter for the given merchant:
// plan → sheriff decision (negotiating if an inspection is threatened
// over contraband) → settlement → history append. A rejected offer
// leaves the history untouched.
func (c *Checkpoint) RunEncounter(agentID uint64) (*Settlement, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := c.merchants[agentID]
	if m == nil {
		return nil, ErrUnknownAgent
	}

	cfg := c.session.cfg
	history := c.session.history

	hand := c.session.deck.DrawHand()
	window := history.TierTail(m.Tier)
	view := MerchantView{
		Hand:         hand,
		MaxBundle:    cfg.MaxBundle,
		SheriffStats: AggregateStats(window),
		Recent:       window,
		Pattern:      Classify(window, history.All(), cfg.Classifier),
	}

	offer := m.Brain.Plan(view)
	if err := validateOffer(offer, cfg.MaxBundle); err != nil {
		return nil, err
	}

	verdict := c.sheriff.Decide(InspectorView{
		AgentID:      agentID,
		Declared:     offer.Declared,
		BribeOffered: offer.Bribe,
		History:      history.ForAgent(agentID),
	})

	proactive := offer.Bribe > 0
	bribe := int64(0)
	if verdict.AcceptBribe {
		bribe = offer.Bribe
	}
	inspect := verdict.Inspect
	offered := offer.Bribe

	if inspect {
		analysis := offer.Actual.Analyze()
		if analysis.ContrabandValue > 0 {
			negInspect, settled, proposed, err := c.negotiate(m, offer, analysis, history.ForAgent(agentID))
			if err != nil {
				return nil, err
			}
			inspect = negInspect
			offered = maxInt64(offered, proposed)
			if !negInspect {
				bribe = settled
			}
		}
	}

	settlement := c.settle(m, offer, inspect, bribe, proactive)

	settlement.Event = history.Append(EncounterEvent{
		AgentID:        agentID,
		Declared:       offer.Declared,
		Actual:         offer.Actual.Clone(),
		WasInspected:   settlement.Inspected,
		WasCaughtLying: settlement.CaughtLying,
		BribeOffered:   maxInt64(offered, settlement.Bribe),
		BribeAccepted:  settlement.Bribe > 0,
		WasProactive:   proactive,
	})

	m.gold += settlement.MerchantDelta
	c.sheriffGold += settlement.SheriffDelta
	c.round++
	c.lastResult = settlement

	return settlement, nil
}

// negotiate resolves a threatened inspection into either a settled
// bribe or a confirmed inspection. The sheriff brain is re-consulted
// with each bribe on the table, so negotiation behavior stays
// consistent with the brain's own economics. proposed is the highest
// bribe the merchant put on the table, even when the resolution is an
// inspection; the history event keeps it so rejected offers still
// count as bribe attempts.
func (c *Checkpoint) negotiate(m *Merchant, offer Offer, analysis goods.Analysis, agentHistory []EncounterEvent) (inspect bool, settled, proposed int64, err error) {
	cfg := c.session.cfg
	rng := c.session.rng
	ceiling := profitCeiling(offer, analysis)

	neg := NewNegotiation()
	if err := neg.Threaten(analysis.ContrabandValue, cfg.Authority); err != nil {
		return true, 0, 0, err
	}

	opening, refused, err := neg.Propose(m.Personality, analysis.ContrabandValue, ceiling, rng)
	if err != nil {
		return true, 0, 0, err
	}
	if refused {
		return true, 0, 0, nil
	}
	proposed = opening

	ask := func(bribe int64) Verdict {
		return c.sheriff.Decide(InspectorView{
			AgentID:      m.ID,
			Declared:     offer.Declared,
			BribeOffered: bribe,
			History:      agentHistory,
		})
	}

	if v := ask(opening); v.AcceptBribe {
		if err := neg.Accept(); err != nil {
			return true, 0, proposed, err
		}
	} else {
		// Counter only if the fatter purse would actually change the
		// sheriff's mind; otherwise the search goes ahead.
		demand := int64(float64(opening) * counterDemandFactor)
		if vd := ask(demand); !vd.AcceptBribe {
			return true, 0, proposed, nil
		}
		if err := neg.Counter(demand); err != nil {
			return true, 0, proposed, err
		}
		accepted, err := neg.Respond(m.Personality, ceiling, rng)
		if err != nil {
			return true, 0, proposed, err
		}
		if accepted {
			proposed = neg.LastDemand
		}
	}

	done, negInspect, amount := neg.Resolved()
	if !done {
		return true, 0, proposed, ErrNegotiationClosed
	}
	return negInspect, amount, proposed, nil
}

// profitCeiling is the most a rational merchant would ever pay: the
// value it stands to move past the checkpoint, net of what an honest
// declaration would have earned anyway.
func profitCeiling(offer Offer, analysis goods.Analysis) int64 {
	ceiling := analysis.ContrabandValue + analysis.LegalValue - offer.Declared.Value()
	if ceiling < analysis.ContrabandValue {
		ceiling = analysis.ContrabandValue
	}
	return ceiling
}

// settle computes all value transfers for the resolved decision.
func (c *Checkpoint) settle(m *Merchant, offer Offer, inspect bool, bribe int64, proactive bool) *Settlement {
	s := &Settlement{
		AgentID:   m.ID,
		Archetype: offer.Archetype,
		Declared:  offer.Declared,
		Inspected: inspect,
		Bribe:     bribe,
		Proactive: proactive,
	}

	if !inspect {
		// Wave-through: everything passes, bribe transfers.
		s.Passed = offer.Actual.Clone()
		s.MerchantDelta = offer.Actual.TotalValue() - bribe
		s.SheriffDelta = bribe
		return s
	}

	if offer.IsLying() {
		s.CaughtLying = true
		// Mismatched goods are confiscated; the merchant pays their
		// per-unit fines. Goods matching the declaration pass.
		declared := offer.Declared
		remaining := declared.Count
		var penalty int64
		for _, g := range offer.Actual {
			if g == declared.Good && remaining > 0 {
				remaining--
				s.Passed = append(s.Passed, g)
				continue
			}
			s.Confiscated = append(s.Confiscated, g)
			penalty += g.Penalty()
		}
		s.MerchantDelta = s.Passed.TotalValue() - penalty
		s.SheriffDelta = penalty
		return s
	}

	// Honest under inspection: goods pass and the sheriff compensates
	// the merchant for the shakedown, one fine per declared unit.
	comp := int64(offer.Declared.Count) * offer.Declared.Good.Penalty()
	s.Passed = offer.Actual.Clone()
	s.MerchantDelta = offer.Actual.TotalValue() + comp
	s.SheriffDelta = -comp
	return s
}

func validateOffer(o Offer, maxBundle int) error {
	if o.Declared.Count < 0 {
		return ErrInvalidOffer("negative declared count")
	}
	if o.Bribe < 0 {
		return ErrInvalidOffer("negative bribe")
	}
	if len(o.Actual) > maxBundle {
		return ErrInvalidOffer(fmt.Sprintf("bundle of %d exceeds cart capacity %d", len(o.Actual), maxBundle))
	}
	return nil
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
