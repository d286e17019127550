package replay

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"math/rand"

	"sheriff-lite/smuggle"
	"sheriff-lite/smuggle/npc"
	"sheriff-lite/smuggle/sheriff"
)

const defaultGateID = "replay_local"

// GenerateReplayTape runs the scripted day against a fresh checkpoint
// and records every gate-visible event. The same spec always yields
// the same tape.
func GenerateReplayTape(spec DaySpec) (*ReplayTape, error) {
	ns, err := normalizeSpec(spec)
	if err != nil {
		return nil, err
	}

	seed := seedFromSpec(spec.RNG)
	if seed == 0 {
		seed = 1 // seed 0 would fall through to wall-clock seeding
	}

	session, err := smuggle.NewSession(smuggle.Config{
		MaxMerchants: len(ns.merchants),
		MaxBundle:    ns.maxBundle,
		StartingGold: smuggle.DefaultConfig().StartingGold,
		Authority:    float64(ns.authority),
		Seed:         seed,
	})
	if err != nil {
		return nil, &ReplayError{StepIndex: -1, Reason: "session_init_failed", Message: err.Error()}
	}
	defer session.Close()

	brain, err := sheriff.New(ns.sheriff, rand.New(rand.NewSource(seed+1)))
	if err != nil {
		return nil, &ReplayError{StepIndex: -1, Reason: "unknown_sheriff", Message: err.Error()}
	}

	cp := smuggle.NewCheckpoint(session, brain)
	gates := make(map[uint64]*gateDeclarer, len(ns.merchants))
	for i, nm := range ns.merchants {
		persona := &npc.MerchantPersona{
			ID:      nm.name,
			Name:    nm.name,
			Tier:    nm.tier,
			Profile: nm.profile,
		}
		gd := &gateDeclarer{inner: npc.NewStrategyBrain(persona, seed+int64(i)*101)}
		if err := cp.AddMerchant(&smuggle.Merchant{
			ID:          nm.agentID,
			Name:        nm.name,
			Tier:        nm.tier,
			Personality: nm.profile,
			Brain:       gd,
		}); err != nil {
			return nil, &ReplayError{StepIndex: -1, Reason: "merchant_init_failed", Message: err.Error()}
		}
		gates[nm.agentID] = gd
	}

	builder := newTapeBuilder(defaultGateID)
	builder.addDayStart(&DayStart{
		Authority:   ns.authority,
		MaxBundle:   ns.maxBundle,
		SheriffName: brain.Name(),
		Merchants:   len(ns.merchants),
	})

	for stepIdx, visit := range ns.visits {
		nm := ns.byAgent[visit.agentID]
		builder.addArrival(&Arrival{
			AgentID: nm.agentID,
			Name:    nm.name,
			Tier:    nm.tier.String(),
		})

		gates[visit.agentID].queue(visit.offer)
		result, err := cp.RunEncounter(visit.agentID)
		if err != nil {
			var invalid smuggle.InvalidOfferError
			if errors.As(err, &invalid) {
				return nil, &ReplayError{
					StepIndex: int32(stepIdx),
					Reason:    "invalid_offer",
					Message:   err.Error(),
					Expected:  &ExpectedState{MaxBundle: ns.maxBundle},
				}
			}
			return nil, &ReplayError{StepIndex: int32(stepIdx), Reason: "encounter_failed", Message: err.Error()}
		}

		builder.addOffer(&OfferEvent{
			AgentID:  nm.agentID,
			Declared: result.Declared,
			Bribe:    result.Event.BribeOffered,
		})
		settled := *result
		builder.addSettlement(&settled)
	}

	builder.addDayEnd(&DayEnd{
		Visits:      len(ns.visits),
		SheriffGold: cp.SheriffGold(),
		Stats:       session.History().Stats(),
	})

	return &ReplayTape{
		TapeVersion: 1,
		GateID:      builder.gateID,
		Events:      builder.events,
	}, nil
}

// gateDeclarer lets a scripted visit override the persona's own plan
// for exactly one encounter.
type gateDeclarer struct {
	inner  smuggle.Declarer
	forced *smuggle.Offer
}

func (g *gateDeclarer) queue(offer *smuggle.Offer) { g.forced = offer }

func (g *gateDeclarer) Plan(view smuggle.MerchantView) smuggle.Offer {
	if g.forced != nil {
		offer := *g.forced
		g.forced = nil
		return offer
	}
	return g.inner.Plan(view)
}

func (g *gateDeclarer) Name() string { return g.inner.Name() }

type tapeBuilder struct {
	gateID string
	seq    uint64
	events []ReplayEvent
}

func newTapeBuilder(gateID string) *tapeBuilder {
	return &tapeBuilder{
		gateID: gateID,
		events: make([]ReplayEvent, 0, 32),
	}
}

func (b *tapeBuilder) addDayStart(e *DayStart)             { b.push("dayStart", &Envelope{DayStart: e}) }
func (b *tapeBuilder) addArrival(e *Arrival)               { b.push("arrival", &Envelope{Arrival: e}) }
func (b *tapeBuilder) addOffer(e *OfferEvent)              { b.push("offer", &Envelope{Offer: e}) }
func (b *tapeBuilder) addSettlement(e *smuggle.Settlement) { b.push("settlement", &Envelope{Settlement: e}) }
func (b *tapeBuilder) addDayEnd(e *DayEnd)                 { b.push("dayEnd", &Envelope{DayEnd: e}) }

func (b *tapeBuilder) push(eventType string, env *Envelope) {
	b.seq++
	env.GateID = b.gateID
	env.ServerSeq = b.seq
	bin, _ := json.Marshal(env)
	b.events = append(b.events, ReplayEvent{
		Type:        eventType,
		Seq:         b.seq,
		Value:       env,
		EnvelopeB64: base64.StdEncoding.EncodeToString(bin),
	})
}
