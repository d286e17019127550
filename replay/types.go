package replay

import (
	"sheriff-lite/smuggle"
)

// DaySpec scripts one sheriff's day at the gate: the post
// configuration, the merchants on the road, and the visits in order.
type DaySpec struct {
	Authority int            `json:"authority"`
	MaxBundle int            `json:"max_bundle"`
	Sheriff   string         `json:"sheriff,omitempty"`
	Merchants []MerchantSpec `json:"merchants"`
	Visits    []VisitSpec    `json:"visits"`
	RNG       *RNGSpec       `json:"rng,omitempty"`
}

type MerchantSpec struct {
	AgentID uint64                     `json:"agent_id"`
	Name    string                     `json:"name,omitempty"`
	Tier    uint8                      `json:"tier"`
	Profile smuggle.PersonalityProfile `json:"profile"`
}

// VisitSpec is one merchant arriving at the gate. An explicit Offer
// overrides the merchant's own planning; leave it nil to let the
// persona decide.
type VisitSpec struct {
	AgentID uint64     `json:"agent_id"`
	Offer   *OfferSpec `json:"offer,omitempty"`
}

// OfferSpec scripts a cart by good names, e.g. declared "chickens".
type OfferSpec struct {
	DeclaredGood  string   `json:"declared_good"`
	DeclaredCount int      `json:"declared_count"`
	Actual        []string `json:"actual"`
	Bribe         int64    `json:"bribe,omitempty"`
}

type RNGSpec struct {
	Seed int64 `json:"seed"`
}

// ReplayTape is the generated event stream. Events carry both the
// typed payload and its base64 JSON encoding for transport.
type ReplayTape struct {
	TapeVersion int           `json:"tape_version"`
	GateID      string        `json:"gate_id"`
	Events      []ReplayEvent `json:"events"`
}

type ReplayEvent struct {
	Type        string    `json:"type"`
	Seq         uint64    `json:"seq"`
	Value       *Envelope `json:"value,omitempty"`
	EnvelopeB64 string    `json:"envelope_b64,omitempty"`
}

// Envelope is the single wire frame for gate events. Exactly one
// payload pointer is set, discriminated by the event type.
type Envelope struct {
	GateID    string `json:"gateId"`
	ServerSeq uint64 `json:"serverSeq"`

	DayStart   *DayStart           `json:"dayStart,omitempty"`
	Arrival    *Arrival            `json:"arrival,omitempty"`
	Offer      *OfferEvent         `json:"offer,omitempty"`
	Settlement *smuggle.Settlement `json:"settlement,omitempty"`
	DayEnd     *DayEnd             `json:"dayEnd,omitempty"`
}

type DayStart struct {
	Authority   int    `json:"authority"`
	MaxBundle   int    `json:"maxBundle"`
	SheriffName string `json:"sheriffName"`
	Merchants   int    `json:"merchants"`
}

type Arrival struct {
	AgentID uint64 `json:"agentId"`
	Name    string `json:"name"`
	Tier    string `json:"tier"`
}

// OfferEvent is the gate-visible side of an offer: the declaration and
// any open bribe. The cart contents stay hidden until settlement.
type OfferEvent struct {
	AgentID  uint64              `json:"agentId"`
	Declared smuggle.Declaration `json:"declared"`
	Bribe    int64               `json:"bribe"`
}

type DayEnd struct {
	Visits      int           `json:"visits"`
	SheriffGold int64         `json:"sheriffGold"`
	Stats       smuggle.Stats `json:"stats"`
}
