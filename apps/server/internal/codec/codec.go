package codec

import (
	"encoding/json"
	"time"

	"sheriff-lite/goods"
	"sheriff-lite/smuggle"
)

// ClientEnvelope is the single JSON frame clients send. Type selects
// which request pointer is set.
type ClientEnvelope struct {
	Type   string `json:"type"`
	GateID string `json:"gateId,omitempty"`

	Join    *JoinRequest    `json:"join,omitempty"`
	Offer   *OfferRequest   `json:"offer,omitempty"`
	StepDay *StepDayRequest `json:"stepDay,omitempty"`
	Leave   *LeaveRequest   `json:"leave,omitempty"`
}

type JoinRequest struct {
	Token string `json:"token,omitempty"`
	Name  string `json:"name,omitempty"`
}

// OfferRequest is the player's cart: a declaration, the goods actually
// loaded (indexes into the dealt hand), and an optional open bribe.
type OfferRequest struct {
	DeclaredGood  string `json:"declaredGood"`
	DeclaredCount int    `json:"declaredCount"`
	HandIndexes   []int  `json:"handIndexes"`
	Bribe         int64  `json:"bribe,omitempty"`
}

// StepDayRequest asks the gate to run one visit for every merchant NPC.
type StepDayRequest struct{}

type LeaveRequest struct{}

// ServerEnvelope is the single JSON frame the server sends.
type ServerEnvelope struct {
	Type       string `json:"type"`
	GateID     string `json:"gateId,omitempty"`
	ServerSeq  uint64 `json:"serverSeq"`
	ServerTsMs int64  `json:"serverTsMs"`

	Error      *ErrorResponse    `json:"error,omitempty"`
	Snapshot   *smuggle.Snapshot `json:"snapshot,omitempty"`
	DealHand   *DealHand         `json:"dealHand,omitempty"`
	Arrival    *Arrival          `json:"arrival,omitempty"`
	Settlement *SettlementView   `json:"settlement,omitempty"`
}

type ErrorResponse struct {
	Code    int32  `json:"code"`
	Message string `json:"message"`
}

// DealHand is private to one player: the goods drawn for their next
// cart. Never broadcast.
type DealHand struct {
	AgentID uint64   `json:"agentId"`
	Goods   []string `json:"goods"`
	Values  []int64  `json:"values"`
}

type Arrival struct {
	AgentID uint64 `json:"agentId"`
	Name    string `json:"name"`
	Tier    string `json:"tier"`
}

// SettlementView is the broadcast form of a settlement. Cart contents
// are included: once an encounter settles, everything is public.
type SettlementView struct {
	AgentID     uint64              `json:"agentId"`
	Seq         uint64              `json:"seq"`
	Declared    smuggle.Declaration `json:"declared"`
	Inspected   bool                `json:"inspected"`
	CaughtLying bool                `json:"caughtLying"`
	Bribe       int64               `json:"bribe"`
	Proactive   bool                `json:"proactive"`

	Confiscated []string `json:"confiscated,omitempty"`
	Passed      []string `json:"passed,omitempty"`

	MerchantDelta int64 `json:"merchantDelta"`
	SheriffDelta  int64 `json:"sheriffDelta"`
}

// SettlementToView flattens a settlement for the wire.
func SettlementToView(s *smuggle.Settlement) *SettlementView {
	if s == nil {
		return nil
	}
	return &SettlementView{
		AgentID:       s.AgentID,
		Seq:           s.Event.Seq,
		Declared:      s.Declared,
		Inspected:     s.Inspected,
		CaughtLying:   s.CaughtLying,
		Bribe:         s.Bribe,
		Proactive:     s.Proactive,
		Confiscated:   GoodNames(s.Confiscated),
		Passed:        GoodNames(s.Passed),
		MerchantDelta: s.MerchantDelta,
		SheriffDelta:  s.SheriffDelta,
	}
}

// HandToDeal builds the private deal message for one player.
func HandToDeal(agentID uint64, hand goods.GoodList) *DealHand {
	out := &DealHand{
		AgentID: agentID,
		Goods:   make([]string, 0, len(hand)),
		Values:  make([]int64, 0, len(hand)),
	}
	for _, g := range hand {
		out.Goods = append(out.Goods, g.String())
		out.Values = append(out.Values, g.UnitValue())
	}
	return out
}

func GoodNames(gl goods.GoodList) []string {
	if len(gl) == 0 {
		return nil
	}
	out := make([]string, 0, len(gl))
	for _, g := range gl {
		out = append(out, g.String())
	}
	return out
}

// Wrap stamps the common fields and marshals the envelope. Marshal
// failures cannot happen for these types, so the error is dropped.
func Wrap(gateID string, serverSeq uint64, env ServerEnvelope) []byte {
	env.GateID = gateID
	env.ServerSeq = serverSeq
	env.ServerTsMs = time.Now().UnixMilli()
	data, _ := json.Marshal(&env)
	return data
}
