package replay

import "fmt"

type ReplayError struct {
	StepIndex int32          `json:"step_index"`
	Reason    string         `json:"reason"`
	Message   string         `json:"message"`
	Expected  *ExpectedState `json:"expected,omitempty"`
}

// ExpectedState describes what the gate would have accepted at the
// failing step.
type ExpectedState struct {
	KnownAgents []uint64 `json:"known_agents,omitempty"`
	MaxBundle   int      `json:"max_bundle,omitempty"`
	KnownGoods  []string `json:"known_goods,omitempty"`
}

func (e *ReplayError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("replay error(step=%d reason=%s): %s", e.StepIndex, e.Reason, e.Message)
}
