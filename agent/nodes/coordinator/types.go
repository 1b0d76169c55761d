package coordinatornode

import (
	"strings"
	"time"

	catalogx "github.com/iquotehq/iquote/agent/catalog"
	contractx "github.com/iquotehq/iquote/agent/contract"
)

type GraphInput struct {
	RequestID string
	Text      string
}

type GraphOutput struct {
	Response contractx.ProposalResponse
	// TimedOut reports that the enriching phase ran out of deadline. The
	// response still carries everything merged up to that point.
	TimedOut bool
}

// GraphState is threaded through the coordinator pipeline. Each node fills in
// its own slice of the state and passes it on.
type GraphState struct {
	RequestID string
	Text      string
	Now       time.Time

	Intent   contractx.Intent
	Solution contractx.Solution
	Bundles  []catalogx.Bundle

	ProposalText string
	Results      []contractx.CollaboratorResult
	TimedOut     bool
}

func ValidateRequest(in GraphInput, nowFn func() time.Time) (*GraphState, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, contractx.ErrEmptyRequirement
	}

	return &GraphState{
		RequestID: in.RequestID,
		Text:      text,
		Now:       nowFn().UTC(),
	}, nil
}
