package state

import (
	"time"

	contractx "github.com/iquotehq/iquote/agent/contract"
)

// RequestState tracks a request through the coordinator pipeline. The
// error-absorbing path may jump from any non-terminal state straight to
// complete with partial results; exceeding the overall deadline lands in
// timed_out instead.
type RequestState string

const (
	StateReceived   RequestState = "received"
	StateExtracting RequestState = "extracting"
	StateMatching   RequestState = "matching"
	StateEnriching  RequestState = "enriching"
	StateComplete   RequestState = "complete"
	StateTimedOut   RequestState = "timed_out"
)

func (s RequestState) Terminal() bool {
	return s == StateComplete || s == StateTimedOut
}

// PendingRequest is the coordinator-owned record of one in-flight request.
// Result is nil until the request reaches a terminal state; once set it is
// never overwritten.
type PendingRequest struct {
	ID        string                      `json:"id"`
	State     RequestState                `json:"state"`
	Text      string                      `json:"text"`
	Result    *contractx.ProposalResponse `json:"result,omitempty"`
	CreatedAt time.Time                   `json:"created_at"`
	UpdatedAt time.Time                   `json:"updated_at"`
}

func NewPendingRequest(id, text string, now time.Time) *PendingRequest {
	return &PendingRequest{
		ID:        id,
		State:     StateReceived,
		Text:      text,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
}
