// Package coordinator drives one inbound requirement through extraction,
// recommendation, and collaborator enrichment, tracking each request in the
// pending table until its result is picked up.
package coordinator

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	catalogx "github.com/iquotehq/iquote/agent/catalog"
	contractx "github.com/iquotehq/iquote/agent/contract"
	nodex "github.com/iquotehq/iquote/agent/nodes/coordinator"
	recommendx "github.com/iquotehq/iquote/agent/recommend"
	statex "github.com/iquotehq/iquote/agent/state"
)

const defaultOverallTimeout = 30 * time.Second

type Config struct {
	// Narrator is optional; a nil narrator means every proposal is rendered
	// deterministically.
	Narrator contractx.Narrator
	// Collaborators may be empty: the request then completes on the base
	// solution alone.
	Collaborators []contractx.Collaborator
	// OverallTimeout is the per-request deadline, measured from receipt. It
	// bounds the enriching phase; expiry marks the request timed out but
	// never discards sub-work already merged.
	OverallTimeout time.Duration
}

type Coordinator struct {
	store         statex.Store
	extractor     contractx.Extractor
	recommender   contractx.Recommender
	narrator      contractx.Narrator
	collaborators []contractx.Collaborator

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]

	overallTimeout time.Duration

	now   func() time.Time
	newID func() string
}

func New(
	store statex.Store,
	extractor contractx.Extractor,
	recommender contractx.Recommender,
	cfg Config,
) (*Coordinator, error) {
	if store == nil {
		return nil, errors.New("pending request store is required")
	}
	if extractor == nil {
		return nil, errors.New("extractor is required")
	}
	if recommender == nil {
		return nil, errors.New("recommender is required")
	}

	overallTimeout := cfg.OverallTimeout
	if overallTimeout <= 0 {
		overallTimeout = defaultOverallTimeout
	}

	c := &Coordinator{
		store:          store,
		extractor:      extractor,
		recommender:    recommender,
		narrator:       cfg.Narrator,
		collaborators:  cfg.Collaborators,
		overallTimeout: overallTimeout,
		now:            time.Now,
		newID:          uuid.NewString,
	}

	graphRunner, err := c.compileProcessGraph(context.Background())
	if err != nil {
		return nil, err
	}
	c.graphRunner = graphRunner

	return c, nil
}

// Process runs one requirement to a unified response. The only surfaced error
// is a malformed (blank) requirement; everything downstream degrades into a
// well-formed response.
func (c *Coordinator) Process(ctx context.Context, rawText string) (contractx.ProposalResponse, error) {
	text := strings.TrimSpace(rawText)
	if text == "" {
		return contractx.ProposalResponse{}, contractx.ErrEmptyRequirement
	}

	id := c.newID()
	pending := statex.NewPendingRequest(id, text, c.now())
	if err := c.store.Create(pending); err != nil {
		return contractx.ProposalResponse{}, err
	}

	log.Info().Str("request_id", id).Int("text_len", len(text)).Msg("request received")

	out, err := c.graphRunner.Invoke(ctx, nodex.GraphInput{RequestID: id, Text: text})
	if err != nil {
		// Defensive: extractor and recommender cannot fail by contract, so a
		// graph error here means a bug. The caller still gets a well-formed
		// template response rather than a fault.
		log.Error().Str("request_id", id).Err(err).Msg("pipeline failed, serving template response")
		resp := c.templateResponse(id)
		c.finish(id, statex.StateComplete, &resp)
		return resp, nil
	}

	resp := out.Response
	finalState := statex.StateComplete
	if out.TimedOut {
		finalState = statex.StateTimedOut
	}
	c.finish(id, finalState, &resp)

	log.Info().
		Str("request_id", id).
		Str("state", string(finalState)).
		Int("products", len(resp.Products)).
		Int("enhancements", len(resp.Enhancements)).
		Float64("cost_total", resp.CostTotal).
		Msg("request finished")

	return resp, nil
}

// Status looks up a pending request by identifier. A record seen in a
// terminal state is freed by this lookup.
func (c *Coordinator) Status(requestID string) (*statex.PendingRequest, bool) {
	return c.store.Get(requestID)
}

func (c *Coordinator) finish(id string, st statex.RequestState, resp *contractx.ProposalResponse) {
	if err := c.store.Complete(id, st, resp, c.now()); err != nil {
		log.Warn().Str("request_id", id).Err(err).Msg("could not finalize pending request")
	}
}

func (c *Coordinator) advance(id string, st statex.RequestState) {
	if err := c.store.Advance(id, st, c.now()); err != nil {
		log.Debug().Str("request_id", id).Err(err).Msg("could not advance pending request")
	}
}

func (c *Coordinator) templateResponse(id string) contractx.ProposalResponse {
	return contractx.ProposalResponse{
		RequestID:    id,
		ProposalText: recommendx.NeedMoreInfoTemplate,
		Products:     []catalogx.Product{},
		Bundles:      []catalogx.Bundle{},
		Enhancements: []string{},
	}
}
