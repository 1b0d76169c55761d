package coordinatornode

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	catalogx "github.com/iquotehq/iquote/agent/catalog"
	contractx "github.com/iquotehq/iquote/agent/contract"
	recommendx "github.com/iquotehq/iquote/agent/recommend"
)

type fakeCollaborator struct {
	name   string
	result contractx.CollaboratorResult
	delay  time.Duration
}

func (f *fakeCollaborator) Name() string { return f.name }

func (f *fakeCollaborator) Call(ctx context.Context, req contractx.CollaboratorRequest) contractx.CollaboratorResult {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
		}
	}
	return f.result
}

type fakeNarrator struct {
	narrative string
	err       error
	calls     int
}

func (f *fakeNarrator) Narrate(ctx context.Context, req contractx.NarrativeRequest) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.narrative, nil
}

func solutionFixture() contractx.Solution {
	return contractx.Solution{
		Products: []catalogx.Product{
			{SKU: "SDW-2000", Name: "Enterprise SD-WAN Gateway", UseCases: []string{"SD-WAN"}, Price: 3500},
			{SKU: "SW-48", Name: "48-Port Switch", UseCases: []string{"Switching"}, Price: 1500},
		},
		UseCases: []string{"SD-WAN", "Switching"},
	}
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	st, err := ValidateRequest(GraphInput{RequestID: "req-1", Text: "  sd-wan for 5 branches  "}, func() time.Time { return now })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.Text != "sd-wan for 5 branches" {
		t.Fatalf("expected trimmed text, got %q", st.Text)
	}
	if st.RequestID != "req-1" || !st.Now.Equal(now) {
		t.Fatalf("unexpected state: %+v", st)
	}

	if _, err := ValidateRequest(GraphInput{RequestID: "req-2", Text: "   "}, time.Now); !errors.Is(err, contractx.ErrEmptyRequirement) {
		t.Fatalf("expected ErrEmptyRequirement, got %v", err)
	}
}

func TestComposeProposalNarratorWins(t *testing.T) {
	t.Parallel()

	narrator := &fakeNarrator{narrative: "narrated proposal"}
	st := &GraphState{
		RequestID: "req-1",
		Text:      "sd-wan for 5 branches",
		Intent:    contractx.Intent{UseCases: []string{"SD-WAN"}, BranchCount: 5},
		Solution:  solutionFixture(),
	}

	out, err := ComposeProposal(context.Background(), st, narrator)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ProposalText != "narrated proposal" {
		t.Fatalf("unexpected proposal: %q", out.ProposalText)
	}
	if narrator.calls != 1 {
		t.Fatalf("expected one narrator call, got %d", narrator.calls)
	}
}

func TestComposeProposalNarratorFailureFallsBack(t *testing.T) {
	t.Parallel()

	narrator := &fakeNarrator{err: errors.New("model down")}
	st := &GraphState{
		RequestID: "req-1",
		Text:      "sd-wan for 5 branches",
		Intent:    contractx.Intent{UseCases: []string{"SD-WAN"}, BranchCount: 5},
		Solution:  solutionFixture(),
	}

	out, err := ComposeProposal(context.Background(), st, narrator)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.ProposalText, "SDW-2000") {
		t.Fatalf("expected deterministic proposal, got %q", out.ProposalText)
	}
}

func TestComposeProposalEmptySolutionSkipsNarrator(t *testing.T) {
	t.Parallel()

	narrator := &fakeNarrator{narrative: "should not run"}
	st := &GraphState{RequestID: "req-1", Text: "hello"}

	out, err := ComposeProposal(context.Background(), st, narrator)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ProposalText != recommendx.NeedMoreInfoTemplate {
		t.Fatalf("expected the need-more-info template, got %q", out.ProposalText)
	}
	if narrator.calls != 0 {
		t.Fatalf("narrator must not run on an empty solution, calls=%d", narrator.calls)
	}
}

func TestEnrichRunsCollaboratorsConcurrently(t *testing.T) {
	t.Parallel()

	collabs := []contractx.Collaborator{
		&fakeCollaborator{
			name:   "a",
			delay:  50 * time.Millisecond,
			result: contractx.CollaboratorResult{Collaborator: "a", Content: "from a"},
		},
		&fakeCollaborator{
			name:   "b",
			delay:  50 * time.Millisecond,
			result: contractx.CollaboratorResult{Collaborator: "b", Absent: true, Reason: "timeout"},
		},
	}

	st := &GraphState{
		RequestID: "req-1",
		Text:      "sd-wan for 5 branches",
		Intent:    contractx.Intent{UseCases: []string{"SD-WAN"}, BranchCount: 5},
		Solution:  solutionFixture(),
	}

	start := time.Now()
	out, err := Enrich(context.Background(), st, collabs)
	elapsed := time.Since(start)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed >= 100*time.Millisecond {
		t.Fatalf("expected concurrent fan-out, took %s", elapsed)
	}

	if len(out.Results) != 2 {
		t.Fatalf("unexpected results: %+v", out.Results)
	}
	// Results stay in dispatch order regardless of completion order.
	if out.Results[0].Collaborator != "a" || out.Results[1].Collaborator != "b" {
		t.Fatalf("unexpected result order: %+v", out.Results)
	}
}

func TestEnrichExpiredDeadlineKeepsResults(t *testing.T) {
	t.Parallel()

	collabs := []contractx.Collaborator{
		&fakeCollaborator{
			name:   "fast",
			result: contractx.CollaboratorResult{Collaborator: "fast", Content: "made it"},
		},
		&fakeCollaborator{
			name:   "slow",
			delay:  time.Second,
			result: contractx.CollaboratorResult{Collaborator: "slow", Absent: true, Reason: "timeout"},
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	st := &GraphState{
		RequestID: "req-1",
		Text:      "sd-wan for 5 branches",
		Intent:    contractx.Intent{UseCases: []string{"SD-WAN"}, BranchCount: 5},
		Solution:  solutionFixture(),
	}

	out, err := Enrich(ctx, st, collabs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.TimedOut {
		t.Fatal("expected the timed-out marker")
	}
	if len(out.Results) != 2 || out.Results[0].Content != "made it" || !out.Results[1].Absent {
		t.Fatalf("unexpected results: %+v", out.Results)
	}
}

func TestEnrichNoCollaborators(t *testing.T) {
	t.Parallel()

	st := &GraphState{RequestID: "req-1", Text: "x"}
	out, err := Enrich(context.Background(), st, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Results != nil {
		t.Fatalf("expected no results, got %+v", out.Results)
	}
}

func TestFinalizeOmitsAbsentResults(t *testing.T) {
	t.Parallel()

	st := &GraphState{
		RequestID:    "req-1",
		Text:         "sd-wan for 5 branches",
		Intent:       contractx.Intent{UseCases: []string{"SD-WAN", "Switching"}, BranchCount: 5},
		Solution:     solutionFixture(),
		Bundles:      []catalogx.Bundle{{ID: "sdwan_switching", SKUs: []string{"SDW-2000", "SW-48"}}},
		ProposalText: "proposal",
		Results: []contractx.CollaboratorResult{
			{Collaborator: "a", Content: "  first insight  "},
			{Collaborator: "b", Absent: true, Reason: "timeout"},
			{Collaborator: "c", Content: "second insight"},
		},
	}

	out, err := Finalize(st)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp := out.Response

	if resp.RequestID != "req-1" || resp.ProposalText != "proposal" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.CostPerBranch != 5000 || resp.CostTotal != 25000 {
		t.Fatalf("unexpected costs: %v / %v", resp.CostPerBranch, resp.CostTotal)
	}
	if len(resp.Enhancements) != 2 || resp.Enhancements[0] != "first insight" || resp.Enhancements[1] != "second insight" {
		t.Fatalf("unexpected enhancements: %+v", resp.Enhancements)
	}
	if out.TimedOut {
		t.Fatal("unexpected timed-out marker")
	}
}

func TestFinalizePropagatesTimedOut(t *testing.T) {
	t.Parallel()

	out, err := Finalize(&GraphState{
		RequestID:    "req-1",
		ProposalText: "proposal",
		Solution:     solutionFixture(),
		Intent:       contractx.Intent{UseCases: []string{"SD-WAN"}, BranchCount: 5},
		TimedOut:     true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.TimedOut {
		t.Fatal("expected the timed-out marker")
	}
	if len(out.Response.Products) != 2 || out.Response.ProposalText != "proposal" {
		t.Fatalf("partial response must survive: %+v", out.Response)
	}
}

func TestFinalizeNormalizesNilSlices(t *testing.T) {
	t.Parallel()

	out, err := Finalize(&GraphState{RequestID: "req-1", ProposalText: "proposal"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp := out.Response
	if resp.Products == nil || resp.Bundles == nil || resp.Enhancements == nil {
		t.Fatalf("expected non-nil slices: %+v", resp)
	}
	if len(resp.Products) != 0 || len(resp.Bundles) != 0 || len(resp.Enhancements) != 0 {
		t.Fatalf("expected empty slices: %+v", resp)
	}
}
