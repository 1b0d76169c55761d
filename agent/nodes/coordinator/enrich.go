package coordinatornode

import (
	"context"
	"fmt"
	"sync"

	contractx "github.com/iquotehq/iquote/agent/contract"
)

// Enrich fans the request out to every configured collaborator. The calls run
// concurrently and independently: each gateway bounds its own wait and
// degrades to the absence marker on failure, so the slowest collaborator
// determines the phase duration but none can block past its timeout.
func Enrich(ctx context.Context, in *GraphState, collaborators []contractx.Collaborator) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	if len(collaborators) == 0 {
		return in, nil
	}

	req := contractx.CollaboratorRequest{
		Text: in.Text,
		Context: map[string]any{
			"use_cases":       in.Solution.UseCases,
			"skus":            solutionSKUs(in.Solution),
			"branch_count":    in.Intent.BranchCount,
			"cost_per_branch": in.Solution.CostPerBranch(),
		},
	}

	// One result slot per collaborator; each goroutine writes only its own.
	results := make([]contractx.CollaboratorResult, len(collaborators))
	var wg sync.WaitGroup
	for i, collab := range collaborators {
		wg.Add(1)
		go func(slot int, c contractx.Collaborator) {
			defer wg.Done()
			results[slot] = c.Call(ctx, req)
		}(i, collab)
	}
	wg.Wait()

	in.Results = results
	// An expired deadline never discards what is already merged; it only
	// marks the request so the caller records it as timed out.
	if ctx.Err() != nil {
		in.TimedOut = true
	}
	return in, nil
}

func solutionSKUs(sol contractx.Solution) []string {
	skus := make([]string, 0, len(sol.Products))
	for _, p := range sol.Products {
		skus = append(skus, p.SKU)
	}
	return skus
}
