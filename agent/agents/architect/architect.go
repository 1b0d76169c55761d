// Package architect narrates a base solution through a chat model. The
// narrative has no behavioral contract; the coordinator falls back to the
// deterministic proposal whenever Narrate fails.
package architect

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"

	catalogx "github.com/iquotehq/iquote/agent/catalog"
	contractx "github.com/iquotehq/iquote/agent/contract"
)

type Architect struct {
	runner compose.Runnable[map[string]any, string]
}

func New(ctx context.Context, chatModel einomodel.BaseChatModel, systemPrompt string) (*Architect, error) {
	runner, err := compileNarrativeGraph(ctx, chatModel, systemPrompt)
	if err != nil {
		return nil, fmt.Errorf("%w: compile architect graph: %v", contractx.ErrModelInvoke, err)
	}
	return &Architect{runner: runner}, nil
}

var _ contractx.Narrator = (*Architect)(nil)

func (a *Architect) Narrate(ctx context.Context, req contractx.NarrativeRequest) (string, error) {
	if strings.TrimSpace(req.Requirements) == "" {
		return "", fmt.Errorf("%w: requirements text is required", contractx.ErrValidation)
	}
	if req.Solution.IsEmpty() {
		return "", fmt.Errorf("%w: nothing to narrate for an empty solution", contractx.ErrValidation)
	}

	payload := map[string]any{
		"requirements":    req.Requirements,
		"branch_count":    req.BranchCount,
		"budget":          req.Budget,
		"use_cases":       req.Solution.UseCases,
		"products":        productLines(req.Solution.Products),
		"cost_per_branch": req.Solution.CostPerBranch(),
		"cost_total":      req.Solution.CostTotal(req.BranchCount),
	}
	input, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: marshal architect payload: %v", contractx.ErrValidation, err)
	}

	out, err := a.runner.Invoke(ctx, map[string]any{
		"input": string(input),
	})
	if err != nil {
		return "", fmt.Errorf("%w: architect invoke: %v", contractx.ErrModelInvoke, err)
	}

	narrative := strings.TrimSpace(out)
	if narrative == "" {
		return "", fmt.Errorf("%w: architect returned empty narrative", contractx.ErrModelInvoke)
	}
	return narrative, nil
}

func productLines(products []catalogx.Product) []string {
	lines := make([]string, 0, len(products))
	for _, p := range products {
		lines = append(lines, fmt.Sprintf("%s (%s): %.2f/unit - %s",
			p.Name, p.SKU, p.Price, strings.Join(p.UseCases, ", ")))
	}
	return lines
}
