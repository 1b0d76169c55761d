package coordinatornode

import (
	"fmt"
	"strings"

	catalogx "github.com/iquotehq/iquote/agent/catalog"
	contractx "github.com/iquotehq/iquote/agent/contract"
)

// Finalize merges the base solution with every successful collaborator
// result. Absent results are omitted without placeholder text.
func Finalize(in *GraphState) (GraphOutput, error) {
	if in == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	products := in.Solution.Products
	if products == nil {
		products = []catalogx.Product{}
	}
	bundles := in.Bundles
	if bundles == nil {
		bundles = []catalogx.Bundle{}
	}

	enhancements := []string{}
	for _, res := range in.Results {
		if res.Absent {
			continue
		}
		if content := strings.TrimSpace(res.Content); content != "" {
			enhancements = append(enhancements, content)
		}
	}

	return GraphOutput{
		Response: contractx.ProposalResponse{
			RequestID:     in.RequestID,
			ProposalText:  in.ProposalText,
			Products:      products,
			CostPerBranch: in.Solution.CostPerBranch(),
			CostTotal:     in.Solution.CostTotal(in.Intent.BranchCount),
			Bundles:       bundles,
			Enhancements:  enhancements,
		},
		TimedOut: in.TimedOut,
	}, nil
}
