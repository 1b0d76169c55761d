package coordinatornode

import (
	"fmt"

	contractx "github.com/iquotehq/iquote/agent/contract"
)

func MatchProducts(in *GraphState, recommender contractx.Recommender) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	in.Solution = recommender.Recommend(in.Intent)
	in.Bundles = recommender.MatchBundles(in.Intent.UseCases)
	return in, nil
}
