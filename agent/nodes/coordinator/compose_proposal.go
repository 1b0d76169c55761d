package coordinatornode

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	contractx "github.com/iquotehq/iquote/agent/contract"
	recommendx "github.com/iquotehq/iquote/agent/recommend"
)

// ComposeProposal renders the proposal text. When a narrator is wired and the
// solution is non-empty it gets the first shot; any narrator failure silently
// falls back to the deterministic proposal.
func ComposeProposal(ctx context.Context, in *GraphState, narrator contractx.Narrator) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	in.ProposalText = recommendx.FormatProposal(in.Solution, in.Intent.BranchCount, in.Intent.Budget)

	if narrator == nil || in.Solution.IsEmpty() {
		return in, nil
	}

	narrative, err := narrator.Narrate(ctx, contractx.NarrativeRequest{
		Requirements: in.Text,
		Solution:     in.Solution,
		BranchCount:  in.Intent.BranchCount,
		Budget:       in.Intent.Budget,
	})
	if err != nil {
		log.Warn().
			Str("request_id", in.RequestID).
			Err(err).
			Msg("architect narration failed, using deterministic proposal")
		return in, nil
	}

	in.ProposalText = narrative
	return in, nil
}
