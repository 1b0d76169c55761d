package coordinatornode

import (
	"fmt"

	contractx "github.com/iquotehq/iquote/agent/contract"
)

func ExtractIntent(in *GraphState, extractor contractx.Extractor) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	in.Intent = extractor.Extract(in.Text)
	return in, nil
}
