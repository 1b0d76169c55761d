package contract

import (
	"context"

	catalogx "github.com/iquotehq/iquote/agent/catalog"
)

type Extractor interface {
	Extract(text string) Intent
}

type Recommender interface {
	Recommend(intent Intent) Solution
	MatchBundles(useCases []string) []catalogx.Bundle
}

// Collaborator is one external enrichment agent reached over an opaque
// request/response channel. Call makes exactly one attempt and converts every
// failure mode into the absence marker.
type Collaborator interface {
	Name() string
	Call(ctx context.Context, req CollaboratorRequest) CollaboratorResult
}

// Narrator turns a base solution into customer-facing proposal text. There is
// no behavioral contract on the content; callers must be able to fall back
// when it fails.
type Narrator interface {
	Narrate(ctx context.Context, req NarrativeRequest) (string, error)
}
