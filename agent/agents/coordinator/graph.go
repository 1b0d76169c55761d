package coordinator

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	nodex "github.com/iquotehq/iquote/agent/nodes/coordinator"
	statex "github.com/iquotehq/iquote/agent/state"
)

func (c *Coordinator) compileProcessGraph(
	ctx context.Context,
) (compose.Runnable[nodex.GraphInput, nodex.GraphOutput], error) {
	graph := compose.NewGraph[nodex.GraphInput, nodex.GraphOutput]()

	if err := graph.AddLambdaNode("validate_request",
		compose.InvokableLambda(func(ctx context.Context, in nodex.GraphInput) (*nodex.GraphState, error) {
			return nodex.ValidateRequest(in, c.now)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_request: %w", err)
	}

	if err := graph.AddLambdaNode("extract_intent",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			c.advance(in.RequestID, statex.StateExtracting)
			return nodex.ExtractIntent(in, c.extractor)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node extract_intent: %w", err)
	}

	if err := graph.AddLambdaNode("match_products",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			c.advance(in.RequestID, statex.StateMatching)
			return nodex.MatchProducts(in, c.recommender)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node match_products: %w", err)
	}

	if err := graph.AddLambdaNode("compose_proposal",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.ComposeProposal(ctx, in, c.narrator)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node compose_proposal: %w", err)
	}

	if err := graph.AddLambdaNode("enrich",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			c.advance(in.RequestID, statex.StateEnriching)
			// The overall deadline is measured from request receipt and
			// bounds only this phase. It must not cancel the surrounding
			// graph: the merged state survives expiry and still reaches
			// finalize.
			enrichCtx, cancel := context.WithDeadline(ctx, in.Now.Add(c.overallTimeout))
			defer cancel()
			return nodex.Enrich(enrichCtx, in, c.collaborators)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node enrich: %w", err)
	}

	if err := graph.AddLambdaNode("finalize",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (nodex.GraphOutput, error) {
			return nodex.Finalize(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node finalize: %w", err)
	}

	edges := [][2]string{
		{compose.START, "validate_request"},
		{"validate_request", "extract_intent"},
		{"extract_intent", "match_products"},
		{"match_products", "compose_proposal"},
		{"compose_proposal", "enrich"},
		{"enrich", "finalize"},
		{"finalize", compose.END},
	}

	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("coordinator.process"))
	if err != nil {
		return nil, fmt.Errorf("compile coordinator graph: %w", err)
	}
	return runner, nil
}
