package architect

import (
	"context"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/iquotehq/iquote/agent/contract"
)

func compileNarrativeGraph(
	ctx context.Context,
	chatModel einomodel.BaseChatModel,
	systemPrompt string,
) (compose.Runnable[map[string]any, string], error) {
	template := einoprompt.FromMessages(
		schema.FString,
		schema.SystemMessage(systemPrompt),
		schema.UserMessage("{input}"),
	)

	graph := compose.NewGraph[map[string]any, string]()
	if err := graph.AddChatTemplateNode("prompt", template); err != nil {
		return nil, fmt.Errorf("add narrative prompt node: %w", err)
	}
	if err := graph.AddChatModelNode("model", chatModel); err != nil {
		return nil, fmt.Errorf("add narrative model node: %w", err)
	}
	if err := graph.AddLambdaNode("content",
		compose.InvokableLambda(func(ctx context.Context, msg *schema.Message) (string, error) {
			if msg == nil {
				return "", fmt.Errorf("%w: model returned nil message", contractx.ErrModelInvoke)
			}
			return strings.TrimSpace(msg.Content), nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add narrative content node: %w", err)
	}

	edges := [][2]string{
		{compose.START, "prompt"},
		{"prompt", "model"},
		{"model", "content"},
		{"content", compose.END},
	}
	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add narrative edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("architect.narrative_graph"))
	if err != nil {
		return nil, fmt.Errorf("compile narrative graph: %w", err)
	}
	return runner, nil
}
