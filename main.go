package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	architectx "github.com/iquotehq/iquote/agent/agents/architect"
	coordinatorx "github.com/iquotehq/iquote/agent/agents/coordinator"
	catalogx "github.com/iquotehq/iquote/agent/catalog"
	contractx "github.com/iquotehq/iquote/agent/contract"
	extractx "github.com/iquotehq/iquote/agent/extract"
	gatewayx "github.com/iquotehq/iquote/agent/gateway"
	promptx "github.com/iquotehq/iquote/agent/prompt"
	recommendx "github.com/iquotehq/iquote/agent/recommend"
	statex "github.com/iquotehq/iquote/agent/state"
	configx "github.com/iquotehq/iquote/pkg/config"
	_ "github.com/iquotehq/iquote/pkg/logger/autoload"
	openrouterx "github.com/iquotehq/iquote/pkg/openrouter"
)

type AppConfig struct {
	OverallTimeout time.Duration `envconfig:"OVERALL_TIMEOUT" split_words:"true" default:"30s"`
}

const demoRequirement = "I need SD-WAN and switching for 5 branches"

func main() {
	ctx := context.Background()

	appCfg := configx.MustNew[AppConfig]("IQUOTE")

	cat := catalogx.MustLoad()
	engine, err := recommendx.New(cat)
	if err != nil {
		panic(err)
	}

	coord, err := coordinatorx.New(
		statex.NewMemoryStore(),
		extractx.New(),
		engine,
		coordinatorx.Config{
			Narrator:       buildNarrator(ctx),
			Collaborators:  buildCollaborators(),
			OverallTimeout: appCfg.OverallTimeout,
		},
	)
	if err != nil {
		panic(err)
	}

	requirement := strings.TrimSpace(strings.Join(os.Args[1:], " "))
	if requirement == "" {
		requirement = demoRequirement
	}

	resp, err := coord.Process(ctx, requirement)
	if err != nil {
		log.Error().Err(err).Msg("request rejected")
		os.Exit(1)
	}

	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		panic(err)
	}
	fmt.Println(string(out))
}

// buildCollaborators wires the proposal-enhancer and live-catalog gateways
// when their endpoints are configured. Missing endpoints just mean fewer
// enrichment sources.
func buildCollaborators() []contractx.Collaborator {
	var collabs []contractx.Collaborator

	enhancerCfg := configx.MustNew[gatewayx.Config]("ENHANCER")
	if strings.TrimSpace(enhancerCfg.URL) != "" {
		collabs = append(collabs, gatewayx.MustNew("proposal-enhancer", *enhancerCfg))
	}

	feedCfg := configx.MustNew[gatewayx.Config]("CATALOG_FEED")
	if strings.TrimSpace(feedCfg.URL) != "" {
		collabs = append(collabs, gatewayx.MustNew("live-catalog", *feedCfg))
	}

	return collabs
}

func buildNarrator(ctx context.Context) contractx.Narrator {
	cfg := configx.MustNew[openrouterx.Config]("OPENROUTER")
	if !cfg.Enabled() {
		return nil
	}

	if openrouterx.NewClient(*cfg) == nil {
		log.Warn().Msg("openrouter client unavailable, proposals stay deterministic")
		return nil
	}

	chatModel, err := cfg.New(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("architect model unavailable, proposals stay deterministic")
		return nil
	}

	prompts := promptx.LoadPromptSet()
	arch, err := architectx.New(ctx, chatModel, prompts.Architect)
	if err != nil {
		log.Warn().Err(err).Msg("architect setup failed, proposals stay deterministic")
		return nil
	}
	return arch
}
