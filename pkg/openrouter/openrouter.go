package openrouter

import (
	"context"
	"fmt"
	"strings"
	"time"

	openaimodel "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Config holds the OpenRouter connection settings for the solution architect
// model. APIKey may be empty: the architect is optional and the coordinator
// falls back to the deterministic proposal when no model is wired.
type Config struct {
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true" default:"https://openrouter.ai/api/v1"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true"`
	Model              string        `envconfig:"MODEL" split_words:"true"`
	MaxCompletionToken *int          `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"2000"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0.5"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
	SiteURL            string        `envconfig:"SITE_URL" split_words:"true"`
	SiteName           string        `envconfig:"SITE_NAME" split_words:"true"`
}

// Enabled reports whether enough settings are present to build a chat model.
func (c Config) Enabled() bool {
	return strings.TrimSpace(c.APIKey) != "" && strings.TrimSpace(c.Model) != ""
}

// New builds an eino chat model backed by OpenRouter.
func (c Config) New(ctx context.Context) (model.ToolCallingChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("openrouter: api key and model are required")
	}

	conf := &openaimodel.ChatModelConfig{
		BaseURL:     strings.TrimRight(c.BaseURL, "/"),
		APIKey:      strings.TrimSpace(c.APIKey),
		Model:       strings.TrimSpace(c.Model),
		MaxTokens:   c.MaxCompletionToken,
		Temperature: &c.Temperature,
		Timeout:     c.Timeout,
	}

	m, err := openaimodel.NewChatModel(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("openrouter: create chat model: %w", err)
	}

	return m, nil
}

// NewClient creates a raw OpenAI SDK client configured for OpenRouter. Returns
// nil when no API key is configured.
func NewClient(cfg Config) *openaisdk.Client {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil
	}

	opts := []option.RequestOption{
		option.WithAPIKey(strings.TrimSpace(cfg.APIKey)),
	}

	if trimmed := strings.TrimRight(cfg.BaseURL, "/"); trimmed != "" {
		opts = append(opts, option.WithBaseURL(trimmed))
	}

	if cfg.SiteURL != "" {
		opts = append(opts, option.WithHeader("HTTP-Referer", cfg.SiteURL))
	}
	if cfg.SiteName != "" {
		opts = append(opts, option.WithHeader("X-Title", cfg.SiteName))
	}

	client := openaisdk.NewClient(opts...)
	return &client
}
