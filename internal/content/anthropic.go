package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/AghoghoOgbotor18/AIPPT/internal/config"
	"github.com/AghoghoOgbotor18/AIPPT/internal/models"
)

const DefaultAnthropicModel = "claude-sonnet-4-20250514"

// AnthropicAdapter uses the Anthropic Messages API
type AnthropicAdapter struct {
	client      anthropic.Client
	model       string
	maxTokens   int64
	temperature float64
}

// NewAnthropicAdapter creates an Anthropic adapter
func NewAnthropicAdapter(cfg config.LLMConfig, opts ...option.RequestOption) (*AnthropicAdapter, error) {
	if cfg.Anthropic.APIKey == "" {
		return nil, fmt.Errorf("%w: ANTHROPIC_API_KEY not set", models.ErrLLMUnavailable)
	}

	model := cfg.Anthropic.Model
	if model == "" {
		model = DefaultAnthropicModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}

	opts = append([]option.RequestOption{option.WithAPIKey(cfg.Anthropic.APIKey)}, opts...)
	return &AnthropicAdapter{
		client:      anthropic.NewClient(opts...),
		model:       model,
		maxTokens:   maxTokens,
		temperature: cfg.Temperature,
	}, nil
}

func (a *AnthropicAdapter) Name() string {
	return "anthropic-api"
}

func (a *AnthropicAdapter) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(a.model),
		MaxTokens:   a.maxTokens,
		Temperature: anthropic.Float(a.temperature),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API error: %w", err)
	}

	var output strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			output.WriteString(block.Text)
		}
	}
	return strings.TrimSpace(output.String()), nil
}
