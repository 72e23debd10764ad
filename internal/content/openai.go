package content

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/AghoghoOgbotor18/AIPPT/internal/config"
	"github.com/AghoghoOgbotor18/AIPPT/internal/models"
)

const (
	DefaultOpenAIModel = "gpt-4o-mini"
	defaultLLMTimeout  = 120 * time.Second
)

// OpenAIAdapter calls the chat completions endpoint in JSON mode
type OpenAIAdapter struct {
	client      openai.Client
	model       string
	temperature float64
}

// NewOpenAIAdapter creates an OpenAI adapter. A configured base URL
// replaces the public endpoint.
func NewOpenAIAdapter(cfg config.LLMConfig, opts ...option.RequestOption) (*OpenAIAdapter, error) {
	if cfg.OpenAI.APIKey == "" {
		return nil, fmt.Errorf("%w: OPENAI_API_KEY not set", models.ErrLLMUnavailable)
	}
	model := cfg.OpenAI.Model
	if model == "" {
		model = DefaultOpenAIModel
	}

	base := []option.RequestOption{
		option.WithAPIKey(cfg.OpenAI.APIKey),
		option.WithRequestTimeout(defaultLLMTimeout),
	}
	if cfg.OpenAI.BaseURL != "" {
		base = append(base, option.WithBaseURL(strings.TrimSuffix(cfg.OpenAI.BaseURL, "/")+"/"))
	}

	return &OpenAIAdapter{
		client:      openai.NewClient(append(base, opts...)...),
		model:       model,
		temperature: cfg.Temperature,
	}, nil
}

func (a *OpenAIAdapter) Name() string {
	return "openai"
}

func (a *OpenAIAdapter) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(a.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		Temperature: openai.Float(a.temperature),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai error: no choices returned")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
