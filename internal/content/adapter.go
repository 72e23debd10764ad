// Package content generates slide records from a topic with a language model.
package content

import (
	"context"
	"fmt"

	"github.com/AghoghoOgbotor18/AIPPT/internal/config"
	"github.com/AghoghoOgbotor18/AIPPT/internal/models"
)

// Adapter is a chat style language model backend
type Adapter interface {
	// Name returns the adapter identifier for logging.
	Name() string

	// Complete sends a system and user prompt and returns the raw reply text.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// SelectAdapter builds the adapter named by cfg.Provider. "auto" prefers
// OpenAI and falls back to Anthropic, whichever has a key.
func SelectAdapter(cfg config.LLMConfig) (Adapter, error) {
	provider := cfg.Provider
	if provider == "" || provider == "auto" {
		switch {
		case cfg.OpenAI.APIKey != "":
			provider = "openai"
		case cfg.Anthropic.APIKey != "":
			provider = "anthropic"
		default:
			return nil, models.ErrLLMUnavailable
		}
	}

	switch provider {
	case "openai":
		a, err := NewOpenAIAdapter(cfg)
		if err != nil {
			return nil, err
		}
		return a, nil
	case "anthropic":
		a, err := NewAnthropicAdapter(cfg)
		if err != nil {
			return nil, err
		}
		return a, nil
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", models.ErrInvalidInput, cfg.Provider)
	}
}
