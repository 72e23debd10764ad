package content

import (
	"context"
	"fmt"
	"log"

	"github.com/AghoghoOgbotor18/AIPPT/internal/models"
)

// Generator turns a generation request into slide records
type Generator struct {
	adapter Adapter
}

// NewGenerator creates a generator backed by adapter
func NewGenerator(adapter Adapter) *Generator {
	return &Generator{adapter: adapter}
}

// Generate prompts the model once and returns parsed, normalized slides
func (g *Generator) Generate(ctx context.Context, req models.GenerateSlidesRequest) ([]models.Slide, error) {
	if g.adapter == nil {
		return nil, models.ErrLLMUnavailable
	}

	raw, err := g.adapter.Complete(ctx, SystemPrompt, BuildPrompt(req))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", g.adapter.Name(), err)
	}

	slides, err := ParseSlides(raw)
	if err != nil {
		return nil, err
	}

	log.Printf("Generated %d slides for topic %q via %s", len(slides), req.Topic, g.adapter.Name())
	return Normalize(slides), nil
}
