package content

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/AghoghoOgbotor18/AIPPT/internal/models"
)

// ParseSlides extracts the slide list from a model reply. The reply may be
// wrapped in markdown fences or surrounded by prose. Both {"slides": [...]}
// and a bare array are accepted.
func ParseSlides(raw string) ([]models.Slide, error) {
	output := strings.TrimSpace(raw)
	output = strings.ReplaceAll(output, "```json", "")
	output = strings.ReplaceAll(output, "```", "")
	output = strings.TrimSpace(output)

	if strings.HasPrefix(output, "[") {
		var slides []models.Slide
		if err := json.Unmarshal([]byte(output), &slides); err != nil {
			log.Printf("Failed to parse model reply: %v", err)
			return nil, models.ErrInvalidAIResponse
		}
		return slides, nil
	}

	start := strings.Index(output, "{")
	end := strings.LastIndex(output, "}")
	if start == -1 || end < start {
		log.Printf("No JSON object found in model reply")
		return nil, models.ErrInvalidAIResponse
	}

	var wrapped struct {
		Slides *[]models.Slide `json:"slides"`
	}
	if err := json.Unmarshal([]byte(output[start:end+1]), &wrapped); err != nil {
		log.Printf("Failed to parse model reply: %v", err)
		return nil, models.ErrInvalidAIResponse
	}
	if wrapped.Slides == nil {
		log.Printf("Model reply has no slides field")
		return nil, models.ErrInvalidAIResponse
	}
	return *wrapped.Slides, nil
}
