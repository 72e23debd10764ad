package content

import (
	"fmt"
	"strings"

	"github.com/AghoghoOgbotor18/AIPPT/internal/models"
)

// SystemPrompt keeps the model in JSON-only mode
const SystemPrompt = "You are a presentation expert that generates ONLY valid JSON. Never include markdown or explanations."

const slideSchema = `{
  "slides": [
    {
      "type": "title",
      "title": "Main Title",
      "presenterName": "Name",
      "needsImage": true,
      "imageQuery": "search term for background"
    },
    {
      "type": "intro",
      "title": "Introduction",
      "text": "intro paragraph (2-3 sentences)",
      "points": []
    },
    {
      "type": "content",
      "title": "Section Title",
      "points": [
        { "text": "Main point", "explanation": "Detailed explanation (2-3 sentences)" },
        { "text": "Another point", "explanation": "Comprehensive explanation (2-3 sentences)" }
      ],
      "needsImage": true,
      "imageQuery": "relevant search term"
    },
    {
      "type": "conclusion",
      "title": "Conclusion",
      "text": "Comprehensive concluding paragraph (3-4 sentences)",
      "points": []
    },
    {
      "type": "thank-you",
      "title": "Thank You"
    }
  ]
}`

var styleGuidelines = map[string]string{
	"corporate":    "- Use formal, business-appropriate language\n- Focus on data and metrics",
	"creative":     "- Use vivid, descriptive language\n- Include metaphors and storytelling",
	"minimalist":   "- Use concise, clear language\n- Fewer points, more impact",
	"professional": "- Use balanced, authoritative language\n- Mix data with insights",
}

const rules = `Rules:
1. First slide: type "title" with topic and presenter name
2. Second slide: type "intro" with introduction text (2-3 sentences)
3. Middle slides: type "content" with bullet points
4. Second to last: type "conclusion" with paragraph text
5. Last slide: type "thank-you"
6. Return ONLY the JSON object
7. Some content slides should have needsImage=true
8. ALWAYS include conclusion before thank-you`

// BuildPrompt renders the user prompt for a generation request
func BuildPrompt(req models.GenerateSlidesRequest) string {
	presenter := req.PresenterName
	if presenter == "" {
		presenter = "Presenter"
	}
	notes := req.ExtraNote
	if notes == "" {
		notes = "none"
	}

	var b strings.Builder
	b.WriteString("You are an AI that generates professional PowerPoint slides.\n\n")
	fmt.Fprintf(&b, "Topic: %q\n", req.Topic)
	fmt.Fprintf(&b, "Total slides needed: %d\n", req.SlideCount)
	fmt.Fprintf(&b, "Theme color: %s\n", req.Theme)
	fmt.Fprintf(&b, "Presenter name: %s\n", presenter)
	fmt.Fprintf(&b, "Slide style: %s\n", req.SlideStyle)
	fmt.Fprintf(&b, "Extra notes: %s\n\n", notes)
	b.WriteString("Generate a JSON object with this EXACT structure:\n")
	b.WriteString(slideSchema)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Style Guidelines for %q:\n", req.SlideStyle)
	if g, ok := styleGuidelines[req.SlideStyle]; ok {
		b.WriteString(g)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(rules)
	b.WriteString("\n")
	return b.String()
}
