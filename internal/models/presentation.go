package models

import (
	"bytes"
	"encoding/json"
)

// SlideType selects the layout branch for a slide
type SlideType string

const (
	SlideTitle      SlideType = "title"
	SlideIntro      SlideType = "intro"
	SlideContent    SlideType = "content"
	SlideConclusion SlideType = "conclusion"
	SlideThankYou   SlideType = "thank-you"
)

// Known reports whether the layout engine has a branch for t
func (t SlideType) Known() bool {
	switch t {
	case SlideTitle, SlideIntro, SlideContent, SlideConclusion, SlideThankYou:
		return true
	}
	return false
}

// Point is one bullet of a content slide
type Point struct {
	Text        string `json:"text"`
	Explanation string `json:"explanation"`
}

// UnmarshalJSON accepts either a point object or a bare string. Bullets
// added in the editor arrive as plain strings.
func (p *Point) UnmarshalJSON(data []byte) error {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		*p = Point{Text: text}
		return nil
	}

	type point Point
	var v point
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Point(v)
	return nil
}

// Slide is one slide record as produced by content generation or user edits
type Slide struct {
	Type          SlideType `json:"type"`
	Title         string    `json:"title,omitempty"`
	Text          string    `json:"text,omitempty"`
	Points        []Point   `json:"points,omitempty"`
	PresenterName string    `json:"presenterName,omitempty"`
	NeedsImage    bool      `json:"needsImage,omitempty"`
	ImageQuery    string    `json:"imageQuery,omitempty"`
	ImageURL      string    `json:"imageUrl,omitempty"`
}

// Meta holds deck-wide formatting settings
type Meta struct {
	Topic         string  `json:"topic"`
	Theme         string  `json:"theme"`
	PresenterName string  `json:"presenterName"`
	SlideCount    int     `json:"slideCount,omitempty"`
	TitleFontSize float64 `json:"titleFontSize"`
	TextFontSize  float64 `json:"textFontSize"`
	FontStyle     string  `json:"fontStyle"`
	SlideStyle    string  `json:"slideStyle"`
}

// Deck is the editable presentation: meta plus ordered slides
type Deck struct {
	Meta   Meta    `json:"meta"`
	Slides []Slide `json:"slides"`
}

const (
	DefaultTheme         = "white"
	DefaultTitleFontSize = 48
	DefaultTextFontSize  = 18
	DefaultFontStyle     = "Arial"
	DefaultSlideStyle    = "professional"
	DefaultSlideCount    = 6
	DefaultAuthor        = "AI PPT Generator"
	DefaultDocumentTitle = "Presentation"
)

// WithDefaults returns a copy of m with empty fields filled in
func (m Meta) WithDefaults() Meta {
	if m.Theme == "" {
		m.Theme = DefaultTheme
	}
	if m.TitleFontSize <= 0 {
		m.TitleFontSize = DefaultTitleFontSize
	}
	if m.TextFontSize <= 0 {
		m.TextFontSize = DefaultTextFontSize
	}
	if m.FontStyle == "" {
		m.FontStyle = DefaultFontStyle
	}
	if m.SlideStyle == "" {
		m.SlideStyle = DefaultSlideStyle
	}
	return m
}

// Author is the document author written into output properties
func (m Meta) Author() string {
	if m.PresenterName != "" {
		return m.PresenterName
	}
	return DefaultAuthor
}

// DocumentTitle is the document title written into output properties
func (m Meta) DocumentTitle() string {
	if m.Topic != "" {
		return m.Topic
	}
	return DefaultDocumentTitle
}

// ImageURLs returns the distinct image URLs referenced by the deck, in slide order
func (d *Deck) ImageURLs() []string {
	seen := make(map[string]bool)
	var urls []string
	for _, s := range d.Slides {
		if s.ImageURL == "" || seen[s.ImageURL] {
			continue
		}
		seen[s.ImageURL] = true
		urls = append(urls, s.ImageURL)
	}
	return urls
}
