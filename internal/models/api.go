package models

import "time"

// GenerateSlidesRequest is the body of POST /api/generate-slides
type GenerateSlidesRequest struct {
	Topic         string  `json:"topic"`
	SlideCount    int     `json:"slideCount"`
	Theme         string  `json:"theme"`
	PresenterName string  `json:"presenterName"`
	ExtraNote     string  `json:"extraNote"`
	TitleFontSize float64 `json:"titleFontSize"`
	TextFontSize  float64 `json:"textFontSize"`
	FontStyle     string  `json:"fontStyle"`
	SlideStyle    string  `json:"slideStyle"`
}

// Meta returns the settings echoed back with generated slides
func (r GenerateSlidesRequest) Meta() Meta {
	return Meta{
		Topic:         r.Topic,
		Theme:         r.Theme,
		PresenterName: r.PresenterName,
		SlideCount:    r.SlideCount,
		TitleFontSize: r.TitleFontSize,
		TextFontSize:  r.TextFontSize,
		FontStyle:     r.FontStyle,
		SlideStyle:    r.SlideStyle,
	}
}

// GenerateSlidesResponse is returned by POST /api/generate-slides
type GenerateSlidesResponse struct {
	Success bool    `json:"success"`
	DeckID  string  `json:"deckId,omitempty"`
	Meta    Meta    `json:"meta"`
	Slides  []Slide `json:"slides"`
}

// GenerateDocumentRequest is the body of POST /api/generate-ppt-from-json
type GenerateDocumentRequest struct {
	DeckID string  `json:"deckId,omitempty"`
	Meta   Meta    `json:"meta"`
	Slides []Slide `json:"slides"`
}

// GenerateDocumentResponse carries base64 encoded files. PDFFile is null when
// the PDF could not be produced.
type GenerateDocumentResponse struct {
	Success  bool    `json:"success"`
	DeckID   string  `json:"deckId,omitempty"`
	PPTXFile string  `json:"pptxFile"`
	PDFFile  *string `json:"pdfFile"`
}

// ErrorResponse is the JSON body of every failed request
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// DeckRecord is a stored deck
type DeckRecord struct {
	ID         string    `json:"id"`
	Topic      string    `json:"topic"`
	SlideStyle string    `json:"slideStyle"`
	SlideCount int       `json:"slideCount"`
	Deck       *Deck     `json:"deck,omitempty"`
	Files      []string  `json:"files,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ArtifactRecord lists the files stored for one deck
type ArtifactRecord struct {
	DeckID    string            `json:"deckId"`
	Files     map[string]string `json:"files"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// ArtifactsFile is the on-disk index of stored artifacts
type ArtifactsFile struct {
	Decks map[string]*ArtifactRecord `json:"decks"`
}
