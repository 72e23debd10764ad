package layout

import (
	"github.com/AghoghoOgbotor18/AIPPT/internal/colors"
	"github.com/AghoghoOgbotor18/AIPPT/internal/models"
	"github.com/AghoghoOgbotor18/AIPPT/internal/style"
)

// Theme is everything the engine derives once per deck from meta
type Theme struct {
	StyleName  string       `json:"style"`
	Background string       `json:"background"`
	TextColor  string       `json:"textColor"`
	Accent     string       `json:"accent"`
	Layout     style.Layout `json:"layout"`
	FontFace   string       `json:"fontFace"`
	TitleSize  float64      `json:"titleSize"`
	TextSize   float64      `json:"textSize"`
	Title      string       `json:"title"`
	Author     string       `json:"author"`
}

// NewTheme resolves colors, style and typography from meta
func NewTheme(meta models.Meta) Theme {
	m := meta.WithDefaults()
	bg := colors.Resolve(m.Theme)
	return Theme{
		StyleName:  m.SlideStyle,
		Background: bg,
		TextColor:  colors.Contrast(bg),
		Accent:     style.Accent(m.SlideStyle),
		Layout:     style.LayoutFor(m.SlideStyle),
		FontFace:   m.FontStyle,
		TitleSize:  m.TitleFontSize,
		TextSize:   m.TextFontSize,
		Title:      m.DocumentTitle(),
		Author:     m.Author(),
	}
}
