// Package layout computes target independent drawing instructions for slides.
//
// The engine is pure: the same slide, theme, image availability and
// alternation state always produce the same instructions. Renderers in
// internal/render translate instructions into PPTX, HTML, PDF and PNG.
package layout

import (
	"fmt"

	"github.com/AghoghoOgbotor18/AIPPT/internal/colors"
	"github.com/AghoghoOgbotor18/AIPPT/internal/models"
	"github.com/AghoghoOgbotor18/AIPPT/internal/style"
)

const (
	headerBarHeight = 0.9
	bodyLineSpacing = 20
	listMargin      = 0.3
	overlayAlpha    = 60
)

// ImageSet reports which image sources were fetched successfully
type ImageSet interface {
	Has(url string) bool
}

// Alternation counts the creative two-panel content slides laid out so far.
// The zero value places the first image on the right.
type Alternation struct {
	creative int
}

// ImageOnRight reports the image side for the next creative two-panel slide
func (a Alternation) ImageOnRight() bool {
	return a.creative%2 == 0
}

func (a Alternation) advance() Alternation {
	a.creative++
	return a
}

// LayoutDeck lays out every slide in order, threading the alternation state
func LayoutDeck(deck *models.Deck, images ImageSet) *Deck {
	th := NewTheme(deck.Meta)
	out := &Deck{Theme: th, Slides: make([]Slide, 0, len(deck.Slides))}

	var alt Alternation
	for i, s := range deck.Slides {
		var ls Slide
		ls, alt = LayoutSlide(s, th, images, alt)
		ls.Index = i
		out.Slides = append(out.Slides, ls)
	}
	return out
}

// LayoutSlide lays out one slide and returns the alternation state for the
// next one. Unknown slide types yield a slide with only its background.
func LayoutSlide(s models.Slide, th Theme, images ImageSet, alt Alternation) (Slide, Alternation) {
	out := Slide{Type: string(s.Type), Background: th.Background}

	switch s.Type {
	case models.SlideTitle:
		out.Elements = titleSlide(s, th, images)
	case models.SlideIntro:
		out.Elements = paragraphSlide(s.Title, s.Text, th)
	case models.SlideContent:
		out.Elements, alt = contentSlide(s, th, images, alt)
	case models.SlideConclusion:
		title := s.Title
		if title == "" {
			title = "Conclusion"
		}
		out.Elements = paragraphSlide(title, s.Text, th)
	case models.SlideThankYou:
		out.Elements = thankYouSlide(s, th)
	}

	if out.Elements == nil {
		out.Elements = []Element{}
	}
	return out, alt
}

func available(images ImageSet, url string) bool {
	return url != "" && images != nil && images.Has(url)
}

func titleSlide(s models.Slide, th Theme, images ImageSet) []Element {
	var els []Element

	if available(images, s.ImageURL) {
		full := Box{0, 0, SlideWidth, SlideHeight}
		els = append(els,
			Element{Image: &Image{Box: full, Source: s.ImageURL, Fit: FitCover}},
			Element{Rect: &Rect{Box: full, Fill: colors.Black, Transparency: overlayAlpha}},
		)
	}

	els = append(els, Element{Text: &Text{
		Box:        Box{0.5, 1.5, 9, 2},
		Paragraphs: single(s.Title),
		FontFace:   th.FontFace,
		FontSize:   th.TitleSize + 12,
		Bold:       true,
		Color:      colors.White,
		Align:      style.AlignCenter,
		VAlign:     VAlignMiddle,
	}})

	if s.PresenterName != "" {
		els = append(els, Element{Text: &Text{
			Box:        Box{0.5, 3.3, 9, 0.7},
			Paragraphs: single(fmt.Sprintf("Presenter: %s", s.PresenterName)),
			FontFace:   th.FontFace,
			FontSize:   th.TextSize + 10,
			Color:      colors.White,
			Align:      style.AlignCenter,
			VAlign:     VAlignMiddle,
		}})
	}
	return els
}

// paragraphSlide is the shared shape of intro and conclusion slides
func paragraphSlide(title, text string, th Theme) []Element {
	hb := th.Layout.HeaderBar
	var els []Element
	if hb {
		els = append(els, headerBar(th))
	}

	titleColor := th.Accent
	titleY := 0.5
	bodyY := 1.3
	if hb {
		titleColor = colors.White
		titleY = 0.15
		bodyY = 1.2
	}

	els = append(els, Element{Text: &Text{
		Box:        Box{0.5, titleY, 9, 0.6},
		Paragraphs: single(title),
		FontFace:   th.FontFace,
		FontSize:   th.TitleSize - 10,
		Bold:       true,
		Color:      titleColor,
		Align:      style.AlignLeft,
		VAlign:     VAlignMiddle,
	}})

	if text != "" {
		els = append(els, Element{Text: &Text{
			Box:         Box{0.5, bodyY, 9, 3.8},
			Paragraphs:  single(text),
			FontFace:    th.FontFace,
			FontSize:    th.TextSize,
			Color:       th.TextColor,
			Align:       th.Layout.ContentAlign,
			VAlign:      VAlignTop,
			LineSpacing: bodyLineSpacing,
		}})
	}
	return els
}

func contentSlide(s models.Slide, th Theme, images ImageSet, alt Alternation) ([]Element, Alternation) {
	l := th.Layout
	hasImage := available(images, s.ImageURL) && l.ImagePosition != style.ImageNone

	var els []Element
	if l.HeaderBar {
		els = append(els, headerBar(th))
	}

	if th.StyleName == style.Creative && hasImage && l.ImagePosition == style.ImageRight {
		return append(els, creativePanels(s, th, alt.ImageOnRight())...), alt.advance()
	}

	marker := MarkerNumber
	if l.BulletStyle {
		marker = MarkerBullet
	}

	titleColor := th.Accent
	titleY := 0.4
	listY := 1.2
	if l.HeaderBar {
		titleColor = colors.White
		titleY = 0.12
		listY = 1.3
	}

	els = append(els, Element{Text: &Text{
		Box:        Box{0.5, titleY, 9, 0.6},
		Paragraphs: single(s.Title),
		FontFace:   th.FontFace,
		FontSize:   th.TitleSize - 12,
		Bold:       true,
		Color:      titleColor,
		Align:      l.TitleAlign,
		VAlign:     VAlignMiddle,
	}})

	listW := 9.0
	if hasImage && l.ImagePosition == style.ImageRight {
		listW = 5.5
	}
	if len(s.Points) > 0 {
		els = append(els, pointList(s.Points, marker, Box{0.5, listY, listW, 4.3}, th))
	}

	if hasImage && l.ImagePosition == style.ImageRight {
		els = append(els, Element{Image: &Image{
			Box:    Box{6.5, 1.1, 3, 3.5},
			Source: s.ImageURL,
			Fit:    FitContain,
		}})
	}
	return els, alt
}

// creativePanels splits the area below the header into a text panel and a
// full height image on the alternating side.
func creativePanels(s models.Slide, th Theme, imageOnRight bool) []Element {
	textX, imageX := 3.5, 0.0
	if imageOnRight {
		textX, imageX = 0, 6.5
	}

	els := []Element{
		{Rect: &Rect{Box: Box{textX, headerBarHeight, 6.5, 5.3}, Fill: th.Background}},
		{Text: &Text{
			Box:        Box{0.5, 0.15, 9, 0.6},
			Paragraphs: single(s.Title),
			FontFace:   th.FontFace,
			FontSize:   th.TitleSize - 12,
			Bold:       true,
			Color:      colors.White,
			Align:      style.AlignLeft,
			VAlign:     VAlignMiddle,
		}},
	}
	if len(s.Points) > 0 {
		els = append(els, pointList(s.Points, MarkerBullet, Box{textX + 0.5, 1.3, 5.5, 4.3}, th))
	}
	return append(els, Element{Image: &Image{
		Box:    Box{imageX, headerBarHeight, 3.5, 5.3},
		Source: s.ImageURL,
		Fit:    FitCover,
	}})
}

func thankYouSlide(s models.Slide, th Theme) []Element {
	title := s.Title
	if title == "" {
		title = "Thank You"
	}
	return []Element{{Text: &Text{
		Box:        Box{0.5, 2.2, 9, 1.5},
		Paragraphs: single(title),
		FontFace:   th.FontFace,
		FontSize:   th.TitleSize + 8,
		Bold:       true,
		Color:      th.Accent,
		Align:      style.AlignCenter,
		VAlign:     VAlignMiddle,
	}}}
}

func headerBar(th Theme) Element {
	return Element{Rect: &Rect{Box: Box{0, 0, SlideWidth, headerBarHeight}, Fill: th.Accent}}
}

func pointList(points []models.Point, marker Marker, box Box, th Theme) Element {
	paras := make([]Paragraph, len(points))
	for i, p := range points {
		paras[i] = Paragraph{Text: PointText(p), Marker: marker}
	}
	return Element{Text: &Text{
		Box:         box,
		Paragraphs:  paras,
		FontFace:    th.FontFace,
		FontSize:    th.TextSize - 2,
		Color:       th.TextColor,
		Align:       style.AlignLeft,
		VAlign:      VAlignTop,
		LineSpacing: bodyLineSpacing,
		Margin:      listMargin,
	}}
}

// PointText joins a point and its explanation the way lists display them
func PointText(p models.Point) string {
	return fmt.Sprintf("%s: %s", p.Text, p.Explanation)
}

func single(text string) []Paragraph {
	return []Paragraph{{Text: text}}
}
