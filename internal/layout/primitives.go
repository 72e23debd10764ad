package layout

import "github.com/AghoghoOgbotor18/AIPPT/internal/style"

// Slide canvas in inches (16:9)
const (
	SlideWidth  = 10.0
	SlideHeight = 5.625
)

// Box is a position and size in inches from the top-left corner
type Box struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

type VAlign string

const (
	VAlignTop    VAlign = "top"
	VAlignMiddle VAlign = "middle"
)

// Marker is the list marker of a paragraph
type Marker string

const (
	MarkerNone   Marker = ""
	MarkerBullet Marker = "bullet"
	MarkerNumber Marker = "number"
)

type Paragraph struct {
	Text   string `json:"text"`
	Marker Marker `json:"marker,omitempty"`
}

// Text is a text box. FontSize, LineSpacing and Margin are in points; zero
// LineSpacing means single spacing and zero Margin the renderer default.
type Text struct {
	Box
	Paragraphs  []Paragraph `json:"paragraphs"`
	FontFace    string      `json:"fontFace"`
	FontSize    float64     `json:"fontSize"`
	Bold        bool        `json:"bold,omitempty"`
	Color       string      `json:"color"`
	Align       style.Align `json:"align"`
	VAlign      VAlign      `json:"valign"`
	LineSpacing float64     `json:"lineSpacing,omitempty"`
	Margin      float64     `json:"margin,omitempty"`
}

type Fit string

const (
	FitCover   Fit = "cover"
	FitContain Fit = "contain"
)

// Image places the image fetched from Source
type Image struct {
	Box
	Source string `json:"source"`
	Fit    Fit    `json:"fit"`
}

// Rect is a filled rectangle. Transparency is a percentage, 0 is opaque.
type Rect struct {
	Box
	Fill         string `json:"fill"`
	Transparency int    `json:"transparency,omitempty"`
}

type Kind string

const (
	KindText  Kind = "text"
	KindImage Kind = "image"
	KindRect  Kind = "rect"
)

// Element holds exactly one drawing instruction
type Element struct {
	Text  *Text  `json:"text,omitempty"`
	Image *Image `json:"image,omitempty"`
	Rect  *Rect  `json:"rect,omitempty"`
}

func (e Element) Kind() Kind {
	switch {
	case e.Text != nil:
		return KindText
	case e.Image != nil:
		return KindImage
	default:
		return KindRect
	}
}

// Frame returns the element's box
func (e Element) Frame() Box {
	switch {
	case e.Text != nil:
		return e.Text.Box
	case e.Image != nil:
		return e.Image.Box
	case e.Rect != nil:
		return e.Rect.Box
	}
	return Box{}
}

// Slide is the laid out form of one slide, painted in order
type Slide struct {
	Index      int       `json:"index"`
	Type       string    `json:"type"`
	Background string    `json:"background"`
	Elements   []Element `json:"elements"`
}

// Deck is a fully laid out presentation
type Deck struct {
	Theme  Theme   `json:"theme"`
	Slides []Slide `json:"slides"`
}

// Images returns the distinct image sources placed in the deck, in paint order
func (d *Deck) Images() []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range d.Slides {
		for _, e := range s.Elements {
			if e.Image == nil || seen[e.Image.Source] {
				continue
			}
			seen[e.Image.Source] = true
			out = append(out, e.Image.Source)
		}
	}
	return out
}

// Contain returns the largest box with the image's aspect ratio that fits
// inside b, centered.
func Contain(imgW, imgH int, b Box) Box {
	if imgW <= 0 || imgH <= 0 || b.W <= 0 || b.H <= 0 {
		return b
	}
	imgAspect := float64(imgW) / float64(imgH)
	if imgAspect > b.W/b.H {
		h := b.W / imgAspect
		return Box{X: b.X, Y: b.Y + (b.H-h)/2, W: b.W, H: h}
	}
	w := b.H * imgAspect
	return Box{X: b.X + (b.W-w)/2, Y: b.Y, W: w, H: b.H}
}

// Crop is the fraction trimmed from each edge of a source image
type Crop struct {
	Left, Top, Right, Bottom float64
}

// Cover returns the centered crop that makes the image fill b without
// distortion.
func Cover(imgW, imgH int, b Box) Crop {
	if imgW <= 0 || imgH <= 0 || b.W <= 0 || b.H <= 0 {
		return Crop{}
	}
	imgAspect := float64(imgW) / float64(imgH)
	boxAspect := b.W / b.H
	if imgAspect > boxAspect {
		side := (1 - boxAspect/imgAspect) / 2
		return Crop{Left: side, Right: side}
	}
	side := (1 - imgAspect/boxAspect) / 2
	return Crop{Top: side, Bottom: side}
}
