// Package style maps a named visual style to its accent color and layout rules.
package style

type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

type ImagePosition string

const (
	ImageRight ImagePosition = "right"
	ImageNone  ImagePosition = "none"
)

const (
	Corporate    = "corporate"
	Professional = "professional"
	Playful      = "playful"
	Creative     = "creative"
	Minimalist   = "minimalist"
)

// DefaultAccent is used for style names not in the accent table
const DefaultAccent = "EF4444"

// Layout is the per-style layout configuration
type Layout struct {
	TitleAlign    Align         `json:"titleAlign" yaml:"title_align"`
	TitleY        float64       `json:"titleY" yaml:"title_y"`
	ContentAlign  Align         `json:"contentAlign" yaml:"content_align"`
	BulletStyle   bool          `json:"bulletStyle" yaml:"bullet_style"`
	ImagePosition ImagePosition `json:"imagePosition" yaml:"image_position"`
	HeaderBar     bool          `json:"headerBar" yaml:"header_bar"`
}

var accents = map[string]string{
	Corporate:    "003366",
	Professional: "2C3E50",
	Playful:      "FF6B6B",
	Creative:     "9B59B6",
	Minimalist:   "34495E",
}

var layouts = map[string]Layout{
	Corporate: {
		TitleAlign: AlignLeft, TitleY: 0.5, ContentAlign: AlignLeft,
		BulletStyle: true, ImagePosition: ImageRight, HeaderBar: true,
	},
	Professional: {
		TitleAlign: AlignCenter, TitleY: 0.8, ContentAlign: AlignLeft,
		BulletStyle: true, ImagePosition: ImageRight, HeaderBar: false,
	},
	Creative: {
		TitleAlign: AlignLeft, TitleY: 1.2, ContentAlign: AlignLeft,
		BulletStyle: true, ImagePosition: ImageRight, HeaderBar: true,
	},
	Minimalist: {
		TitleAlign: AlignLeft, TitleY: 0.8, ContentAlign: AlignLeft,
		BulletStyle: false, ImagePosition: ImageNone, HeaderBar: false,
	},
}

// Accent returns the accent color for a style name. It does not depend on
// the deck background.
func Accent(name string) string {
	if c, ok := accents[name]; ok {
		return c
	}
	return DefaultAccent
}

// LayoutFor returns the layout configuration for a style name, falling back
// to the professional layout.
func LayoutFor(name string) Layout {
	if l, ok := layouts[name]; ok {
		return l
	}
	return layouts[Professional]
}

// Names lists the known styles in display order
func Names() []string {
	return []string{Corporate, Professional, Playful, Creative, Minimalist}
}
