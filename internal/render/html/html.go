// Package html renders laid out decks as a printable HTML document, one
// fixed size page per slide.
package html

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/AghoghoOgbotor18/AIPPT/internal/images"
	"github.com/AghoghoOgbotor18/AIPPT/internal/layout"
	"github.com/AghoghoOgbotor18/AIPPT/internal/style"
)

//go:embed deck.html.tmpl
var deckTemplate string

var tmpl = template.Must(template.New("deck").Parse(deckTemplate))

type pageView struct {
	Title  string
	Width  float64
	Height float64
	Slides []slideView
}

type slideView struct {
	Index      int
	Type       string
	Background template.CSS
	Elements   []elementView
}

type elementView struct {
	Kind   string
	Class  string
	Style  template.CSS
	Src    template.URL
	Blocks []blockView
}

// blockView is a run of paragraphs sharing one marker
type blockView struct {
	List  string
	Items []string
}

// Render returns the HTML document for deck. Images found in imgs are
// inlined as data URIs; others are linked by URL when they are http(s).
func Render(deck *layout.Deck, imgs images.Lookup) ([]byte, error) {
	if imgs == nil {
		imgs = images.Map{}
	}

	page := pageView{
		Title:  deck.Theme.Title,
		Width:  layout.SlideWidth,
		Height: layout.SlideHeight,
	}
	for _, s := range deck.Slides {
		sv := slideView{
			Index:      s.Index + 1,
			Type:       s.Type,
			Background: template.CSS("background:#" + s.Background),
		}
		for _, el := range s.Elements {
			if ev, ok := element(el, imgs); ok {
				sv.Elements = append(sv.Elements, ev)
			}
		}
		page.Slides = append(page.Slides, sv)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, page); err != nil {
		return nil, fmt.Errorf("failed to render html: %w", err)
	}
	return buf.Bytes(), nil
}

func element(el layout.Element, imgs images.Lookup) (elementView, bool) {
	box := el.Frame()
	pos := fmt.Sprintf("left:%.4fin;top:%.4fin;width:%.4fin;height:%.4fin;", box.X, box.Y, box.W, box.H)

	switch {
	case el.Rect != nil:
		css := pos + "background:#" + el.Rect.Fill + ";"
		if el.Rect.Transparency > 0 {
			css += fmt.Sprintf("opacity:%.2f;", float64(100-el.Rect.Transparency)/100)
		}
		return elementView{Kind: "rect", Style: template.CSS(css)}, true

	case el.Image != nil:
		src, ok := imageSrc(el.Image.Source, imgs)
		if !ok {
			return elementView{}, false
		}
		css := pos + "object-fit:" + string(el.Image.Fit) + ";"
		return elementView{Kind: "image", Style: template.CSS(css), Src: src}, true

	case el.Text != nil:
		return textElement(el.Text, pos), true
	}
	return elementView{}, false
}

func imageSrc(url string, imgs images.Lookup) (template.URL, bool) {
	if img, ok := imgs.Get(url); ok {
		return template.URL(img.DataURI()), true
	}
	if (images.Remote{}).Has(url) {
		return template.URL(url), true
	}
	return "", false
}

func textElement(t *layout.Text, pos string) elementView {
	var css strings.Builder
	css.WriteString(pos)
	fmt.Fprintf(&css, "font-family:%s;font-size:%.1fpt;color:#%s;", fontStack(t.FontFace), t.FontSize, t.Color)
	if t.Bold {
		css.WriteString("font-weight:bold;")
	}
	fmt.Fprintf(&css, "text-align:%s;", textAlign(t.Align))
	if t.LineSpacing > 0 {
		fmt.Fprintf(&css, "line-height:%.1fpt;", t.LineSpacing)
	}
	if t.Margin > 0 {
		fmt.Fprintf(&css, "padding:%.2fpt;", t.Margin)
	}

	class := "middle"
	if t.VAlign == layout.VAlignTop {
		class = "top"
	}

	var blocks []blockView
	for _, p := range t.Paragraphs {
		list := ""
		switch p.Marker {
		case layout.MarkerBullet:
			list = "ul"
		case layout.MarkerNumber:
			list = "ol"
		}
		if n := len(blocks); n > 0 && list != "" && blocks[n-1].List == list {
			blocks[n-1].Items = append(blocks[n-1].Items, p.Text)
			continue
		}
		blocks = append(blocks, blockView{List: list, Items: []string{p.Text}})
	}

	return elementView{Kind: "text", Class: class, Style: template.CSS(css.String()), Blocks: blocks}
}

func textAlign(a style.Align) string {
	switch a {
	case style.AlignCenter, style.AlignRight:
		return string(a)
	}
	return "left"
}

// fontStack quotes a user supplied family name, dropping characters that
// could escape the declaration.
func fontStack(face string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == ' ', r == '-', r == '_':
			return r
		}
		return -1
	}, face)
	clean = strings.TrimSpace(clean)
	if clean == "" {
		return "Arial,sans-serif"
	}
	return "'" + clean + "',Arial,sans-serif"
}
