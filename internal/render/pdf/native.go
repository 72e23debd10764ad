package pdf

import (
	"bytes"
	"fmt"
	"image"
	"strconv"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/signintech/gopdf"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/AghoghoOgbotor18/AIPPT/internal/colors"
	"github.com/AghoghoOgbotor18/AIPPT/internal/images"
	"github.com/AghoghoOgbotor18/AIPPT/internal/layout"
	"github.com/AghoghoOgbotor18/AIPPT/internal/style"
)

const (
	fontRegular = "regular"
	fontBold    = "bold"

	// text box insets in inches when the element sets no margin
	defaultPadX = 0.1
	defaultPadY = 0.05
)

// Native draws deck directly with gopdf. It needs no browser and is used
// when Chrome is unavailable or fails.
func Native(deck *layout.Deck, imgs images.Lookup) ([]byte, error) {
	if imgs == nil {
		imgs = images.Map{}
	}

	doc := &gopdf.GoPdf{}
	doc.Start(gopdf.Config{
		PageSize: gopdf.Rect{W: layout.SlideWidth, H: layout.SlideHeight},
		Unit:     gopdf.UnitIN,
	})
	doc.SetInfo(gopdf.PdfInfo{
		Title:        deck.Theme.Title,
		Author:       deck.Theme.Author,
		Creator:      "AI PPT Generator",
		CreationDate: time.Now(),
	})

	if err := doc.AddTTFFontData(fontRegular, goregular.TTF); err != nil {
		return nil, fmt.Errorf("failed to load regular font: %w", err)
	}
	if err := doc.AddTTFFontData(fontBold, gobold.TTF); err != nil {
		return nil, fmt.Errorf("failed to load bold font: %w", err)
	}

	for _, s := range deck.Slides {
		doc.AddPage()
		fill(doc, s.Background)
		doc.RectFromUpperLeftWithStyle(0, 0, layout.SlideWidth, layout.SlideHeight, "F")

		for i, el := range s.Elements {
			var err error
			switch {
			case el.Rect != nil:
				err = drawRect(doc, el.Rect)
			case el.Image != nil:
				err = drawImage(doc, el.Image, imgs)
			case el.Text != nil:
				err = drawText(doc, el.Text)
			}
			if err != nil {
				return nil, fmt.Errorf("slide %d element %d: %w", s.Index+1, i, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func fill(doc *gopdf.GoPdf, hex string) {
	r, g, b := colors.RGB(hex)
	doc.SetFillColor(r, g, b)
}

func drawRect(doc *gopdf.GoPdf, r *layout.Rect) error {
	fill(doc, r.Fill)
	if r.Transparency > 0 {
		if err := doc.SetTransparency(gopdf.Transparency{
			Alpha:         float64(100-r.Transparency) / 100,
			BlendModeType: gopdf.NormalBlendMode,
		}); err != nil {
			return fmt.Errorf("failed to set transparency: %w", err)
		}
		defer doc.ClearTransparency()
	}
	doc.RectFromUpperLeftWithStyle(r.X, r.Y, r.W, r.H, "F")
	return nil
}

func drawImage(doc *gopdf.GoPdf, im *layout.Image, imgs images.Lookup) error {
	img, ok := imgs.Get(im.Source)
	if !ok || img.Pixels() == nil {
		return nil
	}

	src := img.Pixels()
	box := im.Box
	if im.Fit == layout.FitContain {
		box = layout.Contain(img.Width, img.Height, box)
	} else {
		src = cropCover(src, layout.Cover(img.Width, img.Height, box))
	}
	return doc.ImageFrom(src, box.X, box.Y, &gopdf.Rect{W: box.W, H: box.H})
}

func cropCover(src image.Image, c layout.Crop) image.Image {
	if c == (layout.Crop{}) {
		return src
	}
	b := src.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	rect := image.Rect(
		b.Min.X+int(c.Left*w), b.Min.Y+int(c.Top*h),
		b.Max.X-int(c.Right*w), b.Max.Y-int(c.Bottom*h),
	)
	return imaging.Crop(src, rect)
}

type textLine struct {
	text  string
	blank bool
}

func drawText(doc *gopdf.GoPdf, t *layout.Text) error {
	family := fontRegular
	if t.Bold {
		family = fontBold
	}
	if err := doc.SetFont(family, "", t.FontSize); err != nil {
		return fmt.Errorf("failed to set font: %w", err)
	}
	r, g, b := colors.RGB(t.Color)
	doc.SetTextColor(r, g, b)

	padX, padY := defaultPadX, defaultPadY
	if t.Margin > 0 {
		padX, padY = t.Margin/72, t.Margin/72
	}
	width := t.W - 2*padX
	if width <= 0 {
		return nil
	}

	lineH := t.FontSize * 1.2 / 72
	if t.LineSpacing > 0 {
		lineH = t.LineSpacing / 72
	}

	var lines []textLine
	number := 0
	for _, p := range t.Paragraphs {
		prefix := ""
		switch p.Marker {
		case layout.MarkerBullet:
			prefix = "• "
		case layout.MarkerNumber:
			number++
			prefix = strconv.Itoa(number) + ". "
		}
		for i, raw := range strings.Split(p.Text, "\n") {
			if i == 0 {
				raw = prefix + raw
			}
			wrapped, err := wrap(doc, raw, width)
			if err != nil {
				return err
			}
			lines = append(lines, wrapped...)
		}
	}

	y := t.Y + padY
	if t.VAlign != layout.VAlignTop {
		y = t.Y + (t.H-float64(len(lines))*lineH)/2
	}

	opt := gopdf.CellOption{Align: cellAlign(t.Align) | gopdf.Middle}
	for _, l := range lines {
		if y > layout.SlideHeight {
			break
		}
		if !l.blank {
			doc.SetXY(t.X+padX, y)
			if err := doc.CellWithOption(&gopdf.Rect{W: width, H: lineH}, l.text, opt); err != nil {
				return fmt.Errorf("failed to draw text: %w", err)
			}
		}
		y += lineH
	}
	return nil
}

// wrap breaks s at word boundaries so each line fits width. Words wider
// than width get a line of their own.
func wrap(doc *gopdf.GoPdf, s string, width float64) ([]textLine, error) {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []textLine{{blank: true}}, nil
	}

	var out []textLine
	cur := words[0]
	for _, w := range words[1:] {
		next := cur + " " + w
		tw, err := doc.MeasureTextWidth(next)
		if err != nil {
			return nil, fmt.Errorf("failed to measure text: %w", err)
		}
		if tw > width {
			out = append(out, textLine{text: cur})
			cur = w
			continue
		}
		cur = next
	}
	return append(out, textLine{text: cur}), nil
}

func cellAlign(a style.Align) int {
	switch a {
	case style.AlignCenter:
		return gopdf.Center
	case style.AlignRight:
		return gopdf.Right
	}
	return gopdf.Left
}
