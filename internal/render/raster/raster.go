// Package raster draws single laid out slides to bitmaps for thumbnails.
package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/AghoghoOgbotor18/AIPPT/internal/colors"
	"github.com/AghoghoOgbotor18/AIPPT/internal/images"
	"github.com/AghoghoOgbotor18/AIPPT/internal/layout"
	"github.com/AghoghoOgbotor18/AIPPT/internal/style"
)

const (
	DefaultWidth = 640
	MaxWidth     = 3840
)

type canvas struct {
	img   *image.RGBA
	ppi   float64
	faces *faces
}

func (c *canvas) px(inches float64) int {
	return int(math.Round(inches * c.ppi))
}

func (c *canvas) rect(b layout.Box) image.Rectangle {
	return image.Rect(c.px(b.X), c.px(b.Y), c.px(b.X+b.W), c.px(b.Y+b.H))
}

// Render draws s at width pixels wide. Widths outside (0, MaxWidth] fall
// back to DefaultWidth.
func Render(s layout.Slide, imgs images.Lookup, width int) (*image.RGBA, error) {
	if width <= 0 || width > MaxWidth {
		width = DefaultWidth
	}
	if imgs == nil {
		imgs = images.Map{}
	}

	ppi := float64(width) / layout.SlideWidth
	height := int(math.Round(layout.SlideHeight * ppi))

	fc, err := newFaces(ppi)
	if err != nil {
		return nil, err
	}
	defer fc.close()

	c := &canvas{img: image.NewRGBA(image.Rect(0, 0, width, height)), ppi: ppi, faces: fc}
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(rgba(s.Background, 255)), image.Point{}, draw.Src)

	for _, el := range s.Elements {
		switch {
		case el.Rect != nil:
			alpha := uint8(255 * (100 - el.Rect.Transparency) / 100)
			draw.Draw(c.img, c.rect(el.Rect.Box), image.NewUniform(rgba(el.Rect.Fill, alpha)), image.Point{}, draw.Over)
		case el.Image != nil:
			c.drawImage(el.Image, imgs)
		case el.Text != nil:
			if err := c.drawText(el.Text); err != nil {
				return nil, err
			}
		}
	}
	return c.img, nil
}

// EncodePNG renders s and returns it PNG encoded
func EncodePNG(s layout.Slide, imgs images.Lookup, width int) ([]byte, error) {
	img, err := Render(s, imgs, width)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func rgba(hex string, alpha uint8) color.Color {
	r, g, b := colors.RGB(hex)
	return color.NRGBA{R: r, G: g, B: b, A: alpha}
}

func (c *canvas) drawImage(im *layout.Image, imgs images.Lookup) {
	img, ok := imgs.Get(im.Source)
	if !ok || img.Pixels() == nil {
		return
	}

	box := im.Box
	var scaled image.Image
	if im.Fit == layout.FitContain {
		box = layout.Contain(img.Width, img.Height, box)
		r := c.rect(box)
		if r.Dx() <= 0 || r.Dy() <= 0 {
			return
		}
		scaled = imaging.Resize(img.Pixels(), r.Dx(), r.Dy(), imaging.Lanczos)
	} else {
		r := c.rect(box)
		if r.Dx() <= 0 || r.Dy() <= 0 {
			return
		}
		scaled = imaging.Fill(img.Pixels(), r.Dx(), r.Dy(), imaging.Center, imaging.Lanczos)
	}
	r := c.rect(box)
	draw.Draw(c.img, image.Rectangle{Min: r.Min, Max: r.Min.Add(scaled.Bounds().Size())}, scaled, scaled.Bounds().Min, draw.Over)
}

func (c *canvas) drawText(t *layout.Text) error {
	face, err := c.faces.get(t.FontSize, t.Bold)
	if err != nil {
		return err
	}

	padX, padY := 0.1*c.ppi, 0.05*c.ppi
	if t.Margin > 0 {
		padX = t.Margin / 72 * c.ppi
		padY = padX
	}
	area := c.rect(t.Box)
	width := area.Dx() - int(2*padX)
	if width <= 0 {
		return nil
	}

	lineH := t.FontSize * 1.2 / 72 * c.ppi
	if t.LineSpacing > 0 {
		lineH = t.LineSpacing / 72 * c.ppi
	}

	var lines []string
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
			lines = append(lines, wrapText(raw, width, face)...)
		}
	}

	top := float64(area.Min.Y) + padY
	if t.VAlign != layout.VAlignTop {
		top = float64(area.Min.Y) + (float64(area.Dy())-float64(len(lines))*lineH)/2
	}

	ascent := face.Metrics().Ascent.Ceil()
	descent := face.Metrics().Descent.Ceil()
	// center the glyph box within each line
	baseline := (lineH-float64(ascent+descent))/2 + float64(ascent)

	col := image.NewUniform(rgba(t.Color, 255))
	for i, line := range lines {
		if line == "" {
			continue
		}
		x := area.Min.X + int(padX)
		adv := font.MeasureString(face, line).Ceil()
		switch t.Align {
		case style.AlignCenter:
			x += (width - adv) / 2
		case style.AlignRight:
			x += width - adv
		}
		y := int(top + float64(i)*lineH + baseline)
		d := &font.Drawer{Dst: c.img, Src: col, Face: face, Dot: fixed.P(x, y)}
		d.DrawString(line)
	}
	return nil
}

// wrapText breaks text into lines no wider than maxWidth pixels. A blank
// input yields one empty line so paragraph spacing is kept.
func wrapText(text string, maxWidth int, face font.Face) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		test := current + " " + word
		if font.MeasureString(face, test).Ceil() > maxWidth {
			lines = append(lines, current)
			current = word
			continue
		}
		current = test
	}
	return append(lines, current)
}
