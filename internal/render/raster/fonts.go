package raster

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

type fontSet struct {
	regular *opentype.Font
	bold    *opentype.Font
}

var loadFonts = sync.OnceValues(func() (*fontSet, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse regular font: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bold font: %w", err)
	}
	return &fontSet{regular: regular, bold: bold}, nil
})

type faceKey struct {
	bold bool
	size float64
}

// faces hands out font faces at one DPI, creating each size once
type faces struct {
	set   *fontSet
	dpi   float64
	cache map[faceKey]font.Face
}

func newFaces(dpi float64) (*faces, error) {
	set, err := loadFonts()
	if err != nil {
		return nil, err
	}
	return &faces{set: set, dpi: dpi, cache: make(map[faceKey]font.Face)}, nil
}

func (f *faces) get(size float64, bold bool) (font.Face, error) {
	key := faceKey{bold: bold, size: size}
	if face, ok := f.cache[key]; ok {
		return face, nil
	}

	src := f.set.regular
	if bold {
		src = f.set.bold
	}
	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    size,
		DPI:     f.dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	f.cache[key] = face
	return face, nil
}

func (f *faces) close() {
	for _, face := range f.cache {
		face.Close()
	}
}
