// Package images searches, fetches and caches slide images.
package images

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/AghoghoOgbotor18/AIPPT/internal/models"
)

// Image is a fetched image ready for embedding. Data is always jpeg, png or gif.
type Image struct {
	URL    string
	Data   []byte
	MIME   string
	Ext    string
	Width  int
	Height int

	pixels image.Image
}

// Pixels returns the decoded image
func (i *Image) Pixels() image.Image {
	return i.pixels
}

// DataURI returns the image as a base64 data URI
func (i *Image) DataURI() string {
	return "data:" + i.MIME + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}

// Aspect returns width divided by height
func (i *Image) Aspect() float64 {
	if i.Height == 0 {
		return 1
	}
	return float64(i.Width) / float64(i.Height)
}

// MaxPixels bounds width*height of an image before its pixels are decoded
const MaxPixels = 40_000_000

var passthrough = map[string]struct{ mime, ext string }{
	"jpeg": {"image/jpeg", "jpeg"},
	"png":  {"image/png", "png"},
	"gif":  {"image/gif", "gif"},
}

// Decode builds an Image from raw bytes. Formats that document writers do
// not embed directly (webp, bmp, tiff) are re-encoded as PNG.
func Decode(url string, data []byte) (*Image, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", models.ErrImageUnavailable, url, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: empty image %s", models.ErrImageUnavailable, url)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, fmt.Errorf("%w: %s is %dx%d, above %d pixels",
			models.ErrImageUnavailable, url, cfg.Width, cfg.Height, MaxPixels)
	}

	pixels, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", models.ErrImageUnavailable, url, err)
	}

	b := pixels.Bounds()
	img := &Image{
		URL:    url,
		Width:  b.Dx(),
		Height: b.Dy(),
		pixels: pixels,
	}
	if img.Width == 0 || img.Height == 0 {
		return nil, fmt.Errorf("%w: empty image %s", models.ErrImageUnavailable, url)
	}

	if p, ok := passthrough[format]; ok {
		img.Data, img.MIME, img.Ext = data, p.mime, p.ext
		return img, nil
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, pixels); err != nil {
		return nil, fmt.Errorf("failed to re-encode %s image: %w", format, err)
	}
	img.Data, img.MIME, img.Ext = buf.Bytes(), "image/png", "png"
	return img, nil
}

// decodeDataURL extracts the payload of a base64 data URL
func decodeDataURL(url string) ([]byte, error) {
	comma := strings.IndexByte(url, ',')
	if comma < 0 || !strings.HasSuffix(url[:comma], ";base64") {
		return nil, fmt.Errorf("%w: unsupported data URL", models.ErrImageUnavailable)
	}
	data, err := base64.StdEncoding.DecodeString(url[comma+1:])
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}
	return data, nil
}
