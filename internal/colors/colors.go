// Package colors turns user color expressions into canonical hex triplets.
package colors

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	White = "FFFFFF"
	Black = "000000"
)

var (
	hexPattern = regexp.MustCompile(`^#?[0-9a-f]{6}$`)
	rgbPattern = regexp.MustCompile(`rgba?\s*\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)`)
)

var named = map[string]string{
	"red":       "FF0000",
	"blue":      "0000FF",
	"green":     "00FF00",
	"yellow":    "FFFF00",
	"orange":    "FFA500",
	"purple":    "800080",
	"pink":      "FFC0CB",
	"brown":     "A52A2A",
	"black":     "000000",
	"white":     "FFFFFF",
	"gray":      "808080",
	"grey":      "808080",
	"cyan":      "00FFFF",
	"magenta":   "FF00FF",
	"lime":      "00FF00",
	"navy":      "000080",
	"teal":      "008080",
	"olive":     "808000",
	"maroon":    "800000",
	"aqua":      "00FFFF",
	"silver":    "C0C0C0",
	"gold":      "FFD700",
	"indigo":    "4B0082",
	"violet":    "EE82EE",
	"turquoise": "40E0D0",
	"beige":     "F5F5DC",
	"coral":     "FF7F50",
	"crimson":   "DC143C",
	"khaki":     "F0E68C",
	"lavender":  "E6E6FA",
	"salmon":    "FA8072",
	"tan":       "D2B48C",
}

// Resolve converts a hex, rgb()/rgba() or named color expression into an
// uppercase 6 digit hex string without '#'. Unrecognized input yields White.
func Resolve(expr string) string {
	c := strings.ToLower(strings.TrimSpace(expr))
	if c == "" {
		return White
	}

	if hexPattern.MatchString(c) {
		return strings.ToUpper(strings.TrimPrefix(c, "#"))
	}

	if m := rgbPattern.FindStringSubmatch(c); m != nil {
		return fmt.Sprintf("%06X", channel(m[1])<<16|channel(m[2])<<8|channel(m[3]))
	}

	if hex, ok := named[c]; ok {
		return hex
	}
	return White
}

// channel parses one rgb() component, clamped to a byte
func channel(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil || v > 255 {
		return 255
	}
	return v
}

// Names returns the recognized color names
func Names() []string {
	names := make([]string, 0, len(named))
	for n := range named {
		names = append(names, n)
	}
	return names
}

// Luminance returns perceived brightness of hex in [0,1]
func Luminance(hex string) (float64, error) {
	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return 0, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 255, nil
}

// ContrastFor picks the text color for a background of luminance l.
// Exactly 0.5 counts as dark.
func ContrastFor(l float64) string {
	if l > 0.5 {
		return Black
	}
	return White
}

// Contrast returns black text for light backgrounds and white text for dark ones
func Contrast(bgHex string) string {
	l, err := Luminance(bgHex)
	if err != nil {
		return White
	}
	return ContrastFor(l)
}

// RGB decodes a hex triplet into channels. Invalid input decodes as white.
func RGB(hex string) (r, g, b uint8) {
	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return 0xFF, 0xFF, 0xFF
	}
	return c.RGB255()
}
