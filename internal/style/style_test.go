package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccent(t *testing.T) {
	tests := map[string]string{
		"corporate":    "003366",
		"professional": "2C3E50",
		"playful":      "FF6B6B",
		"creative":     "9B59B6",
		"minimalist":   "34495E",
		"retro":        "EF4444",
		"":             "EF4444",
		"Corporate":    "EF4444",
	}
	for name, want := range tests {
		assert.Equal(t, want, Accent(name), name)
	}
}

func TestLayoutFor(t *testing.T) {
	tests := []struct {
		name string
		want Layout
	}{
		{"corporate", Layout{AlignLeft, 0.5, AlignLeft, true, ImageRight, true}},
		{"professional", Layout{AlignCenter, 0.8, AlignLeft, true, ImageRight, false}},
		{"playful", Layout{AlignCenter, 0.8, AlignLeft, true, ImageRight, false}},
		{"creative", Layout{AlignLeft, 1.2, AlignLeft, true, ImageRight, true}},
		{"minimalist", Layout{AlignLeft, 0.8, AlignLeft, false, ImageNone, false}},
		{"unknown", Layout{AlignCenter, 0.8, AlignLeft, true, ImageRight, false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LayoutFor(tt.name))
		})
	}
}

func TestLayoutFor_ReturnsCopy(t *testing.T) {
	l := LayoutFor(Corporate)
	l.HeaderBar = false
	assert.True(t, LayoutFor(Corporate).HeaderBar)
}

func TestNames(t *testing.T) {
	assert.Len(t, Names(), 5)
	for _, n := range Names() {
		assert.NotEqual(t, DefaultAccent, Accent(n), n)
	}
}
