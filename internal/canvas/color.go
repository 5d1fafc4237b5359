package canvas

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Predefined colors
var (
	Black = colorful.Color{R: 0, G: 0, B: 0}
	White = colorful.Color{R: 1, G: 1, B: 1}
)

// Paint is a color with straight (non-premultiplied) alpha
type Paint struct {
	Color colorful.Color
	Alpha float64
}

// WithAlpha returns a paint of color c at alpha a, clamped to [0,1]
func WithAlpha(c colorful.Color, a float64) Paint {
	return Paint{Color: c, Alpha: Clamp01(a)}
}

// ParseColor reads "#rgb" or "#rrggbb", with or without the leading '#'.
// Anything else yields white.
func ParseColor(s string) colorful.Color {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 {
		return White
	}
	c, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return White
	}
	return c
}

// Clamp01 bounds v to [0,1]; NaN maps to 0
func Clamp01(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Luma returns Rec. 601 luminance of c in [0,1]
func Luma(c colorful.Color) float64 {
	c = c.Clamped()
	return c.R*0.299 + c.G*0.587 + c.B*0.114
}
