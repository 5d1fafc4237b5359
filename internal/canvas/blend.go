package canvas

import (
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// BlendMode selects how a source paint composites onto the surface
type BlendMode uint8

const (
	BlendSourceOver BlendMode = iota // alpha over
	BlendLighter                     // additive, clamped
	BlendScreen                      // 1 - (1-d)(1-s)
	BlendLighten                     // per-channel max
)

var blendNames = map[string]BlendMode{
	"source-over": BlendSourceOver,
	"lighter":     BlendLighter,
	"add":         BlendLighter,
	"screen":      BlendScreen,
	"lighten":     BlendLighten,
	"max":         BlendLighten,
}

// ParseBlend maps a compositing mode name to a BlendMode.
// Unknown names fall back to source-over.
func ParseBlend(name string) BlendMode {
	if m, ok := blendNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return m
	}
	return BlendSourceOver
}

func (m BlendMode) String() string {
	switch m {
	case BlendLighter:
		return "lighter"
	case BlendScreen:
		return "screen"
	case BlendLighten:
		return "lighten"
	default:
		return "source-over"
	}
}

// composite blends src over dst with the paint alpha scaled by coverage
func composite(dst colorful.Color, src Paint, coverage float64, mode BlendMode) colorful.Color {
	a := Clamp01(src.Alpha * coverage)
	if a <= 0 {
		return dst
	}
	s := src.Color

	switch mode {
	case BlendLighter:
		return colorful.Color{
			R: dst.R + s.R*a,
			G: dst.G + s.G*a,
			B: dst.B + s.B*a,
		}.Clamped()
	case BlendScreen:
		return colorful.Color{
			R: 1 - (1-dst.R)*(1-s.R*a),
			G: 1 - (1-dst.G)*(1-s.G*a),
			B: 1 - (1-dst.B)*(1-s.B*a),
		}.Clamped()
	case BlendLighten:
		return colorful.Color{
			R: dst.R + (math.Max(dst.R, s.R)-dst.R)*a,
			G: dst.G + (math.Max(dst.G, s.G)-dst.G)*a,
			B: dst.B + (math.Max(dst.B, s.B)-dst.B)*a,
		}
	default:
		if a >= 1 {
			return s
		}
		return dst.BlendRgb(s, a)
	}
}
