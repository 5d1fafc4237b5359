package sky

import "math"

// Config is the tunable surface of the starfield. Every field has a default
// (see DefaultConfig) and out-of-range values are clamped, never rejected.
type Config struct {
	Density     float64 // stars per UnitArea
	StarColor   string
	AccentColor string
	MaxTwinkle  float64    // 0..1, twinkle amplitude
	CometEvery  [2]float64 // [min, max] seconds between comets
	Parallax    float64
	MinStars    int // population floor for small viewports

	CometTrail      int     // trail history length
	CometHeadRadius float64 // px
	CometHeadGlow   float64 // px, gradient radius around the head

	FrameFade        float64 // 1 clears every frame, 0 never erases
	TailBrightAtHead bool
	TrailOpacity     float64
	TrailWidth       float64
	HeadOpacity      float64
	GlowOpacity      float64
	TrailBlend       string // source-over, lighter, screen, lighten
}

// DefaultConfig returns the stock look: a quiet field with a comet every few seconds.
func DefaultConfig() Config {
	return Config{
		Density:     0.2,
		StarColor:   "#e5e7eb",
		AccentColor: "#9ae6ff",
		MaxTwinkle:  0.55,
		CometEvery:  [2]float64{4, 10},
		Parallax:    0.05,
		MinStars:    140,

		CometTrail:      160,
		CometHeadRadius: 4.5,
		CometHeadGlow:   14,

		FrameFade:        1,
		TailBrightAtHead: false,
		TrailOpacity:     0.22,
		TrailWidth:       1.2,
		HeadOpacity:      0.6,
		GlowOpacity:      0.22,
		TrailBlend:       "source-over",
	}
}

// Normalize returns a copy with every value pulled into a usable range.
func (c Config) Normalize() Config {
	c.Density = nonNegative(c.Density)
	c.MaxTwinkle = clamp01(c.MaxTwinkle)
	c.Parallax = nonNegative(c.Parallax)
	c.MinStars = max(c.MinStars, 0)

	c.CometEvery[0] = nonNegative(c.CometEvery[0])
	c.CometEvery[1] = nonNegative(c.CometEvery[1])
	if c.CometEvery[1] < c.CometEvery[0] {
		c.CometEvery[1] = c.CometEvery[0]
	}

	c.CometTrail = max(c.CometTrail, 1)
	c.CometHeadRadius = nonNegative(c.CometHeadRadius)
	c.CometHeadGlow = nonNegative(c.CometHeadGlow)

	c.FrameFade = clamp01(c.FrameFade)
	c.TrailOpacity = clamp01(c.TrailOpacity)
	c.TrailWidth = nonNegative(c.TrailWidth)
	c.HeadOpacity = clamp01(c.HeadOpacity)
	c.GlowOpacity = clamp01(c.GlowOpacity)
	return c
}

// StarCount is the population for a w×h layout viewport.
func (c Config) StarCount(w, h float64) int {
	area := math.Max(w, 0) * math.Max(h, 0) / UnitArea
	return max(int(math.Floor(area*c.Density)), c.MinStars)
}

func clamp01(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	return math.Min(v, 1)
}

func nonNegative(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	return v
}
