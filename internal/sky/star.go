package sky

import (
	"math"
	"math/rand"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"starfield/internal/canvas"
)

// Star is one twinkling background point.
type Star struct {
	X, Y   float64
	Radius float64
	Alpha  float64 // recomputed every frame by Twinkle
	Depth  float64 // 0..1, deeper stars are larger and shift more
	Halo   float64 // glow multiplier, ≥ 1
	Speed  float64 // twinkle angular speed, rad/s
	Phase  float64
	Jitter float64 // 0..0.1
}

func newStar(rng *rand.Rand, w, h float64) Star {
	depth := rng.Float64()
	return Star{
		X:      rng.Float64() * w,
		Y:      rng.Float64() * h,
		Radius: 0.18 + depth*depth*0.5,
		Alpha:  0.2 + rng.Float64()*0.35,
		Depth:  depth,
		Halo:   1 + rng.Float64()*rng.Float64()*1.3,
		Speed:  0.35 + rng.Float64()*0.9,
		Phase:  rng.Float64() * 2 * math.Pi,
		Jitter: rng.Float64() * 0.1,
	}
}

// Twinkle sets Alpha from three detuned sines so the flicker never looks
// periodic. The result lies in [0,1].
func (s *Star) Twinkle(now time.Duration, maxTwinkle float64) {
	t := now.Seconds()
	s1 := math.Sin(t*s.Speed + s.Phase)
	s2 := math.Sin(t*(s.Speed*0.47) + s.Phase*1.3)
	s3 := math.Sin(t*(s.Speed*1.12) + s.Phase*0.73)
	v := (s1 + 0.45*s2 + 0.25*s3) / 1.7
	s.Alpha = clamp01(twinkleFloor + (v*0.5+0.5+s.Jitter)*maxTwinkle)
}

// Offset is the parallax shift for a pointer displaced (dx, dy) from the
// viewport center, both normalized by the viewport size.
func (s *Star) Offset(dx, dy, parallax float64) (float64, float64) {
	if parallax <= 0 {
		return 0, 0
	}
	scale := math.Trunc(s.Depth * parallax * parallaxRange)
	return -dx * scale, -dy * scale
}

func (s *Star) draw(surf *canvas.Surface, star, accent colorful.Color, ox, oy float64) {
	core := math.Max(0.2, s.Radius)
	g := canvas.Gradient{
		Radius: core * 2.4 * s.Halo,
		Stops: []canvas.Stop{
			{Offset: 0, Paint: canvas.WithAlpha(star, s.Alpha+0.28)},
			{Offset: 0.5, Paint: canvas.WithAlpha(star, s.Alpha)},
			{Offset: 1, Paint: canvas.WithAlpha(accent, 0)},
		},
	}
	surf.FillDisc(s.X+ox, s.Y+oy, core*1.4, g, canvas.BlendLighter)
}
