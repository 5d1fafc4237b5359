package sky

import (
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"

	"starfield/internal/canvas"
)

// Comet is a transient streak on a curved path with a fading trail.
type Comet struct {
	Pos   Point
	Vel   Point // px/s
	Acc   Point // px/s², perpendicular to the launch heading
	Trail *Trail
	dead  bool
}

type cometStyle struct {
	blend            canvas.BlendMode
	trailOpacity     float64
	trailWidth       float64
	headOpacity      float64
	glowOpacity      float64
	headRadius       float64
	headGlow         float64
	tailBrightAtHead bool
}

// newComet launches a comet from just outside a random edge of the w×h
// viewport, aimed roughly inward.
func newComet(rng *rand.Rand, w, h float64, maxTrail int) *Comet {
	speed := cometMinSpeed + rng.Float64()*cometSpeedRange
	jitter := (rng.Float64() - 0.5) * cometAimJitter

	var pos Point
	var heading float64
	switch rng.Intn(4) {
	case 0: // left
		pos = Point{X: -CometMargin, Y: rng.Float64() * h}
		heading = cometEdgeTilt + jitter
	case 1: // right
		pos = Point{X: w + CometMargin, Y: rng.Float64() * h}
		heading = math.Pi - cometEdgeTilt + jitter
	case 2: // top
		pos = Point{X: rng.Float64() * w, Y: -CometMargin}
		heading = math.Pi/2 + jitter
	default: // bottom
		pos = Point{X: rng.Float64() * w, Y: h + CometMargin}
		heading = -math.Pi/2 + jitter
	}
	vel := Point{X: math.Cos(heading) * speed, Y: math.Sin(heading) * speed}

	accMag := cometMinAccel + rng.Float64()*cometAccelRange
	perp := math.Atan2(vel.Y, vel.X) + math.Pi/2
	if rng.Float64() < 0.5 {
		perp -= math.Pi
	}
	acc := Point{X: math.Cos(perp) * accMag, Y: math.Sin(perp) * accMag}

	return &Comet{Pos: pos, Vel: vel, Acc: acc, Trail: NewTrail(maxTrail)}
}

// Dead reports whether the comet and its whole trail have left the viewport.
func (c *Comet) Dead() bool { return c.dead }

// Update integrates one step of dt seconds and records the new position.
// The comet dies only when its head and every trail point are outside the
// viewport plus CometMargin, so a trail still crossing the screen keeps it alive.
func (c *Comet) Update(dt, w, h float64) {
	if c.dead {
		return
	}
	c.Vel.X += c.Acc.X * dt
	c.Vel.Y += c.Acc.Y * dt
	c.Pos.X += c.Vel.X * dt
	c.Pos.Y += c.Vel.Y * dt
	c.Trail.Push(c.Pos)

	visible := func(p Point) bool { return onScreen(p, w, h) }
	if !visible(c.Pos) && !c.Trail.Any(visible) {
		c.dead = true
	}
}

func onScreen(p Point, w, h float64) bool {
	return p.X > -CometMargin && p.X < w+CometMargin &&
		p.Y > -CometMargin && p.Y < h+CometMargin
}

func (c *Comet) draw(surf *canvas.Surface, accent colorful.Color, st cometStyle) {
	n := c.Trail.Len()
	if n < 2 {
		return
	}

	for i := 0; i < n-1; i++ {
		t := float64(i) / float64(n-1) // 0 oldest, 1 at the head
		progress := 1 - t
		if st.tailBrightAtHead {
			progress = t
		}
		alpha := st.trailOpacity * progress
		if alpha <= 0.002 {
			continue
		}
		p1, p2 := c.Trail.At(i), c.Trail.At(i+1)
		width := 0.6 + progress*st.trailWidth
		surf.StrokeSegment(p1.X, p1.Y, p2.X, p2.Y, width, canvas.WithAlpha(accent, alpha), st.blend)
	}

	head, _ := c.Trail.Head()
	g := canvas.Gradient{
		Radius: st.headGlow,
		Stops: []canvas.Stop{
			{Offset: 0, Paint: canvas.WithAlpha(accent, st.headOpacity)},
			{Offset: 0.7, Paint: canvas.WithAlpha(accent, st.glowOpacity)},
			{Offset: 1, Paint: canvas.WithAlpha(accent, 0)},
		},
	}
	surf.FillDisc(head.X, head.Y, st.headRadius, g, st.blend)
}
