// Package sky simulates the starfield: a fixed population of twinkling stars
// and occasional comets on curved paths, drawn onto a canvas.Surface once
// per frame.
//
// A Field is not safe for concurrent use. The frame loop and the event
// handlers that feed it (pointer, resize, reduced motion) are expected to
// run on one goroutine.
package sky

import (
	"math"
	"math/rand"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"starfield/internal/canvas"
	"starfield/internal/log"
)

// Field owns the surface and every star and comet drawn on it.
type Field struct {
	cfg    Config
	star   colorful.Color
	accent colorful.Color
	style  cometStyle

	rng    *rand.Rand
	logger *log.Logger

	surface *canvas.Surface
	width   float64 // layout px
	height  float64

	stars  []Star
	comets []*Comet

	pointer       Point
	hasPointer    bool
	reducedMotion bool

	started   bool
	last      time.Duration
	nextComet time.Duration
	spawned   int
}

// Option configures a Field.
type Option func(*Field)

// WithRand sets the random source, for reproducible fields.
func WithRand(rng *rand.Rand) Option {
	return func(f *Field) { f.rng = rng }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(f *Field) { f.logger = l }
}

// NewField creates an empty field. Call Resize before the first Frame.
func NewField(cfg Config, opts ...Option) *Field {
	cfg = cfg.Normalize()
	f := &Field{
		cfg:     cfg,
		star:    canvas.ParseColor(cfg.StarColor),
		accent:  canvas.ParseColor(cfg.AccentColor),
		surface: canvas.NewSurface(0, 0, 1),
		logger:  log.Discard(),
		style: cometStyle{
			blend:            canvas.ParseBlend(cfg.TrailBlend),
			trailOpacity:     cfg.TrailOpacity,
			trailWidth:       cfg.TrailWidth,
			headOpacity:      cfg.HeadOpacity,
			glowOpacity:      cfg.GlowOpacity,
			headRadius:       cfg.CometHeadRadius,
			headGlow:         cfg.CometHeadGlow,
			tailBrightAtHead: cfg.TailBrightAtHead,
		},
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.rng == nil {
		f.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return f
}

// Config returns the normalized configuration in use.
func (f *Field) Config() Config { return f.cfg }

// Surface returns the drawing surface.
func (f *Field) Surface() *canvas.Surface { return f.surface }

// Size returns the layout viewport size.
func (f *Field) Size() (float64, float64) { return f.width, f.height }

// Stars returns the current star population. The slice is owned by the field.
func (f *Field) Stars() []Star { return f.stars }

// Comets returns the live comets. The slice is owned by the field.
func (f *Field) Comets() []*Comet { return f.comets }

// Spawned counts comets launched since the field was created.
func (f *Field) Spawned() int { return f.spawned }

// NextSpawn is the frame time after which the next comet launches.
func (f *Field) NextSpawn() time.Duration { return f.nextComet }

// Resize sets the layout viewport to w×h px at device pixel ratio dpr
// (clamped to [1,2]), reallocates the surface and regenerates every star.
func (f *Field) Resize(w, h, dpr float64) {
	w, h = nonNegative(w), nonNegative(h)
	dpr = math.Max(1, math.Min(2, dpr))
	if math.IsNaN(dpr) {
		dpr = 1
	}

	f.width, f.height = w, h
	f.surface.Resize(int(math.Floor(w*dpr)), int(math.Floor(h*dpr)), dpr)

	n := f.cfg.StarCount(w, h)
	f.stars = make([]Star, n)
	for i := range f.stars {
		f.stars[i] = newStar(f.rng, w, h)
	}
	f.logger.Debugf("field resized to %.0fx%.0f @%.1fx, %d stars", w, h, dpr, n)
}

// SetPointer records the pointer position in layout px. Last write wins.
func (f *Field) SetPointer(x, y float64) {
	f.pointer = Point{X: x, Y: y}
	f.hasPointer = true
}

// ClearPointer forgets the pointer; parallax returns to rest.
func (f *Field) ClearPointer() {
	f.hasPointer = false
}

// Pointer returns the last pointer position, if any.
func (f *Field) Pointer() (Point, bool) { return f.pointer, f.hasPointer }

// SetReducedMotion stops comet spawns and parallax while on.
// Comets already in flight finish their paths.
func (f *Field) SetReducedMotion(on bool) {
	f.reducedMotion = on
}

// ReducedMotion reports whether reduced motion is on.
func (f *Field) ReducedMotion() bool { return f.reducedMotion }

// SetCometEvery changes the spawn interval range in seconds. The pending
// spawn moment is kept.
func (f *Field) SetCometEvery(minSec, maxSec float64) {
	c := f.cfg
	c.CometEvery = [2]float64{minSec, maxSec}
	f.cfg.CometEvery = c.Normalize().CometEvery
}

// Frame advances the simulation to now (time since an arbitrary origin,
// monotonic) and redraws the surface.
func (f *Field) Frame(now time.Duration) {
	if !f.started {
		f.started = true
		f.last = now
		f.nextComet = now + SpawnDelay(f.rng, firstCometMinSec, firstCometMaxSec)
	}
	dt := min(max(now-f.last, 0), MaxStep).Seconds()
	f.last = now

	f.erase()
	f.drawStars(now)
	f.spawn(now)
	f.advance(dt)
}

// erase clears or fades the previous frame per FrameFade.
func (f *Field) erase() {
	switch {
	case f.cfg.FrameFade >= 1:
		f.surface.Clear()
	case f.cfg.FrameFade > 0:
		f.surface.Fade(f.cfg.FrameFade)
	}
}

func (f *Field) drawStars(now time.Duration) {
	var dx, dy float64
	parallax := f.cfg.Parallax
	if f.reducedMotion {
		parallax = 0
	}
	if f.hasPointer && parallax > 0 && f.width > 0 && f.height > 0 {
		dx = (f.pointer.X - f.width/2) / f.width
		dy = (f.pointer.Y - f.height/2) / f.height
	}

	for i := range f.stars {
		s := &f.stars[i]
		s.Twinkle(now, f.cfg.MaxTwinkle)
		ox, oy := s.Offset(dx, dy, parallax)
		s.draw(f.surface, f.star, f.accent, ox, oy)
	}
}

func (f *Field) spawn(now time.Duration) {
	if f.reducedMotion || now <= f.nextComet {
		return
	}
	f.comets = append(f.comets, newComet(f.rng, f.width, f.height, f.cfg.CometTrail))
	f.spawned++
	f.nextComet = now + SpawnDelay(f.rng, f.cfg.CometEvery[0], f.cfg.CometEvery[1])
	f.logger.Debugf("comet %d launched, %d live, next at %s", f.spawned, len(f.comets), f.nextComet)
}

// advance moves and draws every comet, then drops the dead ones.
func (f *Field) advance(dt float64) {
	alive := f.comets[:0]
	for _, c := range f.comets {
		c.Update(dt, f.width, f.height)
		c.draw(f.surface, f.accent, f.style)
		if !c.Dead() {
			alive = append(alive, c)
		}
	}
	clear(f.comets[len(alive):])
	f.comets = alive
}

// SpawnDelay draws a uniform delay from [minSec, maxSec] seconds.
func SpawnDelay(rng *rand.Rand, minSec, maxSec float64) time.Duration {
	if maxSec < minSec {
		maxSec = minSec
	}
	sec := minSec + rng.Float64()*(maxSec-minSec)
	return time.Duration(sec * float64(time.Second))
}
