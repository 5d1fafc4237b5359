package main

import (
	"flag"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"starfield/internal/sky"
)

// secondsRange is a "min,max" flag value in seconds. A single number sets both.
type secondsRange [2]float64

func (r *secondsRange) String() string {
	if r == nil {
		return ""
	}
	return strconv.FormatFloat(r[0], 'g', -1, 64) + "," + strconv.FormatFloat(r[1], 'g', -1, 64)
}

func (r *secondsRange) Set(s string) error {
	parts := strings.Split(s, ",")
	if len(parts) > 2 {
		return fmt.Errorf("want min,max, got %q", s)
	}
	var vals [2]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return fmt.Errorf("parsing %q: %w", p, err)
		}
		vals[i] = v
	}
	if len(parts) == 1 {
		vals[1] = vals[0]
	}
	*r = vals
	return nil
}

// lookValue applies a sky.Look to the flag set's config when set. Flags
// given after -look override its values.
type lookValue struct {
	sf   *skyFlags
	name string
}

func (l *lookValue) String() string {
	if l == nil || l.name == "" {
		return string(sky.LookStock)
	}
	return l.name
}

func (l *lookValue) Set(s string) error {
	cfg, ok := sky.Look(strings.TrimSpace(s)).Apply(l.sf.cfg)
	if !ok {
		return fmt.Errorf("unknown look %q", s)
	}
	l.sf.cfg = cfg
	l.sf.every = secondsRange(cfg.CometEvery)
	l.name = strings.TrimSpace(s)
	return nil
}

// skyFlags binds every sky.Config knob to a flag set.
type skyFlags struct {
	cfg           sky.Config
	every         secondsRange
	seed          int64
	reducedMotion bool
}

func registerSkyFlags(fs *flag.FlagSet) *skyFlags {
	sf := &skyFlags{cfg: sky.DefaultConfig()}
	sf.every = secondsRange(sf.cfg.CometEvery)
	c := &sf.cfg

	fs.Var(&lookValue{sf: sf}, "look", "Comet look preset: stock or site (put before flags it should not override)")
	fs.Float64Var(&c.Density, "density", c.Density, "Stars per 10000 px² of viewport")
	fs.IntVar(&c.MinStars, "min-stars", c.MinStars, "Minimum star count on small viewports")
	fs.StringVar(&c.StarColor, "star-color", c.StarColor, "Star color (#rgb or #rrggbb)")
	fs.StringVar(&c.AccentColor, "accent-color", c.AccentColor, "Halo and comet color (#rgb or #rrggbb)")
	fs.Float64Var(&c.MaxTwinkle, "max-twinkle", c.MaxTwinkle, "Twinkle amplitude, 0-1")
	fs.Var(&sf.every, "comet-every", "Seconds between comets as min,max")
	fs.Float64Var(&c.Parallax, "parallax", c.Parallax, "Pointer parallax strength (0 disables)")
	fs.IntVar(&c.CometTrail, "comet-trail", c.CometTrail, "Comet trail length in frames")
	fs.Float64Var(&c.CometHeadRadius, "comet-head-radius", c.CometHeadRadius, "Comet head radius in px")
	fs.Float64Var(&c.CometHeadGlow, "comet-head-glow", c.CometHeadGlow, "Comet glow radius in px")
	fs.Float64Var(&c.FrameFade, "frame-fade", c.FrameFade, "Fraction of the previous frame erased each frame (1 clears)")
	fs.BoolVar(&c.TailBrightAtHead, "tail-bright-at-head", c.TailBrightAtHead, "Brighten comet trails toward the head")
	fs.Float64Var(&c.TrailOpacity, "trail-opacity", c.TrailOpacity, "Comet trail opacity, 0-1")
	fs.Float64Var(&c.TrailWidth, "trail-width", c.TrailWidth, "Comet trail width in px")
	fs.Float64Var(&c.HeadOpacity, "head-opacity", c.HeadOpacity, "Comet head opacity, 0-1")
	fs.Float64Var(&c.GlowOpacity, "glow-opacity", c.GlowOpacity, "Comet glow opacity, 0-1")
	fs.StringVar(&c.TrailBlend, "trail-blend", c.TrailBlend, "Comet blend mode: source-over, lighter, screen, lighten")
	fs.Int64Var(&sf.seed, "seed", 0, "Random seed (0 picks one from the clock)")
	fs.BoolVar(&sf.reducedMotion, "reduced-motion", false, "No comets and no parallax")
	return sf
}

// config returns the sky configuration with the parsed comet range applied.
func (sf *skyFlags) config() sky.Config {
	c := sf.cfg
	c.CometEvery = [2]float64(sf.every)
	return c
}

func (sf *skyFlags) newRand() *rand.Rand {
	seed := sf.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
