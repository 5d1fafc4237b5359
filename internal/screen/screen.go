// Package screen presents a sky.Field on a terminal. Each cell shows two
// vertically stacked pixels using the upper half block: the top pixel is the
// foreground color and the bottom one the background.
package screen

import (
	"context"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"starfield/internal/canvas"
	"starfield/internal/log"
	"starfield/internal/sky"
	"starfield/internal/ticker"
)

const halfBlock = '▀'

// MaxFPS caps the frame rate; past it the frame interval rounds to zero.
const MaxFPS = 1000

// ClampFPS maps fps into [1, MaxFPS], with non-positive values falling back
// to the default rate.
func ClampFPS(fps int) int {
	if fps <= 0 {
		return DefaultOptions().FPS
	}
	return min(fps, MaxFPS)
}

// Options tunes how the field maps onto the terminal.
type Options struct {
	CellWidth  float64 // layout px per column
	CellHeight float64 // layout px per row (two pixels)
	DPR        float64 // device pixel ratio, clamped to [1,2] by the field
	FPS        int
	Filter     canvas.Filter
	Cadence    sky.Cadence
	Ticker     *ticker.Ticker
	Logger     *log.Logger
}

// DefaultOptions roughly matches a common 8×16 terminal font cell.
func DefaultOptions() Options {
	return Options{
		CellWidth:  8,
		CellHeight: 16,
		DPR:        1,
		FPS:        30,
		Filter:     canvas.FilterMax,
		Cadence:    sky.DefaultCadence,
	}
}

// Presenter drives a field from terminal events and paints it every frame.
type Presenter struct {
	s      tcell.Screen
	field  *sky.Field
	opts   Options
	logger *log.Logger

	cols, rows int
	cadence    sky.Cadence
	frame      int
}

// New binds a field to an initialized screen.
func New(s tcell.Screen, field *sky.Field, opts Options) *Presenter {
	def := DefaultOptions()
	if opts.CellWidth <= 0 {
		opts.CellWidth = def.CellWidth
	}
	if opts.CellHeight <= 0 {
		opts.CellHeight = def.CellHeight
	}
	if opts.DPR <= 0 {
		opts.DPR = def.DPR
	}
	opts.FPS = ClampFPS(opts.FPS)
	if opts.Cadence == "" {
		opts.Cadence = def.Cadence
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}
	return &Presenter{
		s:       s,
		field:   field,
		opts:    opts,
		logger:  logger,
		cadence: opts.Cadence,
	}
}

// Cadence returns the active comet cadence preset.
func (p *Presenter) Cadence() sky.Cadence { return p.cadence }

// Resize matches the field to the current screen size. It reports false
// when the screen has no drawable area.
func (p *Presenter) Resize() bool {
	p.cols, p.rows = p.s.Size()
	if p.cols <= 0 || p.rows <= 0 {
		return false
	}
	p.field.Resize(float64(p.cols)*p.opts.CellWidth, float64(p.rows)*p.opts.CellHeight, p.opts.DPR)
	p.s.Clear()
	p.logger.Infof("screen %dx%d cells, %d stars", p.cols, p.rows, len(p.field.Stars()))
	return true
}

// HandleEvent applies one terminal event and reports whether to quit.
func (p *Presenter) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyUp:
			p.setCadence(p.cadence.Faster())
		case tcell.KeyDown:
			p.setCadence(p.cadence.Slower())
		case tcell.KeyRune:
			if ev.Rune() != 'm' && ev.Rune() != 'M' {
				return true
			}
			on := !p.field.ReducedMotion()
			p.field.SetReducedMotion(on)
			p.logger.Infof("reduced motion: %v", on)
		default:
			return true
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		p.field.SetPointer((float64(x)+0.5)*p.opts.CellWidth, (float64(y)+0.5)*p.opts.CellHeight)
	case *tcell.EventResize:
		if !p.Resize() {
			return true
		}
	}
	return false
}

func (p *Presenter) setCadence(c sky.Cadence) {
	if c.Apply(p.field) {
		p.cadence = c
		p.logger.Infof("comet cadence: %s", c)
	}
}

// Draw advances the field to now and paints it, without showing.
func (p *Presenter) Draw(now time.Duration) {
	p.field.Frame(now)

	surf := p.field.Surface()
	scale := surf.Scale()
	pxW := p.opts.CellWidth * scale
	pxH := p.opts.CellHeight / 2 * scale

	for y := 0; y < p.rows; y++ {
		for x := 0; x < p.cols; x++ {
			x0 := int(math.Floor(float64(x) * pxW))
			x1 := int(math.Floor(float64(x+1) * pxW))
			top := p.sample(surf, x0, x1, 2*y, pxH)
			bottom := p.sample(surf, x0, x1, 2*y+1, pxH)
			style := tcell.StyleDefault.Foreground(toTcell(top)).Background(toTcell(bottom))
			p.s.SetContent(x, y, halfBlock, nil, style)
		}
	}

	if p.opts.Ticker != nil {
		p.opts.Ticker.Draw(p.s, p.frame)
	}
	p.frame++
}

func (p *Presenter) sample(surf *canvas.Surface, x0, x1, py int, pxH float64) colorful.Color {
	y0 := int(math.Floor(float64(py) * pxH))
	y1 := int(math.Floor(float64(py+1) * pxH))
	return surf.Sample(x0, y0, max(x1, x0+1), max(y1, y0+1), p.opts.Filter)
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Run owns the screen until a key press, a vanished screen or ctx ends.
// Frame scheduling and event delivery stop together when it returns.
func (p *Presenter) Run(ctx context.Context) error {
	p.s.EnableMouse(tcell.MouseMotionEvents)
	p.s.HideCursor()
	if !p.Resize() {
		return nil
	}

	events := make(chan tcell.Event, 10)
	go func() {
		for {
			ev := p.s.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	frames := time.NewTicker(time.Second / time.Duration(p.opts.FPS))
	defer frames.Stop()

	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if p.HandleEvent(ev) {
				return nil
			}
		case <-frames.C:
			p.Draw(time.Since(start))
			p.s.Show()
		}
	}
}
