package canvas

// Stop is a gradient color stop at Offset in [0,1]
type Stop struct {
	Offset float64
	Paint  Paint
}

// Gradient is a radial gradient centered on the shape it fills.
// Stops must be sorted by offset.
type Gradient struct {
	Radius float64 // layout px
	Stops  []Stop
}

// Solid returns a gradient with a single paint everywhere
func Solid(p Paint) Gradient {
	return Gradient{Radius: 1, Stops: []Stop{{Offset: 0, Paint: p}}}
}

// At returns the interpolated paint at normalized distance t
func (g Gradient) At(t float64) Paint {
	n := len(g.Stops)
	if n == 0 {
		return Paint{}
	}
	if t <= g.Stops[0].Offset {
		return g.Stops[0].Paint
	}
	for i := 1; i < n; i++ {
		hi := g.Stops[i]
		if t > hi.Offset {
			continue
		}
		lo := g.Stops[i-1]
		span := hi.Offset - lo.Offset
		if span <= 0 {
			return hi.Paint
		}
		f := (t - lo.Offset) / span
		return Paint{
			Color: lo.Paint.Color.BlendRgb(hi.Paint.Color, f),
			Alpha: lo.Paint.Alpha + (hi.Paint.Alpha-lo.Paint.Alpha)*f,
		}
	}
	return g.Stops[n-1].Paint
}
