package canvas

import (
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Surface is a device-pixel RGB buffer. Drawing calls take layout
// coordinates and are scaled by the surface's pixel ratio.
type Surface struct {
	pix    []colorful.Color
	width  int
	height int
	scale  float64
}

// NewSurface creates a black surface of w×h device pixels
func NewSurface(w, h int, scale float64) *Surface {
	s := &Surface{}
	s.Resize(w, h, scale)
	return s
}

// Resize adjusts dimensions, reallocating only if capacity is insufficient,
// and clears the surface
func (s *Surface) Resize(w, h int, scale float64) {
	w, h = max(w, 0), max(h, 0)
	if scale <= 0 {
		scale = 1
	}
	size := w * h
	if cap(s.pix) < size {
		s.pix = make([]colorful.Color, size)
	} else {
		s.pix = s.pix[:size]
	}
	s.width = w
	s.height = h
	s.scale = scale
	s.Clear()
}

// Size returns the device pixel dimensions
func (s *Surface) Size() (int, int) { return s.width, s.height }

// Scale returns the layout-to-device pixel ratio
func (s *Surface) Scale() float64 { return s.scale }

// Clear resets every pixel to black using exponential copy
func (s *Surface) Clear() {
	if len(s.pix) == 0 {
		return
	}
	s.pix[0] = Black
	for filled := 1; filled < len(s.pix); filled *= 2 {
		copy(s.pix[filled:], s.pix[:filled])
	}
}

// Fade erodes the existing image by fraction f: 1 clears, 0 keeps everything
func (s *Surface) Fade(f float64) {
	f = Clamp01(f)
	if f <= 0 {
		return
	}
	if f >= 1 {
		s.Clear()
		return
	}
	keep := 1 - f
	for i := range s.pix {
		p := &s.pix[i]
		p.R *= keep
		p.G *= keep
		p.B *= keep
	}
}

func (s *Surface) inBounds(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

// At returns the pixel at device coordinates, black when out of bounds
func (s *Surface) At(x, y int) colorful.Color {
	if !s.inBounds(x, y) {
		return Black
	}
	return s.pix[y*s.width+x]
}

// Lit counts pixels brighter than the given luma threshold
func (s *Surface) Lit(threshold float64) int {
	n := 0
	for _, p := range s.pix {
		if Luma(p) > threshold {
			n++
		}
	}
	return n
}

// FillDisc fills a circle of radius r centered at (cx, cy) with gradient g,
// whose radius may exceed r (the disc then clips the gradient)
func (s *Surface) FillDisc(cx, cy, r float64, g Gradient, mode BlendMode) {
	if r <= 0 || len(g.Stops) == 0 {
		return
	}
	cx, cy, r = cx*s.scale, cy*s.scale, r*s.scale
	gr := g.Radius * s.scale
	if gr <= 0 {
		gr = r
	}

	x0 := max(int(math.Floor(cx-r-1)), 0)
	x1 := min(int(math.Ceil(cx+r+1)), s.width-1)
	y0 := max(int(math.Floor(cy-r-1)), 0)
	y1 := min(int(math.Ceil(cy+r+1)), s.height-1)

	for y := y0; y <= y1; y++ {
		py := float64(y) + 0.5 - cy
		for x := x0; x <= x1; x++ {
			px := float64(x) + 0.5 - cx
			d := math.Hypot(px, py)
			cov := Clamp01(r + 0.5 - d)
			if cov <= 0 {
				continue
			}
			idx := y*s.width + x
			s.pix[idx] = composite(s.pix[idx], g.At(d/gr), cov, mode)
		}
	}
}

// StrokeSegment draws a round-capped line of the given width
func (s *Surface) StrokeSegment(x1, y1, x2, y2, width float64, p Paint, mode BlendMode) {
	if width <= 0 || p.Alpha <= 0 {
		return
	}
	x1, y1, x2, y2 = x1*s.scale, y1*s.scale, x2*s.scale, y2*s.scale
	half := width * s.scale / 2

	bx0 := max(int(math.Floor(math.Min(x1, x2)-half-1)), 0)
	bx1 := min(int(math.Ceil(math.Max(x1, x2)+half+1)), s.width-1)
	by0 := max(int(math.Floor(math.Min(y1, y2)-half-1)), 0)
	by1 := min(int(math.Ceil(math.Max(y1, y2)+half+1)), s.height-1)

	dx, dy := x2-x1, y2-y1
	lenSq := dx*dx + dy*dy

	for y := by0; y <= by1; y++ {
		py := float64(y) + 0.5
		for x := bx0; x <= bx1; x++ {
			px := float64(x) + 0.5
			var t float64
			if lenSq > 0 {
				t = ((px-x1)*dx + (py-y1)*dy) / lenSq
				t = Clamp01(t)
			}
			d := math.Hypot(px-(x1+t*dx), py-(y1+t*dy))
			cov := Clamp01(half + 0.5 - d)
			if cov <= 0 {
				continue
			}
			idx := y*s.width + x
			s.pix[idx] = composite(s.pix[idx], p, cov, mode)
		}
	}
}

// Image exports the surface as an opaque RGBA image
func (s *Surface) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			r, g, b := s.pix[y*s.width+x].Clamped().RGB255()
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}
