package canvas

import (
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Filter reduces a block of device pixels to one color
type Filter uint8

const (
	// FilterMax keeps the brightest channel values so sub-block detail
	// (a star smaller than a terminal cell) stays visible
	FilterMax Filter = iota
	// FilterBox averages the block
	FilterBox
)

// ParseFilter maps "max" or "box" to a Filter; anything else is FilterMax
func ParseFilter(name string) Filter {
	if strings.EqualFold(strings.TrimSpace(name), "box") {
		return FilterBox
	}
	return FilterMax
}

func (f Filter) String() string {
	if f == FilterBox {
		return "box"
	}
	return "max"
}

// Sample reduces the device rect [x0,x1)×[y0,y1) with filter f.
// An empty or fully out-of-bounds rect yields black.
func (s *Surface) Sample(x0, y0, x1, y1 int, f Filter) colorful.Color {
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, s.width), min(y1, s.height)
	if x1 <= x0 || y1 <= y0 {
		return Black
	}

	var acc colorful.Color
	for y := y0; y < y1; y++ {
		row := s.pix[y*s.width : (y+1)*s.width]
		for x := x0; x < x1; x++ {
			p := row[x]
			if f == FilterBox {
				acc.R += p.R
				acc.G += p.G
				acc.B += p.B
				continue
			}
			acc.R = math.Max(acc.R, p.R)
			acc.G = math.Max(acc.G, p.G)
			acc.B = math.Max(acc.B, p.B)
		}
	}

	if f == FilterBox {
		n := float64((x1 - x0) * (y1 - y0))
		acc.R /= n
		acc.G /= n
		acc.B /= n
	}
	return acc.Clamped()
}
