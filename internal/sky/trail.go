package sky

// Point is a position or vector in layout px.
type Point struct {
	X, Y float64
}

// Trail is a fixed-capacity ring of recent positions. Once full, each Push
// evicts the oldest point.
type Trail struct {
	pts   []Point
	start int
	n     int
}

// NewTrail creates an empty trail holding at most capacity points (min 1).
func NewTrail(capacity int) *Trail {
	return &Trail{pts: make([]Point, max(capacity, 1))}
}

// Push appends p as the newest point.
func (t *Trail) Push(p Point) {
	if t.n < len(t.pts) {
		t.pts[(t.start+t.n)%len(t.pts)] = p
		t.n++
		return
	}
	t.pts[t.start] = p
	t.start = (t.start + 1) % len(t.pts)
}

func (t *Trail) Len() int { return t.n }

func (t *Trail) Cap() int { return len(t.pts) }

// At returns the i-th point, 0 being the oldest.
func (t *Trail) At(i int) Point {
	return t.pts[(t.start+i)%len(t.pts)]
}

// Head returns the newest point.
func (t *Trail) Head() (Point, bool) {
	if t.n == 0 {
		return Point{}, false
	}
	return t.At(t.n - 1), true
}

// Any reports whether fn holds for some point.
func (t *Trail) Any(fn func(Point) bool) bool {
	for i := 0; i < t.n; i++ {
		if fn(t.At(i)) {
			return true
		}
	}
	return false
}
