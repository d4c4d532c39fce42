package geom

// MaxPoints is the largest number of intersection points any shape pair can
// produce (a circle crossing all four edges of a rectangle twice).
const MaxPoints = 8

// Points is a fixed-capacity list of intersection points. It lives on the
// stack so intersection queries inside hot loops do not allocate.
type Points struct {
	buf [MaxPoints]Point
	n   int
}

// Add appends p, silently dropping it once the buffer is full.
func (ps *Points) Add(p Point) {
	if ps.n == len(ps.buf) {
		return
	}
	ps.buf[ps.n] = p
	ps.n++
}

// AddUnique appends p unless a point within tol of it was already collected.
// A segment passing exactly through a rectangle corner crosses two edges at
// the same place and should report that point once.
func (ps *Points) AddUnique(p Point, tol float64) {
	for _, q := range ps.buf[:ps.n] {
		if DistSq(p, q) <= tol*tol {
			return
		}
	}
	ps.Add(p)
}

func (ps Points) Len() int       { return ps.n }
func (ps Points) At(i int) Point { return ps.buf[i] }

// Slice returns a copy of the collected points.
func (ps Points) Slice() []Point {
	out := make([]Point, ps.n)
	copy(out, ps.buf[:ps.n])
	return out
}

// Nearest returns the collected point closest to p.
func (ps Points) Nearest(p Point) (Point, bool) {
	if ps.n == 0 {
		return NaNPoint(), false
	}
	best, bestD := ps.buf[0], DistSq(ps.buf[0], p)
	for _, q := range ps.buf[1:ps.n] {
		if d := DistSq(q, p); d < bestD {
			best, bestD = q, d
		}
	}
	return best, true
}
