package fixgeom

import "github.com/irfansharif/sweep/internal/geom"

// Points is a fixed-capacity list of intersection points, the sub-unit
// counterpart of geom.Points.
type Points struct {
	buf [geom.MaxPoints]Point
	n   int
}

func (ps *Points) Add(p Point) {
	if ps.n == len(ps.buf) {
		return
	}
	ps.buf[ps.n] = p
	ps.n++
}

// AddUnique appends p unless it was already collected. Sub-unit points are
// compared exactly.
func (ps *Points) AddUnique(p Point) {
	for _, q := range ps.buf[:ps.n] {
		if p == q {
			return
		}
	}
	ps.Add(p)
}

func (ps Points) Len() int       { return ps.n }
func (ps Points) At(i int) Point { return ps.buf[i] }

func (ps Points) Slice() []Point {
	out := make([]Point, ps.n)
	copy(out, ps.buf[:ps.n])
	return out
}

// Geom converts the collected points to world space.
func (ps Points) Geom() geom.Points {
	var out geom.Points
	for _, p := range ps.buf[:ps.n] {
		out.Add(ToFloat(p))
	}
	return out
}
