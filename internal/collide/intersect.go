package collide

import (
	"math"

	"github.com/irfansharif/sweep/internal/geom"
)

// parallelEpsilon is the slope difference below which two lines are treated as
// parallel.
const parallelEpsilon = 1e-9

// IsInfiniteLinePointOnLineSegment reports whether p, already known to lie on
// the infinite line through l, falls on the finite segment. It tests p against
// the bounding box of the endpoints; an axis where the endpoints coincide is
// padded by geom.Epsilon so floating point noise does not exclude a point on a
// vertical or horizontal segment.
func IsInfiniteLinePointOnLineSegment(p geom.Point, l geom.Line) bool {
	minX, maxX := math.Min(l.P1.X, l.P2.X), math.Max(l.P1.X, l.P2.X)
	minY, maxY := math.Min(l.P1.Y, l.P2.Y), math.Max(l.P1.Y, l.P2.Y)
	if maxX-minX < geom.Epsilon {
		minX, maxX = minX-geom.Epsilon, maxX+geom.Epsilon
	}
	if maxY-minY < geom.Epsilon {
		minY, maxY = minY-geom.Epsilon, maxY+geom.Epsilon
	}
	return p.X >= minX && p.X <= maxX && p.Y >= minY && p.Y <= maxY
}

// slopeIntercept returns m and b of y = m*x + b. Callers handle vertical lines
// first.
func slopeIntercept(l geom.Line) (m, b float64) {
	m = (l.P2.Y - l.P1.Y) / (l.P2.X - l.P1.X)
	return m, l.P1.Y - m*l.P1.X
}

// InfiniteLinesIntersect intersects the infinite lines through a and b.
// Parallel lines, including two vertical ones, do not intersect.
func InfiniteLinesIntersect(a, b geom.Line) (geom.Point, bool) {
	aVertical, bVertical := a.IsVertical(), b.IsVertical()
	switch {
	case aVertical && bVertical:
		return geom.NaNPoint(), false
	case aVertical:
		mb, cb := slopeIntercept(b)
		x := a.P1.X
		return geom.Point{X: x, Y: mb*x + cb}, true
	case bVertical:
		ma, ca := slopeIntercept(a)
		x := b.P1.X
		return geom.Point{X: x, Y: ma*x + ca}, true
	}

	ma, ca := slopeIntercept(a)
	mb, cb := slopeIntercept(b)
	if math.Abs(ma-mb) < parallelEpsilon {
		return geom.NaNPoint(), false
	}
	x := (cb - ca) / (ma - mb)
	return geom.Point{X: x, Y: ma*x + ca}, true
}

// LineLineIntersect finds the intersection of two segments. The point must lie
// on both segments. Collinear overlapping segments intersect at an endpoint
// of one contained in the other.
func LineLineIntersect(a, b geom.Line) (geom.Point, bool) {
	if p, ok := InfiniteLinesIntersect(a, b); ok {
		if IsInfiniteLinePointOnLineSegment(p, a) && IsInfiniteLinePointOnLineSegment(p, b) {
			return p, true
		}
		return geom.NaNPoint(), false
	}
	if !collinear(a, b) {
		return geom.NaNPoint(), false
	}
	for _, p := range [...]geom.Point{b.P1, b.P2} {
		if IsInfiniteLinePointOnLineSegment(p, a) {
			return p, true
		}
	}
	for _, p := range [...]geom.Point{a.P1, a.P2} {
		if IsInfiniteLinePointOnLineSegment(p, b) {
			return p, true
		}
	}
	return geom.NaNPoint(), false
}

// LineLineOverlap reports whether two segments share a point.
func LineLineOverlap(a, b geom.Line) bool {
	_, ok := LineLineIntersect(a, b)
	return ok
}

// collinear reports whether two parallel segments lie on the same line.
func collinear(a, b geom.Line) bool {
	if a.Direction().LenSq() == 0 {
		a, b = b, a
	}
	d := a.Direction()
	l := d.Len()
	if l == 0 {
		return geom.Dist(a.P1, b.P1) < geom.Epsilon
	}
	return math.Abs(geom.Cross(d, b.P1.Sub(a.P1)))/l < geom.Epsilon &&
		math.Abs(geom.Cross(d, b.P2.Sub(a.P1)))/l < geom.Epsilon
}

// CircleLineIntersect returns the points where the segment crosses the circle's
// boundary. The segment is translated into circle-centered coordinates; a
// vertical segment is solved directly from y = ±sqrt(r²-x²), any other through
// the quadratic formula on its slope/intercept form. Candidates off the finite
// segment are dropped.
func CircleLineIntersect(c geom.Circle, l geom.Line) geom.Points {
	var pts geom.Points
	local := l.Translate(c.Center.Neg())
	r := c.Radius

	var candidates [2]geom.Point
	n := 0
	if local.IsVertical() {
		x := local.P1.X
		if math.Abs(x) > r {
			return pts
		}
		h := math.Sqrt(r*r - x*x)
		candidates[0] = geom.Point{X: x, Y: h}
		candidates[1] = geom.Point{X: x, Y: -h}
		n = 2
		if h == 0 {
			n = 1
		}
	} else {
		// x² + (mx+b)² = r²  =>  (1+m²)x² + 2mbx + (b²-r²) = 0
		m, b := slopeIntercept(local)
		qa := 1 + m*m
		qb := 2 * m * b
		qc := b*b - r*r
		disc := qb*qb - 4*qa*qc
		if disc < 0 {
			return pts
		}
		sq := math.Sqrt(disc)
		x1 := (-qb - sq) / (2 * qa)
		x2 := (-qb + sq) / (2 * qa)
		candidates[0] = geom.Point{X: x1, Y: m*x1 + b}
		candidates[1] = geom.Point{X: x2, Y: m*x2 + b}
		n = 2
		if disc == 0 {
			n = 1
		}
	}

	for _, p := range candidates[:n] {
		if IsInfiniteLinePointOnLineSegment(p, local) {
			pts.Add(p.Add(c.Center))
		}
	}
	return pts
}

// CircleRectIntersect collects every point where the circle's boundary crosses
// the rectangle's edges.
func CircleRectIntersect(c geom.Circle, r geom.Rect) geom.Points {
	var pts geom.Points
	for _, e := range r.Edges() {
		ep := CircleLineIntersect(c, e)
		for i := 0; i < ep.Len(); i++ {
			pts.AddUnique(ep.At(i), geom.Epsilon)
		}
	}
	return pts
}

// RectLineIntersect collects every point where the segment crosses the
// rectangle's edges.
func RectLineIntersect(r geom.Rect, l geom.Line) geom.Points {
	var pts geom.Points
	for _, e := range r.Edges() {
		if p, ok := LineLineIntersect(e, l); ok {
			pts.AddUnique(p, geom.Epsilon)
		}
	}
	return pts
}

// RectRectIntersect collects every point where the two rectangles' edges
// cross.
func RectRectIntersect(a, b geom.Rect) geom.Points {
	var pts geom.Points
	for _, ea := range a.Edges() {
		for _, eb := range b.Edges() {
			if p, ok := LineLineIntersect(ea, eb); ok {
				pts.AddUnique(p, geom.Epsilon)
			}
		}
	}
	return pts
}

// ClosestPointOnSegment returns the point of l nearest to p.
func ClosestPointOnSegment(p geom.Point, l geom.Line) geom.Point {
	d := l.Direction()
	lsq := d.LenSq()
	if lsq == 0 {
		return l.P1
	}
	t := geom.Dot(p.Sub(l.P1), d) / lsq
	t = math.Max(0, math.Min(1, t))
	return geom.Lerp(l.P1, l.P2, t)
}

// PointSegmentDistance returns the distance from p to the nearest point of l.
func PointSegmentDistance(p geom.Point, l geom.Line) float64 {
	return geom.Dist(p, ClosestPointOnSegment(p, l))
}

// SegmentSegmentDistance returns the smallest distance between two segments,
// zero when they intersect.
func SegmentSegmentDistance(a, b geom.Line) float64 {
	if LineLineOverlap(a, b) {
		return 0
	}
	return math.Min(
		math.Min(PointSegmentDistance(a.P1, b), PointSegmentDistance(a.P2, b)),
		math.Min(PointSegmentDistance(b.P1, a), PointSegmentDistance(b.P2, a)),
	)
}
