package fixcollide

import (
	"math"

	"github.com/irfansharif/sweep/internal/fixgeom"
)

// IsInfiniteLinePointOnLineSegment reports whether p, already known to lie on
// the infinite line through l, falls within the segment's endpoint box. Integer
// coordinates need no padding.
func IsInfiniteLinePointOnLineSegment(p fixgeom.Point, l fixgeom.Line) bool {
	return inBox(p, l.P1, l.P2)
}

func inBox(p, a, b fixgeom.Point) bool {
	minX, maxX := a.X, b.X
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY := a.Y, b.Y
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	return p.X >= minX && p.X <= maxX && p.Y >= minY && p.Y <= maxY
}

// SegmentsIntersect reports whether segments a and b share a point, touching
// and collinear overlap included. The decision uses orientation signs only.
func SegmentsIntersect(a, b fixgeom.Line) bool {
	o1 := fixgeom.Orientation(a.P1, a.P2, b.P1)
	o2 := fixgeom.Orientation(a.P1, a.P2, b.P2)
	o3 := fixgeom.Orientation(b.P1, b.P2, a.P1)
	o4 := fixgeom.Orientation(b.P1, b.P2, a.P2)

	if o1 != o2 && o3 != o4 {
		return true
	}
	switch {
	case o1 == fixgeom.Collinear && inBox(b.P1, a.P1, a.P2):
		return true
	case o2 == fixgeom.Collinear && inBox(b.P2, a.P1, a.P2):
		return true
	case o3 == fixgeom.Collinear && inBox(a.P1, b.P1, b.P2):
		return true
	case o4 == fixgeom.Collinear && inBox(a.P2, b.P1, b.P2):
		return true
	}
	return false
}

// onSameLine reports whether parallel segments a and b lie on one infinite
// line. Degenerate segments are points and are handled as such.
func onSameLine(a, b fixgeom.Line) bool {
	r, s := a.Direction(), b.Direction()
	switch {
	case r.IsZero() && s.IsZero():
		return a.P1 == b.P1
	case r.IsZero():
		return fixgeom.Cross(a.P1.Sub(b.P1), s) == 0
	}
	return fixgeom.Cross(b.P1.Sub(a.P1), r) == 0 && fixgeom.Cross(b.P2.Sub(a.P1), r) == 0
}

// sharedEndpoint returns an endpoint of one collinear segment lying on the
// other.
func sharedEndpoint(a, b fixgeom.Line) (fixgeom.Point, bool) {
	for _, p := range [...]fixgeom.Point{b.P1, b.P2} {
		if inBox(p, a.P1, a.P2) {
			return p, true
		}
	}
	for _, p := range [...]fixgeom.Point{a.P1, a.P2} {
		if inBox(p, b.P1, b.P2) {
			return p, true
		}
	}
	return fixgeom.Sentinel, false
}

// InfiniteLinesIntersect intersects the infinite lines through a and b. Two
// parallel lines that coincide (same slope and intercept) intersect
// everywhere; integer coordinates make this common, so a representative point
// is returned: an endpoint shared by the segments if there is one, else a.P1.
// Distinct parallel lines do not intersect. The crossing point of
// non-parallel lines is rounded to the nearest sub-unit.
func InfiniteLinesIntersect(a, b fixgeom.Line) (fixgeom.Point, bool) {
	r, s := a.Direction(), b.Direction()
	denom := fixgeom.Cross(r, s)
	if denom == 0 {
		if !onSameLine(a, b) {
			return fixgeom.Sentinel, false
		}
		if p, ok := sharedEndpoint(a, b); ok {
			return p, true
		}
		return a.P1, true
	}
	tNum := fixgeom.Cross(b.P1.Sub(a.P1), s)
	return fixgeom.Point{
		X: fixgeom.Clamp32(int64(a.P1.X) + fixgeom.MulDivRound(int64(r.X), tNum, denom)),
		Y: fixgeom.Clamp32(int64(a.P1.Y) + fixgeom.MulDivRound(int64(r.Y), tNum, denom)),
	}, true
}

// LineLineIntersect finds a point shared by two segments. Whether they
// intersect is decided exactly; collinear overlapping segments yield a
// contained endpoint, crossing segments their rounded crossing point.
func LineLineIntersect(a, b fixgeom.Line) (fixgeom.Point, bool) {
	if !SegmentsIntersect(a, b) {
		return fixgeom.Sentinel, false
	}
	if fixgeom.Cross(a.Direction(), b.Direction()) == 0 {
		if p, ok := sharedEndpoint(a, b); ok {
			return p, true
		}
	}
	return InfiniteLinesIntersect(a, b)
}

// LineLineOverlap reports whether two segments share a point.
func LineLineOverlap(a, b fixgeom.Line) bool { return SegmentsIntersect(a, b) }

// quadratic holds |P + tD|² = r² in the form a·t² - 2h·t + k = 0, relative to
// a circle center, with its discriminant disc = h² - a·k.
type quadratic struct {
	a, h int64
	disc fixgeom.Wide
}

func makeQuadratic(p, d fixgeom.Point, r int64) quadratic {
	a := fixgeom.Dot(d, d)
	h := -fixgeom.Dot(p, d)
	k := p.LenSq() - r*r
	return quadratic{a: a, h: h, disc: fixgeom.MulWide(h, h).Sub(fixgeom.MulWide(a, k))}
}

// rootInUnit reports, exactly, whether the root (h + sign·√disc)/a lies in
// [0, 1]. Squares are compared instead of taking the root.
func (q quadratic) rootInUnit(sign int) bool {
	if q.a == 0 || q.disc.Sign() < 0 {
		return false
	}
	hsq := fixgeom.MulWide(q.h, q.h)
	ah := q.a - q.h
	ahsq := fixgeom.MulWide(ah, ah)
	if sign < 0 {
		// h - √disc >= 0 and h - √disc <= a
		lower := q.h >= 0 && hsq.Cmp(q.disc) >= 0
		upper := q.h-q.a <= 0 || ahsq.Cmp(q.disc) <= 0
		return lower && upper
	}
	// h + √disc >= 0 and h + √disc <= a
	lower := q.h >= 0 || q.disc.Cmp(hsq) >= 0
	upper := ah >= 0 && q.disc.Cmp(ahsq) <= 0
	return lower && upper
}

// root places the root once rootInUnit has accepted it. This is the only
// place a square root is taken, and its result never decides anything.
func (q quadratic) root(sign int) float64 {
	sq := math.Sqrt(q.disc.Float())
	// The explicit conversion rounds the product so it cannot be fused into
	// a multiply-add, which would differ between architectures.
	t := (float64(q.h) + float64(float64(sign)*sq)) / float64(q.a)
	return math.Max(0, math.Min(1, t))
}

// along returns p + d·t rounded to the nearest sub-unit.
func along(p, d fixgeom.Point, t float64) fixgeom.Point {
	return fixgeom.Point{
		X: p.X + int32(math.Round(float64(d.X)*t)),
		Y: p.Y + int32(math.Round(float64(d.Y)*t)),
	}
}

// CircleLineIntersect returns the points where the segment crosses the
// circle's boundary. Whether each crossing exists and lies on the segment is
// decided from integer discriminants; only its position uses a square root.
func CircleLineIntersect(c fixgeom.Circle, l fixgeom.Line) fixgeom.Points {
	var pts fixgeom.Points
	d := l.Direction()
	p := l.P1.Sub(c.Center)
	r := int64(c.Radius)
	if d.IsZero() {
		if p.LenSq() == r*r {
			pts.Add(l.P1)
		}
		return pts
	}
	q := makeQuadratic(p, d, r)
	if q.disc.Sign() < 0 {
		return pts
	}
	if q.disc.Sign() == 0 {
		if q.rootInUnit(1) {
			pts.Add(along(l.P1, d, q.root(1)))
		}
		return pts
	}
	for _, sign := range [...]int{-1, 1} {
		if q.rootInUnit(sign) {
			pts.AddUnique(along(l.P1, d, q.root(sign)))
		}
	}
	return pts
}

// CircleRectIntersect collects every point where the circle's boundary
// crosses the rectangle's edges.
func CircleRectIntersect(c fixgeom.Circle, r fixgeom.Rect) fixgeom.Points {
	var pts fixgeom.Points
	for _, e := range r.Edges() {
		ep := CircleLineIntersect(c, e)
		for i := 0; i < ep.Len(); i++ {
			pts.AddUnique(ep.At(i))
		}
	}
	return pts
}

// RectLineIntersect collects every point where the segment meets the
// rectangle's edges.
func RectLineIntersect(r fixgeom.Rect, l fixgeom.Line) fixgeom.Points {
	var pts fixgeom.Points
	for _, e := range r.Edges() {
		if p, ok := LineLineIntersect(e, l); ok {
			pts.AddUnique(p)
		}
	}
	return pts
}

// RectRectIntersect collects every point where the rectangles' edges meet.
func RectRectIntersect(a, b fixgeom.Rect) fixgeom.Points {
	var pts fixgeom.Points
	for _, ea := range a.Edges() {
		for _, eb := range b.Edges() {
			if p, ok := LineLineIntersect(ea, eb); ok {
				pts.AddUnique(p)
			}
		}
	}
	return pts
}

// ClosestPointOnSegment returns the point of l nearest to p, rounded to the
// nearest sub-unit.
func ClosestPointOnSegment(p fixgeom.Point, l fixgeom.Line) fixgeom.Point {
	d := l.Direction()
	a := fixgeom.Dot(d, d)
	t := fixgeom.Dot(p.Sub(l.P1), d)
	switch {
	case a == 0 || t <= 0:
		return l.P1
	case t >= a:
		return l.P2
	}
	return fixgeom.Point{
		X: l.P1.X + int32(fixgeom.MulDivRound(int64(d.X), t, a)),
		Y: l.P1.Y + int32(fixgeom.MulDivRound(int64(d.Y), t, a)),
	}
}

// PointSegmentWithin reports, exactly, whether p lies within r of segment l.
// For the interior of the segment it compares |w|²·a - t² against r²·a, the
// squared perpendicular distance scaled by a = |d|², in 128 bits.
func PointSegmentWithin(p fixgeom.Point, l fixgeom.Line, r int64) bool {
	rsq := r * r
	d := l.Direction()
	w := p.Sub(l.P1)
	a := fixgeom.Dot(d, d)
	t := fixgeom.Dot(w, d)
	switch {
	case a == 0 || t <= 0:
		return w.LenSq() <= rsq
	case t >= a:
		return fixgeom.DistSq(p, l.P2) <= rsq
	}
	lhs := fixgeom.MulWide(w.LenSq(), a).Sub(fixgeom.MulWide(t, t))
	return lhs.Cmp(fixgeom.MulWide(rsq, a)) <= 0
}

// SegmentSegmentWithin reports whether segments a and b come within r of
// each other.
func SegmentSegmentWithin(a, b fixgeom.Line, r int64) bool {
	if SegmentsIntersect(a, b) {
		return true
	}
	return PointSegmentWithin(a.P1, b, r) || PointSegmentWithin(a.P2, b, r) ||
		PointSegmentWithin(b.P1, a, r) || PointSegmentWithin(b.P2, a, r)
}
