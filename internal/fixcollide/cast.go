package fixcollide

import (
	"math"

	"github.com/irfansharif/sweep/internal/fixgeom"
	"github.com/irfansharif/sweep/internal/trace"
)

// Hit is the result of a cast.
type Hit struct {
	Hit bool
	// T is the fraction of the displacement travelled before contact; 1 when
	// nothing is struck. Edge and segment contacts are exact fractions
	// converted once; contacts involving a circle boundary come from a
	// floating-point root, so T may sit slightly past the exact contact
	// while Travel still stops short of it.
	T float64
	// Distance is the travel in sub-units before contact; +Inf without a hit.
	// It is derived from T for reporting and never decides anything.
	Distance float64
	// Travel is the displacement the moving shape may make before contact,
	// truncated toward zero so applying it never penetrates the target. It
	// is the whole displacement when nothing is struck.
	Travel        fixgeom.Point
	PointOnShape  fixgeom.Point
	PointOnTarget fixgeom.Point
}

// frac is an exact hit parameter num/den with den > 0.
type frac struct {
	num, den int64
}

var zero = frac{0, 1}

func (f frac) less(g frac) bool {
	return fixgeom.MulWide(f.num, g.den).Cmp(fixgeom.MulWide(g.num, f.den)) < 0
}

func (f frac) float() float64 { return float64(f.num) / float64(f.den) }

// candidate is a contact found by one raycast.
type candidate struct {
	ok bool
	t  frac
	p  fixgeom.Point
}

func (c candidate) closer(t frac, p fixgeom.Point) candidate {
	if !c.ok || t.less(c.t) {
		return candidate{ok: true, t: t, p: p}
	}
	return c
}

// Sweep describes a cast: the moving shape is displaced by Delta sub-units.
// Trace, when set, receives the intermediate shapes in world space.
type Sweep struct {
	Delta fixgeom.Point
	Trace *trace.Trace
}

// SweepBy casts along an exact displacement.
func SweepBy(delta fixgeom.Point) Sweep { return Sweep{Delta: delta} }

// NewSweep casts along dir for maxDist sub-units. The displacement is dir
// rescaled to maxDist and rounded per axis.
func NewSweep(dir fixgeom.Point, maxDist int32) Sweep {
	return SweepBy(fixgeom.ScaleTo(dir, maxDist))
}

func (s Sweep) reversed() Sweep { return Sweep{Delta: s.Delta.Neg(), Trace: s.Trace} }

func (s Sweep) noHit() Hit {
	return Hit{
		T:             1,
		Distance:      math.Inf(1),
		Travel:        s.Delta,
		PointOnShape:  fixgeom.Sentinel,
		PointOnTarget: fixgeom.Sentinel,
	}
}

func (s Sweep) overlapping(shapeCenter, targetCenter fixgeom.Point) Hit {
	return Hit{Hit: true, PointOnShape: shapeCenter, PointOnTarget: targetCenter}
}

func (s Sweep) hitAt(f frac, p fixgeom.Point) Hit {
	t := f.float()
	return Hit{
		Hit:      true,
		T:        t,
		Distance: t * s.Delta.Length(),
		Travel: fixgeom.Point{
			X: fixgeom.Clamp32(fixgeom.MulDivTrunc(int64(s.Delta.X), f.num, f.den)),
			Y: fixgeom.Clamp32(fixgeom.MulDivTrunc(int64(s.Delta.Y), f.num, f.den)),
		},
		PointOnShape:  p,
		PointOnTarget: p,
	}
}

// hitAtRoot reports a contact at the root t of a circle quadratic: the moving
// center, starting at from, comes within radius of the point to. The root is
// inexact, so the truncated travel is stepped back one sub-unit at a time
// along its dominant axis until the center is no closer than radius to to.
func (s Sweep) hitAtRoot(t float64, p, from, to fixgeom.Point, radius int64) Hit {
	travel := fixgeom.Point{
		X: int32(float64(s.Delta.X) * t),
		Y: int32(float64(s.Delta.Y) * t),
	}
	for !travel.IsZero() && fixgeom.DistSq(from.Add(travel), to) < radius*radius {
		if abs32(travel.X) >= abs32(travel.Y) {
			travel.X -= int32(fixgeom.Sign(int64(travel.X)))
		} else {
			travel.Y -= int32(fixgeom.Sign(int64(travel.Y)))
		}
	}
	return Hit{
		Hit:           true,
		T:             t,
		Distance:      t * s.Delta.Length(),
		Travel:        travel,
		PointOnShape:  p,
		PointOnTarget: p,
	}
}

func abs32(v int32) int64 {
	if v < 0 {
		return -int64(v)
	}
	return int64(v)
}

// at returns o displaced by Delta·f, rounded.
func (s Sweep) at(o fixgeom.Point, f frac) fixgeom.Point {
	return fixgeom.Point{
		X: o.X + fixgeom.Clamp32(fixgeom.MulDivRound(int64(s.Delta.X), f.num, f.den)),
		Y: o.Y + fixgeom.Clamp32(fixgeom.MulDivRound(int64(s.Delta.Y), f.num, f.den)),
	}
}

func (s Sweep) tracePoint(k trace.Kind, label string, p fixgeom.Point) {
	if s.Trace != nil {
		s.Trace.Point(k, label, fixgeom.ToFloat(p))
	}
}

func (s Sweep) traceLine(k trace.Kind, label string, l fixgeom.Line) {
	if s.Trace != nil {
		s.Trace.Line(k, label, l.Geom())
	}
}

func (s Sweep) traceCircle(k trace.Kind, label string, c fixgeom.Circle) {
	if s.Trace != nil {
		s.Trace.Circle(k, label, c.Geom())
	}
}

// raycast moves o by Delta and returns the exact fraction of the displacement
// at which it reaches seg. A ray parallel to the segment never reaches it
// here; the caller's other candidates cover that case.
func (s Sweep) raycast(o fixgeom.Point, seg fixgeom.Line) (frac, bool) {
	s.traceLine(trace.Ray, "ray", fixgeom.Line{P1: o, P2: o.Add(s.Delta)})
	e := seg.Direction()
	denom := fixgeom.Cross(s.Delta, e)
	if denom == 0 {
		return frac{}, false
	}
	w := seg.P1.Sub(o)
	tNum := fixgeom.Cross(w, e)
	uNum := fixgeom.Cross(w, s.Delta)
	if denom < 0 {
		denom, tNum, uNum = -denom, -tNum, -uNum
	}
	if tNum < 0 || tNum > denom || uNum < 0 || uNum > denom {
		return frac{}, false
	}
	return frac{tNum, denom}, true
}

// pointHit casts the circle onto a single point: the earliest time the
// point comes within the radius of the moving center.
func (s Sweep) pointHit(c fixgeom.Circle, p fixgeom.Point) Hit {
	s.traceLine(trace.Ray, "backward", fixgeom.Line{P1: p, P2: p.Sub(s.Delta)})
	q := makeQuadratic(c.Center.Sub(p), s.Delta, int64(c.Radius))
	if !q.rootInUnit(-1) {
		return s.noHit()
	}
	return s.hitAtRoot(q.root(-1), p, c.Center, p, int64(c.Radius))
}

func (s Sweep) CircleToCircle(a, b fixgeom.Circle) Hit {
	if CircleCircleOverlap(a, b) {
		return s.overlapping(a.Center, b.Center)
	}
	grown := fixgeom.Circle{Center: b.Center, Radius: fixgeom.Clamp32(int64(a.Radius) + int64(b.Radius))}
	s.traceCircle(trace.Candidate, "combined", grown)
	q := makeQuadratic(a.Center.Sub(b.Center), s.Delta, int64(grown.Radius))
	if !q.rootInUnit(-1) {
		return s.noHit()
	}
	t := q.root(-1)
	center := along(a.Center, s.Delta, t)
	p := center.Add(fixgeom.ScaleTo(b.Center.Sub(center), a.Radius))
	s.tracePoint(trace.Contact, "contact", p)
	return s.hitAtRoot(t, p, a.Center, b.Center, int64(grown.Radius))
}

// CircleToRect raycasts the tangent point facing each edge the circle moves
// toward, then falls back to casting against every corner of those edges,
// keeping the earliest. The same corner-contact imprecision as the float
// module applies.
func (s Sweep) CircleToRect(c fixgeom.Circle, r fixgeom.Rect) Hit {
	if CircleRectOverlap(c, r) {
		return s.overlapping(c.Center, r.Center())
	}

	var best candidate
	var facing [4]bool
	for i, e := range r.Edges() {
		n := e.Normal()
		if fixgeom.Dot(n, s.Delta) >= 0 {
			continue
		}
		facing[i] = true
		s.traceLine(trace.Candidate, "edge", e)
		tangent := c.Center.Sub(fixgeom.ScaleTo(n, c.Radius))
		s.tracePoint(trace.Tangent, "tangent", tangent)
		if f, ok := s.raycast(tangent, e); ok {
			best = best.closer(f, s.at(tangent, f))
		}
	}
	if best.ok {
		s.tracePoint(trace.Contact, "edge contact", best.p)
		return s.hitAt(best.t, best.p)
	}

	h := s.noHit()
	for i, corner := range r.Corners() {
		if !facing[i] && !facing[(i+3)%4] {
			continue
		}
		s.tracePoint(trace.Candidate, "corner", corner)
		if ch := s.pointHit(c, corner); ch.Hit && (!h.Hit || ch.T < h.T) {
			h = ch
		}
	}
	if h.Hit {
		s.tracePoint(trace.Contact, "corner contact", h.PointOnTarget)
	}
	return h
}

func (s Sweep) CircleToLine(c fixgeom.Circle, l fixgeom.Line) Hit {
	if CircleLineOverlap(c, l) {
		return s.overlapping(c.Center, l.Center())
	}

	n := l.Normal()
	if fixgeom.Dot(n, c.Center.Sub(l.P1)) < 0 {
		n = n.Neg()
	}
	if fixgeom.Dot(n, s.Delta) < 0 {
		s.traceLine(trace.Candidate, "line", l)
		tangent := c.Center.Sub(fixgeom.ScaleTo(n, c.Radius))
		s.tracePoint(trace.Tangent, "tangent", tangent)
		if f, ok := s.raycast(tangent, l); ok {
			p := s.at(tangent, f)
			s.tracePoint(trace.Contact, "contact", p)
			return s.hitAt(f, p)
		}
	}

	end := l.P1
	if fixgeom.DistSq(l.P2, c.Center) < fixgeom.DistSq(l.P1, c.Center) {
		end = l.P2
	}
	s.tracePoint(trace.Candidate, "endpoint", end)
	return s.pointHit(c, end)
}

// leading reports whether corner i lies on an edge whose outward normal
// points along d.
func leading(i int, d fixgeom.Point) bool {
	sign := fixgeom.CornerSign(i)
	return int64(sign.X)*int64(d.X) > 0 || int64(sign.Y)*int64(d.Y) > 0
}

// RectToLine raycasts the leading corners onto the segment and the segment's
// endpoints backward onto the leading edges.
func (s Sweep) RectToLine(r fixgeom.Rect, l fixgeom.Line) Hit {
	if RectLineOverlap(r, l) {
		return s.overlapping(r.Center(), l.Center())
	}

	var best candidate
	for i, c := range r.Corners() {
		if !leading(i, s.Delta) {
			continue
		}
		if f, ok := s.raycast(c, l); ok {
			best = best.closer(f, s.at(c, f))
		}
	}

	rev := s.reversed()
	edges := r.Edges()
	for _, p := range [...]fixgeom.Point{l.P1, l.P2} {
		for _, e := range edges {
			if fixgeom.Dot(e.Normal(), s.Delta) <= 0 {
				continue
			}
			if f, ok := rev.raycast(p, e); ok {
				best = best.closer(f, p)
			}
		}
	}
	if !best.ok {
		return s.noHit()
	}
	s.tracePoint(trace.Contact, "contact", best.p)
	return s.hitAt(best.t, best.p)
}

// RectToRect casts rectangle a onto b. Rectangles that merely touch are not
// overlapping; whether touching blocks the move depends on the direction:
//   - opposite corners exactly touching block only a move into the quadrant
//     of that corner, and nothing else can be hit afterwards;
//   - a contact found by raycasting counts only if, at the contact time, the
//     rectangles' extents along the contact face overlap with positive
//     length, or meet at a corner the move drives across. Sliding along a
//     touching face is therefore not blocked.
func (s Sweep) RectToRect(a, b fixgeom.Rect) Hit {
	if RectRectOverlapAllowEdgeTouch(a, b) {
		return s.overlapping(a.Center(), b.Center())
	}

	ac, bc := a.Corners(), b.Corners()
	for i := range ac {
		if ac[i] != bc[(i+2)%4] {
			continue
		}
		sign := fixgeom.CornerSign(i)
		s.tracePoint(trace.Candidate, "touching corner", ac[i])
		if int32(fixgeom.Sign(int64(s.Delta.X))) == sign.X && int32(fixgeom.Sign(int64(s.Delta.Y))) == sign.Y {
			s.tracePoint(trace.Contact, "contact", ac[i])
			return s.hitAt(zero, ac[i])
		}
		return s.noHit()
	}

	var best candidate
	for i, c := range ac {
		if !leading(i, s.Delta) {
			continue
		}
		for j, e := range b.Edges() {
			if fixgeom.Dot(e.Normal(), s.Delta) >= 0 {
				continue
			}
			f, ok := s.raycast(c, e)
			if !ok {
				continue
			}
			p := s.at(c, f)
			if !s.faceContact(a, b, j%2 == 0, f) {
				s.tracePoint(trace.Rejected, "sliding", p)
				continue
			}
			best = best.closer(f, p)
		}
	}

	rev := s.reversed()
	edges := a.Edges()
	for i, c := range bc {
		if !leading(i, rev.Delta) {
			continue
		}
		for j, e := range edges {
			if fixgeom.Dot(e.Normal(), s.Delta) <= 0 {
				continue
			}
			f, ok := rev.raycast(c, e)
			if !ok {
				continue
			}
			if !s.faceContact(a, b, j%2 == 0, f) {
				s.tracePoint(trace.Rejected, "sliding", c)
				continue
			}
			best = best.closer(f, c)
		}
	}
	if !best.ok {
		return s.noHit()
	}
	s.tracePoint(trace.Contact, "contact", best.p)
	return s.hitAt(best.t, best.p)
}

// faceContact reports whether, with a displaced by Delta·f, the extents of a
// and b along the contact face overlap with positive length, or meet at a
// point the displacement drives into. vertical selects a face parallel to
// the y axis, whose extents are compared in y. All comparisons are scaled by
// f's denominator and made in 128 bits.
func (s Sweep) faceContact(a, b fixgeom.Rect, vertical bool, f frac) bool {
	aMin, aMax, bMin, bMax, d := a.Min.X, a.Max.X, b.Min.X, b.Max.X, s.Delta.X
	if vertical {
		aMin, aMax, bMin, bMax, d = a.Min.Y, a.Max.Y, b.Min.Y, b.Max.Y, s.Delta.Y
	}
	off := fixgeom.MulWide(int64(d), f.num)
	lo := fixgeom.MulWide(int64(aMin), f.den).Add(off)
	hi := fixgeom.MulWide(int64(aMax), f.den).Add(off)
	bLo := fixgeom.MulWide(int64(bMin), f.den)
	bHi := fixgeom.MulWide(int64(bMax), f.den)

	below, above := lo.Cmp(bHi), hi.Cmp(bLo)
	switch {
	case below < 0 && above > 0:
		return true
	case above == 0:
		return d > 0
	case below == 0:
		return d < 0
	}
	return false
}

func CircleCastToCircle(c fixgeom.Circle, dir fixgeom.Point, maxDist int32, target fixgeom.Circle) Hit {
	return NewSweep(dir, maxDist).CircleToCircle(c, target)
}

func CircleCastToRect(c fixgeom.Circle, dir fixgeom.Point, maxDist int32, target fixgeom.Rect) Hit {
	return NewSweep(dir, maxDist).CircleToRect(c, target)
}

func CircleCastToLine(c fixgeom.Circle, dir fixgeom.Point, maxDist int32, target fixgeom.Line) Hit {
	return NewSweep(dir, maxDist).CircleToLine(c, target)
}

func RectCastToLine(r fixgeom.Rect, dir fixgeom.Point, maxDist int32, target fixgeom.Line) Hit {
	return NewSweep(dir, maxDist).RectToLine(r, target)
}

func RectCastToRect(r fixgeom.Rect, dir fixgeom.Point, maxDist int32, target fixgeom.Rect) Hit {
	return NewSweep(dir, maxDist).RectToRect(r, target)
}
