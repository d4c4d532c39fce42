package collide

import (
	"math"

	"github.com/irfansharif/sweep/internal/geom"
	"github.com/irfansharif/sweep/internal/trace"
)

// Hit is the result of a cast. When Hit is false, Distance is +Inf and both
// points are NaN; the points exist for debug rendering only.
type Hit struct {
	Hit           bool
	Distance      float64
	PointOnShape  geom.Point // contact point on the moving shape, at its contact position
	PointOnTarget geom.Point // contact point on the target
}

// NoHit is the cast result when nothing is struck.
func NoHit() Hit {
	return Hit{Distance: math.Inf(1), PointOnShape: geom.NaNPoint(), PointOnTarget: geom.NaNPoint()}
}

// overlapping is the cast result when the shapes already overlap: zero
// distance, with the shape centers standing in for contact points.
func overlapping(shapeCenter, targetCenter geom.Point) Hit {
	return Hit{Hit: true, PointOnShape: shapeCenter, PointOnTarget: targetCenter}
}

func contact(d float64, p geom.Point) Hit {
	return Hit{Hit: true, Distance: d, PointOnShape: p, PointOnTarget: p}
}

// closer keeps the nearer of two hits.
func closer(best, h Hit) Hit {
	if h.Hit && (!best.Hit || h.Distance < best.Distance) {
		return h
	}
	return best
}

// Sweep describes a cast: the moving shape travels along Dir, a unit vector,
// for at most MaxDist. Trace, when set, receives the intermediate shapes each
// cast considers.
type Sweep struct {
	Dir     geom.Point
	MaxDist float64
	Trace   *trace.Trace
}

// NewSweep normalizes dir.
func NewSweep(dir geom.Point, maxDist float64) Sweep {
	return Sweep{Dir: dir.Normalize(), MaxDist: maxDist}
}

func (s Sweep) reversed() Sweep {
	return Sweep{Dir: s.Dir.Neg(), MaxDist: s.MaxDist, Trace: s.Trace}
}

// ray is the path traced by origin over the whole sweep.
func (s Sweep) ray(origin geom.Point) geom.Line {
	return geom.Line{P1: origin, P2: origin.Add(s.Dir.Scale(s.MaxDist))}
}

// raycast moves origin along the sweep and returns how far it travels before
// reaching seg.
func (s Sweep) raycast(origin geom.Point, seg geom.Line) (float64, geom.Point, bool) {
	ray := s.ray(origin)
	s.Trace.Line(trace.Ray, "ray", ray)
	p, ok := LineLineIntersect(ray, seg)
	if !ok {
		return 0, geom.NaNPoint(), false
	}
	return math.Max(0, geom.Dot(p.Sub(origin), s.Dir)), p, true
}

// pointHit casts the circle onto a single point by sending a ray backward from
// the point; where that ray first meets the circle's boundary is the part of
// the circle that reaches the point.
func (s Sweep) pointHit(c geom.Circle, p geom.Point) Hit {
	back := s.reversed().ray(p)
	s.Trace.Line(trace.Ray, "backward", back)
	q, ok := CircleLineIntersect(c, back).Nearest(p)
	if !ok {
		return NoHit()
	}
	d := geom.Dist(p, q)
	if d > s.MaxDist {
		return NoHit()
	}
	return contact(d, p)
}

// CircleToCircle casts a onto b by casting a's center against a circle of the
// combined radius around b.
func (s Sweep) CircleToCircle(a, b geom.Circle) Hit {
	if CircleCircleOverlap(a, b) {
		return overlapping(a.Center, b.Center)
	}
	grown := geom.Circle{Center: b.Center, Radius: a.Radius + b.Radius}
	s.Trace.Circle(trace.Candidate, "combined", grown)
	path := s.ray(a.Center)
	s.Trace.Line(trace.Ray, "center", path)
	q, ok := CircleLineIntersect(grown, path).Nearest(a.Center)
	if !ok {
		return NoHit()
	}
	n := b.Center.Sub(q).Normalize()
	p := q.Add(n.Scale(a.Radius))
	s.Trace.Point(trace.Contact, "contact", p)
	return contact(geom.Dist(a.Center, q), p)
}

// CircleToRect casts a circle onto a rectangle. Only edges whose outward
// normal opposes the direction can be struck first; for each, the circle point
// that would touch it (the center pushed one radius along the inward normal) is
// raycast against the edge. If no edge is struck, every corner of those edges
// is cast against and the earliest contact wins. A contact landing exactly on a
// corner can be reported with a slightly wrong position and distance.
func (s Sweep) CircleToRect(c geom.Circle, r geom.Rect) Hit {
	if CircleRectOverlap(c, r) {
		return overlapping(c.Center, r.Center())
	}

	best := NoHit()
	var facing [4]bool
	for i, e := range r.Edges() {
		n := e.Normal()
		if geom.Dot(n, s.Dir) >= 0 {
			continue
		}
		facing[i] = true
		s.Trace.Line(trace.Candidate, "edge", e)
		tangent := c.Center.Sub(n.Scale(c.Radius))
		s.Trace.Point(trace.Tangent, "tangent", tangent)
		if d, p, ok := s.raycast(tangent, e); ok {
			best = closer(best, contact(d, p))
		}
	}
	if best.Hit {
		s.Trace.Point(trace.Contact, "edge contact", best.PointOnTarget)
		return best
	}

	for i, corner := range r.Corners() {
		if !facing[i] && !facing[(i+3)%4] {
			continue // corner i joins edges i-1 and i
		}
		s.Trace.Point(trace.Candidate, "corner", corner)
		best = closer(best, s.pointHit(c, corner))
	}
	if best.Hit {
		s.Trace.Point(trace.Contact, "corner contact", best.PointOnTarget)
	}
	return best
}

// CircleToLine casts a circle onto a segment using the tangent point on the
// side of the segment facing the circle, then the nearest endpoint.
func (s Sweep) CircleToLine(c geom.Circle, l geom.Line) Hit {
	if CircleLineOverlap(c, l) {
		return overlapping(c.Center, l.Center())
	}

	n := l.Normal()
	if geom.Dot(n, c.Center.Sub(l.P1)) < 0 {
		n = n.Neg()
	}
	if geom.Dot(n, s.Dir) < 0 {
		s.Trace.Line(trace.Candidate, "line", l)
		tangent := c.Center.Sub(n.Scale(c.Radius))
		s.Trace.Point(trace.Tangent, "tangent", tangent)
		if d, p, ok := s.raycast(tangent, l); ok {
			s.Trace.Point(trace.Contact, "contact", p)
			return contact(d, p)
		}
	}

	end := l.P1
	if geom.DistSq(l.P2, c.Center) < geom.DistSq(l.P1, c.Center) {
		end = l.P2
	}
	s.Trace.Point(trace.Candidate, "endpoint", end)
	return s.pointHit(c, end)
}

// leading reports whether corner i of a moving rectangle lies on an edge whose
// outward normal points along dir. A corner on neither such edge
// trails: one corner for a diagonal direction, two along an axis.
func leading(i int, dir geom.Point) bool {
	sign := geom.CornerSign(i)
	return sign.X*dir.X > 0 || sign.Y*dir.Y > 0
}

// RectToLine casts a rectangle onto a segment: leading corners are raycast
// forward onto the segment, then the segment's endpoints are raycast backward
// onto the rectangle's leading edges, which catches a segment swallowed whole
// before any corner reaches it.
func (s Sweep) RectToLine(r geom.Rect, l geom.Line) Hit {
	if RectLineOverlap(r, l) {
		return overlapping(r.Center(), l.Center())
	}

	best := NoHit()
	for i, c := range r.Corners() {
		if !leading(i, s.Dir) {
			continue
		}
		if d, p, ok := s.raycast(c, l); ok {
			best = closer(best, contact(d, p))
		}
	}

	rev := s.reversed()
	edges := r.Edges()
	for _, p := range [...]geom.Point{l.P1, l.P2} {
		for _, e := range edges {
			if geom.Dot(e.Normal(), s.Dir) <= 0 {
				continue
			}
			if d, _, ok := rev.raycast(p, e); ok {
				best = closer(best, contact(d, p))
			}
		}
	}
	if best.Hit {
		s.Trace.Point(trace.Contact, "contact", best.PointOnTarget)
	}
	return best
}

// RectToRect casts rectangle a onto rectangle b with the same two passes as
// RectToLine: a's leading corners onto b's facing edges, then b's trailing
// corners backward onto a's leading edges.
func (s Sweep) RectToRect(a, b geom.Rect) Hit {
	if RectRectOverlap(a, b) {
		return overlapping(a.Center(), b.Center())
	}

	best := NoHit()
	targetEdges := b.Edges()
	for i, c := range a.Corners() {
		if !leading(i, s.Dir) {
			continue
		}
		for _, e := range targetEdges {
			if geom.Dot(e.Normal(), s.Dir) >= 0 {
				continue
			}
			if d, p, ok := s.raycast(c, e); ok {
				best = closer(best, contact(d, p))
			}
		}
	}

	rev := s.reversed()
	sourceEdges := a.Edges()
	for i, c := range b.Corners() {
		if !leading(i, rev.Dir) {
			continue
		}
		for _, e := range sourceEdges {
			if geom.Dot(e.Normal(), s.Dir) <= 0 {
				continue
			}
			if d, _, ok := rev.raycast(c, e); ok {
				best = closer(best, contact(d, c))
			}
		}
	}
	if best.Hit {
		s.Trace.Point(trace.Contact, "contact", best.PointOnTarget)
	}
	return best
}

func CircleCastToCircle(c geom.Circle, dir geom.Point, maxDist float64, target geom.Circle) Hit {
	return NewSweep(dir, maxDist).CircleToCircle(c, target)
}

func CircleCastToRect(c geom.Circle, dir geom.Point, maxDist float64, target geom.Rect) Hit {
	return NewSweep(dir, maxDist).CircleToRect(c, target)
}

func CircleCastToLine(c geom.Circle, dir geom.Point, maxDist float64, target geom.Line) Hit {
	return NewSweep(dir, maxDist).CircleToLine(c, target)
}

func RectCastToLine(r geom.Rect, dir geom.Point, maxDist float64, target geom.Line) Hit {
	return NewSweep(dir, maxDist).RectToLine(r, target)
}

func RectCastToRect(r geom.Rect, dir geom.Point, maxDist float64, target geom.Rect) Hit {
	return NewSweep(dir, maxDist).RectToRect(r, target)
}
