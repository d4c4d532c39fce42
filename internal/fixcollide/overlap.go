// Package fixcollide is the deterministic counterpart of package collide. It
// answers the same overlap, intersection and cast queries over fixgeom shapes,
// and every true/false decision it makes is integer-exact. Gameplay logic
// whose outcome is recorded and replayed must use this package.
package fixcollide

import (
	"github.com/irfansharif/sweep/internal/fixgeom"
)

func PointInCircle(p fixgeom.Point, c fixgeom.Circle) bool {
	r := int64(c.Radius)
	return fixgeom.DistSq(p, c.Center) <= r*r
}

func PointInRect(p fixgeom.Point, r fixgeom.Rect) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

func CircleCircleOverlap(a, b fixgeom.Circle) bool {
	rs := int64(a.Radius) + int64(b.Radius)
	return fixgeom.DistSq(a.Center, b.Center) <= rs*rs
}

// RectRectOverlap includes rectangles touching along an edge or corner.
func RectRectOverlap(a, b fixgeom.Rect) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y
}

// RectRectOverlapAllowEdgeTouch excludes rectangles that only touch.
func RectRectOverlapAllowEdgeTouch(a, b fixgeom.Rect) bool {
	return a.Min.X < b.Max.X && a.Max.X > b.Min.X &&
		a.Min.Y < b.Max.Y && a.Max.Y > b.Min.Y
}

// CircleLineOverlap reports whether the segment comes within the radius of
// the circle's center.
func CircleLineOverlap(c fixgeom.Circle, l fixgeom.Line) bool {
	return PointSegmentWithin(c.Center, l, int64(c.Radius))
}

func CircleRectOverlap(c fixgeom.Circle, r fixgeom.Rect) bool {
	if !CircleCircleOverlap(c, r.BoundingCircle()) {
		return false
	}
	if PointInRect(c.Center, r) || PointInCircle(r.Center(), c) {
		return true
	}
	for _, e := range r.Edges() {
		if CircleLineOverlap(c, e) {
			return true
		}
	}
	return false
}

func RectLineOverlap(r fixgeom.Rect, l fixgeom.Line) bool {
	if PointInRect(l.P1, r) {
		return true
	}
	for _, e := range r.Edges() {
		if SegmentsIntersect(e, l) {
			return true
		}
	}
	return false
}

func CapsuleLineOverlap(c fixgeom.Capsule, l fixgeom.Line) bool {
	return SegmentSegmentWithin(c.Segment(), l, int64(c.Radius))
}

func CapsuleCircleOverlap(c fixgeom.Capsule, circle fixgeom.Circle) bool {
	return PointSegmentWithin(circle.Center, c.Segment(), int64(c.Radius)+int64(circle.Radius))
}

func CapsuleCapsuleOverlap(a, b fixgeom.Capsule) bool {
	return SegmentSegmentWithin(a.Segment(), b.Segment(), int64(a.Radius)+int64(b.Radius))
}

// CapsuleRectOverlap checks both containment cases before the edges, as
// neither produces an edge contact.
func CapsuleRectOverlap(c fixgeom.Capsule, r fixgeom.Rect) bool {
	if !CircleCircleOverlap(c.BoundingCircle(), r.BoundingCircle()) {
		return false
	}
	// The floored midpoint of the segment can sit off the segment, so the
	// containment test uses an endpoint.
	if PointInRect(c.P1, r) {
		return true
	}
	if PointSegmentWithin(r.Center(), c.Segment(), int64(c.Radius)) {
		return true
	}
	for _, e := range r.Edges() {
		if CapsuleLineOverlap(c, e) {
			return true
		}
	}
	return false
}
