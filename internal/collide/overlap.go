// Package collide implements the continuous (float64) collision queries:
// overlap tests, intersection points, distances and swept casts between
// circles, line segments, axis-aligned rectangles and capsules.
//
// Results here are not reproducible bit-for-bit across platforms and must not
// feed recorded gameplay state; use package fixcollide for that.
package collide

import (
	"github.com/irfansharif/sweep/internal/geom"
)

// PointInCircle reports whether p lies inside or on the circle.
func PointInCircle(p geom.Point, c geom.Circle) bool {
	return geom.DistSq(p, c.Center) <= c.Radius*c.Radius
}

// PointInRect reports whether p lies inside or on the rectangle.
func PointInRect(p geom.Point, r geom.Rect) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// CircleCircleOverlap compares the squared center distance against the squared
// radius sum, so no square root is taken.
func CircleCircleOverlap(a, b geom.Circle) bool {
	rs := a.Radius + b.Radius
	return geom.DistSq(a.Center, b.Center) <= rs*rs
}

// RectRectOverlap reports whether the rectangles share any point, touching
// edges included.
func RectRectOverlap(a, b geom.Rect) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y
}

// RectRectOverlapAllowEdgeTouch reports whether the rectangles' interiors
// overlap; rectangles that only touch along an edge or corner do not.
func RectRectOverlapAllowEdgeTouch(a, b geom.Rect) bool {
	return a.Min.X < b.Max.X && a.Max.X > b.Min.X &&
		a.Min.Y < b.Max.Y && a.Max.Y > b.Min.Y
}

// CircleLineOverlap reports whether the segment touches the disk: either an
// endpoint lies inside it or the segment crosses its boundary.
func CircleLineOverlap(c geom.Circle, l geom.Line) bool {
	if PointInCircle(l.P1, c) || PointInCircle(l.P2, c) {
		return true
	}
	return CircleLineIntersect(c, l).Len() > 0
}

// CircleRectOverlap tests containment both ways before falling back to the
// edges, since neither containment case crosses an edge.
func CircleRectOverlap(c geom.Circle, r geom.Rect) bool {
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

// RectLineOverlap reports whether the segment touches the rectangle.
func RectLineOverlap(r geom.Rect, l geom.Line) bool {
	if PointInRect(l.P1, r) {
		return true
	}
	for _, e := range r.Edges() {
		if LineLineOverlap(e, l) {
			return true
		}
	}
	return false
}

// CapsuleLineOverlap reports whether the segment comes within the capsule's
// radius of its inner segment.
func CapsuleLineOverlap(c geom.Capsule, l geom.Line) bool {
	return SegmentSegmentDistance(c.Segment(), l) <= c.Radius
}

// CapsuleCircleOverlap reports whether the circle comes within the capsule's
// radius of its inner segment.
func CapsuleCircleOverlap(c geom.Capsule, circle geom.Circle) bool {
	return PointSegmentDistance(circle.Center, c.Segment()) <= c.Radius+circle.Radius
}

// CapsuleCapsuleOverlap reports whether the inner segments come within the
// sum of the radii.
func CapsuleCapsuleOverlap(a, b geom.Capsule) bool {
	return SegmentSegmentDistance(a.Segment(), b.Segment()) <= a.Radius+b.Radius
}

// CapsuleRectOverlap handles a capsule swallowed by the rectangle and a
// rectangle swallowed by the capsule before testing the edges, because neither
// case has the capsule touching an edge.
func CapsuleRectOverlap(c geom.Capsule, r geom.Rect) bool {
	if !CircleCircleOverlap(c.BoundingCircle(), r.BoundingCircle()) {
		return false
	}
	if PointInRect(c.Center(), r) {
		return true
	}
	if PointSegmentDistance(r.Center(), c.Segment()) <= c.Radius {
		return true
	}
	for _, e := range r.Edges() {
		if CapsuleLineOverlap(c, e) {
			return true
		}
	}
	return false
}
