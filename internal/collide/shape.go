package collide

import (
	"errors"
	"fmt"

	"github.com/irfansharif/sweep/internal/geom"
)

// ErrUnsupportedCast is returned by Cast for shape pairs without a cast
// routine.
var ErrUnsupportedCast = errors.New("unsupported cast")

// rank orders shape types so every unordered pair has one canonical form.
func rank(s geom.Shape) int {
	switch s.(type) {
	case geom.Circle:
		return 0
	case geom.Line:
		return 1
	case geom.Rect:
		return 2
	case geom.Capsule:
		return 3
	}
	return -1
}

// Name returns the lower-case type name of s.
func Name(s geom.Shape) string {
	switch s.(type) {
	case geom.Circle:
		return "circle"
	case geom.Line:
		return "line"
	case geom.Rect:
		return "rect"
	case geom.Capsule:
		return "capsule"
	}
	return fmt.Sprintf("%T", s)
}

// Overlap reports whether a and b share any point. It is symmetric.
func Overlap(a, b geom.Shape) bool {
	if rank(a) > rank(b) {
		a, b = b, a
	}
	switch a := a.(type) {
	case geom.Circle:
		switch b := b.(type) {
		case geom.Circle:
			return CircleCircleOverlap(a, b)
		case geom.Line:
			return CircleLineOverlap(a, b)
		case geom.Rect:
			return CircleRectOverlap(a, b)
		case geom.Capsule:
			return CapsuleCircleOverlap(b, a)
		}
	case geom.Line:
		switch b := b.(type) {
		case geom.Line:
			return LineLineOverlap(a, b)
		case geom.Rect:
			return RectLineOverlap(b, a)
		case geom.Capsule:
			return CapsuleLineOverlap(b, a)
		}
	case geom.Rect:
		switch b := b.(type) {
		case geom.Rect:
			return RectRectOverlap(a, b)
		case geom.Capsule:
			return CapsuleRectOverlap(b, a)
		}
	case geom.Capsule:
		if b, ok := b.(geom.Capsule); ok {
			return CapsuleCapsuleOverlap(a, b)
		}
	}
	return false
}

// Intersect returns the points where the boundaries of a and b cross. Pairs
// involving a capsule yield no points.
func Intersect(a, b geom.Shape) geom.Points {
	if rank(a) > rank(b) {
		a, b = b, a
	}
	var pts geom.Points
	switch a := a.(type) {
	case geom.Circle:
		switch b := b.(type) {
		case geom.Line:
			return CircleLineIntersect(a, b)
		case geom.Rect:
			return CircleRectIntersect(a, b)
		}
	case geom.Line:
		switch b := b.(type) {
		case geom.Line:
			if p, ok := LineLineIntersect(a, b); ok {
				pts.Add(p)
			}
		case geom.Rect:
			return RectLineIntersect(b, a)
		}
	case geom.Rect:
		if b, ok := b.(geom.Rect); ok {
			return RectRectIntersect(a, b)
		}
	}
	return pts
}

// Cast moves shape along dir for at most maxDist and reports the first
// contact with target.
func Cast(shape geom.Shape, dir geom.Point, maxDist float64, target geom.Shape) (Hit, error) {
	return NewSweep(dir, maxDist).Cast(shape, target)
}

// Cast dispatches on the shape pair. Rect onto circle, line onto rect and line
// onto circle are answered by casting the target the opposite way.
func (s Sweep) Cast(shape, target geom.Shape) (Hit, error) {
	switch a := shape.(type) {
	case geom.Circle:
		switch b := target.(type) {
		case geom.Circle:
			return s.CircleToCircle(a, b), nil
		case geom.Rect:
			return s.CircleToRect(a, b), nil
		case geom.Line:
			return s.CircleToLine(a, b), nil
		}
	case geom.Rect:
		switch b := target.(type) {
		case geom.Rect:
			return s.RectToRect(a, b), nil
		case geom.Line:
			return s.RectToLine(a, b), nil
		case geom.Circle:
			return s.mirror(s.reversed().CircleToRect(b, a)), nil
		}
	case geom.Line:
		switch b := target.(type) {
		case geom.Rect:
			return s.mirror(s.reversed().RectToLine(b, a)), nil
		case geom.Circle:
			return s.mirror(s.reversed().CircleToLine(b, a)), nil
		}
	}
	return NoHit(), fmt.Errorf("%w: %s onto %s", ErrUnsupportedCast, Name(shape), Name(target))
}

// mirror translates the result of a reversed cast back into the frame of the
// requested one. The reversed cast moved the target back by Distance; moving
// both contact points forward by the same amount puts them where the moving
// shape meets the stationary target.
func (s Sweep) mirror(h Hit) Hit {
	if !h.Hit {
		return h
	}
	shift := s.Dir.Scale(h.Distance)
	return Hit{
		Hit:           true,
		Distance:      h.Distance,
		PointOnShape:  h.PointOnTarget.Add(shift),
		PointOnTarget: h.PointOnShape.Add(shift),
	}
}
