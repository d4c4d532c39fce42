package fixcollide

import (
	"errors"
	"fmt"

	"github.com/irfansharif/sweep/internal/fixgeom"
)

// ErrUnsupportedCast is returned by Cast for shape pairs without a cast
// routine.
var ErrUnsupportedCast = errors.New("unsupported cast")

func rank(s fixgeom.Shape) int {
	switch s.(type) {
	case fixgeom.Circle:
		return 0
	case fixgeom.Line:
		return 1
	case fixgeom.Rect:
		return 2
	case fixgeom.Capsule:
		return 3
	}
	return -1
}

// Name returns the lower-case type name of s.
func Name(s fixgeom.Shape) string {
	switch s.(type) {
	case fixgeom.Circle:
		return "circle"
	case fixgeom.Line:
		return "line"
	case fixgeom.Rect:
		return "rect"
	case fixgeom.Capsule:
		return "capsule"
	}
	return fmt.Sprintf("%T", s)
}

// Overlap reports whether a and b share any point. It is symmetric.
func Overlap(a, b fixgeom.Shape) bool {
	if rank(a) > rank(b) {
		a, b = b, a
	}
	switch a := a.(type) {
	case fixgeom.Circle:
		switch b := b.(type) {
		case fixgeom.Circle:
			return CircleCircleOverlap(a, b)
		case fixgeom.Line:
			return CircleLineOverlap(a, b)
		case fixgeom.Rect:
			return CircleRectOverlap(a, b)
		case fixgeom.Capsule:
			return CapsuleCircleOverlap(b, a)
		}
	case fixgeom.Line:
		switch b := b.(type) {
		case fixgeom.Line:
			return LineLineOverlap(a, b)
		case fixgeom.Rect:
			return RectLineOverlap(b, a)
		case fixgeom.Capsule:
			return CapsuleLineOverlap(b, a)
		}
	case fixgeom.Rect:
		switch b := b.(type) {
		case fixgeom.Rect:
			return RectRectOverlap(a, b)
		case fixgeom.Capsule:
			return CapsuleRectOverlap(b, a)
		}
	case fixgeom.Capsule:
		if b, ok := b.(fixgeom.Capsule); ok {
			return CapsuleCapsuleOverlap(a, b)
		}
	}
	return false
}

// Intersect returns the points where the boundaries of a and b cross. Pairs
// involving a capsule yield no points.
func Intersect(a, b fixgeom.Shape) fixgeom.Points {
	if rank(a) > rank(b) {
		a, b = b, a
	}
	var pts fixgeom.Points
	switch a := a.(type) {
	case fixgeom.Circle:
		switch b := b.(type) {
		case fixgeom.Line:
			return CircleLineIntersect(a, b)
		case fixgeom.Rect:
			return CircleRectIntersect(a, b)
		}
	case fixgeom.Line:
		switch b := b.(type) {
		case fixgeom.Line:
			if p, ok := LineLineIntersect(a, b); ok {
				pts.Add(p)
			}
		case fixgeom.Rect:
			return RectLineIntersect(b, a)
		}
	case fixgeom.Rect:
		if b, ok := b.(fixgeom.Rect); ok {
			return RectRectIntersect(a, b)
		}
	}
	return pts
}

// Cast moves shape along dir for maxDist sub-units and reports the first
// contact with target.
func Cast(shape fixgeom.Shape, dir fixgeom.Point, maxDist int32, target fixgeom.Shape) (Hit, error) {
	return NewSweep(dir, maxDist).Cast(shape, target)
}

// CastBy moves shape by an exact displacement.
func CastBy(shape fixgeom.Shape, delta fixgeom.Point, target fixgeom.Shape) (Hit, error) {
	return SweepBy(delta).Cast(shape, target)
}

// Cast dispatches on the shape pair. Rect onto circle, line onto rect and line
// onto circle are answered by casting the target the opposite way.
func (s Sweep) Cast(shape, target fixgeom.Shape) (Hit, error) {
	switch a := shape.(type) {
	case fixgeom.Circle:
		switch b := target.(type) {
		case fixgeom.Circle:
			return s.CircleToCircle(a, b), nil
		case fixgeom.Rect:
			return s.CircleToRect(a, b), nil
		case fixgeom.Line:
			return s.CircleToLine(a, b), nil
		}
	case fixgeom.Rect:
		switch b := target.(type) {
		case fixgeom.Rect:
			return s.RectToRect(a, b), nil
		case fixgeom.Line:
			return s.RectToLine(a, b), nil
		case fixgeom.Circle:
			return s.mirror(s.reversed().CircleToRect(b, a)), nil
		}
	case fixgeom.Line:
		switch b := target.(type) {
		case fixgeom.Rect:
			return s.mirror(s.reversed().RectToLine(b, a)), nil
		case fixgeom.Circle:
			return s.mirror(s.reversed().CircleToLine(b, a)), nil
		}
	}
	return s.noHit(), fmt.Errorf("%w: %s onto %s", ErrUnsupportedCast, Name(shape), Name(target))
}

// mirror translates the result of a reversed cast back into the frame of the
// requested one. The reversed travel is negated, and both contact points move
// forward by it.
func (s Sweep) mirror(h Hit) Hit {
	if !h.Hit {
		return s.noHit()
	}
	shift := h.Travel.Neg()
	return Hit{
		Hit:           true,
		T:             h.T,
		Distance:      h.Distance,
		Travel:        shift,
		PointOnShape:  h.PointOnTarget.Add(shift),
		PointOnTarget: h.PointOnShape.Add(shift),
	}
}
