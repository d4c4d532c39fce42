package fixgeom

import (
	"github.com/irfansharif/sweep/internal/geom"
)

// Circle is a disk in sub-units.
type Circle struct {
	Center Point
	Radius int32
}

// Line is a finite segment in sub-units.
type Line struct {
	P1 Point
	P2 Point
}

// Rect is an axis-aligned rectangle in sub-units.
type Rect struct {
	Min Point
	Max Point
}

// Capsule is the Minkowski sum of the segment P1-P2 and a disk.
type Capsule struct {
	P1     Point
	P2     Point
	Radius int32
}

// Shape is implemented by Circle, Line, Rect and Capsule.
type Shape interface {
	BoundingCircle() Circle
	isShape()
}

func (Circle) isShape()  {}
func (Line) isShape()    {}
func (Rect) isShape()    {}
func (Capsule) isShape() {}

var cornerSigns = [4]Point{{-1, -1}, {-1, 1}, {1, 1}, {1, -1}}

// CornerSign returns the sign of corner i's offset from the rectangle center,
// with corners indexed as in geom.
func CornerSign(i int) Point { return cornerSigns[i] }

func MakeCircle(center Point, radius int32) Circle { return Circle{Center: center, Radius: radius} }
func MakeLine(p1, p2 Point) Line                   { return Line{P1: p1, P2: p2} }

// MakeRect builds a rectangle from its center and size. An odd size puts the
// extra sub-unit on the max side.
func MakeRect(center, size Point) Rect {
	lo := Point{center.X - size.X>>1, center.Y - size.Y>>1}
	return Rect{Min: lo, Max: lo.Add(size)}
}

func MakeRectMinMax(a, b Point) Rect {
	return Rect{
		Min: Point{min32(a.X, b.X), min32(a.Y, b.Y)},
		Max: Point{max32(a.X, b.X), max32(a.Y, b.Y)},
	}
}

func MakeCapsule(p1, p2 Point, radius int32) Capsule {
	return Capsule{P1: p1, P2: p2, Radius: radius}
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func abs32(v int32) int64 {
	if v < 0 {
		return -int64(v)
	}
	return int64(v)
}

// midpoint rounds toward negative infinity.
func midpoint(p, q Point) Point {
	return Point{
		X: int32((int64(p.X) + int64(q.X)) >> 1),
		Y: int32((int64(p.Y) + int64(q.Y)) >> 1),
	}
}

// conservativeRadius bounds half the diagonal of a dx by dy box, plus the
// rounding error of a floored midpoint, using the L1 norm in place of a root.
func conservativeRadius(dx, dy int32) int32 {
	return Clamp32((abs32(dx)+abs32(dy)+1)/2 + 1)
}

func (l Line) Center() Point    { return midpoint(l.P1, l.P2) }
func (l Line) Direction() Point { return l.P2.Sub(l.P1) }
func (l Line) IsVertical() bool { return l.P1.X == l.P2.X }

// Normal returns the counter-clockwise perpendicular of P2-P1. It is not unit
// length; callers use its sign or rescale it with ScaleTo. A degenerate
// segment yields the zero vector.
func (l Line) Normal() Point { return l.Direction().Perp() }

func (l Line) Translate(v Point) Line { return Line{l.P1.Add(v), l.P2.Add(v)} }

// BoundingCircle is never smaller than the minimal enclosing circle.
func (l Line) BoundingCircle() Circle {
	d := l.Direction()
	return Circle{Center: l.Center(), Radius: conservativeRadius(d.X, d.Y)}
}

func (r Rect) Center() Point          { return midpoint(r.Min, r.Max) }
func (r Rect) Size() Point            { return r.Max.Sub(r.Min) }
func (r Rect) Translate(v Point) Rect { return Rect{r.Min.Add(v), r.Max.Add(v)} }

// Corners returns bottom-left, top-left, top-right and bottom-right.
func (r Rect) Corners() [4]Point {
	return [4]Point{
		{r.Min.X, r.Min.Y},
		{r.Min.X, r.Max.Y},
		{r.Max.X, r.Max.Y},
		{r.Max.X, r.Min.Y},
	}
}

// Edges returns left, top, right and bottom; edge i runs from corner i to
// corner i+1 so its Normal points outward.
func (r Rect) Edges() [4]Line {
	c := r.Corners()
	return [4]Line{{c[0], c[1]}, {c[1], c[2]}, {c[2], c[3]}, {c[3], c[0]}}
}

// BoundingCircle is never smaller than the circumscribed circle.
func (r Rect) BoundingCircle() Circle {
	s := r.Size()
	return Circle{Center: r.Center(), Radius: conservativeRadius(s.X, s.Y)}
}

func (c Circle) BoundingCircle() Circle     { return c }
func (c Circle) Translate(v Point) Circle   { return Circle{c.Center.Add(v), c.Radius} }
func (c Capsule) Segment() Line             { return Line{c.P1, c.P2} }
func (c Capsule) Center() Point             { return midpoint(c.P1, c.P2) }
func (c Capsule) Translate(v Point) Capsule { return Capsule{c.P1.Add(v), c.P2.Add(v), c.Radius} }
func (c Capsule) BoundingCircle() Circle {
	b := c.Segment().BoundingCircle()
	b.Radius = Clamp32(int64(b.Radius) + int64(c.Radius))
	return b
}

func CircleFromGeom(c geom.Circle) Circle {
	return Circle{Center: ToFixed(c.Center), Radius: ToFixedScalar(c.Radius)}
}

func LineFromGeom(l geom.Line) Line { return Line{ToFixed(l.P1), ToFixed(l.P2)} }

// RectFromGeom converts both corners, so the rectangle's edges land on the
// nearest sub-unit.
func RectFromGeom(r geom.Rect) Rect { return Rect{ToFixed(r.Min), ToFixed(r.Max)} }

func CapsuleFromGeom(c geom.Capsule) Capsule {
	return Capsule{ToFixed(c.P1), ToFixed(c.P2), ToFixedScalar(c.Radius)}
}

// FromGeom converts any float shape. It returns nil for an unknown shape.
func FromGeom(s geom.Shape) Shape {
	switch s := s.(type) {
	case geom.Circle:
		return CircleFromGeom(s)
	case geom.Line:
		return LineFromGeom(s)
	case geom.Rect:
		return RectFromGeom(s)
	case geom.Capsule:
		return CapsuleFromGeom(s)
	}
	return nil
}

func (c Circle) Geom() geom.Circle {
	return geom.Circle{Center: ToFloat(c.Center), Radius: ToFloatScalar(c.Radius)}
}

func (l Line) Geom() geom.Line { return geom.Line{P1: ToFloat(l.P1), P2: ToFloat(l.P2)} }
func (r Rect) Geom() geom.Rect { return geom.Rect{Min: ToFloat(r.Min), Max: ToFloat(r.Max)} }

func (c Capsule) Geom() geom.Capsule {
	return geom.Capsule{P1: ToFloat(c.P1), P2: ToFloat(c.P2), Radius: ToFloatScalar(c.Radius)}
}

// ToGeom converts any fixed shape back to world space, for display.
func ToGeom(s Shape) geom.Shape {
	switch s := s.(type) {
	case Circle:
		return s.Geom()
	case Line:
		return s.Geom()
	case Rect:
		return s.Geom()
	case Capsule:
		return s.Geom()
	}
	return nil
}
