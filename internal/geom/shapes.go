package geom

import "math"

// Epsilon is the tolerance used wherever a floating point branch has to decide
// whether a quantity is zero (vertical lines, degenerate bounding boxes).
const Epsilon = 1e-4

// Circle is a disk with a center and a non-negative radius.
type Circle struct {
	Center Point
	Radius float64
}

// Line is a finite line segment between two points. A zero-length segment is
// permitted.
type Line struct {
	P1 Point
	P2 Point
}

// Rect is an axis-aligned rectangle described by its minimum and maximum
// corners.
type Rect struct {
	Min Point
	Max Point
}

// Capsule is the Minkowski sum of the segment P1-P2 and a disk of the given
// radius (a "stadium").
type Capsule struct {
	P1     Point
	P2     Point
	Radius float64
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

// Edge and corner indices. Edge i runs from corner i to corner i+1 (mod 4), so
// the counter-clockwise normal of every edge points out of the rectangle.
const (
	EdgeLeft = iota
	EdgeTop
	EdgeRight
	EdgeBottom
)

const (
	CornerBottomLeft = iota
	CornerTopLeft
	CornerTopRight
	CornerBottomRight
)

// cornerSigns holds the sign of each corner's offset from the rectangle
// center, indexed like Corners.
var cornerSigns = [4]Point{{-1, -1}, {-1, 1}, {1, 1}, {1, -1}}

func MakeCircle(center Point, radius float64) Circle { return Circle{Center: center, Radius: radius} }
func MakeLine(p1, p2 Point) Line                     { return Line{P1: p1, P2: p2} }

// MakeRect builds a rectangle from its center and size.
func MakeRect(center, size Point) Rect {
	half := size.Scale(0.5)
	return Rect{Min: center.Sub(half), Max: center.Add(half)}
}

// MakeRectMinMax builds a rectangle from two opposite corners, in any order.
func MakeRectMinMax(a, b Point) Rect {
	return Rect{
		Min: Point{math.Min(a.X, b.X), math.Min(a.Y, b.Y)},
		Max: Point{math.Max(a.X, b.X), math.Max(a.Y, b.Y)},
	}
}

func MakeCapsule(p1, p2 Point, radius float64) Capsule {
	return Capsule{P1: p1, P2: p2, Radius: radius}
}

func (l Line) Center() Point    { return Lerp(l.P1, l.P2, 0.5) }
func (l Line) Direction() Point { return l.P2.Sub(l.P1) }
func (l Line) Length() float64  { return Dist(l.P1, l.P2) }

// IsVertical reports whether the segment has (nearly) no horizontal extent,
// in which case its slope is undefined.
func (l Line) IsVertical() bool { return math.Abs(l.P2.X-l.P1.X) < Epsilon }

// Normal returns the unit counter-clockwise perpendicular of P2-P1. A
// zero-length segment has no normal and yields the zero vector.
func (l Line) Normal() Point {
	d := l.Direction()
	if d.X == 0 && d.Y == 0 {
		return Point{}
	}
	return d.Perp().Normalize()
}

// Translate returns the segment moved by v.
func (l Line) Translate(v Point) Line { return Line{l.P1.Add(v), l.P2.Add(v)} }

// BoundingCircle returns the smallest circle containing the segment.
func (l Line) BoundingCircle() Circle {
	return Circle{Center: l.Center(), Radius: l.Length() * 0.5}
}

func (r Rect) Center() Point { return Lerp(r.Min, r.Max, 0.5) }
func (r Rect) Size() Point   { return r.Max.Sub(r.Min) }

// Translate returns the rectangle moved by v.
func (r Rect) Translate(v Point) Rect { return Rect{r.Min.Add(v), r.Max.Add(v)} }

// Corners returns bottom-left, top-left, top-right and bottom-right, in that
// order.
func (r Rect) Corners() [4]Point {
	return [4]Point{
		{r.Min.X, r.Min.Y},
		{r.Min.X, r.Max.Y},
		{r.Max.X, r.Max.Y},
		{r.Max.X, r.Min.Y},
	}
}

// Edges returns the left, top, right and bottom edges, in that order.
func (r Rect) Edges() [4]Line {
	c := r.Corners()
	return [4]Line{
		{c[0], c[1]},
		{c[1], c[2]},
		{c[2], c[3]},
		{c[3], c[0]},
	}
}

// CornerSign returns the sign of corner i's offset from the center.
func CornerSign(i int) Point { return cornerSigns[i] }

// BoundingCircle returns the circumscribed circle of the rectangle.
func (r Rect) BoundingCircle() Circle {
	return Circle{Center: r.Center(), Radius: r.Size().Len() * 0.5}
}

func (c Capsule) Segment() Line { return Line{c.P1, c.P2} }
func (c Capsule) Center() Point { return Lerp(c.P1, c.P2, 0.5) }

func (c Capsule) BoundingCircle() Circle {
	return Circle{Center: c.Center(), Radius: Dist(c.P1, c.P2)*0.5 + c.Radius}
}

func (c Circle) Translate(v Point) Circle { return Circle{c.Center.Add(v), c.Radius} }

// BoundingCircle returns the circle itself.
func (c Circle) BoundingCircle() Circle { return c }

func (c Capsule) Translate(v Point) Capsule { return Capsule{c.P1.Add(v), c.P2.Add(v), c.Radius} }
