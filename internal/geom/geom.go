// Package geom provides the floating point 2D primitives used by the
// continuous collision queries:
// - Point arithmetic and vector operations
// - Circles, line segments, axis-aligned rectangles and capsules
// - 2D affine transformations (used to map world space onto a viewport)
package geom

import (
	"fmt"
	"math"
)

// Point represents a 2D point or vector in Cartesian coordinates.
type Point struct {
	X float64
	Y float64
}

// Affine represents a 2D affine transform in row-major form:
// [ a b c ]
// [ d e f ]
// where (x', y') = (a*x + b*y + c, d*x + e*y + f)
type Affine struct {
	A float64
	B float64
	C float64
	D float64
	E float64
	F float64
}

func MakePoint(x, y float64) Point               { return Point{X: x, Y: y} }
func MakeAffine(a, b, c, d, e, f float64) Affine { return Affine{A: a, B: b, C: c, D: d, E: e, F: f} }

// NaNPoint is the sentinel carried by query results that found nothing. It
// exists for optional debug rendering only.
func NaNPoint() Point { return Point{X: math.NaN(), Y: math.NaN()} }

func (p Point) Add(q Point) Point     { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point     { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }
func (p Point) Neg() Point            { return Point{-p.X, -p.Y} }
func (p Point) LenSq() float64        { return p.X*p.X + p.Y*p.Y }
func (p Point) Len() float64          { return math.Sqrt(p.LenSq()) }
func (p Point) IsNaN() bool           { return math.IsNaN(p.X) || math.IsNaN(p.Y) }

// Perp returns the vector rotated 90° counter-clockwise.
func (p Point) Perp() Point { return Point{-p.Y, p.X} }

// Normalize returns the unit vector in the direction of p, or the zero vector
// if p has zero length.
func (p Point) Normalize() Point {
	l := p.Len()
	if l == 0 {
		return Point{}
	}
	return Point{p.X / l, p.Y / l}
}

func (p Point) String() string { return fmt.Sprintf("(%g, %g)", p.X, p.Y) }

func Dot(p, q Point) float64 { return p.X*q.X + p.Y*q.Y }

// Cross returns the z component of the 3D cross product of p and q.
func Cross(p, q Point) float64 { return p.X*q.Y - p.Y*q.X }

func Dist(p, q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

func DistSq(p, q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}

// Lerp interpolates between p (t=0) and q (t=1).
func Lerp(p, q Point, t float64) Point {
	return Point{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t}
}

// MulPoint applies the affine transform to a point.
func (t Affine) MulPoint(p Point) Point {
	return Point{
		X: t.A*p.X + t.B*p.Y + t.C,
		Y: t.D*p.X + t.E*p.Y + t.F,
	}
}

// Mul composes two affine transforms (applies u then t).
func (t Affine) Mul(u Affine) Affine {
	return MakeAffine(
		t.A*u.A+t.B*u.D,
		t.A*u.B+t.B*u.E,
		t.A*u.C+t.B*u.F+t.C,
		t.D*u.A+t.E*u.D,
		t.D*u.B+t.E*u.E,
		t.D*u.C+t.E*u.F+t.F,
	)
}

// Inv returns the inverse of the affine transform.
// Returns an error if the transform is not invertible (determinant is zero).
func (t Affine) Inv() (Affine, error) {
	det := t.A*t.E - t.B*t.D
	if math.Abs(det) < 1e-10 {
		return Affine{}, fmt.Errorf("affine transform is not invertible (determinant ≈ 0)")
	}
	return MakeAffine(
		t.E/det, -t.B/det, (t.B*t.F-t.C*t.E)/det,
		-t.D/det, t.A/det, (t.C*t.D-t.A*t.F)/det,
	), nil
}

// FitRect returns a transform that maps src into dst, preserving aspect ratio
// and centering src inside dst. When flipY is set the Y axis is inverted, which
// maps y-up world space onto y-down screen space.
func FitRect(src, dst Rect, flipY bool) (Affine, error) {
	ss, ds := src.Size(), dst.Size()
	if ss.X <= 0 || ss.Y <= 0 {
		return Affine{}, fmt.Errorf("source rect must have positive width and height, got %v", ss)
	}
	if ds.X <= 0 || ds.Y <= 0 {
		return Affine{}, fmt.Errorf("destination rect must have positive width and height, got %v", ds)
	}

	sc := math.Min(ds.X/ss.X, ds.Y/ss.Y)
	sy := sc
	if flipY {
		sy = -sc
	}
	sc0, dc := src.Center(), dst.Center()
	centerDst := MakeAffine(1, 0, dc.X, 0, 1, dc.Y)
	centerSrc := MakeAffine(1, 0, -sc0.X, 0, 1, -sc0.Y)
	return centerDst.Mul(MakeAffine(sc, 0, 0, 0, sy, 0)).Mul(centerSrc), nil
}
