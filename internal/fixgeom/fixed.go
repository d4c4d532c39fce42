// Package fixgeom provides integer sub-unit primitives for the deterministic
// collision queries. One world unit is Scale sub-units. Every value is an
// int32 and every product is formed in int64 or, where products of products
// are compared, in 128 bits, so identical inputs yield identical outputs on
// every platform.
//
// Coordinates must stay within ±MaxCoord sub-units; inside that range no
// decision overflows.
package fixgeom

import (
	"fmt"
	"math"

	"github.com/irfansharif/sweep/internal/geom"
)

const (
	Shift = 6
	Scale = 1 << Shift

	// MaxCoord bounds the magnitude of any coordinate or radius.
	MaxCoord = 1 << 24
)

// Point is a position or displacement in sub-units.
type Point struct {
	X int32
	Y int32
}

// Sentinel is carried by query results that found nothing, in place of the
// float module's NaN point.
var Sentinel = Point{X: math.MinInt32, Y: math.MinInt32}

func MakePoint(x, y int32) Point { return Point{X: x, Y: y} }

// ToFixedScalar converts a world-space length to sub-units, rounding half away
// from zero.
func ToFixedScalar(v float64) int32 { return int32(math.Round(v * Scale)) }

// ToFloatScalar converts sub-units to world units. The division by a power of
// two is exact.
func ToFloatScalar(v int32) float64 { return float64(v) / Scale }

// ToFixed converts a world-space point to sub-units.
func ToFixed(p geom.Point) Point {
	return Point{X: ToFixedScalar(p.X), Y: ToFixedScalar(p.Y)}
}

// ToFloat converts a sub-unit point to world space.
func ToFloat(p Point) geom.Point {
	return geom.Point{X: ToFloatScalar(p.X), Y: ToFloatScalar(p.Y)}
}

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Neg() Point        { return Point{-p.X, -p.Y} }
func (p Point) Mul(k int32) Point { return Point{p.X * k, p.Y * k} }
func (p Point) IsZero() bool      { return p.X == 0 && p.Y == 0 }
func (p Point) IsSentinel() bool  { return p == Sentinel }

// Perp returns the vector rotated 90° counter-clockwise.
func (p Point) Perp() Point { return Point{-p.Y, p.X} }

func (p Point) LenSq() int64 { return Dot(p, p) }

func (p Point) String() string {
	if p.IsSentinel() {
		return "(none)"
	}
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

func Dot(p, q Point) int64 { return int64(p.X)*int64(q.X) + int64(p.Y)*int64(q.Y) }

// Cross returns the z component of the 3D cross product of p and q.
func Cross(p, q Point) int64 { return int64(p.X)*int64(q.Y) - int64(p.Y)*int64(q.X) }

func DistSq(p, q Point) int64 { return p.Sub(q).LenSq() }

// Sign returns -1, 0 or 1.
func Sign(v int64) int64 {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

// Clamp32 saturates v to the int32 range.
func Clamp32(v int64) int32 {
	switch {
	case v > math.MaxInt32:
		return math.MaxInt32
	case v < math.MinInt32:
		return math.MinInt32
	}
	return int32(v)
}

// ScaleTo returns v scaled to the given length, rounded per axis. The zero
// vector stays zero. The length of v is taken with an integer square root of
// its squared length, shifted up first so the root keeps enough precision.
func ScaleTo(v Point, length int32) Point {
	lsq := v.LenSq()
	if lsq == 0 {
		return Point{}
	}
	k := uint((62 - bitLen(uint64(lsq))) / 2)
	root := int64(Isqrt(uint64(lsq) << (2 * k)))
	return Point{
		X: Clamp32(MulDivRound(int64(v.X)<<k, int64(length), root)),
		Y: Clamp32(MulDivRound(int64(v.Y)<<k, int64(length), root)),
	}
}

// Length returns |v| in sub-units as a float. It is informational only and
// never feeds a decision.
func (p Point) Length() float64 { return math.Sqrt(float64(p.LenSq())) }
