package collide

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irfansharif/sweep/internal/geom"
)

func requirePoint(t *testing.T, want, got geom.Point) {
	t.Helper()
	require.InDelta(t, want.X, got.X, 1e-9, "x of %v", got)
	require.InDelta(t, want.Y, got.Y, 1e-9, "y of %v", got)
}

func TestLineLineIntersect(t *testing.T) {
	tests := []struct {
		name string
		a, b geom.Line
		ok   bool
		want geom.Point
	}{
		{
			name: "crossing diagonals",
			a:    geom.MakeLine(pt(0, 0), pt(2, 2)),
			b:    geom.MakeLine(pt(0, 2), pt(2, 0)),
			ok:   true,
			want: pt(1, 1),
		},
		{
			name: "vertical through horizontal",
			a:    geom.MakeLine(pt(1, -1), pt(1, 1)),
			b:    geom.MakeLine(pt(0, 0), pt(2, 0)),
			ok:   true,
			want: pt(1, 0),
		},
		{
			name: "touching at an endpoint",
			a:    geom.MakeLine(pt(0, 0), pt(1, 0)),
			b:    geom.MakeLine(pt(1, 0), pt(1, 3)),
			ok:   true,
			want: pt(1, 0),
		},
		{
			name: "collinear overlap",
			a:    geom.MakeLine(pt(0, 0), pt(2, 0)),
			b:    geom.MakeLine(pt(1, 0), pt(3, 0)),
			ok:   true,
			want: pt(1, 0),
		},
		{
			name: "collinear containment",
			a:    geom.MakeLine(pt(1, 1), pt(2, 2)),
			b:    geom.MakeLine(pt(0, 0), pt(3, 3)),
			ok:   true,
			want: pt(1, 1),
		},
		{
			name: "vertical collinear overlap",
			a:    geom.MakeLine(pt(0, 0), pt(0, 2)),
			b:    geom.MakeLine(pt(0, 1), pt(0, 3)),
			ok:   true,
			want: pt(0, 1),
		},
		{name: "parallel", a: geom.MakeLine(pt(0, 0), pt(1, 0)), b: geom.MakeLine(pt(0, 1), pt(1, 1))},
		{name: "parallel vertical", a: geom.MakeLine(pt(0, 0), pt(0, 1)), b: geom.MakeLine(pt(1, 0), pt(1, 1))},
		{name: "collinear disjoint", a: geom.MakeLine(pt(0, 0), pt(1, 0)), b: geom.MakeLine(pt(2, 0), pt(3, 0))},
		{name: "lines cross beyond the segments", a: geom.MakeLine(pt(0, 0), pt(1, 1)), b: geom.MakeLine(pt(3, 0), pt(2, 1))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := LineLineIntersect(tt.a, tt.b)
			require.Equal(t, tt.ok, ok)
			if !tt.ok {
				assert.True(t, p.IsNaN())
				return
			}
			requirePoint(t, tt.want, p)
			assert.True(t, LineLineOverlap(tt.b, tt.a))
		})
	}
}

func TestInfiniteLinesIntersect(t *testing.T) {
	p, ok := InfiniteLinesIntersect(geom.MakeLine(pt(0, 0), pt(1, 1)), geom.MakeLine(pt(3, 0), pt(2, 1)))
	require.True(t, ok)
	requirePoint(t, pt(1.5, 1.5), p)

	_, ok = InfiniteLinesIntersect(geom.MakeLine(pt(0, 0), pt(0, 1)), geom.MakeLine(pt(2, 0), pt(2, 5)))
	assert.False(t, ok)

	_, ok = InfiniteLinesIntersect(geom.MakeLine(pt(0, 0), pt(2, 1)), geom.MakeLine(pt(0, 1), pt(2, 2)))
	assert.False(t, ok)
}

func TestIsInfiniteLinePointOnLineSegment(t *testing.T) {
	vertical := geom.MakeLine(pt(1, 0), pt(1, 2))
	assert.True(t, IsInfiniteLinePointOnLineSegment(pt(1+geom.Epsilon/2, 1), vertical))
	assert.False(t, IsInfiniteLinePointOnLineSegment(pt(1, 2.5), vertical))

	diagonal := geom.MakeLine(pt(0, 0), pt(2, 2))
	assert.True(t, IsInfiniteLinePointOnLineSegment(pt(2, 2), diagonal))
	assert.False(t, IsInfiniteLinePointOnLineSegment(pt(2+geom.Epsilon/2, 2+geom.Epsilon/2), diagonal))
}

func TestCircleLineIntersect(t *testing.T) {
	c := geom.MakeCircle(pt(0, 0), 1)

	pts := CircleLineIntersect(c, geom.MakeLine(pt(-2, 0), pt(2, 0)))
	require.Equal(t, 2, pts.Len())
	requirePoint(t, pt(-1, 0), pts.At(0))
	requirePoint(t, pt(1, 0), pts.At(1))

	pts = CircleLineIntersect(c, geom.MakeLine(pt(0, -2), pt(0, 2)))
	require.Equal(t, 2, pts.Len())
	requirePoint(t, pt(0, 1), pts.At(0))
	requirePoint(t, pt(0, -1), pts.At(1))

	pts = CircleLineIntersect(c, geom.MakeLine(pt(-2, 1), pt(2, 1)))
	require.Equal(t, 1, pts.Len())
	requirePoint(t, pt(0, 1), pts.At(0))

	// Only the crossing that lies on the finite segment is kept.
	pts = CircleLineIntersect(geom.MakeCircle(pt(5, 5), 1), geom.MakeLine(pt(5, 5), pt(7, 5)))
	require.Equal(t, 1, pts.Len())
	requirePoint(t, pt(6, 5), pts.At(0))

	assert.Zero(t, CircleLineIntersect(c, geom.MakeLine(pt(-0.5, 0), pt(0.5, 0))).Len())
	assert.Zero(t, CircleLineIntersect(c, geom.MakeLine(pt(-2, 2), pt(2, 2))).Len())
}

func TestRectLineIntersect(t *testing.T) {
	r := geom.MakeRectMinMax(pt(0, 0), pt(2, 2))

	pts := RectLineIntersect(r, geom.MakeLine(pt(-1, 1), pt(3, 1)))
	require.Equal(t, 2, pts.Len())
	requirePoint(t, pt(0, 1), pts.At(0))
	requirePoint(t, pt(2, 1), pts.At(1))

	// A diagonal through two corners touches four edges but only two points.
	pts = RectLineIntersect(r, geom.MakeLine(pt(-1, -1), pt(3, 3)))
	require.Equal(t, 2, pts.Len())
	requirePoint(t, pt(0, 0), pts.At(0))
	requirePoint(t, pt(2, 2), pts.At(1))

	assert.Zero(t, RectLineIntersect(r, geom.MakeLine(pt(0.5, 0.5), pt(1.5, 1.5))).Len())
}

func TestRectRectIntersect(t *testing.T) {
	a := geom.MakeRectMinMax(pt(0, 0), pt(2, 2))
	b := geom.MakeRectMinMax(pt(1, 1), pt(3, 3))
	pts := RectRectIntersect(a, b)
	require.Equal(t, 2, pts.Len())
	requirePoint(t, pt(1, 2), pts.At(0))
	requirePoint(t, pt(2, 1), pts.At(1))
}

func TestCircleRectIntersect(t *testing.T) {
	c := geom.MakeCircle(pt(0, 0), 1)
	pts := CircleRectIntersect(c, geom.MakeRect(pt(0, 0), pt(1, 4)))
	// The vertical edges at x=±0.5 cross the circle twice each.
	assert.Equal(t, 4, pts.Len())

	pts = CircleRectIntersect(c, geom.MakeRect(pt(1.5, 0), pt(1, 1)))
	require.Equal(t, 1, pts.Len())
	requirePoint(t, pt(1, 0), pts.At(0))
}

func TestDistances(t *testing.T) {
	l := geom.MakeLine(pt(0, 0), pt(4, 0))
	assert.Equal(t, pt(2, 0), ClosestPointOnSegment(pt(2, 3), l))
	assert.Equal(t, pt(0, 0), ClosestPointOnSegment(pt(-2, 3), l))
	assert.Equal(t, pt(4, 0), ClosestPointOnSegment(pt(9, -1), l))
	assert.Equal(t, 3.0, PointSegmentDistance(pt(2, 3), l))
	assert.Equal(t, 5.0, PointSegmentDistance(pt(7, 4), l))

	assert.Equal(t, 0.0, SegmentSegmentDistance(l, geom.MakeLine(pt(1, -1), pt(1, 1))))
	assert.Equal(t, 2.0, SegmentSegmentDistance(l, geom.MakeLine(pt(1, 2), pt(3, 2))))
	assert.Equal(t, 1.0, SegmentSegmentDistance(l, geom.MakeLine(pt(5, 0), pt(6, 0))))

	degenerate := geom.MakeLine(pt(1, 1), pt(1, 1))
	assert.Equal(t, pt(1, 1), ClosestPointOnSegment(pt(5, 5), degenerate))
}

func TestIntersectDispatch(t *testing.T) {
	c := geom.MakeCircle(pt(0, 0), 1)
	l := geom.MakeLine(pt(-2, 0), pt(2, 0))
	assert.Equal(t, 2, Intersect(c, l).Len())
	assert.Equal(t, 2, Intersect(l, c).Len())

	r := geom.MakeRectMinMax(pt(0.5, -1), pt(3, 1))
	assert.Equal(t, 1, Intersect(l, r).Len())
	assert.Equal(t, 1, Intersect(r, l).Len())
	assert.Equal(t, 1, Intersect(l, geom.MakeLine(pt(0, -1), pt(0, 1))).Len())
	assert.Zero(t, Intersect(geom.MakeCapsule(pt(0, 0), pt(1, 0), 1), l).Len())
}
