package fixcollide

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irfansharif/sweep/internal/fixgeom"
)

func TestLineLineIntersect(t *testing.T) {
	tests := []struct {
		name string
		a, b fixgeom.Line
		ok   bool
		want fixgeom.Point
	}{
		{"crossing", fixgeom.MakeLine(pt(0, 0), pt(128, 128)), fixgeom.MakeLine(pt(0, 128), pt(128, 0)), true, pt(64, 64)},
		{"rounded crossing", fixgeom.MakeLine(pt(0, 0), pt(3, 0)), fixgeom.MakeLine(pt(1, -1), pt(2, 1)), true, pt(2, 0)},
		{"touching endpoint", fixgeom.MakeLine(pt(0, 0), pt(64, 0)), fixgeom.MakeLine(pt(64, 0), pt(64, 64)), true, pt(64, 0)},
		{"collinear overlapping", fixgeom.MakeLine(pt(0, 0), pt(256, 0)), fixgeom.MakeLine(pt(128, 0), pt(384, 0)), true, pt(128, 0)},
		{"collinear contained", fixgeom.MakeLine(pt(0, 0), pt(256, 0)), fixgeom.MakeLine(pt(64, 0), pt(128, 0)), true, pt(64, 0)},
		{"collinear vertical", fixgeom.MakeLine(pt(5, 0), pt(5, 100)), fixgeom.MakeLine(pt(5, 200), pt(5, 50)), true, pt(5, 50)},
		{"collinear disjoint", fixgeom.MakeLine(pt(0, 0), pt(64, 0)), fixgeom.MakeLine(pt(128, 0), pt(192, 0)), false, fixgeom.Sentinel},
		{"parallel", fixgeom.MakeLine(pt(0, 0), pt(256, 0)), fixgeom.MakeLine(pt(0, 64), pt(256, 64)), false, fixgeom.Sentinel},
		{"short of crossing", fixgeom.MakeLine(pt(0, 0), pt(60, 60)), fixgeom.MakeLine(pt(0, 128), pt(128, 0)), false, fixgeom.Sentinel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := LineLineIntersect(tt.a, tt.b)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, p)
			assert.Equal(t, tt.ok, LineLineOverlap(tt.b, tt.a))
		})
	}
}

func TestInfiniteLinesIntersect(t *testing.T) {
	p, ok := InfiniteLinesIntersect(fixgeom.MakeLine(pt(0, 0), pt(64, 0)), fixgeom.MakeLine(pt(128, -64), pt(128, 64)))
	require.True(t, ok)
	assert.Equal(t, pt(128, 0), p)

	// Coincident lines intersect everywhere; a representative point comes
	// back instead of the parallel-line failure.
	p, ok = InfiniteLinesIntersect(fixgeom.MakeLine(pt(0, 0), pt(256, 0)), fixgeom.MakeLine(pt(128, 0), pt(384, 0)))
	require.True(t, ok)
	assert.Equal(t, pt(128, 0), p)

	p, ok = InfiniteLinesIntersect(fixgeom.MakeLine(pt(0, 0), pt(64, 0)), fixgeom.MakeLine(pt(128, 0), pt(192, 0)))
	require.True(t, ok)
	assert.Equal(t, pt(0, 0), p)

	_, ok = InfiniteLinesIntersect(fixgeom.MakeLine(pt(0, 0), pt(64, 64)), fixgeom.MakeLine(pt(0, 1), pt(64, 65)))
	assert.False(t, ok)
}

func TestSegmentsIntersectAtRangeLimit(t *testing.T) {
	// Long segments one sub-unit apart.
	a := fixgeom.MakeLine(pt(0, 0), pt(fixgeom.MaxCoord-1, 1))
	b := fixgeom.MakeLine(pt(0, 1), pt(fixgeom.MaxCoord-1, 1))
	assert.True(t, SegmentsIntersect(a, b), "touching at the far endpoint")

	b = fixgeom.MakeLine(pt(0, 1), pt(fixgeom.MaxCoord-1, 2))
	assert.False(t, SegmentsIntersect(a, b))
}

func TestCircleLineIntersect(t *testing.T) {
	c := fixgeom.MakeCircle(pt(0, 0), 64)

	pts := CircleLineIntersect(c, fixgeom.MakeLine(pt(-128, 0), pt(128, 0)))
	assert.Equal(t, []fixgeom.Point{pt(-64, 0), pt(64, 0)}, pts.Slice())

	pts = CircleLineIntersect(c, fixgeom.MakeLine(pt(-128, 64), pt(128, 64)))
	assert.Equal(t, []fixgeom.Point{pt(0, 64)}, pts.Slice(), "tangent")

	pts = CircleLineIntersect(c, fixgeom.MakeLine(pt(0, 0), pt(128, 0)))
	assert.Equal(t, []fixgeom.Point{pt(64, 0)}, pts.Slice(), "from inside")

	assert.Zero(t, CircleLineIntersect(c, fixgeom.MakeLine(pt(-128, 65), pt(128, 65))).Len())
	assert.Zero(t, CircleLineIntersect(c, fixgeom.MakeLine(pt(-10, 0), pt(10, 0))).Len(), "inside")
	assert.Zero(t, CircleLineIntersect(c, fixgeom.MakeLine(pt(-128, 0), pt(-100, 0))).Len(), "short")

	assert.Equal(t, 1, CircleLineIntersect(c, fixgeom.MakeLine(pt(0, -64), pt(0, -64))).Len(), "degenerate on circle")
	assert.Zero(t, CircleLineIntersect(c, fixgeom.MakeLine(pt(0, -63), pt(0, -63))).Len())
}

func TestCircleRectIntersect(t *testing.T) {
	c := fixgeom.MakeCircle(pt(0, 0), 64)
	pts := CircleRectIntersect(c, rect(0, -128, 256, 128))
	assert.Equal(t, []fixgeom.Point{pt(0, -64), pt(0, 64)}, pts.Slice())
	assert.Zero(t, CircleRectIntersect(c, rect(-10, -10, 10, 10)).Len())
}

func TestRectIntersect(t *testing.T) {
	r := rect(0, 0, 128, 128)
	pts := RectLineIntersect(r, fixgeom.MakeLine(pt(-64, 64), pt(192, 64)))
	assert.Equal(t, []fixgeom.Point{pt(0, 64), pt(128, 64)}, pts.Slice())

	pts = RectLineIntersect(r, fixgeom.MakeLine(pt(0, 0), pt(128, 128)))
	assert.Equal(t, []fixgeom.Point{pt(0, 0), pt(128, 128)}, pts.Slice(), "diagonal through corners")

	pts = RectRectIntersect(r, rect(64, 64, 192, 192))
	assert.Equal(t, []fixgeom.Point{pt(64, 128), pt(128, 64)}, pts.Slice())

	pts = Intersect(fixgeom.MakeLine(pt(-64, 64), pt(192, 64)), r)
	assert.Equal(t, 2, pts.Len())
	assert.Zero(t, Intersect(fixgeom.MakeCapsule(pt(0, 0), pt(1, 1), 1), r).Len())
}

func TestDistanceQueries(t *testing.T) {
	l := fixgeom.MakeLine(pt(-128, 0), pt(128, 0))
	assert.Equal(t, pt(10, 0), ClosestPointOnSegment(pt(10, 50), l))
	assert.Equal(t, pt(128, 0), ClosestPointOnSegment(pt(500, 50), l))
	assert.Equal(t, pt(-128, 0), ClosestPointOnSegment(pt(-500, 50), l))

	assert.True(t, PointSegmentWithin(pt(0, 64), l, 64))
	assert.False(t, PointSegmentWithin(pt(0, 64), l, 63))
	assert.True(t, PointSegmentWithin(pt(192, 0), l, 64))
	assert.False(t, PointSegmentWithin(pt(192, 0), l, 63))

	// 3-4-5 off the end of the segment.
	assert.True(t, PointSegmentWithin(pt(131, 4), l, 5))
	assert.False(t, PointSegmentWithin(pt(131, 4), l, 4))

	assert.True(t, SegmentSegmentWithin(l, fixgeom.MakeLine(pt(0, 32), pt(0, 100)), 32))
	assert.False(t, SegmentSegmentWithin(l, fixgeom.MakeLine(pt(0, 33), pt(0, 100)), 32))
	assert.True(t, SegmentSegmentWithin(l, fixgeom.MakeLine(pt(0, -5), pt(0, 100)), 0), "crossing")
}
