package collide

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/irfansharif/sweep/internal/geom"
)

func pt(x, y float64) geom.Point { return geom.Point{X: x, Y: y} }

func TestCircleCircleOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b geom.Circle
		want bool
	}{
		{"separated", geom.MakeCircle(pt(0, 0), 1), geom.MakeCircle(pt(5, 0), 1), false},
		{"touching", geom.MakeCircle(pt(0, 0), 1), geom.MakeCircle(pt(2, 0), 1), true},
		{"overlapping", geom.MakeCircle(pt(0, 0), 2), geom.MakeCircle(pt(1, 1), 0.5), true},
		{"contained", geom.MakeCircle(pt(0, 0), 5), geom.MakeCircle(pt(1, 0), 1), true},
		{"diagonal gap", geom.MakeCircle(pt(0, 0), 1), geom.MakeCircle(pt(2, 2), 1), false},
		{"zero radius", geom.MakeCircle(pt(1, 0), 0), geom.MakeCircle(pt(0, 0), 1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CircleCircleOverlap(tt.a, tt.b))
			assert.Equal(t, CircleCircleOverlap(tt.a, tt.b), CircleCircleOverlap(tt.b, tt.a))
		})
	}
}

func TestRectRectOverlap(t *testing.T) {
	a := geom.MakeRectMinMax(pt(0, 0), pt(1, 1))
	tests := []struct {
		name      string
		b         geom.Rect
		inclusive bool
		strict    bool
	}{
		{"identical", a, true, true},
		{"overlapping", geom.MakeRectMinMax(pt(0.5, 0.5), pt(2, 2)), true, true},
		{"edge touch", geom.MakeRectMinMax(pt(1, 0), pt(2, 1)), true, false},
		{"corner touch", geom.MakeRectMinMax(pt(1, 1), pt(2, 2)), true, false},
		{"separated", geom.MakeRectMinMax(pt(1.5, 0), pt(2, 1)), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.inclusive, RectRectOverlap(a, tt.b))
			assert.Equal(t, tt.inclusive, RectRectOverlap(tt.b, a))
			assert.Equal(t, tt.strict, RectRectOverlapAllowEdgeTouch(a, tt.b))
			assert.Equal(t, tt.strict, RectRectOverlapAllowEdgeTouch(tt.b, a))
		})
	}
}

func TestCircleLineOverlap(t *testing.T) {
	c := geom.MakeCircle(pt(0, 0), 1)
	tests := []struct {
		name string
		l    geom.Line
		want bool
	}{
		{"crossing", geom.MakeLine(pt(-2, 0), pt(2, 0)), true},
		{"vertical crossing", geom.MakeLine(pt(0.5, -2), pt(0.5, 2)), true},
		{"tangent", geom.MakeLine(pt(-2, 1), pt(2, 1)), true},
		{"vertical tangent", geom.MakeLine(pt(1, -2), pt(1, 2)), true},
		{"inside", geom.MakeLine(pt(-0.5, 0), pt(0.5, 0)), true},
		{"one endpoint inside", geom.MakeLine(pt(0, 0), pt(5, 5)), true},
		{"short of the circle", geom.MakeLine(pt(2, 0), pt(3, 0)), false},
		{"above", geom.MakeLine(pt(-2, 2), pt(2, 2)), false},
		{"vertical beside", geom.MakeLine(pt(1.5, -2), pt(1.5, 2)), false},
		{"degenerate outside", geom.MakeLine(pt(3, 3), pt(3, 3)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CircleLineOverlap(c, tt.l))
		})
	}
}

func TestCircleRectOverlap(t *testing.T) {
	c := geom.MakeCircle(pt(0, 0), 1)
	tests := []struct {
		name string
		r    geom.Rect
		want bool
	}{
		{"circle inside rect", geom.MakeRect(pt(0, 0), pt(10, 10)), true},
		{"rect inside circle", geom.MakeRect(pt(0.1, 0), pt(0.2, 0.2)), true},
		{"touching edge", geom.MakeRect(pt(1.5, 0), pt(1, 1)), true},
		{"crossing edge", geom.MakeRect(pt(1.2, 0), pt(1, 4)), true},
		{"near corner outside", geom.MakeRect(pt(1.5, 1.5), pt(1, 1)), false},
		{"separated", geom.MakeRect(pt(3, 0), pt(1, 1)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CircleRectOverlap(c, tt.r))
		})
	}
}

func TestRectLineOverlap(t *testing.T) {
	r := geom.MakeRectMinMax(pt(0, 0), pt(2, 2))
	assert.True(t, RectLineOverlap(r, geom.MakeLine(pt(1, 1), pt(5, 5))), "endpoint inside")
	assert.True(t, RectLineOverlap(r, geom.MakeLine(pt(-1, 1), pt(3, 1))), "passes through")
	assert.True(t, RectLineOverlap(r, geom.MakeLine(pt(5, 5), pt(1, 1))), "second endpoint inside")
	assert.False(t, RectLineOverlap(r, geom.MakeLine(pt(-1, 3), pt(3, 3))), "above")
	assert.False(t, RectLineOverlap(r, geom.MakeLine(pt(3, -1), pt(3, 3))), "beside")
}

func TestCapsuleOverlap(t *testing.T) {
	c := geom.MakeCapsule(pt(0, 0), pt(4, 0), 1)

	t.Run("line", func(t *testing.T) {
		assert.True(t, CapsuleLineOverlap(c, geom.MakeLine(pt(2, 0.5), pt(2, 3))))
		assert.True(t, CapsuleLineOverlap(c, geom.MakeLine(pt(2, -3), pt(2, 3))))
		assert.True(t, CapsuleLineOverlap(c, geom.MakeLine(pt(-0.5, 0.5), pt(-0.5, 3))), "end cap")
		assert.False(t, CapsuleLineOverlap(c, geom.MakeLine(pt(2, 1.5), pt(2, 3))))
		assert.False(t, CapsuleLineOverlap(c, geom.MakeLine(pt(5.5, -1), pt(5.5, 1))))
	})

	t.Run("circle", func(t *testing.T) {
		assert.True(t, CapsuleCircleOverlap(c, geom.MakeCircle(pt(2, 1.5), 0.5)))
		assert.True(t, CapsuleCircleOverlap(c, geom.MakeCircle(pt(5.5, 0), 1)))
		assert.False(t, CapsuleCircleOverlap(c, geom.MakeCircle(pt(2, 2), 0.5)))
	})

	t.Run("capsule", func(t *testing.T) {
		assert.True(t, CapsuleCapsuleOverlap(c, geom.MakeCapsule(pt(2, -3), pt(2, 3), 0.1)))
		assert.True(t, CapsuleCapsuleOverlap(c, geom.MakeCapsule(pt(0, 2), pt(4, 2), 1)))
		assert.False(t, CapsuleCapsuleOverlap(c, geom.MakeCapsule(pt(0, 3), pt(4, 3), 1)))
	})

	t.Run("rect", func(t *testing.T) {
		assert.True(t, CapsuleRectOverlap(c, geom.MakeRect(pt(2, 0), pt(20, 20))), "capsule inside rect")
		assert.True(t, CapsuleRectOverlap(c, geom.MakeRect(pt(2, 0.2), pt(0.2, 0.2))), "rect inside capsule")
		assert.True(t, CapsuleRectOverlap(c, geom.MakeRect(pt(2, 1.5), pt(1, 1))), "touching edge")
		assert.False(t, CapsuleRectOverlap(c, geom.MakeRect(pt(2, 5), pt(1, 1))))
	})
}

func TestOverlapDispatchIsSymmetric(t *testing.T) {
	shapes := []geom.Shape{
		geom.MakeCircle(pt(0, 0), 1),
		geom.MakeCircle(pt(3, 0), 1),
		geom.MakeLine(pt(-2, 0.5), pt(2, 0.5)),
		geom.MakeLine(pt(10, 10), pt(11, 11)),
		geom.MakeRect(pt(1, 1), pt(2, 2)),
		geom.MakeRect(pt(-5, -5), pt(1, 1)),
		geom.MakeCapsule(pt(0, -1), pt(4, -1), 0.5),
		geom.MakeCapsule(pt(8, 8), pt(9, 9), 0.25),
	}
	for _, a := range shapes {
		for _, b := range shapes {
			assert.Equal(t, Overlap(a, b), Overlap(b, a), "%s %v / %s %v", Name(a), a, Name(b), b)
		}
		assert.True(t, Overlap(a, a), "%s %v overlaps itself", Name(a), a)
	}

	assert.True(t, Overlap(shapes[0], shapes[2]))
	assert.True(t, Overlap(shapes[4], shapes[0]))
	assert.False(t, Overlap(shapes[1], shapes[5]))
	assert.True(t, Overlap(shapes[6], shapes[0]))
	assert.False(t, Overlap(shapes[7], shapes[3]))
}
