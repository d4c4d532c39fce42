// Package mesh turns shapes into colored triangles for the viewer. Vertices
// are in world space, 6 floats each (x, y, r, g, b, a); the view transform is
// applied later, so panning and zooming never regenerate a mesh.
package mesh

import (
	"fmt"
	"image/color"
	"math"

	"github.com/irfansharif/sweep/internal/geom"
)

// FloatsPerVertex is the vertex stride in floats.
const FloatsPerVertex = 6

// Segments is the number of sides used to approximate a full circle.
const Segments = 48

// Builder accumulates triangles.
type Builder struct {
	vertices []float32
}

func (b *Builder) Vertices() []float32 { return b.vertices }
func (b *Builder) Len() int            { return len(b.vertices) / FloatsPerVertex }
func (b *Builder) Reset()              { b.vertices = b.vertices[:0] }

func (b *Builder) vertex(p geom.Point, c color.RGBA) {
	b.vertices = append(b.vertices,
		float32(p.X), float32(p.Y),
		float32(c.R)/255.0, float32(c.G)/255.0,
		float32(c.B)/255.0, float32(c.A)/255.0,
	)
}

func (b *Builder) Triangle(p, q, r geom.Point, c color.RGBA) {
	b.vertex(p, c)
	b.vertex(q, c)
	b.vertex(r, c)
}

func (b *Builder) quad(p1, p2, p3, p4 geom.Point, c color.RGBA) {
	b.Triangle(p1, p2, p3, c)
	b.Triangle(p1, p3, p4, c)
}

// Polygon fills a simple polygon.
func (b *Builder) Polygon(polygon []geom.Point, c color.RGBA) error {
	triangles, err := earClip(polygon)
	if err != nil {
		return err
	}
	for _, tri := range triangles {
		b.Triangle(tri[0], tri[1], tri[2], c)
	}
	return nil
}

// Segment draws l as a quad of the given width. A degenerate segment is drawn
// as a square.
func (b *Builder) Segment(l geom.Line, width float64, c color.RGBA) {
	d := l.Direction().Normalize()
	if d.LenSq() == 0 {
		d = geom.Point{X: 1}
	}
	n := d.Perp().Scale(width / 2)
	p1, p2 := l.P1.Sub(d.Scale(width/2)), l.P2.Add(d.Scale(width/2))
	b.quad(p1.Sub(n), p2.Sub(n), p2.Add(n), p1.Add(n), c)
}

// Outline draws the closed polygon's edges.
func (b *Builder) Outline(polygon []geom.Point, width float64, c color.RGBA) {
	for i := range polygon {
		b.Segment(geom.Line{P1: polygon[i], P2: polygon[(i+1)%len(polygon)]}, width, c)
	}
}

// Marker draws a point as a small disc.
func (b *Builder) Marker(p geom.Point, radius float64, c color.RGBA) {
	ring := CirclePolygon(geom.Circle{Center: p, Radius: radius}, Segments/4)
	for i := range ring {
		b.Triangle(p, ring[i], ring[(i+1)%len(ring)], c)
	}
}

// Shape fills s. Lines are drawn with the given width; a zero-radius circle
// is drawn as a marker of that width.
func (b *Builder) Shape(s geom.Shape, width float64, c color.RGBA) error {
	switch s := s.(type) {
	case geom.Circle:
		if s.Radius <= 0 {
			b.Marker(s.Center, width, c)
			return nil
		}
		return b.Polygon(CirclePolygon(s, Segments), c)
	case geom.Line:
		b.Segment(s, width, c)
		return nil
	case geom.Rect:
		return b.Polygon(RectPolygon(s), c)
	case geom.Capsule:
		if s.Radius <= 0 {
			b.Segment(s.Segment(), width, c)
			return nil
		}
		return b.Polygon(CapsulePolygon(s, Segments), c)
	default:
		return fmt.Errorf("cannot mesh %T", s)
	}
}

// Perimeter returns the outline of s as a closed polygon, nil for lines and
// degenerate shapes.
func Perimeter(s geom.Shape) []geom.Point {
	switch s := s.(type) {
	case geom.Circle:
		if s.Radius > 0 {
			return CirclePolygon(s, Segments)
		}
	case geom.Rect:
		return RectPolygon(s)
	case geom.Capsule:
		if s.Radius > 0 {
			return CapsulePolygon(s, Segments)
		}
	}
	return nil
}

// CirclePolygon approximates c with n vertices, counter-clockwise from the
// positive X axis.
func CirclePolygon(c geom.Circle, n int) []geom.Point {
	return arc(c.Center, c.Radius, 0, 2*math.Pi, n, false)
}

// RectPolygon returns the corners of r, counter-clockwise from bottom-left.
func RectPolygon(r geom.Rect) []geom.Point {
	c := r.Corners()
	return []geom.Point{c[0], c[3], c[2], c[1]}
}

// CapsulePolygon approximates c with two half circles of n/2 sides each,
// joined by the straight sides.
func CapsulePolygon(c geom.Capsule, n int) []geom.Point {
	d := c.Segment().Direction()
	theta := 0.0
	if d.LenSq() > 0 {
		theta = math.Atan2(d.Y, d.X)
	}
	half := n / 2
	if half < 2 {
		half = 2
	}
	// The cap at P2 sweeps from the right of the direction to its left, the
	// cap at P1 continues from the left back to the right.
	pts := arc(c.P2, c.Radius, theta-math.Pi/2, math.Pi, half, true)
	return append(pts, arc(c.P1, c.Radius, theta+math.Pi/2, math.Pi, half, true)...)
}

// arc returns points on a circle from angle start through start+sweep. A
// closed arc includes its end point.
func arc(center geom.Point, radius, start, sweep float64, n int, closed bool) []geom.Point {
	steps := n
	if closed {
		steps = n + 1
	}
	pts := make([]geom.Point, steps)
	for i := range pts {
		a := start + sweep*float64(i)/float64(n)
		pts[i] = geom.Point{X: center.X + radius*math.Cos(a), Y: center.Y + radius*math.Sin(a)}
	}
	return pts
}
