package app

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irfansharif/sweep/internal/geom"
	"github.com/irfansharif/sweep/internal/log"
	"github.com/irfansharif/sweep/internal/memory"
	"github.com/irfansharif/sweep/internal/mesh"
	"github.com/irfansharif/sweep/internal/scenario"
)

type fakeRenderer struct {
	w, h    int
	view    geom.Affine
	layers  map[memory.LayerID][]float32
	uploads int
}

func (r *fakeRenderer) SetView(w, h int, worldToScreen geom.Affine) {
	r.w, r.h, r.view = w, h, worldToScreen
}

func (r *fakeRenderer) Upload(id memory.LayerID, vertices []float32) error {
	if r.layers == nil {
		r.layers = make(map[memory.LayerID][]float32)
	}
	r.uploads++
	if len(vertices) == 0 {
		delete(r.layers, id)
		return nil
	}
	r.layers[id] = vertices
	return nil
}

func newTestApp(t *testing.T) (*App, *fakeRenderer) {
	table, err := scenario.Default()
	require.NoError(t, err)
	r := &fakeRenderer{}
	a := NewApp(r, NewView(800, 600), NewSceneManager(table), log.NewNop())
	require.NoError(t, a.Prepare())
	return a, r
}

func TestPrepareUploadsLayers(t *testing.T) {
	a, r := newTestApp(t)
	s := a.Scenes.Current()
	require.Equal(t, "circle cast reaches rect face", s.Scenario.Name)

	require.Contains(t, r.layers, ShapesLayer)
	require.Contains(t, r.layers, TraceLayer)
	assert.Zero(t, len(r.layers[ShapesLayer])%mesh.FloatsPerVertex)
	assert.Equal(t, 800, r.w)
	assert.Equal(t, 600, r.h)

	uploads := r.uploads
	require.NoError(t, a.ToggleEngine())
	assert.Equal(t, Fixed, a.Engine)
	assert.Equal(t, uploads+2, r.uploads)
	assert.Contains(t, r.layers, TraceLayer)
	require.NoError(t, a.ToggleEngine())
	assert.Equal(t, Float, a.Engine)
}

func TestStepWrapsAndResetsView(t *testing.T) {
	a, r := newTestApp(t)
	n := a.Scenes.Len()
	require.Greater(t, n, 1)

	a.View.SetZoom(3)
	require.NoError(t, a.Step(false))
	assert.Equal(t, SceneID(n-1), a.Scenes.Current().ID)
	assert.Equal(t, 1.0, a.View.Zoom)

	require.NoError(t, a.Step(true))
	assert.Equal(t, SceneID(0), a.Scenes.Current().ID)

	// Overlap scenes have no trace.
	require.True(t, a.Scenes.SetCurrent("overlapping rects"))
	require.NoError(t, a.Prepare())
	assert.NotContains(t, r.layers, TraceLayer)
	assert.False(t, a.Scenes.SetCurrent("no such scenario"))
}

func TestSceneTravel(t *testing.T) {
	a, _ := newTestApp(t)
	s := a.Scenes.Current()

	v, ok := s.Travel(Float)
	require.True(t, ok)
	assert.InDelta(t, 2, v.X, 1e-9)
	assert.InDelta(t, 0, v.Y, 1e-9)

	v, ok = s.Travel(Fixed)
	require.True(t, ok)
	assert.Equal(t, geom.Point{X: 2, Y: 0}, v)

	// The bounds cover the shape at rest and the target.
	assert.LessOrEqual(t, s.Bounds.Min.X, -1.0)
	assert.GreaterOrEqual(t, s.Bounds.Max.X, 5.0)

	require.True(t, a.Scenes.SetCurrent("capsule cast is unsupported"))
	_, ok = a.Scenes.Current().Travel(Float)
	assert.False(t, ok)
	_, ok = a.Scenes.Current().Travel(Fixed)
	assert.False(t, ok)

	require.True(t, a.Scenes.SetCurrent("circle cast stops short of rect"))
	v, ok = a.Scenes.Current().Travel(Float)
	require.True(t, ok)
	assert.InDelta(t, 1.5, v.X, 1e-9)
}

func TestEveryDefaultSceneBuilds(t *testing.T) {
	a, _ := newTestApp(t)
	assert.Empty(t, a.Scenes.Failed())
	for i := 0; i < a.Scenes.Len(); i++ {
		s := a.Scenes.Current()
		for _, e := range []Engine{Float, Fixed} {
			a.Engine = e
			v, err := a.BuildShapes(s)
			require.NoError(t, err, "%s", s.Scenario.Name)
			assert.NotEmpty(t, v, "%s", s.Scenario.Name)
			a.BuildTrace(s)
		}
		assert.Contains(t, a.Title(), s.Scenario.Name)
		a.Scenes.IterScene(true)
	}
}

func TestTitle(t *testing.T) {
	a, _ := newTestApp(t)
	assert.Equal(t, "Sweep: circle cast reaches rect face [cast] pass, float: hit at 2 (1/22, 0 failing)", a.Title())

	empty := NewApp(&fakeRenderer{}, NewView(10, 10), NewSceneManager(&scenario.Table{}), log.NewNop())
	assert.Equal(t, "Sweep (no scenarios)", empty.Title())
	require.NoError(t, empty.Prepare())
	require.NoError(t, empty.Step(true))
}

func TestWorldToScreen(t *testing.T) {
	v := NewView(100, 100)
	bounds := geom.MakeRectMinMax(geom.Point{}, geom.MakePoint(10, 10))

	m, err := v.WorldToScreen(bounds)
	require.NoError(t, err)
	assertPoint(t, geom.MakePoint(15, 85), m.MulPoint(geom.Point{}))
	assertPoint(t, geom.MakePoint(85, 15), m.MulPoint(geom.MakePoint(10, 10)))

	v.SetZoom(2)
	v.SetPan(5, -5)
	m, err = v.WorldToScreen(bounds)
	require.NoError(t, err)
	assertPoint(t, geom.MakePoint(-15, 115), m.MulPoint(geom.Point{}))

	_, err = v.WorldToScreen(geom.Rect{})
	require.Error(t, err)
}

func TestZoomAtKeepsCursorFixed(t *testing.T) {
	v := NewView(100, 100)
	v.SetPan(7, 3)
	bounds := geom.MakeRectMinMax(geom.Point{}, geom.MakePoint(10, 10))
	before, err := v.WorldToScreen(bounds)
	require.NoError(t, err)
	inv, err := before.Inv()
	require.NoError(t, err)
	under := inv.MulPoint(geom.MakePoint(80, 20))

	v.ZoomAt(1, 80, 20)
	assert.InDelta(t, 1.15, v.Zoom, 1e-12)
	after, err := v.WorldToScreen(bounds)
	require.NoError(t, err)
	assertPoint(t, geom.MakePoint(80, 20), after.MulPoint(under))

	// Zoom is clamped.
	for i := 0; i < 100; i++ {
		v.ZoomAt(-1, 50, 50)
	}
	assert.Equal(t, minZoom, v.Zoom)
}

func TestEngine(t *testing.T) {
	assert.Equal(t, Fixed, Float.Other())
	assert.Equal(t, Float, Fixed.Other())
	assert.Equal(t, "float", Float.String())
	assert.Equal(t, "fixed", Fixed.String())
}

func assertPoint(t *testing.T, want, got geom.Point) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-9, "x of %v", got)
	assert.InDelta(t, want.Y, got.Y, 1e-9, "y of %v", got)
	assert.False(t, math.IsNaN(got.X))
}
