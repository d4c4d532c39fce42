package app

import (
	"fmt"
	"image/color"
	"math"

	"github.com/irfansharif/sweep/internal/geom"
	"github.com/irfansharif/sweep/internal/log"
	"github.com/irfansharif/sweep/internal/memory"
	"github.com/irfansharif/sweep/internal/mesh"
	"github.com/irfansharif/sweep/internal/palette"
	"github.com/irfansharif/sweep/internal/scenario"
	"github.com/irfansharif/sweep/internal/trace"
)

// Layers drawn for the current scene, bottom to top.
const (
	ShapesLayer memory.LayerID = iota
	TraceLayer
)

// Renderer is what the app draws through.
type Renderer interface {
	SetView(w, h int, worldToScreen geom.Affine)
	Upload(id memory.LayerID, vertices []float32) error
}

// App encapsulates the main application state and logic.
type App struct {
	Renderer Renderer
	View     *View
	Scenes   *SceneManager
	Palette  palette.Palette
	Engine   Engine

	log     *log.Logger
	builder mesh.Builder
}

// NewApp creates a new application instance showing the first scene.
func NewApp(renderer Renderer, view *View, scenes *SceneManager, logger *log.Logger) *App {
	return &App{
		Renderer: renderer,
		View:     view,
		Scenes:   scenes,
		Palette:  palette.Default(),
		Engine:   Float,
		log:      logger.Named("app"),
	}
}

// Prepare builds and uploads both layers of the current scene.
func (a *App) Prepare() error {
	s := a.Scenes.Current()
	if s == nil {
		return nil
	}
	shapes, err := a.BuildShapes(s)
	if err != nil {
		return fmt.Errorf("scene %q: %w", s.Scenario.Name, err)
	}
	if err := a.Renderer.Upload(ShapesLayer, shapes); err != nil {
		return err
	}
	if err := a.Renderer.Upload(TraceLayer, a.BuildTrace(s)); err != nil {
		return err
	}
	a.log.Debug("prepared scene",
		log.String("scene", s.Scenario.Name),
		log.Stringer("engine", a.Engine),
		log.Int("shape_vertices", len(shapes)/mesh.FloatsPerVertex),
		log.Int("trace_entries", s.Traces[a.Engine].Len()),
	)
	return a.UpdateView()
}

// UpdateView pushes the view transform for the current scene.
func (a *App) UpdateView() error {
	bounds := geom.MakeRect(geom.Point{}, geom.MakePoint(1, 1))
	if s := a.Scenes.Current(); s != nil {
		bounds = s.Bounds
	}
	if a.View.Width <= 0 || a.View.Height <= 0 {
		return nil // minimized
	}
	worldToScreen, err := a.View.WorldToScreen(bounds)
	if err != nil {
		return err
	}
	a.Renderer.SetView(a.View.Width, a.View.Height, worldToScreen)
	return nil
}

// Step shows the next or previous scene with a reset view.
func (a *App) Step(next bool) error {
	if a.Scenes.IterScene(next) == nil {
		return nil
	}
	a.View.Reset()
	return a.Prepare()
}

// ToggleEngine switches between the float and fixed-point answers.
func (a *App) ToggleEngine() error {
	a.Engine = a.Engine.Other()
	return a.Prepare()
}

// Title describes the current scene for the window title.
func (a *App) Title() string {
	s := a.Scenes.Current()
	if s == nil {
		return "Sweep (no scenarios)"
	}
	status := "pass"
	if !s.Result.Pass() {
		status = "FAIL"
	}
	return fmt.Sprintf("Sweep: %s [%s] %s, %s (%d/%d, %d failing)",
		s.Scenario.Name, s.Scenario.Kind, status, describe(s.Outcome(a.Engine), s.Scenario.Kind, a.Engine),
		s.ID+1, a.Scenes.Len(), len(a.Scenes.Failed()))
}

func describe(o scenario.Outcome, kind scenario.Kind, e Engine) string {
	switch {
	case o.Unsupported:
		return fmt.Sprintf("%s: unsupported", e)
	case o.Err != nil:
		return fmt.Sprintf("%s: %v", e, o.Err)
	case kind == scenario.Cast && o.Hit:
		return fmt.Sprintf("%s: hit at %.4g", e, o.Distance)
	case kind == scenario.Intersect:
		return fmt.Sprintf("%s: %d points", e, len(o.Points))
	default:
		return fmt.Sprintf("%s: hit=%t", e, o.Hit)
	}
}

// lineWidth is the world-space width of lines and markers in the scene.
func lineWidth(s *Scene) float64 {
	size := s.Bounds.Size()
	return 0.004 * math.Max(size.X, size.Y)
}

// BuildShapes meshes the target, the moving shape and, for casts, where each
// engine says the shape stops.
func (a *App) BuildShapes(s *Scene) ([]float32, error) {
	b, p := &a.builder, a.Palette
	b.Reset()
	w := lineWidth(s)

	if err := a.solid(s.Target, w, p.Role(palette.Target)); err != nil {
		return nil, err
	}
	if err := a.solid(s.Shape, w, p.Role(palette.Moving)); err != nil {
		return nil, err
	}

	if other, ok := s.Travel(a.Engine.Other()); ok {
		if err := b.Shape(translate(s.Shape, other), w, p.Role(palette.Ghost)); err != nil {
			return nil, err
		}
	}
	if travel, ok := s.Travel(a.Engine); ok {
		end := translate(s.Shape, travel)
		if err := a.solid(end, w, p.Role(palette.Swept)); err != nil {
			return nil, err
		}
		start := s.Shape.BoundingCircle().Center
		b.Segment(geom.Line{P1: start, P2: start.Add(travel)}, w, p.Role(palette.Path))
	}

	for _, pt := range s.Outcome(a.Engine).Points {
		b.Marker(pt, 2*w, p.Kind(trace.Contact))
	}
	return copyVertices(b), nil
}

// solid fills sh and outlines it in a darker shade of the same color.
func (a *App) solid(sh geom.Shape, w float64, c color.RGBA) error {
	if err := a.builder.Shape(sh, w, c); err != nil {
		return err
	}
	if perimeter := mesh.Perimeter(sh); perimeter != nil {
		edge := c
		edge.A = 255
		a.builder.Outline(perimeter, w/2, palette.Dimmed(edge, 0.2))
	}
	return nil
}

// BuildTrace meshes the active engine's trace. Circles are outlined so the
// swept region stays visible under them.
func (a *App) BuildTrace(s *Scene) []float32 {
	b, p := &a.builder, a.Palette
	b.Reset()
	w := lineWidth(s)
	for _, e := range s.Traces[a.Engine].Entries {
		c := p.Kind(e.Kind)
		switch e.Shape {
		case trace.CircleShape:
			if e.Circle.Radius <= 0 {
				b.Marker(e.Circle.Center, 1.5*w, c)
				continue
			}
			b.Outline(mesh.CirclePolygon(e.Circle, mesh.Segments), w/2, c)
		case trace.LineShape:
			b.Segment(e.Line, w/2, c)
		case trace.RectShape:
			b.Outline(mesh.RectPolygon(e.Rect), w/2, c)
		}
	}
	return copyVertices(b)
}

// copyVertices detaches the builder's vertices so the builder can be reused.
func copyVertices(b *mesh.Builder) []float32 {
	if b.Len() == 0 {
		return nil
	}
	return append([]float32(nil), b.Vertices()...)
}
