package app

import (
	"math"

	"github.com/irfansharif/sweep/internal/fixgeom"
	"github.com/irfansharif/sweep/internal/geom"
	"github.com/irfansharif/sweep/internal/scenario"
	"github.com/irfansharif/sweep/internal/trace"
)

// Engine selects which implementation's answer the viewer shows.
type Engine int

const (
	Float Engine = iota
	Fixed
	numEngines
)

func (e Engine) String() string {
	if e == Fixed {
		return "fixed"
	}
	return "float"
}

// Other returns the engine not shown.
func (e Engine) Other() Engine { return 1 - e }

// SceneID is a scene's position in the table.
type SceneID int

// Scene is one evaluated scenario with the traces both engines recorded.
type Scene struct {
	ID       SceneID
	Scenario *scenario.Scenario
	Result   scenario.Result
	Traces   [numEngines]*trace.Trace
	Shape    geom.Shape
	Target   geom.Shape
	// Bounds covers the shapes at both ends of every engine's travel.
	Bounds geom.Rect
}

// Travel returns how far the engine moved the shape, and whether the scene is
// a cast with an answer from that engine.
func (s *Scene) Travel(e Engine) (geom.Point, bool) {
	sc := s.Scenario
	if sc.Kind != scenario.Cast {
		return geom.Point{}, false
	}
	if e == Fixed {
		if s.Result.Fixed.Err != nil {
			return geom.Point{}, false
		}
		return fixgeom.ToFloat(s.Result.FixedCast.Travel), true
	}
	if s.Result.Float.Err != nil {
		return geom.Point{}, false
	}
	d := sc.MaxDistance
	if s.Result.Float.Hit {
		d = math.Min(d, s.Result.Float.Distance)
	}
	return sc.Dir.Point().Normalize().Scale(d), true
}

// Outcome returns the engine's answer.
func (s *Scene) Outcome(e Engine) scenario.Outcome {
	if e == Fixed {
		return s.Result.Fixed
	}
	return s.Result.Float
}

func newScene(id SceneID, sc *scenario.Scenario) *Scene {
	s := &Scene{ID: id, Scenario: sc}
	s.Traces[Float], s.Traces[Fixed] = trace.New(), trace.New()
	s.Result = scenario.Evaluate(sc, s.Traces[Float], s.Traces[Fixed])
	// The table was validated on load, so both shapes build.
	s.Shape, _ = sc.Shape.Geom()
	s.Target, _ = sc.Target.Geom()
	s.Bounds = s.computeBounds()
	return s
}

func (s *Scene) computeBounds() geom.Rect {
	lo := geom.MakePoint(math.Inf(1), math.Inf(1))
	hi := geom.MakePoint(math.Inf(-1), math.Inf(-1))
	add := func(sh geom.Shape) {
		if sh == nil {
			return
		}
		c := sh.BoundingCircle()
		lo = geom.MakePoint(math.Min(lo.X, c.Center.X-c.Radius), math.Min(lo.Y, c.Center.Y-c.Radius))
		hi = geom.MakePoint(math.Max(hi.X, c.Center.X+c.Radius), math.Max(hi.Y, c.Center.Y+c.Radius))
	}
	add(s.Shape)
	add(s.Target)
	for e := Float; e < numEngines; e++ {
		if v, ok := s.Travel(e); ok {
			add(translate(s.Shape, v))
		}
	}
	if math.IsInf(lo.X, 0) {
		return geom.MakeRect(geom.Point{}, geom.MakePoint(1, 1))
	}

	// Pad, and keep degenerate scenes (a single point) drawable.
	size := hi.Sub(lo)
	side := math.Max(math.Max(size.X, size.Y), 1)
	return geom.MakeRect(geom.Lerp(lo, hi, 0.5), geom.MakePoint(size.X+0.1*side, size.Y+0.1*side))
}

// translate moves s by v.
func translate(s geom.Shape, v geom.Point) geom.Shape {
	switch s := s.(type) {
	case geom.Circle:
		return s.Translate(v)
	case geom.Line:
		return s.Translate(v)
	case geom.Rect:
		return s.Translate(v)
	case geom.Capsule:
		return s.Translate(v)
	}
	return s
}

// SceneManager holds the scenes of a table and which one is shown.
type SceneManager struct {
	scenes  []*Scene
	current int // -1 when there are no scenes
}

// NewSceneManager evaluates every scenario of the table.
func NewSceneManager(t *scenario.Table) *SceneManager {
	sm := &SceneManager{current: -1}
	for i := range t.Scenarios {
		sm.scenes = append(sm.scenes, newScene(SceneID(i), &t.Scenarios[i]))
	}
	if len(sm.scenes) > 0 {
		sm.current = 0
	}
	return sm
}

func (sm *SceneManager) Len() int { return len(sm.scenes) }

// Current returns the scene shown, nil if there are none.
func (sm *SceneManager) Current() *Scene {
	if sm.current < 0 {
		return nil
	}
	return sm.scenes[sm.current]
}

// SetCurrent shows the scene with the given name, reporting whether it
// exists.
func (sm *SceneManager) SetCurrent(name string) bool {
	for i, s := range sm.scenes {
		if s.Scenario.Name == name {
			sm.current = i
			return true
		}
	}
	return false
}

// IterScene moves to the next or previous scene, wrapping around.
func (sm *SceneManager) IterScene(next bool) *Scene {
	if len(sm.scenes) == 0 {
		return nil
	}
	direction := 1
	if !next {
		direction = -1
	}
	sm.current = (sm.current + direction + len(sm.scenes)) % len(sm.scenes)
	return sm.scenes[sm.current]
}

// Failed returns the scenes whose scenario did not pass.
func (sm *SceneManager) Failed() []*Scene {
	var failed []*Scene
	for _, s := range sm.scenes {
		if !s.Result.Pass() {
			failed = append(failed, s)
		}
	}
	return failed
}
