package scenario

import (
	"errors"
	"fmt"
	"math"

	"github.com/irfansharif/sweep/internal/collide"
	"github.com/irfansharif/sweep/internal/fixcollide"
	"github.com/irfansharif/sweep/internal/fixgeom"
	"github.com/irfansharif/sweep/internal/geom"
	"github.com/irfansharif/sweep/internal/trace"
)

const (
	// Tolerance bounds the float engine's error against an expected
	// distance.
	Tolerance = 1e-6
	// FixedTolerance bounds the fixed engine's error against an expected
	// distance, and the disagreement allowed between the engines: two
	// sub-units, one for quantizing the inputs and one for rounding the cast
	// direction.
	FixedTolerance = 2.0 / fixgeom.Scale

	// dirScale is the length, in sub-units, of the fixed cast direction
	// derived from a float one. Only its angle matters.
	dirScale = 1 << 12
)

// Outcome is one engine's answer to a scenario, in world units.
type Outcome struct {
	Hit bool
	// Distance is the cast distance; +Inf for a cast without a hit and zero
	// for other kinds.
	Distance float64
	// Points are the intersection points, or the contact point on the
	// target for a cast.
	Points      []geom.Point
	Unsupported bool
	Err         error
}

// Result is the evaluation of one scenario by both engines.
type Result struct {
	Scenario *Scenario
	Float    Outcome
	Fixed    Outcome
	// FixedCast is the fixed engine's raw cast result; FixedPoints its raw
	// intersection points. Both feed the determinism digest.
	FixedCast   fixcollide.Hit
	FixedPoints []fixgeom.Point
	Problems    []string
}

func (r *Result) Pass() bool { return len(r.Problems) == 0 }

func (r *Result) problemf(format string, args ...any) {
	r.Problems = append(r.Problems, fmt.Sprintf(format, args...))
}

// Run evaluates every scenario of the table in both engines.
func Run(t *Table) []Result {
	results := make([]Result, len(t.Scenarios))
	for i := range t.Scenarios {
		results[i] = Evaluate(&t.Scenarios[i], nil, nil)
	}
	return results
}

// Evaluate runs one scenario. Traces, when non-nil, record the casts of each
// engine.
func Evaluate(sc *Scenario, floatTrace, fixedTrace *trace.Trace) Result {
	res := Result{Scenario: sc}
	shape, err := sc.Shape.Geom()
	if err != nil {
		res.problemf("shape: %v", err)
		return res
	}
	target, err := sc.Target.Geom()
	if err != nil {
		res.problemf("target: %v", err)
		return res
	}
	fshape, ftarget := fixgeom.FromGeom(shape), fixgeom.FromGeom(target)

	switch sc.Kind {
	case Overlap:
		res.Float.Hit = collide.Overlap(shape, target)
		res.Fixed.Hit = fixcollide.Overlap(fshape, ftarget)
	case Intersect:
		res.Float.Points = collide.Intersect(shape, target).Slice()
		res.Float.Hit = len(res.Float.Points) > 0
		res.FixedPoints = fixcollide.Intersect(fshape, ftarget).Slice()
		for _, p := range res.FixedPoints {
			res.Fixed.Points = append(res.Fixed.Points, fixgeom.ToFloat(p))
		}
		res.Fixed.Hit = len(res.FixedPoints) > 0
	case Cast:
		res.Float = castFloat(sc, shape, target, floatTrace)
		res.FixedCast, res.Fixed = castFixed(sc, fshape, ftarget, fixedTrace)
	default:
		res.problemf("unknown kind %q", sc.Kind)
		return res
	}

	check(&res, "float", res.Float, sc.Expect, Tolerance)
	fixedExpect := sc.Expect
	if sc.Fixed != nil {
		fixedExpect = *sc.Fixed
	}
	check(&res, "fixed", res.Fixed, fixedExpect, FixedTolerance)
	if sc.Fixed == nil {
		checkParity(&res)
	}
	return res
}

func castFloat(sc *Scenario, shape, target geom.Shape, tr *trace.Trace) Outcome {
	s := collide.NewSweep(sc.Dir.Point(), sc.MaxDistance)
	s.Trace = tr
	h, err := s.Cast(shape, target)
	out := Outcome{Hit: h.Hit, Distance: h.Distance}
	if err != nil {
		out.Unsupported = errors.Is(err, collide.ErrUnsupportedCast)
		out.Err = err
		return out
	}
	if h.Hit {
		out.Points = []geom.Point{h.PointOnTarget}
	}
	return out
}

func castFixed(sc *Scenario, shape, target fixgeom.Shape, tr *trace.Trace) (fixcollide.Hit, Outcome) {
	dir := fixgeom.ToFixed(sc.Dir.Point().Normalize().Scale(dirScale))
	s := fixcollide.NewSweep(dir, fixgeom.ToFixedScalar(sc.MaxDistance))
	s.Trace = tr
	h, err := s.Cast(shape, target)
	out := Outcome{Hit: h.Hit, Distance: h.Distance / fixgeom.Scale}
	if err != nil {
		out.Unsupported = errors.Is(err, fixcollide.ErrUnsupportedCast)
		out.Err = err
		return h, out
	}
	if h.Hit {
		out.Points = []geom.Point{fixgeom.ToFloat(h.PointOnTarget)}
	}
	return h, out
}

func check(res *Result, engine string, out Outcome, want Expect, tol float64) {
	if want.Unsupported {
		if !out.Unsupported {
			res.problemf("%s: want unsupported cast, got err=%v", engine, out.Err)
		}
		return
	}
	if out.Err != nil {
		res.problemf("%s: %v", engine, out.Err)
		return
	}
	if out.Hit != want.Hit {
		res.problemf("%s: hit = %t, want %t", engine, out.Hit, want.Hit)
	}
	if want.Distance != nil && want.Hit && out.Hit {
		if d := math.Abs(out.Distance - *want.Distance); d > tol {
			res.problemf("%s: distance = %g, want %g (off by %g)", engine, out.Distance, *want.Distance, d)
		}
	}
	if want.Points != nil && res.Scenario.Kind == Intersect && len(out.Points) != *want.Points {
		res.problemf("%s: %d points, want %d", engine, len(out.Points), *want.Points)
	}
}

func checkParity(res *Result) {
	f, x := res.Float, res.Fixed
	if f.Unsupported != x.Unsupported {
		res.problemf("parity: unsupported float=%t fixed=%t", f.Unsupported, x.Unsupported)
		return
	}
	if f.Hit != x.Hit {
		res.problemf("parity: hit float=%t fixed=%t", f.Hit, x.Hit)
		return
	}
	switch res.Scenario.Kind {
	case Cast:
		if f.Hit && math.Abs(f.Distance-x.Distance) > FixedTolerance {
			res.problemf("parity: distance float=%g fixed=%g", f.Distance, x.Distance)
		}
	case Intersect:
		if len(f.Points) != len(x.Points) {
			res.problemf("parity: points float=%d fixed=%d", len(f.Points), len(x.Points))
		}
	}
}

// Failures returns the results that did not pass.
func Failures(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Pass() {
			failed = append(failed, r)
		}
	}
	return failed
}
