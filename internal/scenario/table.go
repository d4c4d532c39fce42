// Package scenario holds a table of geometry queries with expected outcomes
// and runs each query through both the float and the fixed-point engines.
// It is how the two engines are kept in agreement.
package scenario

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/irfansharif/sweep/internal/geom"
)

//go:embed table.yaml
var defaultTable []byte

// TableEnv names a YAML file that replaces the embedded table.
const TableEnv = "SWEEP_TABLE"

// Kind is the query a scenario runs.
type Kind string

const (
	Overlap   Kind = "overlap"
	Intersect Kind = "intersect"
	Cast      Kind = "cast"
)

var ErrInvalid = errors.New("invalid scenario")

type Table struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

type Scenario struct {
	Name   string   `yaml:"name"`
	Kind   Kind     `yaml:"kind"`
	Shape  ShapeDef `yaml:"shape"`
	Target ShapeDef `yaml:"target"`

	// Dir and MaxDistance are used by casts only.
	Dir         Vec     `yaml:"dir,omitempty"`
	MaxDistance float64 `yaml:"max_distance,omitempty"`

	Expect Expect `yaml:"expect"`
	// Fixed, when set, replaces Expect for the fixed-point engine. The
	// engines are then allowed to disagree.
	Fixed *Expect `yaml:"fixed,omitempty"`
}

type Expect struct {
	Hit      bool     `yaml:"hit"`
	Distance *float64 `yaml:"distance,omitempty"`
	Points   *int     `yaml:"points,omitempty"`
	// Unsupported expects the cast to be rejected for its shape pair.
	Unsupported bool `yaml:"unsupported,omitempty"`
}

// Vec is a point written as a two element sequence.
type Vec [2]float64

func (v Vec) Point() geom.Point { return geom.Point{X: v[0], Y: v[1]} }

// ShapeDef describes one shape; exactly one member is set.
type ShapeDef struct {
	Circle  *CircleDef  `yaml:"circle,omitempty"`
	Line    *LineDef    `yaml:"line,omitempty"`
	Rect    *RectDef    `yaml:"rect,omitempty"`
	Capsule *CapsuleDef `yaml:"capsule,omitempty"`
}

type CircleDef struct {
	Center Vec     `yaml:"center"`
	Radius float64 `yaml:"radius"`
}

type LineDef struct {
	P1 Vec `yaml:"p1"`
	P2 Vec `yaml:"p2"`
}

// RectDef is given either by center and size or by two opposite corners.
type RectDef struct {
	Center *Vec `yaml:"center,omitempty"`
	Size   *Vec `yaml:"size,omitempty"`
	Min    *Vec `yaml:"min,omitempty"`
	Max    *Vec `yaml:"max,omitempty"`
}

type CapsuleDef struct {
	P1     Vec     `yaml:"p1"`
	P2     Vec     `yaml:"p2"`
	Radius float64 `yaml:"radius"`
}

// Geom builds the shape.
func (s ShapeDef) Geom() (geom.Shape, error) {
	var shapes []geom.Shape
	if c := s.Circle; c != nil {
		if c.Radius < 0 {
			return nil, fmt.Errorf("%w: negative radius %g", ErrInvalid, c.Radius)
		}
		shapes = append(shapes, geom.MakeCircle(c.Center.Point(), c.Radius))
	}
	if l := s.Line; l != nil {
		shapes = append(shapes, geom.MakeLine(l.P1.Point(), l.P2.Point()))
	}
	if r := s.Rect; r != nil {
		switch {
		case r.Center != nil && r.Size != nil && r.Min == nil && r.Max == nil:
			shapes = append(shapes, geom.MakeRect(r.Center.Point(), r.Size.Point()))
		case r.Min != nil && r.Max != nil && r.Center == nil && r.Size == nil:
			shapes = append(shapes, geom.MakeRectMinMax(r.Min.Point(), r.Max.Point()))
		default:
			return nil, fmt.Errorf("%w: rect needs center and size, or min and max", ErrInvalid)
		}
	}
	if c := s.Capsule; c != nil {
		if c.Radius < 0 {
			return nil, fmt.Errorf("%w: negative radius %g", ErrInvalid, c.Radius)
		}
		shapes = append(shapes, geom.MakeCapsule(c.P1.Point(), c.P2.Point(), c.Radius))
	}
	if len(shapes) != 1 {
		return nil, fmt.Errorf("%w: want exactly one shape, got %d", ErrInvalid, len(shapes))
	}
	return shapes[0], nil
}

// Validate checks every scenario's kind, shapes and cast parameters.
func (t *Table) Validate() error {
	seen := make(map[string]bool, len(t.Scenarios))
	for i := range t.Scenarios {
		sc := &t.Scenarios[i]
		if sc.Name == "" {
			return fmt.Errorf("scenario %d: %w: missing name", i, ErrInvalid)
		}
		if seen[sc.Name] {
			return fmt.Errorf("scenario %q: %w: duplicate name", sc.Name, ErrInvalid)
		}
		seen[sc.Name] = true
		if err := sc.validate(); err != nil {
			return fmt.Errorf("scenario %q: %w", sc.Name, err)
		}
	}
	return nil
}

func (sc *Scenario) validate() error {
	switch sc.Kind {
	case Overlap, Intersect:
	case Cast:
		if sc.Dir.Point().LenSq() == 0 {
			return fmt.Errorf("%w: cast needs a non-zero dir", ErrInvalid)
		}
		if sc.MaxDistance < 0 {
			return fmt.Errorf("%w: negative max_distance %g", ErrInvalid, sc.MaxDistance)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalid, sc.Kind)
	}
	if _, err := sc.Shape.Geom(); err != nil {
		return fmt.Errorf("shape: %w", err)
	}
	if _, err := sc.Target.Geom(); err != nil {
		return fmt.Errorf("target: %w", err)
	}
	return nil
}

// Load decodes and validates a YAML table.
func Load(r io.Reader) (*Table, error) {
	var t Table
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("decoding scenario table: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Default returns the embedded table.
func Default() (*Table, error) { return Load(bytes.NewReader(defaultTable)) }

// Resolve loads path if given, else the file named by TableEnv, else the
// embedded table.
func Resolve(path string) (*Table, error) {
	if path == "" {
		path = os.Getenv(TableEnv)
	}
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}
