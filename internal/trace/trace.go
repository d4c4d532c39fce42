// Package trace records the intermediate shapes a query considered (candidate
// edges, tangent points, rays, contacts) so an external renderer can show how
// an answer was reached. The queries never draw anything themselves; a nil
// *Trace is valid everywhere and records nothing.
package trace

import (
	"fmt"

	"github.com/irfansharif/sweep/internal/geom"
)

// Kind classifies a recorded shape by the role it played in the query.
type Kind int

const (
	Candidate Kind = iota // edge or corner considered for contact
	Tangent               // tangent point offset from a moving circle
	Ray                   // raycast segment
	Contact               // accepted contact point
	Rejected              // candidate discarded by a later test
)

var kindNames = [...]string{"candidate", "tangent", "ray", "contact", "rejected"}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Kinds lists every kind, in declaration order.
func Kinds() []Kind { return []Kind{Candidate, Tangent, Ray, Contact, Rejected} }

// Entry is one recorded shape. Exactly one of Circle, Line, Rect is
// meaningful, selected by Shape; points are recorded as zero-radius circles.
type Entry struct {
	Kind   Kind
	Label  string
	Shape  ShapeType
	Circle geom.Circle
	Line   geom.Line
	Rect   geom.Rect
}

type ShapeType int

const (
	CircleShape ShapeType = iota
	LineShape
	RectShape
)

// Trace is an append-only list of entries.
type Trace struct {
	Entries []Entry
}

func New() *Trace { return &Trace{} }

func (t *Trace) Point(k Kind, label string, p geom.Point) {
	t.Circle(k, label, geom.Circle{Center: p})
}

func (t *Trace) Circle(k Kind, label string, c geom.Circle) {
	if t == nil {
		return
	}
	t.Entries = append(t.Entries, Entry{Kind: k, Label: label, Shape: CircleShape, Circle: c})
}

func (t *Trace) Line(k Kind, label string, l geom.Line) {
	if t == nil {
		return
	}
	t.Entries = append(t.Entries, Entry{Kind: k, Label: label, Shape: LineShape, Line: l})
}

func (t *Trace) Rect(k Kind, label string, r geom.Rect) {
	if t == nil {
		return
	}
	t.Entries = append(t.Entries, Entry{Kind: k, Label: label, Shape: RectShape, Rect: r})
}

// Len returns the number of recorded entries; zero for a nil trace.
func (t *Trace) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Entries)
}

// Count returns how many entries of kind k were recorded.
func (t *Trace) Count(k Kind) int {
	if t == nil {
		return 0
	}
	n := 0
	for _, e := range t.Entries {
		if e.Kind == k {
			n++
		}
	}
	return n
}

// Reset drops all entries, keeping the backing storage.
func (t *Trace) Reset() {
	if t == nil {
		return
	}
	t.Entries = t.Entries[:0]
}
