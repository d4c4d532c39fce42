// Package palette assigns colors to what the viewer draws: the scenario's
// shapes by role, and trace entries by kind.
package palette

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/irfansharif/sweep/internal/trace"
)

// Role is the part a shape plays in a scenario.
type Role int

const (
	Moving Role = iota // shape being queried or cast
	Target             // shape it is tested against
	Swept              // moving shape at the end of its cast
	Path               // cast direction, from start to end of travel
	Ghost              // swept shape according to the other engine
	numRoles
)

// Palette holds one color per role and per trace kind.
type Palette struct {
	roles [numRoles]color.RGBA
	kinds []color.RGBA
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// hsva converts hue in degrees, saturation and value in [0,1] to RGBA.
func hsva(h, s, v float64, a uint8) color.RGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := colorful.Hsv(h, clamp(s, 0, 1), clamp(v, 0, 1))
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: a}
}

// New returns a palette whose hues are rotated by hue degrees.
func New(hue float64) Palette {
	p := Palette{kinds: make([]color.RGBA, len(trace.Kinds()))}
	p.roles[Moving] = hsva(hue+210, 0.65, 0.85, 200)
	p.roles[Target] = hsva(hue+30, 0.55, 0.90, 160)
	p.roles[Swept] = hsva(hue+210, 0.35, 0.95, 110)
	p.roles[Path] = hsva(hue, 0, 0.45, 255)
	p.roles[Ghost] = Dimmed(p.roles[Swept], 0.5)

	// Trace kinds are spread evenly around the wheel.
	for i, k := range trace.Kinds() {
		step := 360.0 / float64(len(p.kinds))
		p.kinds[k] = hsva(hue+float64(i)*step+90, 0.85, 0.75, 255)
	}
	p.kinds[trace.Rejected] = hsva(hue, 0, 0.65, 200)
	return p
}

// Default is the palette the viewer starts with.
func Default() Palette { return New(0) }

func (p Palette) Role(r Role) color.RGBA {
	if r < 0 || r >= numRoles {
		return color.RGBA{A: 255}
	}
	return p.roles[r]
}

func (p Palette) Kind(k trace.Kind) color.RGBA {
	if int(k) < 0 || int(k) >= len(p.kinds) {
		return color.RGBA{A: 255}
	}
	return p.kinds[k]
}

// Dimmed lowers the color's saturation and alpha by the given fraction,
// keeping its hue.
func Dimmed(c color.RGBA, amount float64) color.RGBA {
	cf := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	h, s, v := cf.Hsv()
	a := clamp(float64(c.A)*(1-amount), 0, 255)
	return hsva(h, s*(1-amount), v, uint8(a))
}
