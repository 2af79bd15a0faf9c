package body

import (
	"fmt"
	"strings"

	"github.com/orbitlab/orbitsim/internal/vec"
)

// Colour is a display-only RGB value carried through merges.
type Colour struct {
	R, G, B int
}

// Blend returns the component-wise average of two colours.
func (c Colour) Blend(o Colour) Colour {
	return Colour{
		R: (c.R + o.R) / 2,
		G: (c.G + o.G) / 2,
		B: (c.B + o.B) / 2,
	}
}

// Body is a point/disc mass in the simulation. Identity is positional
// within a registry for the duration of one tick. Mass is in kg,
// Radius in km, Pos in AU, Vel in AU/day.
type Body struct {
	Mass   float64
	Radius float64
	Pos    vec.Vec2
	Vel    vec.Vec2
	Colour Colour
	Name   string

	trace []TracePoint
}

// New constructs a body. Unnamed bodies are labeled with their mass in
// scientific notation.
func New(mass, radius float64, pos, vel vec.Vec2, colour Colour, name string) *Body {
	if name == "" {
		name = MassLabel(mass)
	}
	return &Body{
		Mass:   mass,
		Radius: radius,
		Pos:    pos,
		Vel:    vel,
		Colour: colour,
		Name:   name,
	}
}

// Sentinel returns the zero-mass, unit-radius placeholder that a merge
// leaves behind in the consumed slot. It must be filtered out of the
// registry before the next tick.
func Sentinel() *Body {
	return &Body{Mass: 0, Radius: 1, Name: ""}
}

// IsSentinel reports whether b is an empty merge placeholder.
func (b *Body) IsSentinel() bool {
	return b.Mass == 0 && b.Radius == 1 && b.Pos == (vec.Vec2{})
}

// Move advances the position by one time step. dt may be negative.
func (b *Body) Move(dt float64) {
	b.Pos = b.Pos.Add(b.Vel.Scale(dt))
}

// Boost applies a velocity change.
func (b *Body) Boost(dv vec.Vec2) {
	b.Vel = b.Vel.Add(dv)
}

// Clone returns a deep copy, trace included.
func (b *Body) Clone() *Body {
	c := *b
	c.trace = make([]TracePoint, len(b.trace))
	copy(c.trace, b.trace)
	return &c
}

func (b *Body) String() string {
	return fmt.Sprintf("%s mass=%g radius=%g pos=%v vel=%v",
		b.Name, b.Mass, b.Radius, b.Pos, b.Vel)
}

// MassLabel formats a mass-derived display name, e.g. "1.99E+30kg".
func MassLabel(mass float64) string {
	return fmt.Sprintf("%.2Ekg", mass)
}

// MassDerived reports whether a name was generated from a mass rather
// than given in the system description.
func MassDerived(name string) bool {
	return strings.HasSuffix(name, "kg")
}

// MergeName picks the display name for a merged body: regenerated from
// the combined mass when either parent label was mass-derived, else the
// lower-indexed parent's name is kept.
func MergeName(a, b *Body, mass float64) string {
	if MassDerived(a.Name) || MassDerived(b.Name) {
		return MassLabel(mass)
	}
	return a.Name
}
