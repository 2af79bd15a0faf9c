package engine

import (
	"github.com/orbitlab/orbitsim/internal/body"
	"github.com/orbitlab/orbitsim/internal/physics"
	"github.com/orbitlab/orbitsim/internal/vec"
)

// Registry is the ordered collection of live bodies for one tick.
// Identity is positional and stable only within a tick: the collision
// pass produces a fresh compacted registry for the next tick.
type Registry []*body.Body

// Clone returns a deep copy with distinct body identities, used for
// the immutable backup snapshot taken at load time.
func (r Registry) Clone() Registry {
	c := make(Registry, len(r))
	for i, b := range r {
		c[i] = b.Clone()
	}
	return c
}

// TotalMass sums the masses of all bodies.
func (r Registry) TotalMass() float64 {
	total := 0.0
	for _, b := range r {
		total += b.Mass
	}
	return total
}

// Momentum returns the total linear momentum. Invariant across any
// tick that contains no collisions (the merge rule conserves it too).
func (r Registry) Momentum() vec.Vec2 {
	var p vec.Vec2
	for _, b := range r {
		p = p.Add(b.Vel.Scale(b.Mass))
	}
	return p
}

// AngularMomentum returns the total angular momentum about the origin.
func (r Registry) AngularMomentum() float64 {
	l := 0.0
	for _, b := range r {
		l += b.Mass * (b.Pos.X*b.Vel.Y - b.Pos.Y*b.Vel.X)
	}
	return l
}

// Energy returns kinetic plus pairwise potential energy under the
// given force model.
func (r Registry) Energy(m physics.Model) float64 {
	e := 0.0
	for i, b := range r {
		e += 0.5 * b.Mass * b.Vel.NormSq()
		for j := i + 1; j < len(r); j++ {
			e += m.PairEnergy(b.Mass, r[j].Mass, b.Pos.Dist(r[j].Pos))
		}
	}
	return e
}
