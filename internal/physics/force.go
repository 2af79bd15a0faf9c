package physics

import (
	"math"

	"github.com/orbitlab/orbitsim/internal/body"
	"github.com/orbitlab/orbitsim/internal/vec"
)

const (
	// G is the gravitational constant in AU^3/(day^2 kg).
	G = 1.4881314e-34

	// InverseSquare is the force-law exponent for Newtonian gravity.
	InverseSquare = -2.0
)

// Model is a generalized pairwise inverse-power attraction law:
//
//	F = G * m_a * m_b * |r|^Power * r_hat
//
// Power = -2 gives Newtonian gravity; other exponents express other
// power laws or artificial force fields. Nothing outside this package
// may assume inverse-square behavior.
type Model struct {
	G     float64
	Power float64
}

// NewModel returns a model with the physical gravitational constant
// and the given force-law exponent.
func NewModel(power float64) Model {
	return Model{G: G, Power: power}
}

// Force returns the force on a due to b. Coincident bodies yield the
// zero vector: a true collision is resolved by the collision pass in
// the same tick, so the degenerate force is discarded, not an error.
func (m Model) Force(a, b *body.Body) vec.Vec2 {
	r := b.Pos.Sub(a.Pos)
	r2 := r.NormSq()
	if r2 == 0 {
		return vec.Vec2{}
	}
	mag := m.G * a.Mass * b.Mass * math.Pow(r2, m.Power/2)
	return r.Scale(mag / math.Sqrt(r2))
}

// Potential returns the scalar potential at a point due to a body,
// using the antiderivative relationship for the configured exponent:
// G * m * |r|^(Power+1). Zero when the point coincides with the body.
func (m Model) Potential(p vec.Vec2, b *body.Body) float64 {
	r := b.Pos.Sub(p)
	r2 := r.NormSq()
	if r2 == 0 {
		return 0
	}
	return m.G * b.Mass * math.Pow(r2, (m.Power+1)/2)
}

// PairEnergy returns the potential energy of a body pair at
// separation dist, from integrating the force law: for Power != -1,
// G*m1*m2*|r|^(Power+1)/(Power+1); logarithmic at Power = -1.
func (m Model) PairEnergy(m1, m2, dist float64) float64 {
	if dist == 0 {
		return 0
	}
	if m.Power == -1 {
		return m.G * m1 * m2 * math.Log(dist)
	}
	p1 := m.Power + 1
	return m.G * m1 * m2 * math.Pow(dist, p1) / p1
}
