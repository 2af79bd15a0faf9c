// Package metrics observes registry state across a headless run and
// reduces it to summary values stored with run artifacts.
package metrics

import (
	"math"

	"github.com/orbitlab/orbitsim/internal/engine"
	"github.com/orbitlab/orbitsim/internal/physics"
)

type Metric interface {
	Name() string
	Observe(reg engine.Registry, t float64)
	Value() float64
	Reset()
}

// EnergyDrift tracks the maximum relative deviation of total energy
// from its first observation. Explicit Euler does not conserve energy
// exactly, so this is a step-size quality signal, not an invariant.
type EnergyDrift struct {
	model   physics.Model
	initial float64
	max     float64
	samples int
}

func NewEnergyDrift(m physics.Model) *EnergyDrift {
	return &EnergyDrift{model: m}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(reg engine.Registry, t float64) {
	energy := reg.Energy(e.model)
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++
	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.max = math.Max(e.max, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.max }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.max = 0
	e.samples = 0
}

// MomentumDrift tracks the maximum norm of the difference between the
// current total momentum and the first observation. Invariant (up to
// float noise) while the origin sentinel is the reference frame.
type MomentumDrift struct {
	initialX, initialY float64
	max                float64
	samples            int
}

func NewMomentumDrift() *MomentumDrift { return &MomentumDrift{} }

func (m *MomentumDrift) Name() string { return "momentum_drift" }

func (m *MomentumDrift) Observe(reg engine.Registry, t float64) {
	p := reg.Momentum()
	if m.samples == 0 {
		m.initialX, m.initialY = p.X, p.Y
	}
	m.samples++
	dx, dy := p.X-m.initialX, p.Y-m.initialY
	m.max = math.Max(m.max, math.Hypot(dx, dy))
}

func (m *MomentumDrift) Value() float64 { return m.max }

func (m *MomentumDrift) Reset() {
	m.initialX, m.initialY = 0, 0
	m.max = 0
	m.samples = 0
}

// BodyCount reports the final registry size, which shrinks as merges
// happen.
type BodyCount struct {
	count int
}

func NewBodyCount() *BodyCount { return &BodyCount{} }

func (b *BodyCount) Name() string { return "bodies" }

func (b *BodyCount) Observe(reg engine.Registry, t float64) {
	b.count = len(reg)
}

func (b *BodyCount) Value() float64 { return float64(b.count) }

func (b *BodyCount) Reset() { b.count = 0 }
