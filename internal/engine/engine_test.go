package engine

import (
	"context"
	"math"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/orbitlab/orbitsim/internal/body"
	"github.com/orbitlab/orbitsim/internal/physics"
	"github.com/orbitlab/orbitsim/internal/vec"
)

// rec builds a body record with a radius large enough to have a
// positive display disc (the log radius scale goes positive above
// 10^3 km).
func rec(coeff float64, power int, radius, x, y, vx, vy float64) body.Record {
	return body.Record{
		Coeff: coeff, Power: power, Radius: radius,
		Pos: [2]float64{x, y}, Vel: [2]float64{vx, vy},
		Colour: [3]int{100, 100, 100},
	}
}

func newEngine(records ...body.Record) *Engine {
	e := New(records, Options{ForcePower: physics.InverseSquare, Dt: 1})
	e.SetPaused(false)
	return e
}

func TestMomentumInvariantWithoutCollisions(t *testing.T) {
	g := NewWithT(t)

	// Well separated bodies: forces act but nothing merges.
	e := newEngine(
		rec(1.989, 30, 696000, 0, 0, 0, 0),
		rec(5.972, 24, 6371, 10, 0, 0, 0.0172),
		rec(6.417, 23, 3390, 0, 15, -0.0139, 0),
	)

	before := e.Bodies().Momentum()
	for i := 0; i < 50; i++ {
		e.Step()
	}
	g.Expect(len(e.Bodies())).To(Equal(3))

	after := e.Bodies().Momentum()
	// The rest-frame subtraction uses the zero-velocity origin
	// sentinel here, so momentum must be untouched.
	g.Expect(after.Sub(before).Norm()).To(BeNumerically("<", 1e-12*math.Max(before.Norm(), 1)))
}

func TestMergeConservesMassAndMomentum(t *testing.T) {
	g := NewWithT(t)

	// Radii chosen large enough that the display discs overlap.
	e := newEngine(
		rec(10, 0, 10000, 0, 0, 1, 0),
		rec(10, 0, 10000, 0.01, 0, -1, 0),
	)
	e.Step()

	reg := e.Bodies()
	g.Expect(len(reg)).To(Equal(1))

	m := reg[0]
	g.Expect(m.Mass).To(Equal(20.0))
	g.Expect(m.Vel.Norm()).To(BeNumerically("~", 0, 1e-12))
	g.Expect(m.Radius).To(BeNumerically("~", math.Cbrt(2)*10000, 1e-6))
	// Merged body sits at the lower-indexed parent's position, then
	// advances by its (zero) velocity.
	g.Expect(m.Pos).To(Equal(vec.Vec2{}))
}

func TestTripleOverlapSingleConsumption(t *testing.T) {
	g := NewWithT(t)

	e := newEngine(
		rec(1, 1, 10000, 0, 0, 0, 0),
		rec(2, 1, 10000, 0.01, 0, 0, 0),
		rec(3, 1, 10000, 0, 0.01, 0, 0),
	)
	e.Step()

	reg := e.Bodies()
	g.Expect(len(reg)).To(Equal(1))
	g.Expect(reg[0].Mass).To(Equal(60.0))
	for _, b := range reg {
		g.Expect(b.IsSentinel()).To(BeFalse(), "sentinels must not survive the tick")
	}
}

func TestMergedColourAndName(t *testing.T) {
	g := NewWithT(t)

	a := body.Record{Coeff: 1, Power: 1, Radius: 10000, Colour: [3]int{200, 0, 100}, Name: "Alpha"}
	b := body.Record{Coeff: 1, Power: 1, Radius: 10000, Pos: [2]float64{0.01, 0}, Colour: [3]int{0, 200, 100}, Name: "Beta"}
	e := newEngine(a, b)
	e.Step()

	m := e.Bodies()[0]
	g.Expect(m.Colour).To(Equal(body.Colour{R: 100, G: 100, B: 100}))
	g.Expect(m.Name).To(Equal("Alpha"))
}

func TestRestFrameSubtraction(t *testing.T) {
	g := NewWithT(t)

	e := newEngine(
		rec(5.972, 24, 6371, 0, 0, 0.01, 0.02),
		rec(6.417, 23, 3390, 20, 0, 0, 0),
	)
	target := e.Bodies()[0]
	e.Select(target)
	e.Step()

	// The reference body is exactly at rest after its own velocity is
	// subtracted from every body.
	g.Expect(target.Vel.Norm()).To(BeNumerically("~", 0, 1e-15))
}

func TestSelectAndRecentreAreDistinct(t *testing.T) {
	g := NewWithT(t)

	e := newEngine(rec(1, 24, 6371, 3, 4, 0, 0))
	b := e.Bodies()[0]

	e.Select(b)
	g.Expect(e.Reference()).To(BeIdenticalTo(b))
	g.Expect(e.ViewReference()).NotTo(BeIdenticalTo(b), "view centre switches only on recentre")

	e.Recentre()
	g.Expect(e.ViewReference()).To(BeIdenticalTo(b))
}

func TestMergeRepointsReferenceFrame(t *testing.T) {
	g := NewWithT(t)

	e := newEngine(
		rec(10, 0, 10000, 0, 0, 0, 0),
		rec(10, 0, 10000, 0.01, 0, 0, 0),
	)
	absorbed := e.Bodies()[1]
	e.Select(absorbed)
	e.Recentre()
	e.Step()

	g.Expect(e.Reference()).To(BeIdenticalTo(e.Bodies()[0]))
	g.Expect(e.ViewReference()).To(BeIdenticalTo(e.Bodies()[0]))
}

func TestZeroMassImpulseIsZero(t *testing.T) {
	g := NewWithT(t)

	f := vec.Vec2{X: 1, Y: 1}
	g.Expect(impulse(f, 1, 0)).To(Equal(vec.Vec2{}))
	g.Expect(impulse(f, 2, 4)).To(Equal(vec.Vec2{X: 0.5, Y: 0.5}))
}

func TestNegativeDtReversesMotion(t *testing.T) {
	g := NewWithT(t)

	e := newEngine(rec(1, 10, 6371, 0, 0, 0.5, 0))
	e.Step()
	g.Expect(e.Bodies()[0].Pos.X).To(BeNumerically(">", 0))

	e.SetDt(-1)
	e.Step()
	g.Expect(e.Bodies()[0].Pos.X).To(BeNumerically("~", 0, 1e-12))
}

func TestResetRestoresBackup(t *testing.T) {
	g := NewWithT(t)

	e := newEngine(
		rec(1.989, 30, 696000, 0, 0, 0, 0),
		rec(5.972, 24, 6371, 10, 0, 0, 0.0172),
	)
	first := e.Bodies()[0]
	e.Select(first)
	for i := 0; i < 10; i++ {
		e.Step()
	}

	e.Reset()
	reg := e.Bodies()
	g.Expect(len(reg)).To(Equal(2))
	g.Expect(reg[0]).NotTo(BeIdenticalTo(first), "reset must build distinct identities")
	g.Expect(reg[0].Pos).To(Equal(vec.Vec2{}))
	g.Expect(reg[1].Pos).To(Equal(vec.Vec2{X: 10}))
	g.Expect(e.Reference().IsSentinel()).To(BeTrue())
	g.Expect(e.Ticks()).To(Equal(0))
}

func TestTraceCadence(t *testing.T) {
	g := NewWithT(t)

	e := New([]body.Record{rec(1, 10, 6371, 0, 0, 0.1, 0)},
		Options{ForcePower: physics.InverseSquare, Dt: 1, TracePeriod: 4, TraceCap: 100})
	e.SetPaused(false)
	e.ToggleTrace()

	for i := 0; i < 8; i++ {
		e.Step()
	}
	g.Expect(len(e.Bodies()[0].Trace())).To(Equal(2))

	e.ToggleTrace()
	g.Expect(e.Bodies()[0].Trace()).To(BeEmpty(), "toggling clears stale traces")
}

func TestBodyAtPicksNearest(t *testing.T) {
	g := NewWithT(t)

	e := newEngine(
		rec(1, 24, 1e6, 0, 0, 0, 0),
		rec(1, 24, 1e6, 0.04, 0, 0, 0),
	)
	hit := e.BodyAt(vec.Vec2{X: 0.03, Y: 0}, 0.01)
	g.Expect(hit).To(BeIdenticalTo(e.Bodies()[1]))

	g.Expect(e.BodyAt(vec.Vec2{X: 50, Y: 50}, 0.01)).To(BeNil())
}

func TestRunHonorsStepsAndContext(t *testing.T) {
	g := NewWithT(t)

	e := newEngine(rec(1, 10, 6371, 0, 0, 0.1, 0))
	ticks := 0
	err := e.Run(context.Background(), 0, 5, func(int) bool {
		ticks++
		return true
	})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(ticks).To(Equal(5))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = e.Run(ctx, 0, 5, nil)
	g.Expect(err).To(MatchError(context.Canceled))
}

func TestEnergyDiagnostic(t *testing.T) {
	g := NewWithT(t)

	reg := Registry{
		body.New(2, 1, vec.Vec2{}, vec.Vec2{X: 1}, body.Colour{}, ""),
		body.New(3, 1, vec.Vec2{X: 4}, vec.Vec2{}, body.Colour{}, ""),
	}
	m := physics.Model{G: 1, Power: physics.InverseSquare}
	// KE = 0.5*2*1 = 1; PE = -2*3/4 = -1.5.
	g.Expect(reg.Energy(m)).To(BeNumerically("~", -0.5, 1e-12))
	g.Expect(reg.TotalMass()).To(Equal(5.0))
	g.Expect(reg.Momentum()).To(Equal(vec.Vec2{X: 2}))
}
