package engine

import (
	"math"

	"github.com/orbitlab/orbitsim/internal/body"
	"github.com/orbitlab/orbitsim/internal/physics"
	"github.com/orbitlab/orbitsim/internal/vec"
	"github.com/orbitlab/orbitsim/internal/view"
)

// Defaults for the per-tick simulation parameters. Units follow the
// system description: days for time, AU for distance.
const (
	DefaultDt          = 1.0
	DefaultDtStep      = 0.5
	DefaultTraceCap    = 1000
	DefaultTracePeriod = 4
)

// Options configures a new engine.
type Options struct {
	ForcePower  float64 // force-law exponent, -2 for gravity
	Dt          float64 // days per tick, may be negative
	TraceCap    int
	TracePeriod int
}

// Engine owns the live registry and advances it tick by tick. It is
// single-threaded: one full step settles before any state is read for
// rendering, and nothing outside the engine mutates the registry.
type Engine struct {
	model  physics.Model
	reg    Registry
	backup Registry

	// origin is the fixed zero-mass frame anchor; centre is the
	// active reference (velocity subtraction, switched instantly on
	// selection) and viewRef the view reference (coordinate centring,
	// switched only on an explicit recentre).
	origin  *body.Body
	centre  *body.Body
	viewRef *body.Body

	dt          float64
	dtStep      float64
	paused      bool
	tracing     bool
	traceCap    int
	tracePeriod int
	tick        int

	contours []vec.Vec2
}

// New builds an engine from an initial system description. The backup
// snapshot is constructed independently so no runtime mutation can
// reach it. The simulation starts paused.
func New(records []body.Record, opts Options) *Engine {
	if opts.Dt == 0 {
		opts.Dt = DefaultDt
	}
	if opts.TraceCap == 0 {
		opts.TraceCap = DefaultTraceCap
	}
	if opts.TracePeriod == 0 {
		opts.TracePeriod = DefaultTracePeriod
	}

	reg := make(Registry, len(records))
	backup := make(Registry, len(records))
	for i, rec := range records {
		reg[i] = rec.Build()
		backup[i] = rec.Build()
	}

	origin := body.Sentinel()
	return &Engine{
		model:       physics.NewModel(opts.ForcePower),
		reg:         reg,
		backup:      backup,
		origin:      origin,
		centre:      origin,
		viewRef:     origin,
		dt:          opts.Dt,
		dtStep:      DefaultDtStep,
		paused:      true,
		traceCap:    opts.TraceCap,
		tracePeriod: opts.TracePeriod,
	}
}

// Bodies returns the live registry. Callers treat it as a read-only
// view of a fully settled post-tick state.
func (e *Engine) Bodies() Registry { return e.reg }

// Model returns the force model in effect.
func (e *Engine) Model() physics.Model { return e.model }

// Reference returns the active reference-frame body.
func (e *Engine) Reference() *body.Body { return e.centre }

// ViewReference returns the body the view is centred on.
func (e *Engine) ViewReference() *body.Body { return e.viewRef }

func (e *Engine) Dt() float64      { return e.dt }
func (e *Engine) SetDt(dt float64) { e.dt = dt }

// SpeedUp / SlowDown adjust dt by the fixed step; dt may pass through
// zero and go negative, which runs time in reverse.
func (e *Engine) SpeedUp()  { e.dt += e.dtStep }
func (e *Engine) SlowDown() { e.dt -= e.dtStep }

func (e *Engine) Paused() bool     { return e.paused }
func (e *Engine) SetPaused(p bool) { e.paused = p }
func (e *Engine) TogglePause()     { e.paused = !e.paused }
func (e *Engine) Tracing() bool    { return e.tracing }
func (e *Engine) Ticks() int       { return e.tick }
func (e *Engine) Time() float64    { return float64(e.tick) * e.dt }

// ToggleTrace flips path tracing and clears stale history either way.
func (e *Engine) ToggleTrace() {
	e.tracing = !e.tracing
	e.clearTraces()
}

// Select makes b the active reference frame. The view centre is
// untouched until an explicit Recentre, enabling a smooth view cut.
func (e *Engine) Select(b *body.Body) {
	if b == nil {
		return
	}
	e.centre = b
}

// Recentre snaps the view reference to the active reference and
// clears traces, which were drawn relative to the old frame.
func (e *Engine) Recentre() {
	e.viewRef = e.centre
	e.clearTraces()
}

// Reset restores the backup snapshot: the sole recovery mechanism for
// a degenerate live state.
func (e *Engine) Reset() {
	e.reg = e.backup.Clone()
	e.centre = e.origin
	e.viewRef = e.origin
	e.contours = nil
	e.tick = 0
	e.clearTraces()
}

func (e *Engine) clearTraces() {
	for _, b := range e.reg {
		b.ClearTrace()
	}
}

// SetContours installs (or, with nil, clears) the active iso-potential
// point set. The engine never computes contours itself; the sampler
// runs on demand while paused.
func (e *Engine) SetContours(points []vec.Vec2) { e.contours = points }

// Contours returns the active contour point set, nil when off.
func (e *Engine) Contours() []vec.Vec2 { return e.contours }

// BodyAt returns the nearest body whose display disc (plus the pick
// radius and collision slack) contains the given world point, or nil.
func (e *Engine) BodyAt(p vec.Vec2, pickRadius float64) *body.Body {
	var best *body.Body
	bestDist := math.Inf(1)
	for _, b := range e.reg {
		d := b.Pos.Dist(p)
		if d < view.DisplayRadius(b.Radius)+pickRadius+CollisionSlack && d < bestDist {
			best, bestDist = b, d
		}
	}
	return best
}

// Step advances the simulation one tick: pairwise impulses from
// tick-start positions, collision resolution, rest-frame recentring,
// then position advance and trace recording on cadence. Callers gate
// on Paused; Step itself always runs.
func (e *Engine) Step() {
	e.applyImpulses()
	e.resolveCollisions()

	// Captured once: boosting the reference body itself would
	// otherwise change the subtracted velocity mid-loop.
	refVel := e.centre.Vel
	for _, b := range e.reg {
		b.Boost(refVel.Neg())
	}
	for _, b := range e.reg {
		b.Move(e.dt)
	}

	e.tick++
	if e.tracing && e.tick%e.tracePeriod == 0 {
		for _, b := range e.reg {
			b.Record(e.traceCap)
		}
	}
}

// applyImpulses accumulates symmetric velocity impulses for every
// unordered pair. Positions are untouched here, so all forces in a
// tick see tick-start positions: explicit Euler, first-order local
// truncation error by construction.
func (e *Engine) applyImpulses() {
	n := len(e.reg)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			f := e.model.Force(e.reg[i], e.reg[j])
			e.reg[i].Boost(impulse(f, e.dt, e.reg[i].Mass))
			e.reg[j].Boost(impulse(f, -e.dt, e.reg[j].Mass))
		}
	}
}

// impulse is dt/m * F, defined as zero for the zero-mass sentinel
// rather than propagating a division fault.
func impulse(f vec.Vec2, dt, mass float64) vec.Vec2 {
	if mass == 0 {
		return vec.Vec2{}
	}
	return f.Scale(dt / mass)
}
