package engine

import (
	"math"

	"github.com/orbitlab/orbitsim/internal/body"
	"github.com/orbitlab/orbitsim/internal/view"
)

// CollisionSlack widens collision detection by a fixed world-unit
// margin so fast bodies cannot tunnel past each other within one tick.
// It over-detects by the same amount.
const CollisionSlack = 0.05

// collides reports overlap of the display-scaled discs plus slack.
func collides(a, b *body.Body) bool {
	dist := a.Pos.Dist(b.Pos)
	return dist < view.DisplayRadius(a.Radius)+view.DisplayRadius(b.Radius)+CollisionSlack
}

// resolveCollisions scans all pairs in ascending order and merges
// overlapping ones. The lower-indexed slot takes the merged body and
// stays eligible for further merges this tick; the higher-indexed slot
// becomes a sentinel tombstone and sits out the rest of the scan. The
// bookkeeping is computed fully before the registry is compacted, so
// no index ever shifts mid-scan.
func (e *Engine) resolveCollisions() {
	n := len(e.reg)
	removed := make([]bool, n)
	any := false

	for i := 0; i < n; i++ {
		if removed[i] {
			continue
		}
		for j := i + 1; j < n; j++ {
			if removed[j] {
				continue
			}
			if !collides(e.reg[i], e.reg[j]) {
				continue
			}
			m := merge(e.reg[i], e.reg[j])
			e.repoint(e.reg[i], m)
			e.repoint(e.reg[j], m)
			e.reg[i] = m
			e.reg[j] = body.Sentinel()
			removed[j] = true
			any = true
		}
	}

	if !any {
		return
	}
	next := make(Registry, 0, n)
	for i, b := range e.reg {
		if removed[i] {
			continue
		}
		next = append(next, b)
	}
	e.reg = next
}

// merge combines two colliding bodies: masses sum, radii combine
// volume-conservingly, velocity is the momentum-weighted average, the
// position is the lower-indexed body's (a deliberate simplification
// over the barycenter), colour is the component-wise average and the
// name follows body.MergeName.
func merge(a, b *body.Body) *body.Body {
	mass := a.Mass + b.Mass
	radius := math.Cbrt(a.Radius*a.Radius*a.Radius + b.Radius*b.Radius*b.Radius)
	vel := a.Vel.Scale(a.Mass).Add(b.Vel.Scale(b.Mass))
	if mass != 0 {
		vel = vel.Scale(1 / mass)
	}
	return body.New(mass, radius, a.Pos, vel, a.Colour.Blend(b.Colour), body.MergeName(a, b, mass))
}

// repoint keeps the frame invariant: when a merge consumes a body one
// of the frame pointers referenced, the frame follows the merged body.
func (e *Engine) repoint(old, merged *body.Body) {
	if e.centre == old {
		e.centre = merged
	}
	if e.viewRef == old {
		e.viewRef = merged
	}
}
