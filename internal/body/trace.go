package body

import "github.com/orbitlab/orbitsim/internal/vec"

// TraceMarkerRadius is the fixed world-unit radius of recorded trace
// dots.
const TraceMarkerRadius = 0.001

// TracePoint is one past-position sample, oldest-first in the buffer.
type TracePoint struct {
	Pos    vec.Vec2
	Radius float64
	Colour Colour
}

// Record appends the current position to the trace history. When the
// buffer is at capacity the oldest entry is dropped first.
func (b *Body) Record(cap int) {
	if cap <= 0 {
		return
	}
	if len(b.trace) >= cap {
		b.trace = b.trace[1:]
	}
	b.trace = append(b.trace, TracePoint{
		Pos:    b.Pos,
		Radius: TraceMarkerRadius,
		Colour: b.Colour,
	})
}

// Trace returns the recorded history, oldest first. Callers must not
// mutate the returned slice.
func (b *Body) Trace() []TracePoint {
	return b.trace
}

// ClearTrace empties the history. Old trace points are drawn relative
// to the previous reference frame and become meaningless after
// recentring, so the engine clears on frame switches and resets.
func (b *Body) ClearTrace() {
	b.trace = nil
}
