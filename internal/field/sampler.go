// Package field samples the scalar potential of the live system over
// a view-aligned grid and extracts iso-potential point sets for
// contour rendering.
package field

import (
	"math"

	"github.com/orbitlab/orbitsim/internal/body"
	"github.com/orbitlab/orbitsim/internal/physics"
	"github.com/orbitlab/orbitsim/internal/vec"
)

// Defaults tuned for the inverse-square law at solar-system masses.
const (
	DefaultStep = 1e-4 // potential difference between contour lines
	DefaultTol  = 2e-5 // acceptable distance from an exact multiple
)

// Sampler extracts world-coordinate points whose summed potential
// lies within Tol of a multiple of Step.
type Sampler struct {
	Model physics.Model
	Step  float64
	Tol   float64
}

// NewSampler returns a sampler with default contour spacing.
func NewSampler(m physics.Model) Sampler {
	return Sampler{Model: m, Step: DefaultStep, Tol: DefaultTol}
}

// Sample walks a gridW x gridH grid spanning a screenW x screenH view
// area, converts each cell centre to world coordinates through
// toWorld, and collects the contour points. Cost is
// O(gridW * gridH * len(bodies)); callers run it on demand while the
// simulation is paused, never per tick.
func (s Sampler) Sample(bodies []*body.Body, gridW, gridH int, screenW, screenH float64, toWorld func(vec.Vec2) vec.Vec2) []vec.Vec2 {
	if len(bodies) == 0 || gridW <= 0 || gridH <= 0 {
		return nil
	}

	var points []vec.Vec2
	for x := 0; x < gridW; x++ {
		for y := 0; y < gridH; y++ {
			p := toWorld(vec.Vec2{
				X: float64(x) * screenW / float64(gridW),
				Y: float64(y) * screenH / float64(gridH),
			})
			pot := 0.0
			for _, b := range bodies {
				pot += s.Model.Potential(p, b)
			}
			if math.Mod(pot, s.Step) < s.Tol {
				points = append(points, p)
			}
		}
	}
	return points
}
