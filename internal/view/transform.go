package view

import (
	"math"

	"github.com/orbitlab/orbitsim/internal/vec"
)

const (
	// DefaultScale is the initial zoom in pixels per AU.
	DefaultScale = 24.0

	// ZoomStep is the multiplicative scale change per zoom request.
	ZoomStep = 1.05

	// DefaultScrollSpeed is the world-unit pan distance per pan
	// request at the default zoom.
	DefaultScrollSpeed = 0.25
)

// Transform maps between world (AU) coordinates and view (pixel)
// coordinates:
//
//	view = (world - ViewCentre + Shift) * Scale + ScreenCentre
//
// Zoom and pan are independent; recentring swaps ViewCentre only, so
// zoom/pan state persists across reference changes.
type Transform struct {
	Scale        float64
	Shift        vec.Vec2
	ViewCentre   vec.Vec2
	ScreenCentre vec.Vec2

	scrollSpeed float64
}

// NewTransform creates a transform centred on a screen of the given
// pixel dimensions.
func NewTransform(screenW, screenH float64) *Transform {
	return &Transform{
		Scale:        DefaultScale,
		ScreenCentre: vec.Vec2{X: screenW / 2, Y: screenH / 2},
		scrollSpeed:  DefaultScrollSpeed,
	}
}

// ToView converts a world position to view coordinates.
func (t *Transform) ToView(world vec.Vec2) vec.Vec2 {
	return world.Sub(t.ViewCentre).Add(t.Shift).Scale(t.Scale).Add(t.ScreenCentre)
}

// ToWorld is the exact inverse of ToView.
func (t *Transform) ToWorld(view vec.Vec2) vec.Vec2 {
	return view.Sub(t.ScreenCentre).Scale(1 / t.Scale).Sub(t.Shift).Add(t.ViewCentre)
}

// ZoomIn increases the scale one step. Scroll speed shrinks in
// proportion so panning stays smooth at high zoom.
func (t *Transform) ZoomIn() {
	t.Scale *= ZoomStep
	t.scrollSpeed /= ZoomStep
}

// ZoomOut decreases the scale one step.
func (t *Transform) ZoomOut() {
	t.Scale /= ZoomStep
	t.scrollSpeed *= ZoomStep
}

// Pan shifts the view by one scroll step in the given direction
// (unit-ish direction vector; components outside [-1,1] overdrive).
func (t *Transform) Pan(dx, dy float64) {
	t.Shift = t.Shift.Add(vec.Vec2{X: dx, Y: dy}.Scale(t.scrollSpeed))
}

// Recentre moves the view centre to a new world position, leaving
// zoom and pan untouched.
func (t *Transform) Recentre(pos vec.Vec2) {
	t.ViewCentre = pos
}

// DisplayRadius maps a physical radius in km onto a log scale in
// world units. Drawn to true scale most bodies would be
// indistinguishable sub-pixel dots.
func DisplayRadius(radius float64) float64 {
	return 2.5 * (math.Log10(radius)/100.0 - 0.030)
}
