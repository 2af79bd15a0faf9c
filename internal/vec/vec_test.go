package vec

import (
	"math"
	"testing"
)

func TestArithmetic(t *testing.T) {
	a := Vec2{3, 4}
	b := Vec2{-1, 2}

	if got := a.Add(b); got != (Vec2{2, 6}) {
		t.Errorf("Add: got %v", got)
	}
	if got := a.Sub(b); got != (Vec2{4, 2}) {
		t.Errorf("Sub: got %v", got)
	}
	if got := a.Scale(2); got != (Vec2{6, 8}) {
		t.Errorf("Scale: got %v", got)
	}
	if got := a.Neg(); got != (Vec2{-3, -4}) {
		t.Errorf("Neg: got %v", got)
	}
}

func TestDotAndNorm(t *testing.T) {
	a := Vec2{3, 4}
	b := Vec2{-1, 2}

	if got := a.Dot(b); got != 5 {
		t.Errorf("Dot: expected 5, got %f", got)
	}
	if got := a.Norm(); got != 5 {
		t.Errorf("Norm: expected 5, got %f", got)
	}
	if got := a.NormSq(); got != 25 {
		t.Errorf("NormSq: expected 25, got %f", got)
	}
}

func TestDist(t *testing.T) {
	a := Vec2{1, 1}
	b := Vec2{4, 5}
	if got := a.Dist(b); math.Abs(got-5) > 1e-12 {
		t.Errorf("Dist: expected 5, got %f", got)
	}
}
