package body

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/orbitlab/orbitsim/internal/vec"
)

func TestMassLabel(t *testing.T) {
	b := New(1.989e30, 696000, vec.Vec2{}, vec.Vec2{}, Colour{255, 255, 0}, "")
	if b.Name != "1.99E+30kg" {
		t.Errorf("expected mass-derived name, got %q", b.Name)
	}
	if !MassDerived(b.Name) {
		t.Error("expected name to be mass-derived")
	}
	if MassDerived("Earth") {
		t.Error("named body should not be mass-derived")
	}
}

func TestMergeName(t *testing.T) {
	a := New(10, 1, vec.Vec2{}, vec.Vec2{}, Colour{}, "Alpha")
	b := New(10, 1, vec.Vec2{}, vec.Vec2{}, Colour{}, "Beta")
	anon := New(10, 1, vec.Vec2{}, vec.Vec2{}, Colour{}, "")

	if got := MergeName(a, b, 20); got != "Alpha" {
		t.Errorf("expected lower-indexed name kept, got %q", got)
	}
	if got := MergeName(a, anon, 20); got != MassLabel(20) {
		t.Errorf("expected regenerated label, got %q", got)
	}
}

func TestColourBlend(t *testing.T) {
	c := Colour{200, 100, 0}.Blend(Colour{100, 200, 50})
	if c != (Colour{150, 150, 25}) {
		t.Errorf("unexpected blend: %+v", c)
	}
}

func TestTraceFIFOCap(t *testing.T) {
	b := New(1, 1, vec.Vec2{}, vec.Vec2{X: 1}, Colour{}, "probe")
	const cap = 5
	for i := 0; i < 3*cap; i++ {
		b.Move(1)
		b.Record(cap)
	}
	trace := b.Trace()
	if len(trace) != cap {
		t.Fatalf("expected %d trace points, got %d", cap, len(trace))
	}
	// Oldest entries evicted first: surviving positions are the last cap.
	for i, tp := range trace {
		wantX := float64(2*cap + 1 + i)
		if tp.Pos.X != wantX {
			t.Errorf("trace[%d]: expected x=%g, got %g", i, wantX, tp.Pos.X)
		}
		if tp.Radius != TraceMarkerRadius {
			t.Errorf("trace[%d]: unexpected marker radius %g", i, tp.Radius)
		}
	}

	b.ClearTrace()
	if len(b.Trace()) != 0 {
		t.Error("expected empty trace after clear")
	}
}

func TestCloneIsDeep(t *testing.T) {
	b := New(1, 1, vec.Vec2{}, vec.Vec2{X: 1}, Colour{}, "probe")
	b.Record(10)
	c := b.Clone()
	c.Move(5)
	c.Record(10)

	if b.Pos == c.Pos {
		t.Error("clone shares position state")
	}
	if len(b.Trace()) != 1 || len(c.Trace()) != 2 {
		t.Errorf("clone shares trace: %d vs %d", len(b.Trace()), len(c.Trace()))
	}
}

func TestSentinel(t *testing.T) {
	s := Sentinel()
	if !s.IsSentinel() {
		t.Error("sentinel not recognized")
	}
	b := New(10, 1, vec.Vec2{}, vec.Vec2{}, Colour{}, "x")
	if b.IsSentinel() {
		t.Error("live body misclassified as sentinel")
	}
}

func TestParseSystem(t *testing.T) {
	doc := `MASS COEFF;MASS POWER;RADIUS;POSITION;VELOCITY;COLOUR;NAME
1.989;30;696000;(0,0);(0,0);(255,220,0);Sol
5.972;24;6371;(1.0,0);(0,0.0172);(70,130,255);
`
	records, err := ParseSystem(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	sun := records[0].Build()
	if sun.Name != "Sol" {
		t.Errorf("expected name Sol, got %q", sun.Name)
	}
	if sun.Mass != 1.989e30 {
		t.Errorf("expected mass 1.989e30, got %g", sun.Mass)
	}

	earth := records[1].Build()
	if !MassDerived(earth.Name) {
		t.Errorf("unnamed body should get mass label, got %q", earth.Name)
	}
	if earth.Vel != (vec.Vec2{X: 0, Y: 0.0172}) {
		t.Errorf("unexpected velocity %v", earth.Vel)
	}
}

func TestParseSystemErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"too few fields", "1.0;30;100;(0,0);(0,0);(1,2,3)"},
		{"bad coefficient", "x;30;100;(0,0);(0,0);(1,2,3);a"},
		{"bad power", "1.0;p;100;(0,0);(0,0);(1,2,3);a"},
		{"bad tuple", "1.0;30;100;0,0;(0,0);(1,2,3);a"},
		{"bad colour arity", "1.0;30;100;(0,0);(0,0);(1,2);a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := "HEADER\n" + tt.line + "\n"
			if _, err := ParseSystem(strings.NewReader(doc)); err == nil {
				t.Error("expected parse error, got nil")
			}
		})
	}
}

func TestRandomRecords(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	records := RandomRecords(20, rng)
	if len(records) != 20 {
		t.Fatalf("expected 20 records, got %d", len(records))
	}
	for i, r := range records {
		if r.Coeff < 0.01 || r.Coeff > 9.0 {
			t.Errorf("record %d: coefficient %g out of range", i, r.Coeff)
		}
		if r.Power < 20 || r.Power > 32 {
			t.Errorf("record %d: power %d out of range", i, r.Power)
		}
		if r.Radius < 1000 || r.Radius > 1e6 {
			t.Errorf("record %d: radius %g out of range", i, r.Radius)
		}
		if r.Name != "" {
			t.Errorf("record %d: random bodies are unnamed", i)
		}
		if b := r.Build(); b.Mass <= 0 {
			t.Errorf("record %d: non-positive mass", i)
		}
	}
}
