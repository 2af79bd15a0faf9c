package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/orbitlab/orbitsim/internal/body"
	"github.com/orbitlab/orbitsim/internal/engine"
	"github.com/orbitlab/orbitsim/internal/vec"
	"github.com/orbitlab/orbitsim/internal/view"
)

func scene() (engine.Registry, *view.Transform) {
	sun := body.New(1.989e30, 696000, vec.Vec2{}, vec.Vec2{}, body.Colour{R: 255, G: 220, B: 60}, "Sun")
	earth := body.New(5.972e24, 6371, vec.Vec2{X: 1}, vec.Vec2{Y: 0.0172}, body.Colour{R: 70, G: 130, B: 255}, "Earth")
	for i := 0; i < 5; i++ {
		earth.Record(100)
		earth.Move(1)
	}
	return engine.Registry{sun, earth}, view.NewTransform(800, 600)
}

func TestSceneSVG(t *testing.T) {
	reg, tr := scene()
	svg := SceneSVG(reg, tr, []vec.Vec2{{X: 2, Y: 2}}, 800, 600)

	for _, want := range []string{
		"<svg", "</svg>",
		"<circle",
		">Sun</text>",
		">Earth</text>",
		"#ffdc3c", // sun colour
		"<polyline",
		`<rect x=`, // contour point
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q", want)
		}
	}

	if strings.Count(svg, "<circle") != 2 {
		t.Errorf("expected 2 body discs, got %d", strings.Count(svg, "<circle"))
	}
}

func TestSceneSVGEscapesNames(t *testing.T) {
	b := body.New(1, 1e5, vec.Vec2{}, vec.Vec2{}, body.Colour{}, "a<b&c")
	svg := SceneSVG(engine.Registry{b}, view.NewTransform(100, 100), nil, 100, 100)
	if strings.Contains(svg, "a<b&c") {
		t.Error("name not escaped")
	}
	if !strings.Contains(svg, "a&lt;b&amp;c") {
		t.Error("expected escaped name")
	}
}

func TestWriteScene(t *testing.T) {
	reg, tr := scene()
	path := filepath.Join(t.TempDir(), "scene.svg")
	if err := WriteScene(path, reg, tr, nil, 800, 600); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "<?xml") {
		t.Error("unexpected file contents")
	}
}
