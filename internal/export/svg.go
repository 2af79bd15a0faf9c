// Package export renders a settled simulation state to SVG: body
// discs, trace paths and contour points, all mapped through the view
// transform.
package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/orbitlab/orbitsim/internal/body"
	"github.com/orbitlab/orbitsim/internal/engine"
	"github.com/orbitlab/orbitsim/internal/vec"
	"github.com/orbitlab/orbitsim/internal/view"
)

const background = "#0a0a14"

// SceneSVG renders the registry with its traces and an optional
// contour point set into a width x height pixel SVG document.
func SceneSVG(reg engine.Registry, tr *view.Transform, contours []vec.Vec2, width, height float64) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))

	// Traces under bodies so discs stay readable.
	for _, b := range reg {
		writeTrace(&sb, b, tr)
	}

	if len(contours) > 0 {
		sb.WriteString(`<g fill="#ffffff" fill-opacity="0.6">` + "\n")
		for _, p := range contours {
			v := tr.ToView(p)
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="2" height="2"/>`+"\n", v.X-1, v.Y-1))
		}
		sb.WriteString("</g>\n")
	}

	for _, b := range reg {
		v := tr.ToView(b.Pos)
		r := tr.Scale * view.DisplayRadius(b.Radius)
		if r < 1 {
			r = 1
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n",
			v.X, v.Y, r, hexColour(b.Colour)))
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-family="monospace" font-size="11" fill="%s">%s</text>`+"\n",
			v.X+r+4, v.Y-4, hexColour(b.Colour), escape(b.Name)))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

func writeTrace(sb *strings.Builder, b *body.Body, tr *view.Transform) {
	trace := b.Trace()
	if len(trace) < 2 {
		return
	}
	sb.WriteString(fmt.Sprintf(`<polyline fill="none" stroke="%s" stroke-opacity="0.5" stroke-width="1" points="`,
		hexColour(b.Colour)))
	for i, tp := range trace {
		v := tr.ToView(tp.Pos)
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(fmt.Sprintf("%.1f,%.1f", v.X, v.Y))
	}
	sb.WriteString(`"/>` + "\n")
}

// WriteScene renders the scene and writes it to path.
func WriteScene(path string, reg engine.Registry, tr *view.Transform, contours []vec.Vec2, width, height float64) error {
	return os.WriteFile(path, []byte(SceneSVG(reg, tr, contours, width, height)), 0644)
}

func hexColour(c body.Colour) string {
	return fmt.Sprintf("#%02x%02x%02x", clamp(c.R), clamp(c.G), clamp(c.B))
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

func escape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
