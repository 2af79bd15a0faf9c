// Package viz is the terminal front end: it reads settled post-tick
// engine state, maps it through the view transform and draws onto a
// braille canvas. It never mutates the registry directly; all changes
// go through the engine's trigger operations.
package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/orbitlab/orbitsim/internal/engine"
	"github.com/orbitlab/orbitsim/internal/field"
	"github.com/orbitlab/orbitsim/internal/vec"
	"github.com/orbitlab/orbitsim/internal/view"
)

const (
	canvasWidth     = 90
	canvasHeight    = 30
	historyCapacity = 600
	pickPixels      = 5 // click tolerance in view pixels
)

type TickMsg time.Time

// Model drives an engine from terminal input and renders it each
// frame.
type Model struct {
	eng     *engine.Engine
	tr      *view.Transform
	sampler field.Sampler

	canvas     *Canvas
	selected   int
	energyHist []float64
	showHelp   bool
}

// NewModel wires an engine and its contour sampler into a live view
// with the given initial zoom.
func NewModel(eng *engine.Engine, sampler field.Sampler, scale float64) Model {
	canvas := NewCanvas(canvasWidth, canvasHeight)
	pw, ph := canvas.PixelSize()
	tr := view.NewTransform(float64(pw), float64(ph))
	if scale > 0 {
		tr.Scale = scale
	}
	return Model{
		eng:        eng,
		tr:         tr,
		sampler:    sampler,
		canvas:     canvas,
		selected:   -1,
		energyHist: make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/engine.DefaultTickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update applies input events to engine state, then (on tick) runs the
// physics step. Strict phase order: events first, physics second,
// View reads the settled state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.selectAt(msg.X, msg.Y)
		}
		return m, nil

	case TickMsg:
		if !m.eng.Paused() {
			m.eng.Step()
			m.recordEnergy()
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case " ":
		m.eng.TogglePause()
	case "t":
		m.eng.ToggleTrace()
	case "r":
		m.eng.Reset()
		m.selected = -1
		m.energyHist = m.energyHist[:0]
	case "c":
		m.eng.Recentre()
	case "g":
		m.toggleContours()
	case "+", "=":
		m.tr.ZoomIn()
	case "-", "_":
		m.tr.ZoomOut()
	case "up":
		m.tr.Pan(0, 1)
	case "down":
		m.tr.Pan(0, -1)
	case "left":
		m.tr.Pan(1, 0)
	case "right":
		m.tr.Pan(-1, 0)
	case "]":
		m.eng.SpeedUp()
	case "[":
		m.eng.SlowDown()
	case "tab", "n":
		m.cycleReference()
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

// toggleContours samples the potential field while paused, or clears
// an active set. Sampling every second sub-pixel matches the grid the
// sampler was tuned for.
func (m *Model) toggleContours() {
	if !m.eng.Paused() {
		return
	}
	if m.eng.Contours() != nil {
		m.eng.SetContours(nil)
		return
	}
	pw, ph := m.canvas.PixelSize()
	points := m.sampler.Sample(m.eng.Bodies(), pw/2, ph/2, float64(pw), float64(ph), m.tr.ToWorld)
	m.eng.SetContours(points)
}

func (m *Model) cycleReference() {
	reg := m.eng.Bodies()
	if len(reg) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(reg)
	m.eng.Select(reg[m.selected])
}

// selectAt maps a terminal cell click to world coordinates and makes
// the hit body the new reference frame.
func (m *Model) selectAt(cellX, cellY int) {
	world := m.tr.ToWorld(vec.Vec2{X: float64(cellX*2 + 1), Y: float64(cellY*4 + 2)})
	if b := m.eng.BodyAt(world, pickPixels/m.tr.Scale); b != nil {
		m.eng.Select(b)
	}
}

func (m *Model) recordEnergy() {
	e := m.eng.Bodies().Energy(m.eng.Model())
	m.energyHist = append(m.energyHist, e)
	if len(m.energyHist) > historyCapacity {
		m.energyHist = m.energyHist[1:]
	}
}

func (m Model) View() string {
	m.draw()
	left := canvasStyle.Render(m.canvas.String())
	right := statsStyle.Render(m.stats())
	out := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	if m.showHelp {
		out += "\n" + helpStyle.Render(helpText)
	} else {
		out += "\n" + helpStyle.Render("? help · q quit")
	}
	return out
}

// draw rasterizes contours, traces and body discs, in that order.
func (m Model) draw() {
	m.canvas.Clear()
	m.tr.Recentre(m.eng.ViewReference().Pos)

	for _, p := range m.eng.Contours() {
		v := m.tr.ToView(p)
		m.canvas.Set(int(math.Round(v.X)), int(math.Round(v.Y)))
	}

	for _, b := range m.eng.Bodies() {
		for _, tp := range b.Trace() {
			v := m.tr.ToView(tp.Pos)
			m.canvas.Set(int(math.Round(v.X)), int(math.Round(v.Y)))
		}
	}

	for _, b := range m.eng.Bodies() {
		v := m.tr.ToView(b.Pos)
		r := int(math.Round(m.tr.Scale * view.DisplayRadius(b.Radius)))
		m.canvas.FillCircle(int(math.Round(v.X)), int(math.Round(v.Y)), r)
	}
}

func (m Model) stats() string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render("orbitsim"))
	sb.WriteString("\n\n")

	status := activeStyle.Render("running")
	if m.eng.Paused() {
		status = pausedStyle.Render("paused")
	}
	row := func(label, value string) {
		sb.WriteString(labelStyle.Render(label))
		sb.WriteString(valueStyle.Render(value))
		sb.WriteByte('\n')
	}

	row("status", status)
	row("t", fmt.Sprintf("%.1f days", m.eng.Time()))
	row("dt", fmt.Sprintf("%.2f days", m.eng.Dt()))
	row("bodies", fmt.Sprintf("%d", len(m.eng.Bodies())))
	row("zoom", fmt.Sprintf("%.2f px/AU", m.tr.Scale))
	row("frame", m.referenceName())
	row("tracing", onOff(m.eng.Tracing()))
	row("contours", onOff(m.eng.Contours() != nil))

	if len(m.energyHist) >= 2 {
		sb.WriteString("\n")
		sb.WriteString(labelStyle.Render("energy"))
		sb.WriteString("\n")
		graph := asciigraph.Plot(m.energyHist, asciigraph.Height(5), asciigraph.Width(30))
		sb.WriteString(graphStyle.Render(graph))
	}
	return sb.String()
}

func (m Model) referenceName() string {
	ref := m.eng.Reference()
	if ref.IsSentinel() {
		return "origin"
	}
	return ref.Name
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

const helpText = `click/tab  select reference body
c          centre view on reference
space      pause/unpause
t          toggle path tracing
g          equipotential contours (paused)
+/-        zoom   arrows  pan
]/[        faster/slower (dt)
r          reset to initial system
q          quit`

// Run starts the interactive live view and blocks until quit.
func Run(eng *engine.Engine, sampler field.Sampler, scale float64) error {
	p := tea.NewProgram(NewModel(eng, sampler, scale), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
