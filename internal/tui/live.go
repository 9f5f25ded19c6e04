// Package tui implements a bubbletea live viewer for a running Minerva
// world: a scrolling diagnostic graph plus a stats panel, driven by the
// same tick-and-step loop the CLI's headless runner uses.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/dkastner/minerva/internal/config"
	"github.com/dkastner/minerva/internal/diagnostics"
	"github.com/dkastner/minerva/internal/world"
)

const historyCapacity = 300

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).Padding(1, 2)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// tickMsg drives the render/step loop, one per animation frame.
type tickMsg time.Time

// Model holds a world under active simulation plus the viewer's own replay
// state; it satisfies tea.Model.
type Model struct {
	w        *world.World
	cfg      *config.Config
	dt       float64
	scenario string

	running bool
	steps   int

	diagHistory []float64
}

// NewModel builds a viewer for w, advanced by cfg.Dt each tick. The plotted
// diagnostic is computed from world state alone, not from cfg.MD.
func NewModel(w *world.World, cfg *config.Config, scenario string) Model {
	return Model{
		w:           w,
		cfg:         cfg,
		dt:          cfg.Dt,
		scenario:    scenario,
		running:     true,
		diagHistory: make([]float64, 0, historyCapacity),
	}
}

// Init starts the tick loop at 60Hz.
func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update advances the world on every tick while running and handles the
// pause/reset/quit key bindings.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.steps = 0
			m.diagHistory = m.diagHistory[:0]
		}
	case tickMsg:
		if m.running {
			m.w.Step(m.dt)
			m.steps++
			m.recordDiagnostic()
		}
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return tickMsg(t) })
	}
	return m, nil
}

// recordDiagnostic appends the current plotted quantity: instantaneous MD
// temperature when MD particles are present, else rigid-body kinetic
// energy.
func (m *Model) recordDiagnostic() {
	var v float64
	if m.w.MDParticles != nil && m.w.MDParticles.Len() > 0 {
		v = diagnostics.Temperature(m.w.MDParticles)
	} else {
		v = diagnostics.KineticEnergyRB(m.w.RigidBodies)
	}
	m.diagHistory = append(m.diagHistory, v)
	if len(m.diagHistory) > historyCapacity {
		m.diagHistory = m.diagHistory[1:]
	}
}

// View renders the header, diagnostic graph, and stats panel.
func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.scenario)) + "\n")

	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	label, unit := "Temperature", "T"
	if m.w.MDParticles == nil || m.w.MDParticles.Len() == 0 {
		label, unit = "Kinetic Energy", "KE"
	}
	if len(m.diagHistory) > 1 {
		chart := asciigraph.Plot(m.diagHistory, asciigraph.Height(6), asciigraph.Width(50), asciigraph.Caption(label))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	var stats strings.Builder
	stats.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.3fs", m.w.Time)) + "\n")
	stats.WriteString(labelStyle.Render("Steps") + valueStyle.Render(fmt.Sprintf("%d", m.steps)) + "\n")
	stats.WriteString(labelStyle.Render("Rigid bodies") + valueStyle.Render(fmt.Sprintf("%d", len(m.w.RigidBodies))) + "\n")
	if m.w.MDParticles != nil {
		stats.WriteString(labelStyle.Render("MD particles") + valueStyle.Render(fmt.Sprintf("%d", m.w.MDParticles.Len())) + "\n")
	}
	if len(m.diagHistory) > 0 {
		stats.WriteString(labelStyle.Render(unit) + valueStyle.Render(fmt.Sprintf("%.4f", m.diagHistory[len(m.diagHistory)-1])) + "\n")
	}
	s.WriteString(statsStyle.Render(stats.String()))

	s.WriteString(helpStyle.Render("\nspace: pause  r: reset counters  q: quit"))
	return s.String()
}
