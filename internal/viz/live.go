package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
)

// StepMsg reports one finished gravity step to the live view.
type StepMsg StepReport

// DoneMsg tells the live view the run is over.
type DoneMsg struct{ Err error }

// Model is the bubbletea model for a live run. The driver sends StepMsg per
// step and DoneMsg at the end; the view keeps the full residual history.
type Model struct {
	scene    string
	ranks    int
	bodies   int
	steps    int
	reports  []StepReport
	done     bool
	err      error
	quitting bool
}

func NewModel(scene string, ranks, bodies, steps int) Model {
	return Model{scene: scene, ranks: ranks, bodies: bodies, steps: steps}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}
	case StepMsg:
		m.reports = append(m.reports, StepReport(msg))
	case DoneMsg:
		m.done = true
		m.err = msg.Err
		if m.err != nil {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("gravsim live — %s, %d ranks, %d bodies", m.scene, m.ranks, m.bodies)) + "\n")

	for s := 0; s < m.steps; s++ {
		marker, style := "·", phasePending
		if s < len(m.reports) {
			marker, style = "✓", phaseDone
		}
		b.WriteString(style.Render(marker))
	}
	b.WriteString(valueStyle.Render(fmt.Sprintf("  step %d/%d", len(m.reports), m.steps)) + "\n")

	if n := len(m.reports); n > 0 {
		last := m.reports[n-1]
		stats := fmt.Sprintf("frontier %v\nresidual %.3e\nmax |a|  %.4g\nelapsed  %s",
			last.Frontier, last.Residual, last.MaxAccel, last.Elapsed)
		b.WriteString(panelStyle.Render(stats) + "\n")

		if n >= 2 {
			residuals := make([]float64, n)
			for i, r := range m.reports {
				residuals[i] = r.Residual
			}
			b.WriteString(graphStyle.Render(asciigraph.Plot(residuals, asciigraph.Height(6))) + "\n")
		}
	}

	if m.done {
		b.WriteString(phaseDone.Render("run complete") + "\n")
	}
	b.WriteString(helpStyle.Render("q: quit"))
	return b.String()
}
