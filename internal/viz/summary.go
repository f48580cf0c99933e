// Package viz renders gravity-step progress and results in the terminal.
package viz

import (
	"fmt"
	"strings"
	"time"

	"github.com/guptarohit/asciigraph"
)

// StepReport is one completed gravity step as seen by the driver.
type StepReport struct {
	Step      int
	Frontier  []int // cells per rank
	Residual  float64
	MaxAccel  float64
	NaNBodies float64
	Elapsed   time.Duration
}

// Summary renders a headless run: parameters, per-step metrics and a plot of
// the momentum residual over steps.
func Summary(scene string, ranks, bodies int, maxMass, theta float64, reports []StepReport) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("gravsim") + "\n")
	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("scene", scene)
	row("ranks", fmt.Sprintf("%d", ranks))
	row("bodies", fmt.Sprintf("%d", bodies))
	row("max mass", fmt.Sprintf("%g", maxMass))
	row("theta", fmt.Sprintf("%g", theta))

	for _, r := range reports {
		row(fmt.Sprintf("step %d", r.Step),
			fmt.Sprintf("cells %v  residual %.3e  max |a| %.4g  (%s)",
				r.Frontier, r.Residual, r.MaxAccel, r.Elapsed.Round(time.Microsecond)))
		if r.NaNBodies > 0 {
			row("", fmt.Sprintf("WARNING: %g bodies with non-finite acceleration", r.NaNBodies))
		}
	}

	if len(reports) >= 2 {
		residuals := make([]float64, len(reports))
		for i, r := range reports {
			residuals[i] = r.Residual
		}
		plot := asciigraph.Plot(residuals,
			asciigraph.Height(8),
			asciigraph.Caption("momentum residual per step"))
		b.WriteString(graphStyle.Render(plot) + "\n")
	}

	return b.String()
}
