package tui

import (
	"fmt"
	"io"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/muesli/termenv"
)

var statusColors = map[domain.Status]string{
	domain.StatusAccepted:   "#22c55e",
	domain.StatusRejected:   "#ef4444",
	domain.StatusTransduced: "#38bdf8",
	domain.StatusIncomplete: "#f59e0b",
	domain.StatusRunning:    "#a1a1aa",
}

// Status renders the status word in its color for the given writer's profile.
func Status(w io.Writer, status domain.Status) string {
	out := termenv.NewOutput(w)
	color, ok := statusColors[status]
	if !ok {
		return string(status)
	}
	return out.String(string(status)).Foreground(out.Color(color)).Bold().String()
}

// PrintSummary writes the verdict line of a simulation.
func PrintSummary(w io.Writer, res *domain.SimulationResult) {
	fmt.Fprintf(w, "%s after %d step(s)", Status(w, res.Status), len(res.Steps))
	if len(res.FinalStates) > 0 {
		fmt.Fprintf(w, " in %v", res.FinalStates)
	}
	if res.OutputTrace != "" {
		fmt.Fprintf(w, ", output %q", res.OutputTrace)
	}
	fmt.Fprintln(w)
}
