package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/playback"
)

// SimulateOptions selects how a run is printed.
type SimulateOptions struct {
	JSON     bool          // machine-readable result only
	Play     bool          // print steps one by one at Interval
	Interval time.Duration
	Color    bool
}

// RunSimulation simulates input on snap and writes the result to w.
func RunSimulation(ctx context.Context, w io.Writer, wb *automata.Workbench, snap *domain.Snapshot, input string, opts SimulateOptions) (*domain.SimulationResult, error) {
	res, err := wb.Simulate(ctx, snap, input)
	if err != nil {
		return nil, err
	}

	switch {
	case opts.JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return res, enc.Encode(res)
	case opts.Play:
		err = playback.New(res).Play(ctx, opts.Interval, func(i int, step domain.SimulationStep) {
			fmt.Fprintln(w, FormatStep(i, step))
		})
		if err != nil {
			return res, err
		}
	default:
		render := tui.NewRenderer(opts.Color)
		out, err := render(tui.TraceMarkdown(res))
		if err != nil {
			return res, fmt.Errorf("rendering trace: %w", err)
		}
		fmt.Fprint(w, out)
	}

	tui.PrintSummary(w, res)
	return res, nil
}

// FormatStep renders one trace step on a single line.
func FormatStep(i int, s domain.SimulationStep) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%3d  {%s}", i, strings.Join(s.StateIDs(), ","))
	if s.ConsumedSymbol != "" {
		fmt.Fprintf(&sb, "  read %q", s.ConsumedSymbol)
	}
	fmt.Fprintf(&sb, "  rest %q", s.RemainingInput)
	if s.CumulativeOutput != "" {
		fmt.Fprintf(&sb, "  out %q", s.CumulativeOutput)
	}
	if len(s.Stack) > 0 {
		fmt.Fprintf(&sb, "  stack %s", strings.Join(s.Stack, ""))
	}
	if s.HeadPosition != nil {
		fmt.Fprintf(&sb, "  head %d", *s.HeadPosition)
	}
	return sb.String()
}
