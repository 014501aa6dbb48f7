package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// Plain rendering (no ANSI) is used when color is false.
func NewRenderer(color bool) func(string) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(0)}
	if color {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle("notty"))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, err }
	}
	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// TraceMarkdown renders a simulation trace as a markdown table.
// Only the columns the trace actually uses are emitted.
func TraceMarkdown(res *domain.SimulationResult) string {
	var hasOutput, hasStack, hasTape bool
	for _, s := range res.Steps {
		hasOutput = hasOutput || s.CumulativeOutput != "" || s.ProducedOutput != ""
		hasStack = hasStack || s.Stack != nil
		hasTape = hasTape || s.Tape != nil
	}

	header := []string{"#", "State", "Read", "Remaining"}
	if hasOutput {
		header = append(header, "Output")
	}
	if hasStack {
		header = append(header, "Stack")
	}
	if hasTape {
		header = append(header, "Tape")
	}

	var sb strings.Builder
	writeRow(&sb, header)
	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	writeRow(&sb, sep)

	for i, s := range res.Steps {
		row := []string{
			strconv.Itoa(i),
			strings.Join(s.StateIDs(), ", "),
			orDash(s.ConsumedSymbol),
			orDash(s.RemainingInput),
		}
		if hasOutput {
			row = append(row, orDash(s.CumulativeOutput))
		}
		if hasStack {
			// Top of stack on the left.
			top := make([]string, len(s.Stack))
			for j, sym := range s.Stack {
				top[len(s.Stack)-1-j] = sym
			}
			row = append(row, orDash(strings.Join(top, "")))
		}
		if hasTape {
			row = append(row, tapeCell(s))
		}
		writeRow(&sb, row)
	}
	return sb.String()
}

func tapeCell(s domain.SimulationStep) string {
	if s.HeadPosition == nil {
		return orDash(strings.Join(s.Tape, ""))
	}
	var sb strings.Builder
	for i, cell := range s.Tape {
		if i == *s.HeadPosition {
			fmt.Fprintf(&sb, "[%s]", cell)
			continue
		}
		sb.WriteString(cell)
	}
	if *s.HeadPosition >= len(s.Tape) {
		sb.WriteString("[ ]")
	}
	return sb.String()
}

func writeRow(sb *strings.Builder, cells []string) {
	sb.WriteString("|")
	for _, c := range cells {
		sb.WriteString(" ")
		sb.WriteString(strings.ReplaceAll(c, "|", `\|`))
		sb.WriteString(" |")
	}
	sb.WriteString("\n")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
