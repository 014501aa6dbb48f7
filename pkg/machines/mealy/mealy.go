// Package mealy implements the Mealy transducer kind: one output per transition.
package mealy

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/internal/engine"
	"github.com/aretw0/automata/pkg/domain"
)

// Factory is the Mealy machine kind.
type Factory struct{}

// New creates a Mealy factory.
func New() *Factory { return &Factory{} }

func (f *Factory) Config() domain.Config {
	return domain.Config{
		Type:        domain.KindMealy,
		DisplayName: "Mealy Machine",
		Capabilities: domain.Capabilities{
			SupportsOutputPerTransition: true,
			SupportsRecognitionMode:     true,
		},
		DefaultMeta: domain.Meta{},
	}
}

func (f *Factory) CreateEmpty() *domain.Snapshot {
	return domain.NewSnapshot(domain.KindMealy, domain.Meta{})
}

func (f *Factory) CreateState(index int, x, y float64) domain.State {
	return engine.NewState(index, x, y)
}

func pairsOf(t domain.Transition) domain.Pairs {
	if p, ok := t.Payload.(domain.Pairs); ok {
		return p
	}
	return nil
}

// ValidateAddTransition rejects inputs that equal, or are a prefix of, an input
// already declared by another transition from the same state.
func (f *Factory) ValidateAddTransition(snap *domain.Snapshot, t domain.Transition) string {
	for _, pair := range pairsOf(t) {
		for _, tr := range snap.Transitions {
			if tr.From != t.From || tr.ID == t.ID {
				continue
			}
			for _, existing := range pairsOf(tr) {
				if ambiguous(pair.In, existing.In) {
					return fmt.Sprintf("input '%s' conflicts with '%s' already used from %s", pair.In, existing.In, t.From)
				}
			}
		}
	}
	return ""
}

func ambiguous(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.HasPrefix(a, b) || strings.HasPrefix(b, a)
}

func (f *Factory) NormalizeTransition(t domain.Transition) domain.Transition {
	t.Payload = domain.Pairs(engine.NormalizePairs(pairsOf(t)))
	return t
}

func (f *Factory) FormatTransitionLabel(t domain.Transition) string {
	labels := make([]string, 0, len(pairsOf(t)))
	for _, p := range pairsOf(t) {
		labels = append(labels, p.In+"/"+p.Out)
	}
	return strings.Join(labels, ", ")
}

type edge struct {
	to   string
	pair domain.Pair
}

func edgesFrom(snap *domain.Snapshot, from string) []edge {
	var out []edge
	for _, t := range snap.Outgoing(from) {
		for _, p := range pairsOf(t) {
			out = append(out, edge{to: t.To, pair: p})
		}
	}
	return out
}

func (f *Factory) Simulate(snap *domain.Snapshot, input string) *domain.SimulationResult {
	initial, ok := snap.Initial()
	if !ok {
		return &domain.SimulationResult{Steps: []domain.SimulationStep{}, Status: domain.StatusRejected}
	}
	// Unknown modes fall back to the defaults here; Workbench.Simulate rejects them first.
	meta, _ := engine.TransducerMeta(snap.Meta)

	current := initial.ID
	rest := input
	var output strings.Builder
	steps := []domain.SimulationStep{{CurrentState: current, RemainingInput: rest}}

	for rest != "" {
		e, symbol, ok := engine.LongestPrefix(edgesFrom(snap, current), rest, func(e edge) []string {
			return []string{e.pair.In}
		})
		if !ok {
			break
		}
		output.WriteString(e.pair.Out)
		rest = rest[len(symbol):]
		current = e.to
		steps = append(steps, domain.SimulationStep{
			CurrentState:     current,
			RemainingInput:   rest,
			ConsumedSymbol:   symbol,
			ProducedOutput:   e.pair.Out,
			CumulativeOutput: output.String(),
		})
	}

	return &domain.SimulationResult{
		Steps:       steps,
		Status:      engine.Verdict(meta.RecognitionMode, rest == "", snap.IsFinal(current)),
		FinalStates: []string{current},
		OutputTrace: output.String(),
	}
}

// ConvertFrom turns every symbol into a pair with an empty output.
// Final flags are cleared unless the source is a Moore machine that recognises.
func (f *Factory) ConvertFrom(src *domain.Snapshot) domain.Conversion {
	if conv, ok := engine.SameKind(src, domain.KindMealy); ok {
		return conv
	}

	out := f.CreateEmpty()
	warnings := engine.LossWarnings(src, domain.KindMealy)
	if mode, ok := engine.CarriedRecognition(src, domain.KindMoore); ok {
		out.Meta[domain.MetaRecognitionMode] = string(mode)
		out.States = engine.CopyStates(src.States, engine.ClearOutput)
		warnings = append(warnings, "outputs were initialized empty")
	} else {
		out.States = engine.CopyStates(src.States, func(st domain.State) domain.State {
			return engine.ClearOutput(engine.ClearFinal(st))
		})
		warnings = append(warnings, "outputs were initialized empty and recognition is disabled; edit them afterwards")
	}
	out.Transitions = engine.SymbolTransitions(src, func(symbols []string) domain.Payload {
		pairs := make([]domain.Pair, 0, len(symbols))
		for _, s := range symbols {
			pairs = append(pairs, domain.Pair{In: s})
		}
		return domain.Pairs(engine.NormalizePairs(pairs))
	})
	return domain.Conversion{Snapshot: out, Warnings: warnings}
}
