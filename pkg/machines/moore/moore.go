// Package moore implements the Moore transducer kind: one output per state.
package moore

import (
	"strings"

	"github.com/aretw0/automata/internal/engine"
	"github.com/aretw0/automata/pkg/domain"
)

// Factory is the Moore machine kind.
type Factory struct{}

// New creates a Moore factory.
func New() *Factory { return &Factory{} }

func (f *Factory) Config() domain.Config {
	return domain.Config{
		Type:        domain.KindMoore,
		DisplayName: "Moore Machine",
		Capabilities: domain.Capabilities{
			SupportsOutputPerState:  true,
			SupportsRecognitionMode: true,
		},
		DefaultMeta: domain.Meta{},
	}
}

func (f *Factory) CreateEmpty() *domain.Snapshot {
	return domain.NewSnapshot(domain.KindMoore, domain.Meta{})
}

// CreateState builds a state whose output starts empty.
func (f *Factory) CreateState(index int, x, y float64) domain.State {
	return engine.NewState(index, x, y)
}

// ValidateAddTransition keeps the machine deterministic: a symbol may only
// leave a state once.
func (f *Factory) ValidateAddTransition(snap *domain.Snapshot, t domain.Transition) string {
	return engine.SymbolConflict(snap, t)
}

func (f *Factory) NormalizeTransition(t domain.Transition) domain.Transition {
	t.Payload = domain.Symbols(engine.NormalizeSymbols(engine.SymbolsOf(t)))
	return t
}

func (f *Factory) FormatTransitionLabel(t domain.Transition) string {
	return engine.JoinSymbols(t)
}

func (f *Factory) output(snap *domain.Snapshot, id string) string {
	st, _ := snap.State(id)
	return st.Output
}

// Simulate walks like a DFA. The trace starts with the output of the initial
// state and grows by the output of every state entered.
func (f *Factory) Simulate(snap *domain.Snapshot, input string) *domain.SimulationResult {
	initial, ok := snap.Initial()
	if !ok {
		return &domain.SimulationResult{Steps: []domain.SimulationStep{}, Status: domain.StatusRejected}
	}
	// Unknown modes fall back to the defaults here; Workbench.Simulate rejects them first.
	meta, _ := engine.TransducerMeta(snap.Meta)

	current := initial.ID
	rest := input
	var trace strings.Builder
	trace.WriteString(initial.Output)
	steps := []domain.SimulationStep{{
		CurrentState:     current,
		RemainingInput:   rest,
		CumulativeOutput: trace.String(),
	}}

	for rest != "" {
		tr, symbol, ok := engine.LongestPrefix(snap.Outgoing(current), rest, engine.SymbolsOf)
		if !ok {
			break
		}
		current = tr.To
		rest = rest[len(symbol):]
		produced := f.output(snap, current)
		trace.WriteString(produced)
		steps = append(steps, domain.SimulationStep{
			CurrentState:     current,
			RemainingInput:   rest,
			ConsumedSymbol:   symbol,
			ProducedOutput:   produced,
			CumulativeOutput: trace.String(),
		})
	}

	return &domain.SimulationResult{
		Steps:       steps,
		Status:      engine.Verdict(meta.RecognitionMode, rest == "", snap.IsFinal(current)),
		FinalStates: []string{current},
		OutputTrace: trace.String(),
	}
}

// ConvertFrom keeps symbol sets and initializes every state output to empty.
// Final flags are cleared unless the source is a Mealy machine that recognises.
func (f *Factory) ConvertFrom(src *domain.Snapshot) domain.Conversion {
	if conv, ok := engine.SameKind(src, domain.KindMoore); ok {
		return conv
	}

	out := f.CreateEmpty()
	warnings := engine.LossWarnings(src, domain.KindMoore)
	if mode, ok := engine.CarriedRecognition(src, domain.KindMealy); ok {
		out.Meta[domain.MetaRecognitionMode] = string(mode)
		out.States = engine.CopyStates(src.States, engine.ClearOutput)
		warnings = append(warnings, "state outputs were initialized empty")
	} else {
		out.States = engine.CopyStates(src.States, func(st domain.State) domain.State {
			return engine.ClearOutput(engine.ClearFinal(st))
		})
		warnings = append(warnings, "state outputs were initialized empty and recognition is disabled; edit them afterwards")
	}
	out.Transitions = engine.SymbolTransitions(src, func(symbols []string) domain.Payload {
		return domain.Symbols(engine.NormalizeSymbols(symbols))
	})
	return domain.Conversion{Snapshot: out, Warnings: warnings}
}
