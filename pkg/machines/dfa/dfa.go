// Package dfa implements the deterministic finite automaton kind.
package dfa

import (
	"fmt"

	"github.com/aretw0/automata/internal/engine"
	"github.com/aretw0/automata/pkg/domain"
)

// Factory is the DFA machine kind.
type Factory struct{}

// New creates a DFA factory.
func New() *Factory { return &Factory{} }

func (f *Factory) Config() domain.Config {
	return domain.Config{
		Type:        domain.KindDFA,
		DisplayName: "DFA (Deterministic)",
		DefaultMeta: domain.Meta{},
	}
}

func (f *Factory) CreateEmpty() *domain.Snapshot {
	return domain.NewSnapshot(domain.KindDFA, domain.Meta{})
}

func (f *Factory) CreateState(index int, x, y float64) domain.State {
	return engine.NewState(index, x, y)
}

// ValidateAddTransition rejects a transition sharing a symbol with another
// transition from the same state.
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

func (f *Factory) Simulate(snap *domain.Snapshot, input string) *domain.SimulationResult {
	initial, ok := snap.Initial()
	if !ok {
		return &domain.SimulationResult{Steps: []domain.SimulationStep{}, Status: domain.StatusRejected}
	}

	current := initial.ID
	rest := input
	steps := []domain.SimulationStep{{CurrentState: current, RemainingInput: rest}}

	for rest != "" {
		tr, symbol, ok := engine.LongestPrefix(snap.Outgoing(current), rest, engine.SymbolsOf)
		if !ok {
			return &domain.SimulationResult{
				Steps:       steps,
				Status:      domain.StatusRejected,
				FinalStates: []string{current},
			}
		}
		rest = rest[len(symbol):]
		current = tr.To
		steps = append(steps, domain.SimulationStep{
			CurrentState:   current,
			RemainingInput: rest,
			ConsumedSymbol: symbol,
		})
	}

	status := domain.StatusRejected
	if snap.IsFinal(current) {
		status = domain.StatusAccepted
	}
	return &domain.SimulationResult{Steps: steps, Status: status, FinalStates: []string{current}}
}

// ConvertFrom keeps states and flags and maps every transition onto the symbols it reads.
// Symbols shared by two transitions from the same state are reported, not resolved.
func (f *Factory) ConvertFrom(src *domain.Snapshot) domain.Conversion {
	if conv, ok := engine.SameKind(src, domain.KindDFA); ok {
		return conv
	}

	out := f.CreateEmpty()
	out.States = engine.CopyStates(src.States, engine.ClearOutput)
	out.Transitions = engine.SymbolTransitions(src, func(symbols []string) domain.Payload {
		return domain.Symbols(engine.NormalizeSymbols(symbols))
	})

	warnings := engine.LossWarnings(src, domain.KindDFA)
	partial := &domain.Snapshot{Type: domain.KindDFA}
	for _, t := range out.Transitions {
		if msg := engine.SymbolConflict(partial, t); msg != "" {
			warnings = append(warnings, fmt.Sprintf("result is not deterministic: %s", msg))
		}
		partial.Transitions = append(partial.Transitions, t)
	}
	return domain.Conversion{Snapshot: out, Warnings: warnings}
}
