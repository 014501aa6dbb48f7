// Package nfa implements the non-deterministic finite automaton kind.
package nfa

import (
	"github.com/aretw0/automata/internal/engine"
	"github.com/aretw0/automata/pkg/domain"
)

// Factory is the NFA machine kind.
type Factory struct{}

// New creates an NFA factory.
func New() *Factory { return &Factory{} }

func (f *Factory) Config() domain.Config {
	return domain.Config{
		Type:        domain.KindNFA,
		DisplayName: "NFA (Nondeterministic)",
		Capabilities: domain.Capabilities{
			SupportsEpsilon:        true,
			SupportsNondeterminism: true,
		},
		DefaultMeta: defaultMeta(),
	}
}

func defaultMeta() domain.Meta {
	return domain.Meta{domain.MetaEpsilon: domain.DefaultEpsilon}
}

func (f *Factory) CreateEmpty() *domain.Snapshot {
	return domain.NewSnapshot(domain.KindNFA, defaultMeta())
}

func (f *Factory) CreateState(index int, x, y float64) domain.State {
	return engine.NewState(index, x, y)
}

// ValidateAddTransition accepts every transition; non-determinism is the point.
func (f *Factory) ValidateAddTransition(*domain.Snapshot, domain.Transition) string {
	return ""
}

func (f *Factory) NormalizeTransition(t domain.Transition) domain.Transition {
	t.Payload = domain.Symbols(engine.NormalizeSymbols(engine.SymbolsOf(t)))
	return t
}

func (f *Factory) FormatTransitionLabel(t domain.Transition) string {
	return engine.JoinSymbols(t)
}

// Closure returns the epsilon-closure of ids.
// Each state enters the set at most once, so epsilon cycles terminate.
func Closure(snap *domain.Snapshot, epsilon string, ids ...string) *engine.StateSet {
	set := engine.NewStateSet(ids...)
	for changed := true; changed; {
		changed = false
		for _, t := range snap.Transitions {
			if !set.Has(t.From) || !engine.Contains(engine.SymbolsOf(t), epsilon) {
				continue
			}
			if set.Add(t.To) {
				changed = true
			}
		}
	}
	return set
}

// Simulate tracks the set of active states. At every position it consumes the
// longest symbol any active transition reads, then follows every active transition
// on that symbol and closes the result under epsilon.
func (f *Factory) Simulate(snap *domain.Snapshot, input string) *domain.SimulationResult {
	initial, ok := snap.Initial()
	if !ok {
		return &domain.SimulationResult{Steps: []domain.SimulationStep{}, Status: domain.StatusRejected}
	}
	meta, _ := engine.NFAMeta(snap.Meta)
	epsilon := meta.Epsilon

	readable := func(t domain.Transition) []string {
		var out []string
		for _, s := range engine.SymbolsOf(t) {
			if s != epsilon {
				out = append(out, s)
			}
		}
		return out
	}

	active := Closure(snap, epsilon, initial.ID).Ordered(snap)
	rest := input
	steps := []domain.SimulationStep{{ActiveStates: active, RemainingInput: rest}}

	for rest != "" {
		var candidates []domain.Transition
		for _, id := range active {
			candidates = append(candidates, snap.Outgoing(id)...)
		}

		_, symbol, ok := engine.LongestPrefix(candidates, rest, readable)
		if !ok {
			return &domain.SimulationResult{
				Steps:       steps,
				Status:      domain.StatusRejected,
				FinalStates: active,
			}
		}

		var next []string
		for _, t := range candidates {
			if engine.Contains(readable(t), symbol) {
				next = append(next, t.To)
			}
		}
		active = Closure(snap, epsilon, next...).Ordered(snap)
		rest = rest[len(symbol):]
		steps = append(steps, domain.SimulationStep{
			ActiveStates:   active,
			RemainingInput: rest,
			ConsumedSymbol: symbol,
		})
	}

	status := domain.StatusRejected
	if engine.AnyFinal(snap, active) {
		status = domain.StatusAccepted
	}
	return &domain.SimulationResult{Steps: steps, Status: status, FinalStates: active}
}

// ConvertFrom keeps states and flags and maps every transition onto the symbols it reads.
func (f *Factory) ConvertFrom(src *domain.Snapshot) domain.Conversion {
	if conv, ok := engine.SameKind(src, domain.KindNFA); ok {
		return conv
	}

	out := f.CreateEmpty()
	out.States = engine.CopyStates(src.States, engine.ClearOutput)
	out.Transitions = engine.SymbolTransitions(src, func(symbols []string) domain.Payload {
		return domain.Symbols(engine.NormalizeSymbols(symbols))
	})
	return domain.Conversion{Snapshot: out, Warnings: engine.LossWarnings(src, domain.KindNFA)}
}
