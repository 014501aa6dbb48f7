// Package pda implements the non-deterministic pushdown automaton kind.
//
// Simulation is a breadth-first search over configurations (state, input
// position, stack). Each configuration is expanded at most once and every
// branch is bounded by the maxDepth metadata, so epsilon loops that keep
// pushing end with status incomplete instead of running forever.
package pda

import (
	"strconv"
	"strings"

	"github.com/aretw0/automata/internal/engine"
	"github.com/aretw0/automata/pkg/domain"
)

// Factory is the PDA machine kind.
type Factory struct{}

// New creates a PDA factory.
func New() *Factory { return &Factory{} }

func (f *Factory) Config() domain.Config {
	return domain.Config{
		Type:        domain.KindPDA,
		DisplayName: "PDA (Pushdown Automaton)",
		Capabilities: domain.Capabilities{
			SupportsEpsilon:        true,
			SupportsNondeterminism: true,
			SupportsStack:          true,
		},
		DefaultMeta: defaultMeta(),
	}
}

func defaultMeta() domain.Meta {
	return domain.Meta{
		domain.MetaInitialStackSymbol: domain.DefaultStackBottom,
		domain.MetaEpsilon:            domain.DefaultEpsilon,
		domain.MetaMaxDepth:           domain.DefaultMaxDepth,
		domain.MetaAcceptanceMode:     string(domain.AcceptByFinalState),
	}
}

func (f *Factory) CreateEmpty() *domain.Snapshot {
	return domain.NewSnapshot(domain.KindPDA, defaultMeta())
}

func (f *Factory) CreateState(index int, x, y float64) domain.State {
	return engine.NewState(index, x, y)
}

func (f *Factory) ValidateAddTransition(*domain.Snapshot, domain.Transition) string {
	return ""
}

// NormalizeTransition trims the three fields. Empty fields become the default epsilon.
func (f *Factory) NormalizeTransition(t domain.Transition) domain.Transition {
	op, _ := t.Payload.(domain.StackOp)
	t.Payload = domain.StackOp{
		Read: orEpsilon(op.Read),
		Pop:  orEpsilon(op.Pop),
		Push: orEpsilon(op.Push),
	}
	return t
}

func orEpsilon(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return domain.DefaultEpsilon
	}
	return s
}

func (f *Factory) FormatTransitionLabel(t domain.Transition) string {
	op, ok := t.Payload.(domain.StackOp)
	if !ok {
		return ""
	}
	return op.Read + ", " + op.Pop + " → " + op.Push
}

type branch struct {
	state string
	index int
	stack []string
	path  []domain.SimulationStep
}

func (b branch) key() string {
	return b.state + "|" + strconv.Itoa(b.index) + "|" + strings.Join(b.stack, ",")
}

func (f *Factory) Simulate(snap *domain.Snapshot, input string) *domain.SimulationResult {
	initial, ok := snap.Initial()
	if !ok {
		return &domain.SimulationResult{Steps: []domain.SimulationStep{}, Status: domain.StatusRejected}
	}
	// Unknown modes fall back to the defaults here; Workbench.Simulate rejects them first.
	meta, _ := engine.PDAMeta(snap.Meta)
	isEpsilon := func(s string) bool { return s == "" || s == meta.Epsilon }

	accepts := func(b branch) bool {
		if b.index != len(input) {
			return false
		}
		if meta.AcceptanceMode == domain.AcceptByEmptyStack {
			return len(b.stack) == 0 || (len(b.stack) == 1 && b.stack[0] == meta.InitialStackSymbol)
		}
		return snap.IsFinal(b.state)
	}

	start := []string{meta.InitialStackSymbol}
	queue := []branch{{
		state: initial.ID,
		stack: start,
		path: []domain.SimulationStep{{
			ActiveStates:   []string{initial.ID},
			RemainingInput: input,
			Stack:          append([]string{}, start...),
		}},
	}}
	visited := make(map[string]struct{})
	var last branch

	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		queue[head] = branch{}
		last = cur

		if len(cur.path) > meta.MaxDepth {
			return &domain.SimulationResult{
				Steps:       cur.path,
				Status:      domain.StatusIncomplete,
				FinalStates: []string{cur.state},
			}
		}
		if accepts(cur) {
			return &domain.SimulationResult{
				Steps:       cur.path,
				Status:      domain.StatusAccepted,
				FinalStates: []string{cur.state},
			}
		}

		key := cur.key()
		if _, seen := visited[key]; seen {
			continue
		}
		visited[key] = struct{}{}

		for _, t := range snap.Outgoing(cur.state) {
			op, ok := t.Payload.(domain.StackOp)
			if !ok {
				continue
			}

			next := cur.index
			consumed := ""
			if !isEpsilon(op.Read) {
				if !strings.HasPrefix(input[cur.index:], op.Read) {
					continue
				}
				next += len(op.Read)
				consumed = op.Read
			}

			top := meta.Epsilon
			if len(cur.stack) > 0 {
				top = cur.stack[len(cur.stack)-1]
			}
			if !isEpsilon(op.Pop) && op.Pop != top {
				continue
			}

			stack := append([]string{}, cur.stack...)
			if !isEpsilon(op.Pop) {
				stack = stack[:len(stack)-1]
			}
			if !isEpsilon(op.Push) {
				symbols := engine.SplitSymbols(op.Push)
				for i := len(symbols) - 1; i >= 0; i-- {
					stack = append(stack, symbols[i])
				}
			}

			path := make([]domain.SimulationStep, len(cur.path), len(cur.path)+1)
			copy(path, cur.path)
			path = append(path, domain.SimulationStep{
				ActiveStates:   []string{t.To},
				RemainingInput: input[next:],
				ConsumedSymbol: consumed,
				Stack:          append([]string{}, stack...),
			})

			queue = append(queue, branch{state: t.To, index: next, stack: stack, path: path})
		}
	}

	return &domain.SimulationResult{
		Steps:       last.path,
		Status:      domain.StatusRejected,
		FinalStates: []string{last.state},
	}
}

// ConvertFrom turns every transition into a read of its first symbol with pop and push set to epsilon.
func (f *Factory) ConvertFrom(src *domain.Snapshot) domain.Conversion {
	if conv, ok := engine.SameKind(src, domain.KindPDA); ok {
		return conv
	}

	out := f.CreateEmpty()
	out.States = engine.CopyStates(src.States, engine.ClearOutput)
	out.Transitions = engine.SymbolTransitions(src, func(symbols []string) domain.Payload {
		read := domain.DefaultEpsilon
		if len(symbols) > 0 {
			read = symbols[0]
		}
		return domain.StackOp{Read: read, Pop: domain.DefaultEpsilon, Push: domain.DefaultEpsilon}
	})

	warnings := engine.LossWarnings(src, domain.KindPDA)
	if msg, ok := engine.FirstSymbolWarning(src); ok {
		warnings = append(warnings, msg)
	}
	warnings = append(warnings, "transitions were converted with pop/push ε; adjust them manually")
	return domain.Conversion{Snapshot: out, Warnings: warnings}
}
