package dsl

import "github.com/aretw0/automata/pkg/domain"

// StateBuilder configures one state and its outgoing transitions.
type StateBuilder struct {
	state   domain.State
	builder *Builder
}

func (s *StateBuilder) Initial() *StateBuilder {
	s.state.IsInitial = true
	return s
}

func (s *StateBuilder) Final() *StateBuilder {
	s.state.IsFinal = true
	return s
}

func (s *StateBuilder) Label(label string) *StateBuilder {
	s.state.Label = label
	return s
}

// Output sets the Moore output of the state.
func (s *StateBuilder) Output(out string) *StateBuilder {
	s.state.Output = out
	return s
}

// At places the state on the editor canvas.
func (s *StateBuilder) At(x, y float64) *StateBuilder {
	s.state.X, s.state.Y = x, y
	return s
}

// On adds a symbol transition (DFA, NFA, Moore).
func (s *StateBuilder) On(symbol, to string, more ...string) *StateBuilder {
	symbols := append(domain.Symbols{symbol}, more...)
	s.builder.add(s.state.ID, to, symbols)
	return s
}

// Epsilon adds an NFA ε-transition using the builder's epsilon symbol.
func (s *StateBuilder) Epsilon(to string) *StateBuilder {
	eps := domain.DefaultEpsilon
	if v, ok := s.builder.snap.Meta[domain.MetaEpsilon].(string); ok && v != "" {
		eps = v
	}
	s.builder.add(s.state.ID, to, domain.Symbols{eps})
	return s
}

// Emit adds a Mealy transition with a single in/out pair.
func (s *StateBuilder) Emit(to, in, out string) *StateBuilder {
	s.builder.add(s.state.ID, to, domain.Pairs{{In: in, Out: out}})
	return s
}

// EmitPairs adds a Mealy transition with several pairs.
func (s *StateBuilder) EmitPairs(to string, pairs ...domain.Pair) *StateBuilder {
	s.builder.add(s.state.ID, to, domain.Pairs(append([]domain.Pair{}, pairs...)))
	return s
}

// Stack adds a PDA transition.
func (s *StateBuilder) Stack(to, read, pop, push string) *StateBuilder {
	s.builder.add(s.state.ID, to, domain.StackOp{Read: read, Pop: pop, Push: push})
	return s
}

// Tape adds a Turing transition.
func (s *StateBuilder) Tape(to, read, write string, move domain.Move) *StateBuilder {
	s.builder.add(s.state.ID, to, domain.TapeOp{Read: read, Write: write, Move: move})
	return s
}

// State switches to another state of the same builder.
func (s *StateBuilder) State(id string) *StateBuilder {
	return s.builder.State(id)
}

// Done returns to the snapshot builder.
func (s *StateBuilder) Done() *Builder {
	return s.builder
}
