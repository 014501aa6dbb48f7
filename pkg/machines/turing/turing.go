// Package turing implements the deterministic single-tape Turing machine kind.
package turing

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/internal/engine"
	"github.com/aretw0/automata/pkg/domain"
)

// Factory is the Turing machine kind.
type Factory struct{}

// New creates a Turing machine factory.
func New() *Factory { return &Factory{} }

func (f *Factory) Config() domain.Config {
	return domain.Config{
		Type:        domain.KindTuring,
		DisplayName: "Turing Machine",
		Capabilities: domain.Capabilities{
			SupportsTape: true,
		},
		DefaultMeta: defaultMeta(),
	}
}

func defaultMeta() domain.Meta {
	return domain.Meta{
		domain.MetaBlank:    domain.DefaultBlank,
		domain.MetaMaxSteps: domain.DefaultMaxSteps,
	}
}

func (f *Factory) CreateEmpty() *domain.Snapshot {
	return domain.NewSnapshot(domain.KindTuring, defaultMeta())
}

func (f *Factory) CreateState(index int, x, y float64) domain.State {
	return engine.NewState(index, x, y)
}

// ValidateAddTransition keeps the machine deterministic: a state reads a given
// symbol through one transition only.
func (f *Factory) ValidateAddTransition(snap *domain.Snapshot, t domain.Transition) string {
	op, ok := t.Payload.(domain.TapeOp)
	if !ok {
		return ""
	}
	for _, tr := range snap.Transitions {
		if tr.From != t.From || tr.ID == t.ID {
			continue
		}
		if existing, ok := tr.Payload.(domain.TapeOp); ok && existing.Read == op.Read {
			return fmt.Sprintf("symbol '%s' is already read from %s", op.Read, t.From)
		}
	}
	return ""
}

// NormalizeTransition trims read and write and upper-cases the move. Unknown moves become S.
func (f *Factory) NormalizeTransition(t domain.Transition) domain.Transition {
	op, _ := t.Payload.(domain.TapeOp)
	move := domain.Move(strings.ToUpper(strings.TrimSpace(string(op.Move))))
	if !move.Valid() {
		move = domain.MoveStay
	}
	t.Payload = domain.TapeOp{
		Read:  strings.TrimSpace(op.Read),
		Write: strings.TrimSpace(op.Write),
		Move:  move,
	}
	return t
}

func (f *Factory) FormatTransitionLabel(t domain.Transition) string {
	op, ok := t.Payload.(domain.TapeOp)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s/%s,%s", op.Read, op.Write, op.Move)
}

func position(head int) *int { return &head }

func find(snap *domain.Snapshot, state, read string) (domain.Transition, domain.TapeOp, bool) {
	for _, t := range snap.Outgoing(state) {
		if op, ok := t.Payload.(domain.TapeOp); ok && op.Read == read {
			return t, op, true
		}
	}
	return domain.Transition{}, domain.TapeOp{}, false
}

// Simulate runs at most maxSteps moves. A machine with no move left halts and
// accepts iff its state is final; entering a final state accepts at once.
func (f *Factory) Simulate(snap *domain.Snapshot, input string) *domain.SimulationResult {
	initial, ok := snap.Initial()
	if !ok {
		return &domain.SimulationResult{Steps: []domain.SimulationStep{}, Status: domain.StatusRejected}
	}
	meta, _ := engine.TuringMeta(snap.Meta)

	tape := engine.SplitSymbols(input)
	head := 0
	state := initial.ID
	steps := []domain.SimulationStep{{
		CurrentState: state,
		Tape:         append([]string{}, tape...),
		HeadPosition: position(head),
	}}

	for n := 0; n < meta.MaxSteps; n++ {
		read := meta.Blank
		if head < len(tape) {
			read = tape[head]
		}

		tr, op, ok := find(snap, state, read)
		if !ok {
			status := domain.StatusRejected
			if snap.IsFinal(state) {
				status = domain.StatusAccepted
			}
			return &domain.SimulationResult{Steps: steps, Status: status, FinalStates: []string{state}}
		}

		// Cells past the end already hold blanks.
		if head < len(tape) || op.Write != meta.Blank {
			for head >= len(tape) {
				tape = append(tape, meta.Blank)
			}
			tape[head] = op.Write
		}

		switch op.Move {
		case domain.MoveRight:
			head++
		case domain.MoveLeft:
			if head > 0 {
				head--
			}
		}

		state = tr.To
		steps = append(steps, domain.SimulationStep{
			CurrentState:   state,
			ConsumedSymbol: read,
			Tape:           append([]string{}, tape...),
			HeadPosition:   position(head),
		})

		if snap.IsFinal(state) {
			return &domain.SimulationResult{Steps: steps, Status: domain.StatusAccepted, FinalStates: []string{state}}
		}
	}

	return &domain.SimulationResult{Steps: steps, Status: domain.StatusIncomplete, FinalStates: []string{state}}
}

// ConvertFrom turns every transition into a read of its first symbol that writes it back and stays.
func (f *Factory) ConvertFrom(src *domain.Snapshot) domain.Conversion {
	if conv, ok := engine.SameKind(src, domain.KindTuring); ok {
		return conv
	}

	out := f.CreateEmpty()
	out.States = engine.CopyStates(src.States, engine.ClearOutput)
	out.Transitions = engine.SymbolTransitions(src, func(symbols []string) domain.Payload {
		read := domain.DefaultBlank
		if len(symbols) > 0 {
			read = symbols[0]
		}
		return domain.TapeOp{Read: read, Write: read, Move: domain.MoveStay}
	})

	warnings := engine.LossWarnings(src, domain.KindTuring)
	if msg, ok := engine.FirstSymbolWarning(src); ok {
		warnings = append(warnings, msg)
	}
	warnings = append(warnings, "moves were converted as S with write equal to read; adjust them manually")
	return domain.Conversion{Snapshot: out, Warnings: warnings}
}
