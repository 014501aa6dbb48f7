package engine

import (
	"fmt"

	"github.com/aretw0/automata/pkg/domain"
)

// CopyStates deep-copies states, passing each through adjust when it is not nil.
func CopyStates(states []domain.State, adjust func(domain.State) domain.State) []domain.State {
	out := make([]domain.State, 0, len(states))
	for _, st := range states {
		if adjust != nil {
			st = adjust(st)
		}
		out = append(out, st)
	}
	return out
}

// ClearFinal drops the final flag of a state.
func ClearFinal(st domain.State) domain.State {
	st.IsFinal = false
	return st
}

// ClearOutput drops the Moore output of a state.
func ClearOutput(st domain.State) domain.State {
	st.Output = ""
	return st
}

// SourceSymbols returns the input symbols a transition of src fires on.
// The epsilon of an NFA or PDA source becomes the default epsilon symbol.
func SourceSymbols(src *domain.Snapshot, t domain.Transition) []string {
	switch p := t.Payload.(type) {
	case domain.Symbols:
		out := append([]string{}, p...)
		if src.Type == domain.KindNFA {
			nfa, _ := NFAMeta(src.Meta)
			for i, s := range out {
				if s == nfa.Epsilon {
					out[i] = domain.DefaultEpsilon
				}
			}
		}
		return out
	case domain.Pairs:
		return ReadSymbols(t)
	case domain.StackOp:
		pda, _ := PDAMeta(src.Meta)
		if p.Read == pda.Epsilon {
			return []string{domain.DefaultEpsilon}
		}
		return []string{p.Read}
	case domain.TapeOp:
		return []string{p.Read}
	}
	return nil
}

// SymbolTransitions maps every transition of src onto a symbol payload built by mk.
// Transitions without a readable payload are skipped.
func SymbolTransitions(src *domain.Snapshot, mk func(symbols []string) domain.Payload) []domain.Transition {
	out := make([]domain.Transition, 0, len(src.Transitions))
	for _, t := range src.Transitions {
		if t.Payload == nil {
			continue
		}
		out = append(out, domain.Transition{
			ID:      t.ID,
			From:    t.From,
			To:      t.To,
			Payload: mk(SourceSymbols(src, t)),
		})
	}
	return out
}

// SameKind returns a deep copy of src when it already has the target kind.
func SameKind(src *domain.Snapshot, kind domain.Kind) (domain.Conversion, bool) {
	if src.Type != kind {
		return domain.Conversion{}, false
	}
	return domain.Conversion{Snapshot: src.Clone()}, true
}

// LossWarnings describes what converting src to the target kind discards.
func LossWarnings(src *domain.Snapshot, target domain.Kind) []string {
	var warnings []string
	switch src.Type {
	case domain.KindNFA:
		if target == domain.KindPDA {
			break
		}
		nfa, _ := NFAMeta(src.Meta)
		for _, t := range src.Transitions {
			if Contains(SymbolsOf(t), nfa.Epsilon) {
				warnings = append(warnings, fmt.Sprintf("epsilon transitions are now read as the literal symbol '%s'", domain.DefaultEpsilon))
				break
			}
		}
	case domain.KindMealy:
		warnings = append(warnings, "transition outputs were discarded")
	case domain.KindMoore:
		for _, st := range src.States {
			if st.Output != "" {
				warnings = append(warnings, "state outputs were discarded")
				break
			}
		}
	case domain.KindPDA:
		warnings = append(warnings, "stack operations were discarded; each transition keeps only its read symbol")
	case domain.KindTuring:
		warnings = append(warnings, "tape writes and head moves were discarded; each transition keeps only its read symbol")
	}
	return warnings
}

// FirstSymbolWarning reports transitions that carried more than one symbol
// when the target kind can only keep the first.
func FirstSymbolWarning(src *domain.Snapshot) (string, bool) {
	dropped := 0
	for _, t := range src.Transitions {
		if n := len(SourceSymbols(src, t)); n > 1 {
			dropped += n - 1
		}
	}
	if dropped == 0 {
		return "", false
	}
	return fmt.Sprintf("%d alternative symbol(s) were dropped; only the first symbol of each transition was kept", dropped), true
}

// CarriedRecognition returns the recognition mode of a transducer source of
// kind from, when that source acts as an acceptor.
func CarriedRecognition(src *domain.Snapshot, from domain.Kind) (domain.RecognitionMode, bool) {
	if src.Type != from {
		return "", false
	}
	meta, err := TransducerMeta(src.Meta)
	if err != nil || meta.RecognitionMode == domain.RecognitionOff {
		return "", false
	}
	return meta.RecognitionMode, true
}
