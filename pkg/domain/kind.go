package domain

// Kind identifies a machine variant.
type Kind string

const (
	KindDFA    Kind = "dfa"
	KindNFA    Kind = "nfa"
	KindMealy  Kind = "mealy"
	KindMoore  Kind = "moore"
	KindPDA    Kind = "pda"
	KindTuring Kind = "turing"
)

// Kinds lists the built-in kinds in canonical order.
func Kinds() []Kind {
	return []Kind{KindDFA, KindNFA, KindMealy, KindMoore, KindPDA, KindTuring}
}

// Known reports whether k is one of the built-in kinds.
func (k Kind) Known() bool {
	for _, known := range Kinds() {
		if k == known {
			return true
		}
	}
	return false
}

// SingleStart reports whether simulation of this kind starts from exactly one state.
func (k Kind) SingleStart() bool {
	switch k {
	case KindDFA, KindMealy, KindMoore, KindTuring:
		return true
	}
	return false
}

func (k Kind) String() string { return string(k) }
