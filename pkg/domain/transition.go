package domain

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Transition is an edge between two states.
// Exactly one Payload type is meaningful per machine kind.
type Transition struct {
	ID      string
	From    string
	To      string
	Payload Payload
}

// Payload is the kind-specific part of a transition.
// It is sealed: the only implementations are Symbols, Pairs, StackOp and TapeOp.
type Payload interface {
	payload()
}

// Symbols is the set of input symbols a DFA, NFA or Moore transition fires on.
type Symbols []string

// Pair is a Mealy input/output pair.
type Pair struct {
	In  string `json:"in" yaml:"in" mapstructure:"in"`
	Out string `json:"out" yaml:"out" mapstructure:"out"`
}

// Pairs is the payload of a Mealy transition.
type Pairs []Pair

// StackOp is the payload of a PDA transition.
// Push is read as a sequence of symbols; its first symbol ends on top of the stack.
type StackOp struct {
	Read string `json:"read" yaml:"read" mapstructure:"read"`
	Pop  string `json:"pop" yaml:"pop" mapstructure:"pop"`
	Push string `json:"push" yaml:"push" mapstructure:"push"`
}

// Move is a Turing head direction.
type Move string

const (
	MoveLeft  Move = "L"
	MoveRight Move = "R"
	MoveStay  Move = "S"
)

// Valid reports whether m is one of L, R or S.
func (m Move) Valid() bool {
	return m == MoveLeft || m == MoveRight || m == MoveStay
}

// TapeOp is the payload of a Turing transition.
type TapeOp struct {
	Read  string `json:"read" yaml:"read" mapstructure:"read"`
	Write string `json:"write" yaml:"write" mapstructure:"write"`
	Move  Move   `json:"move" yaml:"move" mapstructure:"move"`
}

func (Symbols) payload() {}
func (Pairs) payload()   {}
func (StackOp) payload() {}
func (TapeOp) payload()  {}

// Clone returns a deep copy of the transition.
func (t Transition) Clone() Transition {
	switch p := t.Payload.(type) {
	case Symbols:
		if p != nil {
			t.Payload = append(Symbols{}, p...)
		}
	case Pairs:
		if p != nil {
			t.Payload = append(Pairs{}, p...)
		}
	}
	return t
}

// transitionWire is the persisted form: the payload is selected by which optional field is present.
type transitionWire struct {
	ID      string    `json:"id" yaml:"id"`
	From    string    `json:"from" yaml:"from"`
	To      string    `json:"to" yaml:"to"`
	Symbols *[]string `json:"symbols,omitempty" yaml:"symbols,omitempty"`
	Pairs   *[]Pair   `json:"pairs,omitempty" yaml:"pairs,omitempty"`
	PDA     *StackOp  `json:"pda,omitempty" yaml:"pda,omitempty"`
	TM      *TapeOp   `json:"tm,omitempty" yaml:"tm,omitempty"`
}

func (t Transition) toWire() transitionWire {
	w := transitionWire{ID: t.ID, From: t.From, To: t.To}
	switch p := t.Payload.(type) {
	case Symbols:
		s := []string(p)
		if s == nil {
			s = []string{}
		}
		w.Symbols = &s
	case Pairs:
		ps := []Pair(p)
		if ps == nil {
			ps = []Pair{}
		}
		w.Pairs = &ps
	case StackOp:
		op := p
		w.PDA = &op
	case TapeOp:
		op := p
		w.TM = &op
	}
	return w
}

func (w transitionWire) toTransition() (Transition, error) {
	t := Transition{ID: w.ID, From: w.From, To: w.To}
	set := 0
	if w.Symbols != nil {
		set++
		t.Payload = Symbols(*w.Symbols)
	}
	if w.Pairs != nil {
		set++
		t.Payload = Pairs(*w.Pairs)
	}
	if w.PDA != nil {
		set++
		t.Payload = *w.PDA
	}
	if w.TM != nil {
		set++
		t.Payload = *w.TM
	}
	if set > 1 {
		return Transition{}, fmt.Errorf("transition %q: %w: %d payload fields present", w.ID, ErrInvalidPayload, set)
	}
	return t, nil
}

// MarshalJSON implements json.Marshaler.
func (t Transition) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.toWire())
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Transition) UnmarshalJSON(data []byte) error {
	var w transitionWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	parsed, err := w.toTransition()
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (t Transition) MarshalYAML() (any, error) {
	return t.toWire(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *Transition) UnmarshalYAML(node *yaml.Node) error {
	var w transitionWire
	if err := node.Decode(&w); err != nil {
		return err
	}
	parsed, err := w.toTransition()
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
