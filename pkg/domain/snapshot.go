package domain

import (
	"bytes"
	"encoding/json"
	"math"

	"gopkg.in/yaml.v3"
)

// Meta holds kind-specific metadata exactly as persisted.
// Factories decode their typed view from it; unknown keys survive a round trip.
type Meta map[string]any

// Snapshot is the complete, serializable state of one automaton.
type Snapshot struct {
	Type        Kind         `json:"type" yaml:"type"`
	Meta        Meta         `json:"meta" yaml:"meta"`
	States      []State      `json:"states" yaml:"states"`
	Transitions []Transition `json:"transitions" yaml:"transitions"`
}

// NewSnapshot creates an empty snapshot of the given kind.
func NewSnapshot(kind Kind, meta Meta) *Snapshot {
	return &Snapshot{
		Type:        kind,
		Meta:        meta.Clone(),
		States:      []State{},
		Transitions: []Transition{},
	}
}

// Clone returns a deep copy of the snapshot.
// Edits made while a simulation reads a snapshot must go through a clone.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	out := &Snapshot{
		Type: s.Type,
		Meta: s.Meta.Clone(),
	}
	if s.States != nil {
		out.States = append([]State{}, s.States...)
	}
	if s.Transitions != nil {
		out.Transitions = make([]Transition, len(s.Transitions))
		for i, t := range s.Transitions {
			out.Transitions[i] = t.Clone()
		}
	}
	return out
}

// Initial returns the first state flagged as initial.
func (s *Snapshot) Initial() (State, bool) {
	for _, st := range s.States {
		if st.IsInitial {
			return st, true
		}
	}
	return State{}, false
}

// State looks up a state by ID.
func (s *Snapshot) State(id string) (State, bool) {
	for _, st := range s.States {
		if st.ID == id {
			return st, true
		}
	}
	return State{}, false
}

// IsFinal reports whether the state with the given ID exists and is final.
func (s *Snapshot) IsFinal(id string) bool {
	st, ok := s.State(id)
	return ok && st.IsFinal
}

// Outgoing returns the transitions leaving the given state, in declaration order.
func (s *Snapshot) Outgoing(from string) []Transition {
	var out []Transition
	for _, t := range s.Transitions {
		if t.From == from {
			out = append(out, t)
		}
	}
	return out
}

// Clone returns a deep copy of the metadata.
// Nested maps and slices are copied; other values are shared.
func (m Meta) Clone() Meta {
	if m == nil {
		return nil
	}
	out := make(Meta, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return map[string]any(Meta(val).Clone())
	case Meta:
		return val.Clone()
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return append([]string{}, val...)
	default:
		return v
	}
}

// UnmarshalJSON decodes meta with integral numbers as int and fractional ones
// as float64, so values written by the factories survive a round trip.
func (m *Meta) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	*m = normalizeMeta(raw)
	return nil
}

// UnmarshalYAML decodes meta with nested mappings as map[string]any.
func (m *Meta) UnmarshalYAML(node *yaml.Node) error {
	var raw map[string]any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*m = normalizeMeta(raw)
	return nil
}

func normalizeMeta(raw map[string]any) Meta {
	if raw == nil {
		return nil
	}
	out := make(Meta, len(raw))
	for k, v := range raw {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil && i >= math.MinInt && i <= math.MaxInt {
			return int(i)
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case map[string]any:
		return map[string]any(normalizeMeta(val))
	case Meta:
		return map[string]any(normalizeMeta(val))
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeValue(item)
		}
		return out
	default:
		return v
	}
}
