package engine

import (
	"strconv"

	"github.com/aretw0/automata/pkg/domain"
)

// AnyFinal reports whether any of ids is a final state of snap.
func AnyFinal(snap *domain.Snapshot, ids []string) bool {
	for _, id := range ids {
		if snap.IsFinal(id) {
			return true
		}
	}
	return false
}

// StateSet is an insertion-ordered set of state IDs.
type StateSet struct {
	order []string
	seen  map[string]struct{}
}

// NewStateSet creates a set holding ids.
func NewStateSet(ids ...string) *StateSet {
	s := &StateSet{seen: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts id and reports whether it was new.
func (s *StateSet) Add(id string) bool {
	if _, ok := s.seen[id]; ok {
		return false
	}
	s.seen[id] = struct{}{}
	s.order = append(s.order, id)
	return true
}

// Has reports membership.
func (s *StateSet) Has(id string) bool {
	_, ok := s.seen[id]
	return ok
}

// Len returns the number of members.
func (s *StateSet) Len() int { return len(s.order) }

// IDs returns a copy of the members in insertion order.
func (s *StateSet) IDs() []string {
	return append([]string{}, s.order...)
}

// Ordered returns the members sorted by the declaration order of snap's states.
// IDs that do not name a state keep their insertion order at the end.
func (s *StateSet) Ordered(snap *domain.Snapshot) []string {
	out := make([]string, 0, len(s.order))
	placed := make(map[string]struct{}, len(s.order))
	for _, st := range snap.States {
		if s.Has(st.ID) {
			if _, dup := placed[st.ID]; dup {
				continue
			}
			placed[st.ID] = struct{}{}
			out = append(out, st.ID)
		}
	}
	for _, id := range s.order {
		if _, ok := placed[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

// NewState builds the default state at position index: q{index}, initial iff index is 0.
func NewState(index int, x, y float64) domain.State {
	id := "q" + strconv.Itoa(index)
	return domain.State{
		ID:        id,
		Label:     id,
		X:         x,
		Y:         y,
		IsInitial: index == 0,
	}
}

// Verdict returns the terminal status of a transducer run under mode.
// consumed reports whether the whole input was read; final whether the run ended in a final state.
func Verdict(mode domain.RecognitionMode, consumed, final bool) domain.Status {
	switch mode {
	case domain.RecognitionConsumption:
		if consumed {
			return domain.StatusAccepted
		}
		return domain.StatusRejected
	case domain.RecognitionFinal:
		if consumed && final {
			return domain.StatusAccepted
		}
		return domain.StatusRejected
	}
	return domain.StatusTransduced
}
