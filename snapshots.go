package automata

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aretw0/automata/pkg/domain"
)

// Save validates and persists snap under name.
func (w *Workbench) Save(ctx context.Context, name string, snap *domain.Snapshot) error {
	return w.sessions.Save(ctx, name, snap)
}

// Load returns the snapshot stored under name.
func (w *Workbench) Load(ctx context.Context, name string) (*domain.Snapshot, error) {
	return w.sessions.Load(ctx, name)
}

// Delete removes the snapshot stored under name.
func (w *Workbench) Delete(ctx context.Context, name string) error {
	return w.sessions.Delete(ctx, name)
}

// List returns the names of the stored snapshots.
func (w *Workbench) List(ctx context.Context) ([]string, error) {
	return w.sessions.List(ctx)
}

// Create stores an empty snapshot of kind under name, or returns the
// existing one whatever its kind.
func (w *Workbench) Create(ctx context.Context, name string, kind domain.Kind) (*domain.Snapshot, error) {
	f, err := w.registry.Get(kind)
	if err != nil {
		return nil, err
	}
	return w.sessions.LoadOrCreate(ctx, name, f.CreateEmpty)
}

// Import copies a library snapshot into the store under name.
func (w *Workbench) Import(ctx context.Context, id, name string) (*domain.Snapshot, error) {
	snap, err := w.library.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := w.Save(ctx, name, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// AddState appends a factory-made state to the stored snapshot.
// Indexes already taken by another state id are skipped.
func (w *Workbench) AddState(ctx context.Context, name string, x, y float64) (*domain.Snapshot, domain.State, error) {
	var added domain.State
	snap, err := w.sessions.Update(ctx, name, func(s *domain.Snapshot) error {
		f, err := w.registry.Get(s.Type)
		if err != nil {
			return err
		}
		index := len(s.States)
		added = f.CreateState(index, x, y)
		for taken(s, added.ID) {
			index++
			added = f.CreateState(index, x, y)
		}
		// Only the first state of a snapshot starts out initial.
		added.IsInitial = len(s.States) == 0
		s.States = append(s.States, added)
		return nil
	})
	return snap, added, err
}

// AddTransition normalizes t, checks it with the factory and stores it.
// An empty t.ID gets the next free "t<n>" id.
func (w *Workbench) AddTransition(ctx context.Context, name string, t domain.Transition) (*domain.Snapshot, error) {
	return w.sessions.Update(ctx, name, func(s *domain.Snapshot) error {
		if !taken(s, t.From) {
			return fmt.Errorf("%w: %s", domain.ErrStateNotFound, t.From)
		}
		if !taken(s, t.To) {
			return fmt.Errorf("%w: %s", domain.ErrStateNotFound, t.To)
		}
		normalized, conflict, err := w.ValidateAddTransition(s, t)
		if err != nil {
			return err
		}
		if conflict != "" {
			return fmt.Errorf("%w: %s", domain.ErrTransitionConflict, conflict)
		}
		if normalized.ID == "" {
			normalized.ID = nextTransitionID(s)
		}
		s.Transitions = append(s.Transitions, normalized)
		return nil
	})
}

// RemoveState deletes a state together with every transition touching it.
func (w *Workbench) RemoveState(ctx context.Context, name, id string) (*domain.Snapshot, error) {
	return w.sessions.Update(ctx, name, func(s *domain.Snapshot) error {
		if !taken(s, id) {
			return fmt.Errorf("%w: %s", domain.ErrStateNotFound, id)
		}
		states := s.States[:0]
		for _, st := range s.States {
			if st.ID != id {
				states = append(states, st)
			}
		}
		s.States = states

		transitions := s.Transitions[:0]
		for _, t := range s.Transitions {
			if t.From != id && t.To != id {
				transitions = append(transitions, t)
			}
		}
		s.Transitions = transitions
		return nil
	})
}

func nextTransitionID(s *domain.Snapshot) string {
	taken := make(map[string]bool, len(s.Transitions))
	for _, t := range s.Transitions {
		taken[t.ID] = true
	}
	for i := len(s.Transitions) + 1; ; i++ {
		id := "t" + strconv.Itoa(i)
		if !taken[id] {
			return id
		}
	}
}

func taken(s *domain.Snapshot, id string) bool {
	_, ok := s.State(id)
	return ok
}
