package dsl

import (
	"fmt"

	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/registry"
	"github.com/aretw0/automata/pkg/schema"
)

// Builder manages the snapshot construction.
// States keep declaration order, which is also simulation order.
type Builder struct {
	snap   *domain.Snapshot
	states map[string]*StateBuilder
	order  []*StateBuilder
	next   int
}

// New creates a builder for kind, seeded with the kind's default meta when
// the kind is registered.
func New(kind domain.Kind) *Builder {
	snap := domain.NewSnapshot(kind, domain.Meta{})
	if f, err := registry.Default().Get(kind); err == nil {
		snap = f.CreateEmpty()
		if snap.Meta == nil {
			snap.Meta = domain.Meta{}
		}
	}
	return &Builder{
		snap:   snap,
		states: make(map[string]*StateBuilder),
	}
}

// Meta sets one meta key.
func (b *Builder) Meta(key string, value any) *Builder {
	b.snap.Meta[key] = value
	return b
}

// State creates a state, or returns the existing builder for id.
func (b *Builder) State(id string) *StateBuilder {
	if sb, ok := b.states[id]; ok {
		return sb
	}
	sb := &StateBuilder{
		state:   domain.State{ID: id, Label: id},
		builder: b,
	}
	b.states[id] = sb
	b.order = append(b.order, sb)
	return sb
}

func (b *Builder) add(from, to string, payload domain.Payload) {
	b.next++
	b.snap.Transitions = append(b.snap.Transitions, domain.Transition{
		ID:      fmt.Sprintf("t%d", b.next),
		From:    from,
		To:      to,
		Payload: payload,
	})
}

// Build assembles and validates the snapshot. Target states referenced only by
// transitions are not created implicitly.
func (b *Builder) Build() (*domain.Snapshot, error) {
	snap := b.snap.Clone()
	snap.States = make([]domain.State, 0, len(b.order))
	for _, sb := range b.order {
		snap.States = append(snap.States, sb.state)
	}
	if err := schema.ValidateSnapshot(snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// MustBuild is Build for statically known snapshots. It panics on error.
func (b *Builder) MustBuild() *domain.Snapshot {
	snap, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("dsl: %v", err))
	}
	return snap
}

// Library builds every builder into a read-only loader keyed by name.
func Library(builders map[string]*Builder) (*memory.Loader, error) {
	snaps := make(map[string]*domain.Snapshot, len(builders))
	for name, b := range builders {
		snap, err := b.Build()
		if err != nil {
			return nil, fmt.Errorf("failed to build %s: %w", name, err)
		}
		snaps[name] = snap
	}
	return memory.NewLoader(snaps)
}
