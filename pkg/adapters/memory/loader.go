package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/aretw0/automata/pkg/domain"
)

// Loader implements ports.SnapshotLoader over a fixed set of snapshots.
type Loader struct {
	snapshots map[string]*domain.Snapshot
}

// NewLoader copies the given snapshots into a read-only library.
func NewLoader(snapshots map[string]*domain.Snapshot) (*Loader, error) {
	data := make(map[string]*domain.Snapshot, len(snapshots))
	for id, snap := range snapshots {
		if id == "" {
			return nil, fmt.Errorf("snapshot missing ID")
		}
		if snap == nil {
			return nil, fmt.Errorf("snapshot %s is nil", id)
		}
		data[id] = snap.Clone()
	}
	return &Loader{snapshots: data}, nil
}

// Get returns a copy of the snapshot registered under id.
func (l *Loader) Get(ctx context.Context, id string) (*domain.Snapshot, error) {
	snap, ok := l.snapshots[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSnapshotNotFound, id)
	}
	return snap.Clone(), nil
}

// List returns all IDs, sorted for deterministic output.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	keys := make([]string, 0, len(l.snapshots))
	for k := range l.snapshots {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
