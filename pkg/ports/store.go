package ports

import (
	"context"

	"github.com/aretw0/automata/pkg/domain"
)

// SnapshotStore defines the interface for persisting named snapshots.
type SnapshotStore interface {
	// Save persists the snapshot under name, replacing any previous version.
	Save(ctx context.Context, name string, snap *domain.Snapshot) error

	// Load retrieves the snapshot stored under name.
	// Returns domain.ErrSnapshotNotFound if it does not exist.
	Load(ctx context.Context, name string) (*domain.Snapshot, error)

	// Delete removes the snapshot stored under name.
	Delete(ctx context.Context, name string) error

	// List returns the names of all stored snapshots.
	List(ctx context.Context) ([]string, error)
}
