package ports

import (
	"context"

	"github.com/aretw0/automata/pkg/domain"
)

// SnapshotLoader is a read-only source of snapshots, such as a shared library of examples.
type SnapshotLoader interface {
	// Get loads the snapshot identified by id.
	// Returns domain.ErrSnapshotNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.Snapshot, error)

	// List returns the IDs of every snapshot the loader can serve.
	List(ctx context.Context) ([]string, error)
}
