package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/schema"
)

// ReadSnapshotFile decodes a .json or .yaml snapshot file.
func ReadSnapshotFile(path string) (*domain.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	snap, err := schema.Decode(data, schema.FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return snap, nil
}

// WriteSnapshotFile encodes snap to path in the format implied by its extension.
func WriteSnapshotFile(path string, snap *domain.Snapshot) error {
	data, err := schema.Encode(snap, schema.FormatFromPath(path))
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ResolveSnapshot finds ref as a file path, then as a stored snapshot name,
// then as a library example id.
func ResolveSnapshot(ctx context.Context, wb *automata.Workbench, ref string) (*domain.Snapshot, error) {
	if _, err := os.Stat(ref); err == nil {
		return ReadSnapshotFile(ref)
	}
	snap, err := wb.Load(ctx, ref)
	if err == nil {
		return snap, nil
	}
	if !errors.Is(err, domain.ErrSnapshotNotFound) {
		return nil, err
	}
	snap, err = wb.Library().Get(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("%q is neither a file, a stored snapshot nor an example: %w", ref, domain.ErrSnapshotNotFound)
	}
	return snap, nil
}
