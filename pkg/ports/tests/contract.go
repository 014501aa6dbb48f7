package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
)

// SnapshotLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.SnapshotLoader.
// expected maps every ID the loader must serve to the kind stored under it.
func SnapshotLoaderContractTest(t *testing.T, loader ports.SnapshotLoader, expected map[string]domain.Kind) {
	t.Helper()
	ctx := context.Background()

	t.Run("Get_Success", func(t *testing.T) {
		for id, kind := range expected {
			snap, err := loader.Get(ctx, id)
			if err != nil {
				t.Fatalf("unexpected error getting snapshot %s: %v", id, err)
			}
			if snap.Type != kind {
				t.Errorf("kind mismatch for %s. got %q, want %q", id, snap.Type, kind)
			}
		}
	})

	t.Run("Get_NotFound", func(t *testing.T) {
		_, err := loader.Get(ctx, "non-existent-snapshot")
		if !errors.Is(err, domain.ErrSnapshotNotFound) {
			t.Errorf("expected ErrSnapshotNotFound, got %v", err)
		}
	})

	t.Run("List", func(t *testing.T) {
		ids, err := loader.List(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing snapshots: %v", err)
		}

		if len(ids) != len(expected) {
			t.Errorf("expected %d snapshots, got %d", len(expected), len(ids))
		}

		lookup := make(map[string]bool)
		for _, id := range ids {
			lookup[id] = true
		}

		for id := range expected {
			if !lookup[id] {
				t.Errorf("snapshot %s missing from list", id)
			}
		}
	})
}
