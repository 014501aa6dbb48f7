package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Type: domain.KindPDA,
		Meta: domain.Meta{"epsilon": "ε", "maxDepth": 50, "custom": "kept"},
		States: []domain.State{
			{ID: "q0", Label: "q0", IsInitial: true},
			{ID: "q1", Label: "q1", X: 120, Y: 40, IsFinal: true},
		},
		Transitions: []domain.Transition{
			{ID: "t1", From: "q0", To: "q1", Payload: domain.StackOp{Read: "a", Pop: "ε", Push: "A"}},
		},
	}
}

// RunSnapshotStoreContract runs a suite of tests to verify that a SnapshotStore implementation
// adheres to the defined interface contract.
func RunSnapshotStoreContract(t *testing.T, store SnapshotStore) {
	ctx := context.Background()
	name := "contract-test-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		snap := contractSnapshot()

		err := store.Save(ctx, name, snap)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, domain.KindPDA, loaded.Type)
		require.Len(t, loaded.States, 2)
		assert.Equal(t, snap.States[1], loaded.States[1])
		require.Len(t, loaded.Transitions, 1)
		assert.Equal(t, domain.StackOp{Read: "a", Pop: "ε", Push: "A"}, loaded.Transitions[0].Payload)
		assert.Equal(t, "kept", loaded.Meta["custom"])
		assert.Equal(t, 50, loaded.Meta["maxDepth"])
	})

	t.Run("Load returns a copy", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, contractSnapshot()))

		first, err := store.Load(ctx, name)
		require.NoError(t, err)
		first.States[0].Label = "mutated"

		second, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, "q0", second.States[0].Label)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, contractSnapshot()))

		err := store.Delete(ctx, name)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound, "Load after Delete should return ErrSnapshotNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := name + "-1"
		id2 := name + "-2"
		_ = store.Save(ctx, id1, contractSnapshot())
		_ = store.Save(ctx, id2, contractSnapshot())

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, id1)
		assert.Contains(t, names, id2)
	})
}
