package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunSnapshotStoreContract(t, memory.NewStore())
}

func TestMemoryStore_SaveIsolatesCaller(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	snap := domain.NewSnapshot(domain.KindDFA, nil)
	snap.States = append(snap.States, domain.State{ID: "q0", Label: "q0", IsInitial: true})
	require.NoError(t, store.Save(ctx, "dfa", snap))

	snap.States[0].Label = "mutated"
	snap.States = append(snap.States, domain.State{ID: "q1"})

	loaded, err := store.Load(ctx, "dfa")
	require.NoError(t, err)
	require.Len(t, loaded.States, 1)
	assert.Equal(t, "q0", loaded.States[0].Label)
}

func TestMemoryStore_RejectsEmptyName(t *testing.T) {
	store := memory.NewStore()
	assert.Error(t, store.Save(context.Background(), "", domain.NewSnapshot(domain.KindDFA, nil)))
	assert.Error(t, store.Save(context.Background(), "nil", nil))
}
