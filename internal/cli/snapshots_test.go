package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/testutils"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSnapshot(t *testing.T) {
	ctx := context.Background()
	wb, err := automata.New()
	require.NoError(t, err)

	parity := testutils.Example(t, "parity")
	path := filepath.Join(t.TempDir(), "parity.yaml")
	require.NoError(t, WriteSnapshotFile(path, parity))
	_, err = wb.Create(ctx, "stored", domain.KindPDA)
	require.NoError(t, err)

	fromFile, err := ResolveSnapshot(ctx, wb, path)
	require.NoError(t, err)
	assert.Equal(t, domain.KindMoore, fromFile.Type)
	assert.Len(t, fromFile.States, 2)

	stored, err := ResolveSnapshot(ctx, wb, "stored")
	require.NoError(t, err)
	assert.Equal(t, domain.KindPDA, stored.Type)

	lib, err := ResolveSnapshot(ctx, wb, "bit-flip")
	require.NoError(t, err)
	assert.Equal(t, domain.KindTuring, lib.Type)

	_, err = ResolveSnapshot(ctx, wb, "nowhere")
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestReadSnapshotFile_Invalid(t *testing.T) {
	_, err := ReadSnapshotFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
