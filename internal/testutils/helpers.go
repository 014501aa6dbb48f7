// Package testutils holds fixtures shared by tests across packages.
package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/dsl"
)

// SetupLibrary writes docs (file name -> markdown with snapshot front matter)
// into a fresh temp dir and initializes a Loam repository over it.
// It returns the absolute path and the repository, failing the test on error.
func SetupLibrary(t *testing.T, docs map[string]string, opts ...loam.Option) (string, core.Repository) {
	t.Helper()

	dir, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	repo, err := loam.Init(dir, opts...)
	require.NoError(t, err, "Failed to init loam repo")

	for name, content := range docs {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir, repo
}

// Example builds one of the built-in example machines by id.
func Example(t *testing.T, id string) *domain.Snapshot {
	t.Helper()
	b, ok := dsl.Examples()[id]
	require.True(t, ok, "unknown example %q", id)
	snap, err := b.Build()
	require.NoError(t, err)
	return snap
}
