package cli

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/automata/internal/config"
	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Overrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "automata.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logLevel: warn\nstore:\n  backend: memory\n"), 0644))

	cfg, err := LoadConfig(GlobalOptions{ConfigPath: path})
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, config.BackendMemory, cfg.Store.Backend)

	cfg, err = LoadConfig(GlobalOptions{ConfigPath: path, Dir: dir, LogLevel: "debug"})
	require.NoError(t, err)
	assert.Equal(t, config.BackendFile, cfg.Store.Backend)
	assert.Equal(t, dir, cfg.Store.Dir)
	assert.Equal(t, "debug", cfg.LogLevel)

	_, err = LoadConfig(GlobalOptions{ConfigPath: filepath.Join(dir, "missing.yaml")})
	assert.Error(t, err)

	_, err = LoadConfig(GlobalOptions{ConfigPath: path, Backend: "etcd"})
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	cfg := config.Default()
	_, err := NewLogger(cfg)
	require.NoError(t, err)

	cfg.LogLevel = "loud"
	_, err = NewLogger(cfg)
	assert.Error(t, err)
}

func TestOpenWorkbench_Backends(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	memCfg := config.Default()
	memCfg.Store.Backend = config.BackendMemory

	fileCfg := config.Default()
	fileCfg.Store.Dir = t.TempDir()

	redisCfg := config.Default()
	redisCfg.Store.Backend = config.BackendRedis
	redisCfg.Store.Redis.Addr = mr.Addr()

	tests := map[string]config.Config{
		"memory": memCfg,
		"file":   fileCfg,
		"redis":  redisCfg,
	}
	for name, cfg := range tests {
		t.Run(name, func(t *testing.T) {
			wb, closeFn, err := OpenWorkbench(cfg, logging.NewNop(), observability.NewMetrics())
			require.NoError(t, err)
			defer closeFn()

			_, err = wb.Create(ctx, "m", domain.KindDFA)
			require.NoError(t, err)
			names, err := wb.List(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"m"}, names)
		})
	}

	assert.True(t, mr.Exists("automata:snapshot:m"))
}

func TestOpenWorkbench_Library(t *testing.T) {
	dir := t.TempDir()
	doc := "---\nid: one\ntype: dfa\nstates:\n  - id: q0\n    initial: true\n---\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "one.md"), []byte(doc), 0644))

	cfg := config.Default()
	cfg.Store.Backend = config.BackendMemory
	cfg.Library = dir

	wb, closeFn, err := OpenWorkbench(cfg, logging.NewNop(), nil)
	require.NoError(t, err)
	defer closeFn()

	ids, err := wb.Library().List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"one"}, ids)
}

func TestOpenWorkbench_EncryptedStore(t *testing.T) {
	ctx := context.Background()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)

	dir := t.TempDir()
	t.Setenv(EnvEncryptionKey, base64.StdEncoding.EncodeToString(key))
	cfg, err := LoadConfig(GlobalOptions{Dir: dir})
	require.NoError(t, err)
	cfg.Store.Redact = []string{"author"}

	wb, closeFn, err := OpenWorkbench(cfg, logging.NewNop(), nil)
	require.NoError(t, err)
	defer closeFn()

	snap := domain.NewSnapshot(domain.KindDFA, domain.Meta{"author": "alice"})
	snap.States = []domain.State{{ID: "q0", Label: "start", IsInitial: true}}
	require.NoError(t, wb.Save(ctx, "sealed", snap))

	raw, err := os.ReadFile(filepath.Join(dir, "sealed.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "__encrypted__")
	assert.NotContains(t, string(raw), "start")

	loaded, err := wb.Load(ctx, "sealed")
	require.NoError(t, err)
	assert.Equal(t, "start", loaded.States[0].Label)
	assert.Equal(t, "***", loaded.Meta["author"])

	cfg.Store.Encryption.Key = "bogus"
	_, _, err = OpenWorkbench(cfg, logging.NewNop(), nil)
	assert.Error(t, err)
}
