package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/config"
	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/adapters/file"
	"github.com/aretw0/automata/pkg/adapters/loam"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/adapters/redis"
	"github.com/aretw0/automata/pkg/observability"
	"github.com/aretw0/automata/pkg/persistence/middleware"
	"github.com/aretw0/automata/pkg/ports"
)

// EnvEncryptionKey overrides store.encryption.key so the key can stay out of the config file.
const EnvEncryptionKey = "AUTOMATA_ENCRYPTION_KEY"

// GlobalOptions carries the persistent flags shared by every command.
type GlobalOptions struct {
	ConfigPath string // empty means config.DefaultPath, which may be missing
	Dir        string // overrides store.dir and forces the file backend
	Backend    string
	LogLevel   string
	Library    string
}

// LoadConfig reads the configuration file and applies flag overrides.
func LoadConfig(opts GlobalOptions) (config.Config, error) {
	path, required := opts.ConfigPath, true
	if path == "" {
		path, required = config.DefaultPath, false
	}
	cfg, err := config.Load(path, required)
	if err != nil {
		return cfg, err
	}

	if opts.Dir != "" {
		cfg.Store.Backend = config.BackendFile
		cfg.Store.Dir = opts.Dir
	}
	if opts.Backend != "" {
		cfg.Store.Backend = opts.Backend
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.Library != "" {
		cfg.Library = opts.Library
	}
	if key := os.Getenv(EnvEncryptionKey); key != "" {
		cfg.Store.Encryption.Key = key
	}
	return cfg, cfg.Validate()
}

// NewLogger builds the stderr logger for cfg.LogLevel.
func NewLogger(cfg config.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.New(level), nil
}

// OpenWorkbench wires the store, locker and library selected by cfg.
// The returned close func releases backend connections.
func OpenWorkbench(cfg config.Config, logger *slog.Logger, metrics *observability.Metrics) (*automata.Workbench, func() error, error) {
	opts := []automata.Option{automata.WithLogger(logger)}
	if metrics != nil {
		opts = append(opts, automata.WithMetrics(metrics))
	}
	closeFn := func() error { return nil }

	var store ports.SnapshotStore
	switch cfg.Store.Backend {
	case config.BackendMemory:
		store = memory.NewStore()
	case config.BackendFile:
		store = file.New(cfg.Store.Dir)
	case config.BackendRedis:
		rc := cfg.Store.Redis
		rs := redis.New(rc.Addr, rc.Password, rc.DB,
			redis.WithPrefix(rc.Prefix+":snapshot:"),
			redis.WithTTL(rc.TTL.Std()),
		)
		store = rs
		opts = append(opts, automata.WithLocker(redis.NewLocker(rs.Client(), rc.Prefix+":")))
		closeFn = rs.Close
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	mws, err := storeMiddleware(cfg.Store)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	opts = append(opts, automata.WithStore(middleware.Chain(store, mws...)))

	if cfg.Library != "" {
		library, err := loam.Open(cfg.Library)
		if err != nil {
			closeFn()
			return nil, nil, fmt.Errorf("opening library: %w", err)
		}
		opts = append(opts, automata.WithLibrary(library))
	}

	wb, err := automata.New(opts...)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	logger.Debug("workbench ready",
		"backend", cfg.Store.Backend,
		"library", cfg.Library,
		"encrypted", cfg.Store.Encryption.Enabled(),
	)
	return wb, closeFn, nil
}

// storeMiddleware redacts before sealing, so masked values never reach the ciphertext.
func storeMiddleware(sc config.Store) ([]middleware.Middleware, error) {
	var mws []middleware.Middleware
	if len(sc.Redact) > 0 {
		mw, err := middleware.NewRedactionMiddleware(sc.Redact)
		if err != nil {
			return nil, err
		}
		mws = append(mws, mw)
	}
	if sc.Encryption.Enabled() {
		enc := middleware.EncryptionConfig{}
		key, err := middleware.DecodeKey(sc.Encryption.Key)
		if err != nil {
			return nil, fmt.Errorf("store.encryption.key: %w", err)
		}
		enc.ActiveKey = key
		for i, s := range sc.Encryption.FallbackKeys {
			k, err := middleware.DecodeKey(s)
			if err != nil {
				return nil, fmt.Errorf("store.encryption.fallbackKeys[%d]: %w", i, err)
			}
			enc.FallbackKeys = append(enc.FallbackKeys, k)
		}
		mw, err := middleware.NewEncryptionMiddleware(enc)
		if err != nil {
			return nil, err
		}
		mws = append(mws, mw)
	}
	return mws, nil
}
