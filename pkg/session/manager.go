package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"log/slog"

	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
)

// DefaultLockTTL bounds how long a crashed replica can hold a distributed lock.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates snapshot access, ensuring safe concurrent edits.
// It uses reference counting to garbage collect unused locks.
type Manager struct {
	store ports.SnapshotStore

	mu    sync.Mutex
	locks map[string]*lockEntry

	locker   ports.DistributedLocker
	lockTTL  time.Duration
	validate func(*domain.Snapshot) error
	logger   *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL overrides DefaultLockTTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithValidator rejects edits whose result fails fn. Nothing is saved in that case.
func WithValidator(fn func(*domain.Snapshot) error) Option {
	return func(m *Manager) {
		m.validate = fn
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a new Manager over the given store.
func NewManager(store ports.SnapshotStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST lock entry.mu, and then call release(name) after unlocking.
func (m *Manager) acquire(name string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[name]
	if !exists {
		entry = &lockEntry{}
		m.locks[name] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[name]
	if !exists {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, name)
	}
}

// Load retrieves a snapshot from the store.
func (m *Manager) Load(ctx context.Context, name string) (*domain.Snapshot, error) {
	var snap *domain.Snapshot
	err := m.WithLock(ctx, name, func(ctx context.Context) error {
		var err error
		snap, err = m.store.Load(ctx, name)
		return err
	})
	return snap, err
}

// LoadOrCreate loads name, or saves and returns the snapshot built by create.
func (m *Manager) LoadOrCreate(ctx context.Context, name string, create func() *domain.Snapshot) (*domain.Snapshot, error) {
	var snap *domain.Snapshot
	err := m.WithLock(ctx, name, func(ctx context.Context) error {
		var err error
		snap, err = m.store.Load(ctx, name)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrSnapshotNotFound) {
			return fmt.Errorf("failed to check snapshot existence: %w", err)
		}

		snap = create()
		if err := m.store.Save(ctx, name, snap); err != nil {
			return fmt.Errorf("failed to initialize snapshot: %w", err)
		}
		return nil
	})
	return snap, err
}

// Save persists the snapshot, after validation when a validator is set.
func (m *Manager) Save(ctx context.Context, name string, snap *domain.Snapshot) error {
	if m.validate != nil {
		if err := m.validate(snap); err != nil {
			return err
		}
	}
	return m.WithLock(ctx, name, func(ctx context.Context) error {
		return m.store.Save(ctx, name, snap)
	})
}

// Update loads name, applies fn to a deep copy and saves the copy.
// Readers holding the previous snapshot never observe the edit.
func (m *Manager) Update(ctx context.Context, name string, fn func(*domain.Snapshot) error) (*domain.Snapshot, error) {
	var next *domain.Snapshot
	err := m.WithLock(ctx, name, func(ctx context.Context) error {
		current, err := m.store.Load(ctx, name)
		if err != nil {
			return err
		}
		draft := current.Clone()
		if err := fn(draft); err != nil {
			return err
		}
		if m.validate != nil {
			if err := m.validate(draft); err != nil {
				return err
			}
		}
		if err := m.store.Save(ctx, name, draft); err != nil {
			return fmt.Errorf("failed to save snapshot %s: %w", name, err)
		}
		next = draft
		return nil
	})
	return next, err
}

// Delete removes the snapshot from the store.
func (m *Manager) Delete(ctx context.Context, name string) error {
	return m.WithLock(ctx, name, func(ctx context.Context) error {
		return m.store.Delete(ctx, name)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying snapshot store.
func (m *Manager) Store() ports.SnapshotStore {
	return m.store
}

// WithLock executes fn while holding the lock for name.
func (m *Manager) WithLock(ctx context.Context, name string, fn func(context.Context) error) error {
	entry := m.acquire(name)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(name)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, name, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"snapshot", name,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
