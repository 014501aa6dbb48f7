package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/automata/pkg/domain"
)

// Store implements ports.SnapshotStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Snapshot
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Snapshot),
	}
}

// Save keeps a deep copy so later edits by the caller never leak into the store.
func (s *Store) Save(ctx context.Context, name string, snap *domain.Snapshot) error {
	if name == "" {
		return fmt.Errorf("snapshot name cannot be empty")
	}
	if snap == nil {
		return fmt.Errorf("snapshot %s is nil", name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = snap.Clone()
	return nil
}

// Load returns a copy so the caller can't mutate the stored snapshot by pointer.
func (s *Store) Load(ctx context.Context, name string) (*domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.data[name]
	if !ok {
		return nil, domain.ErrSnapshotNotFound
	}
	return snap.Clone(), nil
}

// Delete removes the snapshot.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns stored names in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
