package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/aretw0/automata/pkg/domain"
)

// MockStore accepts everything and stores nothing.
type MockStore struct{}

func (m *MockStore) Save(ctx context.Context, name string, snap *domain.Snapshot) error {
	return nil
}
func (m *MockStore) Load(ctx context.Context, name string) (*domain.Snapshot, error) {
	return nil, domain.ErrSnapshotNotFound
}
func (m *MockStore) Delete(ctx context.Context, name string) error { return nil }
func (m *MockStore) List(ctx context.Context) ([]string, error)    { return nil, nil }

func TestManager_LockLifecycle(t *testing.T) {
	mgr := NewManager(&MockStore{})
	ctx := context.Background()
	count := 10000

	for i := 0; i < count; i++ {
		name := fmt.Sprintf("snapshot-%d", i)
		_ = mgr.Save(ctx, name, domain.NewSnapshot(domain.KindDFA, nil))
		_ = mgr.Delete(ctx, name)
	}

	if lockCount := len(mgr.locks); lockCount != 0 {
		t.Errorf("Memory Leak Detected: %d locks remaining in memory after Delete", lockCount)
	}
}
