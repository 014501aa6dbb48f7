package session_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SlowStore simulates latency to provoke lost updates if locking is missing.
type SlowStore struct {
	*memory.Store
}

func (s SlowStore) Load(ctx context.Context, name string) (*domain.Snapshot, error) {
	time.Sleep(2 * time.Millisecond)
	return s.Store.Load(ctx, name)
}

func TestManager_UpdateSerializesEdits(t *testing.T) {
	store := SlowStore{memory.NewStore()}
	manager := session.NewManager(store)
	ctx := context.Background()

	require.NoError(t, manager.Save(ctx, "race", domain.NewSnapshot(domain.KindNFA, nil)))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := manager.Update(ctx, "race", func(s *domain.Snapshot) error {
				s.States = append(s.States, domain.State{ID: fmt.Sprintf("q%d", i)})
				return nil
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	snap, err := manager.Load(ctx, "race")
	require.NoError(t, err)
	assert.Len(t, snap.States, 10, "no edit may be lost")
}

func TestManager_UpdateIsCopyOnWrite(t *testing.T) {
	manager := session.NewManager(memory.NewStore())
	ctx := context.Background()

	original := domain.NewSnapshot(domain.KindDFA, nil)
	original.States = append(original.States, domain.State{ID: "q0", Label: "q0", IsInitial: true})
	require.NoError(t, manager.Save(ctx, "dfa", original))

	before, err := manager.Load(ctx, "dfa")
	require.NoError(t, err)

	after, err := manager.Update(ctx, "dfa", func(s *domain.Snapshot) error {
		s.States[0].Label = "start"
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, "q0", before.States[0].Label)
	assert.Equal(t, "start", after.States[0].Label)
}

func TestManager_UpdateFailureKeepsStoredSnapshot(t *testing.T) {
	boom := errors.New("boom")
	manager := session.NewManager(memory.NewStore(), session.WithValidator(func(s *domain.Snapshot) error {
		if len(s.States) > 1 {
			return boom
		}
		return nil
	}))
	ctx := context.Background()
	require.NoError(t, manager.Save(ctx, "dfa", domain.NewSnapshot(domain.KindDFA, nil)))

	_, err := manager.Update(ctx, "dfa", func(s *domain.Snapshot) error {
		s.States = append(s.States, domain.State{ID: "q0"}, domain.State{ID: "q1"})
		return nil
	})
	assert.ErrorIs(t, err, boom)

	_, err = manager.Update(ctx, "dfa", func(s *domain.Snapshot) error { return boom })
	assert.ErrorIs(t, err, boom)

	snap, err := manager.Load(ctx, "dfa")
	require.NoError(t, err)
	assert.Empty(t, snap.States)

	_, err = manager.Update(ctx, "missing", func(s *domain.Snapshot) error { return nil })
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestManager_LoadOrCreate(t *testing.T) {
	manager := session.NewManager(SlowStore{memory.NewStore()})
	ctx := context.Background()

	var calls int
	var mu sync.Mutex
	create := func() *domain.Snapshot {
		mu.Lock()
		calls++
		mu.Unlock()
		return domain.NewSnapshot(domain.KindMealy, nil)
	}

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snap, err := manager.LoadOrCreate(ctx, "atomic", create)
			assert.NoError(t, err)
			assert.Equal(t, domain.KindMealy, snap.Type)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, calls)
}

type countingLocker struct {
	mu     sync.Mutex
	locks  int
	ttl    time.Duration
	failOn string
}

func (l *countingLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	if key == l.failOn {
		return nil, errors.New("unavailable")
	}
	l.mu.Lock()
	l.locks++
	l.ttl = ttl
	l.mu.Unlock()
	return func(context.Context) error { return nil }, nil
}

func TestManager_DistributedLocker(t *testing.T) {
	locker := &countingLocker{failOn: "blocked"}
	manager := session.NewManager(memory.NewStore(), session.WithLocker(locker), session.WithLockTTL(time.Second))
	ctx := context.Background()

	require.NoError(t, manager.Save(ctx, "a", domain.NewSnapshot(domain.KindDFA, nil)))
	_, err := manager.Load(ctx, "a")
	require.NoError(t, err)

	assert.Equal(t, 2, locker.locks)
	assert.Equal(t, time.Second, locker.ttl)

	err = manager.Save(ctx, "blocked", domain.NewSnapshot(domain.KindDFA, nil))
	assert.ErrorContains(t, err, "distributed lock")
}
