package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/automata/pkg/adapters/redis"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := setup(t)
	ports.RunSnapshotStoreContract(t, redis.NewFromClient(client))
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := setup(t)

	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second), redis.WithPrefix("test:"))
	ctx := context.Background()

	snap := domain.NewSnapshot(domain.KindMoore, nil)
	require.NoError(t, store.Save(ctx, "moore", snap))
	assert.True(t, mr.Exists("test:moore"))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"moore"}, names)

	mr.FastForward(2 * time.Second)
	mr.SetTime(time.Now().Add(2 * time.Second))

	_, err = store.Load(ctx, "moore")
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestRedisStore_DeleteRemovesIndex(t *testing.T) {
	mr, client := setup(t)
	store := redis.NewFromClient(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "dfa", domain.NewSnapshot(domain.KindDFA, nil)))
	require.NoError(t, store.Delete(ctx, "dfa"))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)
	assert.False(t, mr.Exists(redis.DefaultPrefix+"dfa"))
}
