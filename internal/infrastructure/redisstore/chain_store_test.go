package redisstore_test

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/redisstore"
)

func getRedisClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis no disponible: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestChainStore_LoadSave(t *testing.T) {
	client := getRedisClient(t)
	ctx := context.Background()
	client.Del(ctx, "ledger:chain:test", "ledger:chain:test:meta")

	store := redisstore.NewChainStore(client, "test")
	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, store.Save(ctx, repository.ChainSnapshot{Payload: []byte("v1"), BlockCount: 3, TailHash: "abc"}))
	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "v1", string(got))

	tail, err := client.HGet(ctx, "ledger:chain:test:meta", "tail").Result()
	require.NoError(t, err)
	assert.Equal(t, "abc", tail)
}
