package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*GenerationStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewGenerationStore(client), mr
}

func TestGenerationStore_NextAndCurrent(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	cur, err := store.Current(ctx, "ads:1")
	require.NoError(t, err)
	assert.Zero(t, cur)

	first, err := store.Next(ctx, "ads:1")
	require.NoError(t, err)
	second, err := store.Next(ctx, "ads:1")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), first)
	assert.Equal(t, uint64(2), second)

	cur, err = store.Current(ctx, "ads:1")
	require.NoError(t, err)
	assert.Equal(t, second, cur)

	other, err := store.Next(ctx, "teachers:1")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), other)

	assert.True(t, mr.Exists("gen:ads:1"))
	assert.Equal(t, generationTTL, mr.TTL("gen:ads:1"))
}

func TestGenerationStore_Expires(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	_, err := store.Next(ctx, "ads:1")
	require.NoError(t, err)

	mr.FastForward(generationTTL + time.Second)

	cur, err := store.Current(ctx, "ads:1")
	require.NoError(t, err)
	assert.Zero(t, cur)
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Connect(context.Background(), Config{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	addr := mr.Addr()
	mr.Close()
	_, err = Connect(context.Background(), Config{Addr: addr, Timeout: 50 * time.Millisecond})
	assert.Error(t, err)
}
