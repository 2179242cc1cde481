package loyalty

import (
	"context"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return mr, client
}

func TestRedisStore_ReadCountDefaults(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewRedisStore(client)
	ctx := context.Background()

	n, err := store.ReadCount(ctx, "fayano_loyalty_count")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, mr.Set("fayano_loyalty_count", "not-a-number"))
	n, err = store.ReadCount(ctx, "fayano_loyalty_count")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, mr.Set("fayano_loyalty_count", "7"))
	n, err = store.ReadCount(ctx, "fayano_loyalty_count")
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestRedisStore_IncrementSequential(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewRedisStore(client)
	ctx := context.Background()

	require.NoError(t, mr.Set("k", "3"))
	for i := 1; i <= 5; i++ {
		n, err := store.Increment(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, 3+i, n)
	}

	raw, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "8", raw)
}

func TestRedisStore_IncrementRecoversFromGarbage(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewRedisStore(client)

	require.NoError(t, mr.Set("k", "garbage"))
	n, err := store.Increment(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRedisStore_IncrementConcurrentWriters(t *testing.T) {
	_, client := setupTestRedis(t)
	store := NewRedisStore(client)
	ctx := context.Background()

	const writers = 4
	const perWriter = 5
	var wg sync.WaitGroup
	errs := make(chan error, writers*perWriter)
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				if _, err := store.Increment(ctx, "k"); err != nil {
					errs <- err
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	n, err := store.ReadCount(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, writers*perWriter, n)
}

func TestRedisStore_IncrementOnce(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewRedisStore(client)
	ctx := context.Background()

	n, applied, err := store.IncrementOnce(ctx, "k", "marker:s1")
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, 1, n)

	n, applied, err = store.IncrementOnce(ctx, "k", "marker:s1")
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, 1, n)

	n, applied, err = store.IncrementOnce(ctx, "k", "marker:s2")
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, 2, n)

	assert.True(t, mr.Exists("marker:s1"))
	assert.Positive(t, mr.TTL("marker:s1"))

	_, _, err = store.IncrementOnce(ctx, "k", "")
	assert.Error(t, err)
}
