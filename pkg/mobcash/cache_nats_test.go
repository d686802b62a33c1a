package mobcash_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/codelabbj/icash-admin/pkg/mobcash"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryBucket is a jetstream.KeyValue holding values in a map. Every call
// fails once its context is done, as the real bucket does.
type memoryBucket struct {
	jetstream.KeyValue

	mu     sync.Mutex
	values map[string][]byte
}

func newMemoryBucket() *memoryBucket {
	return &memoryBucket{values: make(map[string][]byte)}
}

type bucketEntry struct {
	jetstream.KeyValueEntry

	value []byte
}

func (e bucketEntry) Value() []byte { return e.value }

type bucketKeys chan string

func (k bucketKeys) Keys() <-chan string { return k }
func (k bucketKeys) Stop() error         { return nil }

func (b *memoryBucket) Get(ctx context.Context, key string) (jetstream.KeyValueEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	value, ok := b.values[key]
	if !ok {
		return nil, jetstream.ErrKeyNotFound
	}

	return bucketEntry{value: value}, nil
}

func (b *memoryBucket) Put(ctx context.Context, key string, value []byte) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.values[key] = value

	return uint64(len(b.values)), nil
}

func (b *memoryBucket) Delete(ctx context.Context, key string, _ ...jetstream.KVDeleteOpt) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.values[key]; !ok {
		return jetstream.ErrKeyNotFound
	}

	delete(b.values, key)

	return nil
}

func (b *memoryBucket) Purge(ctx context.Context, key string, opts ...jetstream.KVDeleteOpt) error {
	return b.Delete(ctx, key, opts...)
}

func (b *memoryBucket) ListKeys(ctx context.Context, _ ...jetstream.WatchOpt) (jetstream.KeyLister, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	keys := make(bucketKeys, len(b.values))
	for key := range b.values {
		keys <- key
	}

	close(keys)

	return keys, nil
}

func (b *memoryBucket) len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.values)
}

func TestNATSKVCache_RoundTrip(t *testing.T) {
	t.Parallel()

	bucket := newMemoryBucket()
	cache, err := mobcash.NewNATSKVCache(&mobcash.NATSKVConfig{KeyValue: bucket})
	require.NoError(t, err)
	defer cache.Close()

	ctx := context.Background()
	entry := &mobcash.CacheEntry{Data: []byte(`[{"id":1}]`), ExpiresAt: time.Now().Add(time.Hour)}

	require.NoError(t, cache.Set(ctx, "networks?page=1", entry))
	assert.Equal(t, 1, bucket.len())

	got, err := cache.Get(ctx, "networks?page=1")
	require.NoError(t, err)
	assert.Equal(t, entry.Data, got.Data)
	assert.True(t, cache.Has(ctx, "networks?page=1"))

	_, err = cache.Get(ctx, "networks?page=2")
	require.ErrorIs(t, err, mobcash.ErrCacheKeyNotFound)

	require.NoError(t, cache.Delete(ctx, "networks?page=1"))
	require.NoError(t, cache.Delete(ctx, "networks?page=1"), "missing keys are not an error")
	assert.False(t, cache.Has(ctx, "networks?page=1"))
}

func TestNATSKVCache_ExpiredEntry(t *testing.T) {
	t.Parallel()

	cache, err := mobcash.NewNATSKVCache(&mobcash.NATSKVConfig{KeyValue: newMemoryBucket()})
	require.NoError(t, err)

	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "coupons", &mobcash.CacheEntry{
		Data:      []byte(`[]`),
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	_, err = cache.Get(ctx, "coupons")
	require.ErrorIs(t, err, mobcash.ErrCacheEntryExpired)
}

func TestNATSKVCache_Clear(t *testing.T) {
	t.Parallel()

	bucket := newMemoryBucket()
	cache, err := mobcash.NewNATSKVCache(&mobcash.NATSKVConfig{KeyValue: bucket})
	require.NoError(t, err)

	ctx := context.Background()

	for _, key := range []string{"networks", "coupons", "bonuses"} {
		require.NoError(t, cache.Set(ctx, key, &mobcash.CacheEntry{Data: []byte(`[]`)}))
	}

	require.NoError(t, cache.Clear(ctx))
	assert.Zero(t, bucket.len())
}

func TestNATSKVCache_HonoursContext(t *testing.T) {
	t.Parallel()

	bucket := newMemoryBucket()
	cache, err := mobcash.NewNATSKVCache(&mobcash.NATSKVConfig{KeyValue: bucket})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, cache.Set(ctx, "networks", &mobcash.CacheEntry{Data: []byte(`[]`)}), context.Canceled)
	assert.Zero(t, bucket.len())

	_, err = cache.Get(ctx, "networks")
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, cache.Delete(ctx, "networks"), context.Canceled)
	require.ErrorIs(t, cache.Clear(ctx), context.Canceled)
}

func TestNATSKVCache_RequiresURL(t *testing.T) {
	t.Parallel()

	_, err := mobcash.NewNATSKVCache(&mobcash.NATSKVConfig{})
	require.ErrorIs(t, err, mobcash.ErrNATSURLRequired)

	_, err = mobcash.NewNATSKVCache(nil)
	require.ErrorIs(t, err, mobcash.ErrNATSConfigRequired)
}
