package query_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/codelabbj/icash-admin/internal/query"
	"github.com/codelabbj/icash-admin/pkg/mobcash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

var errBoom = errors.New("boom")

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type countingFetcher struct {
	calls atomic.Int32
	gate  chan struct{}
	body  atomic.Value
	err   atomic.Value
}

func newCountingFetcher(body string) *countingFetcher {
	f := &countingFetcher{}
	f.body.Store([]byte(body))

	return f
}

func (f *countingFetcher) Fetch(ctx context.Context) ([]byte, error) {
	f.calls.Add(1)

	if f.gate != nil {
		<-f.gate
	}

	if err, ok := f.err.Load().(error); ok && err != nil {
		return nil, err
	}

	body, _ := f.body.Load().([]byte)

	return body, nil
}

func newStore(opts ...query.Option) *query.Store {
	base := []query.Option{
		query.WithRetries(0),
		query.WithRetryBackoff(time.Millisecond, 5*time.Millisecond),
	}

	return query.New(mobcash.NewMemoryCache(100), append(base, opts...)...)
}

func TestKey_StableAcrossFieldOrder(t *testing.T) {
	t.Parallel()

	first := query.NewKey("networks", mobcash.Filter{"page": 1, "search": "mtn", "enable": true})
	second := query.NewKey("networks", mobcash.Filter{"enable": true, "search": "mtn", "page": 1})

	assert.Equal(t, first.String(), second.String())
	assert.NotEqual(t, first.String(), query.NewKey("platforms", first.Filter).String())
}

func TestStore_FetchDeduplicatesConcurrentCallers(t *testing.T) {
	t.Parallel()

	store := newStore()
	fetcher := newCountingFetcher(`[]`)
	fetcher.gate = make(chan struct{})
	key := query.NewKey("networks", mobcash.DefaultListFilter())

	const callers = 10

	var wg sync.WaitGroup

	results := make([][]byte, callers)

	for i := range callers {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			body, err := store.Fetch(context.Background(), key, fetcher.Fetch)
			assert.NoError(t, err)

			results[i] = body
		}(i)
	}

	require.Eventually(t, func() bool { return fetcher.calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(fetcher.gate)
	wg.Wait()

	assert.Equal(t, int32(1), fetcher.calls.Load())

	for _, body := range results {
		assert.Equal(t, []byte(`[]`), body)
	}
}

func TestStore_ReadWithoutDataReportsLoading(t *testing.T) {
	t.Parallel()

	store := newStore(query.WithStaleTime(time.Hour))
	fetcher := newCountingFetcher(`{"count":0,"next":null,"previous":null,"results":[]}`)
	key := query.NewKey("platforms", nil)

	first := store.Read(context.Background(), key, fetcher.Fetch)
	assert.True(t, first.IsLoading)
	assert.False(t, first.HasData())
	assert.False(t, first.IsError)

	require.Eventually(t, func() bool {
		res, ok := store.Peek(key)

		return ok && res.HasData()
	}, time.Second, time.Millisecond)

	second := store.Read(context.Background(), key, fetcher.Fetch)
	assert.False(t, second.IsLoading)
	assert.False(t, second.IsStale)
	assert.NotEmpty(t, second.Data)
	assert.Equal(t, int32(1), fetcher.calls.Load())
}

func TestStore_StaleDataIsServedAndRevalidated(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	store := newStore(query.WithStaleTime(time.Minute), query.WithClock(clock.Now))
	fetcher := newCountingFetcher(`[1]`)
	key := query.NewKey("bonuses", nil)

	_, err := store.Fetch(context.Background(), key, fetcher.Fetch)
	require.NoError(t, err)

	fresh := store.Read(context.Background(), key, fetcher.Fetch)
	assert.False(t, fresh.IsStale)
	assert.Equal(t, int32(1), fetcher.calls.Load())

	clock.Advance(2 * time.Minute)
	fetcher.body.Store([]byte(`[2]`))

	stale := store.Read(context.Background(), key, fetcher.Fetch)
	assert.Equal(t, []byte(`[1]`), stale.Data)
	assert.False(t, stale.IsLoading)
	assert.True(t, stale.IsFetching)

	require.Eventually(t, func() bool {
		res, _ := store.Peek(key)

		return string(res.Data) == `[2]`
	}, time.Second, time.Millisecond)
}

func TestStore_ErrorKeepsPreviousData(t *testing.T) {
	t.Parallel()

	store := newStore()
	fetcher := newCountingFetcher(`[1]`)
	key := query.NewKey("deposits", nil)

	_, err := store.Fetch(context.Background(), key, fetcher.Fetch)
	require.NoError(t, err)

	fetcher.err.Store(error(&mobcash.ResponseError{StatusCode: http.StatusBadGateway}))

	_, err = store.Fetch(context.Background(), key, fetcher.Fetch)
	require.Error(t, err)

	res, ok := store.Peek(key)
	require.True(t, ok)
	assert.True(t, res.IsError)
	assert.Equal(t, []byte(`[1]`), res.Data)
}

func TestStore_RetriesServerErrorsOnly(t *testing.T) {
	t.Parallel()

	t.Run("server errors are retried", func(t *testing.T) {
		t.Parallel()

		store := newStore(query.WithRetries(3))

		var calls atomic.Int32

		fetch := func(ctx context.Context) ([]byte, error) {
			if calls.Add(1) < 3 {
				return nil, &mobcash.ResponseError{StatusCode: http.StatusInternalServerError}
			}

			return []byte(`[]`), nil
		}

		body, err := store.Fetch(context.Background(), query.NewKey("users", nil), fetch)
		require.NoError(t, err)
		assert.Equal(t, []byte(`[]`), body)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("retries are bounded", func(t *testing.T) {
		t.Parallel()

		store := newStore(query.WithRetries(2))

		var calls atomic.Int32

		fetch := func(ctx context.Context) ([]byte, error) {
			calls.Add(1)

			return nil, errBoom
		}

		_, err := store.Fetch(context.Background(), query.NewKey("users", nil), fetch)
		require.ErrorIs(t, err, errBoom)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("client errors are final", func(t *testing.T) {
		t.Parallel()

		store := newStore(query.WithRetries(3))

		var calls atomic.Int32

		fetch := func(ctx context.Context) ([]byte, error) {
			calls.Add(1)

			return nil, &mobcash.ResponseError{StatusCode: http.StatusNotFound, Detail: "Not found."}
		}

		_, err := store.Fetch(context.Background(), query.NewKey("users", nil), fetch)
		require.Error(t, err)
		assert.True(t, mobcash.IsNotFound(err))
		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestStore_InvalidateMarksEveryFilterVariantStale(t *testing.T) {
	t.Parallel()

	store := newStore(query.WithStaleTime(time.Hour))
	fetcher := newCountingFetcher(`[]`)
	other := newCountingFetcher(`[]`)

	pageOne := query.NewKey("networks", mobcash.Filter{"page": 1})
	pageTwo := query.NewKey("networks", mobcash.Filter{"page": 2, "search": "mtn"})
	platforms := query.NewKey("platforms", nil)

	for _, key := range []query.Key{pageOne, pageTwo} {
		_, err := store.Fetch(context.Background(), key, fetcher.Fetch)
		require.NoError(t, err)
	}

	_, err := store.Fetch(context.Background(), platforms, other.Fetch)
	require.NoError(t, err)

	store.Invalidate(context.Background(), "networks")

	for _, key := range []query.Key{pageOne, pageTwo} {
		res, ok := store.Peek(key)
		require.True(t, ok)
		assert.True(t, res.IsStale, key.String())
	}

	res, _ := store.Peek(platforms)
	assert.False(t, res.IsStale)

	// Unobserved entries wait for their next read.
	assert.Equal(t, int32(2), fetcher.calls.Load())

	_, err = store.Fetch(context.Background(), pageOne, fetcher.Fetch)
	require.NoError(t, err)
	assert.Equal(t, int32(3), fetcher.calls.Load())
}

func TestStore_InvalidateDuringRefetchFetchesAgain(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newStore(query.WithStaleTime(time.Hour))
	key := query.NewKey("telephones", nil)

	var (
		version atomic.Int32
		calls   atomic.Int32
		release = make(chan struct{})
	)

	version.Store(1)

	// The backend answers with its state when the request arrives.
	fetch := func(ctx context.Context) ([]byte, error) {
		seen := version.Load()

		if calls.Add(1) == 2 {
			<-release
		}

		return []byte(fmt.Sprintf("[%d]", seen)), nil
	}

	observer := store.Observe(ctx, key, fetch)
	defer observer.Close()

	require.Eventually(t, func() bool { return observer.Current().HasData() }, time.Second, time.Millisecond)

	version.Store(2)
	store.Invalidate(ctx, "telephones")
	require.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, time.Millisecond)

	version.Store(3)
	store.Invalidate(ctx, "telephones")
	close(release)

	require.Eventually(t, func() bool { return string(observer.Current().Data) == `[3]` }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(3), calls.Load())
	assert.False(t, observer.Current().IsStale)
}

type recordingLogger struct {
	mu   sync.Mutex
	msgs []string
}

func (l *recordingLogger) record(msg string) {
	l.mu.Lock()
	l.msgs = append(l.msgs, msg)
	l.mu.Unlock()
}

func (l *recordingLogger) Debug(msg string, _ map[string]interface{}) { l.record(msg) }
func (l *recordingLogger) Info(msg string, _ map[string]interface{})  { l.record(msg) }
func (l *recordingLogger) Warn(msg string, _ map[string]interface{})  { l.record(msg) }
func (l *recordingLogger) Error(msg string, _ map[string]interface{}) { l.record(msg) }

func (l *recordingLogger) messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]string(nil), l.msgs...)
}

// undeletableCache keeps payloads but fails every delete, like a shared
// bucket that went away.
type undeletableCache struct {
	*mobcash.MemoryCache
}

func (c undeletableCache) Delete(ctx context.Context, key string) error {
	return errBoom
}

func TestStore_LogsPayloadsLeftBehind(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	logger := &recordingLogger{}
	clock := newFakeClock()
	store := query.New(undeletableCache{mobcash.NewMemoryCache(10)},
		query.WithRetries(0),
		query.WithLogger(logger),
		query.WithClock(clock.Now),
		query.WithGCTime(time.Minute),
	)

	_, err := store.Fetch(ctx, query.NewKey("bonuses", nil), newCountingFetcher(`[]`).Fetch)
	require.NoError(t, err)

	store.Invalidate(ctx, "bonuses")
	assert.Contains(t, logger.messages(), "query payload not dropped")

	clock.Advance(time.Hour)
	assert.Equal(t, 1, store.Collect(ctx))
	assert.Len(t, filterMessages(logger.messages(), "query payload not dropped"), 2)
}

func filterMessages(msgs []string, want string) []string {
	var out []string

	for _, msg := range msgs {
		if msg == want {
			out = append(out, msg)
		}
	}

	return out
}

func TestObserver_CloseStopsUpdates(t *testing.T) {
	t.Parallel()

	store := newStore(query.WithStaleTime(time.Hour))
	fetcher := newCountingFetcher(`[1]`)
	fetcher.gate = make(chan struct{})
	key := query.NewKey("notifications", nil)

	kept := store.Observe(context.Background(), key, fetcher.Fetch)
	defer kept.Close()

	closed := store.Observe(context.Background(), key, fetcher.Fetch)
	assert.True(t, closed.Current().IsLoading)

	closed.Close()
	close(fetcher.gate)

	require.Eventually(t, func() bool { return kept.Current().HasData() }, time.Second, time.Millisecond)

	assert.False(t, closed.Current().HasData())

	for range closed.Updates() {
		// drain what was queued before Close
	}

	assert.Equal(t, int32(1), fetcher.calls.Load())
}

func TestStore_FocusRevalidatesObservedStaleEntries(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	store := newStore(query.WithStaleTime(time.Minute), query.WithClock(clock.Now))
	observed := newCountingFetcher(`[]`)
	unobserved := newCountingFetcher(`[]`)

	observer := store.Observe(context.Background(), query.NewKey("coupons", nil), observed.Fetch)
	defer observer.Close()

	_, err := store.Fetch(context.Background(), query.NewKey("recharges", nil), unobserved.Fetch)
	require.NoError(t, err)

	require.Eventually(t, func() bool { return observer.Current().HasData() }, time.Second, time.Millisecond)

	store.Focus(context.Background())
	assert.Equal(t, int32(1), observed.calls.Load())

	clock.Advance(time.Hour)
	store.Focus(context.Background())

	require.Eventually(t, func() bool { return observed.calls.Load() == 2 }, time.Second, time.Millisecond)
	assert.Equal(t, int32(1), unobserved.calls.Load())
}

func TestStore_CollectEvictsIdleUnobservedEntries(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	store := newStore(query.WithGCTime(5*time.Minute), query.WithClock(clock.Now))
	fetcher := newCountingFetcher(`[]`)

	_, err := store.Fetch(context.Background(), query.NewKey("bot-users", nil), fetcher.Fetch)
	require.NoError(t, err)

	observer := store.Observe(context.Background(), query.NewKey("users", nil), fetcher.Fetch)
	defer observer.Close()

	require.Eventually(t, func() bool { return observer.Current().HasData() }, time.Second, time.Millisecond)

	assert.Equal(t, 0, store.Collect(context.Background()))

	clock.Advance(6 * time.Minute)

	assert.Equal(t, 1, store.Collect(context.Background()))
	assert.Equal(t, 1, store.Len())

	_, ok := store.Peek(query.NewKey("users", nil))
	assert.True(t, ok)
}

func TestStore_RecordsMetrics(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	store := newStore(query.WithMeterProvider(provider), query.WithStaleTime(time.Hour))
	fetcher := newCountingFetcher(`[]`)
	key := query.NewKey("advertisements", nil)

	_, err := store.Fetch(context.Background(), key, fetcher.Fetch)
	require.NoError(t, err)
	_, err = store.Fetch(context.Background(), key, fetcher.Fetch)
	require.NoError(t, err)

	store.Invalidate(context.Background(), "advertisements")

	var data metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &data))

	totals := map[string]int64{}

	for _, scope := range data.ScopeMetrics {
		for _, m := range scope.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}

			for _, point := range sum.DataPoints {
				totals[m.Name] += point.Value
			}
		}
	}

	assert.Equal(t, int64(1), totals["icash.query.misses"])
	assert.Equal(t, int64(1), totals["icash.query.hits"])
	assert.Equal(t, int64(1), totals["icash.query.fetches"])
	assert.Equal(t, int64(1), totals["icash.query.invalidations"])
}

func TestStore_WarmsFromPayloadBackend(t *testing.T) {
	t.Parallel()

	backend := mobcash.NewMemoryCache(10)
	key := query.NewKey("caisses", nil)

	first := query.New(backend, query.WithRetries(0))
	_, err := first.Fetch(context.Background(), key, newCountingFetcher(`[{"id":1}]`).Fetch)
	require.NoError(t, err)

	second := query.New(backend, query.WithRetries(0), query.WithStaleTime(time.Hour))
	fetcher := newCountingFetcher(`[]`)

	res := second.Read(context.Background(), key, fetcher.Fetch)
	assert.Equal(t, []byte(`[{"id":1}]`), res.Data)
	assert.False(t, res.IsLoading)
	assert.Equal(t, int32(0), fetcher.calls.Load())
}
