// Package query is the keyed cache in front of every list read. It
// de-duplicates concurrent fetches, tracks staleness, revalidates in the
// background and pushes state changes to mounted observers.
package query

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/codelabbj/icash-admin/internal/constants"
	"github.com/codelabbj/icash-admin/pkg/mobcash"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/singleflight"
)

const scopeName = "github.com/codelabbj/icash-admin/internal/query"

// Key identifies a cached read: a resource name plus the filter applied.
type Key struct {
	Resource string
	Filter   mobcash.Filter
}

// NewKey builds a key.
func NewKey(resource string, filter mobcash.Filter) Key {
	return Key{Resource: resource, Filter: filter}
}

// String returns the canonical cache key.
func (k Key) String() string {
	return mobcash.CacheKey(k.Resource, k.Filter)
}

// FetchFunc performs the network read behind a key and returns the raw body.
type FetchFunc func(ctx context.Context) ([]byte, error)

// Result is the state of one entry as seen by a consumer.
type Result struct {
	Key        string
	Data       []byte
	IsLoading  bool
	IsFetching bool
	IsError    bool
	IsStale    bool
	Err        error
	UpdatedAt  time.Time
}

// HasData reports whether a payload is available.
func (r Result) HasData() bool {
	return r.Data != nil
}

type entry struct {
	key    Key
	keyStr string
	fetch  FetchFunc

	data          []byte
	updatedAt     time.Time
	err           error
	invalidated   bool
	generation    uint64

	inflight     int
	freshPending bool

	observers map[*Observer]struct{}
	idleSince time.Time
}

// Store is the process-wide query cache. Create one at startup and share it.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
	group   singleflight.Group

	cache         *mobcash.CacheManager
	logger        mobcash.Logger
	now           func() time.Time
	staleTime     time.Duration
	gcTime        time.Duration
	retries       int
	retryInitial  time.Duration
	retryMaxDelay time.Duration

	hits          metric.Int64Counter
	misses        metric.Int64Counter
	fetches       metric.Int64Counter
	errs          metric.Int64Counter
	invalidations metric.Int64Counter
}

// Option configures a Store.
type Option func(*Store)

// WithStaleTime sets how long fetched data counts as fresh.
func WithStaleTime(d time.Duration) Option {
	return func(s *Store) {
		if d >= 0 {
			s.staleTime = d
		}
	}
}

// WithGCTime sets how long unobserved entries survive.
func WithGCTime(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.gcTime = d
		}
	}
}

// WithRetries bounds the retries of a failed fetch. Zero or less disables them.
func WithRetries(n int) Option {
	return func(s *Store) {
		s.retries = n
	}
}

// WithRetryBackoff sets the initial and maximum delay between fetch retries.
func WithRetryBackoff(initial, maxDelay time.Duration) Option {
	return func(s *Store) {
		s.retryInitial = initial
		s.retryMaxDelay = maxDelay
	}
}

// WithLogger sets the logger.
func WithLogger(logger mobcash.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithMeterProvider sets the provider of the store counters.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(s *Store) {
		s.initMetrics(provider)
	}
}

// New creates a store persisting payloads through cache. A nil cache keeps
// payloads in process memory only.
func New(cache mobcash.Cache, opts ...Option) *Store {
	s := &Store{
		entries:       make(map[string]*entry),
		cache:         mobcash.NewCacheManager(cache, &mobcash.CacheOptions{TTL: constants.DefaultPayloadTTL, MaxSize: mobcash.DefaultCacheSize}),
		now:           time.Now,
		staleTime:     constants.DefaultStaleTime,
		gcTime:        constants.DefaultGCTime,
		retries:       constants.DefaultQueryRetries,
		retryInitial:  constants.DefaultRetryWaitMin,
		retryMaxDelay: constants.DefaultQueryRetryMaxInterval,
	}

	s.initMetrics(otel.GetMeterProvider())

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Store) initMetrics(provider metric.MeterProvider) {
	m := provider.Meter(scopeName)

	s.hits, _ = m.Int64Counter("icash.query.hits",
		metric.WithDescription("Reads answered with cached data"),
	)
	s.misses, _ = m.Int64Counter("icash.query.misses",
		metric.WithDescription("Reads that found no cached data"),
	)
	s.fetches, _ = m.Int64Counter("icash.query.fetches",
		metric.WithDescription("Network fetches started"),
	)
	s.errs, _ = m.Int64Counter("icash.query.errors",
		metric.WithDescription("Fetches that failed after retries"),
	)
	s.invalidations, _ = m.Int64Counter("icash.query.invalidations",
		metric.WithDescription("Resource invalidations"),
	)
}

// entryFor returns the entry of key, creating it (and warming it from the
// payload backend) when needed. fetch replaces the stored fetcher when set.
func (s *Store) entryFor(ctx context.Context, key Key, fetch FetchFunc) *entry {
	keyStr := key.String()

	s.mu.Lock()
	e, ok := s.entries[keyStr]
	if !ok {
		e = &entry{
			key:       key,
			keyStr:    keyStr,
			observers: make(map[*Observer]struct{}),
			idleSince: s.now(),
		}
		s.entries[keyStr] = e
	}

	if fetch != nil {
		e.fetch = fetch
	}
	s.mu.Unlock()

	if !ok {
		if cached, err := s.cache.GetEntry(ctx, keyStr); err == nil {
			s.mu.Lock()
			if e.data == nil {
				e.data = cached.Data
				e.updatedAt = cached.FetchedAt
			}
			s.mu.Unlock()
		}
	}

	return e
}

// isStaleLocked reports whether e needs revalidation.
func (s *Store) isStaleLocked(e *entry) bool {
	if e.data == nil || e.invalidated {
		return true
	}

	return s.now().Sub(e.updatedAt) >= s.staleTime
}

func (s *Store) snapshotLocked(e *entry) Result {
	return Result{
		Key:        e.keyStr,
		Data:       e.data,
		IsLoading:  e.data == nil && (e.inflight > 0 || e.freshPending),
		IsFetching: e.inflight > 0 || e.freshPending,
		IsError:    e.err != nil,
		IsStale:    s.isStaleLocked(e),
		Err:        e.err,
		UpdatedAt:  e.updatedAt,
	}
}

// Read returns the entry state immediately. Without data it starts a fetch
// and reports IsLoading; with stale data it revalidates in the background.
func (s *Store) Read(ctx context.Context, key Key, fetch FetchFunc) Result {
	e := s.entryFor(ctx, key, fetch)

	s.mu.Lock()
	e.idleSince = s.now()
	needFetch := e.inflight == 0 && !e.freshPending && s.isStaleLocked(e)
	res := s.snapshotLocked(e)
	s.mu.Unlock()

	s.countLookup(ctx, e, res)

	if needFetch {
		s.launch(e, false)

		res.IsFetching = true
		res.IsLoading = res.Data == nil
	}

	return res
}

// Fetch blocks until fresh data is available, joining an in-flight fetch of
// the same key when there is one.
func (s *Store) Fetch(ctx context.Context, key Key, fetch FetchFunc) ([]byte, error) {
	e := s.entryFor(ctx, key, fetch)

	s.mu.Lock()
	e.idleSince = s.now()
	stale := s.isStaleLocked(e)
	data := e.data
	res := s.snapshotLocked(e)
	s.mu.Unlock()

	s.countLookup(ctx, e, res)

	if !stale {
		return data, nil
	}

	select {
	case r := <-s.launch(e, false):
		if r.Err != nil {
			return nil, r.Err
		}

		body, _ := r.Val.([]byte)

		return body, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *Store) countLookup(ctx context.Context, e *entry, res Result) {
	attrs := metric.WithAttributes(attribute.String("resource", e.key.Resource))
	if res.Data != nil {
		s.hits.Add(ctx, 1, attrs)
	} else {
		s.misses.Add(ctx, 1, attrs)
	}
}

// launch starts (or joins) the fetch of e.
func (s *Store) launch(e *entry, fresh bool) <-chan singleflight.Result {
	return s.group.DoChan(e.keyStr, func() (interface{}, error) {
		return s.run(e, fresh)
	})
}

func (s *Store) run(e *entry, fresh bool) ([]byte, error) {
	ctx := context.Background()

	s.mu.Lock()
	e.inflight++
	fetch := e.fetch
	generation := e.generation
	s.notifyLocked(e)
	s.mu.Unlock()

	s.fetches.Add(ctx, 1, metric.WithAttributes(attribute.String("resource", e.key.Resource)))

	var (
		data []byte
		err  error
	)

	if fetch == nil {
		err = errNoFetcher
	} else {
		data, err = s.fetchWithRetry(ctx, fetch)
	}

	s.mu.Lock()
	e.inflight--

	if fresh {
		e.freshPending = false
	}

	if err != nil {
		e.err = err
	} else {
		e.data = data
		e.updatedAt = s.now()
		e.err = nil

		// Data read before the latest invalidation stays stale.
		if e.generation == generation {
			e.invalidated = false
		}
	}

	refetch := err == nil && e.invalidated && len(e.observers) > 0 && !e.freshPending
	if refetch {
		e.freshPending = true
	}

	s.notifyLocked(e)
	s.mu.Unlock()

	if err != nil {
		s.errs.Add(ctx, 1, metric.WithAttributes(attribute.String("resource", e.key.Resource)))
		s.log("query fetch failed", map[string]interface{}{"key": e.keyStr, "error": err.Error()})

		return nil, err
	}

	if cacheErr := s.cache.Set(ctx, e.keyStr, data, 0); cacheErr != nil {
		s.log("query payload not persisted", map[string]interface{}{"key": e.keyStr, "error": cacheErr.Error()})
	}

	if refetch {
		s.group.Forget(e.keyStr)
		s.launch(e, true)
	}

	return data, nil
}

var errNoFetcher = errors.New("no fetcher registered for key")

// fetchWithRetry retries failed fetches with exponential backoff. Backend
// client errors are final.
func (s *Store) fetchWithRetry(ctx context.Context, fetch FetchFunc) ([]byte, error) {
	if s.retries <= 0 {
		return fetch(ctx)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = s.retryInitial
	bo.MaxInterval = s.retryMaxDelay
	bo.MaxElapsedTime = 0

	var data []byte

	err := backoff.Retry(func() error {
		body, err := fetch(ctx)
		if err != nil && mobcash.IsClientError(err) {
			return backoff.Permanent(err)
		}

		if err != nil {
			return err
		}

		data = body

		return nil
	}, backoff.WithContext(backoff.WithMaxRetries(bo, uint64(s.retries)), ctx))
	if err != nil {
		return nil, err //nolint:wrapcheck // the fetch error is already contextual
	}

	return data, nil
}

// Invalidate marks every entry of resource stale, whatever its filter.
// Observed entries refetch immediately. An invalidation arriving while a
// fetch is on the wire leaves the entry stale once that fetch lands, and
// observed entries then fetch again.
func (s *Store) Invalidate(ctx context.Context, resource string) {
	s.invalidations.Add(ctx, 1, metric.WithAttributes(attribute.String("resource", resource)))

	var (
		matched []string
		refetch []*entry
	)

	s.mu.Lock()
	for _, e := range s.entries {
		if e.key.Resource != resource {
			continue
		}

		matched = append(matched, e.keyStr)
		e.invalidated = true
		e.generation++

		if len(e.observers) > 0 && !e.freshPending {
			e.freshPending = true
			refetch = append(refetch, e)
		}

		s.notifyLocked(e)
	}
	s.mu.Unlock()

	s.log("query invalidated", map[string]interface{}{"resource": resource, "refetching": len(refetch)})

	for _, keyStr := range matched {
		s.dropPayload(ctx, keyStr)
	}

	for _, e := range refetch {
		s.group.Forget(e.keyStr)
		s.launch(e, true)
	}
}

// Focus revalidates every stale entry that still has observers, as when a
// window regains focus.
func (s *Store) Focus(ctx context.Context) {
	var refetch []*entry

	s.mu.Lock()
	for _, e := range s.entries {
		if len(e.observers) > 0 && e.inflight == 0 && !e.freshPending && s.isStaleLocked(e) {
			refetch = append(refetch, e)
		}
	}
	s.mu.Unlock()

	for _, e := range refetch {
		s.launch(e, false)
	}
}

// Collect evicts entries that have had no observer for longer than the GC
// time and are not fetching. It returns the number of evicted entries.
func (s *Store) Collect(ctx context.Context) int {
	now := s.now()

	var evicted []string

	s.mu.Lock()
	for keyStr, e := range s.entries {
		if len(e.observers) > 0 || e.inflight > 0 || e.freshPending {
			continue
		}

		if now.Sub(e.idleSince) < s.gcTime {
			continue
		}

		delete(s.entries, keyStr)
		evicted = append(evicted, keyStr)
	}
	s.mu.Unlock()

	for _, keyStr := range evicted {
		s.dropPayload(ctx, keyStr)
	}

	return len(evicted)
}

// RunGC calls Collect every interval until ctx is done.
func (s *Store) RunGC(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Collect(ctx)
		}
	}
}

// Peek returns the state of key without starting any fetch.
func (s *Store) Peek(key Key) (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key.String()]
	if !ok {
		return Result{Key: key.String()}, false
	}

	return s.snapshotLocked(e), true
}

// Len returns the number of entries held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

// Stats returns the payload backend counters.
func (s *Store) Stats() mobcash.CacheStats {
	return s.cache.GetStats()
}

// dropPayload removes the persisted payload of keyStr. A failure leaves a
// stale payload in a shared backend, so it is logged.
func (s *Store) dropPayload(ctx context.Context, keyStr string) {
	if err := s.cache.Delete(ctx, keyStr); err != nil {
		s.log("query payload not dropped", map[string]interface{}{"key": keyStr, "error": err.Error()})
	}
}

// Retries returns the bound on fetch retries. Zero means a failed fetch is
// final.
func (s *Store) Retries() int {
	if s.retries < 0 {
		return 0
	}

	return s.retries
}

func (s *Store) log(msg string, fields map[string]interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, fields)
	}
}
