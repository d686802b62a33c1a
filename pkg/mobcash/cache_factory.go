package mobcash

import (
	"context"
	"errors"
	"fmt"
)

// CacheType names a payload backend of the query store.
type CacheType string

const (
	// CacheTypeMemory keeps payloads in process.
	CacheTypeMemory CacheType = "memory"

	// CacheTypeNATS shares payloads through a NATS JetStream KV bucket.
	CacheTypeNATS CacheType = "nats"

	// CacheTypeNone keeps no payload outside the query store.
	CacheTypeNone CacheType = "none"
)

// Static errors for err113 compliance.
var (
	ErrNATSConfigRequired    = errors.New("NATS configuration required for NATS cache")
	ErrUnsupportedCacheType  = errors.New("unsupported cache type")
	ErrCacheDisabled         = errors.New("cache disabled")
	ErrKeyNotFoundInAnyCache = errors.New("key not found in any cache")
)

// CacheConfig selects the payload backend of the query store.
type CacheConfig struct {
	// Type is the backend. Empty means memory.
	Type CacheType

	// LocalSize bounds the in-process cache. In front of a shared backend
	// it sizes the local read-through layer, and zero disables that layer.
	LocalSize int

	// NATS configures the nats backend.
	NATS *NATSKVConfig
}

// ParseCacheType validates a backend name as typed on the command line.
func ParseCacheType(name string) (CacheType, error) {
	switch CacheType(name) {
	case CacheTypeMemory, CacheTypeNATS, CacheTypeNone:
		return CacheType(name), nil
	case "":
		return CacheTypeMemory, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedCacheType, name)
	}
}

// DefaultCacheConfig returns an in-process cache of DefaultCacheSize entries.
func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{Type: CacheTypeMemory, LocalSize: DefaultCacheSize}
}

// NewCacheFromConfig creates the backend described by config. A shared
// backend is fronted by a local memory cache unless LocalSize is zero.
func NewCacheFromConfig(config *CacheConfig) (Cache, error) {
	if config == nil {
		config = DefaultCacheConfig()
	}

	switch config.Type {
	case CacheTypeMemory, "":
		return NewMemoryCache(config.LocalSize), nil

	case CacheTypeNATS:
		if config.NATS == nil {
			return nil, ErrNATSConfigRequired
		}

		shared, err := NewNATSKVCache(config.NATS)
		if err != nil {
			return nil, err
		}

		if config.LocalSize <= 0 {
			return shared, nil
		}

		return NewCacheChain(NewMemoryCache(config.LocalSize), shared), nil

	case CacheTypeNone:
		return NewNoOpCache(), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCacheType, config.Type)
	}
}

// NoOpCache stores nothing. Every read is a miss.
type NoOpCache struct{}

// NewNoOpCache creates a new no-op cache.
func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

// Get always misses.
func (c *NoOpCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	return nil, ErrCacheDisabled
}

// Set does nothing.
func (c *NoOpCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	return nil
}

// Delete does nothing.
func (c *NoOpCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Clear does nothing.
func (c *NoOpCache) Clear(ctx context.Context) error {
	return nil
}

// Has always returns false.
func (c *NoOpCache) Has(ctx context.Context, key string) bool {
	return false
}

// CacheChain layers caches from nearest to farthest, e.g. a memory cache in
// front of a NATS bucket. Writes go to every layer.
type CacheChain struct {
	caches []Cache
}

// NewCacheChain creates a new cache chain.
func NewCacheChain(caches ...Cache) *CacheChain {
	return &CacheChain{
		caches: caches,
	}
}

// Get reads the nearest layer holding key and backfills the layers in front
// of it.
func (c *CacheChain) Get(ctx context.Context, key string) (*CacheEntry, error) {
	for i, cache := range c.caches {
		entry, err := cache.Get(ctx, key)
		if err != nil {
			continue
		}

		for _, nearer := range c.caches[:i] {
			_ = nearer.Set(ctx, key, entry)
		}

		return entry, nil
	}

	return nil, ErrKeyNotFoundInAnyCache
}

// Set writes key to every layer and joins the failures.
func (c *CacheChain) Set(ctx context.Context, key string, entry *CacheEntry) error {
	return c.each(func(cache Cache) error { return cache.Set(ctx, key, entry) })
}

// Delete removes key from every layer so a stale payload never resurfaces
// from a farther one.
func (c *CacheChain) Delete(ctx context.Context, key string) error {
	return c.each(func(cache Cache) error { return cache.Delete(ctx, key) })
}

// Clear empties every layer.
func (c *CacheChain) Clear(ctx context.Context) error {
	return c.each(func(cache Cache) error { return cache.Clear(ctx) })
}

// Has reports whether any layer holds key.
func (c *CacheChain) Has(ctx context.Context, key string) bool {
	for _, cache := range c.caches {
		if cache.Has(ctx, key) {
			return true
		}
	}

	return false
}

// Close closes every layer holding a connection.
func (c *CacheChain) Close() {
	for _, cache := range c.caches {
		if closer, ok := cache.(interface{ Close() }); ok {
			closer.Close()
		}
	}
}

func (c *CacheChain) each(fn func(Cache) error) error {
	var errs []error

	for _, cache := range c.caches {
		if err := fn(cache); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
