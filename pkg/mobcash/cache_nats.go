package mobcash

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// NATSKVConfig configures the NATS JetStream KV cache.
type NATSKVConfig struct {
	// URL of the NATS server, e.g. "nats://127.0.0.1:4222".
	URL string
	// Bucket is the KV bucket name.
	Bucket string
	// TTL is the bucket-wide maximum age of a value.
	TTL time.Duration
	// Token authenticates the connection when set.
	Token string
	// Name identifies the connection on the server.
	Name string
	// Conn reuses an existing connection instead of dialing URL.
	Conn *nats.Conn
	// KeyValue reuses a bound bucket. It takes precedence over Conn and URL.
	KeyValue jetstream.KeyValue
}

// Default bucket settings.
const (
	DefaultNATSBucket = "icash-query-cache"
	DefaultNATSName   = "icash-admin"

	natsSetupTimeout = 10 * time.Second
)

// NATSKVCache stores payloads in a JetStream key-value bucket so several
// console processes share their list reads.
type NATSKVCache struct {
	conn  *nats.Conn
	owned bool
	kv    jetstream.KeyValue
}

// NewNATSKVCache connects to NATS and binds (or creates) the bucket.
func NewNATSKVCache(config *NATSKVConfig) (*NATSKVCache, error) {
	if config == nil {
		return nil, ErrNATSConfigRequired
	}

	if config.KeyValue != nil {
		return &NATSKVCache{kv: config.KeyValue}, nil
	}

	bucket := config.Bucket
	if bucket == "" {
		bucket = DefaultNATSBucket
	}

	conn := config.Conn
	owned := false

	if conn == nil {
		if config.URL == "" {
			return nil, ErrNATSURLRequired
		}

		name := config.Name
		if name == "" {
			name = DefaultNATSName
		}

		opts := []nats.Option{
			nats.Name(name),
			nats.RetryOnFailedConnect(false),
		}
		if config.Token != "" {
			opts = append(opts, nats.Token(config.Token))
		}

		var err error

		conn, err = nats.Connect(config.URL, opts...)
		if err != nil {
			return nil, fmt.Errorf("nats connect: %w", err)
		}

		owned = true
	}

	js, err := jetstream.New(conn)
	if err != nil {
		closeOwned(conn, owned)

		return nil, fmt.Errorf("jetstream context: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), natsSetupTimeout)
	defer cancel()

	kv, err := js.KeyValue(ctx, bucket)
	if errors.Is(err, jetstream.ErrBucketNotFound) {
		kv, err = js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
			Bucket:      bucket,
			Description: "icash admin query cache",
			TTL:         config.TTL,
		})
	}

	if err != nil {
		closeOwned(conn, owned)

		return nil, fmt.Errorf("binding kv bucket %s: %w", bucket, err)
	}

	return &NATSKVCache{conn: conn, owned: owned, kv: kv}, nil
}

func closeOwned(conn *nats.Conn, owned bool) {
	if owned {
		conn.Close()
	}
}

// NATSKey maps a cache key onto the KV key alphabet.
func NATSKey(key string) string {
	sum := sha256.Sum256([]byte(key))

	return "q." + hex.EncodeToString(sum[:])
}

// Get returns the entry for key.
func (c *NATSKVCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	item, err := c.kv.Get(ctx, NATSKey(key))
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrCacheKeyNotFound, key)
	}

	if err != nil {
		return nil, fmt.Errorf("kv get: %w", err)
	}

	var entry CacheEntry
	if err := json.Unmarshal(item.Value(), &entry); err != nil {
		return nil, fmt.Errorf("decoding kv entry: %w", err)
	}

	if entry.Expired(time.Now()) {
		return nil, fmt.Errorf("%w: %s", ErrCacheEntryExpired, key)
	}

	return &entry, nil
}

// Set stores entry under key.
func (c *NATSKVCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding kv entry: %w", err)
	}

	if _, err := c.kv.Put(ctx, NATSKey(key), data); err != nil {
		return fmt.Errorf("kv put: %w", err)
	}

	return nil
}

// Delete removes key.
func (c *NATSKVCache) Delete(ctx context.Context, key string) error {
	err := c.kv.Delete(ctx, NATSKey(key))
	if err != nil && !errors.Is(err, jetstream.ErrKeyNotFound) {
		return fmt.Errorf("kv delete: %w", err)
	}

	return nil
}

// Clear purges every key of the bucket.
func (c *NATSKVCache) Clear(ctx context.Context) error {
	lister, err := c.kv.ListKeys(ctx)
	if err != nil {
		return fmt.Errorf("kv keys: %w", err)
	}

	var keys []string
	for key := range lister.Keys() {
		keys = append(keys, key)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("kv keys: %w", err)
	}

	for _, key := range keys {
		if err := c.kv.Purge(ctx, key); err != nil {
			return fmt.Errorf("kv purge: %w", err)
		}
	}

	return nil
}

// Has reports whether a live entry exists for key.
func (c *NATSKVCache) Has(ctx context.Context, key string) bool {
	_, err := c.Get(ctx, key)

	return err == nil
}

// Close releases the connection when the cache dialed it.
func (c *NATSKVCache) Close() {
	if c.conn != nil {
		closeOwned(c.conn, c.owned)
	}
}
