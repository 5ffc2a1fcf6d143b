// Package cache keeps a serialized copy of the directory snapshot in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyNamespace   = "fd"
	snapshotSuffix = "directory:snapshot"
)

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Del(context.Context, ...string) *redis.IntCmd
}

// SnapshotCache stores the directory snapshot as JSON under a single key.
type SnapshotCache struct {
	store cmdable
	raw   *redis.Client
	ttl   time.Duration
}

// New parses the redis URL, connects and verifies connectivity.
func New(ctx context.Context, url string, ttl time.Duration) (*SnapshotCache, error) {
	if url == "" {
		return nil, errors.New("redis url is required")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = 3 * time.Second
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &SnapshotCache{store: raw, raw: raw, ttl: ttl}, nil
}

func snapshotKey() string {
	return keyNamespace + ":" + snapshotSuffix
}

// Load decodes the cached snapshot into dest. It returns false on a cache miss.
func (c *SnapshotCache) Load(ctx context.Context, dest any) (bool, error) {
	if c == nil || c.store == nil {
		return false, nil
	}
	payload, err := c.store.Get(ctx, snapshotKey()).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get snapshot: %w", err)
	}
	if err := json.Unmarshal([]byte(payload), dest); err != nil {
		return false, fmt.Errorf("decode snapshot: %w", err)
	}
	return true, nil
}

// Store writes the snapshot with the configured TTL.
func (c *SnapshotCache) Store(ctx context.Context, snapshot any) error {
	if c == nil || c.store == nil {
		return nil
	}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := c.store.Set(ctx, snapshotKey(), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("set snapshot: %w", err)
	}
	return nil
}

// Invalidate drops the cached snapshot so the next load reads the database.
func (c *SnapshotCache) Invalidate(ctx context.Context) error {
	if c == nil || c.store == nil {
		return nil
	}
	return c.store.Del(ctx, snapshotKey()).Err()
}

// Ping checks the connection.
func (c *SnapshotCache) Ping(ctx context.Context) error {
	if c == nil || c.store == nil {
		return errors.New("redis client not initialized")
	}
	return c.store.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (c *SnapshotCache) Close() error {
	if c == nil || c.raw == nil {
		return nil
	}
	return c.raw.Close()
}
