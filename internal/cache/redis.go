// Package cache provides Redis access for the fixture server.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultSnapshotKey is the Redis key holding the fixture snapshot.
const DefaultSnapshotKey = "voclio:fixture:snapshot"

// Cache provides Redis cache access methods.
type Cache struct {
	client      *redis.Client
	snapshotKey string
}

// Option configures a Cache.
type Option func(*Cache)

// WithSnapshotKey overrides DefaultSnapshotKey.
func WithSnapshotKey(key string) Option {
	return func(c *Cache) {
		if key != "" {
			c.snapshotKey = key
		}
	}
}

// New creates a new Cache with a Redis client.
func New(ctx context.Context, redisURL string, opts ...Option) (*Cache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	// Connection pool settings
	opt.PoolSize = 10
	opt.MinIdleConns = 2
	opt.PoolTimeout = 4 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return newWithClient(client, opts...), nil
}

func newWithClient(client *redis.Client, opts ...Option) *Cache {
	c := &Cache{client: client, snapshotKey: DefaultSnapshotKey}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ping checks Redis connectivity.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (c *Cache) Close() error {
	return c.client.Close()
}

// SnapshotKey returns the key the snapshot is stored under.
func (c *Cache) SnapshotKey() string {
	return c.snapshotKey
}
