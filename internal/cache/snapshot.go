package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/voclio/admin/internal/store"
)

var _ store.Persister = (*Cache)(nil)

// Load reads the fixture snapshot. A missing key is store.ErrNoSnapshot.
func (c *Cache) Load(ctx context.Context) (store.Snapshot, error) {
	data, err := c.client.Get(ctx, c.snapshotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return store.Snapshot{}, store.ErrNoSnapshot
	}
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("get snapshot: %w", err)
	}
	return decodeSnapshot(data)
}

// Save overwrites the fixture snapshot. It never expires.
func (c *Cache) Save(ctx context.Context, snap store.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := c.client.Set(ctx, c.snapshotKey, data, 0).Err(); err != nil {
		return fmt.Errorf("set snapshot: %w", err)
	}
	return nil
}

// Clear deletes the snapshot so the next store start reseeds.
func (c *Cache) Clear(ctx context.Context) error {
	return c.client.Del(ctx, c.snapshotKey).Err()
}

func decodeSnapshot(data []byte) (store.Snapshot, error) {
	var snap store.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return store.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}
