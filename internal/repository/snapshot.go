package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/voclio/admin/internal/store"
)

var _ store.Persister = (*Repository)(nil)

// Load reads the fixture snapshot. A missing row is store.ErrNoSnapshot.
func (r *Repository) Load(ctx context.Context) (store.Snapshot, error) {
	var body []byte
	err := r.pool.QueryRow(ctx,
		`SELECT body FROM `+r.table+` WHERE id = $1`,
		snapshotID,
	).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return store.Snapshot{}, store.ErrNoSnapshot
	}
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("select snapshot: %w", err)
	}

	var snap store.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return store.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}

// Save upserts the fixture snapshot.
func (r *Repository) Save(ctx context.Context, snap store.Snapshot) error {
	body, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO `+r.table+` (id, body, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at`,
		snapshotID, body,
	)
	if err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	return nil
}

// Clear deletes the snapshot so the next store start reseeds.
func (r *Repository) Clear(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM `+r.table+` WHERE id = $1`, snapshotID)
	return err
}
