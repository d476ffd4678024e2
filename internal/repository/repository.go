// Package repository persists fixture snapshots in PostgreSQL.
package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// DefaultTable is the table holding fixture snapshots.
const DefaultTable = "fixture_snapshots"

// snapshotID is the row id of the single shared snapshot.
const snapshotID = "default"

// Repository provides database access methods.
type Repository struct {
	pool  *pgxpool.Pool
	table string // quoted identifier
}

// Option configures a Repository.
type Option func(*Repository)

// WithTable overrides DefaultTable. The name is quoted, so any string is safe.
func WithTable(name string) Option {
	return func(r *Repository) {
		if name != "" {
			r.table = pq.QuoteIdentifier(name)
		}
	}
}

// New creates a new Repository with a connection pool and makes sure the
// snapshot table exists.
func New(ctx context.Context, databaseURL string, opts ...Option) (*Repository, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Connection pool settings
	config.MaxConns = 10
	config.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	r := &Repository{pool: pool, table: pq.QuoteIdentifier(DefaultTable)}
	for _, opt := range opts {
		opt(r)
	}

	if err := r.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return r, nil
}

func (r *Repository) migrate(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, createTableSQL(r.table))
	if err != nil {
		return fmt.Errorf("create snapshot table: %w", err)
	}
	return nil
}

func createTableSQL(table string) string {
	return `CREATE TABLE IF NOT EXISTS ` + table + ` (
		id         TEXT PRIMARY KEY,
		body       JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`
}

// Ping checks database connectivity.
func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close closes the database connection pool.
func (r *Repository) Close() {
	r.pool.Close()
}

// Pool returns the underlying connection pool.
// Use sparingly - prefer adding methods to Repository.
func (r *Repository) Pool() *pgxpool.Pool {
	return r.pool
}
