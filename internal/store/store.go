// Package store holds the mutable state of the fixture server.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/voclio/admin/internal/fixture"
	"github.com/voclio/admin/internal/model"
)

var (
	// ErrNotFound is returned when no record has the requested id.
	ErrNotFound = errors.New("record not found")
	// ErrNoSnapshot is returned by a Persister that holds no saved state.
	ErrNoSnapshot = errors.New("no snapshot saved")
	// ErrDuplicateKey is returned when an API key id is already taken.
	ErrDuplicateKey = errors.New("api key id already exists")
)

// Snapshot is the full serializable state.
type Snapshot struct {
	Users        []model.User        `json:"users"`
	APIKeys      []model.APIKey      `json:"api_keys"`
	Logs         []model.Log         `json:"logs"`
	Configs      []model.AppConfig   `json:"configs"`
	ActivityLogs []model.ActivityLog `json:"activity_logs"`
}

// Seed returns the fixture dataset as a snapshot.
func Seed() Snapshot {
	return Snapshot{
		Users:        fixture.Users(),
		APIKeys:      fixture.APIKeys(),
		Logs:         fixture.Logs(),
		Configs:      fixture.Configs(),
		ActivityLogs: fixture.ActivityLogs(),
	}
}

// clone copies every slice the store may rewrite.
func (s Snapshot) clone() Snapshot {
	out := Snapshot{
		Users:        slices.Clone(s.Users),
		APIKeys:      slices.Clone(s.APIKeys),
		Logs:         slices.Clone(s.Logs),
		Configs:      slices.Clone(s.Configs),
		ActivityLogs: slices.Clone(s.ActivityLogs),
	}
	for i := range out.APIKeys {
		out.APIKeys[i].Permissions = slices.Clone(out.APIKeys[i].Permissions)
	}
	return out
}

// Persister saves and restores snapshots so state survives restarts and
// can be shared between fixture server instances.
type Persister interface {
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, snap Snapshot) error
}

// Store is the fixture server's state. Safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	state     Snapshot
	persister Persister
	logger    *slog.Logger
	now       func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithPersister makes every mutation write through to p.
func WithPersister(p Persister) Option {
	return func(s *Store) { s.persister = p }
}

// WithLogger sets the store logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New returns a Store seeded from the fixture set. With a persister, a
// previously saved snapshot wins over the seed; without one the seed is saved.
func New(ctx context.Context, opts ...Option) (*Store, error) {
	s := &Store{
		state:  Seed(),
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "store")

	if s.persister == nil {
		return s, nil
	}

	snap, err := s.persister.Load(ctx)
	switch {
	case err == nil:
		s.state = snap
		s.logger.Info("restored fixture snapshot", "users", len(snap.Users), "api_keys", len(snap.APIKeys))
	case errors.Is(err, ErrNoSnapshot):
		if err := s.persister.Save(ctx, s.state); err != nil {
			return nil, fmt.Errorf("save seed snapshot: %w", err)
		}
		s.logger.Info("seeded fixture snapshot")
	default:
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return s, nil
}

// current returns the state to read from. With a persister the latest
// saved snapshot is loaded first, so writes made by another instance are
// visible. The returned slices must not be modified: mutate always
// replaces them with fresh copies.
func (s *Store) current(ctx context.Context) (Snapshot, error) {
	if s.persister == nil {
		s.mu.RLock()
		defer s.mu.RUnlock()
		return s.state, nil
	}

	snap, err := s.persister.Load(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case err == nil:
		s.state = snap
		return snap, nil
	case errors.Is(err, ErrNoSnapshot):
		return s.state, nil
	default:
		return Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}
}

// Snapshot returns a copy of the state held locally, as of the last read or write.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Reset restores the fixture seed.
func (s *Store) Reset(ctx context.Context) error {
	return s.mutate(ctx, func(st *Snapshot) error {
		*st = Seed()
		return nil
	})
}

// mutate applies fn to a copy of the state, persists the copy and then
// commits it. A failed fn or save leaves the state untouched.
func (s *Store) mutate(ctx context.Context, fn func(st *Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	base := s.state
	if s.persister != nil {
		// Another instance may have written since we last looked.
		snap, err := s.persister.Load(ctx)
		switch {
		case err == nil:
			base = snap
		case !errors.Is(err, ErrNoSnapshot):
			return fmt.Errorf("load snapshot: %w", err)
		}
	}

	next := base.clone()
	if err := fn(&next); err != nil {
		return err
	}

	if s.persister != nil {
		if err := s.persister.Save(ctx, next); err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
	}

	s.state = next
	return nil
}
