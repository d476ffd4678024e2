//go:build integration

package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/voclio/admin/internal/model"
	"github.com/voclio/admin/internal/store"
	"github.com/voclio/admin/internal/testutil"
)

func TestIntegrationSnapshot_RoundTrip(t *testing.T) {
	ctx, repo := newSnapshotTestEnv(t)

	if _, err := repo.Load(ctx); !errors.Is(err, store.ErrNoSnapshot) {
		t.Fatalf("Load() on empty table error = %v, want ErrNoSnapshot", err)
	}

	s, err := store.New(ctx, store.WithPersister(repo))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}

	pro := model.TierPro
	if _, err := s.UpdateUser(ctx, "4", model.UserUpdate{SubscriptionTier: &pro}); err != nil {
		t.Fatalf("UpdateUser() error = %v", err)
	}

	// A second store over the same table sees the update.
	other, err := store.New(ctx, store.WithPersister(repo))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	u, err := other.GetUser(ctx, "4")
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if u.SubscriptionTier != model.TierPro {
		t.Errorf("tier = %s, want pro", u.SubscriptionTier)
	}
}

func TestIntegrationSnapshot_ConfigValuesSurvive(t *testing.T) {
	ctx, repo := newSnapshotTestEnv(t)

	if err := repo.Save(ctx, store.Seed()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	snap, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	seed := store.Seed()
	for i, c := range snap.Configs {
		if !c.Value.Equal(seed.Configs[i].Value) {
			t.Errorf("%s = %v, want %v", c.Key, c.Value, seed.Configs[i].Value)
		}
	}
}

func newSnapshotTestEnv(t *testing.T) (context.Context, *Repository) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	dbURL := testutil.RequireEnv(t, "DATABASE_URL")

	repo, err := New(ctx, dbURL, WithTable(testutil.UniqueID("fixture_snapshots_test")))
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("acquire db lock: %v", err)
	}
	t.Cleanup(func() {
		_ = unlock()
	})

	t.Cleanup(func() {
		_, _ = repo.Pool().Exec(context.Background(), "DROP TABLE IF EXISTS "+repo.table)
	})

	return ctx, repo
}
