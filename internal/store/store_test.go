package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/voclio/admin/internal/fixture"
	"github.com/voclio/admin/internal/model"
)

// memPersister round-trips snapshots through JSON like the real backends.
type memPersister struct {
	mu      sync.Mutex
	data    []byte
	saves   int
	failErr error
}

func (p *memPersister) Load(_ context.Context) (Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.data == nil {
		return Snapshot{}, ErrNoSnapshot
	}
	var snap Snapshot
	err := json.Unmarshal(p.data, &snap)
	return snap, err
}

func (p *memPersister) Save(_ context.Context, snap Snapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failErr != nil {
		return p.failErr
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	p.data = data
	p.saves++
	return nil
}

func newStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	s, err := New(context.Background(), opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

func mustConfigs(t *testing.T, s *Store) []model.AppConfig {
	t.Helper()
	configs, err := s.Configs(context.Background())
	if err != nil {
		t.Fatalf("Configs() error = %v", err)
	}
	return configs
}

func TestListUsers_TierFilter(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	page, err := s.ListUsers(ctx, fixture.UserFilter{SubscriptionTier: model.TierPro}, 1, 10)
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}
	if page.Total != 3 || len(page.Data) != 3 || page.TotalPages != 1 {
		t.Errorf("got total=%d len=%d pages=%d, want 3/3/1", page.Total, len(page.Data), page.TotalPages)
	}
	for _, u := range page.Data {
		if u.SubscriptionTier != model.TierPro {
			t.Errorf("user %s has tier %s", u.ID, u.SubscriptionTier)
		}
	}
}

func TestGetUser(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	u, err := s.GetUser(ctx, "2")
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if u.Email != "jane@example.com" {
		t.Errorf("Email = %q", u.Email)
	}

	if _, err := s.GetUser(ctx, "999"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetUser(999) error = %v, want ErrNotFound", err)
	}
}

func TestUpdateUser_OnlyNamedFields(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	before, _ := s.GetUser(ctx, "1")

	enterprise := model.TierEnterprise
	after, err := s.UpdateUser(context.Background(), "1", model.UserUpdate{SubscriptionTier: &enterprise})
	if err != nil {
		t.Fatalf("UpdateUser() error = %v", err)
	}
	if after.SubscriptionTier != model.TierEnterprise {
		t.Errorf("tier = %s, want enterprise", after.SubscriptionTier)
	}

	after.SubscriptionTier = before.SubscriptionTier
	a, _ := json.Marshal(after)
	b, _ := json.Marshal(before)
	if string(a) != string(b) {
		t.Errorf("unrelated fields changed:\n got %s\nwant %s", a, b)
	}

	stored, _ := s.GetUser(ctx, "1")
	if stored.SubscriptionTier != model.TierEnterprise {
		t.Error("update not committed")
	}
}

func TestDeleteUser(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	if err := s.DeleteUser(ctx, "3"); err != nil {
		t.Fatalf("DeleteUser() error = %v", err)
	}
	if _, err := s.GetUser(ctx, "3"); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted user still present: %v", err)
	}
	if err := s.DeleteUser(ctx, "3"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}

	page, _ := s.ListUsers(ctx, fixture.UserFilter{}, 1, 100)
	if page.Total != 7 {
		t.Errorf("Total = %d, want 7", page.Total)
	}
}

func TestAPIKeys_Lifecycle(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	key := model.APIKey{ID: "k9", Name: "CI", Key: "voc_test_abcdef0123456789", IsActive: true, Permissions: []string{model.PermissionRead}}
	if _, err := s.InsertAPIKey(ctx, key); err != nil {
		t.Fatalf("InsertAPIKey() error = %v", err)
	}
	if _, err := s.InsertAPIKey(ctx, key); !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("duplicate insert error = %v, want ErrDuplicateKey", err)
	}

	inactive := false
	got, err := s.UpdateAPIKey(ctx, "k9", model.APIKeyUpdate{IsActive: &inactive})
	if err != nil {
		t.Fatalf("UpdateAPIKey() error = %v", err)
	}
	if got.IsActive || got.Name != "CI" {
		t.Errorf("UpdateAPIKey() = %+v", got)
	}

	if err := s.DeleteAPIKey(ctx, "k9"); err != nil {
		t.Fatalf("DeleteAPIKey() error = %v", err)
	}
	if _, err := s.UpdateAPIKey(ctx, "k9", model.APIKeyUpdate{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("update after delete error = %v, want ErrNotFound", err)
	}

	page, _ := s.ListAPIKeys(ctx, 1, 10)
	if page.Total != 4 {
		t.Errorf("Total = %d, want 4", page.Total)
	}
}

func TestListLogs_Severity(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	page, err := s.ListLogs(ctx, fixture.LogFilter{Severity: model.SeverityCritical}, 1, 20)
	if err != nil {
		t.Fatalf("ListLogs() error = %v", err)
	}
	if page.Total != 1 || page.Data[0].UserID != nil {
		t.Errorf("ListLogs() = %+v", page)
	}
}

func TestUpdateConfigs(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := newStore(t, WithClock(func() time.Time { return now }))
	before := mustConfigs(t, s)

	got, err := s.UpdateConfigs(context.Background(), []model.ConfigUpdate{
		{Key: "maintenance_mode", Value: model.BoolValue(true)},
		{Key: "no_such_key", Value: model.StringValue("ignored")},
	})
	if err != nil {
		t.Fatalf("UpdateConfigs() error = %v", err)
	}
	if len(got) != len(before) {
		t.Fatalf("len = %d, want %d", len(got), len(before))
	}

	for i, c := range got {
		if c.Key == "maintenance_mode" {
			if b, _ := c.Value.Bool(); !b {
				t.Error("maintenance_mode not set")
			}
			if !c.UpdatedAt.Equal(now) {
				t.Errorf("UpdatedAt = %v, want %v", c.UpdatedAt, now)
			}
			continue
		}
		a, _ := json.Marshal(c)
		b, _ := json.Marshal(before[i])
		if string(a) != string(b) {
			t.Errorf("%s changed: %s -> %s", c.Key, b, a)
		}
	}
}

func TestUpdateConfigs_TypeMismatchRejectsBatch(t *testing.T) {
	s := newStore(t)
	before := mustConfigs(t, s)

	_, err := s.UpdateConfigs(context.Background(), []model.ConfigUpdate{
		{Key: "maintenance_mode", Value: model.BoolValue(true)},
		{Key: "max_requests_per_minute", Value: model.StringValue("lots")},
	})

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error = %v, want *ConfigError", err)
	}
	if _, ok := cfgErr.Fields["max_requests_per_minute"]; !ok || len(cfgErr.Fields) != 1 {
		t.Errorf("Fields = %v", cfgErr.Fields)
	}
	if !errors.Is(err, model.ErrConfigTypeMismatch) {
		t.Error("expected ErrConfigTypeMismatch in chain")
	}

	after := mustConfigs(t, s)
	for i := range after {
		if !after[i].Value.Equal(before[i].Value) {
			t.Errorf("%s changed despite rejected batch", after[i].Key)
		}
	}
}

func TestPersister_SeedAndRestore(t *testing.T) {
	ctx := context.Background()
	p := &memPersister{}

	s := newStore(t, WithPersister(p))
	if p.saves != 1 {
		t.Fatalf("saves = %d, want seed save", p.saves)
	}
	if err := s.DeleteUser(ctx, "8"); err != nil {
		t.Fatalf("DeleteUser() error = %v", err)
	}

	restored := newStore(t, WithPersister(p))
	if _, err := restored.GetUser(ctx, "8"); !errors.Is(err, ErrNotFound) {
		t.Errorf("restored store still has user 8: %v", err)
	}
}

func TestPersister_SharedBetweenStores(t *testing.T) {
	ctx := context.Background()
	p := &memPersister{}
	a := newStore(t, WithPersister(p))
	b := newStore(t, WithPersister(p))

	if err := a.DeleteUser(ctx, "7"); err != nil {
		t.Fatalf("DeleteUser() error = %v", err)
	}
	// b mutates on top of a's write.
	if err := b.DeleteUser(ctx, "6"); err != nil {
		t.Fatalf("DeleteUser() error = %v", err)
	}

	page, _ := b.ListUsers(ctx, fixture.UserFilter{}, 1, 100)
	if page.Total != 6 {
		t.Errorf("Total = %d, want 6", page.Total)
	}
}

func TestPersister_ReadsSeeOtherInstanceWrites(t *testing.T) {
	ctx := context.Background()
	p := &memPersister{}
	a := newStore(t, WithPersister(p))
	b := newStore(t, WithPersister(p))

	if err := a.DeleteUser(ctx, "7"); err != nil {
		t.Fatalf("DeleteUser() error = %v", err)
	}
	if _, err := a.UpdateConfigs(ctx, []model.ConfigUpdate{{Key: "maintenance_mode", Value: model.BoolValue(true)}}); err != nil {
		t.Fatalf("UpdateConfigs() error = %v", err)
	}

	if _, err := b.GetUser(ctx, "7"); !errors.Is(err, ErrNotFound) {
		t.Errorf("b.GetUser(7) error = %v, want ErrNotFound", err)
	}
	page, err := b.ListUsers(ctx, fixture.UserFilter{}, 1, 100)
	if err != nil || page.Total != 7 {
		t.Errorf("b.ListUsers() total = %d, err = %v, want 7", page.Total, err)
	}
	cfg, _ := b.Configs(ctx)
	for _, c := range cfg {
		if c.Key == "maintenance_mode" {
			if v, _ := c.Value.Bool(); !v {
				t.Error("b does not see maintenance_mode change")
			}
		}
	}
}

func TestPersister_ReadFailsWhenLoadFails(t *testing.T) {
	ctx := context.Background()
	p := &memPersister{}
	s := newStore(t, WithPersister(p))

	p.mu.Lock()
	p.data = []byte("{broken")
	p.mu.Unlock()

	if _, err := s.GetUser(ctx, "1"); err == nil {
		t.Error("expected load error on read")
	}
}

func TestPersister_SaveFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	p := &memPersister{}
	s := newStore(t, WithPersister(p))

	p.failErr = errors.New("disk full")
	if err := s.DeleteUser(ctx, "1"); err == nil {
		t.Fatal("expected save error")
	}
	if _, err := s.GetUser(ctx, "1"); err != nil {
		t.Errorf("user 1 gone after failed save: %v", err)
	}
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	_ = s.DeleteUser(ctx, "1")

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if _, err := s.GetUser(ctx, "1"); err != nil {
		t.Errorf("user 1 missing after reset: %v", err)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	snap := s.Snapshot()
	snap.Users[0].Name = "changed"
	snap.APIKeys[0].Permissions[0] = "admin"

	u, _ := s.GetUser(ctx, snap.Users[0].ID)
	if u.Name == "changed" {
		t.Error("Snapshot() aliases user state")
	}
	keys, _ := s.ListAPIKeys(ctx, 1, 1)
	if keys.Data[0].Permissions[0] == "admin" {
		t.Error("Snapshot() aliases key permissions")
	}
}
