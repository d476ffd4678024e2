package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/voclio/admin/internal/apierr"
	"github.com/voclio/admin/internal/auth"
	"github.com/voclio/admin/internal/fixture"
	"github.com/voclio/admin/internal/handler"
	"github.com/voclio/admin/internal/metrics"
	"github.com/voclio/admin/internal/middleware"
	"github.com/voclio/admin/internal/model"
	"github.com/voclio/admin/internal/store"
)

func newFixtureServer(t *testing.T) string {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := store.New(context.Background(), store.WithLogger(logger))
	if err != nil {
		t.Fatalf("store.New failed: %v", err)
	}
	cred, err := auth.NewCredential(fixture.AdminEmail, fixture.AdminPassword, fixture.AdminToken, fixture.AdminUser())
	if err != nil {
		t.Fatalf("NewCredential failed: %v", err)
	}

	srv := httptest.NewServer(handler.NewRouter(handler.RouterConfig{
		BasePath:   "/api",
		Logger:     logger,
		Metrics:    metrics.NewInMemory(),
		Store:      st,
		Credential: cred,
		CORS:       middleware.DefaultCORSConfig(),
		KeyEnv:     auth.EnvTest,
	}))
	t.Cleanup(srv.Close)
	return srv.URL + "/api"
}

// run executes adminctl with args against apiURL and returns stdout.
func run(t *testing.T, apiURL string, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCmd(newApp(&out, &errOut))
	cmd.SetArgs(append([]string{"--api-url", apiURL}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestLogin(t *testing.T) {
	api := newFixtureServer(t)

	out, err := run(t, api, "login", "--email", fixture.AdminEmail, "--password", fixture.AdminPassword)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !strings.Contains(out, "export VOCLIO_TOKEN="+fixture.AdminToken) {
		t.Errorf("output = %q", out)
	}

	_, err = run(t, api, "login", "--email", fixture.AdminEmail, "--password", "wrong")
	if err == nil || err.Error() != "Invalid credentials" {
		t.Errorf("bad login error = %v", err)
	}
}

func TestRequiresToken(t *testing.T) {
	api := newFixtureServer(t)
	t.Setenv(tokenEnv, "")

	_, err := run(t, api, "users", "list")
	if err == nil || !strings.Contains(err.Error(), "not logged in") {
		t.Errorf("error = %v", err)
	}
}

func TestUsersList_JSON(t *testing.T) {
	api := newFixtureServer(t)

	out, err := run(t, api, "--token", fixture.AdminToken, "--json", "users", "list", "--tier", "pro")
	if err != nil {
		t.Fatalf("users list failed: %v", err)
	}

	var page model.PaginatedResponse[model.User]
	if err := json.Unmarshal([]byte(out), &page); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if page.Total != 3 || page.TotalPages != 1 {
		t.Errorf("total = %d, total_pages = %d", page.Total, page.TotalPages)
	}
}

func TestUsersList_RejectsUnknownTier(t *testing.T) {
	api := newFixtureServer(t)

	if _, err := run(t, api, "--token", fixture.AdminToken, "users", "list", "--tier", "gold"); err == nil {
		t.Error("expected error for unknown tier")
	}
}

func TestUsersUpdateAndGet(t *testing.T) {
	api := newFixtureServer(t)

	if _, err := run(t, api, "--token", fixture.AdminToken, "users", "update", "4"); err == nil {
		t.Error("expected error for empty update")
	}

	out, err := run(t, api, "--token", fixture.AdminToken, "users", "update", "4", "--active=false")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if !strings.Contains(out, "Active:") || !strings.Contains(out, "no") {
		t.Errorf("output = %q", out)
	}

	_, err = run(t, api, "--token", fixture.AdminToken, "users", "get", "999")
	if err == nil || err.Error() != "User not found" {
		t.Errorf("get unknown user error = %v", err)
	}
}

func TestKeys_SecretMaskedInList(t *testing.T) {
	api := newFixtureServer(t)

	out, err := run(t, api, "--token", fixture.AdminToken, "--json", "keys", "create", "deploy bot", "--permission", "read", "--permission", "write")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	var created model.APIKey
	if err := json.Unmarshal([]byte(out), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !auth.ValidateKeyFormat(created.Key) {
		t.Fatalf("created key %q has the wrong format", created.Key)
	}

	out, err = run(t, api, "--token", fixture.AdminToken, "keys", "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if strings.Contains(out, created.Key) {
		t.Error("list output shows a full secret")
	}
	if !strings.Contains(out, "deploy bot") {
		t.Errorf("list output missing new key:\n%s", out)
	}
}

func TestConfigSet(t *testing.T) {
	api := newFixtureServer(t)

	out, err := run(t, api, "--token", fixture.AdminToken, "--json", "config", "set", "maintenance_mode=true", "max_requests_per_minute=120")
	if err != nil {
		t.Fatalf("config set failed: %v", err)
	}
	var configs []model.AppConfig
	if err := json.Unmarshal([]byte(out), &configs); err != nil {
		t.Fatalf("decode: %v", err)
	}

	want := map[string]string{"maintenance_mode": "true", "max_requests_per_minute": "120", "rate_limit_enabled": "true"}
	for _, c := range configs {
		if v, ok := want[c.Key]; ok && c.Value.String() != v {
			t.Errorf("%s = %s, want %s", c.Key, c.Value, v)
		}
	}

	if _, err := run(t, api, "--token", fixture.AdminToken, "config", "set", "maintenance_mode=maybe"); err == nil {
		t.Error("expected error for non-boolean value")
	}
	if _, err := run(t, api, "--token", fixture.AdminToken, "config", "set", "no_such_key=1"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestParseConfigValue(t *testing.T) {
	tests := []struct {
		typ     model.ConfigType
		raw     string
		want    model.ConfigValue
		wantErr bool
	}{
		{model.ConfigBoolean, "false", model.BoolValue(false), false},
		{model.ConfigBoolean, "nope", model.ConfigValue{}, true},
		{model.ConfigNumber, "2.5", model.NumberValue(2.5), false},
		{model.ConfigNumber, "ten", model.ConfigValue{}, true},
		{model.ConfigString, "42", model.StringValue("42"), false},
	}

	for _, tt := range tests {
		got, err := parseConfigValue(tt.typ, tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseConfigValue(%s, %q) error = %v", tt.typ, tt.raw, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("parseConfigValue(%s, %q) = %v, want %v", tt.typ, tt.raw, got, tt.want)
		}
	}
}

func TestExplain_FieldErrorsSorted(t *testing.T) {
	tests := []struct {
		name    string
		details string
	}{
		{"list form", `{"tier":["unknown tier"],"email":["invalid","taken"],"name":["required"]}`},
		{"single form", `{"tier":"unknown tier","email":"invalid, taken","name":"required"}`},
	}
	want := "Validation failed\n  email: invalid, taken\n  name: required\n  tier: unknown tier"

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &apierr.HTTPStatusError{Status: 400, Message: "Validation failed", Details: json.RawMessage(tt.details)}
			for range 20 {
				if got := explain(err).Error(); got != want {
					t.Fatalf("explain() = %q, want %q", got, want)
				}
			}
		})
	}
}

func TestExplain_Timeout(t *testing.T) {
	got := explain(context.DeadlineExceeded)
	if got == nil || got.Error() != "request timed out" {
		t.Errorf("explain(deadline) = %v", got)
	}
	if explain(nil) != nil {
		t.Error("explain(nil) should be nil")
	}
	if !strings.Contains(explain(errors.New("boom")).Error(), "boom") {
		t.Error("plain errors should keep their message")
	}
}

func TestOverviewAndSystem(t *testing.T) {
	api := newFixtureServer(t)

	for _, args := range [][]string{
		{"overview"},
		{"analytics", "api-usage"},
		{"system", "health"},
		{"system", "activity"},
		{"logs", "--severity", "critical"},
	} {
		out, err := run(t, api, append([]string{"--token", fixture.AdminToken}, args...)...)
		if err != nil {
			t.Errorf("%v failed: %v", args, err)
			continue
		}
		if out == "" {
			t.Errorf("%v printed nothing", args)
		}
	}

	if _, err := run(t, api, "--token", fixture.AdminToken, "system", "clear-old-data"); err == nil {
		t.Error("clear-old-data without --yes should refuse")
	}
}

func TestFallbackWhenBackendDown(t *testing.T) {
	srv := httptest.NewServer(nil)
	api := srv.URL
	srv.Close()

	out, err := run(t, api, "--token", "any", "--fallback", "fixture", "--json", "users", "list", "--limit", "5")
	if err != nil {
		t.Fatalf("expected fixture data, got %v", err)
	}
	var page model.PaginatedResponse[model.User]
	if err := json.Unmarshal([]byte(out), &page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if page.Total != 8 || len(page.Data) != 5 {
		t.Errorf("total = %d, len = %d", page.Total, len(page.Data))
	}

	if _, err := run(t, api, "--token", "any", "users", "list"); err == nil {
		t.Error("expected an error without fallback")
	}
}
