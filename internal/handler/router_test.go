package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/voclio/admin/internal/apierr"
	"github.com/voclio/admin/internal/auth"
	"github.com/voclio/admin/internal/client"
	"github.com/voclio/admin/internal/fixture"
	"github.com/voclio/admin/internal/metrics"
	"github.com/voclio/admin/internal/middleware"
	"github.com/voclio/admin/internal/model"
	"github.com/voclio/admin/internal/store"
)

type testEnv struct {
	server  *httptest.Server
	store   *store.Store
	metrics *metrics.InMemoryRecorder
}

func newTestEnv(t *testing.T) *testEnv {
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
	rec := metrics.NewInMemory()

	r := NewRouter(RouterConfig{
		BasePath:    "/api",
		Logger:      logger,
		Metrics:     rec,
		Store:       st,
		Credential:  cred,
		CORS:        middleware.DefaultCORSConfig(),
		MaxBodySize: 1 << 20,
		KeyEnv:      auth.EnvTest,
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return &testEnv{server: srv, store: st, metrics: rec}
}

func (e *testEnv) do(t *testing.T, method, path, body string, authed bool) *http.Response {
	t.Helper()

	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, e.server.URL+path, rd)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+fixture.AdminToken)
	}
	resp, err := e.server.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return v
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"valid", `{"email":"admin@test.com","password":"admin123"}`, http.StatusOK},
		{"wrong password", `{"email":"admin@test.com","password":"nope"}`, http.StatusUnauthorized},
		{"empty body", ``, http.StatusUnauthorized},
		{"bad json", `{"email":`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := env.do(t, http.MethodPost, "/api/auth/login", tt.body, false)
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}

			switch tt.wantStatus {
			case http.StatusOK:
				res := decodeBody[model.LoginResult](t, resp)
				if res.Token != "test_admin_token_12345" || res.User.ID != "0" || res.User.Role != model.RoleAdmin {
					t.Errorf("login result = %+v", res)
				}
			case http.StatusUnauthorized:
				if msg := decodeBody[messageBody](t, resp); msg.Message != "Invalid credentials" {
					t.Errorf("message = %q", msg.Message)
				}
			}
		})
	}
}

func TestAuthRequired(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/api/admin/users", "", false)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	if msg := decodeBody[messageBody](t, resp); msg.Message != "Unauthorized" {
		t.Errorf("message = %q", msg.Message)
	}
}

func TestPreflightSkipsAuth(t *testing.T) {
	env := newTestEnv(t)

	req, _ := http.NewRequest(http.MethodOptions, env.server.URL+"/api/admin/users", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "GET")
	resp, err := env.server.Client().Do(req)
	if err != nil {
		t.Fatalf("preflight: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, want 204", resp.StatusCode)
	}
	if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing permissive CORS header")
	}
}

func TestListUsers_TierFilter(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/api/admin/users?page=1&limit=10&subscription_tier=pro", "", true)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	page := decodeBody[model.PaginatedResponse[model.User]](t, resp)
	if page.Total != 3 || len(page.Data) != 3 || page.TotalPages != 1 || page.Page != 1 || page.Limit != 10 {
		t.Errorf("page = total %d, len %d, pages %d, page %d, limit %d", page.Total, len(page.Data), page.TotalPages, page.Page, page.Limit)
	}
}

func TestListUsers_InvalidPagingFallsBack(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/api/admin/users?page=0&limit=abc", "", true)
	page := decodeBody[model.PaginatedResponse[model.User]](t, resp)
	if page.Page != 1 || page.Limit != 10 || page.Total != 8 {
		t.Errorf("page = %d, limit = %d, total = %d", page.Page, page.Limit, page.Total)
	}
}

func TestListUsers_HugePageIsEmpty(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/api/admin/users?page=9223372036854775807&limit=9223372036854775807", "", true)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	page := decodeBody[model.PaginatedResponse[model.User]](t, resp)
	if len(page.Data) != 0 || page.Total != 8 || page.TotalPages != 1 {
		t.Errorf("len = %d, total = %d, total_pages = %d", len(page.Data), page.Total, page.TotalPages)
	}
}

func TestUserLifecycle(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/api/admin/users/999", "", true)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	if msg := decodeBody[messageBody](t, resp); msg.Message != "User not found" {
		t.Errorf("message = %q", msg.Message)
	}

	before, _ := env.store.GetUser(context.Background(), "4")
	resp = env.do(t, http.MethodPut, "/api/admin/users/4", `{"subscription_tier":"basic"}`, true)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status = %d", resp.StatusCode)
	}
	after := decodeBody[model.User](t, resp)
	if after.SubscriptionTier != model.TierBasic || after.Name != before.Name || !after.UpdatedAt.Equal(before.UpdatedAt) {
		t.Errorf("after = %+v", after)
	}

	resp = env.do(t, http.MethodPut, "/api/admin/users/4", `{"subscription_tier":"platinum"}`, true)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("invalid tier status = %d, want 400", resp.StatusCode)
	}

	resp = env.do(t, http.MethodPost, "/api/admin/users/4/reset-password", "", true)
	if msg := decodeBody[messageBody](t, resp); msg.Message != "Password reset email sent" {
		t.Errorf("reset message = %q", msg.Message)
	}

	resp = env.do(t, http.MethodDelete, "/api/admin/users/4", "", true)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", resp.StatusCode)
	}
	resp = env.do(t, http.MethodDelete, "/api/admin/users/4", "", true)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", resp.StatusCode)
	}
}

func TestAPIKeyLifecycle(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/admin/api-keys", `{"name":"CI runner"}`, true)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", resp.StatusCode)
	}
	key := decodeBody[model.APIKey](t, resp)
	if len(key.ID) != 26 {
		t.Errorf("id %q is not a ULID", key.ID)
	}
	if !auth.ValidateKeyFormat(key.Key) || !strings.HasPrefix(key.Key, "voc_test_") {
		t.Errorf("key = %q", key.Key)
	}
	if !key.IsActive || len(key.Permissions) != 1 || key.Permissions[0] != model.PermissionRead {
		t.Errorf("defaults not applied: %+v", key)
	}

	resp = env.do(t, http.MethodPost, "/api/admin/api-keys", `{"name":"x","permissions":["admin"]}`, true)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad permission status = %d, want 400", resp.StatusCode)
	}
	resp = env.do(t, http.MethodPost, "/api/admin/api-keys", `{"name":"  "}`, true)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("blank name status = %d, want 400", resp.StatusCode)
	}

	resp = env.do(t, http.MethodPut, "/api/admin/api-keys/"+key.ID, `{"is_active":false}`, true)
	updated := decodeBody[model.APIKey](t, resp)
	if updated.IsActive || updated.Name != "CI runner" {
		t.Errorf("updated = %+v", updated)
	}

	resp = env.do(t, http.MethodDelete, "/api/admin/api-keys/"+key.ID, "", true)
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d", resp.StatusCode)
	}
	resp = env.do(t, http.MethodPut, "/api/admin/api-keys/"+key.ID, `{}`, true)
	if msg := decodeBody[messageBody](t, resp); resp.StatusCode != http.StatusNotFound || msg.Message != "API key not found" {
		t.Errorf("status = %d, message = %q", resp.StatusCode, msg.Message)
	}
}

func TestListLogs(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/api/admin/logs?activity_type=api_call", "", true)
	page := decodeBody[model.PaginatedResponse[model.Log]](t, resp)
	if page.Total != 3 || page.Limit != 20 {
		t.Errorf("total = %d, limit = %d", page.Total, page.Limit)
	}

	resp = env.do(t, http.MethodGet, "/api/admin/logs?start_date=yesterday", "", true)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad date status = %d, want 400", resp.StatusCode)
	}
}

func TestUpdateConfig_OnlyNamedKeyChanges(t *testing.T) {
	env := newTestEnv(t)

	before := decodeBody[[]model.AppConfig](t, env.do(t, http.MethodGet, "/api/admin/config", "", true))

	resp := env.do(t, http.MethodPut, "/api/admin/config", `{"configs":[{"key":"maintenance_mode","value":true}]}`, true)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	after := decodeBody[[]model.AppConfig](t, resp)
	if len(after) != len(before) {
		t.Fatalf("len = %d, want %d", len(after), len(before))
	}

	for i := range after {
		a, _ := json.Marshal(after[i])
		b, _ := json.Marshal(before[i])
		if after[i].Key != "maintenance_mode" {
			if !bytes.Equal(a, b) {
				t.Errorf("%s changed: %s -> %s", after[i].Key, b, a)
			}
			continue
		}
		if v, _ := after[i].Value.Bool(); !v {
			t.Error("maintenance_mode not set")
		}
		if !after[i].UpdatedAt.After(before[i].UpdatedAt) {
			t.Error("maintenance_mode updated_at not advanced")
		}
	}
}

func TestUpdateConfig_TypeMismatch(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPut, "/api/admin/config", `{"configs":[{"key":"max_requests_per_minute","value":"lots"}]}`, true)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	body := decodeBody[errorBody](t, resp)
	if _, ok := body.Error.Details["max_requests_per_minute"]; !ok {
		t.Errorf("details = %v", body.Error.Details)
	}
}

func TestAnalyticsAndSystem(t *testing.T) {
	env := newTestEnv(t)

	paths := []string{
		"/api/admin/api-usage?api_type=auth",
		"/api/admin/analytics/system",
		"/api/admin/analytics/ai-usage",
		"/api/admin/analytics/content",
		"/api/admin/system/health",
		"/api/admin/system/activity-logs",
	}
	for _, p := range paths {
		if resp := env.do(t, http.MethodGet, p, "", true); resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s = %d", p, resp.StatusCode)
		}
	}

	resp := env.do(t, http.MethodPost, "/api/admin/system/clear-old-data", `{"days":0}`, true)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("days=0 status = %d, want 400", resp.StatusCode)
	}
}

func TestNotFoundAndMetrics(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/api/nowhere", "", true)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
	env.do(t, http.MethodGet, "/api/admin/users/1", "", true)

	resp = env.do(t, http.MethodGet, "/metrics", "", false)
	out, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(out), `voclio_http_requests_total{route="GET /api/admin/users/{id}",status="200"} 1`) {
		t.Errorf("metrics output missing route counter:\n%s", out)
	}
}

// The data access client and the fixture server agree on every shape.
func TestClientAgainstFixtureServer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := client.New(env.server.URL + "/api")

	login, err := c.Login(ctx, fixture.AdminEmail, fixture.AdminPassword)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	token := login.Token

	active := true
	users, err := c.ListUsers(ctx, token, client.UsersParams{Search: "O", IsActive: &active})
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}
	for _, u := range users.Data {
		if !u.IsActive {
			t.Errorf("inactive user %s returned", u.ID)
		}
	}

	if _, err := c.GetUser(ctx, token, "999"); !apierr.IsNotFound(err) {
		t.Errorf("GetUser(999) error = %v, want not found", err)
	}

	key, err := c.CreateAPIKey(ctx, token, model.APIKeyCreate{Name: "from client"})
	if err != nil {
		t.Fatalf("CreateAPIKey() error = %v", err)
	}
	if err := c.DeleteAPIKey(ctx, token, key.ID); err != nil {
		t.Errorf("DeleteAPIKey() error = %v", err)
	}

	configs, err := c.UpdateConfig(ctx, token, []model.ConfigUpdate{{Key: "support_email", Value: model.StringValue("help@voclio.com")}})
	if err != nil {
		t.Fatalf("UpdateConfig() error = %v", err)
	}
	if len(configs) != 7 {
		t.Errorf("configs = %d, want 7", len(configs))
	}

	logs, err := c.ListLogs(ctx, token, client.LogsParams{Severity: model.SeverityCritical})
	if err != nil {
		t.Fatalf("ListLogs() error = %v", err)
	}
	if logs.Total != 1 || logs.Data[0].UserID != nil {
		t.Errorf("logs = %+v", logs)
	}

	overview, err := c.Overview(ctx, token)
	if err != nil || len(overview.Outcomes.Failed()) != 0 {
		t.Errorf("Overview() = %+v, %v", overview.Outcomes, err)
	}

	if err := c.Logout(ctx, token); err != nil {
		t.Errorf("Logout() error = %v", err)
	}
}
