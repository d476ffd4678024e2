package config

import (
	"strings"
	"testing"
	"time"

	"github.com/voclio/admin/internal/client"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MOCK_STORE", "")
	t.Setenv("FALLBACK_POLICY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.AppEnv != "development" {
		t.Errorf("expected default AppEnv 'development', got %s", cfg.AppEnv)
	}
	if cfg.MockPort != 3001 {
		t.Errorf("expected default MockPort 3001, got %d", cfg.MockPort)
	}
	if cfg.MockBasePath != "/api" {
		t.Errorf("expected default MockBasePath '/api', got %s", cfg.MockBasePath)
	}
	if cfg.MockStore != StoreMemory {
		t.Errorf("expected default MockStore 'memory', got %s", cfg.MockStore)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("expected default LogFormat 'json', got %s", cfg.LogFormat)
	}
	if cfg.ClientTimeout != 15*time.Second {
		t.Errorf("expected default ClientTimeout 15s, got %s", cfg.ClientTimeout)
	}
	if cfg.Fallback() != client.FallbackNone {
		t.Errorf("expected default fallback none, got %s", cfg.Fallback())
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("MOCK_STORE", "redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("FALLBACK_POLICY", "fixture")
	t.Setenv("MOCK_PORT", "4000")
	t.Setenv("CLIENT_TIMEOUT", "2s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.MockPort != 4000 || cfg.ClientTimeout != 2*time.Second {
		t.Errorf("port = %d, timeout = %s", cfg.MockPort, cfg.ClientTimeout)
	}
	if cfg.Fallback() != client.FallbackFixture {
		t.Errorf("expected fixture fallback, got %s", cfg.Fallback())
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("MOCK_PORT", "not-a-port")

	if _, err := Load(); err == nil {
		t.Fatal("expected parse error, got nil")
	}
}

func TestValidate(t *testing.T) {
	valid := Config{MockStore: StoreMemory, FallbackPolicy: "none", MockPort: 3001}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"memory", func(*Config) {}, ""},
		{"redis with url", func(c *Config) { c.MockStore, c.RedisURL = StoreRedis, "redis://x" }, ""},
		{"postgres with url", func(c *Config) { c.MockStore, c.DatabaseURL = StorePostgres, "postgres://x" }, ""},
		{"redis without url", func(c *Config) { c.MockStore = StoreRedis }, "REDIS_URL"},
		{"postgres without url", func(c *Config) { c.MockStore = StorePostgres }, "DATABASE_URL"},
		{"unknown store", func(c *Config) { c.MockStore = "etcd" }, "unknown MOCK_STORE"},
		{"unknown fallback", func(c *Config) { c.FallbackPolicy = "always" }, "FALLBACK_POLICY"},
		{"port out of range", func(c *Config) { c.MockPort = 70000 }, "MOCK_PORT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestConfig_GetCORSAllowedOrigins(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"http://localhost:5173", []string{"http://localhost:5173"}},
		{" https://a.com , ,https://b.com ", []string{"https://a.com", "https://b.com"}},
	}

	for _, tt := range tests {
		got := (&Config{CORSAllowedOrigins: tt.in}).GetCORSAllowedOrigins()
		if len(got) != len(tt.want) {
			t.Fatalf("GetCORSAllowedOrigins(%q) = %v, want %v", tt.in, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("GetCORSAllowedOrigins(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestConfig_IsProduction(t *testing.T) {
	cfg := &Config{AppEnv: "production"}
	if !cfg.IsProduction() || cfg.IsDevelopment() {
		t.Error("expected production and not development")
	}

	cfg.AppEnv = "development"
	if cfg.IsProduction() || !cfg.IsDevelopment() {
		t.Error("expected development and not production")
	}
}
