// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles,
// optionally seeded from a local .env file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/voclio/admin/internal/client"
)

// Store backends for the fixture server.
const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv string `env:"APP_ENV" envDefault:"development"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Data access client
	BackendAPIURL  string        `env:"BACKEND_API_URL" envDefault:"http://localhost:3001/api"`
	FallbackPolicy string        `env:"FALLBACK_POLICY" envDefault:"none"`
	ClientTimeout  time.Duration `env:"CLIENT_TIMEOUT" envDefault:"15s"`

	// Fixture server
	MockPort          int    `env:"MOCK_PORT" envDefault:"3001"`
	MockBasePath      string `env:"MOCK_BASE_PATH" envDefault:"/api"`
	MockToken         string `env:"MOCK_TOKEN" envDefault:"test_admin_token_12345"`
	MockAdminEmail    string `env:"MOCK_ADMIN_EMAIL" envDefault:"admin@test.com"`
	MockAdminPassword string `env:"MOCK_ADMIN_PASSWORD" envDefault:"admin123"`

	// Fixture snapshot persistence
	MockStore    string `env:"MOCK_STORE" envDefault:"memory"`
	RedisURL     string `env:"REDIS_URL"`
	DatabaseURL  string `env:"DATABASE_URL"`
	FixtureTable string `env:"FIXTURE_TABLE" envDefault:"fixture_snapshots"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// CORS configuration
	// Comma-separated list of allowed origins; empty allows any origin.
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:""`

	// Request body size limit in bytes (default 1MB)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"1048576"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// GetCORSAllowedOrigins parses the comma-separated origins string into a slice.
func (c *Config) GetCORSAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}

	origins := strings.Split(c.CORSAllowedOrigins, ",")
	result := make([]string, 0, len(origins))

	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// Fallback returns the parsed client fallback policy.
func (c *Config) Fallback() client.FallbackPolicy {
	p, err := client.ParseFallbackPolicy(c.FallbackPolicy)
	if err != nil {
		return client.FallbackNone
	}
	return p
}

// Validate checks combinations that struct tags cannot express.
func (c *Config) Validate() error {
	var errs []error

	switch c.MockStore {
	case StoreMemory:
	case StoreRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("MOCK_STORE=redis requires REDIS_URL"))
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("MOCK_STORE=postgres requires DATABASE_URL"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown MOCK_STORE %q (want memory, redis or postgres)", c.MockStore))
	}

	if _, err := client.ParseFallbackPolicy(c.FallbackPolicy); err != nil {
		errs = append(errs, fmt.Errorf("FALLBACK_POLICY: %w", err))
	}
	if c.MockPort <= 0 || c.MockPort > 65535 {
		errs = append(errs, fmt.Errorf("MOCK_PORT %d out of range", c.MockPort))
	}

	return errors.Join(errs...)
}

// Load reads an optional .env file, parses environment variables and
// validates the result. Variables already set in the environment win over
// the file.
func Load() (*Config, error) {
	_ = godotenv.Load(".env", ".env.local")

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
