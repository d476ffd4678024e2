// Package main is the entrypoint for the fixture admin API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/voclio/admin/internal/auth"
	"github.com/voclio/admin/internal/cache"
	"github.com/voclio/admin/internal/config"
	"github.com/voclio/admin/internal/fixture"
	"github.com/voclio/admin/internal/handler"
	"github.com/voclio/admin/internal/metrics"
	"github.com/voclio/admin/internal/middleware"
	"github.com/voclio/admin/internal/repository"
	"github.com/voclio/admin/internal/server"
	"github.com/voclio/admin/internal/store"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	backend, err := openBackend(ctx, cfg)
	if err != nil {
		logger.Error(
			"failed to open fixture store backend",
			slog.String("backend", cfg.MockStore),
			slog.String("error", sanitizeError(err, cfg.DatabaseURL, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}

	opts := []store.Option{store.WithLogger(logger)}
	if backend.persister != nil {
		opts = append(opts, store.WithPersister(backend.persister))
	}
	st, err := store.New(ctx, opts...)
	if err != nil {
		logger.Error("failed to load fixture state", slog.String("error", sanitizeError(err, cfg.DatabaseURL, cfg.RedisURL)))
		backend.close()
		os.Exit(1)
	}

	credential, err := auth.NewCredential(cfg.MockAdminEmail, cfg.MockAdminPassword, cfg.MockToken, fixture.AdminUser())
	if err != nil {
		logger.Error("failed to build admin credential", "error", err)
		backend.close()
		os.Exit(1)
	}

	r := handler.NewRouter(handler.RouterConfig{
		BasePath:     cfg.MockBasePath,
		Logger:       logger,
		Metrics:      metrics.NewInMemory(),
		Store:        st,
		Credential:   credential,
		CORS:         corsConfig(cfg),
		MaxBodySize:  cfg.MaxRequestBodySize,
		KeyEnv:       auth.EnvFor(cfg.AppEnv),
		StoreBackend: cfg.MockStore,
		StoreChecker: backend.checker,
	})

	srv := server.New(r, server.Config{
		Port:            cfg.MockPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)
	if backend.closer != nil {
		srv.OnShutdown(cfg.MockStore+" store", backend.closer)
	}

	logger.Info("starting fixture server",
		"port", cfg.MockPort,
		"base_path", cfg.MockBasePath,
		"store", cfg.MockStore,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// storeBackend is the optional snapshot persister behind the fixture store.
type storeBackend struct {
	persister store.Persister
	checker   handler.HealthChecker
	closer    server.ShutdownFunc
}

func (b *storeBackend) close() {
	if b.closer != nil {
		_ = b.closer(context.Background())
	}
}

// openBackend connects the persister selected by MOCK_STORE.
func openBackend(ctx context.Context, cfg *config.Config) (*storeBackend, error) {
	switch cfg.MockStore {
	case config.StoreRedis:
		c, err := cache.New(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("connect to Redis: %w", err)
		}
		return &storeBackend{
			persister: c,
			checker:   c,
			closer:    func(context.Context) error { return c.Close() },
		}, nil

	case config.StorePostgres:
		repo, err := repository.New(ctx, cfg.DatabaseURL, repository.WithTable(cfg.FixtureTable))
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		return &storeBackend{
			persister: repo,
			checker:   repo,
			closer: func(context.Context) error {
				repo.Close()
				return nil
			},
		}, nil

	default:
		return &storeBackend{}, nil
	}
}

func corsConfig(cfg *config.Config) middleware.CORSConfig {
	c := middleware.DefaultCORSConfig()
	if origins := cfg.GetCORSAllowedOrigins(); len(origins) > 0 {
		c.AllowedOrigins = origins
	}
	return c
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
