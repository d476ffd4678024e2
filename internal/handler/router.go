package handler

import (
	"log/slog"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/voclio/admin/internal/auth"
	"github.com/voclio/admin/internal/metrics"
	"github.com/voclio/admin/internal/middleware"
	"github.com/voclio/admin/internal/store"
)

// RouterConfig wires the fixture server.
type RouterConfig struct {
	// BasePath prefixes every fixture route, e.g. "/api".
	BasePath    string
	Logger      *slog.Logger
	Metrics     *metrics.InMemoryRecorder
	Store       *store.Store
	Credential  *auth.Credential
	CORS        middleware.CORSConfig
	MaxBodySize int64
	// KeyEnv is the environment segment of generated API keys.
	KeyEnv string
	// StoreBackend and StoreChecker feed /readyz.
	StoreBackend string
	StoreChecker HealthChecker
}

// NewRouter builds the chi router with all routes and middleware.
func NewRouter(cfg RouterConfig) *chi.Mux {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	h := New()
	healthHandler := NewHealthHandler(cfg.StoreBackend, cfg.StoreChecker)
	authHandler := NewAuthHandler(cfg.Credential, logger.With("component", "auth"))

	var rec metrics.Recorder = metrics.NewNoop()
	var snapshotter metrics.Snapshotter
	if cfg.Metrics != nil {
		rec = cfg.Metrics
		snapshotter = cfg.Metrics
	}
	metricsHandler := NewMetricsHandler(snapshotter)
	adminHandler := NewAdminHandler(cfg.Store, rec, logger.With("component", "admin"), cfg.KeyEnv)

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Metrics(rec))
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.NoStore)
	if cfg.MaxBodySize > 0 {
		r.Use(middleware.MaxBodySize(cfg.MaxBodySize))
	}

	// Unauthenticated
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)
	r.Get("/metrics", metricsHandler.Metrics)

	authCfg := middleware.AuthConfig{
		Logger:        logger,
		Authenticator: cfg.Credential,
	}

	routes := func(r chi.Router) {
		r.Post("/auth/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(authCfg))

			r.Post("/auth/logout", authHandler.Logout)

			r.Route("/admin", func(r chi.Router) {
				r.Get("/users", adminHandler.ListUsers)
				r.Get("/users/{id}", adminHandler.GetUser)
				r.Put("/users/{id}", adminHandler.UpdateUser)
				r.Delete("/users/{id}", adminHandler.DeleteUser)
				r.Post("/users/{id}/reset-password", adminHandler.ResetUserPassword)

				r.Get("/api-usage", adminHandler.APIUsage)

				r.Get("/api-keys", adminHandler.ListAPIKeys)
				r.Post("/api-keys", adminHandler.CreateAPIKey)
				r.Put("/api-keys/{id}", adminHandler.UpdateAPIKey)
				r.Delete("/api-keys/{id}", adminHandler.DeleteAPIKey)

				r.Get("/logs", adminHandler.ListLogs)

				r.Get("/config", adminHandler.GetConfig)
				r.Put("/config", adminHandler.UpdateConfig)

				r.Get("/analytics/system", adminHandler.SystemAnalytics)
				r.Get("/analytics/ai-usage", adminHandler.AIUsage)
				r.Get("/analytics/content", adminHandler.ContentStatistics)

				r.Get("/system/health", adminHandler.SystemHealth)
				r.Get("/system/activity-logs", adminHandler.ListActivityLogs)
				r.Post("/system/clear-old-data", adminHandler.ClearOldData)
			})
		})
	}

	if base := basePath(cfg.BasePath); base == "/" {
		r.Group(routes)
	} else {
		r.Route(base, routes)
	}

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}

// basePath normalizes p to "/x" form; "" and "/" mean the root.
func basePath(p string) string {
	return "/" + strings.Trim(p, "/")
}
