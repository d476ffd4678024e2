package handler

import (
	"context"
	"net/http"
	"time"
)

// HealthChecker defines an interface for checking service health.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthHandler manages health check endpoints.
type HealthHandler struct {
	backend string
	checker HealthChecker
}

// NewHealthHandler creates a new HealthHandler. backend names the snapshot
// store ("redis", "postgres"); pass a nil checker for the in-memory store.
func NewHealthHandler(backend string, checker HealthChecker) *HealthHandler {
	if backend == "" {
		backend = "store"
	}
	return &HealthHandler{backend: backend, checker: checker}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Healthz is a liveness probe endpoint. No dependency checks.
//
// GET /healthz
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Readyz is a readiness probe endpoint. It pings the snapshot store.
//
// GET /readyz
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string, 1)
	healthy := true

	switch {
	case h.checker == nil:
		checks[h.backend] = "in-memory"
	case h.checker.Ping(ctx) != nil:
		checks[h.backend] = "unreachable"
		healthy = false
	default:
		checks[h.backend] = "ok"
	}

	if !healthy {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unhealthy", Checks: checks})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Checks: checks})
}
