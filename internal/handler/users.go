package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/voclio/admin/internal/fixture"
	"github.com/voclio/admin/internal/metrics"
	"github.com/voclio/admin/internal/model"
	"github.com/voclio/admin/internal/store"
)

const (
	defaultUsersLimit    = 10
	defaultKeysLimit     = 10
	defaultLogsLimit     = 20
	defaultActivityLimit = 50
)

// AdminHandler serves the admin endpoints backed by the fixture store.
type AdminHandler struct {
	store   *store.Store
	metrics metrics.Recorder
	logger  *slog.Logger
	keyEnv  string
}

// NewAdminHandler creates a new AdminHandler. keyEnv is the environment
// segment of generated API keys.
func NewAdminHandler(st *store.Store, rec metrics.Recorder, logger *slog.Logger, keyEnv string) *AdminHandler {
	if rec == nil {
		rec = metrics.NewNoop()
	}
	return &AdminHandler{store: st, metrics: rec, logger: logger, keyEnv: keyEnv}
}

// handleStoreError maps store errors to responses. notFound is the
// message for a missing record.
func (h *AdminHandler) handleStoreError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	var cfgErr *store.ConfigError
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeMessage(w, http.StatusNotFound, notFound)
	case errors.As(err, &cfgErr):
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid config values", cfgErr.Fields)
	case errors.Is(err, store.ErrDuplicateKey):
		writeError(w, http.StatusConflict, "CONFLICT", "API key already exists", nil)
	default:
		h.logger.Error("store operation failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}

// ListUsers handles GET /admin/users.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, limit := pageParams(q, defaultUsersLimit)

	filter := fixture.UserFilter{
		Search:           q.Get("search"),
		SubscriptionTier: model.SubscriptionTier(q.Get("subscription_tier")),
		IsActive:         boolParam(q.Get("is_active")),
	}

	res, err := h.store.ListUsers(r.Context(), filter, page, limit)
	if err != nil {
		h.handleStoreError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GetUser handles GET /admin/users/{id}.
func (h *AdminHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.store.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleStoreError(w, r, err, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UpdateUser handles PUT /admin/users/{id}. Only fields present in the
// body change.
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var upd model.UserUpdate
	if err := decodeJSON(r, &upd); err != nil {
		writeBadBody(w, err)
		return
	}
	if upd.SubscriptionTier != nil && !upd.SubscriptionTier.IsValid() {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid subscription tier",
			map[string][]string{"subscription_tier": {"must be one of free, basic, pro, enterprise"}})
		return
	}

	user, err := h.store.UpdateUser(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		h.handleStoreError(w, r, err, "User not found")
		return
	}
	h.metrics.IncStoreMutation("user", "update")
	writeJSON(w, http.StatusOK, user)
}

// DeleteUser handles DELETE /admin/users/{id}.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.store.DeleteUser(r.Context(), id); err != nil {
		h.handleStoreError(w, r, err, "User not found")
		return
	}
	h.metrics.IncStoreMutation("user", "delete")
	h.logger.Info("user deleted", slog.String("user_id", id))
	w.WriteHeader(http.StatusNoContent)
}

// ResetUserPassword handles POST /admin/users/{id}/reset-password.
func (h *AdminHandler) ResetUserPassword(w http.ResponseWriter, r *http.Request) {
	if _, err := h.store.GetUser(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleStoreError(w, r, err, "User not found")
		return
	}
	writeMessage(w, http.StatusOK, "Password reset email sent")
}
