package handler

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oklog/ulid/v2"

	"github.com/voclio/admin/internal/auth"
	"github.com/voclio/admin/internal/model"
)

// ListAPIKeys handles GET /admin/api-keys.
func (h *AdminHandler) ListAPIKeys(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r.URL.Query(), defaultKeysLimit)

	res, err := h.store.ListAPIKeys(r.Context(), page, limit)
	if err != nil {
		h.handleStoreError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// CreateAPIKey handles POST /admin/api-keys. The full key is returned here
// and in later listings; the dashboard masks it for display.
func (h *AdminHandler) CreateAPIKey(w http.ResponseWriter, r *http.Request) {
	var req model.APIKeyCreate
	if err := decodeJSON(r, &req); err != nil {
		writeBadBody(w, err)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Name is required",
			map[string][]string{"name": {"is required"}})
		return
	}
	if details := permissionErrors(req.Permissions); details != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid permissions", details)
		return
	}
	if len(req.Permissions) == 0 {
		req.Permissions = []string{model.PermissionRead}
	}

	secret, err := auth.GenerateAPIKey(h.keyEnv)
	if err != nil {
		h.logger.Error("failed to generate API key", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to generate API key", nil)
		return
	}

	key := model.APIKey{
		ID:          ulid.Make().String(),
		Name:        req.Name,
		Key:         secret,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
		Permissions: req.Permissions,
	}

	created, err := h.store.InsertAPIKey(r.Context(), key)
	if err != nil {
		h.handleStoreError(w, r, err, "API key not found")
		return
	}

	h.metrics.IncStoreMutation("api_key", "create")
	h.logger.Info("API key created", slog.Any("api_key", created))
	writeJSON(w, http.StatusCreated, created)
}

// UpdateAPIKey handles PUT /admin/api-keys/{id}.
func (h *AdminHandler) UpdateAPIKey(w http.ResponseWriter, r *http.Request) {
	var upd model.APIKeyUpdate
	if err := decodeJSON(r, &upd); err != nil {
		writeBadBody(w, err)
		return
	}
	if upd.Permissions != nil {
		if details := permissionErrors(*upd.Permissions); details != nil {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid permissions", details)
			return
		}
	}

	key, err := h.store.UpdateAPIKey(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		h.handleStoreError(w, r, err, "API key not found")
		return
	}
	h.metrics.IncStoreMutation("api_key", "update")
	writeJSON(w, http.StatusOK, key)
}

// DeleteAPIKey handles DELETE /admin/api-keys/{id}.
func (h *AdminHandler) DeleteAPIKey(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.store.DeleteAPIKey(r.Context(), id); err != nil {
		h.handleStoreError(w, r, err, "API key not found")
		return
	}
	h.metrics.IncStoreMutation("api_key", "delete")
	h.logger.Info("API key deleted", slog.String("key_id", id))
	w.WriteHeader(http.StatusNoContent)
}

func permissionErrors(perms []string) map[string][]string {
	var bad []string
	for _, p := range perms {
		if !slices.Contains(model.ValidPermissions, p) {
			bad = append(bad, "unknown permission "+p)
		}
	}
	if bad == nil {
		return nil
	}
	return map[string][]string{"permissions": bad}
}
