package handler

import (
	"log/slog"
	"net/http"

	"github.com/voclio/admin/internal/model"
)

// GetConfig handles GET /admin/config. The body is a bare array.
func (h *AdminHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	configs, err := h.store.Configs(r.Context())
	if err != nil {
		h.handleStoreError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, configs)
}

// UpdateConfig handles PUT /admin/config with {"configs":[{key,value}]}.
// Unknown keys are ignored; a value of the wrong kind rejects the batch.
func (h *AdminHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Configs []model.ConfigUpdate `json:"configs"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeBadBody(w, err)
		return
	}

	configs, err := h.store.UpdateConfigs(r.Context(), req.Configs)
	if err != nil {
		h.handleStoreError(w, r, err, "")
		return
	}

	if len(req.Configs) > 0 {
		h.metrics.IncStoreMutation("config", "update")
		keys := make([]string, 0, len(req.Configs))
		for _, c := range req.Configs {
			keys = append(keys, c.Key)
		}
		h.logger.Info("config updated", slog.Any("keys", keys))
	}
	writeJSON(w, http.StatusOK, configs)
}
