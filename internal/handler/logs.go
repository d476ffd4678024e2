package handler

import (
	"net/http"
	"time"

	"github.com/voclio/admin/internal/fixture"
	"github.com/voclio/admin/internal/model"
)

// ListLogs handles GET /admin/logs.
func (h *AdminHandler) ListLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, limit := pageParams(q, defaultLogsLimit)

	from, errFrom := fixture.ParseDateBound(q.Get("start_date"), false)
	to, errTo := fixture.ParseDateBound(q.Get("end_date"), true)
	if errFrom != nil || errTo != nil {
		details := map[string][]string{}
		if errFrom != nil {
			details["start_date"] = []string{"must be YYYY-MM-DD or RFC 3339"}
		}
		if errTo != nil {
			details["end_date"] = []string{"must be YYYY-MM-DD or RFC 3339"}
		}
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date range", details)
		return
	}

	filter := fixture.LogFilter{
		ActivityType: model.ActivityType(q.Get("activity_type")),
		Severity:     model.Severity(q.Get("severity")),
		From:         from,
		To:           to,
	}

	res, err := h.store.ListLogs(r.Context(), filter, page, limit)
	if err != nil {
		h.handleStoreError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ListActivityLogs handles GET /admin/system/activity-logs.
func (h *AdminHandler) ListActivityLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, limit := pageParams(q, defaultActivityLimit)

	res, err := h.store.ListActivityLogs(r.Context(), fixture.ActivityFilter{Action: q.Get("action")}, page, limit)
	if err != nil {
		h.handleStoreError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ClearOldData handles POST /admin/system/clear-old-data.
func (h *AdminHandler) ClearOldData(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Days int `json:"days"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeBadBody(w, err)
		return
	}
	if req.Days <= 0 {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Days must be positive",
			map[string][]string{"days": {"must be greater than 0"}})
		return
	}

	h.metrics.IncStoreMutation("system", "clear_old_data")
	writeJSON(w, http.StatusOK, fixture.ClearOldData(req.Days))
}

// SystemHealth handles GET /admin/system/health.
func (h *AdminHandler) SystemHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, fixture.SystemHealth(time.Now()))
}
