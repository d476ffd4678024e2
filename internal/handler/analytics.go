package handler

import (
	"net/http"

	"github.com/voclio/admin/internal/fixture"
)

// APIUsage handles GET /admin/api-usage. api_type narrows the breakdown
// and the totals follow it.
func (h *AdminHandler) APIUsage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, fixture.UsageFor(r.URL.Query().Get("api_type")))
}

// SystemAnalytics handles GET /admin/analytics/system.
func (h *AdminHandler) SystemAnalytics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, fixture.SystemAnalytics())
}

// AIUsage handles GET /admin/analytics/ai-usage.
func (h *AdminHandler) AIUsage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, fixture.AIUsage())
}

// ContentStatistics handles GET /admin/analytics/content.
func (h *AdminHandler) ContentStatistics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, fixture.ContentStatistics())
}
