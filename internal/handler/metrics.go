package handler

import (
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/voclio/admin/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
//
// GET /metrics
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	for _, k := range sortedKeys(snap.Requests) {
		route, status := split2(k)
		t := snap.Requests[k]
		labels := fmt.Sprintf(`route=%q,status=%q`, route, status)
		writeMetric(w, "voclio_http_requests_total{%s} %d\n", labels, t.Count)
		writeMetric(w, "voclio_http_request_duration_seconds_sum{%s} %.6f\n", labels, float64(t.TotalNs)/1e9)
	}

	for _, k := range sortedKeys(snap.StoreMutations) {
		entity, action := split2(k)
		writeMetric(w, "voclio_store_mutations_total{entity=%q,action=%q} %d\n", entity, action, snap.StoreMutations[k])
	}

	for _, k := range sortedKeys(snap.BackendCalls) {
		op, outcome := split2(k)
		t := snap.BackendCalls[k]
		labels := fmt.Sprintf(`op=%q,outcome=%q`, op, outcome)
		writeMetric(w, "voclio_backend_calls_total{%s} %d\n", labels, t.Count)
		writeMetric(w, "voclio_backend_call_duration_seconds_sum{%s} %.6f\n", labels, float64(t.TotalNs)/1e9)
	}

	for _, k := range sortedKeys(snap.Fallbacks) {
		writeMetric(w, "voclio_fixture_fallbacks_total{op=%q} %d\n", k, snap.Fallbacks[k])
	}
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// split2 undoes metrics.Key for two labels.
func split2(key string) (string, string) {
	a, b, _ := strings.Cut(key, "|")
	return a, b
}
