package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/voclio/admin/internal/metrics"
)

// Metrics records one observation per request, labelled by the chi route
// pattern so path parameters do not explode the label set.
func Metrics(rec metrics.Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sr := recordStatus(w)

			next.ServeHTTP(sr, r)

			rec.ObserveRequest(routePattern(r), sr.status, time.Since(start))
		})
	}
}

func routePattern(r *http.Request) string {
	route := ""
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		route = rctx.RoutePattern()
	}
	if route == "" {
		route = "unmatched"
	}
	return r.Method + " " + route
}
