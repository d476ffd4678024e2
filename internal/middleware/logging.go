package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/voclio/admin/internal/model"
)

// statusRecorder remembers the first status written and counts body bytes.
type statusRecorder struct {
	http.ResponseWriter
	status  int
	written int
	sent    bool
}

func recordStatus(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

func (sr *statusRecorder) WriteHeader(code int) {
	if sr.sent {
		return
	}
	sr.status, sr.sent = code, true
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if !sr.sent {
		sr.WriteHeader(http.StatusOK)
	}
	n, err := sr.ResponseWriter.Write(b)
	sr.written += n
	return n, err
}

// accessEntry is filled in while a request moves through the stack. Auth
// sets admin once the bearer token resolves.
type accessEntry struct {
	admin model.SessionUser
	authd bool
}

type accessEntryKey struct{}

// noteAdmin attaches the authenticated admin to the access log line of the
// request, if one is being written.
func noteAdmin(ctx context.Context, user model.SessionUser) {
	if e, ok := ctx.Value(accessEntryKey{}).(*accessEntry); ok {
		e.admin, e.authd = user, true
	}
}

// Logger writes one access line per request: route, status, admin and
// timing. Headers are never logged since Authorization carries the session
// token.
func Logger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			began := time.Now()
			entry := &accessEntry{}
			sr := recordStatus(w)

			r = r.WithContext(context.WithValue(r.Context(), accessEntryKey{}, entry))
			next.ServeHTTP(sr, r)

			attrs := []slog.Attr{
				slog.String("request_id", GetRequestID(r.Context())),
				slog.String("route", routePattern(r)),
				slog.String("path", r.URL.Path),
				slog.Int("status", sr.status),
				slog.Int("resp_bytes", sr.written),
				slog.Int64("took_ms", time.Since(began).Milliseconds()),
				slog.String("client_ip", r.RemoteAddr),
			}
			if entry.authd {
				attrs = append(attrs, slog.String("admin_id", entry.admin.ID))
			}

			logger.LogAttrs(r.Context(), levelFor(sr.status), "admin api", attrs...)
		})
	}
}

func levelFor(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
