package client

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/voclio/admin/internal/apierr"
)

func TestSettle_WaitsForAllAndKeepsOrder(t *testing.T) {
	boom := errors.New("boom")
	out := Settle(context.Background(),
		Call{Name: "slow", Fn: func(ctx context.Context) error { time.Sleep(20 * time.Millisecond); return nil }},
		Call{Name: "fails", Fn: func(ctx context.Context) error { return boom }},
		Call{Name: "fast", Fn: func(ctx context.Context) error { return nil }},
	)

	if len(out) != 3 || out[0].Name != "slow" || out[1].Name != "fails" || out[2].Name != "fast" {
		t.Fatalf("outcomes = %+v", out)
	}
	if out[0].Err != nil || !errors.Is(out[1].Err, boom) || out[2].Err != nil {
		t.Errorf("errors = %v %v %v", out[0].Err, out[1].Err, out[2].Err)
	}
	if out.AllFailed() {
		t.Error("partial failure reported as total")
	}
	if len(out.Failed()) != 1 || !errors.Is(out.Err(), boom) {
		t.Errorf("Failed() = %+v, Err() = %v", out.Failed(), out.Err())
	}
}

func TestOverview_PartialFailure(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/system"):
			writeBody(w, http.StatusInternalServerError, `{"error":{"message":"analytics offline"}}`)
		case strings.HasSuffix(r.URL.Path, "/ai-usage"):
			writeBody(w, http.StatusOK, `{"success":true,"data":{"totals":{"total_summarizations":104}}}`)
		default:
			writeBody(w, http.StatusOK, `{"statistics":{"notes_today":12}}`)
		}
	})

	ov, err := New(srv.URL).Overview(context.Background(), testToken)
	if err != nil {
		t.Fatalf("Overview() error = %v", err)
	}
	if ov.System != nil {
		t.Error("System should be nil after failure")
	}
	if ov.AIUsage == nil || ov.AIUsage.Totals.TotalSummarizations != 104 {
		t.Errorf("AIUsage = %+v", ov.AIUsage)
	}
	if ov.Content == nil || ov.Content.Statistics.NotesToday != 12 {
		t.Errorf("Content = %+v", ov.Content)
	}

	failed := ov.Outcomes.Failed()
	if len(failed) != 1 || failed[0].Name != "system" || apierr.Message(failed[0].Err) != "analytics offline" {
		t.Errorf("failed = %+v", failed)
	}
}

func TestOverview_TotalFailure(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, http.StatusUnauthorized, `{"message":"Unauthorized"}`)
	})

	ov, err := New(srv.URL).Overview(context.Background(), testToken)
	if err == nil {
		t.Fatal("expected error when every report fails")
	}
	if !ov.Outcomes.AllFailed() || !apierr.IsUnauthorized(err) {
		t.Errorf("outcomes = %+v, err = %v", ov.Outcomes, err)
	}
}
