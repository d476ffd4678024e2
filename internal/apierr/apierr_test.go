package apierr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusMessage(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{http.StatusBadRequest, MsgInvalidRequest},
		{http.StatusUnauthorized, MsgSessionExpired},
		{http.StatusForbidden, MsgForbidden},
		{http.StatusNotFound, MsgNotFound},
		{http.StatusInternalServerError, MsgServerError},
		{http.StatusBadGateway, MsgUnexpectedError},
		{http.StatusTeapot, MsgUnexpectedError},
	}

	for _, tt := range tests {
		if got := StatusMessage(tt.status); got != tt.want {
			t.Errorf("StatusMessage(%d) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestTransportError_IsUnavailable(t *testing.T) {
	err := fmt.Errorf("list users: %w", &TransportError{
		Op:     "list users",
		Method: http.MethodGet,
		URL:    "http://localhost:1/admin/users",
		Err:    context.DeadlineExceeded,
	})

	if !errors.Is(err, ErrUnavailable) {
		t.Error("expected TransportError to match ErrUnavailable")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("expected TransportError to unwrap to its cause")
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		t.Error("TransportError must not look like an HTTPStatusError")
	}
}

func TestHTTPStatusError_FieldErrors(t *testing.T) {
	tests := []struct {
		name    string
		details string
		want    map[string][]string
	}{
		{"absent", "", nil},
		{"list form", `{"email":["is invalid","is taken"]}`, map[string][]string{"email": {"is invalid", "is taken"}}},
		{"single form", `{"email":"is invalid"}`, map[string][]string{"email": {"is invalid"}}},
		{"other shape", `["oops"]`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &HTTPStatusError{Status: 400, Message: "bad", Details: []byte(tt.details)}
			got := err.FieldErrors()
			if len(got) != len(tt.want) {
				t.Fatalf("FieldErrors() = %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if len(got[k]) != len(v) {
					t.Errorf("FieldErrors()[%q] = %v, want %v", k, got[k], v)
				}
			}
		})
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(fmt.Errorf("get user: %w", &HTTPStatusError{Status: 404, Message: MsgNotFound})) {
		t.Error("expected wrapped 404 to be detected")
	}
	if IsNotFound(&HTTPStatusError{Status: 500}) {
		t.Error("500 is not a not-found")
	}
	if IsNotFound(errors.New("plain")) {
		t.Error("plain error is not a not-found")
	}
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"status", &HTTPStatusError{Status: 400, Message: "bad field"}, "bad field"},
		{"caller", &CallerError{Op: "get user", Field: "token"}, "token is required"},
		{"mapping", &MappingError{Entity: "user", Reason: "no id"}, "unexpected response from server"},
		{"transport", &TransportError{Err: errors.New("refused")}, "backend is unreachable, please try again later"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Message(tt.err); got != tt.want {
				t.Errorf("Message() = %q, want %q", got, tt.want)
			}
		})
	}
}
