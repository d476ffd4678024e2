// Package apierr defines the error taxonomy of the admin data-access layer.
//
// Four kinds of failure are kept apart so callers and tests can tell them
// apart with errors.As:
//
//   - CallerError: a required argument was missing; nothing was sent.
//   - TransportError: the request never completed (DNS, refused, timeout, cancel).
//   - HTTPStatusError: the backend answered with a non-2xx status.
//   - MappingError: the backend answered 2xx but broke its documented shape.
package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrUnavailable is matched by every TransportError.
var ErrUnavailable = errors.New("backend unavailable")

// Fallback messages keyed by HTTP status, used when the body carries none.
const (
	MsgInvalidRequest  = "invalid request"
	MsgSessionExpired  = "session expired"
	MsgForbidden       = "forbidden"
	MsgNotFound        = "not found"
	MsgServerError     = "server error"
	MsgUnexpectedError = "unexpected error"
)

// StatusMessage returns the fixed fallback message for an HTTP status.
func StatusMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return MsgInvalidRequest
	case http.StatusUnauthorized:
		return MsgSessionExpired
	case http.StatusForbidden:
		return MsgForbidden
	case http.StatusNotFound:
		return MsgNotFound
	case http.StatusInternalServerError:
		return MsgServerError
	default:
		return MsgUnexpectedError
	}
}

// CallerError reports a missing required argument.
type CallerError struct {
	Op    string
	Field string
}

func (e *CallerError) Error() string {
	return fmt.Sprintf("%s: %s is required", e.Op, e.Field)
}

// TransportError reports a request that could not complete.
type TransportError struct {
	Op     string
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s %s: %s: %v", e.Op, e.Method, e.URL, ErrUnavailable, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is makes every TransportError match ErrUnavailable.
func (e *TransportError) Is(target error) bool {
	return target == ErrUnavailable
}

// HTTPStatusError reports a non-2xx response, or a 2xx envelope with success=false.
type HTTPStatusError struct {
	Status  int
	Message string
	Code    string
	// Details holds structured validation detail when the backend sent any.
	Details json.RawMessage
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Status, e.Message)
}

// FieldErrors decodes Details as per-field messages.
// Returns nil when Details is absent or has another shape.
func (e *HTTPStatusError) FieldErrors() map[string][]string {
	if len(e.Details) == 0 {
		return nil
	}

	var fields map[string][]string
	if err := json.Unmarshal(e.Details, &fields); err == nil {
		return fields
	}

	// Single-message form: {"field": "message"}
	var single map[string]string
	if err := json.Unmarshal(e.Details, &single); err != nil {
		return nil
	}
	fields = make(map[string][]string, len(single))
	for k, v := range single {
		fields[k] = []string{v}
	}
	return fields
}

// MappingError reports a successful response whose shape violates the backend contract.
type MappingError struct {
	Entity string
	Reason string
	Err    error
}

func (e *MappingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("map %s: %s: %v", e.Entity, e.Reason, e.Err)
	}
	return fmt.Sprintf("map %s: %s", e.Entity, e.Reason)
}

func (e *MappingError) Unwrap() error { return e.Err }

// IsStatus reports whether err is an HTTPStatusError with the given status.
func IsStatus(err error, status int) bool {
	var statusErr *HTTPStatusError
	return errors.As(err, &statusErr) && statusErr.Status == status
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	return IsStatus(err, http.StatusNotFound)
}

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool {
	return IsStatus(err, http.StatusUnauthorized)
}

// Message returns the text a UI should render for err.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return statusErr.Message
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return "backend is unreachable, please try again later"
	}

	var callerErr *CallerError
	if errors.As(err, &callerErr) {
		return callerErr.Field + " is required"
	}

	var mappingErr *MappingError
	if errors.As(err, &mappingErr) {
		return "unexpected response from server"
	}

	return err.Error()
}
