// Package envelope normalizes raw backend responses.
//
// A 2xx body is either Bare (the entity or list itself) or Enveloped
// ({"success": bool, "data": ..., "message": ...}). The distinction is made
// once here; package mapper only ever calls Payload.Unwrap.
package envelope

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/voclio/admin/internal/apierr"
)

// Kind tags the shape of a successful payload.
type Kind int

const (
	// Bare payloads are the entity or list itself.
	Bare Kind = iota
	// Enveloped payloads wrap the entity in {success, data}.
	Enveloped
)

func (k Kind) String() string {
	if k == Enveloped {
		return "enveloped"
	}
	return "bare"
}

var emptyObject = json.RawMessage(`{}`)

// Payload is a successful response body with its shape resolved.
type Payload struct {
	Kind   Kind
	Status int
	// Body is the full response body, envelope included.
	Body json.RawMessage
}

// Normalize classifies a response. Non-2xx statuses yield an
// *apierr.HTTPStatusError; a 2xx body that is not JSON yields an
// *apierr.MappingError. Normalize is pure.
func Normalize(status int, body []byte) (Payload, error) {
	if status < 200 || status >= 300 {
		return Payload{}, StatusError(status, body)
	}

	body = bytes.TrimSpace(body)
	if status == http.StatusNoContent || len(body) == 0 {
		return Payload{Kind: Bare, Status: status, Body: emptyObject}, nil
	}

	if !json.Valid(body) {
		return Payload{}, &apierr.MappingError{Entity: "response", Reason: "body is not valid JSON"}
	}

	p := Payload{Kind: Bare, Status: status, Body: json.RawMessage(body)}
	if obj, ok := object(body); ok {
		if raw, ok := obj["success"]; ok {
			var success bool
			if json.Unmarshal(raw, &success) == nil {
				p.Kind = Enveloped
			}
		}
	}
	return p, nil
}

// Unwrap returns the payload proper: the envelope's data when present,
// otherwise the body itself. An envelope reporting success=false is
// returned as an *apierr.HTTPStatusError.
func (p Payload) Unwrap() (json.RawMessage, error) {
	if p.Kind != Enveloped {
		return p.Body, nil
	}

	obj, _ := object(p.Body)
	var success bool
	_ = json.Unmarshal(obj["success"], &success)
	if !success {
		return nil, StatusError(p.Status, p.Body)
	}

	if data, ok := obj["data"]; ok && !isNull(data) {
		return data, nil
	}
	return p.Body, nil
}

// Field returns a top-level member of the body, if the body is an object.
func (p Payload) Field(name string) (json.RawMessage, bool) {
	obj, ok := object(p.Body)
	if !ok {
		return nil, false
	}
	raw, ok := obj[name]
	if !ok || isNull(raw) {
		return nil, false
	}
	return raw, true
}

// Message returns the envelope's message, if any.
func (p Payload) Message() string {
	raw, ok := p.Field("message")
	if !ok {
		return ""
	}
	var s string
	_ = json.Unmarshal(raw, &s)
	return s
}

// StatusError builds the error for a failed response. The message is taken
// from error.message, then message, then error (when a string), then the
// fixed per-status table. Unparseable bodies go straight to the table.
func StatusError(status int, body []byte) *apierr.HTTPStatusError {
	e := &apierr.HTTPStatusError{Status: status}

	obj, ok := object(bytes.TrimSpace(body))
	if !ok {
		e.Message = apierr.StatusMessage(status)
		return e
	}

	var nested map[string]json.RawMessage
	if raw, ok := obj["error"]; ok {
		_ = json.Unmarshal(raw, &nested)
	}

	switch {
	case str(nested["message"]) != "":
		e.Message = str(nested["message"])
	case str(obj["message"]) != "":
		e.Message = str(obj["message"])
	case str(obj["error"]) != "":
		e.Message = str(obj["error"])
	default:
		e.Message = apierr.StatusMessage(status)
	}

	if raw, ok := nested["code"]; ok {
		e.Code = scalar(raw)
	}

	if raw, ok := nested["details"]; ok && !isNull(raw) {
		e.Details = raw
	} else if raw, ok := obj["errors"]; ok && !isNull(raw) {
		e.Details = raw
	}

	return e
}

func object(b []byte) (map[string]json.RawMessage, bool) {
	if len(b) == 0 || b[0] != '{' {
		return nil, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(b, &obj); err != nil {
		return nil, false
	}
	return obj, true
}

func str(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

// scalar renders a string or number token as a string.
func scalar(raw json.RawMessage) string {
	if s := str(raw); s != "" {
		return s
	}
	var n json.Number
	if json.Unmarshal(raw, &n) == nil {
		if _, err := strconv.ParseFloat(n.String(), 64); err == nil {
			return n.String()
		}
	}
	return ""
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(bytes.TrimSpace(raw)) == "null"
}
