// Package handler provides the fixture server's HTTP handlers.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// Handler serves the catch-all responses.
type Handler struct{}

// New creates a new Handler instance.
func New() *Handler {
	return &Handler{}
}

// NotFound handles 404 responses.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusNotFound, "Not found")
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeMessage writes {"message": msg}.
func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageBody{Message: msg})
}

type messageBody struct {
	Message string `json:"message"`
}

type errorBody struct {
	Error   errorDetail `json:"error"`
	Message string      `json:"message"`
}

type errorDetail struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Details map[string][]string `json:"details,omitempty"`
}

// writeError writes {"error":{"code","message","details"},"message"}.
func writeError(w http.ResponseWriter, status int, code, msg string, details map[string][]string) {
	writeJSON(w, status, errorBody{
		Error:   errorDetail{Code: code, Message: msg, Details: details},
		Message: msg,
	})
}

// decodeJSON reads a JSON body into dst. An empty body leaves dst as is.
func decodeJSON(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func writeBadBody(w http.ResponseWriter, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		writeError(w, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "Request body too large", nil)
		return
	}
	writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", nil)
}

// pageParams reads page and limit; missing or invalid values fall back.
func pageParams(q url.Values, defaultLimit int) (page, limit int) {
	page = positiveInt(q.Get("page"), 1)
	limit = positiveInt(q.Get("limit"), defaultLimit)
	return page, limit
}

func positiveInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// boolParam parses "true"/"false"; anything else is unset.
func boolParam(s string) *bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil
	}
	return &b
}
