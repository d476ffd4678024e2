// Package client is the data-access layer of the admin console: one method
// per backend operation, each returning canonical model values or a typed
// error from package apierr.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/voclio/admin/internal/apierr"
	"github.com/voclio/admin/internal/envelope"
	"github.com/voclio/admin/internal/metrics"
)

const (
	// DefaultTimeout bounds a single backend call.
	DefaultTimeout = 30 * time.Second

	// RequestIDHeader carries a fresh id on every outbound request.
	RequestIDHeader = "X-Request-ID"

	maxResponseBytes = 10 << 20
)

// Client talks to the admin backend. It holds no per-request state and is
// safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	fallback   FallbackPolicy
	metrics    metrics.Recorder
	now        func() time.Time
	timeout    time.Duration
	maxBody    int64
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the HTTP timeout for the client. It applies regardless of
// option order and never modifies an http.Client passed to WithHTTPClient.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithLogger sets the logger used for fallback warnings and call tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithFallback sets the policy applied when a read fails.
func WithFallback(policy FallbackPolicy) Option {
	return func(c *Client) {
		c.fallback = policy
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(recorder metrics.Recorder) Option {
	return func(c *Client) {
		if recorder != nil {
			c.metrics = recorder
		}
	}
}

// New creates a client for the backend at baseURL (e.g. "http://localhost:3001/api").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     slog.Default(),
		fallback:   FallbackNone,
		metrics:    metrics.NewNoop(),
		now:        time.Now,
		maxBody:    maxResponseBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	c.logger = c.logger.With("component", "client")
	return c
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Fallback returns the configured fallback policy.
func (c *Client) Fallback() FallbackPolicy { return c.fallback }

// call describes one backend request.
type call struct {
	op     string
	method string
	path   string
	token  string
	body   any
}

// do performs the request and normalizes the response.
func (c *Client) do(ctx context.Context, r call) (envelope.Payload, error) {
	start := time.Now()
	p, status, err := c.roundTrip(ctx, r)
	elapsed := time.Since(start)

	c.metrics.ObserveBackendCall(r.op, outcome(err), elapsed)
	c.logger.DebugContext(ctx, "backend call",
		"op", r.op,
		"method", r.method,
		"path", r.path,
		"status", status,
		"duration_ms", elapsed.Milliseconds(),
	)
	return p, err
}

func (c *Client) roundTrip(ctx context.Context, r call) (envelope.Payload, int, error) {
	var body io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return envelope.Payload{}, 0, fmt.Errorf("%s: encode body: %w", r.op, err)
		}
		body = bytes.NewReader(b)
	}

	url := c.baseURL + r.path
	req, err := http.NewRequestWithContext(ctx, r.method, url, body)
	if err != nil {
		return envelope.Payload{}, 0, fmt.Errorf("%s: build request: %w", r.op, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return envelope.Payload{}, 0, &apierr.TransportError{Op: r.op, Method: r.method, URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return envelope.Payload{}, resp.StatusCode, &apierr.TransportError{Op: r.op, Method: r.method, URL: url, Err: err}
	}
	if int64(len(data)) > c.maxBody {
		return envelope.Payload{}, resp.StatusCode, fmt.Errorf("%s: %w", r.op, &apierr.MappingError{
			Entity: "response",
			Reason: fmt.Sprintf("body exceeds %d byte limit", c.maxBody),
		})
	}

	p, err := envelope.Normalize(resp.StatusCode, data)
	if err != nil {
		return envelope.Payload{}, resp.StatusCode, fmt.Errorf("%s: %w", r.op, err)
	}
	return p, resp.StatusCode, nil
}

func outcome(err error) string {
	var (
		transportErr *apierr.TransportError
		statusErr    *apierr.HTTPStatusError
		mappingErr   *apierr.MappingError
		callerErr    *apierr.CallerError
	)
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.As(err, &transportErr):
		return metrics.OutcomeTransport
	case errors.As(err, &statusErr):
		return metrics.OutcomeStatus
	case errors.As(err, &mappingErr):
		return metrics.OutcomeMapping
	case errors.As(err, &callerErr):
		return metrics.OutcomeCaller
	default:
		return metrics.OutcomeMapping
	}
}

// require returns a CallerError for the first empty value.
func require(op string, fields ...string) error {
	for i := 0; i+1 < len(fields); i += 2 {
		if fields[i+1] == "" {
			return &apierr.CallerError{Op: op, Field: fields[i]}
		}
	}
	return nil
}

// wrap prefixes mapping and unwrap errors with the operation name.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var transportErr *apierr.TransportError
	if errors.As(err, &transportErr) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}
