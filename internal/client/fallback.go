package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/voclio/admin/internal/apierr"
)

// FallbackPolicy decides what a read does when the backend fails.
type FallbackPolicy string

const (
	// FallbackNone surfaces every error.
	FallbackNone FallbackPolicy = "none"
	// FallbackFixture serves fixture data in place of transport and HTTP
	// status errors. Caller errors, mapping errors and cancellation still
	// propagate.
	FallbackFixture FallbackPolicy = "fixture"
)

// ParseFallbackPolicy parses "none" or "fixture"; "" means none.
func ParseFallbackPolicy(s string) (FallbackPolicy, error) {
	switch FallbackPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", FallbackNone:
		return FallbackNone, nil
	case FallbackFixture:
		return FallbackFixture, nil
	default:
		return "", fmt.Errorf("unknown fallback policy %q", s)
	}
}

// recoverable reports whether err may be replaced with fixture data.
func recoverable(ctx context.Context, err error) bool {
	if err == nil || ctx.Err() != nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	var (
		transportErr *apierr.TransportError
		statusErr    *apierr.HTTPStatusError
	)
	return errors.As(err, &transportErr) || errors.As(err, &statusErr)
}

// withFallback returns fixture() in place of a recoverable err when the
// fixture policy is active. Every substitution is logged and counted.
func withFallback[T any](ctx context.Context, c *Client, op string, v T, err error, fixture func() (T, error)) (T, error) {
	if err == nil || c.fallback != FallbackFixture || !recoverable(ctx, err) {
		return v, err
	}

	c.logger.WarnContext(ctx, "backend call failed, serving fixture data",
		"op", op,
		"error", err,
	)
	c.metrics.IncFallback(op)
	return fixture()
}
