package client

import (
	"context"
	"net/http"

	"github.com/voclio/admin/internal/envelope"
	"github.com/voclio/admin/internal/fixture"
	"github.com/voclio/admin/internal/mapper"
	"github.com/voclio/admin/internal/model"
	"github.com/voclio/admin/internal/query"
)

// APIUsageParams narrows the API usage report.
type APIUsageParams struct {
	StartDate string
	EndDate   string
	APIType   string
}

// AIUsageParams narrows the AI usage report.
type AIUsageParams struct {
	StartDate string
	EndDate   string
	UserID    string
}

// get fetches path and decodes the unwrapped payload into T.
func get[T any](ctx context.Context, c *Client, op, token, path string) (T, error) {
	var zero T
	p, err := c.do(ctx, call{op: op, method: http.MethodGet, path: path, token: token})
	if err != nil {
		return zero, err
	}
	return decode[T](op, p)
}

func decode[T any](op string, p envelope.Payload) (T, error) {
	v, err := mapper.Decode[T](p, op)
	return v, wrap(op, err)
}

// GetAPIUsage returns request and error totals with a per-type daily breakdown.
func (c *Client) GetAPIUsage(ctx context.Context, token string, params APIUsageParams) (model.APIUsage, error) {
	const op = "get api usage"
	if err := require(op, "token", token); err != nil {
		return model.APIUsage{}, err
	}

	q := query.New().
		Add("start_date", params.StartDate).
		Add("end_date", params.EndDate).
		Add("api_type", params.APIType)

	usage, err := get[model.APIUsage](ctx, c, op, token, "/admin/api-usage"+q.Encode())
	return withFallback(ctx, c, op, usage, err, func() (model.APIUsage, error) {
		return fixture.UsageFor(params.APIType), nil
	})
}

// GetSystemAnalytics returns the dashboard overview.
func (c *Client) GetSystemAnalytics(ctx context.Context, token string) (model.SystemAnalytics, error) {
	const op = "get system analytics"
	if err := require(op, "token", token); err != nil {
		return model.SystemAnalytics{}, err
	}

	v, err := get[model.SystemAnalytics](ctx, c, op, token, "/admin/analytics/system")
	return withFallback(ctx, c, op, v, err, func() (model.SystemAnalytics, error) {
		return fixture.SystemAnalytics(), nil
	})
}

// GetAIUsageAnalytics returns AI feature consumption.
func (c *Client) GetAIUsageAnalytics(ctx context.Context, token string, params AIUsageParams) (model.AIUsageAnalytics, error) {
	const op = "get ai usage analytics"
	if err := require(op, "token", token); err != nil {
		return model.AIUsageAnalytics{}, err
	}

	q := query.New().
		Add("startDate", params.StartDate).
		Add("endDate", params.EndDate).
		Add("userId", params.UserID)

	v, err := get[model.AIUsageAnalytics](ctx, c, op, token, "/admin/analytics/ai-usage"+q.Encode())
	return withFallback(ctx, c, op, v, err, func() (model.AIUsageAnalytics, error) {
		return fixture.AIUsage(), nil
	})
}

// GetContentStatistics returns content creation and storage figures.
func (c *Client) GetContentStatistics(ctx context.Context, token string) (model.ContentStatistics, error) {
	const op = "get content statistics"
	if err := require(op, "token", token); err != nil {
		return model.ContentStatistics{}, err
	}

	v, err := get[model.ContentStatistics](ctx, c, op, token, "/admin/analytics/content")
	return withFallback(ctx, c, op, v, err, func() (model.ContentStatistics, error) {
		return fixture.ContentStatistics(), nil
	})
}
