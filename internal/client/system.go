package client

import (
	"context"
	"net/http"

	"github.com/voclio/admin/internal/apierr"
	"github.com/voclio/admin/internal/fixture"
	"github.com/voclio/admin/internal/mapper"
	"github.com/voclio/admin/internal/model"
	"github.com/voclio/admin/internal/pagination"
	"github.com/voclio/admin/internal/query"
)

// ActivityLogsParams filters and pages the system activity feed.
type ActivityLogsParams struct {
	Page   int
	Limit  int
	UserID string
	Action string
}

// GetSystemHealth returns the backend's self-reported status.
func (c *Client) GetSystemHealth(ctx context.Context, token string) (model.SystemHealth, error) {
	const op = "get system health"
	if err := require(op, "token", token); err != nil {
		return model.SystemHealth{}, err
	}

	v, err := get[model.SystemHealth](ctx, c, op, token, "/admin/system/health")
	return withFallback(ctx, c, op, v, err, func() (model.SystemHealth, error) {
		return fixture.SystemHealth(c.now()), nil
	})
}

// ListActivityLogs returns one page of the system activity feed.
func (c *Client) ListActivityLogs(ctx context.Context, token string, params ActivityLogsParams) (model.PaginatedResponse[model.ActivityLog], error) {
	const op = "list activity logs"
	if err := require(op, "token", token); err != nil {
		return model.PaginatedResponse[model.ActivityLog]{}, err
	}

	hint := mapper.PageHint{Page: orDefault(params.Page, 1), Limit: orDefault(params.Limit, DefaultActivityLimit)}
	q := query.New().
		Add("page", hint.Page).
		Add("limit", hint.Limit).
		Add("userId", params.UserID).
		Add("action", params.Action)

	page, err := c.listActivityLogs(ctx, op, token, q.Encode(), hint)
	return withFallback(ctx, c, op, page, err, func() (model.PaginatedResponse[model.ActivityLog], error) {
		f := fixture.ActivityFilter{Action: params.Action}
		return pagination.Paginate(fixture.ActivityLogs(), hint.Page, hint.Limit, f.Predicates()...)
	})
}

func (c *Client) listActivityLogs(ctx context.Context, op, token, q string, hint mapper.PageHint) (model.PaginatedResponse[model.ActivityLog], error) {
	p, err := c.do(ctx, call{op: op, method: http.MethodGet, path: "/admin/system/activity-logs" + q, token: token})
	if err != nil {
		return model.PaginatedResponse[model.ActivityLog]{}, err
	}
	page, err := mapper.Page(p, "activity log", mapper.As[model.ActivityLog]("activity log"), hint)
	return page, wrap(op, err)
}

// ClearOldData removes sessions and notifications older than days.
func (c *Client) ClearOldData(ctx context.Context, token string, days int) (model.ClearOldDataResult, error) {
	const op = "clear old data"
	if err := require(op, "token", token); err != nil {
		return model.ClearOldDataResult{}, err
	}
	if days <= 0 {
		return model.ClearOldDataResult{}, &apierr.CallerError{Op: op, Field: "days"}
	}

	body := struct {
		Days int `json:"days"`
	}{Days: days}

	res, err := c.clearOldData(ctx, op, token, body)
	return withFallback(ctx, c, op, res, err, func() (model.ClearOldDataResult, error) {
		return fixture.ClearOldData(days), nil
	})
}

func (c *Client) clearOldData(ctx context.Context, op, token string, body any) (model.ClearOldDataResult, error) {
	p, err := c.do(ctx, call{op: op, method: http.MethodPost, path: "/admin/system/clear-old-data", token: token, body: body})
	if err != nil {
		return model.ClearOldDataResult{}, err
	}
	return decode[model.ClearOldDataResult](op, p)
}
