package client

import (
	"context"
	"net/http"

	"github.com/voclio/admin/internal/fixture"
	"github.com/voclio/admin/internal/mapper"
	"github.com/voclio/admin/internal/model"
	"github.com/voclio/admin/internal/pagination"
	"github.com/voclio/admin/internal/query"
)

// LogsParams filters and pages the activity log. Dates are YYYY-MM-DD or RFC 3339.
type LogsParams struct {
	Page         int
	Limit        int
	ActivityType model.ActivityType
	Severity     model.Severity
	StartDate    string
	EndDate      string
}

// ListLogs returns one page of activity records.
func (c *Client) ListLogs(ctx context.Context, token string, params LogsParams) (model.PaginatedResponse[model.Log], error) {
	const op = "list logs"
	if err := require(op, "token", token); err != nil {
		return model.PaginatedResponse[model.Log]{}, err
	}

	hint := mapper.PageHint{Page: orDefault(params.Page, 1), Limit: orDefault(params.Limit, DefaultLogsLimit)}
	q := query.New().
		Add("page", hint.Page).
		Add("limit", hint.Limit).
		Add("activity_type", params.ActivityType).
		Add("severity", params.Severity).
		Add("start_date", params.StartDate).
		Add("end_date", params.EndDate)

	page, err := c.listLogs(ctx, op, token, q.Encode(), hint)
	return withFallback(ctx, c, op, page, err, func() (model.PaginatedResponse[model.Log], error) {
		f := fixture.LogFilter{ActivityType: params.ActivityType, Severity: params.Severity}
		// Unparseable dates leave the bound open.
		f.From, _ = fixture.ParseDateBound(params.StartDate, false)
		f.To, _ = fixture.ParseDateBound(params.EndDate, true)
		return pagination.Paginate(fixture.Logs(), hint.Page, hint.Limit, f.Predicates()...)
	})
}

func (c *Client) listLogs(ctx context.Context, op, token, q string, hint mapper.PageHint) (model.PaginatedResponse[model.Log], error) {
	p, err := c.do(ctx, call{op: op, method: http.MethodGet, path: "/admin/logs" + q, token: token})
	if err != nil {
		return model.PaginatedResponse[model.Log]{}, err
	}
	page, err := mapper.Page(p, "log", mapper.LogItem, hint)
	return page, wrap(op, err)
}
