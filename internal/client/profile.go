package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/voclio/admin/internal/model"
	"github.com/voclio/admin/internal/query"
)

// DefaultNotificationsLimit is the page size of ListNotifications.
const DefaultNotificationsLimit = 10

// GetProfile returns the signed-in administrator's account.
func (c *Client) GetProfile(ctx context.Context, token string) (model.UserProfile, error) {
	const op = "get profile"
	if err := require(op, "token", token); err != nil {
		return model.UserProfile{}, err
	}
	return get[model.UserProfile](ctx, c, op, token, "/auth/profile")
}

// ListNotifications returns the latest notifications.
func (c *Client) ListNotifications(ctx context.Context, token string, limit int) ([]model.Notification, error) {
	const op = "list notifications"
	if err := require(op, "token", token); err != nil {
		return nil, err
	}

	q := query.Build("limit", orDefault(limit, DefaultNotificationsLimit))
	return get[[]model.Notification](ctx, c, op, token, "/notifications"+q)
}

// MarkNotificationRead marks one notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, token, id string) error {
	const op = "mark notification read"
	if err := require(op, "token", token, "id", id); err != nil {
		return err
	}
	return c.send(ctx, call{op: op, method: http.MethodPut, path: "/notifications/" + url.PathEscape(id) + "/read", token: token})
}

// MarkAllNotificationsRead marks every notification as read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context, token string) error {
	const op = "mark all notifications read"
	if err := require(op, "token", token); err != nil {
		return err
	}
	return c.send(ctx, call{op: op, method: http.MethodPut, path: "/notifications/read-all", token: token})
}

// send performs a call whose response body is not needed.
func (c *Client) send(ctx context.Context, r call) error {
	p, err := c.do(ctx, r)
	if err != nil {
		return err
	}
	_, err = p.Unwrap()
	return wrap(r.op, err)
}
