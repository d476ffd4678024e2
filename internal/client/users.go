package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/voclio/admin/internal/apierr"
	"github.com/voclio/admin/internal/fixture"
	"github.com/voclio/admin/internal/mapper"
	"github.com/voclio/admin/internal/model"
	"github.com/voclio/admin/internal/pagination"
	"github.com/voclio/admin/internal/query"
)

// Default page sizes, matching the backend's.
const (
	DefaultUsersLimit    = 10
	DefaultAPIKeysLimit  = 10
	DefaultLogsLimit     = 20
	DefaultActivityLimit = 50
)

// UsersParams filters and pages the user list. Zero fields are omitted.
type UsersParams struct {
	Page             int
	Limit            int
	Search           string
	SubscriptionTier model.SubscriptionTier
	IsActive         *bool
	Status           string
	SortBy           string
	Order            string
}

func (p UsersParams) hint() mapper.PageHint {
	return mapper.PageHint{Page: orDefault(p.Page, 1), Limit: orDefault(p.Limit, DefaultUsersLimit)}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// ListUsers returns one page of users.
func (c *Client) ListUsers(ctx context.Context, token string, params UsersParams) (model.PaginatedResponse[model.User], error) {
	const op = "list users"
	if err := require(op, "token", token); err != nil {
		return model.PaginatedResponse[model.User]{}, err
	}

	hint := params.hint()
	q := query.New().
		Add("page", hint.Page).
		Add("limit", hint.Limit).
		Add("search", params.Search).
		Add("subscription_tier", params.SubscriptionTier).
		Add("is_active", params.IsActive).
		Add("status", params.Status).
		Add("sort_by", params.SortBy).
		Add("order", params.Order)

	page, err := c.listUsers(ctx, op, token, q.Encode(), hint)
	return withFallback(ctx, c, op, page, err, func() (model.PaginatedResponse[model.User], error) {
		f := fixture.UserFilter{Search: params.Search, SubscriptionTier: params.SubscriptionTier, IsActive: params.IsActive}
		return pagination.Paginate(fixture.Users(), hint.Page, hint.Limit, f.Predicates()...)
	})
}

func (c *Client) listUsers(ctx context.Context, op, token, q string, hint mapper.PageHint) (model.PaginatedResponse[model.User], error) {
	p, err := c.do(ctx, call{op: op, method: http.MethodGet, path: "/admin/users" + q, token: token})
	if err != nil {
		return model.PaginatedResponse[model.User]{}, err
	}
	page, err := mapper.Page(p, "user", mapper.UserItem, hint)
	return page, wrap(op, err)
}

// GetUser returns a single user with nested tasks and notes.
func (c *Client) GetUser(ctx context.Context, token, id string) (model.User, error) {
	const op = "get user"
	if err := require(op, "token", token, "id", id); err != nil {
		return model.User{}, err
	}

	u, err := c.getUser(ctx, op, token, id)
	return withFallback(ctx, c, op, u, err, func() (model.User, error) {
		for _, u := range fixture.Users() {
			if u.ID == id {
				return u, nil
			}
		}
		return model.User{}, &apierr.HTTPStatusError{Status: http.StatusNotFound, Message: "User not found"}
	})
}

func (c *Client) getUser(ctx context.Context, op, token, id string) (model.User, error) {
	p, err := c.do(ctx, call{op: op, method: http.MethodGet, path: "/admin/users/" + url.PathEscape(id), token: token})
	if err != nil {
		return model.User{}, err
	}
	u, err := mapper.User(p)
	return u, wrap(op, err)
}

// UpdateUser changes only the fields named in upd and returns the stored user.
func (c *Client) UpdateUser(ctx context.Context, token, id string, upd model.UserUpdate) (model.User, error) {
	const op = "update user"
	if err := require(op, "token", token, "id", id); err != nil {
		return model.User{}, err
	}
	if upd.IsEmpty() {
		return model.User{}, &apierr.CallerError{Op: op, Field: "update"}
	}

	p, err := c.do(ctx, call{op: op, method: http.MethodPut, path: "/admin/users/" + url.PathEscape(id), token: token, body: upd})
	if err != nil {
		return model.User{}, err
	}
	u, err := mapper.User(p)
	return u, wrap(op, err)
}

// DeleteUser deletes a user.
func (c *Client) DeleteUser(ctx context.Context, token, id string) error {
	const op = "delete user"
	if err := require(op, "token", token, "id", id); err != nil {
		return err
	}

	return c.send(ctx, call{op: op, method: http.MethodDelete, path: "/admin/users/" + url.PathEscape(id), token: token})
}

// ResetUserPassword asks the backend to send a password reset email.
func (c *Client) ResetUserPassword(ctx context.Context, token, id string) (model.Message, error) {
	const op = "reset user password"
	if err := require(op, "token", token, "id", id); err != nil {
		return model.Message{}, err
	}

	p, err := c.do(ctx, call{op: op, method: http.MethodPost, path: "/admin/users/" + url.PathEscape(id) + "/reset-password", token: token})
	if err != nil {
		return model.Message{}, err
	}
	m, err := mapper.Decode[model.Message](p, "message")
	return m, wrap(op, err)
}
