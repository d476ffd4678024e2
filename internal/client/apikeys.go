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

// APIKeysParams pages the API key list.
type APIKeysParams struct {
	Page  int
	Limit int
}

// ListAPIKeys returns one page of API keys.
func (c *Client) ListAPIKeys(ctx context.Context, token string, params APIKeysParams) (model.PaginatedResponse[model.APIKey], error) {
	const op = "list api keys"
	if err := require(op, "token", token); err != nil {
		return model.PaginatedResponse[model.APIKey]{}, err
	}

	hint := mapper.PageHint{Page: orDefault(params.Page, 1), Limit: orDefault(params.Limit, DefaultAPIKeysLimit)}
	q := query.Build("page", hint.Page, "limit", hint.Limit)

	page, err := c.listAPIKeys(ctx, op, token, q, hint)
	return withFallback(ctx, c, op, page, err, func() (model.PaginatedResponse[model.APIKey], error) {
		return pagination.Paginate(fixture.APIKeys(), hint.Page, hint.Limit)
	})
}

func (c *Client) listAPIKeys(ctx context.Context, op, token, q string, hint mapper.PageHint) (model.PaginatedResponse[model.APIKey], error) {
	p, err := c.do(ctx, call{op: op, method: http.MethodGet, path: "/admin/api-keys" + q, token: token})
	if err != nil {
		return model.PaginatedResponse[model.APIKey]{}, err
	}
	page, err := mapper.Page(p, "api key", mapper.APIKeyItem, hint)
	return page, wrap(op, err)
}

// CreateAPIKey creates a key. The returned Key holds the full secret;
// callers must show it once and never log it.
func (c *Client) CreateAPIKey(ctx context.Context, token string, in model.APIKeyCreate) (model.APIKey, error) {
	const op = "create api key"
	if err := require(op, "token", token, "name", in.Name); err != nil {
		return model.APIKey{}, err
	}
	if in.Permissions == nil {
		in.Permissions = []string{model.PermissionRead}
	}

	p, err := c.do(ctx, call{op: op, method: http.MethodPost, path: "/admin/api-keys", token: token, body: in})
	if err != nil {
		return model.APIKey{}, err
	}
	k, err := mapper.APIKey(p)
	return k, wrap(op, err)
}

// UpdateAPIKey changes only the fields named in upd.
func (c *Client) UpdateAPIKey(ctx context.Context, token, id string, upd model.APIKeyUpdate) (model.APIKey, error) {
	const op = "update api key"
	if err := require(op, "token", token, "id", id); err != nil {
		return model.APIKey{}, err
	}
	if upd.Name == nil && upd.IsActive == nil && upd.Permissions == nil {
		return model.APIKey{}, &apierr.CallerError{Op: op, Field: "update"}
	}

	p, err := c.do(ctx, call{op: op, method: http.MethodPut, path: "/admin/api-keys/" + url.PathEscape(id), token: token, body: upd})
	if err != nil {
		return model.APIKey{}, err
	}
	k, err := mapper.APIKey(p)
	return k, wrap(op, err)
}

// DeleteAPIKey revokes and removes a key.
func (c *Client) DeleteAPIKey(ctx context.Context, token, id string) error {
	const op = "delete api key"
	if err := require(op, "token", token, "id", id); err != nil {
		return err
	}

	return c.send(ctx, call{op: op, method: http.MethodDelete, path: "/admin/api-keys/" + url.PathEscape(id), token: token})
}
