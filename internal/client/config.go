package client

import (
	"context"
	"net/http"

	"github.com/voclio/admin/internal/apierr"
	"github.com/voclio/admin/internal/fixture"
	"github.com/voclio/admin/internal/mapper"
	"github.com/voclio/admin/internal/model"
)

// GetConfig returns every system configuration entry.
func (c *Client) GetConfig(ctx context.Context, token string) ([]model.AppConfig, error) {
	const op = "get config"
	if err := require(op, "token", token); err != nil {
		return nil, err
	}

	configs, err := c.getConfig(ctx, op, token)
	return withFallback(ctx, c, op, configs, err, func() ([]model.AppConfig, error) {
		return fixture.Configs(), nil
	})
}

func (c *Client) getConfig(ctx context.Context, op, token string) ([]model.AppConfig, error) {
	p, err := c.do(ctx, call{op: op, method: http.MethodGet, path: "/admin/config", token: token})
	if err != nil {
		return nil, err
	}
	configs, err := mapper.Configs(p)
	return configs, wrap(op, err)
}

// UpdateConfig sets the values of the named keys and returns the full list.
func (c *Client) UpdateConfig(ctx context.Context, token string, updates []model.ConfigUpdate) ([]model.AppConfig, error) {
	const op = "update config"
	if err := require(op, "token", token); err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return nil, &apierr.CallerError{Op: op, Field: "configs"}
	}
	for _, u := range updates {
		if u.Key == "" {
			return nil, &apierr.CallerError{Op: op, Field: "key"}
		}
	}

	body := struct {
		Configs []model.ConfigUpdate `json:"configs"`
	}{Configs: updates}

	p, err := c.do(ctx, call{op: op, method: http.MethodPut, path: "/admin/config", token: token, body: body})
	if err != nil {
		return nil, err
	}
	configs, err := mapper.Configs(p)
	return configs, wrap(op, err)
}
