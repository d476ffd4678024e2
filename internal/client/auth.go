package client

import (
	"context"
	"net/http"

	"github.com/voclio/admin/internal/mapper"
	"github.com/voclio/admin/internal/model"
)

// Login exchanges credentials for a session token. It needs no token.
func (c *Client) Login(ctx context.Context, email, password string) (model.LoginResult, error) {
	const op = "login"
	if err := require(op, "email", email, "password", password); err != nil {
		return model.LoginResult{}, err
	}

	body := model.LoginRequest{Email: email, Password: password}
	p, err := c.do(ctx, call{op: op, method: http.MethodPost, path: "/auth/login", body: body})
	if err != nil {
		return model.LoginResult{}, err
	}
	res, err := mapper.Login(p)
	return res, wrap(op, err)
}

// Logout ends the session.
func (c *Client) Logout(ctx context.Context, token string) error {
	const op = "logout"
	if err := require(op, "token", token); err != nil {
		return err
	}
	return c.send(ctx, call{op: op, method: http.MethodPost, path: "/auth/logout", token: token})
}
