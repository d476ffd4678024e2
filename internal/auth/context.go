package auth

import (
	"context"

	"github.com/voclio/admin/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const sessionContextKey contextKey = "session"

// ContextWithSession adds the authenticated admin to the context.
func ContextWithSession(ctx context.Context, user model.SessionUser) context.Context {
	return context.WithValue(ctx, sessionContextKey, user)
}

// SessionFromContext retrieves the authenticated admin.
func SessionFromContext(ctx context.Context) (model.SessionUser, bool) {
	user, ok := ctx.Value(sessionContextKey).(model.SessionUser)
	return user, ok
}
