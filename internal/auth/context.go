package auth

import (
	"context"

	"jobsite/internal/models"
)

type ctxKey string

const userKey ctxKey = "currentUser"

// WithUser attaches the resolved user record to the request context.
func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// CurrentUser returns the user attached by the auth gate, or nil when
// the request never passed through it.
func CurrentUser(ctx context.Context) *models.User {
	if u, ok := ctx.Value(userKey).(*models.User); ok {
		return u
	}
	return nil
}
