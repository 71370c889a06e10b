package httpx

import (
	"context"

	userdb "github.com/snake-playground/backend/app/modules/user/infrastructure/repositories"
)

type contextKey string

const userContextKey contextKey = "currentUser"

// WithUser stores the authenticated user on the request context.
func WithUser(ctx context.Context, user *userdb.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFrom returns the authenticated user, if the request carried one.
func UserFrom(ctx context.Context) (*userdb.User, bool) {
	user, ok := ctx.Value(userContextKey).(*userdb.User)
	return user, ok
}
