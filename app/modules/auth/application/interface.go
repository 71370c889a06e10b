package authservice

import (
	"context"

	userdb "github.com/snake-playground/backend/app/modules/user/infrastructure/repositories"
	"github.com/snake-playground/backend/internal/results"
)

// AuthPayload is returned from signup and login: the account plus a fresh
// access token.
type AuthPayload struct {
	User  *userdb.User `json:"user"`
	Token string       `json:"token"`
}

// Service defines account and session operations.
type Service interface {
	Signup(ctx context.Context, username, email, password string) (results.Operation[AuthPayload], error)
	Login(ctx context.Context, email, password string) (results.Operation[AuthPayload], error)
	Logout(ctx context.Context, rawToken string) (results.Operation[string], error)
	Authenticate(ctx context.Context, rawToken string) (results.Operation[*userdb.User], error)
	CleanupExpiredTokens(ctx context.Context) (int64, error)
}
