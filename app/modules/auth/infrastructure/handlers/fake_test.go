package authhandlers

import (
	"context"

	authservice "github.com/snake-playground/backend/app/modules/auth/application"
	userdb "github.com/snake-playground/backend/app/modules/user/infrastructure/repositories"
	"github.com/snake-playground/backend/internal/results"
)

// FakeAuthService implements authservice.Service with overridable funcs.
type FakeAuthService struct {
	SignupFunc       func(ctx context.Context, username, email, password string) (results.Operation[authservice.AuthPayload], error)
	LoginFunc        func(ctx context.Context, email, password string) (results.Operation[authservice.AuthPayload], error)
	LogoutFunc       func(ctx context.Context, rawToken string) (results.Operation[string], error)
	AuthenticateFunc func(ctx context.Context, rawToken string) (results.Operation[*userdb.User], error)
}

func (f *FakeAuthService) Signup(ctx context.Context, username, email, password string) (results.Operation[authservice.AuthPayload], error) {
	return f.SignupFunc(ctx, username, email, password)
}

func (f *FakeAuthService) Login(ctx context.Context, email, password string) (results.Operation[authservice.AuthPayload], error) {
	return f.LoginFunc(ctx, email, password)
}

func (f *FakeAuthService) Logout(ctx context.Context, rawToken string) (results.Operation[string], error) {
	return f.LogoutFunc(ctx, rawToken)
}

func (f *FakeAuthService) Authenticate(ctx context.Context, rawToken string) (results.Operation[*userdb.User], error) {
	return f.AuthenticateFunc(ctx, rawToken)
}

func (f *FakeAuthService) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	return 0, nil
}

var _ authservice.Service = (*FakeAuthService)(nil)
