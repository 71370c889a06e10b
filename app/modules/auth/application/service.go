package authservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	authjwt "github.com/snake-playground/backend/app/modules/auth/infrastructure/jwt"
	authdb "github.com/snake-playground/backend/app/modules/auth/infrastructure/repositories"
	userdb "github.com/snake-playground/backend/app/modules/user/infrastructure/repositories"
	sharedtypes "github.com/snake-playground/backend/app/shared"
	"github.com/snake-playground/backend/internal/results"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 4

// AuthServiceImpl implements account signup, login and token lifecycle.
type AuthServiceImpl struct {
	users    userdb.Repository
	tokens   authdb.Repository
	jwt      authjwt.Provider
	tokenTTL time.Duration
	logger   *slog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(users userdb.Repository, tokens authdb.Repository, jwtProvider authjwt.Provider, tokenTTL time.Duration, logger *slog.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{
		users:    users,
		tokens:   tokens,
		jwt:      jwtProvider,
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

// Signup registers a new account and returns it with a fresh token.
func (s *AuthServiceImpl) Signup(ctx context.Context, username, email, password string) (results.Operation[AuthPayload], error) {
	if !sharedtypes.ValidUsername(username) {
		return results.Invalid[AuthPayload]("VALIDATION_ERROR",
			"username must be 3-30 characters of letters, digits, '-' or '_'"), nil
	}
	if !sharedtypes.ValidEmail(email) {
		return results.Invalid[AuthPayload]("VALIDATION_ERROR", "invalid email address"), nil
	}
	if len(password) < MinPasswordLength {
		return results.Invalid[AuthPayload]("VALIDATION_ERROR",
			fmt.Sprintf("password must be at least %d characters", MinPasswordLength)), nil
	}

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return results.Conflict[AuthPayload]("EMAIL_EXISTS", "Email already registered"), nil
	} else if !errors.Is(err, userdb.ErrNotFound) {
		return results.Operation[AuthPayload]{}, fmt.Errorf("failed to check email: %w", err)
	}
	if _, err := s.users.GetUserByUsername(ctx, username); err == nil {
		return results.Conflict[AuthPayload]("USERNAME_EXISTS", "Username already taken"), nil
	} else if !errors.Is(err, userdb.ErrNotFound) {
		return results.Operation[AuthPayload]{}, fmt.Errorf("failed to check username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return results.Operation[AuthPayload]{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &userdb.User{
		ID:           sharedtypes.UserID(uuid.New().String()),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		switch {
		case errors.Is(err, userdb.ErrEmailTaken):
			return results.Conflict[AuthPayload]("EMAIL_EXISTS", "Email already registered"), nil
		case errors.Is(err, userdb.ErrUsernameTaken):
			return results.Conflict[AuthPayload]("USERNAME_EXISTS", "Username already taken"), nil
		}
		return results.Operation[AuthPayload]{}, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.jwt.GenerateToken(user.ID, s.tokenTTL)
	if err != nil {
		return results.Operation[AuthPayload]{}, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.InfoContext(ctx, "user signed up",
		slog.String("user_id", string(user.ID)), slog.String("username", user.Username))

	return results.Ok(AuthPayload{User: user, Token: token}), nil
}

// Login verifies credentials and returns the account with a fresh token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (results.Operation[AuthPayload], error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userdb.ErrNotFound) {
			return results.Unauthorized[AuthPayload]("INVALID_CREDENTIALS", "Invalid email or password"), nil
		}
		return results.Operation[AuthPayload]{}, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return results.Unauthorized[AuthPayload]("INVALID_CREDENTIALS", "Invalid email or password"), nil
	}

	token, err := s.jwt.GenerateToken(user.ID, s.tokenTTL)
	if err != nil {
		return results.Operation[AuthPayload]{}, fmt.Errorf("failed to issue token: %w", err)
	}

	return results.Ok(AuthPayload{User: user, Token: token}), nil
}

// Logout revokes the presented token. An already-expired token still logs out
// cleanly; its revocation row keeps the token's real subject and expiry so
// cleanup prunes it on schedule.
func (s *AuthServiceImpl) Logout(ctx context.Context, rawToken string) (results.Operation[string], error) {
	claims, err := s.jwt.ValidateToken(rawToken)
	if err != nil && !errors.Is(err, authjwt.ErrExpiredToken) {
		return results.Unauthorized[string]("INVALID_TOKEN", "Invalid or expired token"), nil
	}

	var userID sharedtypes.UserID
	expiresAt := time.Now().UTC()
	if claims != nil {
		userID = claims.UserID
		expiresAt = claims.ExpiresAt
	}

	if err := s.tokens.Revoke(ctx, authdb.HashToken(rawToken), userID, expiresAt); err != nil {
		return results.Operation[string]{}, fmt.Errorf("failed to revoke token: %w", err)
	}

	return results.Ok("Logged out successfully"), nil
}

// Authenticate resolves a raw bearer token to its account. Revoked tokens are
// rejected before signature validation.
func (s *AuthServiceImpl) Authenticate(ctx context.Context, rawToken string) (results.Operation[*userdb.User], error) {
	revoked, err := s.tokens.IsRevoked(ctx, authdb.HashToken(rawToken))
	if err != nil {
		return results.Operation[*userdb.User]{}, fmt.Errorf("failed to check token revocation: %w", err)
	}
	if revoked {
		return results.Unauthorized[*userdb.User]("INVALID_TOKEN", "Token has been invalidated"), nil
	}

	claims, err := s.jwt.ValidateToken(rawToken)
	if err != nil {
		return results.Unauthorized[*userdb.User]("INVALID_TOKEN", "Invalid or expired token"), nil
	}

	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, userdb.ErrNotFound) {
			return results.Unauthorized[*userdb.User]("USER_NOT_FOUND", "User not found"), nil
		}
		return results.Operation[*userdb.User]{}, fmt.Errorf("failed to load user: %w", err)
	}

	return results.Ok(user), nil
}

// CleanupExpiredTokens prunes revocation rows for tokens past their expiry.
func (s *AuthServiceImpl) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	deleted, err := s.tokens.DeleteExpired(ctx, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to clean up revoked tokens: %w", err)
	}
	if deleted > 0 {
		s.logger.InfoContext(ctx, "pruned expired revoked tokens", slog.Int64("deleted", deleted))
	}
	return deleted, nil
}
