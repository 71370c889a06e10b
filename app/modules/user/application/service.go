package userservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	userdb "github.com/snake-playground/backend/app/modules/user/infrastructure/repositories"
	sharedtypes "github.com/snake-playground/backend/app/shared"
	"github.com/snake-playground/backend/internal/results"
)

// UserServiceImpl handles user profile logic.
type UserServiceImpl struct {
	repo   userdb.Repository
	logger *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(repo userdb.Repository, logger *slog.Logger) *UserServiceImpl {
	return &UserServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

// GetUser retrieves a user's public profile.
func (s *UserServiceImpl) GetUser(ctx context.Context, id sharedtypes.UserID) (results.Operation[*userdb.User], error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, userdb.ErrNotFound) {
			return results.NotFound[*userdb.User]("USER_NOT_FOUND", "User not found"), nil
		}
		return results.Operation[*userdb.User]{}, fmt.Errorf("failed to get user: %w", err)
	}
	return results.Ok(user), nil
}

// UpdateProfile updates the target user's username. Only the owner may update
// their own profile.
func (s *UserServiceImpl) UpdateProfile(ctx context.Context, callerID, targetID sharedtypes.UserID, username *string) (results.Operation[*userdb.User], error) {
	existing, err := s.repo.GetUserByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, userdb.ErrNotFound) {
			return results.NotFound[*userdb.User]("USER_NOT_FOUND", "User not found"), nil
		}
		return results.Operation[*userdb.User]{}, fmt.Errorf("failed to get user: %w", err)
	}

	if callerID != targetID {
		return results.Forbidden[*userdb.User]("FORBIDDEN", "Not authorized to update this profile"), nil
	}

	if username == nil || *username == existing.Username {
		return results.Ok(existing), nil
	}

	if !sharedtypes.ValidUsername(*username) {
		return results.Invalid[*userdb.User]("VALIDATION_ERROR", "Username must be 3-30 alphanumeric characters, underscores, or hyphens"), nil
	}

	if taken, err := s.repo.GetUserByUsername(ctx, *username); err == nil && taken.ID != targetID {
		return results.Conflict[*userdb.User]("USERNAME_EXISTS", "Username already taken"), nil
	} else if err != nil && !errors.Is(err, userdb.ErrNotFound) {
		return results.Operation[*userdb.User]{}, fmt.Errorf("failed to check username: %w", err)
	}

	updated, err := s.repo.UpdateUsername(ctx, targetID, *username)
	if err != nil {
		if errors.Is(err, userdb.ErrNotFound) {
			return results.NotFound[*userdb.User]("USER_NOT_FOUND", "User not found"), nil
		}
		return results.Operation[*userdb.User]{}, fmt.Errorf("failed to update username: %w", err)
	}

	s.logger.InfoContext(ctx, "user renamed",
		slog.String("user_id", string(targetID)),
		slog.String("username", *username))

	return results.Ok(updated), nil
}
