package userservice

import (
	"context"

	userdb "github.com/snake-playground/backend/app/modules/user/infrastructure/repositories"
	sharedtypes "github.com/snake-playground/backend/app/shared"
	"github.com/snake-playground/backend/internal/results"
)

// Service defines user profile operations.
type Service interface {
	GetUser(ctx context.Context, id sharedtypes.UserID) (results.Operation[*userdb.User], error)
	UpdateProfile(ctx context.Context, callerID, targetID sharedtypes.UserID, username *string) (results.Operation[*userdb.User], error)
}
