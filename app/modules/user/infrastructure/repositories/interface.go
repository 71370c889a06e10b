package userdb

import (
	"context"

	sharedtypes "github.com/snake-playground/backend/app/shared"
)

// Repository defines user data operations.
type Repository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id sharedtypes.UserID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	UpdateUsername(ctx context.Context, id sharedtypes.UserID, username string) (*User, error)
}
