package authdb

import (
	"context"
	"time"

	sharedtypes "github.com/snake-playground/backend/app/shared"
)

// Repository defines the revoked-token store.
type Repository interface {
	Revoke(ctx context.Context, tokenHash string, userID sharedtypes.UserID, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenHash string) (bool, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
