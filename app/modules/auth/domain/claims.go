package authdomain

import (
	"time"

	sharedtypes "github.com/snake-playground/backend/app/shared"
)

// Claims is the authenticated identity carried by an access token.
type Claims struct {
	UserID    sharedtypes.UserID
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
