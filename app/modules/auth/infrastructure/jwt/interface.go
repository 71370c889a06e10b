package authjwt

import (
	"time"

	authdomain "github.com/snake-playground/backend/app/modules/auth/domain"
	sharedtypes "github.com/snake-playground/backend/app/shared"
)

// Provider signs and validates access tokens. ValidateToken returns the
// parsed claims together with ErrExpiredToken when the only defect is expiry.
type Provider interface {
	GenerateToken(userID sharedtypes.UserID, ttl time.Duration) (string, error)
	ValidateToken(tokenString string) (*authdomain.Claims, error)
}
