package authdb

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/uptrace/bun"

	sharedtypes "github.com/snake-playground/backend/app/shared"
)

// RevokedToken is a row in the revoked_tokens table, keyed by the SHA-256
// hash of the raw token.
type RevokedToken struct {
	bun.BaseModel `bun:"table:revoked_tokens,alias:rt"`

	TokenHash string             `bun:"token_hash,pk,type:varchar(64)"`
	UserID    sharedtypes.UserID `bun:"user_id,notnull,type:varchar(36)"`
	RevokedAt time.Time          `bun:"revoked_at,notnull,default:current_timestamp"`
	ExpiresAt time.Time          `bun:"expires_at,notnull"`
}

// HashToken returns the hex-encoded SHA-256 digest of a raw token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
