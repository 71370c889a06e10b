package authdb

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	sharedtypes "github.com/snake-playground/backend/app/shared"
)

// TokenDBImpl is the bun-backed revoked-token store.
type TokenDBImpl struct {
	DB *bun.DB
}

// Revoke records a token hash as revoked. Revoking the same token twice is a
// no-op.
func (db *TokenDBImpl) Revoke(ctx context.Context, tokenHash string, userID sharedtypes.UserID, expiresAt time.Time) error {
	revoked := &RevokedToken{
		TokenHash: tokenHash,
		UserID:    userID,
		RevokedAt: time.Now().UTC(),
		ExpiresAt: expiresAt,
	}

	_, err := db.DB.NewInsert().
		Model(revoked).
		On("CONFLICT (token_hash) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

// IsRevoked reports whether a token hash has been revoked.
func (db *TokenDBImpl) IsRevoked(ctx context.Context, tokenHash string) (bool, error) {
	exists, err := db.DB.NewSelect().
		Model((*RevokedToken)(nil)).
		Where("token_hash = ?", tokenHash).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}

	return exists, nil
}

// DeleteExpired prunes revocation rows whose tokens have expired anyway.
func (db *TokenDBImpl) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := db.DB.NewDelete().
		Model((*RevokedToken)(nil)).
		Where("expires_at < ?", now).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted tokens: %w", err)
	}

	return deleted, nil
}
