package authmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	if err := Migrations.DiscoverCaller(); err != nil {
		panic(err)
	}
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating revoked_tokens table...")

		_, err := db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS revoked_tokens (
				token_hash VARCHAR(64) PRIMARY KEY,
				user_id VARCHAR(36) NOT NULL,
				revoked_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				expires_at TIMESTAMPTZ NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_revoked_tokens_expires_at ON revoked_tokens (expires_at);
		`)
		if err != nil {
			return fmt.Errorf("failed to create revoked_tokens table: %w", err)
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS revoked_tokens;`)
		if err != nil {
			return fmt.Errorf("failed to drop revoked_tokens table: %w", err)
		}
		return nil
	})
}
