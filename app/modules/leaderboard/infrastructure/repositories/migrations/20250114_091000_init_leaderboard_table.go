package leaderboardmigrations

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
		fmt.Println("Creating leaderboard table...")

		_, err := db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS leaderboard (
				id VARCHAR(36) PRIMARY KEY,
				user_id VARCHAR(36) NOT NULL REFERENCES users (id) ON DELETE CASCADE,
				username VARCHAR(30) NOT NULL,
				score INTEGER NOT NULL CHECK (score >= 0),
				mode VARCHAR(20) NOT NULL,
				date TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS idx_leaderboard_user_id ON leaderboard (user_id);
			CREATE INDEX IF NOT EXISTS idx_leaderboard_score ON leaderboard (score DESC);
			CREATE INDEX IF NOT EXISTS idx_leaderboard_mode ON leaderboard (mode);
		`)
		if err != nil {
			return fmt.Errorf("failed to create leaderboard table: %w", err)
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS leaderboard;`)
		if err != nil {
			return fmt.Errorf("failed to drop leaderboard table: %w", err)
		}
		return nil
	})
}
