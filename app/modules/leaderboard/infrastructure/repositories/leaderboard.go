package leaderboarddb

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	leaderboarddomain "github.com/snake-playground/backend/app/modules/leaderboard/domain"
	sharedtypes "github.com/snake-playground/backend/app/shared"
)

// LeaderboardDBImpl is a repository for the score ledger.
type LeaderboardDBImpl struct {
	DB *bun.DB
}

// Append inserts a score entry and bumps the owning user's cached stats in
// the same transaction. Either both writes commit or neither does.
func (db *LeaderboardDBImpl) Append(ctx context.Context, userID sharedtypes.UserID, username string, score int, mode sharedtypes.GameMode) (*ScoreEntry, error) {
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	entry := &ScoreEntry{
		ID:       uuid.New().String(),
		UserID:   userID,
		Username: username,
		Score:    score,
		Mode:     mode,
	}

	if _, err := tx.NewInsert().Model(entry).Returning("date").Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to insert score entry: %w", err)
	}

	result, err := tx.NewUpdate().
		Table("users").
		Set("games_played = games_played + 1").
		Set("high_score = GREATEST(high_score, ?)", score).
		Where("id = ?", userID).
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to update user stats: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected after stat update: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrUserNotFound
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return entry, nil
}

// Query returns ledger entries ordered by score descending, optionally
// filtered by mode.
func (db *LeaderboardDBImpl) Query(ctx context.Context, mode *sharedtypes.GameMode, limit int) ([]ScoreEntry, error) {
	var entries []ScoreEntry

	q := db.DB.NewSelect().Model(&entries)
	if mode != nil {
		q = q.Where("mode = ?", *mode)
	}

	if err := q.Order("score DESC").Limit(limit).Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}

	return entries, nil
}

// BestScorePerUser returns, for every user with at least one entry, their
// maximum score and the timestamp it was first achieved.
func (db *LeaderboardDBImpl) BestScorePerUser(ctx context.Context) ([]leaderboarddomain.UserBest, error) {
	var bests []leaderboarddomain.UserBest

	err := db.DB.NewSelect().
		Model((*ScoreEntry)(nil)).
		ColumnExpr("DISTINCT ON (user_id) user_id").
		ColumnExpr("score AS best_score").
		ColumnExpr("date AS achieved_at").
		OrderExpr("user_id, score DESC, date ASC").
		Scan(ctx, &bests)
	if err != nil {
		return nil, fmt.Errorf("failed to query best scores: %w", err)
	}

	return bests, nil
}
