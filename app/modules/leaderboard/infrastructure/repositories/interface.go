package leaderboarddb

import (
	"context"

	leaderboarddomain "github.com/snake-playground/backend/app/modules/leaderboard/domain"
	sharedtypes "github.com/snake-playground/backend/app/shared"
)

// Repository is the score ledger: an append-only log of completed-game scores
// plus the read paths the ranking engine and leaderboard views need.
type Repository interface {
	Append(ctx context.Context, userID sharedtypes.UserID, username string, score int, mode sharedtypes.GameMode) (*ScoreEntry, error)
	Query(ctx context.Context, mode *sharedtypes.GameMode, limit int) ([]ScoreEntry, error)
	BestScorePerUser(ctx context.Context) ([]leaderboarddomain.UserBest, error)
}
