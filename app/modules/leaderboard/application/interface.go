package leaderboardservice

import (
	"context"

	leaderboarddb "github.com/snake-playground/backend/app/modules/leaderboard/infrastructure/repositories"
	userdb "github.com/snake-playground/backend/app/modules/user/infrastructure/repositories"
	sharedtypes "github.com/snake-playground/backend/app/shared"
	"github.com/snake-playground/backend/internal/results"
)

// Service defines leaderboard and ranking operations.
type Service interface {
	GetLeaderboard(ctx context.Context, limit int, mode *sharedtypes.GameMode) (results.Operation[[]leaderboarddb.ScoreEntry], error)
	SubmitScore(ctx context.Context, userID sharedtypes.UserID, username string, score int, mode sharedtypes.GameMode) (results.Operation[*leaderboarddb.ScoreEntry], error)
	RankOf(ctx context.Context, userID sharedtypes.UserID) (results.Operation[int], error)
}

// UserDirectory is the slice of the user repository the ranking path needs to
// tell "has no scores yet" apart from "no such user".
type UserDirectory interface {
	GetUserByID(ctx context.Context, id sharedtypes.UserID) (*userdb.User, error)
}
