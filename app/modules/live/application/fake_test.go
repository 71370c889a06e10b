package liveservice

import (
	"context"

	leaderboarddb "github.com/snake-playground/backend/app/modules/leaderboard/infrastructure/repositories"
	sharedtypes "github.com/snake-playground/backend/app/shared"
	"github.com/snake-playground/backend/internal/results"
)

// FakeScoreSubmitter records submitted scores.
type FakeScoreSubmitter struct {
	Submitted []leaderboarddb.ScoreEntry

	SubmitScoreFunc func(ctx context.Context, userID sharedtypes.UserID, username string, score int, mode sharedtypes.GameMode) (results.Operation[*leaderboarddb.ScoreEntry], error)
}

func (f *FakeScoreSubmitter) SubmitScore(ctx context.Context, userID sharedtypes.UserID, username string, score int, mode sharedtypes.GameMode) (results.Operation[*leaderboarddb.ScoreEntry], error) {
	if f.SubmitScoreFunc != nil {
		return f.SubmitScoreFunc(ctx, userID, username, score, mode)
	}
	entry := leaderboarddb.ScoreEntry{
		ID:       "entry-1",
		UserID:   userID,
		Username: username,
		Score:    score,
		Mode:     mode,
	}
	f.Submitted = append(f.Submitted, entry)
	return results.Ok(&entry), nil
}

var _ ScoreSubmitter = (*FakeScoreSubmitter)(nil)
