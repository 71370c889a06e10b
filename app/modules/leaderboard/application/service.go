package leaderboardservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	leaderboarddomain "github.com/snake-playground/backend/app/modules/leaderboard/domain"
	leaderboardevents "github.com/snake-playground/backend/app/modules/leaderboard/domain/events"
	leaderboarddb "github.com/snake-playground/backend/app/modules/leaderboard/infrastructure/repositories"
	userdb "github.com/snake-playground/backend/app/modules/user/infrastructure/repositories"
	sharedtypes "github.com/snake-playground/backend/app/shared"
	"github.com/snake-playground/backend/internal/results"
)

// Leaderboard query limits. Out-of-range limits are rejected, not clamped.
const (
	DefaultLimit = 10
	MinLimit     = 1
	MaxLimit     = 100
)

// LeaderboardServiceImpl handles ledger reads, score submission and ranking.
// The sorted best-score order is cached between rank queries and invalidated
// on every append.
type LeaderboardServiceImpl struct {
	repo      leaderboarddb.Repository
	users     UserDirectory
	publisher message.Publisher
	logger    *slog.Logger

	mu        sync.Mutex
	rankOrder []leaderboarddomain.UserBest
	rankValid bool
}

// NewLeaderboardService creates a new leaderboard service.
func NewLeaderboardService(repo leaderboarddb.Repository, users UserDirectory, publisher message.Publisher, logger *slog.Logger) *LeaderboardServiceImpl {
	return &LeaderboardServiceImpl{
		repo:      repo,
		users:     users,
		publisher: publisher,
		logger:    logger,
	}
}

// GetLeaderboard returns up to limit entries ordered by score descending.
func (s *LeaderboardServiceImpl) GetLeaderboard(ctx context.Context, limit int, mode *sharedtypes.GameMode) (results.Operation[[]leaderboarddb.ScoreEntry], error) {
	if limit < MinLimit || limit > MaxLimit {
		return results.Invalid[[]leaderboarddb.ScoreEntry]("VALIDATION_ERROR",
			fmt.Sprintf("limit must be between %d and %d", MinLimit, MaxLimit)), nil
	}
	if mode != nil && !mode.IsValid() {
		return results.Invalid[[]leaderboarddb.ScoreEntry]("VALIDATION_ERROR", "unknown game mode"), nil
	}

	entries, err := s.repo.Query(ctx, mode, limit)
	if err != nil {
		return results.Operation[[]leaderboarddb.ScoreEntry]{}, fmt.Errorf("failed to query leaderboard: %w", err)
	}

	return results.Ok(entries), nil
}

// SubmitScore appends a score to the ledger. The entry insert and the user
// stat bump commit together inside the repository transaction.
func (s *LeaderboardServiceImpl) SubmitScore(ctx context.Context, userID sharedtypes.UserID, username string, score int, mode sharedtypes.GameMode) (results.Operation[*leaderboarddb.ScoreEntry], error) {
	if score < 0 {
		return results.Invalid[*leaderboarddb.ScoreEntry]("VALIDATION_ERROR", "score must not be negative"), nil
	}
	if !mode.IsValid() {
		return results.Invalid[*leaderboarddb.ScoreEntry]("VALIDATION_ERROR", "unknown game mode"), nil
	}

	entry, err := s.repo.Append(ctx, userID, username, score, mode)
	if err != nil {
		if errors.Is(err, leaderboarddb.ErrUserNotFound) {
			return results.NotFound[*leaderboarddb.ScoreEntry]("USER_NOT_FOUND", "User not found"), nil
		}
		return results.Operation[*leaderboarddb.ScoreEntry]{}, fmt.Errorf("failed to append score: %w", err)
	}

	s.invalidateRankCache()
	s.publishScoreRecorded(ctx, entry)

	return results.Ok(entry), nil
}

// RankOf returns the 1-based rank of a user by best-ever score. A user with
// no entries ranks after every scoring user; an unknown user is NotFound.
func (s *LeaderboardServiceImpl) RankOf(ctx context.Context, userID sharedtypes.UserID) (results.Operation[int], error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, userdb.ErrNotFound) {
			return results.NotFound[int]("USER_NOT_FOUND", "User not found"), nil
		}
		return results.Operation[int]{}, fmt.Errorf("failed to look up user: %w", err)
	}

	sorted, err := s.sortedBests(ctx)
	if err != nil {
		return results.Operation[int]{}, fmt.Errorf("failed to compute ranking: %w", err)
	}

	return results.Ok(leaderboarddomain.RankIn(sorted, userID)), nil
}

func (s *LeaderboardServiceImpl) sortedBests(ctx context.Context) ([]leaderboarddomain.UserBest, error) {
	s.mu.Lock()
	if s.rankValid {
		cached := s.rankOrder
		s.mu.Unlock()
		return cached, nil
	}
	s.mu.Unlock()

	bests, err := s.repo.BestScorePerUser(ctx)
	if err != nil {
		return nil, err
	}
	leaderboarddomain.SortByBest(bests)

	s.mu.Lock()
	s.rankOrder = bests
	s.rankValid = true
	s.mu.Unlock()

	return bests, nil
}

func (s *LeaderboardServiceImpl) invalidateRankCache() {
	s.mu.Lock()
	s.rankOrder = nil
	s.rankValid = false
	s.mu.Unlock()
}

func (s *LeaderboardServiceImpl) publishScoreRecorded(ctx context.Context, entry *leaderboarddb.ScoreEntry) {
	payload, err := json.Marshal(leaderboardevents.ScoreRecordedPayload{
		EntryID:  entry.ID,
		UserID:   entry.UserID,
		Username: entry.Username,
		Score:    entry.Score,
		Mode:     entry.Mode,
		Date:     entry.Date,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to marshal score event", slog.Any("error", err))
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := s.publisher.Publish(leaderboardevents.TopicScoreRecorded, msg); err != nil {
		// The ledger write already committed; observers just miss one event.
		s.logger.WarnContext(ctx, "failed to publish score event",
			slog.String("entry_id", entry.ID), slog.Any("error", err))
	}
}
