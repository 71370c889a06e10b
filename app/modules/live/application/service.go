package liveservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	leaderboarddb "github.com/snake-playground/backend/app/modules/leaderboard/infrastructure/repositories"
	livedomain "github.com/snake-playground/backend/app/modules/live/domain"
	sharedtypes "github.com/snake-playground/backend/app/shared"
	"github.com/snake-playground/backend/internal/results"
)

// ScoreSubmitter is the slice of the leaderboard service the live module
// needs when a game ends.
type ScoreSubmitter interface {
	SubmitScore(ctx context.Context, userID sharedtypes.UserID, username string, score int, mode sharedtypes.GameMode) (results.Operation[*leaderboarddb.ScoreEntry], error)
}

// EndResult is returned when a session ends: the final session view plus the
// ledger entry its score produced.
type EndResult struct {
	Session livedomain.SessionInfo    `json:"session"`
	Entry   *leaderboarddb.ScoreEntry `json:"entry"`
}

// WatchResult reports the watcher count after a join or leave.
type WatchResult struct {
	WatcherCount int `json:"watcherCount"`
}

// Service defines live session operations.
type Service interface {
	StartSession(ctx context.Context, userID sharedtypes.UserID, username string, mode sharedtypes.GameMode) (results.Operation[livedomain.SessionInfo], error)
	UpdateState(ctx context.Context, callerID, targetID sharedtypes.UserID, snap livedomain.Snapshot) (results.Operation[livedomain.SessionInfo], error)
	EndSession(ctx context.Context, callerID, targetID sharedtypes.UserID) (results.Operation[EndResult], error)
	GetSession(ctx context.Context, userID sharedtypes.UserID) (results.Operation[livedomain.SessionInfo], error)
	ListSessions(ctx context.Context) (results.Operation[[]livedomain.SessionInfo], error)
	WatchSession(ctx context.Context, userID sharedtypes.UserID) (results.Operation[WatchResult], error)
	UnwatchSession(ctx context.Context, userID sharedtypes.UserID) (results.Operation[WatchResult], error)
}

// LiveServiceImpl drives the session registry and feeds finished games into
// the score ledger.
type LiveServiceImpl struct {
	registry *Registry
	scores   ScoreSubmitter
	logger   *slog.Logger
}

// NewLiveService creates a new live session service.
func NewLiveService(registry *Registry, scores ScoreSubmitter, logger *slog.Logger) *LiveServiceImpl {
	return &LiveServiceImpl{
		registry: registry,
		scores:   scores,
		logger:   logger,
	}
}

// StartSession registers a fresh game for the caller. A still-registered
// previous game is replaced.
func (s *LiveServiceImpl) StartSession(ctx context.Context, userID sharedtypes.UserID, username string, mode sharedtypes.GameMode) (results.Operation[livedomain.SessionInfo], error) {
	if !mode.IsValid() {
		return results.Invalid[livedomain.SessionInfo]("VALIDATION_ERROR", "unknown game mode"), nil
	}

	info, replaced := s.registry.Start(userID, username, mode)
	if !replaced {
		s.logger.InfoContext(ctx, "live session started",
			slog.String("user_id", string(userID)), slog.String("mode", string(mode)))
	}

	return results.Ok(info), nil
}

// UpdateState replaces the caller's game snapshot. Only the playing user may
// push state for their own session.
func (s *LiveServiceImpl) UpdateState(ctx context.Context, callerID, targetID sharedtypes.UserID, snap livedomain.Snapshot) (results.Operation[livedomain.SessionInfo], error) {
	if callerID != targetID {
		return results.Forbidden[livedomain.SessionInfo]("FORBIDDEN", "Not authorized to update this session"), nil
	}
	if !snap.Direction.IsValid() {
		return results.Invalid[livedomain.SessionInfo]("VALIDATION_ERROR", "unknown direction"), nil
	}
	if len(snap.Snake) == 0 {
		return results.Invalid[livedomain.SessionInfo]("VALIDATION_ERROR", "snake must have at least one segment"), nil
	}
	if snap.Score < 0 {
		return results.Invalid[livedomain.SessionInfo]("VALIDATION_ERROR", "score must not be negative"), nil
	}

	info, err := s.registry.UpdateState(targetID, snap)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return results.NotFound[livedomain.SessionInfo]("PLAYER_NOT_FOUND", "No live session for this player"), nil
		}
		return results.Operation[livedomain.SessionInfo]{}, fmt.Errorf("failed to update session: %w", err)
	}

	return results.Ok(info), nil
}

// EndSession records the game's final score on the leaderboard, then marks
// the session over. The session is claimed before the ledger write so
// concurrent end calls settle exactly one score; a ledger failure releases
// the claim and leaves the session live for a retry.
func (s *LiveServiceImpl) EndSession(ctx context.Context, callerID, targetID sharedtypes.UserID) (results.Operation[EndResult], error) {
	if callerID != targetID {
		return results.Forbidden[EndResult]("FORBIDDEN", "Not authorized to end this session"), nil
	}

	info, err := s.registry.BeginEnd(targetID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return results.NotFound[EndResult]("PLAYER_NOT_FOUND", "No live session for this player"), nil
		}
		return results.Operation[EndResult]{}, fmt.Errorf("failed to claim session: %w", err)
	}

	scoreOp, err := s.scores.SubmitScore(ctx, info.UserID, info.Username, info.Score, info.Mode)
	if err != nil {
		s.registry.AbortEnd(targetID)
		return results.Operation[EndResult]{}, fmt.Errorf("failed to record final score: %w", err)
	}
	if !scoreOp.OK() {
		s.registry.AbortEnd(targetID)
		return results.Operation[EndResult]{Status: scoreOp.Status, Code: scoreOp.Code, Message: scoreOp.Message}, nil
	}

	final, _, err := s.registry.End(targetID)
	if err != nil {
		return results.Operation[EndResult]{}, fmt.Errorf("failed to end session: %w", err)
	}

	s.logger.InfoContext(ctx, "live session ended",
		slog.String("user_id", string(targetID)), slog.Int("score", final.Score))

	return results.Ok(EndResult{Session: final, Entry: scoreOp.Value}), nil
}

// GetSession returns the public view of one live session.
func (s *LiveServiceImpl) GetSession(ctx context.Context, userID sharedtypes.UserID) (results.Operation[livedomain.SessionInfo], error) {
	info, err := s.registry.Get(userID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return results.NotFound[livedomain.SessionInfo]("PLAYER_NOT_FOUND", "No live session for this player"), nil
		}
		return results.Operation[livedomain.SessionInfo]{}, fmt.Errorf("failed to load session: %w", err)
	}
	return results.Ok(info), nil
}

// ListSessions returns every session still playing.
func (s *LiveServiceImpl) ListSessions(ctx context.Context) (results.Operation[[]livedomain.SessionInfo], error) {
	return results.Ok(s.registry.List()), nil
}

// WatchSession attaches a spectator to the player's session.
func (s *LiveServiceImpl) WatchSession(ctx context.Context, userID sharedtypes.UserID) (results.Operation[WatchResult], error) {
	_, count, err := s.registry.JoinWatcher(userID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return results.NotFound[WatchResult]("PLAYER_NOT_FOUND", "No live session for this player"), nil
		}
		return results.Operation[WatchResult]{}, fmt.Errorf("failed to join session: %w", err)
	}
	return results.Ok(WatchResult{WatcherCount: count}), nil
}

// UnwatchSession detaches a spectator from the player's session.
func (s *LiveServiceImpl) UnwatchSession(ctx context.Context, userID sharedtypes.UserID) (results.Operation[WatchResult], error) {
	count, err := s.registry.LeaveWatcher(userID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return results.NotFound[WatchResult]("PLAYER_NOT_FOUND", "No live session for this player"), nil
		}
		return results.Operation[WatchResult]{}, fmt.Errorf("failed to leave session: %w", err)
	}
	return results.Ok(WatchResult{WatcherCount: count}), nil
}
