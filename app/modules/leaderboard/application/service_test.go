package leaderboardservice

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	leaderboardevents "github.com/snake-playground/backend/app/modules/leaderboard/domain/events"
	userdb "github.com/snake-playground/backend/app/modules/user/infrastructure/repositories"
	sharedtypes "github.com/snake-playground/backend/app/shared"
	"github.com/snake-playground/backend/internal/results"
)

func newTestService(repo *FakeLedgerRepository, users *FakeUserDirectory, pub *FakePublisher) *LeaderboardServiceImpl {
	return NewLeaderboardService(repo, users, pub, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func knownUsers(ids ...sharedtypes.UserID) *FakeUserDirectory {
	users := &FakeUserDirectory{Users: map[sharedtypes.UserID]*userdb.User{}}
	for _, id := range ids {
		users.Users[id] = &userdb.User{ID: id, Username: string(id)}
	}
	return users
}

func TestGetLeaderboardLimitValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(NewFakeLedgerRepository(), knownUsers(), NewFakePublisher())

	tests := []struct {
		name  string
		limit int
	}{
		{"limit zero rejected", 0},
		{"negative limit rejected", -5},
		{"limit above maximum rejected", MaxLimit + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, err := svc.GetLeaderboard(ctx, tt.limit, nil)
			require.NoError(t, err)
			assert.Equal(t, results.StatusInvalid, op.Status)
			assert.Equal(t, "VALIDATION_ERROR", op.Code)
		})
	}
}

func TestGetLeaderboardIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewFakeLedgerRepository()
	repo.Seed("a", "alice", 1500, sharedtypes.GameModeWalls)
	repo.Seed("b", "bob", 1200, sharedtypes.GameModeWalls)
	repo.Seed("c", "carol", 800, sharedtypes.GameModePassThrough)
	svc := newTestService(repo, knownUsers(), NewFakePublisher())

	first, err := svc.GetLeaderboard(ctx, DefaultLimit, nil)
	require.NoError(t, err)
	require.True(t, first.OK())

	second, err := svc.GetLeaderboard(ctx, DefaultLimit, nil)
	require.NoError(t, err)
	require.True(t, second.OK())

	if diff := cmp.Diff(first.Value, second.Value); diff != "" {
		t.Errorf("repeated reads differ (-first +second):\n%s", diff)
	}
}

func TestGetLeaderboardModeFilter(t *testing.T) {
	ctx := context.Background()
	repo := NewFakeLedgerRepository()
	repo.Seed("a", "alice", 1500, sharedtypes.GameModeWalls)
	repo.Seed("c", "carol", 800, sharedtypes.GameModePassThrough)
	svc := newTestService(repo, knownUsers(), NewFakePublisher())

	mode := sharedtypes.GameModePassThrough
	op, err := svc.GetLeaderboard(ctx, DefaultLimit, &mode)
	require.NoError(t, err)
	require.True(t, op.OK())
	require.Len(t, op.Value, 1)
	assert.Equal(t, "carol", op.Value[0].Username)

	bad := sharedtypes.GameMode("speedrun")
	op, err = svc.GetLeaderboard(ctx, DefaultLimit, &bad)
	require.NoError(t, err)
	assert.Equal(t, results.StatusInvalid, op.Status)
}

func TestSubmitScoreValidation(t *testing.T) {
	ctx := context.Background()
	repo := NewFakeLedgerRepository()
	svc := newTestService(repo, knownUsers("a"), NewFakePublisher())

	op, err := svc.SubmitScore(ctx, "a", "alice", -1, sharedtypes.GameModeWalls)
	require.NoError(t, err)
	assert.Equal(t, results.StatusInvalid, op.Status)

	op, err = svc.SubmitScore(ctx, "a", "alice", 100, sharedtypes.GameMode("speedrun"))
	require.NoError(t, err)
	assert.Equal(t, results.StatusInvalid, op.Status)

	assert.Empty(t, repo.Trace(), "validation failures must not touch the ledger")
}

func TestSubmitScorePublishesEvent(t *testing.T) {
	ctx := context.Background()
	repo := NewFakeLedgerRepository()
	pub := NewFakePublisher()
	svc := newTestService(repo, knownUsers("a"), pub)

	op, err := svc.SubmitScore(ctx, "a", "alice", 1500, sharedtypes.GameModeWalls)
	require.NoError(t, err)
	require.True(t, op.OK())
	assert.Equal(t, 1500, op.Value.Score)

	msgs := pub.Published[leaderboardevents.TopicScoreRecorded]
	require.Len(t, msgs, 1)

	var payload leaderboardevents.ScoreRecordedPayload
	require.NoError(t, json.Unmarshal(msgs[0].Payload, &payload))
	assert.Equal(t, sharedtypes.UserID("a"), payload.UserID)
	assert.Equal(t, "alice", payload.Username)
	assert.Equal(t, 1500, payload.Score)
	assert.Equal(t, sharedtypes.GameModeWalls, payload.Mode)
}

func TestSubmitScoreRoundTripsUserStats(t *testing.T) {
	ctx := context.Background()
	users := knownUsers("a")
	users.Users["a"].GamesPlayed = 3
	users.Users["a"].HighScore = 900
	repo := NewFakeLedgerRepository()
	repo.Users = users
	svc := newTestService(repo, users, NewFakePublisher())

	op, err := svc.SubmitScore(ctx, "a", "alice", 1200, sharedtypes.GameModeWalls)
	require.NoError(t, err)
	require.True(t, op.OK())
	assert.Equal(t, 4, users.Users["a"].GamesPlayed)
	assert.Equal(t, 1200, users.Users["a"].HighScore)

	// A lower score still counts the game but keeps the high score.
	op, err = svc.SubmitScore(ctx, "a", "alice", 500, sharedtypes.GameModeWalls)
	require.NoError(t, err)
	require.True(t, op.OK())
	assert.Equal(t, 5, users.Users["a"].GamesPlayed)
	assert.Equal(t, 1200, users.Users["a"].HighScore)

	op, err = svc.SubmitScore(ctx, "ghost", "ghost", 10, sharedtypes.GameModeWalls)
	require.NoError(t, err)
	assert.Equal(t, results.StatusNotFound, op.Status)
	assert.Equal(t, "USER_NOT_FOUND", op.Code)
}

func TestRankOfScenario(t *testing.T) {
	ctx := context.Background()
	repo := NewFakeLedgerRepository()
	repo.Seed("a", "alice", 1500, sharedtypes.GameModeWalls)
	repo.Seed("b", "bob", 1200, sharedtypes.GameModeWalls)
	repo.Seed("c", "carol", 800, sharedtypes.GameModeWalls)
	svc := newTestService(repo, knownUsers("a", "b", "c", "d"), NewFakePublisher())

	for _, tt := range []struct {
		user sharedtypes.UserID
		want int
	}{
		{"a", 1},
		{"b", 2},
		{"c", 3},
		{"d", 4}, // account exists, no scores yet
	} {
		op, err := svc.RankOf(ctx, tt.user)
		require.NoError(t, err)
		require.True(t, op.OK())
		assert.Equalf(t, tt.want, op.Value, "rank of %s", tt.user)
	}

	// A new high score for the bottom player moves them to the top.
	op, err := svc.SubmitScore(ctx, "c", "carol", 2000, sharedtypes.GameModeWalls)
	require.NoError(t, err)
	require.True(t, op.OK())

	rank, err := svc.RankOf(ctx, "c")
	require.NoError(t, err)
	require.True(t, rank.OK())
	assert.Equal(t, 1, rank.Value)
}

func TestRankOfUnknownUser(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(NewFakeLedgerRepository(), knownUsers(), NewFakePublisher())

	op, err := svc.RankOf(ctx, "ghost")
	require.NoError(t, err)
	assert.Equal(t, results.StatusNotFound, op.Status)
	assert.Equal(t, "USER_NOT_FOUND", op.Code)
}

func TestRankOfUsesCachedOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewFakeLedgerRepository()
	repo.Seed("a", "alice", 1500, sharedtypes.GameModeWalls)
	svc := newTestService(repo, knownUsers("a"), NewFakePublisher())

	for i := 0; i < 3; i++ {
		op, err := svc.RankOf(ctx, "a")
		require.NoError(t, err)
		require.True(t, op.OK())
	}

	calls := 0
	for _, step := range repo.Trace() {
		if step == "BestScorePerUser" {
			calls++
		}
	}
	assert.Equal(t, 1, calls, "repeated rank queries must hit the cache")
}
