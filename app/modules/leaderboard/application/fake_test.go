package leaderboardservice

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	leaderboarddomain "github.com/snake-playground/backend/app/modules/leaderboard/domain"
	leaderboarddb "github.com/snake-playground/backend/app/modules/leaderboard/infrastructure/repositories"
	userdb "github.com/snake-playground/backend/app/modules/user/infrastructure/repositories"
	sharedtypes "github.com/snake-playground/backend/app/shared"
)

// ------------------------
// Fake Ledger Repo
// ------------------------

// FakeLedgerRepository provides an in-memory stand-in for the score ledger.
// With Users bound, Append bumps the user's stats the way the real ledger
// transaction does: games_played +1 and high_score raised to the submission.
type FakeLedgerRepository struct {
	trace   []string
	entries []leaderboarddb.ScoreEntry
	clock   time.Time

	Users      *FakeUserDirectory
	AppendFunc func(ctx context.Context, userID sharedtypes.UserID, username string, score int, mode sharedtypes.GameMode) (*leaderboarddb.ScoreEntry, error)
}

// NewFakeLedgerRepository initializes an empty fake ledger.
func NewFakeLedgerRepository() *FakeLedgerRepository {
	return &FakeLedgerRepository{
		trace: []string{},
		clock: time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC),
	}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeLedgerRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeLedgerRepository) record(step string) {
	f.trace = append(f.trace, step)
}

// Seed appends an entry directly, bypassing the service.
func (f *FakeLedgerRepository) Seed(userID sharedtypes.UserID, username string, score int, mode sharedtypes.GameMode) {
	f.clock = f.clock.Add(time.Second)
	f.entries = append(f.entries, leaderboarddb.ScoreEntry{
		ID:       fmt.Sprintf("entry-%d", len(f.entries)+1),
		UserID:   userID,
		Username: username,
		Score:    score,
		Mode:     mode,
		Date:     f.clock,
	})
}

func (f *FakeLedgerRepository) Append(ctx context.Context, userID sharedtypes.UserID, username string, score int, mode sharedtypes.GameMode) (*leaderboarddb.ScoreEntry, error) {
	f.record("Append")
	if f.AppendFunc != nil {
		return f.AppendFunc(ctx, userID, username, score, mode)
	}
	if f.Users != nil {
		u, ok := f.Users.Users[userID]
		if !ok {
			return nil, leaderboarddb.ErrUserNotFound
		}
		u.GamesPlayed++
		if score > u.HighScore {
			u.HighScore = score
		}
	}
	f.Seed(userID, username, score, mode)
	entry := f.entries[len(f.entries)-1]
	return &entry, nil
}

func (f *FakeLedgerRepository) Query(ctx context.Context, mode *sharedtypes.GameMode, limit int) ([]leaderboarddb.ScoreEntry, error) {
	f.record("Query")
	var out []leaderboarddb.ScoreEntry
	for _, e := range f.entries {
		if mode == nil || e.Mode == *mode {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *FakeLedgerRepository) BestScorePerUser(ctx context.Context) ([]leaderboarddomain.UserBest, error) {
	f.record("BestScorePerUser")
	best := map[sharedtypes.UserID]leaderboarddomain.UserBest{}
	for _, e := range f.entries {
		b, ok := best[e.UserID]
		if !ok || e.Score > b.BestScore || (e.Score == b.BestScore && e.Date.Before(b.AchievedAt)) {
			best[e.UserID] = leaderboarddomain.UserBest{UserID: e.UserID, BestScore: e.Score, AchievedAt: e.Date}
		}
	}
	out := make([]leaderboarddomain.UserBest, 0, len(best))
	for _, b := range best {
		out = append(out, b)
	}
	return out, nil
}

// ------------------------
// Fake User Directory
// ------------------------

// FakeUserDirectory resolves user ids from a fixed map.
type FakeUserDirectory struct {
	Users map[sharedtypes.UserID]*userdb.User
}

func (f *FakeUserDirectory) GetUserByID(ctx context.Context, id sharedtypes.UserID) (*userdb.User, error) {
	if u, ok := f.Users[id]; ok {
		return u, nil
	}
	return nil, userdb.ErrNotFound
}

// ------------------------
// Fake Publisher
// ------------------------

// FakePublisher records published messages per topic.
type FakePublisher struct {
	Published map[string][]*message.Message
	Err       error
}

func NewFakePublisher() *FakePublisher {
	return &FakePublisher{Published: map[string][]*message.Message{}}
}

func (f *FakePublisher) Publish(topic string, messages ...*message.Message) error {
	if f.Err != nil {
		return f.Err
	}
	f.Published[topic] = append(f.Published[topic], messages...)
	return nil
}

func (f *FakePublisher) Close() error { return nil }

var (
	_ leaderboarddb.Repository = (*FakeLedgerRepository)(nil)
	_ UserDirectory            = (*FakeUserDirectory)(nil)
	_ message.Publisher        = (*FakePublisher)(nil)
)
