package leaderboarddomain

import (
	"sort"
	"time"

	sharedtypes "github.com/snake-playground/backend/app/shared"
)

// UserBest is a user's best-ever score and when it was first achieved.
type UserBest struct {
	UserID     sharedtypes.UserID
	BestScore  int
	AchievedAt time.Time
}

// SortByBest orders bests into the canonical ranking order: higher best score
// first, ties broken by earlier achievement, then by lexical user id. The
// order is deterministic for any input.
func SortByBest(bests []UserBest) {
	sort.SliceStable(bests, func(i, j int) bool {
		a, b := bests[i], bests[j]
		if a.BestScore != b.BestScore {
			return a.BestScore > b.BestScore
		}
		if !a.AchievedAt.Equal(b.AchievedAt) {
			return a.AchievedAt.Before(b.AchievedAt)
		}
		return a.UserID < b.UserID
	})
}

// RankIn returns the 1-based position of target in an already-sorted slice.
// A user absent from the slice ranks after every scoring user.
func RankIn(sorted []UserBest, target sharedtypes.UserID) int {
	for i, b := range sorted {
		if b.UserID == target {
			return i + 1
		}
	}
	return len(sorted) + 1
}

// RankOf sorts a copy of bests and returns target's rank.
func RankOf(bests []UserBest, target sharedtypes.UserID) int {
	ordered := make([]UserBest, len(bests))
	copy(ordered, bests)
	SortByBest(ordered)
	return RankIn(ordered, target)
}
