package leaderboardevents

import (
	"time"

	sharedtypes "github.com/snake-playground/backend/app/shared"
)

// TopicScoreRecorded carries one event per durable ledger append.
const TopicScoreRecorded = "leaderboard.score.recorded"

// ScoreRecordedPayload is published after a score entry and the matching user
// stat bump have committed.
type ScoreRecordedPayload struct {
	EntryID  string               `json:"entry_id"`
	UserID   sharedtypes.UserID   `json:"user_id"`
	Username string               `json:"username"`
	Score    int                  `json:"score"`
	Mode     sharedtypes.GameMode `json:"mode"`
	Date     time.Time            `json:"date"`
}
