package leaderboarddb

import (
	"time"

	"github.com/uptrace/bun"

	sharedtypes "github.com/snake-playground/backend/app/shared"
)

// ScoreEntry is one immutable row of the append-only score ledger. The
// username is denormalized at write time so leaderboard reads never join.
type ScoreEntry struct {
	bun.BaseModel `bun:"table:leaderboard,alias:lb"`

	ID       string               `bun:"id,pk,type:varchar(36)" json:"id"`
	UserID   sharedtypes.UserID   `bun:"user_id,notnull,type:varchar(36)" json:"-"`
	Username string               `bun:"username,notnull" json:"username"`
	Score    int                  `bun:"score,notnull" json:"score"`
	Mode     sharedtypes.GameMode `bun:"mode,notnull" json:"mode"`
	Date     time.Time            `bun:"date,notnull,default:current_timestamp" json:"date"`
}
