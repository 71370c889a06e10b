package userdb

import (
	"time"

	"github.com/uptrace/bun"

	sharedtypes "github.com/snake-playground/backend/app/shared"
)

// User represents a player account. HighScore and GamesPlayed are a
// denormalized cache over the leaderboard table, updated in the same
// transaction as every score insert.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           sharedtypes.UserID `bun:"id,pk,type:varchar(36)" json:"id"`
	Username     string             `bun:"username,unique,notnull" json:"username"`
	Email        string             `bun:"email,unique,notnull" json:"email"`
	PasswordHash string             `bun:"password_hash,notnull" json:"-"`
	HighScore    int                `bun:"high_score,notnull,default:0" json:"highScore"`
	GamesPlayed  int                `bun:"games_played,notnull,default:0" json:"gamesPlayed"`
	CreatedAt    time.Time          `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
}
