package sharedtypes

// UserID identifies a user account.
type UserID string

func (id UserID) String() string { return string(id) }

// GameMode is the snake game variant a score was achieved in.
type GameMode string

const (
	GameModeWalls       GameMode = "walls"
	GameModePassThrough GameMode = "pass-through"
)

// IsValid reports whether the mode is one of the two supported variants.
func (m GameMode) IsValid() bool {
	return m == GameModeWalls || m == GameModePassThrough
}
