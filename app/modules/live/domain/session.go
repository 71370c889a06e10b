package livedomain

import (
	"time"

	sharedtypes "github.com/snake-playground/backend/app/shared"
)

// Direction is the snake's heading on the grid.
type Direction string

const (
	DirectionUp    Direction = "UP"
	DirectionDown  Direction = "DOWN"
	DirectionLeft  Direction = "LEFT"
	DirectionRight Direction = "RIGHT"
)

// IsValid reports whether d is one of the four headings.
func (d Direction) IsValid() bool {
	switch d {
	case DirectionUp, DirectionDown, DirectionLeft, DirectionRight:
		return true
	}
	return false
}

// Position is a cell on the game grid.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Snapshot is the observable state of one running game, as pushed to
// spectators.
type Snapshot struct {
	Snake     []Position `json:"snake"`
	Food      Position   `json:"food"`
	Direction Direction  `json:"direction"`
	Score     int        `json:"score"`
	IsAlive   bool       `json:"isAlive"`
}

// NewSnapshot returns the state every game starts from: a three-segment snake
// heading right, food ahead of it, score zero.
func NewSnapshot() Snapshot {
	return Snapshot{
		Snake: []Position{
			{X: 10, Y: 10},
			{X: 9, Y: 10},
			{X: 8, Y: 10},
		},
		Food:      Position{X: 15, Y: 12},
		Direction: DirectionRight,
		Score:     0,
		IsAlive:   true,
	}
}

// Clone deep-copies a snapshot so registry state never aliases caller slices.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Snake = make([]Position, len(s.Snake))
	copy(out.Snake, s.Snake)
	return out
}

// SessionInfo is the registry's public view of one live session.
type SessionInfo struct {
	UserID     sharedtypes.UserID   `json:"userId"`
	Username   string               `json:"username"`
	Mode       sharedtypes.GameMode `json:"mode"`
	Score      int                  `json:"score"`
	IsAlive    bool                 `json:"isAlive"`
	Watchers   int                  `json:"watchers"`
	StartedAt  time.Time            `json:"startedAt"`
	LastUpdate time.Time            `json:"lastUpdate"`
}
