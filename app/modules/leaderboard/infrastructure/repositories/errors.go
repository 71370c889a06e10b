package leaderboarddb

import "errors"

var ErrUserNotFound = errors.New("user not found for score entry")
