package models

import (
	"encoding/json"
	"time"
)

// Attempt is one user's guess history against one puzzle. There is at most
// one row per (user, puzzle): the row is created on the first guess and
// updated in place on every subsequent one. CreatedAt is when the attempt
// was first started; CompletedAt is set once, on the first completion.
type Attempt struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"userId"`
	PuzzleID      int64      `json:"puzzleId"`
	NumTries      int        `json:"numTries"`
	PointsEarned  int        `json:"pointsEarned"`
	GuessSequence string     `json:"-"`
	Completed     bool       `json:"completed"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// Guesses decodes the stored guess sequence
func (a *Attempt) Guesses() []string {
	if a == nil || a.GuessSequence == "" {
		return nil
	}
	var guesses []string
	if err := json.Unmarshal([]byte(a.GuessSequence), &guesses); err != nil {
		return nil
	}
	return guesses
}

// EncodeGuesses serializes a guess sequence for storage
func EncodeGuesses(guesses []string) string {
	if len(guesses) == 0 {
		return "[]"
	}
	data, err := json.Marshal(guesses)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// GameStats is a best-effort per-user counter row, initialized at user
// creation. The ranking queries recompute truth from attempts instead of
// trusting these counters.
type GameStats struct {
	ID                int64     `json:"id"`
	UserID            int64     `json:"userId"`
	GamesPlayed       int       `json:"gamesPlayed"`
	GamesWon          int       `json:"gamesWon"`
	CurrentStreak     int       `json:"currentStreak"`
	MaxStreak         int       `json:"maxStreak"`
	GuessDistribution string    `json:"guessDistribution"`
	LastPlayedAt      time.Time `json:"lastPlayedAt"`
}
