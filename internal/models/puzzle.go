package models

import "time"

// Word length bounds and the try limit for every puzzle
const (
	MinWordLength = 3
	MaxWordLength = 7
	MaxTries      = 6
)

// Puzzle is a single secret word plus hint. Its level number is not stored:
// it is the 1-indexed position among active puzzles ordered by creation time
// (id as tie-break), recomputed on every query.
type Puzzle struct {
	ID        int64     `json:"id"`
	Word      string    `json:"-"`
	Hint      string    `json:"hint,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}
