package models

import "time"

// GameRankingEntry is one row of a per-puzzle leaderboard
type GameRankingEntry struct {
	AttemptID    int64     `json:"attemptId"`
	UserID       int64     `json:"userId"`
	Username     string    `json:"username"`
	FullName     string    `json:"fullName,omitempty"`
	PointsEarned int       `json:"pointsEarned"`
	NumTries     int       `json:"numTries"`
	CreatedAt    time.Time `json:"createdAt"`
}

// OverallRankingEntry is one row of the global leaderboard, aggregated over
// a user's completed attempts only.
type OverallRankingEntry struct {
	UserID         int64   `json:"userId"`
	Username       string  `json:"username"`
	FullName       string  `json:"fullName,omitempty"`
	TotalPoints    int     `json:"totalPoints"`
	GamesCompleted int     `json:"gamesCompleted"`
	AverageScore   float64 `json:"averageScore"`
	BestScore      int     `json:"bestScore"`
}

// UserStats summarizes one user's play history. GamesPlayed counts all
// attempts, completed or not.
type UserStats struct {
	TotalPoints    int     `json:"totalPoints"`
	GamesCompleted int     `json:"gamesCompleted"`
	GamesPlayed    int     `json:"gamesPlayed"`
	AverageScore   float64 `json:"averageScore"`
	BestScore      int     `json:"bestScore"`
	WinRate        float64 `json:"winRate"`
}

// RankPosition locates a user in the global ordering. Position is nil when
// the user has no completed attempts.
type RankPosition struct {
	Position     *int `json:"position"`
	TotalPlayers int  `json:"totalPlayers"`
}

// PuzzleSummary is a per-puzzle aggregate safe to show publicly: it carries
// the hint but never the word.
type PuzzleSummary struct {
	PuzzleID     int64     `json:"puzzleId"`
	Hint         string    `json:"hint,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	TopScore     int       `json:"topScore"`
	AverageScore float64   `json:"averageScore"`
	TotalPlayers int       `json:"totalPlayers"`
	Completions  int       `json:"completions"`
}
