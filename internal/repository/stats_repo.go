package repository

import (
	"database/sql"
	"fmt"

	"campuswordle/internal/database"
	"campuswordle/internal/models"
)

// StatsRepository handles database operations for per-user game stats rows
type StatsRepository struct {
	db *database.DB
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *database.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// InitStats creates the stats row for a new user if it does not exist yet.
// The row is advisory; rankings recompute from attempts.
func (r *StatsRepository) InitStats(userID int64) error {
	existing, err := r.GetStatsByUserID(userID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	query := `
		INSERT INTO game_stats (user_id, games_played, games_won, current_streak, max_streak, guess_distribution)
		VALUES (?, 0, 0, 0, 0, '{}')
	`
	if _, err := r.db.Exec(query, userID); err != nil {
		return fmt.Errorf("failed to create game stats: %w", err)
	}
	return nil
}

// GetStatsByUserID returns the user's stats row, or nil if none exists
func (r *StatsRepository) GetStatsByUserID(userID int64) (*models.GameStats, error) {
	query := `
		SELECT id, user_id, games_played, games_won, current_streak, max_streak,
			COALESCE(guess_distribution, '{}'), last_played_at
		FROM game_stats WHERE user_id = ?
	`
	stats := &models.GameStats{}
	err := r.db.QueryRow(query, userID).Scan(
		&stats.ID,
		&stats.UserID,
		&stats.GamesPlayed,
		&stats.GamesWon,
		&stats.CurrentStreak,
		&stats.MaxStreak,
		&stats.GuessDistribution,
		&stats.LastPlayedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan game stats: %w", err)
	}
	return stats, nil
}

// RecordPlay updates the counters after a finished game
func (r *StatsRepository) RecordPlay(userID int64, won bool) error {
	query := `
		UPDATE game_stats SET
			games_played = games_played + 1,
			games_won = games_won + ?,
			current_streak = CASE WHEN ? THEN current_streak + 1 ELSE 0 END,
			max_streak = CASE WHEN ? AND current_streak + 1 > max_streak THEN current_streak + 1 ELSE max_streak END,
			last_played_at = CURRENT_TIMESTAMP
		WHERE user_id = ?
	`
	wonInt := 0
	if won {
		wonInt = 1
	}
	if _, err := r.db.Exec(query, wonInt, won, won, userID); err != nil {
		return fmt.Errorf("failed to update game stats: %w", err)
	}
	return nil
}
