package repository

import (
	"database/sql"
	"fmt"
	"time"

	"campuswordle/internal/database"
	"campuswordle/internal/models"
)

const attemptColumns = `id, user_id, puzzle_id, num_tries, points_earned,
		COALESCE(guess_sequence, '[]'), completed, completed_at, created_at`

// AttemptRepository handles database operations for attempts, including the
// leaderboard aggregations computed from them.
type AttemptRepository struct {
	db *database.DB
}

// NewAttemptRepository creates a new attempt repository
func NewAttemptRepository(db *database.DB) *AttemptRepository {
	return &AttemptRepository{db: db}
}

func scanAttempt(row *sql.Row) (*models.Attempt, error) {
	attempt := &models.Attempt{}
	err := row.Scan(
		&attempt.ID,
		&attempt.UserID,
		&attempt.PuzzleID,
		&attempt.NumTries,
		&attempt.PointsEarned,
		&attempt.GuessSequence,
		&attempt.Completed,
		&attempt.CompletedAt,
		&attempt.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan attempt: %w", err)
	}
	return attempt, nil
}

// GetAttemptByUserAndPuzzle returns the user's attempt on a puzzle, or nil
// if they have never played it.
func (r *AttemptRepository) GetAttemptByUserAndPuzzle(userID, puzzleID int64) (*models.Attempt, error) {
	query := fmt.Sprintf("SELECT %s FROM attempts WHERE user_id = ? AND puzzle_id = ?", attemptColumns)
	return scanAttempt(r.db.QueryRow(query, userID, puzzleID))
}

// UpsertAttempt writes the attempt state for (userID, puzzleID) in a single
// statement. The insert-or-update is atomic at the database level, so two
// concurrent submissions cannot both see "no row" and double-insert. Once a
// row is marked completed it stays completed, and completed_at keeps its
// first value.
func (r *AttemptRepository) UpsertAttempt(userID, puzzleID int64, numTries, points int, guessSequence string, completed bool) (*models.Attempt, error) {
	var completedAt *time.Time
	if completed {
		now := time.Now().UTC()
		completedAt = &now
	}
	query := r.db.Dialect.UpsertAttempt()
	_, err := r.db.Exec(query, userID, puzzleID, numTries, points, guessSequence, completed, completedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert attempt: %w", err)
	}
	return r.GetAttemptByUserAndPuzzle(userID, puzzleID)
}

// GetCompletedPuzzleIDs returns the set of puzzle IDs the user has completed
func (r *AttemptRepository) GetCompletedPuzzleIDs(userID int64) (map[int64]bool, error) {
	rows, err := r.db.Query("SELECT puzzle_id FROM attempts WHERE user_id = ? AND completed = ?", userID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to query completed puzzles: %w", err)
	}
	defer rows.Close()

	completed := make(map[int64]bool)
	for rows.Next() {
		var puzzleID int64
		if err := rows.Scan(&puzzleID); err != nil {
			return nil, fmt.Errorf("failed to scan puzzle id: %w", err)
		}
		completed[puzzleID] = true
	}
	return completed, rows.Err()
}

// GetUserAttempts returns all of a user's attempts, newest first
func (r *AttemptRepository) GetUserAttempts(userID int64) ([]*models.Attempt, error) {
	query := fmt.Sprintf("SELECT %s FROM attempts WHERE user_id = ? ORDER BY created_at DESC", attemptColumns)
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attempts: %w", err)
	}
	defer rows.Close()

	var attempts []*models.Attempt
	for rows.Next() {
		attempt := &models.Attempt{}
		err := rows.Scan(
			&attempt.ID,
			&attempt.UserID,
			&attempt.PuzzleID,
			&attempt.NumTries,
			&attempt.PointsEarned,
			&attempt.GuessSequence,
			&attempt.Completed,
			&attempt.CompletedAt,
			&attempt.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attempt: %w", err)
		}
		attempts = append(attempts, attempt)
	}
	return attempts, rows.Err()
}

// CountAttempts returns the total number of attempt rows
func (r *AttemptRepository) CountAttempts() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM attempts").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count attempts: %w", err)
	}
	return count, nil
}

// CountCompletedAttempts returns the number of completed attempt rows
func (r *AttemptRepository) CountCompletedAttempts() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM attempts WHERE completed = ?", true).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count completed attempts: %w", err)
	}
	return count, nil
}

// GameRankings returns the leaderboard for one puzzle: completed attempts
// ordered by points, then fewest tries, then earliest start.
func (r *AttemptRepository) GameRankings(puzzleID int64, limit int) ([]*models.GameRankingEntry, error) {
	query := `
		SELECT a.id, a.user_id, u.username, COALESCE(u.full_name, ''),
			a.points_earned, a.num_tries, a.created_at
		FROM attempts a
		JOIN users u ON u.id = a.user_id
		WHERE a.puzzle_id = ? AND a.completed = ?
		ORDER BY a.points_earned DESC, a.num_tries ASC, a.created_at ASC
		LIMIT ?
	`
	rows, err := r.db.Query(query, puzzleID, true, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query game rankings: %w", err)
	}
	defer rows.Close()

	var entries []*models.GameRankingEntry
	for rows.Next() {
		entry := &models.GameRankingEntry{}
		err := rows.Scan(
			&entry.AttemptID,
			&entry.UserID,
			&entry.Username,
			&entry.FullName,
			&entry.PointsEarned,
			&entry.NumTries,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ranking entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

const overallRankingQuery = `
	SELECT u.id, u.username, COALESCE(u.full_name, ''),
		SUM(a.points_earned), COUNT(a.id),
		ROUND(AVG(a.points_earned), 1), MAX(a.points_earned)
	FROM attempts a
	JOIN users u ON u.id = a.user_id
	WHERE a.completed = ?
	GROUP BY u.id, u.username, u.full_name
	ORDER BY SUM(a.points_earned) DESC, COUNT(a.id) DESC
`

func scanOverallRows(rows *sql.Rows) ([]*models.OverallRankingEntry, error) {
	var entries []*models.OverallRankingEntry
	for rows.Next() {
		entry := &models.OverallRankingEntry{}
		err := rows.Scan(
			&entry.UserID,
			&entry.Username,
			&entry.FullName,
			&entry.TotalPoints,
			&entry.GamesCompleted,
			&entry.AverageScore,
			&entry.BestScore,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ranking entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// OverallRankings returns the global leaderboard aggregated over completed
// attempts. A limit of zero or less returns every ranked player.
func (r *AttemptRepository) OverallRankings(limit int) ([]*models.OverallRankingEntry, error) {
	query := overallRankingQuery
	args := []interface{}{true}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query overall rankings: %w", err)
	}
	defer rows.Close()
	return scanOverallRows(rows)
}

// UserStatsRow aggregates a user's full attempt history, completed or not
func (r *AttemptRepository) UserStatsRow(userID int64) (*models.UserStats, error) {
	query := `
		SELECT COUNT(id),
			COALESCE(SUM(CASE WHEN completed = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(points_earned), 0),
			COALESCE(AVG(points_earned), 0),
			COALESCE(MAX(points_earned), 0)
		FROM attempts
		WHERE user_id = ?
	`
	stats := &models.UserStats{}
	err := r.db.QueryRow(query, true, userID).Scan(
		&stats.GamesPlayed,
		&stats.GamesCompleted,
		&stats.TotalPoints,
		&stats.AverageScore,
		&stats.BestScore,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query user stats: %w", err)
	}
	return stats, nil
}

// RankedTotals returns (userID, totalPoints, completions) for every user
// with at least one completed attempt, ordered by the global ranking. The
// caller scans for a user's position.
func (r *AttemptRepository) RankedTotals() ([]models.OverallRankingEntry, error) {
	query := `
		SELECT user_id, SUM(points_earned), COUNT(id)
		FROM attempts
		WHERE completed = ?
		GROUP BY user_id
		ORDER BY SUM(points_earned) DESC, COUNT(id) DESC
	`
	rows, err := r.db.Query(query, true)
	if err != nil {
		return nil, fmt.Errorf("failed to query ranked totals: %w", err)
	}
	defer rows.Close()

	var entries []models.OverallRankingEntry
	for rows.Next() {
		var entry models.OverallRankingEntry
		if err := rows.Scan(&entry.UserID, &entry.TotalPoints, &entry.GamesCompleted); err != nil {
			return nil, fmt.Errorf("failed to scan ranked total: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// PuzzleSummaries returns per-puzzle aggregates for active puzzles, newest
// first. Words are never selected here.
func (r *AttemptRepository) PuzzleSummaries(limit int) ([]*models.PuzzleSummary, error) {
	query := `
		SELECT p.id, COALESCE(p.hint, ''), p.created_at,
			COALESCE(MAX(CASE WHEN a.completed = ? THEN a.points_earned END), 0),
			COALESCE(AVG(CASE WHEN a.completed = ? THEN a.points_earned END), 0),
			COUNT(a.id),
			COALESCE(SUM(CASE WHEN a.completed = ? THEN 1 ELSE 0 END), 0)
		FROM puzzles p
		LEFT JOIN attempts a ON a.puzzle_id = p.id
		WHERE p.active = ?
		GROUP BY p.id, p.hint, p.created_at
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT ?
	`
	rows, err := r.db.Query(query, true, true, true, true, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query puzzle summaries: %w", err)
	}
	defer rows.Close()

	var summaries []*models.PuzzleSummary
	for rows.Next() {
		summary := &models.PuzzleSummary{}
		err := rows.Scan(
			&summary.PuzzleID,
			&summary.Hint,
			&summary.CreatedAt,
			&summary.TopScore,
			&summary.AverageScore,
			&summary.TotalPlayers,
			&summary.Completions,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan puzzle summary: %w", err)
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}
