package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"campuswordle/internal/database"
	"campuswordle/internal/models"
)

// PuzzleRepository handles database operations for puzzles
type PuzzleRepository struct {
	db *database.DB
}

// NewPuzzleRepository creates a new puzzle repository
func NewPuzzleRepository(db *database.DB) *PuzzleRepository {
	return &PuzzleRepository{db: db}
}

const puzzleColumns = "id, word, COALESCE(hint, ''), active, created_at"

func scanPuzzle(row *sql.Row) (*models.Puzzle, error) {
	puzzle := &models.Puzzle{}
	err := row.Scan(&puzzle.ID, &puzzle.Word, &puzzle.Hint, &puzzle.Active, &puzzle.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan puzzle: %w", err)
	}
	return puzzle, nil
}

// CreatePuzzle inserts a new puzzle. The word must already be validated and
// uppercased by the caller.
func (r *PuzzleRepository) CreatePuzzle(word, hint string, active bool) (*models.Puzzle, error) {
	query := "INSERT INTO puzzles (word, hint, active) VALUES (?, ?, ?)"
	id, err := r.db.ExecReturningID(query, word, hint, active)
	if err != nil {
		return nil, fmt.Errorf("failed to create puzzle: %w", err)
	}
	return r.GetPuzzleByID(id)
}

// GetPuzzleByID retrieves a puzzle by ID
func (r *PuzzleRepository) GetPuzzleByID(id int64) (*models.Puzzle, error) {
	query := "SELECT " + puzzleColumns + " FROM puzzles WHERE id = ?"
	return scanPuzzle(r.db.QueryRow(query, id))
}

// GetPuzzleByWord looks a puzzle up by word, case-insensitively. Words are
// stored uppercase so the argument is uppercased before comparison.
func (r *PuzzleRepository) GetPuzzleByWord(word string) (*models.Puzzle, error) {
	query := "SELECT " + puzzleColumns + " FROM puzzles WHERE word = ?"
	return scanPuzzle(r.db.QueryRow(query, strings.ToUpper(word)))
}

// GetActivePuzzlesOrdered returns active puzzles in level order: creation
// time ascending, id as a stable tie-break. The 1-indexed position in this
// slice is the puzzle's level number.
func (r *PuzzleRepository) GetActivePuzzlesOrdered() ([]models.Puzzle, error) {
	query := "SELECT " + puzzleColumns + " FROM puzzles WHERE active = ? ORDER BY created_at ASC, id ASC"
	return r.queryPuzzles(query, true)
}

// GetAllPuzzles returns every puzzle, newest first (admin listing)
func (r *PuzzleRepository) GetAllPuzzles() ([]models.Puzzle, error) {
	query := "SELECT " + puzzleColumns + " FROM puzzles ORDER BY created_at DESC, id DESC"
	return r.queryPuzzles(query)
}

func (r *PuzzleRepository) queryPuzzles(query string, args ...interface{}) ([]models.Puzzle, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query puzzles: %w", err)
	}
	defer rows.Close()

	var puzzles []models.Puzzle
	for rows.Next() {
		var puzzle models.Puzzle
		if err := rows.Scan(&puzzle.ID, &puzzle.Word, &puzzle.Hint, &puzzle.Active, &puzzle.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan puzzle: %w", err)
		}
		puzzles = append(puzzles, puzzle)
	}
	return puzzles, rows.Err()
}

// CountActivePuzzles returns the number of active puzzles
func (r *PuzzleRepository) CountActivePuzzles() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM puzzles WHERE active = ?", true).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active puzzles: %w", err)
	}
	return count, nil
}

// CountPuzzles returns the total number of puzzles
func (r *PuzzleRepository) CountPuzzles() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM puzzles").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count puzzles: %w", err)
	}
	return count, nil
}

// SetActive sets a puzzle's active flag and reports whether the row existed
func (r *PuzzleRepository) SetActive(id int64, active bool) (bool, error) {
	result, err := r.db.Exec("UPDATE puzzles SET active = ? WHERE id = ?", active, id)
	if err != nil {
		return false, fmt.Errorf("failed to update puzzle: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read update result: %w", err)
	}
	return rows > 0, nil
}

// DeletePuzzleCascade removes a puzzle together with its attempts in one
// transaction.
func (r *PuzzleRepository) DeletePuzzleCascade(id int64) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer tx.Rollback()

	if err := deletePuzzleRows(tx, id); err != nil {
		return err
	}
	return tx.Commit()
}

// deletePuzzleRows takes any executor so it can run inside the cascade
// transaction or against the live handle.
func deletePuzzleRows(q database.DBTX, id int64) error {
	if _, err := q.Exec("DELETE FROM attempts WHERE puzzle_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete puzzle attempts: %w", err)
	}
	if _, err := q.Exec("DELETE FROM puzzles WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete puzzle: %w", err)
	}
	return nil
}
