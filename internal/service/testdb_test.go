package service

import (
	"path/filepath"
	"testing"

	"campuswordle/internal/database"
	"campuswordle/internal/repository"
)

var testSchema = []string{
	`CREATE TABLE users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		full_name TEXT,
		email TEXT UNIQUE,
		password_hash TEXT,
		phone_number TEXT,
		oauth_provider TEXT,
		oauth_subject TEXT,
		last_device_info TEXT NOT NULL DEFAULT '[]',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE puzzles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		word TEXT NOT NULL UNIQUE,
		hint TEXT,
		active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE attempts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL REFERENCES users(id),
		puzzle_id INTEGER NOT NULL REFERENCES puzzles(id),
		num_tries INTEGER NOT NULL DEFAULT 0,
		points_earned INTEGER NOT NULL DEFAULT 0,
		guess_sequence TEXT NOT NULL DEFAULT '[]',
		completed BOOLEAN NOT NULL DEFAULT 0,
		completed_at DATETIME,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (user_id, puzzle_id)
	)`,
	`CREATE TABLE game_stats (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL UNIQUE REFERENCES users(id),
		games_played INTEGER NOT NULL DEFAULT 0,
		games_won INTEGER NOT NULL DEFAULT 0,
		current_streak INTEGER NOT NULL DEFAULT 0,
		max_streak INTEGER NOT NULL DEFAULT 0,
		guess_distribution TEXT NOT NULL DEFAULT '{}',
		last_played_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE admins (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
}

type testEnv struct {
	db      *database.DB
	users   *repository.UserRepository
	puzzles *repository.PuzzleRepository
	attempt *repository.AttemptRepository
	stats   *repository.StatsRepository
	admins  *repository.AdminRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping database-backed test in short mode")
	}

	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	for _, stmt := range testSchema {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("Failed to create schema: %v", err)
		}
	}

	return &testEnv{
		db:      db,
		users:   repository.NewUserRepository(db),
		puzzles: repository.NewPuzzleRepository(db),
		attempt: repository.NewAttemptRepository(db),
		stats:   repository.NewStatsRepository(db),
		admins:  repository.NewAdminRepository(db),
	}
}

func (e *testEnv) createUser(t *testing.T, username string) int64 {
	t.Helper()
	user, err := e.users.CreateUser(username, "", "", "", nil)
	if err != nil {
		t.Fatalf("Failed to create user %s: %v", username, err)
	}
	if err := e.stats.InitStats(user.ID); err != nil {
		t.Fatalf("Failed to init stats for %s: %v", username, err)
	}
	return user.ID
}

func (e *testEnv) createPuzzle(t *testing.T, word string) int64 {
	t.Helper()
	puzzle, err := e.puzzles.CreatePuzzle(word, "", true)
	if err != nil {
		t.Fatalf("Failed to create puzzle %s: %v", word, err)
	}
	return puzzle.ID
}
