package service

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"campuswordle/internal/database"
)

// BackupData is the complete portable dump of the database. The format is
// dialect neutral so a sqlite install can be restored into postgres.
type BackupData struct {
	Version      string          `json:"version"`
	ExportedAt   time.Time       `json:"exported_at"`
	DatabaseType string          `json:"database_type"`
	Users        []UserBackup    `json:"users"`
	Puzzles      []PuzzleBackup  `json:"puzzles"`
	Attempts     []AttemptBackup `json:"attempts"`
	Stats        []StatsBackup   `json:"game_stats"`
	Admins       []AdminBackup   `json:"admins"`
}

// UserBackup is a user row for backup
type UserBackup struct {
	ID            int64     `json:"id"`
	Username      string    `json:"username"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"password_hash"`
	PhoneNumber   string    `json:"phone_number"`
	OAuthProvider string    `json:"oauth_provider"`
	OAuthSubject  string    `json:"oauth_subject"`
	DeviceInfo    string    `json:"last_device_info"`
	CreatedAt     time.Time `json:"created_at"`
}

// PuzzleBackup is a puzzle row for backup
type PuzzleBackup struct {
	ID        int64     `json:"id"`
	Word      string    `json:"word"`
	Hint      string    `json:"hint"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// AttemptBackup is an attempt row for backup
type AttemptBackup struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"user_id"`
	PuzzleID      int64      `json:"puzzle_id"`
	NumTries      int        `json:"num_tries"`
	PointsEarned  int        `json:"points_earned"`
	GuessSequence string     `json:"guess_sequence"`
	Completed     bool       `json:"completed"`
	CompletedAt   *time.Time `json:"completed_at"`
	CreatedAt     time.Time  `json:"created_at"`
}

// StatsBackup is a game_stats row for backup
type StatsBackup struct {
	ID                int64     `json:"id"`
	UserID            int64     `json:"user_id"`
	GamesPlayed       int       `json:"games_played"`
	GamesWon          int       `json:"games_won"`
	CurrentStreak     int       `json:"current_streak"`
	MaxStreak         int       `json:"max_streak"`
	GuessDistribution string    `json:"guess_distribution"`
	LastPlayedAt      time.Time `json:"last_played_at"`
}

// AdminBackup is an admin row for backup
type AdminBackup struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// BackupService exports and restores the whole database as JSON
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// Export writes a complete backup of the database to a file
func (s *BackupService) Export(outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()
	return s.ExportToWriter(file)
}

// ExportToWriter writes a complete backup of the database to a writer
func (s *BackupService) ExportToWriter(w io.Writer) error {
	log.Println("Starting database export...")

	backup := &BackupData{
		Version:      "1.0",
		ExportedAt:   time.Now().UTC(),
		DatabaseType: "universal",
	}

	if err := s.exportUsers(backup); err != nil {
		return fmt.Errorf("failed to export users: %w", err)
	}
	if err := s.exportPuzzles(backup); err != nil {
		return fmt.Errorf("failed to export puzzles: %w", err)
	}
	if err := s.exportAttempts(backup); err != nil {
		return fmt.Errorf("failed to export attempts: %w", err)
	}
	if err := s.exportStats(backup); err != nil {
		return fmt.Errorf("failed to export game stats: %w", err)
	}
	if err := s.exportAdmins(backup); err != nil {
		return fmt.Errorf("failed to export admins: %w", err)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	log.Printf("Exported: %d users, %d puzzles, %d attempts, %d stats rows, %d admins",
		len(backup.Users), len(backup.Puzzles), len(backup.Attempts),
		len(backup.Stats), len(backup.Admins))
	return nil
}

// Import restores a database from a backup file
func (s *BackupService) Import(inputPath string) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()
	return s.ImportFromReader(file)
}

// ImportFromReader restores a database from a backup stream. Rows are
// inserted with their original IDs, so the target tables should be empty.
func (s *BackupService) ImportFromReader(reader io.Reader) error {
	var backup BackupData
	if err := json.NewDecoder(reader).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}
	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	if err := s.importUsers(backup.Users); err != nil {
		return fmt.Errorf("failed to import users: %w", err)
	}
	if err := s.importPuzzles(backup.Puzzles); err != nil {
		return fmt.Errorf("failed to import puzzles: %w", err)
	}
	if err := s.importAttempts(backup.Attempts); err != nil {
		return fmt.Errorf("failed to import attempts: %w", err)
	}
	if err := s.importStats(backup.Stats); err != nil {
		return fmt.Errorf("failed to import game stats: %w", err)
	}
	if err := s.importAdmins(backup.Admins); err != nil {
		return fmt.Errorf("failed to import admins: %w", err)
	}

	log.Println("Database import completed successfully")
	return nil
}

func (s *BackupService) exportUsers(backup *BackupData) error {
	query := `SELECT id, username, COALESCE(full_name, ''), COALESCE(email, ''),
		COALESCE(password_hash, ''), COALESCE(phone_number, ''),
		COALESCE(oauth_provider, ''), COALESCE(oauth_subject, ''),
		last_device_info, created_at FROM users ORDER BY id`
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var u UserBackup
		err := rows.Scan(&u.ID, &u.Username, &u.FullName, &u.Email, &u.PasswordHash,
			&u.PhoneNumber, &u.OAuthProvider, &u.OAuthSubject, &u.DeviceInfo, &u.CreatedAt)
		if err != nil {
			return err
		}
		backup.Users = append(backup.Users, u)
	}
	return rows.Err()
}

func (s *BackupService) exportPuzzles(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, word, COALESCE(hint, ''), active, created_at FROM puzzles ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var p PuzzleBackup
		if err := rows.Scan(&p.ID, &p.Word, &p.Hint, &p.Active, &p.CreatedAt); err != nil {
			return err
		}
		backup.Puzzles = append(backup.Puzzles, p)
	}
	return rows.Err()
}

func (s *BackupService) exportAttempts(backup *BackupData) error {
	query := `SELECT id, user_id, puzzle_id, num_tries, points_earned,
		COALESCE(guess_sequence, '[]'), completed, completed_at, created_at
		FROM attempts ORDER BY id`
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var a AttemptBackup
		err := rows.Scan(&a.ID, &a.UserID, &a.PuzzleID, &a.NumTries, &a.PointsEarned,
			&a.GuessSequence, &a.Completed, &a.CompletedAt, &a.CreatedAt)
		if err != nil {
			return err
		}
		backup.Attempts = append(backup.Attempts, a)
	}
	return rows.Err()
}

func (s *BackupService) exportStats(backup *BackupData) error {
	query := `SELECT id, user_id, games_played, games_won, current_streak, max_streak,
		COALESCE(guess_distribution, '{}'), last_played_at FROM game_stats ORDER BY id`
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var g StatsBackup
		err := rows.Scan(&g.ID, &g.UserID, &g.GamesPlayed, &g.GamesWon,
			&g.CurrentStreak, &g.MaxStreak, &g.GuessDistribution, &g.LastPlayedAt)
		if err != nil {
			return err
		}
		backup.Stats = append(backup.Stats, g)
	}
	return rows.Err()
}

func (s *BackupService) exportAdmins(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, username, password_hash, created_at FROM admins ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var a AdminBackup
		if err := rows.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt); err != nil {
			return err
		}
		backup.Admins = append(backup.Admins, a)
	}
	return rows.Err()
}

func (s *BackupService) importUsers(users []UserBackup) error {
	log.Printf("Importing %d users...", len(users))
	for _, u := range users {
		query := `INSERT INTO users (id, username, full_name, email, password_hash,
			phone_number, oauth_provider, oauth_subject, last_device_info, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		_, err := s.db.Exec(query, u.ID, u.Username, nullIfEmpty(u.FullName), nullIfEmpty(u.Email),
			nullIfEmpty(u.PasswordHash), nullIfEmpty(u.PhoneNumber),
			nullIfEmpty(u.OAuthProvider), nullIfEmpty(u.OAuthSubject), u.DeviceInfo, u.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to import user %d: %w", u.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importPuzzles(puzzles []PuzzleBackup) error {
	log.Printf("Importing %d puzzles...", len(puzzles))
	for _, p := range puzzles {
		query := "INSERT INTO puzzles (id, word, hint, active, created_at) VALUES (?, ?, ?, ?, ?)"
		_, err := s.db.Exec(query, p.ID, p.Word, nullIfEmpty(p.Hint), p.Active, p.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to import puzzle %d: %w", p.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importAttempts(attempts []AttemptBackup) error {
	log.Printf("Importing %d attempts...", len(attempts))
	for _, a := range attempts {
		query := `INSERT INTO attempts (id, user_id, puzzle_id, num_tries, points_earned,
			guess_sequence, completed, completed_at, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
		_, err := s.db.Exec(query, a.ID, a.UserID, a.PuzzleID, a.NumTries, a.PointsEarned,
			a.GuessSequence, a.Completed, a.CompletedAt, a.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to import attempt %d: %w", a.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importStats(stats []StatsBackup) error {
	log.Printf("Importing %d stats rows...", len(stats))
	for _, g := range stats {
		query := `INSERT INTO game_stats (id, user_id, games_played, games_won,
			current_streak, max_streak, guess_distribution, last_played_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
		_, err := s.db.Exec(query, g.ID, g.UserID, g.GamesPlayed, g.GamesWon,
			g.CurrentStreak, g.MaxStreak, g.GuessDistribution, g.LastPlayedAt)
		if err != nil {
			return fmt.Errorf("failed to import stats for user %d: %w", g.UserID, err)
		}
	}
	return nil
}

func (s *BackupService) importAdmins(admins []AdminBackup) error {
	log.Printf("Importing %d admins...", len(admins))
	for _, a := range admins {
		query := "INSERT INTO admins (id, username, password_hash, created_at) VALUES (?, ?, ?, ?)"
		_, err := s.db.Exec(query, a.ID, a.Username, a.PasswordHash, a.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to import admin %d: %w", a.ID, err)
		}
	}
	return nil
}
