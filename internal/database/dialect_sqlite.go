package database

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteDialect is the default engine: a single local file, no server.
type SQLiteDialect struct{}

func NewSQLiteDialect() *SQLiteDialect {
	return &SQLiteDialect{}
}

func (d *SQLiteDialect) DriverName() string {
	return "sqlite3"
}

func (d *SQLiteDialect) DSN(config DialectConfig) string {
	return config.Path
}

// RewriteQuery is a no-op: SQLite takes ? placeholders natively.
func (d *SQLiteDialect) RewriteQuery(query string) string {
	return query
}

func (d *SQLiteDialect) SupportsLastInsertId() bool {
	return true
}

// ConfigureConnection switches the journal to WAL so readers don't block
// the writer, and turns on foreign key enforcement, which SQLite leaves
// off by default.
func (d *SQLiteDialect) ConfigureConnection(db *sql.DB) error {
	tunePool(db)
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA foreign_keys=ON;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			return err
		}
	}
	return nil
}

func (d *SQLiteDialect) MigrationsSubdir() string {
	return "sqlite"
}

func (d *SQLiteDialect) CreateMigrationsTableQuery() string {
	return `
		CREATE TABLE IF NOT EXISTS migrations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			filename TEXT UNIQUE NOT NULL,
			executed_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`
}

func (d *SQLiteDialect) UpsertAttempt() string {
	return `
		INSERT INTO attempts (user_id, puzzle_id, num_tries, points_earned, guess_sequence, completed, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, puzzle_id) DO UPDATE SET
			num_tries = CASE WHEN attempts.completed THEN attempts.num_tries ELSE excluded.num_tries END,
			points_earned = CASE WHEN attempts.completed THEN attempts.points_earned ELSE excluded.points_earned END,
			guess_sequence = CASE WHEN attempts.completed THEN attempts.guess_sequence ELSE excluded.guess_sequence END,
			completed = attempts.completed OR excluded.completed,
			completed_at = COALESCE(attempts.completed_at, excluded.completed_at)
	`
}
