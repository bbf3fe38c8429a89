package database

import (
	"database/sql"

	_ "github.com/lib/pq"
)

// PostgresDialect targets PostgreSQL via lib/pq.
type PostgresDialect struct{}

func NewPostgresDialect() *PostgresDialect {
	return &PostgresDialect{}
}

func (d *PostgresDialect) DriverName() string {
	return "postgres"
}

func (d *PostgresDialect) DSN(config DialectConfig) string {
	return config.URL
}

// RewriteQuery numbers the placeholders: PostgreSQL wants $1, $2, ...
func (d *PostgresDialect) RewriteQuery(query string) string {
	return numberPlaceholders(query)
}

// SupportsLastInsertId is false: lib/pq has no insert-id support, so
// inserts append RETURNING id instead.
func (d *PostgresDialect) SupportsLastInsertId() bool {
	return false
}

func (d *PostgresDialect) ConfigureConnection(db *sql.DB) error {
	tunePool(db)
	return nil
}

func (d *PostgresDialect) MigrationsSubdir() string {
	return "postgres"
}

func (d *PostgresDialect) CreateMigrationsTableQuery() string {
	return `
		CREATE TABLE IF NOT EXISTS migrations (
			id BIGSERIAL PRIMARY KEY,
			filename TEXT UNIQUE NOT NULL,
			executed_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		);
	`
}

func (d *PostgresDialect) UpsertAttempt() string {
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
