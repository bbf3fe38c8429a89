package database

import (
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLDialect targets MySQL and MariaDB.
type MySQLDialect struct{}

func NewMySQLDialect() *MySQLDialect {
	return &MySQLDialect{}
}

func (d *MySQLDialect) DriverName() string {
	return "mysql"
}

func (d *MySQLDialect) DSN(config DialectConfig) string {
	return config.URL
}

// RewriteQuery is a no-op: MySQL takes ? placeholders natively.
func (d *MySQLDialect) RewriteQuery(query string) string {
	return query
}

func (d *MySQLDialect) SupportsLastInsertId() bool {
	return true
}

func (d *MySQLDialect) ConfigureConnection(db *sql.DB) error {
	tunePool(db)
	// Foreign key checks can be disabled session-wide on shared servers.
	_, err := db.Exec("SET FOREIGN_KEY_CHECKS = 1;")
	return err
}

func (d *MySQLDialect) MigrationsSubdir() string {
	return "mysql"
}

func (d *MySQLDialect) CreateMigrationsTableQuery() string {
	return `
		CREATE TABLE IF NOT EXISTS migrations (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			filename VARCHAR(255) UNIQUE NOT NULL,
			executed_at DATETIME(6) DEFAULT CURRENT_TIMESTAMP(6)
		);
	`
}

// UpsertAttempt relies on assignment order: MySQL applies the SET list left
// to right, so the IF() guards must come before completed is reassigned.
func (d *MySQLDialect) UpsertAttempt() string {
	return `
		INSERT INTO attempts (user_id, puzzle_id, num_tries, points_earned, guess_sequence, completed, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			num_tries = IF(completed, num_tries, VALUES(num_tries)),
			points_earned = IF(completed, points_earned, VALUES(points_earned)),
			guess_sequence = IF(completed, guess_sequence, VALUES(guess_sequence)),
			completed = completed OR VALUES(completed),
			completed_at = COALESCE(completed_at, VALUES(completed_at))
	`
}
