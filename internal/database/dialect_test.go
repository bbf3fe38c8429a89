package database

import (
	"strings"
	"testing"
)

func TestDialectSQLite(t *testing.T) {
	dialect := NewSQLiteDialect()

	t.Run("DriverName", func(t *testing.T) {
		if got := dialect.DriverName(); got != "sqlite3" {
			t.Errorf("DriverName() = %v, want sqlite3", got)
		}
	})

	t.Run("SupportsLastInsertId", func(t *testing.T) {
		if !dialect.SupportsLastInsertId() {
			t.Error("SupportsLastInsertId() should return true for SQLite")
		}
	})

	t.Run("MigrationsSubdir", func(t *testing.T) {
		if got := dialect.MigrationsSubdir(); got != "sqlite" {
			t.Errorf("MigrationsSubdir() = %v, want sqlite", got)
		}
	})

	t.Run("RewriteQueryKeepsPlaceholders", func(t *testing.T) {
		query := "SELECT id FROM users WHERE username = ? AND email = ?"
		if got := dialect.RewriteQuery(query); got != query {
			t.Errorf("RewriteQuery changed query: %v", got)
		}
	})
}

func TestDialectPostgres(t *testing.T) {
	dialect := NewPostgresDialect()

	t.Run("DriverName", func(t *testing.T) {
		if got := dialect.DriverName(); got != "postgres" {
			t.Errorf("DriverName() = %v, want postgres", got)
		}
	})

	t.Run("SupportsLastInsertId", func(t *testing.T) {
		if dialect.SupportsLastInsertId() {
			t.Error("SupportsLastInsertId() should return false for PostgreSQL")
		}
	})

	t.Run("RewriteQueryNumbersPlaceholders", func(t *testing.T) {
		query := "INSERT INTO puzzles (word, hint) VALUES (?, ?)"
		want := "INSERT INTO puzzles (word, hint) VALUES ($1, $2)"
		if got := dialect.RewriteQuery(query); got != want {
			t.Errorf("RewriteQuery() = %v, want %v", got, want)
		}
	})

	t.Run("RewriteQueryNoPlaceholders", func(t *testing.T) {
		query := "SELECT COUNT(*) FROM users"
		if got := dialect.RewriteQuery(query); got != query {
			t.Errorf("RewriteQuery changed a placeholder-free query: %v", got)
		}
	})
}

func TestDialectMySQL(t *testing.T) {
	dialect := NewMySQLDialect()

	t.Run("DriverName", func(t *testing.T) {
		if got := dialect.DriverName(); got != "mysql" {
			t.Errorf("DriverName() = %v, want mysql", got)
		}
	})

	t.Run("SupportsLastInsertId", func(t *testing.T) {
		if !dialect.SupportsLastInsertId() {
			t.Error("SupportsLastInsertId() should return true for MySQL")
		}
	})

	t.Run("MigrationsSubdir", func(t *testing.T) {
		if got := dialect.MigrationsSubdir(); got != "mysql" {
			t.Errorf("MigrationsSubdir() = %v, want mysql", got)
		}
	})
}

// The attempt upsert is the one statement each dialect writes differently,
// so pin down the clauses the progress rules depend on.
func TestUpsertAttemptClauses(t *testing.T) {
	t.Run("sqlite and postgres", func(t *testing.T) {
		for _, dialect := range []Dialect{NewSQLiteDialect(), NewPostgresDialect()} {
			query := dialect.UpsertAttempt()
			if !strings.Contains(query, "ON CONFLICT (user_id, puzzle_id)") {
				t.Errorf("%s upsert missing conflict target", dialect.DriverName())
			}
			if !strings.Contains(query, "attempts.completed OR excluded.completed") {
				t.Errorf("%s upsert does not keep completed sticky", dialect.DriverName())
			}
			if !strings.Contains(query, "COALESCE(attempts.completed_at, excluded.completed_at)") {
				t.Errorf("%s upsert does not preserve the first completion time", dialect.DriverName())
			}
			for _, column := range []string{"num_tries", "points_earned", "guess_sequence"} {
				frozen := "CASE WHEN attempts.completed THEN attempts." + column
				if !strings.Contains(query, frozen) {
					t.Errorf("%s upsert does not freeze %s after completion", dialect.DriverName(), column)
				}
			}
		}
	})

	t.Run("mysql", func(t *testing.T) {
		query := NewMySQLDialect().UpsertAttempt()
		if !strings.Contains(query, "ON DUPLICATE KEY UPDATE") {
			t.Error("mysql upsert missing duplicate key clause")
		}
		if !strings.Contains(query, "completed OR VALUES(completed)") {
			t.Error("mysql upsert does not keep completed sticky")
		}
		if !strings.Contains(query, "COALESCE(completed_at, VALUES(completed_at))") {
			t.Error("mysql upsert does not preserve the first completion time")
		}
		for _, column := range []string{"num_tries", "points_earned", "guess_sequence"} {
			frozen := column + " = IF(completed, " + column
			if !strings.Contains(query, frozen) {
				t.Errorf("mysql upsert does not freeze %s after completion", column)
			}
		}
		// the IF() guards read completed, so its reassignment must come last
		if strings.Index(query, "completed = completed OR") < strings.Index(query, "IF(completed, num_tries") {
			t.Error("mysql upsert reassigns completed before the frozen-column guards")
		}
	})
}
