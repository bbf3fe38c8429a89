package database

import (
	"database/sql"
	"strconv"
	"strings"
	"time"
)

// Dialect abstracts the differences between the supported database engines.
// Repositories write queries with ? placeholders against a shared schema;
// the dialect handles placeholder style, insert-id retrieval, connection
// setup and the engine-specific upsert statement.
type Dialect interface {
	// DriverName is the name registered with database/sql.
	DriverName() string

	// DSN builds the connection string from the dialect config.
	DSN(config DialectConfig) string

	// RewriteQuery translates ? placeholders into the engine's native
	// placeholder style. Engines that use ? return the query unchanged.
	RewriteQuery(query string) string

	// SupportsLastInsertId reports whether sql.Result.LastInsertId works.
	// When it does not, inserts go through a RETURNING clause instead.
	SupportsLastInsertId() bool

	// ConfigureConnection applies pool limits and engine pragmas to a
	// freshly opened connection.
	ConfigureConnection(db *sql.DB) error

	// MigrationsSubdir names the per-engine directory under the
	// migrations path.
	MigrationsSubdir() string

	// CreateMigrationsTableQuery is the DDL for the applied-migrations
	// bookkeeping table.
	CreateMigrationsTableQuery() string

	// UpsertAttempt is the atomic insert-or-update for a player's attempt
	// row, keyed on (user_id, puzzle_id). Placeholder order: user_id,
	// puzzle_id, num_tries, points_earned, guess_sequence, completed,
	// completed_at. A completed row is frozen: completed can never be
	// flipped back, completed_at is written at most once, and the stored
	// tries, points and guesses survive any later write.
	UpsertAttempt() string
}

// DialectConfig carries the connection parameters. SQLite uses Path;
// PostgreSQL and MySQL use URL.
type DialectConfig struct {
	Path string
	URL  string
}

// tunePool applies the pool limits shared by every engine.
func tunePool(db *sql.DB) {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(time.Minute)
}

// numberPlaceholders rewrites each ? into $1, $2, ... in order of
// appearance. Queries in this codebase never contain a literal ?, so a
// plain byte scan is enough.
func numberPlaceholders(query string) string {
	if !strings.ContainsRune(query, '?') {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 16)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] != '?' {
			b.WriteByte(query[i])
			continue
		}
		n++
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}
