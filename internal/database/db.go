package database

import (
	"database/sql"
	"fmt"
	"strings"

	"campuswordle/internal/config"
)

// DB is the shared handle repositories work against. It embeds *sql.DB and
// routes every query through the dialect so placeholder style and insert-id
// handling stay out of repository code.
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Initialize opens a SQLite database at the given path. Tests and the
// zero-config default path use this.
func Initialize(dbPath string) (*DB, error) {
	return connect(NewSQLiteDialect(), DialectConfig{Path: dbPath})
}

// InitializeWithConfig picks the engine from DATABASE_TYPE and connects.
func InitializeWithConfig(cfg *config.Config) (*DB, error) {
	switch strings.ToLower(cfg.DatabaseType) {
	case "sqlite", "sqlite3", "":
		return connect(NewSQLiteDialect(), DialectConfig{Path: cfg.DatabasePath})
	case "postgres", "postgresql":
		return connect(NewPostgresDialect(), DialectConfig{URL: cfg.DatabaseURL})
	case "mysql":
		return connect(NewMySQLDialect(), DialectConfig{URL: cfg.DatabaseURL})
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.DatabaseType)
	}
}

func connect(dialect Dialect, dc DialectConfig) (*DB, error) {
	handle, err := sql.Open(dialect.DriverName(), dialect.DSN(dc))
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", dialect.DriverName(), err)
	}
	if err := handle.Ping(); err != nil {
		handle.Close()
		return nil, fmt.Errorf("ping %s database: %w", dialect.DriverName(), err)
	}
	if err := dialect.ConfigureConnection(handle); err != nil {
		handle.Close()
		return nil, fmt.Errorf("configure %s connection: %w", dialect.DriverName(), err)
	}
	return &DB{DB: handle, Dialect: dialect}, nil
}

// Query runs a SELECT after placeholder rewriting.
func (db *DB) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return db.DB.Query(db.Dialect.RewriteQuery(query), args...)
}

// QueryRow runs a single-row SELECT after placeholder rewriting.
func (db *DB) QueryRow(query string, args ...interface{}) *sql.Row {
	return db.DB.QueryRow(db.Dialect.RewriteQuery(query), args...)
}

// Exec runs a statement after placeholder rewriting.
func (db *DB) Exec(query string, args ...interface{}) (sql.Result, error) {
	return db.DB.Exec(db.Dialect.RewriteQuery(query), args...)
}

// ExecReturningID runs an INSERT and hands back the new row's id, hiding
// the LastInsertId versus RETURNING split between engines.
func (db *DB) ExecReturningID(query string, args ...interface{}) (int64, error) {
	return insertReturningID(db.DB, db.Dialect, query, args...)
}
