package database

import (
	"database/sql"
	"strings"
)

// DBTX is what repositories depend on. Both *DB and *Tx satisfy it, so a
// repository method that has to run inside a transaction (the cascading
// deletes) can take either.
type DBTX interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
	ExecReturningID(query string, args ...interface{}) (int64, error)
	GetDialect() Dialect
}

// sqlRunner is the slice of *sql.DB / *sql.Tx the shared insert helper
// needs; both types satisfy it as-is.
type sqlRunner interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// insertReturningID runs an INSERT and resolves the new row's id. Engines
// with LastInsertId use it directly; for PostgreSQL the statement gets a
// RETURNING id clause and runs as a single-row query.
func insertReturningID(run sqlRunner, d Dialect, query string, args ...interface{}) (int64, error) {
	q := d.RewriteQuery(query)

	if d.SupportsLastInsertId() {
		res, err := run.Exec(q, args...)
		if err != nil {
			return 0, err
		}
		return res.LastInsertId()
	}

	q = strings.TrimSuffix(strings.TrimSpace(q), ";") + " RETURNING id"
	var id int64
	if err := run.QueryRow(q, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// GetDialect returns the active dialect.
func (db *DB) GetDialect() Dialect {
	return db.Dialect
}

// Tx is a transaction with the same dialect-aware surface as DB.
type Tx struct {
	*sql.Tx
	dialect Dialect
}

// Begin opens a transaction sharing the connection's dialect.
func (db *DB) Begin() (*Tx, error) {
	tx, err := db.DB.Begin()
	if err != nil {
		return nil, err
	}
	return &Tx{Tx: tx, dialect: db.Dialect}, nil
}

func (tx *Tx) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return tx.Tx.Query(tx.dialect.RewriteQuery(query), args...)
}

func (tx *Tx) QueryRow(query string, args ...interface{}) *sql.Row {
	return tx.Tx.QueryRow(tx.dialect.RewriteQuery(query), args...)
}

func (tx *Tx) Exec(query string, args ...interface{}) (sql.Result, error) {
	return tx.Tx.Exec(tx.dialect.RewriteQuery(query), args...)
}

func (tx *Tx) ExecReturningID(query string, args ...interface{}) (int64, error) {
	return insertReturningID(tx.Tx, tx.dialect, query, args...)
}

func (tx *Tx) GetDialect() Dialect {
	return tx.dialect
}
