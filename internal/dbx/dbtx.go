// Package dbx provides tiny DB helpers shared by the local repositories:
// a minimal interface (DBTX) implemented by both *sql.DB and *sql.Tx,
// a helper to run functions inside a transaction, and SQLite constraint
// error inspection.
package dbx

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// DBTX is the subset of database/sql used by our repos.
// Both *sql.DB and *sql.Tx satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx begins a transaction, runs fn with a transactional handle, and then
// commits on success or rolls back on error/panic. Panics are rethrown.
//
// Typical use:
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    repo := users.NewSQLiteRepository(tx)
//	    return repo.Create(ctx, u)
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}

const uniqueMarker = "UNIQUE constraint failed: "

// UniqueViolation reports whether err is an SQLite unique constraint
// failure and, if so, which column ("users.email" -> "email") tripped it.
// The column is empty when the driver message does not name one.
func UniqueViolation(err error) (column string, ok bool) {
	if err == nil {
		return "", false
	}

	var se *sqlite.Error
	if errors.As(err, &se) {
		ok = se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE || se.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}

	msg := err.Error()
	i := strings.Index(msg, uniqueMarker)
	if i < 0 {
		return "", ok
	}

	target := msg[i+len(uniqueMarker):]
	if end := strings.IndexAny(target, " ,()"); end >= 0 {
		target = target[:end]
	}
	if dot := strings.LastIndex(target, "."); dot >= 0 {
		target = target[dot+1:]
	}
	return target, true
}
