// Package exec runs sqlchain statements against a database.
//
// The builder renders SQL with ? placeholders and a flat parameter list.
// This package binds that pair for a concrete driver: it expands array
// parameters, rebinds placeholders for the dialect, and decodes result rows
// into Go values. Every statement is logged with zerolog and traced with
// OpenTelemetry.
//
//	users, err := exec.FetchAll[User](ctx, pool,
//		sqlchain.From("users").SelectAll().Where("active", true))
//
//	err = exec.Transaction(ctx, pool, func(ctx context.Context, tx exec.Tx) error {
//		_, err := exec.Execute(ctx, tx, sqlchain.Update("users").
//			SetColumn("active", false).
//			Where("id", id))
//		return err
//	})
package exec

import (
	"context"
	"errors"

	"github.com/zoobzio/sqlchain"
)

var (
	// ErrNoRows is returned by FetchOne when the statement matched nothing.
	ErrNoRows = errors.New("no rows in result set")

	// ErrMultipleRows is returned by FetchOne when more than one row matched.
	ErrMultipleRows = errors.New("expected exactly one row, found multiple")

	// ErrInvalidSavepoint is returned for savepoint names that are not plain identifiers.
	ErrInvalidSavepoint = errors.New("invalid savepoint name")

	// ErrParamMismatch is returned when placeholders and parameters disagree.
	ErrParamMismatch = errors.New("placeholder and parameter counts differ")
)

// Row is one result row keyed by column name.
type Row map[string]any

// Runner executes rendered SQL. Pools, connections and transactions are all
// runners. Effects happen in call order on a single connection or
// transaction.
type Runner interface {
	// Exec runs a statement and returns the number of affected rows.
	Exec(ctx context.Context, query string, params []sqlchain.Value) (int64, error)

	// Query runs a statement and returns every result row.
	Query(ctx context.Context, query string, params []sqlchain.Value) ([]Row, error)
}

// Beginner starts transactions.
type Beginner interface {
	Begin(ctx context.Context, opts ...TxOption) (Tx, error)
}

// Pool is a pool of database connections.
type Pool interface {
	Runner
	Beginner

	// Acquire reserves a single connection until Release is called.
	// It blocks until a connection is available or ctx is done.
	Acquire(ctx context.Context) (Conn, error)

	Ping(ctx context.Context) error
	Close() error
}

// Conn is a single reserved connection.
type Conn interface {
	Runner
	Release()
}

// Tx is an open transaction. A Tx is owned by one goroutine at a time.
type Tx interface {
	Runner
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	Savepoint(ctx context.Context, name string) error
	RollbackToSavepoint(ctx context.Context, name string) error
	ReleaseSavepoint(ctx context.Context, name string) error
}
