package exec

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
)

// IsolationLevel is a transaction isolation level.
type IsolationLevel string

const (
	IsolationDefault         IsolationLevel = ""
	IsolationReadUncommitted IsolationLevel = "READ UNCOMMITTED"
	IsolationReadCommitted   IsolationLevel = "READ COMMITTED"
	IsolationRepeatableRead  IsolationLevel = "REPEATABLE READ"
	IsolationSerializable    IsolationLevel = "SERIALIZABLE"
)

// SQL maps the level onto database/sql.
func (l IsolationLevel) SQL() sql.IsolationLevel {
	switch l {
	case IsolationReadUncommitted:
		return sql.LevelReadUncommitted
	case IsolationReadCommitted:
		return sql.LevelReadCommitted
	case IsolationRepeatableRead:
		return sql.LevelRepeatableRead
	case IsolationSerializable:
		return sql.LevelSerializable
	default:
		return sql.LevelDefault
	}
}

// TxOptions are the settings for a new transaction.
type TxOptions struct {
	Isolation IsolationLevel
	ReadOnly  bool
}

// SQL maps the options onto database/sql.
func (o TxOptions) SQL() *sql.TxOptions {
	return &sql.TxOptions{Isolation: o.Isolation.SQL(), ReadOnly: o.ReadOnly}
}

// TxOption configures a transaction.
type TxOption func(*TxOptions)

// WithIsolation sets the isolation level.
func WithIsolation(level IsolationLevel) TxOption {
	return func(o *TxOptions) {
		o.Isolation = level
	}
}

// ReadOnly starts a read-only transaction.
func ReadOnly() TxOption {
	return func(o *TxOptions) {
		o.ReadOnly = true
	}
}

// NewTxOptions applies opts to the default options.
func NewTxOptions(opts ...TxOption) TxOptions {
	var o TxOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Transaction runs fn inside a transaction. It commits when fn returns nil
// and rolls back otherwise, returning fn's error unchanged. A failed
// rollback is logged to the context logger. A panic in fn rolls back and
// is re-raised.
func Transaction(ctx context.Context, b Beginner, fn func(ctx context.Context, tx Tx) error, opts ...TxOption) (err error) {
	tx, err := b.Begin(ctx, opts...)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			rollback(ctx, tx)
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		rollback(ctx, tx)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func rollback(ctx context.Context, tx Tx) {
	if err := tx.Rollback(ctx); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("Transaction rollback failed")
	}
}
