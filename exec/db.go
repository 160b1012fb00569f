package exec

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/zoobzio/sqlchain"
)

// extContext is the part of sqlx shared by *sqlx.DB, *sqlx.Conn and *sqlx.Tx.
type extContext interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryxContext(ctx context.Context, query string, args ...any) (*sqlx.Rows, error)
}

// runner binds and runs statements on an sqlx handle.
type runner struct {
	ext     extContext
	dialect Dialect
	tracker *Tracker
}

func (r runner) Exec(ctx context.Context, query string, params []sqlchain.Value) (int64, error) {
	bound, args, err := Bind(r.dialect, query, params)
	if err != nil {
		return 0, err
	}

	start := time.Now()
	res, err := r.ext.ExecContext(ctx, bound, args...)
	if err != nil {
		r.tracker.Track(ctx, bound, args, start, 0, err)
		return 0, err
	}
	n, err := res.RowsAffected()
	r.tracker.Track(ctx, bound, args, start, n, err)
	return n, err
}

func (r runner) Query(ctx context.Context, query string, params []sqlchain.Value) ([]Row, error) {
	bound, args, err := Bind(r.dialect, query, params)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	out, err := r.query(ctx, bound, args)
	r.tracker.Track(ctx, bound, args, start, int64(len(out)), err)
	return out, err
}

func (r runner) query(ctx context.Context, query string, args []any) ([]Row, error) {
	rows, err := r.ext.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		row := make(map[string]any)
		if err := rows.MapScan(row); err != nil {
			return nil, err
		}
		out = append(out, Row(row))
	}
	return out, rows.Err()
}

// exec runs a statement with no parameters, used for savepoints.
func (r runner) exec(ctx context.Context, query string) error {
	_, err := r.Exec(ctx, query, nil)
	return err
}

var _ Pool = (*DB)(nil)

// DB is a Pool backed by an sqlx connection pool.
type DB struct {
	runner
	db *sqlx.DB
}

// NewDB wraps db. The dialect must match the driver db was opened with.
func NewDB(db *sqlx.DB, d Dialect, opts ...Option) *DB {
	return &DB{
		runner: runner{ext: db, dialect: d, tracker: NewTracker(d, opts...)},
		db:     db,
	}
}

// OpenDB opens and pings a database/sql pool for driverName.
func OpenDB(ctx context.Context, driverName, dsn string, d Dialect, pool PoolSettings, opts ...Option) (*DB, error) {
	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.Name, err)
	}
	return Connect(ctx, db, d, pool, opts...)
}

// Connect applies pool settings to db, pings it, and wraps it. db is
// closed when the ping fails.
func Connect(ctx context.Context, db *sqlx.DB, d Dialect, pool PoolSettings, opts ...Option) (*DB, error) {
	ApplyPoolSettings(db.DB, pool)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", d.Name, err)
	}
	return NewDB(db, d, opts...), nil
}

// ApplyPoolSettings sizes db. Zero values keep the database/sql defaults.
func ApplyPoolSettings(db *sql.DB, pool PoolSettings) {
	if pool.MaxOpen > 0 {
		db.SetMaxOpenConns(pool.MaxOpen)
	}
	if pool.MaxIdle > 0 {
		db.SetMaxIdleConns(pool.MaxIdle)
	}
	if pool.MaxLifetime > 0 {
		db.SetConnMaxLifetime(pool.MaxLifetime)
	}
	if pool.MaxIdleTime > 0 {
		db.SetConnMaxIdleTime(pool.MaxIdleTime)
	}
}

// Dialect returns the dialect statements are bound for.
func (d *DB) Dialect() Dialect { return d.dialect }

// Unwrap returns the underlying sqlx pool.
func (d *DB) Unwrap() *sqlx.DB { return d.db }

func (d *DB) Ping(ctx context.Context) error { return d.db.PingContext(ctx) }

func (d *DB) Close() error { return d.db.Close() }

// Acquire reserves a connection from the pool.
func (d *DB) Acquire(ctx context.Context) (Conn, error) {
	c, err := d.db.Connx(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	return &dbConn{runner: runner{ext: c, dialect: d.dialect, tracker: d.tracker}, conn: c}, nil
}

// Begin starts a transaction on a pooled connection.
func (d *DB) Begin(ctx context.Context, opts ...TxOption) (Tx, error) {
	o := NewTxOptions(opts...)
	tx, err := d.db.BeginTxx(ctx, o.SQL())
	if err != nil {
		return nil, err
	}
	return &dbTx{runner: runner{ext: tx, dialect: d.dialect, tracker: d.tracker}, tx: tx}, nil
}

type dbConn struct {
	runner
	conn *sqlx.Conn
}

func (c *dbConn) Release() { _ = c.conn.Close() }

type dbTx struct {
	runner
	tx *sqlx.Tx
}

func (t *dbTx) Commit(context.Context) error { return t.tx.Commit() }

// Rollback is safe to call after Commit.
func (t *dbTx) Rollback(context.Context) error {
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}

func (t *dbTx) Savepoint(ctx context.Context, name string) error {
	q, err := t.dialect.SavepointSQL(name)
	if err != nil {
		return err
	}
	return t.exec(ctx, q)
}

func (t *dbTx) RollbackToSavepoint(ctx context.Context, name string) error {
	q, err := t.dialect.RollbackToSQL(name)
	if err != nil {
		return err
	}
	return t.exec(ctx, q)
}

func (t *dbTx) ReleaseSavepoint(ctx context.Context, name string) error {
	q, err := t.dialect.ReleaseSQL(name)
	if err != nil || q == "" {
		return err
	}
	return t.exec(ctx, q)
}
