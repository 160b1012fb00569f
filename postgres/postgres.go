// Package postgres runs sqlchain statements on PostgreSQL through a pgx
// connection pool.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zoobzio/sqlchain"
	"github.com/zoobzio/sqlchain/exec"
)

// querier is the part of pgx shared by pools, connections and transactions.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type runner struct {
	q       querier
	tracker *exec.Tracker
}

func (r runner) Exec(ctx context.Context, query string, params []sqlchain.Value) (int64, error) {
	bound, args, err := exec.Bind(exec.Postgres, query, params)
	if err != nil {
		return 0, err
	}

	start := time.Now()
	tag, err := r.q.Exec(ctx, bound, args...)
	n := tag.RowsAffected()
	r.tracker.Track(ctx, bound, args, start, n, err)
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (r runner) Query(ctx context.Context, query string, params []sqlchain.Value) ([]exec.Row, error) {
	bound, args, err := exec.Bind(exec.Postgres, query, params)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	out, err := r.query(ctx, bound, args)
	r.tracker.Track(ctx, bound, args, start, int64(len(out)), err)
	return out, err
}

func (r runner) query(ctx context.Context, query string, args []any) ([]exec.Row, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, err
	}
	out := make([]exec.Row, len(maps))
	for i, m := range maps {
		out[i] = exec.Row(m)
	}
	return out, nil
}

var _ exec.Pool = (*Pool)(nil)

// Pool is an exec.Pool backed by pgxpool.
type Pool struct {
	runner
	pool *pgxpool.Pool
}

// Open parses dsn, sizes the pool, and pings the server.
func Open(ctx context.Context, dsn string, settings exec.PoolSettings, opts ...exec.Option) (*Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PostgreSQL config: %w", err)
	}
	applySettings(cfg, settings)

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create PostgreSQL pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL database: %w", err)
	}
	return New(pool, opts...), nil
}

// applySettings copies non-zero pool settings onto cfg. Connection counts
// are clamped to the int32 range pgxpool uses.
func applySettings(cfg *pgxpool.Config, settings exec.PoolSettings) {
	if settings.MaxOpen > 0 {
		cfg.MaxConns = clampInt32(settings.MaxOpen)
	}
	if settings.MaxIdle > 0 && settings.MaxIdle <= int(cfg.MaxConns) {
		cfg.MinConns = clampInt32(settings.MaxIdle)
	}
	if settings.MaxLifetime > 0 {
		cfg.MaxConnLifetime = settings.MaxLifetime
	}
	if settings.MaxIdleTime > 0 {
		cfg.MaxConnIdleTime = settings.MaxIdleTime
	}
}

func clampInt32(n int) int32 {
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(n)
}

// New wraps an existing pool.
func New(pool *pgxpool.Pool, opts ...exec.Option) *Pool {
	return &Pool{
		runner: runner{q: pool, tracker: exec.NewTracker(exec.Postgres, opts...)},
		pool:   pool,
	}
}

// Unwrap returns the underlying pgx pool.
func (p *Pool) Unwrap() *pgxpool.Pool { return p.pool }

func (p *Pool) Ping(ctx context.Context) error { return p.pool.Ping(ctx) }

func (p *Pool) Close() error {
	p.pool.Close()
	return nil
}

// Acquire reserves a connection from the pool.
func (p *Pool) Acquire(ctx context.Context) (exec.Conn, error) {
	c, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	return &conn{runner: runner{q: c, tracker: p.tracker}, conn: c}, nil
}

// Begin starts a transaction.
func (p *Pool) Begin(ctx context.Context, opts ...exec.TxOption) (exec.Tx, error) {
	tx, err := p.pool.BeginTx(ctx, txOptions(exec.NewTxOptions(opts...)))
	if err != nil {
		return nil, err
	}
	return &transaction{runner: runner{q: tx, tracker: p.tracker}, tx: tx}, nil
}

func txOptions(o exec.TxOptions) pgx.TxOptions {
	var out pgx.TxOptions
	switch o.Isolation {
	case exec.IsolationReadUncommitted:
		out.IsoLevel = pgx.ReadUncommitted
	case exec.IsolationReadCommitted:
		out.IsoLevel = pgx.ReadCommitted
	case exec.IsolationRepeatableRead:
		out.IsoLevel = pgx.RepeatableRead
	case exec.IsolationSerializable:
		out.IsoLevel = pgx.Serializable
	}
	if o.ReadOnly {
		out.AccessMode = pgx.ReadOnly
	}
	return out
}

type conn struct {
	runner
	conn *pgxpool.Conn
}

func (c *conn) Release() { c.conn.Release() }

type transaction struct {
	runner
	tx pgx.Tx
}

func (t *transaction) Commit(ctx context.Context) error { return t.tx.Commit(ctx) }

// Rollback is safe to call after Commit.
func (t *transaction) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}

func (t *transaction) Savepoint(ctx context.Context, name string) error {
	return t.savepoint(ctx, exec.Postgres.SavepointSQL, name)
}

func (t *transaction) RollbackToSavepoint(ctx context.Context, name string) error {
	return t.savepoint(ctx, exec.Postgres.RollbackToSQL, name)
}

func (t *transaction) ReleaseSavepoint(ctx context.Context, name string) error {
	return t.savepoint(ctx, exec.Postgres.ReleaseSQL, name)
}

func (t *transaction) savepoint(ctx context.Context, stmt func(string) (string, error), name string) error {
	q, err := stmt(name)
	if err != nil {
		return err
	}
	_, err = t.Exec(ctx, q, nil)
	return err
}
