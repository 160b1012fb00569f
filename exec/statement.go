package exec

import (
	"context"
	"errors"

	"github.com/zoobzio/sqlchain"
)

// Execute renders stmt and runs it, returning the number of affected rows.
// Render errors are returned before any I/O.
func Execute(ctx context.Context, r Runner, stmt sqlchain.Statement) (int64, error) {
	res, err := sqlchain.Render(stmt)
	if err != nil {
		return 0, err
	}
	return r.Exec(ctx, res.SQL, res.Params)
}

// FetchAll renders stmt, runs it, and decodes every row into T.
func FetchAll[T any](ctx context.Context, r Runner, stmt sqlchain.Statement) ([]T, error) {
	rows, err := fetch(ctx, r, stmt)
	if err != nil {
		return nil, err
	}
	return decodeRows[T](rows)
}

// FetchOne is like FetchAll but requires exactly one row. It returns
// ErrNoRows or ErrMultipleRows otherwise.
func FetchOne[T any](ctx context.Context, r Runner, stmt sqlchain.Statement) (T, error) {
	var zero T
	rows, err := fetch(ctx, r, stmt)
	if err != nil {
		return zero, err
	}
	switch len(rows) {
	case 0:
		return zero, ErrNoRows
	case 1:
		return decodeRow[T](rows[0])
	default:
		return zero, ErrMultipleRows
	}
}

// FetchOptional is like FetchOne but returns nil when no row matched.
func FetchOptional[T any](ctx context.Context, r Runner, stmt sqlchain.Statement) (*T, error) {
	v, err := FetchOne[T](ctx, r, stmt)
	switch {
	case errors.Is(err, ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, err
	}
	return &v, nil
}

func fetch(ctx context.Context, r Runner, stmt sqlchain.Statement) ([]Row, error) {
	res, err := sqlchain.Render(stmt)
	if err != nil {
		return nil, err
	}
	return r.Query(ctx, res.SQL, res.Params)
}
