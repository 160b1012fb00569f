// Package sqlite runs sqlchain statements on SQLite through the pure Go
// modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/zoobzio/sqlchain/exec"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

// Open opens and pings the database at dsn. In-memory databases are
// private to a connection, so their pool is pinned to one connection.
func Open(ctx context.Context, dsn string, settings exec.PoolSettings, opts ...exec.Option) (*exec.DB, error) {
	if isMemory(dsn) {
		settings.MaxOpen = 1
		settings.MaxIdle = 1
		settings.MaxLifetime = 0
		settings.MaxIdleTime = 0
	}
	db, err := sqlx.Open(DriverName, dsn)
	if err != nil {
		return nil, err
	}
	return exec.Connect(ctx, db, exec.SQLite, settings, opts...)
}

func isMemory(dsn string) bool {
	return dsn == "" ||
		strings.HasPrefix(dsn, ":memory:") ||
		strings.Contains(dsn, "mode=memory")
}
