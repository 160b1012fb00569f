// Package mssql runs sqlchain statements on SQL Server through
// microsoft/go-mssqldb.
package mssql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	mssql "github.com/microsoft/go-mssqldb"

	"github.com/zoobzio/sqlchain/exec"
)

// Open parses dsn, opens a pool, and pings the server.
//
// SQL Server has no LIMIT clause; statements that use Limit fail to bind
// with exec.UnsupportedFeatureError.
func Open(ctx context.Context, dsn string, settings exec.PoolSettings, opts ...exec.Option) (*exec.DB, error) {
	connector, err := mssql.NewConnector(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SQL Server DSN: %w", err)
	}
	db := sqlx.NewDb(sql.OpenDB(connector), "sqlserver")
	return exec.Connect(ctx, db, exec.SQLServer, settings, opts...)
}
