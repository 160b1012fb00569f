// Package mariadb runs sqlchain statements on MariaDB and MySQL through
// go-sql-driver/mysql.
package mariadb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/zoobzio/sqlchain/exec"
)

// Open parses dsn, opens a pool, and pings the server. Time columns are
// always scanned as time.Time.
func Open(ctx context.Context, dsn string, settings exec.PoolSettings, opts ...exec.Option) (*exec.DB, error) {
	cfg, err := parseDSN(dsn)
	if err != nil {
		return nil, err
	}
	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create MariaDB connector: %w", err)
	}
	db := sqlx.NewDb(sql.OpenDB(connector), "mysql")
	return exec.Connect(ctx, db, exec.MySQL, settings, opts...)
}

// DSN formats a connection string for addr and database.
func DSN(user, password, addr, database string) string {
	cfg := mysql.NewConfig()
	cfg.User = user
	cfg.Passwd = password
	cfg.Net = "tcp"
	cfg.Addr = addr
	cfg.DBName = database
	cfg.ParseTime = true
	return cfg.FormatDSN()
}

func parseDSN(dsn string) (*mysql.Config, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse MariaDB DSN: %w", err)
	}
	cfg.ParseTime = true
	return cfg, nil
}
