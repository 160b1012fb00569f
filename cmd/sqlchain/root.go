package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/zoobzio/sqlchain/config"
	"github.com/zoobzio/sqlchain/exec"
	"github.com/zoobzio/sqlchain/logger"
	"github.com/zoobzio/sqlchain/mariadb"
	"github.com/zoobzio/sqlchain/mssql"
	"github.com/zoobzio/sqlchain/postgres"
	"github.com/zoobzio/sqlchain/sqlite"
)

// app holds state shared by subcommands after PersistentPreRunE.
type app struct {
	cfgFile string
	cfg     *config.Config
	log     zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "sqlchain",
		Short: "Build and run SQL statements with sqlchain",
		Long: `sqlchain - fluent SQL statement builder

Renders SELECT statements built from flags and runs them against
PostgreSQL, MariaDB/MySQL, SQLite or SQL Server.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}
			cfg, err := config.Load(a.cfgFile)
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			a.cfg = cfg
			a.log = logger.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Pretty)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "YAML config file")

	root.AddCommand(newRenderCmd(a))
	root.AddCommand(newQueryCmd(a))
	root.AddCommand(newPingCmd(a))
	return root
}

// open connects to the configured database.
func (a *app) open(ctx context.Context) (exec.Pool, error) {
	db := a.cfg.Database
	if err := db.ValidateConnection(); err != nil {
		return nil, err
	}
	d, err := db.Dialect()
	if err != nil {
		return nil, err
	}

	opts := []exec.Option{
		exec.WithLogger(a.log),
		exec.WithSettings(db.QuerySettings()),
	}
	a.log.Debug().
		Str("vendor", d.Name).
		Str("dsn", logger.MaskDSN(db.DSN)).
		Msg("Opening database")

	var pool exec.Pool
	switch d.Name {
	case exec.Postgres.Name:
		pool, err = nilPool(postgres.Open(ctx, db.DSN, db.PoolSettings(), opts...))
	case exec.MySQL.Name:
		pool, err = nilPool(mariadb.Open(ctx, db.DSN, db.PoolSettings(), opts...))
	case exec.SQLite.Name:
		pool, err = nilPool(sqlite.Open(ctx, db.DSN, db.PoolSettings(), opts...))
	case exec.SQLServer.Name:
		pool, err = nilPool(mssql.Open(ctx, db.DSN, db.PoolSettings(), opts...))
	default:
		err = fmt.Errorf("unsupported driver %q", db.Driver)
	}
	if err != nil {
		return nil, err
	}
	return pool, nil
}

// nilPool keeps a failed Open from returning a typed nil inside exec.Pool.
func nilPool(p exec.Pool, err error) (exec.Pool, error) {
	if err != nil {
		return nil, err
	}
	return p, nil
}
