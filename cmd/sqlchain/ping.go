package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPingCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check connectivity to the configured database",
		Example: `  # Ping a local SQLite file
  SQLCHAIN_DATABASE__DRIVER=sqlite SQLCHAIN_DATABASE__DSN=app.db sqlchain ping`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			pool, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = pool.Close() }()

			if err := pool.Ping(ctx); err != nil {
				return fmt.Errorf("ping: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", a.cfg.Database.Driver)
			return nil
		},
	}
}
