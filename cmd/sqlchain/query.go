package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/zoobzio/sqlchain/exec"
)

func newQueryCmd(a *app) *cobra.Command {
	var f selectFlags

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run a SELECT and print the rows as JSON",
		Example: `  # First ten active users
  sqlchain query --table users --where active=true --limit 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := f.build()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			pool, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = pool.Close() }()

			rows, err := exec.FetchAll[exec.Row](ctx, pool, q)
			if err != nil {
				return err
			}
			if rows == nil {
				rows = []exec.Row{}
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rows)
		},
	}
	f.register(cmd)
	return cmd
}
