package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zoobzio/sqlchain"
)

func newRenderCmd(_ *app) *cobra.Command {
	var f selectFlags

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the SQL and parameters for a SELECT",
		Example: `  # Adults ordered by name
  sqlchain render --table users --columns id,name --where 'age>=18' --order-by name`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := f.build()
			if err != nil {
				return err
			}
			res, err := sqlchain.Render(q)
			if err != nil {
				return err
			}

			if res.Params == nil {
				res.Params = []sqlchain.Value{}
			}
			params, err := json.Marshal(res.Params)
			if err != nil {
				return fmt.Errorf("encoding parameters: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, res.SQL)
			fmt.Fprintln(out, string(params))
			return nil
		},
	}
	f.register(cmd)
	return cmd
}
