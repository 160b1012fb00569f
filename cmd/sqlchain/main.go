// Package main provides the sqlchain CLI.
//
// The CLI supports:
//   - render: build a SELECT from flags and print its SQL and parameters
//   - query: build a SELECT from flags, run it, and print rows as JSON
//   - ping: open the configured database and check connectivity
//
// Usage:
//
//	sqlchain [--config file] <command> [flags]
//
// Database settings come from the config file and SQLCHAIN_ environment
// variables, for example SQLCHAIN_DATABASE__DRIVER=sqlite.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
