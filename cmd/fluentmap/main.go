// Package main provides the fluentmap CLI.
//
// fluentmap loads Go packages, automaps their entity structs and works with
// the resulting ORM mapping documents:
//   - generate: write one .hbm.xml or .hbm.yaml file per class
//   - check: compile the mappings and report errors and warnings
//   - dump: print the compiled documents
//   - config show: print the effective configuration
//
// Usage:
//
//	fluentmap [flags] <command> [packages]
package main

import (
	"github.com/untillpro/goutils/cobrau"

	"fluentmap/internal/cli"
)

func main() {
	if err := cobrau.ExecCommandAndCatchInterrupt(rootCmd); err != nil {
		cli.ExitWithError(err)
	}
}
