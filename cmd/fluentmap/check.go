package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fluentmap/internal/cli"
)

var checkCmd = &cobra.Command{
	Use:   "check [packages]",
	Short: "Compile mappings and report problems",
	Long: `Automap and compile the entity structs of the given packages and print
every error and warning. Exits with code 3 when a mapping fails to compile.`,
	Example: `  # Check the configured packages
  fluentmap check

  # Include informational diagnostics
  fluentmap check ./store -v`,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadModel(args)
		if err != nil {
			return err
		}

		diags := m.Diagnose()
		out := cmd.OutOrStdout()

		for _, d := range diags.Errors {
			fmt.Fprintln(out, d.String())
		}

		if !quiet {
			for _, d := range diags.Warnings {
				fmt.Fprintln(out, d.String())
			}
		}

		if verbose > 0 {
			for _, d := range diags.Infos {
				fmt.Fprintln(out, d.String())
			}
		}

		if diags.HasErrors() {
			return cli.MappingError(fmt.Sprintf("%d mapping error(s)", len(diags.Errors)), nil)
		}

		if !quiet {
			fmt.Fprintln(out, "Mappings are valid.")
		}

		return nil
	},
}
