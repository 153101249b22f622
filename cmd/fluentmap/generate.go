package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fluentmap/internal/cli"
)

var (
	generateOutput string
	generateFormat string
)

var generateCmd = &cobra.Command{
	Use:   "generate [packages]",
	Short: "Write mapping documents",
	Long: `Automap the entity structs of the given packages and write one mapping
document per class. Classes that fail to compile are reported and skipped;
the others are still written.`,
	Example: `  # Write XML mappings for a package
  fluentmap generate ./store

  # Write YAML mappings into a custom directory
  fluentmap generate ./store --format yaml --output build/mappings`,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadModel(args)
		if err != nil {
			return err
		}

		output := resolveString(generateOutput, cfg.Generate.Output)
		format := resolveString(generateFormat, cfg.Generate.Format)

		files, err := m.WriteMappingsTo(output, format)
		if !quiet {
			for _, f := range files {
				fmt.Fprintln(cmd.OutOrStdout(), "wrote", f)
			}
		}

		if err != nil {
			return cli.MappingError("generating mappings", err)
		}

		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "output directory")
	generateCmd.Flags().StringVarP(&generateFormat, "format", "f", "", "document format: xml or yaml")
}
