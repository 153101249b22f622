package main

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"fluentmap/internal/cli"
)

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

var dumpCmd = &cobra.Command{
	Use:   "dump [packages]",
	Short: "Print the compiled mapping documents",
	Long:  `Print the compiled mapping documents as Go values, for debugging conventions and overrides.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadModel(args)
		if err != nil {
			return err
		}

		docs, err := m.BuildMappings()
		for _, doc := range docs {
			dumper.Fdump(cmd.OutOrStdout(), doc)
		}

		if err != nil {
			return cli.MappingError("compiling mappings", err)
		}

		return nil
	},
}
