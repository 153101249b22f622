package main

import (
	"github.com/spf13/cobra"

	"fluentmap/analyze"
	"fluentmap/automap"
	"fluentmap/internal/cli"
	"fluentmap/internal/common"
)

var (
	// Global state set during PersistentPreRunE
	cfg        *cli.Config
	configPath string

	// Persistent flags
	cfgFile string
	verbose int
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "fluentmap",
	Short: "Automap Go structs onto ORM mapping documents",
	Long: `fluentmap - ORM mapping documents from Go structs

fluentmap loads Go packages, maps their entity structs by convention and
writes NHibernate-style mapping documents in XML or YAML.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cli.SetupLogging(verbose, quiet)

		// Skip config loading for help/completion/version commands
		if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "version" {
			return nil
		}

		var err error

		cfg, configPath, err = cli.LoadConfig(cfgFile)
		if err != nil {
			return cli.ConfigError("loading configuration", err)
		}

		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Command group IDs
const (
	groupMapping = "mapping"
	groupUtility = "utility"
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: auto-discover fluentmap.yaml)")
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase verbosity (can be repeated)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")

	rootCmd.AddGroup(
		&cobra.Group{ID: groupMapping, Title: "Mapping:"},
		&cobra.Group{ID: groupUtility, Title: "Utility:"},
	)

	generateCmd.GroupID = groupMapping
	checkCmd.GroupID = groupMapping
	dumpCmd.GroupID = groupMapping
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(dumpCmd)

	configCmd.GroupID = groupUtility
	versionCmd.GroupID = groupUtility
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadModel loads the packages named by args, or the configured ones, and
// sets up their automapping.
func loadModel(args []string) (*automap.AutoPersistenceModel, error) {
	patterns := cfg.ResolvedPackages(args)
	if common.IsEmpty(patterns) {
		return nil, cli.ConfigError("no packages given and none configured", nil)
	}

	opts, err := cfg.PersistenceOptions()
	if err != nil {
		return nil, cli.ConfigError("mapping settings", err)
	}

	graph, err := analyze.NewAnalyzer().WithDir(cfg.Dir).LoadPackages(patterns...)
	if err != nil {
		return nil, cli.LoadError("loading packages", err)
	}

	return automap.Source(automap.FromGraph(graph), opts...), nil
}

// resolveString returns the first non-empty string from the provided values.
// Used to implement precedence: flag > config > default.
func resolveString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
