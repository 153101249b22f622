package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"fluentmap/fluent"
	"fluentmap/naming"
)

const (
	maxWalkDepth = 25
	envPrefix    = "FLUENTMAP"
)

var configNames = []string{"fluentmap.yaml", "fluentmap.yml"}

// Config represents the fluentmap configuration from fluentmap.yaml.
type Config struct {
	// Packages are the Go package patterns automapped when none are given
	// on the command line.
	Packages []string `mapstructure:"packages" yaml:"packages"`
	// Dir is the directory package patterns are resolved from.
	Dir string `mapstructure:"dir" yaml:"dir"`

	Mapping  MappingConfig  `mapstructure:"mapping"  yaml:"mapping"`
	Generate GenerateConfig `mapstructure:"generate" yaml:"generate"`
}

// MappingConfig holds the document-wide mapping settings.
type MappingConfig struct {
	Conventions   string `mapstructure:"conventions"    yaml:"conventions"`
	DefaultLazy   bool   `mapstructure:"default_lazy"   yaml:"default_lazy"`
	DefaultAccess string `mapstructure:"default_access" yaml:"default_access"`
	AutoImport    bool   `mapstructure:"auto_import"    yaml:"auto_import"`
}

// GenerateConfig holds output settings of the generate command.
type GenerateConfig struct {
	Output string `mapstructure:"output" yaml:"output"`
	Format string `mapstructure:"format" yaml:"format"`
}

// LoadConfig discovers and loads configuration with proper precedence:
// env > config file > defaults. A .env file next to the config file, or in
// the working directory when there is none, is loaded into the environment
// first without overriding variables already set.
//
// Returns the loaded config, the path to the config file (empty if none found),
// and any error encountered.
func LoadConfig(explicitConfigPath string) (*Config, string, error) {
	v := viper.New()

	setDefaults(v)

	configPath, err := findConfigFile(explicitConfigPath)
	if err != nil {
		return nil, "", err
	}

	if err := loadDotEnv(configPath); err != nil {
		return nil, configPath, err
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)

		if err := v.ReadInConfig(); err != nil {
			return nil, configPath, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, configPath, fmt.Errorf("unmarshaling config: %w", err)
	}

	// AutomaticEnv only covers keys viper knows; a list needs splitting.
	if raw, ok := os.LookupEnv(envPrefix + "_PACKAGES"); ok {
		cfg.Packages = strings.Fields(strings.ReplaceAll(raw, ",", " "))
	}

	return &cfg, configPath, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("packages", []string{})
	v.SetDefault("dir", "")

	v.SetDefault("mapping.conventions", "default")
	v.SetDefault("mapping.default_lazy", true)
	v.SetDefault("mapping.default_access", "")
	v.SetDefault("mapping.auto_import", true)

	v.SetDefault("generate.output", "mappings")
	v.SetDefault("generate.format", "xml")
}

// loadDotEnv loads the .env file beside configPath, or in the working
// directory when configPath is empty. A missing file is not an error.
func loadDotEnv(configPath string) error {
	dir := "."
	if configPath != "" {
		dir = filepath.Dir(configPath)
	}

	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}

	return nil
}

// findConfigFile finds the config file to use.
// If explicitPath is provided, it validates the file exists.
// Otherwise, it walks up from cwd looking for fluentmap.yaml or fluentmap.yml,
// stopping at a .git directory or after maxWalkDepth levels.
func findConfigFile(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicitPath)
		}

		return explicitPath, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting cwd: %w", err)
	}

	dir := cwd
	for range maxWalkDepth {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}

		// Stop at the repo root
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			break
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}

		dir = parent
	}

	return "", nil
}

// ResolvedPackages returns the package patterns to load: args when given,
// the configured packages otherwise.
func (c *Config) ResolvedPackages(args []string) []string {
	if len(args) > 0 {
		return args
	}

	return c.Packages
}

// PersistenceOptions turns the mapping settings into fluent options.
func (c *Config) PersistenceOptions() ([]fluent.Option, error) {
	conv, ok := naming.ByName(c.Mapping.Conventions)
	if !ok {
		return nil, fmt.Errorf("unknown naming convention %q", c.Mapping.Conventions)
	}

	return []fluent.Option{
		fluent.WithConventions(conv),
		fluent.WithDefaultLazy(c.Mapping.DefaultLazy),
		fluent.WithDefaultAccess(c.Mapping.DefaultAccess),
		fluent.WithAutoImport(c.Mapping.AutoImport),
	}, nil
}
