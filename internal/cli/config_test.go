package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/untillpro/goutils/logger"
)

func chdir(t *testing.T, dir string) {
	t.Helper()

	oldCwd, err := os.Getwd()
	require.NoError(t, err)

	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(oldCwd) })
}

func TestFindConfigFile_ExplicitPath(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(tmpFile, []byte("dir: ."), 0o644))

	path, err := findConfigFile(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, tmpFile, path)
}

func TestFindConfigFile_ExplicitPathNotFound(t *testing.T) {
	_, err := findConfigFile("/nonexistent/path/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestFindConfigFile_AutoDiscovery(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))

	configPath := filepath.Join(root, "fluentmap.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("dir: ."), 0o644))

	nested := filepath.Join(root, "deep", "nested")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	chdir(t, nested)

	path, err := findConfigFile("")
	require.NoError(t, err)

	// Resolve symlinks for comparison (macOS /var -> /private/var)
	expectedPath, _ := filepath.EvalSymlinks(configPath)
	actualPath, _ := filepath.EvalSymlinks(path)
	assert.Equal(t, expectedPath, actualPath)
}

func TestFindConfigFile_StopsAtRepoRoot(t *testing.T) {
	outer := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outer, "fluentmap.yaml"), []byte("dir: ."), 0o644))

	repo := filepath.Join(outer, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))
	chdir(t, repo)

	path, err := findConfigFile("")
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestLoadConfig_Defaults(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	chdir(t, root)

	cfg, path, err := LoadConfig("")
	require.NoError(t, err)
	assert.Empty(t, path)

	assert.Empty(t, cfg.Packages)
	assert.Equal(t, "default", cfg.Mapping.Conventions)
	assert.True(t, cfg.Mapping.DefaultLazy)
	assert.True(t, cfg.Mapping.AutoImport)
	assert.Equal(t, "mappings", cfg.Generate.Output)
	assert.Equal(t, "xml", cfg.Generate.Format)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "fluentmap.yaml")
	content := `packages:
  - ./store
mapping:
  conventions: snake_case
  default_lazy: false
generate:
  output: out
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("FLUENTMAP_GENERATE_FORMAT=yaml\n"), 0o644))

	t.Setenv("FLUENTMAP_MAPPING_DEFAULT_ACCESS", "field")
	t.Cleanup(func() { _ = os.Unsetenv("FLUENTMAP_GENERATE_FORMAT") })

	cfg, path, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, configPath, path)

	assert.Equal(t, []string{"./store"}, cfg.Packages)
	assert.Equal(t, "snake_case", cfg.Mapping.Conventions)
	assert.False(t, cfg.Mapping.DefaultLazy)
	assert.Equal(t, "field", cfg.Mapping.DefaultAccess)
	assert.Equal(t, "out", cfg.Generate.Output)
	assert.Equal(t, "yaml", cfg.Generate.Format)
}

func TestLoadConfig_PackagesFromEnv(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	chdir(t, root)

	t.Setenv("FLUENTMAP_PACKAGES", "./a, ./b")

	cfg, _, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, []string{"./a", "./b"}, cfg.Packages)
}

func TestConfig_ResolvedPackages(t *testing.T) {
	cfg := &Config{Packages: []string{"./store"}}

	assert.Equal(t, []string{"./store"}, cfg.ResolvedPackages(nil))
	assert.Equal(t, []string{"./other"}, cfg.ResolvedPackages([]string{"./other"}))
}

func TestConfig_PersistenceOptions(t *testing.T) {
	cfg := &Config{Mapping: MappingConfig{Conventions: "snake"}}

	opts, err := cfg.PersistenceOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 4)

	cfg.Mapping.Conventions = "kebab"

	_, err = cfg.PersistenceOptions()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kebab")
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain", errors.New("boom"), ExitGeneral},
		{"config", ConfigError("loading configuration", errors.New("bad")), ExitConfig},
		{"mapping", MappingError("compiling mappings", nil), ExitMapping},
		{"load", LoadError("loading packages", nil), ExitLoad},
		{"general", GeneralError("writing", nil), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestExitError_Message(t *testing.T) {
	cause := errors.New("bad yaml")
	err := ConfigError("loading configuration", cause)

	assert.Equal(t, "loading configuration: bad yaml", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "compiling mappings", MappingError("compiling mappings", nil).Error())
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, logger.LogLevelWarning, LogLevel(0, false))
	assert.Equal(t, logger.LogLevelInfo, LogLevel(1, false))
	assert.Equal(t, logger.LogLevelVerbose, LogLevel(2, false))
	assert.Equal(t, logger.LogLevelTrace, LogLevel(5, false))
	assert.Equal(t, logger.LogLevelError, LogLevel(3, true))
}
