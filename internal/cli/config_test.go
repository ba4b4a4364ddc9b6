package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir switches into dir for the duration of the test
func chdir(t *testing.T, dir string) {
	t.Helper()
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(originalDir) })
}

func TestLoadConfig_Defaults(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "gild_config_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)
	chdir(t, tempDir)

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, []string{"./..."}, config.Directories)
	assert.Empty(t, config.ModuleName)
	assert.False(t, config.Verbose)
	assert.False(t, config.Quiet)
	assert.Equal(t, "API", config.Document.Title)
	assert.Equal(t, "0.1.0", config.Document.Version)
	assert.Equal(t, "openapi.json", config.Document.Output)
}

func TestLoadConfig_FileInWorkingDirectory(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "gild_config_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	configYAML := `directories:
  - ./internal/...
  - ./pkg/api
module: example.com/bookshop
document:
  title: Bookshop API
  version: 2.0.0
  description: Catalog and ordering.
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "gild.yaml"), []byte(configYAML), 0644))
	chdir(t, tempDir)

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, []string{"./internal/...", "./pkg/api"}, config.Directories)
	assert.Equal(t, "example.com/bookshop", config.ModuleName)
	assert.Equal(t, "Bookshop API", config.Document.Title)
	assert.Equal(t, "2.0.0", config.Document.Version)
	assert.Equal(t, "Catalog and ordering.", config.Document.Description)
	// Keys the file does not set keep their defaults
	assert.Equal(t, "openapi.json", config.Document.Output)
}

func TestLoadConfig_ExplicitPath(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "gild_config_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	configPath := filepath.Join(tempDir, "custom.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("module: example.com/custom\n"), 0644))

	config, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, "example.com/custom", config.ModuleName)
}

func TestLoadConfig_ExplicitPathMissing(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "gild_config_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	_, err = LoadConfig(filepath.Join(tempDir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EnvironmentOverride(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "gild_config_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)
	chdir(t, tempDir)

	t.Setenv("GILD_MODULE", "example.com/from-env")
	t.Setenv("GILD_DOCUMENT_TITLE", "Env API")

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "example.com/from-env", config.ModuleName)
	assert.Equal(t, "Env API", config.Document.Title)
}

func TestLoadConfig_VerboseQuietConflict(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "gild_config_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	configYAML := "verbose: true\nquiet: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "gild.yaml"), []byte(configYAML), 0644))
	chdir(t, tempDir)

	_, err = LoadConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "verbose and quiet")
}
