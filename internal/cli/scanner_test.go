package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scannerFixture builds this tree and returns its root:
//
//	controllers/user_controller.go
//	controllers/auth_controller.go
//	services/user_service.go
//	services/subservice/helper.go
//	models/user.go
//	vendor/dependency.go   (skipped by scanning)
//	empty_dir/             (no Go files)
func scannerFixture(t *testing.T) string {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "gild_scanner_test")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	dirs := []string{
		filepath.Join(tempDir, "controllers"),
		filepath.Join(tempDir, "services", "subservice"),
		filepath.Join(tempDir, "models"),
		filepath.Join(tempDir, "vendor"),
		filepath.Join(tempDir, "empty_dir"),
	}
	for _, dir := range dirs {
		require.NoError(t, os.MkdirAll(dir, 0755))
	}

	files := map[string]string{
		filepath.Join(tempDir, "controllers", "user_controller.go"):      "package controllers\n\ntype UserController struct{}\n",
		filepath.Join(tempDir, "controllers", "auth_controller.go"):      "package controllers\n\ntype AuthController struct{}\n",
		filepath.Join(tempDir, "controllers", "user_controller_test.go"): "package controllers\n",
		filepath.Join(tempDir, "services", "user_service.go"):            "package services\n\ntype UserService struct{}\n",
		filepath.Join(tempDir, "services", "subservice", "helper.go"):    "package subservice\n\ntype Helper struct{}\n",
		filepath.Join(tempDir, "models", "user.go"):                      "package models\n\ntype User struct{}\n",
		filepath.Join(tempDir, "vendor", "dependency.go"):                "package vendor\n\ntype Dependency struct{}\n",
	}
	for path, content := range files {
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	return tempDir
}

func TestDirectoryScanner_Scan(t *testing.T) {
	tempDir := scannerFixture(t)
	scanner := NewDirectoryScanner()

	t.Run("plain directory matches only itself", func(t *testing.T) {
		dirs, err := scanner.Scan([]string{filepath.Join(tempDir, "services")})
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(tempDir, "services")}, dirs)
	})

	t.Run("plain directory without Go files is dropped", func(t *testing.T) {
		dirs, err := scanner.Scan([]string{filepath.Join(tempDir, "empty_dir")})
		require.NoError(t, err)
		assert.Empty(t, dirs)
	})

	t.Run("recursive pattern walks the whole tree", func(t *testing.T) {
		dirs, err := scanner.Scan([]string{tempDir + "/..."})
		require.NoError(t, err)

		assert.ElementsMatch(t, []string{
			filepath.Join(tempDir, "controllers"),
			filepath.Join(tempDir, "models"),
			filepath.Join(tempDir, "services"),
			filepath.Join(tempDir, "services", "subservice"),
		}, dirs)
		assert.NotContains(t, dirs, filepath.Join(tempDir, "vendor"))
		assert.NotContains(t, dirs, filepath.Join(tempDir, "empty_dir"))
	})

	t.Run("relative recursive pattern", func(t *testing.T) {
		chdir(t, tempDir)

		dirs, err := scanner.Scan([]string{"./..."})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{
			"controllers",
			"models",
			"services",
			filepath.Join("services", "subservice"),
		}, dirs)
	})

	t.Run("subtree pattern", func(t *testing.T) {
		chdir(t, tempDir)

		dirs, err := scanner.Scan([]string{"services/..."})
		require.NoError(t, err)
		assert.Equal(t, []string{"services", filepath.Join("services", "subservice")}, dirs)
	})

	t.Run("duplicate matches collapse", func(t *testing.T) {
		controllersDir := filepath.Join(tempDir, "controllers")
		dirs, err := scanner.Scan([]string{controllersDir, controllersDir})
		require.NoError(t, err)
		assert.Equal(t, []string{controllersDir}, dirs)
	})

	t.Run("missing directory errors", func(t *testing.T) {
		_, err := scanner.Scan([]string{filepath.Join(tempDir, "missing")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("missing recursive root errors", func(t *testing.T) {
		_, err := scanner.Scan([]string{filepath.Join(tempDir, "missing") + "/..."})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("file instead of directory errors", func(t *testing.T) {
		_, err := scanner.Scan([]string{filepath.Join(tempDir, "models", "user.go")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is not a directory")
	})
}
