package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gildlabs/gild/internal/utils"
)

// Cleaner removes generated registration files
type Cleaner struct {
	diagnostics *utils.DiagnosticSystem
}

// NewCleaner creates a cleaner reporting through the given diagnostics
func NewCleaner(diagnostics *utils.DiagnosticSystem) *Cleaner {
	return &Cleaner{diagnostics: diagnostics}
}

// Clean removes every generated file matched by the given patterns and
// returns the removed paths. Patterns follow the same /... convention as
// scanning; paths that do not exist are skipped.
func (c *Cleaner) Clean(patterns []string) ([]string, error) {
	var removed []string

	for _, pattern := range patterns {
		if strings.HasSuffix(pattern, "/...") {
			root := strings.TrimSuffix(pattern, "/...")
			if root == "" {
				root = "."
			}
			if _, err := os.Stat(root); err != nil {
				continue
			}
			files, err := utils.CleanGeneratedFiles([]string{root})
			if err != nil {
				return removed, err
			}
			removed = append(removed, files...)
			continue
		}

		path := filepath.Join(pattern, utils.GeneratedFileName)
		if err := os.Remove(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return removed, err
		}
		removed = append(removed, path)
	}

	for _, path := range removed {
		c.diagnostics.Progress("removed %s", path)
	}
	return removed, nil
}
