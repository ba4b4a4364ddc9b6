package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/gildlabs/gild/internal/utils"
)

// DirectoryScanner expands directory patterns into the concrete package
// directories a generation run will parse.
type DirectoryScanner struct{}

// NewDirectoryScanner creates a scanner
func NewDirectoryScanner() *DirectoryScanner {
	return &DirectoryScanner{}
}

// Scan expands each pattern and returns the matched directories in first-seen
// order. A trailing /... matches the directory and everything below it; a
// plain path matches only itself. Directories without Go source files are
// dropped.
func (s *DirectoryScanner) Scan(patterns []string) ([]string, error) {
	var dirs []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		matched, err := s.expand(pattern)
		if err != nil {
			return nil, err
		}
		for _, dir := range matched {
			if seen[dir] {
				continue
			}
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}

	return dirs, nil
}

func (s *DirectoryScanner) expand(pattern string) ([]string, error) {
	if strings.HasSuffix(pattern, "/...") {
		root := strings.TrimSuffix(pattern, "/...")
		if root == "" {
			root = "."
		}
		if _, err := os.Stat(root); err != nil {
			return nil, fmt.Errorf("directory %s does not exist", root)
		}
		return utils.ScanDirectoriesWithGoFiles([]string{root})
	}

	info, err := os.Stat(pattern)
	if err != nil {
		return nil, fmt.Errorf("directory %s does not exist", pattern)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", pattern)
	}

	hasGo, err := utils.HasGoFiles(pattern)
	if err != nil {
		return nil, err
	}
	if !hasGo {
		return nil, nil
	}
	return []string{pattern}, nil
}
