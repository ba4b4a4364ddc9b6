package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// GeneratedFileName is the name of the file the generator writes into each
// annotated package
const GeneratedFileName = "gild_autogen.go"

// FileFilter decides whether a file should be processed
type FileFilter func(path string, entry os.DirEntry) bool

// DirectoryFilter decides whether a directory should be descended into
type DirectoryFilter func(path string, entry os.DirEntry) bool

// SourceGoFileFilter matches hand-written .go files, excluding tests and
// generated output
func SourceGoFileFilter() FileFilter {
	return func(path string, entry os.DirEntry) bool {
		if entry.IsDir() {
			return false
		}

		name := entry.Name()
		return strings.HasSuffix(name, ".go") &&
			!strings.HasSuffix(name, "_test.go") &&
			name != GeneratedFileName
	}
}

// SourceDirectoryFilter skips directories that never hold scannable source
func SourceDirectoryFilter() DirectoryFilter {
	skipDirs := map[string]bool{
		"vendor":       true,
		"node_modules": true,
		".git":         true,
		"testdata":     true,
		"build":        true,
		"dist":         true,
	}

	return func(path string, entry os.DirEntry) bool {
		if !entry.IsDir() {
			return true
		}

		name := entry.Name()
		if strings.HasPrefix(name, ".") && name != "." && name != ".." {
			return false
		}
		if strings.HasPrefix(name, "_") {
			return false
		}

		return !skipDirs[name]
	}
}

// ScanDirectoriesWithGoFiles walks the given roots and returns every
// directory that contains at least one non-generated Go source file
func ScanDirectoriesWithGoFiles(rootDirs []string) ([]string, error) {
	var packageDirs []string
	visited := make(map[string]bool)

	for _, rootDir := range rootDirs {
		dirs, err := scanDirectoryRecursive(rootDir, visited)
		if err != nil {
			return nil, err
		}
		packageDirs = append(packageDirs, dirs...)
	}

	return packageDirs, nil
}

func scanDirectoryRecursive(dir string, visited map[string]bool) ([]string, error) {
	// Resolve to an absolute path so symlink cycles terminate
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, WrapProcessError(fmt.Sprintf("path resolution %s", dir), err)
	}

	if visited[absDir] {
		return nil, nil
	}
	visited[absDir] = true

	var packageDirs []string

	hasGoFiles, err := HasGoFiles(dir)
	if err != nil {
		return nil, WrapProcessError(fmt.Sprintf("Go file check in %s", dir), err)
	}
	if hasGoFiles {
		packageDirs = append(packageDirs, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, WrapProcessError(fmt.Sprintf("directory read %s", dir), err)
	}

	directoryFilter := SourceDirectoryFilter()

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		entryPath := filepath.Join(dir, entry.Name())
		if !directoryFilter(entryPath, entry) {
			continue
		}

		subDirs, err := scanDirectoryRecursive(entryPath, visited)
		if err != nil {
			return nil, err
		}
		packageDirs = append(packageDirs, subDirs...)
	}

	return packageDirs, nil
}

// HasGoFiles reports whether a directory contains any non-test, non-generated
// .go files
func HasGoFiles(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, err
	}

	fileFilter := SourceGoFileFilter()

	for _, entry := range entries {
		if fileFilter(filepath.Join(dir, entry.Name()), entry) {
			return true, nil
		}
	}

	return false, nil
}

// CleanGeneratedFiles removes generated output files from the given directory
// trees and returns the paths that were removed
func CleanGeneratedFiles(baseDirs []string) ([]string, error) {
	var removedFiles []string

	for _, baseDir := range baseDirs {
		startDir := baseDir
		if startDir == "" {
			startDir = "."
		}

		err := filepath.WalkDir(startDir, func(path string, entry os.DirEntry, err error) error {
			if err != nil {
				// Unreadable subtrees are skipped rather than aborting the clean
				return nil
			}
			if entry.IsDir() || entry.Name() != GeneratedFileName {
				return nil
			}

			if err := os.Remove(path); err != nil {
				return WrapProcessError(fmt.Sprintf("file removal %s", path), err)
			}
			removedFiles = append(removedFiles, path)
			return nil
		})
		if err != nil {
			return removedFiles, WrapProcessError(fmt.Sprintf("directory clean %s", baseDir), err)
		}
	}

	return removedFiles, nil
}
