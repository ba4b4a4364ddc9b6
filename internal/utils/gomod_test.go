package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseModuleName(t *testing.T) {
	dir := t.TempDir()
	goModPath := filepath.Join(dir, "go.mod")
	content := "module github.com/example/bookstore\n\ngo 1.24\n"
	if err := os.WriteFile(goModPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	name, err := ParseModuleName(goModPath)
	if err != nil {
		t.Fatalf("ParseModuleName() = %v", err)
	}
	if name != "github.com/example/bookstore" {
		t.Errorf("ParseModuleName() = %q, want github.com/example/bookstore", name)
	}
}

func TestParseModuleNameErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := ParseModuleName(filepath.Join(dir, "notes.txt")); err == nil {
		t.Error("ParseModuleName() accepted a non-go.mod path")
	}

	if _, err := ParseModuleName(filepath.Join(dir, "go.mod")); err == nil {
		t.Error("ParseModuleName() succeeded on a missing file")
	}

	noModule := filepath.Join(dir, "go.mod")
	if err := os.WriteFile(noModule, []byte("go 1.24\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ParseModuleName(noModule); err == nil || !strings.Contains(err.Error(), "no module declaration") {
		t.Errorf("ParseModuleName() without module line = %v, want no-module error", err)
	}
}

func TestFindGoModFile(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "internal", "controllers")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	goModPath := filepath.Join(root, "go.mod")
	if err := os.WriteFile(goModPath, []byte("module example.com/app\n"), 0644); err != nil {
		t.Fatal(err)
	}

	found, err := FindGoModFile(nested)
	if err != nil {
		t.Fatalf("FindGoModFile() = %v", err)
	}
	if found != goModPath {
		t.Errorf("FindGoModFile() = %q, want %q", found, goModPath)
	}
}

func TestFindGoModFileNotFound(t *testing.T) {
	// A fresh temp dir has no go.mod anywhere up to the tmpfs root
	dir := t.TempDir()
	if _, err := FindGoModFile(dir); err == nil {
		t.Skip("go.mod unexpectedly present in a parent of TempDir")
	}
}
