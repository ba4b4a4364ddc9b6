package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gildlabs/gild/internal/utils"
)

// ModuleResolver determines the module import path and maps scanned package
// directories onto it.
type ModuleResolver struct {
	moduleName string
	moduleRoot string
}

// NewModuleResolver creates an unresolved resolver
func NewModuleResolver() *ModuleResolver {
	return &ModuleResolver{}
}

// ResolveModuleName returns the module path, preferring the explicit override
// and falling back to the nearest go.mod above the working directory. The
// directory holding go.mod becomes the module root for import path building;
// with an override and no go.mod the working directory is the root.
func (r *ModuleResolver) ResolveModuleName(custom string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to determine working directory: %w", err)
	}

	goModPath, findErr := utils.FindGoModFile(cwd)
	if findErr == nil {
		r.moduleRoot = filepath.Dir(goModPath)
	} else {
		r.moduleRoot = cwd
	}

	if custom != "" {
		r.moduleName = custom
		return custom, nil
	}

	if findErr != nil {
		return "", fmt.Errorf("no go.mod found from %s upward, pass --module to set the import path", cwd)
	}

	name, err := utils.ParseModuleName(goModPath)
	if err != nil {
		return "", err
	}
	r.moduleName = name
	return name, nil
}

// BuildPackagePath returns the import path of the package in the given
// directory. The directory must sit inside the module root.
func (r *ModuleResolver) BuildPackagePath(dir string) (string, error) {
	if r.moduleName == "" {
		return "", fmt.Errorf("module name has not been resolved")
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	rel, err := filepath.Rel(r.moduleRoot, absDir)
	if err != nil {
		return "", fmt.Errorf("failed to locate %s under module root %s: %w", dir, r.moduleRoot, err)
	}
	if rel == "." {
		return r.moduleName, nil
	}
	if strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("directory %s lies outside the module root %s", dir, r.moduleRoot)
	}

	return r.moduleName + "/" + filepath.ToSlash(rel), nil
}
