package generator

import (
	"fmt"
	"strings"

	"github.com/gildlabs/gild/internal/models"
)

// modelLocation records where one annotated model struct was scanned
type modelLocation struct {
	model       *models.ModelMetadata
	packageName string
	importPath  string
}

// modelIndex resolves body model references across every package of a
// generation run
type modelIndex struct {
	byStruct map[string][]modelLocation
}

func indexModels(pkgs []*models.PackageMetadata) *modelIndex {
	index := &modelIndex{byStruct: make(map[string][]modelLocation)}
	for _, pkg := range pkgs {
		if pkg == nil {
			continue
		}
		for i := range pkg.Models {
			model := &pkg.Models[i]
			index.byStruct[model.StructName] = append(index.byStruct[model.StructName], modelLocation{
				model:       model,
				packageName: pkg.PackageName,
				importPath:  pkg.ImportPath,
			})
		}
	}
	return index
}

// modelRef is a resolved model reference, expressed for the generated file
// of one package
type modelRef struct {
	expr       string                // composite literal for the model type
	alias      string                // import alias, empty for same-package references
	importPath string                // import backing the alias, empty for same-package
	model      *models.ModelMetadata // scanned metadata, nil for plain struct types
}

// resolve maps an annotated model name to a Go expression valid in the
// generated file of pkg. Qualified names must match a scanned package; bare
// names prefer the package's own declarations, then a unique declaration
// elsewhere, and otherwise pass through for the compiler to check.
func (ix *modelIndex) resolve(name string, pkg *models.PackageMetadata) (modelRef, error) {
	if qualifier, base, qualified := strings.Cut(name, "."); qualified {
		for _, loc := range ix.byStruct[base] {
			if loc.packageName != qualifier {
				continue
			}
			if loc.importPath == pkg.ImportPath {
				return modelRef{expr: base + "{}", model: loc.model}, nil
			}
			return modelRef{expr: name + "{}", alias: qualifier, importPath: loc.importPath, model: loc.model}, nil
		}
		return modelRef{}, fmt.Errorf("body model %s does not match any scanned gild::model", name)
	}

	locations := ix.byStruct[name]
	for _, loc := range locations {
		if loc.importPath == pkg.ImportPath {
			return modelRef{expr: name + "{}", model: loc.model}, nil
		}
	}
	switch len(locations) {
	case 0:
		// A plain struct in the annotated package; the compiler verifies it
		return modelRef{expr: name + "{}"}, nil
	case 1:
		loc := locations[0]
		return modelRef{
			expr:       loc.packageName + "." + name + "{}",
			alias:      loc.packageName,
			importPath: loc.importPath,
			model:      loc.model,
		}, nil
	default:
		return modelRef{}, fmt.Errorf("body model %s is declared in %d packages; qualify it with its package name", name, len(locations))
	}
}
