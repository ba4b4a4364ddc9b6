package generator

import (
	"encoding/json"

	"github.com/gildlabs/gild/internal/models"
	"github.com/gildlabs/gild/pkg/gild"
	"github.com/gildlabs/gild/pkg/gild/openapi"
)

// BuildRegistry populates a fresh registry with the scanned metadata and
// freezes it for reading
func BuildRegistry(pkgs ...*models.PackageMetadata) (gild.MetadataRegistry, error) {
	reg := gild.NewRegistry()
	if err := Populate(reg, pkgs...); err != nil {
		return nil, err
	}
	reg.Freeze()
	return reg, nil
}

// RenderDocument builds the OpenAPI document covering every scanned
// controller and renders it as indented JSON
func RenderDocument(info openapi.Info, pkgs ...*models.PackageMetadata) ([]byte, error) {
	reg, err := BuildRegistry(pkgs...)
	if err != nil {
		return nil, err
	}

	var classes []gild.Site
	for _, pkg := range pkgs {
		if pkg == nil {
			continue
		}
		for i := range pkg.Controllers {
			classes = append(classes, gild.Class(pkg.Controllers[i].StructName))
		}
	}

	document, err := openapi.BuildDocument(reg, info, classes...)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
