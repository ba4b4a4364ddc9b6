package models

// PackageMetadata represents every annotated component found in one package
type PackageMetadata struct {
	PackageName  string               // name of the Go package
	PackagePath  string               // file system path to the package
	ImportPath   string               // import path within the module
	Controllers  []ControllerMetadata // controllers in declaration order
	Models       []ModelMetadata      // models in declaration order
	Repositories []RepositoryMetadata // repositories in declaration order
}

// HasAnnotations reports whether the package declares any component
func (p *PackageMetadata) HasAnnotations() bool {
	return len(p.Controllers) > 0 || len(p.Models) > 0 || len(p.Repositories) > 0
}

// Components returns every component in the package for uniform reporting
func (p *PackageMetadata) Components() []Metadata {
	var components []Metadata
	for i := range p.Controllers {
		components = append(components, &p.Controllers[i])
	}
	for i := range p.Models {
		components = append(components, &p.Models[i])
	}
	for i := range p.Repositories {
		components = append(components, &p.Repositories[i])
	}
	return components
}
