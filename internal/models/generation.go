package models

// GeneratedFile represents one rendered registration file
type GeneratedFile struct {
	PackageName string // package the file belongs to
	ImportPath  string // import path of the package
	FilePath    string // where the file is written
	Content     string // rendered Go source
}

// RegistrationReference points at a package whose generated registration
// function the aggregated wiring must call
type RegistrationReference struct {
	PackageName string // package name, used as the import alias
	ImportPath  string // import path of the generated package
}
