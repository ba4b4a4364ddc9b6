package models

// RepositoryMetadata represents an annotated repository struct bound to the
// model it persists
type RepositoryMetadata struct {
	BaseMetadataTrait
	SourceTrait
	ModelName  string // model type the repository persists
	DataSource string // named backing store, "default" unless overridden
}
