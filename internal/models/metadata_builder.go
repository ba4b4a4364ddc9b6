package models

// MetadataBuilder provides a fluent interface for assembling component
// metadata from scanned annotations
type MetadataBuilder struct {
	base       BaseMetadataTrait
	tags       *TagsTrait
	source     *SourceTrait
	auth       *AuthMetadata
	injections []InjectionMetadata
}

// NewMetadataBuilder creates a builder for a named component
func NewMetadataBuilder(name, structName string) *MetadataBuilder {
	return &MetadataBuilder{
		base: BaseMetadataTrait{
			Name:       name,
			StructName: structName,
		},
	}
}

// WithTags adds documentation tags
func (b *MetadataBuilder) WithTags(tags ...string) *MetadataBuilder {
	if b.tags == nil {
		b.tags = &TagsTrait{}
	}
	b.tags.Tags = append(b.tags.Tags, tags...)
	return b
}

// WithSource records the declaration site
func (b *MetadataBuilder) WithSource(source SourceRef) *MetadataBuilder {
	b.source = &SourceTrait{Source: source}
	return b
}

// WithAuthentication attaches a class-level authentication requirement
func (b *MetadataBuilder) WithAuthentication(auth *AuthMetadata) *MetadataBuilder {
	b.auth = auth
	return b
}

// WithInjections adds dependency injection requests
func (b *MetadataBuilder) WithInjections(injections ...InjectionMetadata) *MetadataBuilder {
	b.injections = append(b.injections, injections...)
	return b
}

// BuildController creates a ControllerMetadata
func (b *MetadataBuilder) BuildController(basePath, constructor string, routes []RouteMetadata) *ControllerMetadata {
	controller := &ControllerMetadata{
		BaseMetadataTrait: b.base,
		BasePath:          basePath,
		Constructor:       constructor,
		Authentication:    b.auth,
		Injections:        b.injections,
		Routes:            routes,
	}
	if b.tags != nil {
		controller.TagsTrait = *b.tags
	}
	if b.source != nil {
		controller.SourceTrait = *b.source
	}
	return controller
}

// BuildModel creates a ModelMetadata
func (b *MetadataBuilder) BuildModel(modelName, description string, strict bool, properties []PropertyMetadata) *ModelMetadata {
	model := &ModelMetadata{
		BaseMetadataTrait: b.base,
		ModelName:         modelName,
		Description:       description,
		Strict:            strict,
		Properties:        properties,
	}
	if b.source != nil {
		model.SourceTrait = *b.source
	}
	return model
}

// BuildRepository creates a RepositoryMetadata
func (b *MetadataBuilder) BuildRepository(modelName, dataSource string) *RepositoryMetadata {
	repository := &RepositoryMetadata{
		BaseMetadataTrait: b.base,
		ModelName:         modelName,
		DataSource:        dataSource,
	}
	if b.source != nil {
		repository.SourceTrait = *b.source
	}
	return repository
}
