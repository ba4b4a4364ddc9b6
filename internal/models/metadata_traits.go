package models

// Composable trait structs embedded by the metadata types to share the
// fields every component kind carries

// BaseMetadataTrait provides component naming
type BaseMetadataTrait struct {
	Name       string // exported component name
	StructName string // name of the annotated struct
}

// GetName returns the component name
func (b *BaseMetadataTrait) GetName() string {
	return b.Name
}

// GetStructName returns the struct name
func (b *BaseMetadataTrait) GetStructName() string {
	return b.StructName
}

// TagsTrait provides documentation tag grouping
type TagsTrait struct {
	Tags []string // documentation tags
}

// GetTags returns the tags
func (t *TagsTrait) GetTags() []string {
	return t.Tags
}

// SourceTrait records where the component was declared
type SourceTrait struct {
	Source SourceRef // declaration site of the annotation
}

// GetSource returns the declaration site
func (s *SourceTrait) GetSource() SourceRef {
	return s.Source
}
