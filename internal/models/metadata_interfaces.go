package models

// Metadata is the base interface for all component metadata types
type Metadata interface {
	GetName() string
	GetStructName() string
}

// Tagged represents components that carry documentation tags
type Tagged interface {
	GetTags() []string
}

// Located represents components whose declaration site is known
type Located interface {
	GetSource() SourceRef
}
