package models

// ModelMetadata represents an annotated persistable model struct
type ModelMetadata struct {
	BaseMetadataTrait
	SourceTrait
	ModelName   string             // persisted name, annotation -Name or the struct name
	Description string             // documentation text
	Strict      bool               // undeclared properties are rejected on writes
	Properties  []PropertyMetadata // annotated fields in declaration order
}

// PropertyMetadata represents one annotated model field
type PropertyMetadata struct {
	FieldName   string    // Go field name
	JSONName    string    // wire name from the json struct tag, FieldName when untagged
	GoType      string    // declared Go type of the field
	Type        string    // canonical property type token, empty requests inference
	Items       string    // item type token for array properties
	ID          bool      // field is the model identifier
	Generated   bool      // value is produced by the data source
	Required    bool      // field must be present on writes
	Indexed     bool      // data source index requested
	Unique      bool      // unique data source index requested
	Default     string    // default value applied when absent
	Description string    // documentation text
	Source      SourceRef // declaration site
}
