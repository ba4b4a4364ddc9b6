package repository

import (
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"

	"github.com/gildlabs/gild/pkg/gild"
)

// ModelSpec is the model metadata payload attached to a model class
type ModelSpec struct {
	Name        string // Override for the persisted model name, default class name
	Description string
	Strict      bool // Reject properties outside the declared set
	Settings    map[string]interface{}
}

// Model creates an empty model spec
func Model() *ModelSpec {
	return &ModelSpec{}
}

// WithName overrides the persisted model name
func (m *ModelSpec) WithName(name string) *ModelSpec {
	m.Name = name
	return m
}

// WithDescription sets the model description
func (m *ModelSpec) WithDescription(description string) *ModelSpec {
	m.Description = description
	return m
}

// AsStrict marks the model strict
func (m *ModelSpec) AsStrict() *ModelSpec {
	m.Strict = true
	return m
}

// WithSetting attaches one free-form model setting
func (m *ModelSpec) WithSetting(name string, value interface{}) *ModelSpec {
	if m.Settings == nil {
		m.Settings = make(map[string]interface{})
	}
	m.Settings[name] = value
	return m
}

// Kind reports the model metadata kind
func (m *ModelSpec) Kind() gild.Kind { return gild.KindModel }

// Apply records the spec on the class site
func (m *ModelSpec) Apply(reg gild.MetadataRegistry, site gild.Site) error {
	return reg.Annotate(site.ClassSite(), m)
}

// PropertySpec is the property metadata payload attached to a property site.
//
// A spec with Infer set records that the property type was omitted and should
// be derived from the Go field type by the consumer.
type PropertySpec struct {
	Type        PropertyType
	ItemType    PropertyType // Element type for array properties
	ID          bool         // Identifier property
	Generated   bool         // Value produced by the datasource
	Required    bool
	Index       bool // Plain secondary index
	Unique      bool // Unique index
	Default     interface{}
	Description string
	Infer       bool // Type omitted, derive from the Go field
}

// Property creates a property spec with the type left to inference
func Property() *PropertySpec {
	return &PropertySpec{Infer: true}
}

// PropertyOf creates a property spec with an explicit type
func PropertyOf(propertyType PropertyType) *PropertySpec {
	return &PropertySpec{Type: propertyType}
}

// ArrayPropertyOf creates an array property spec with the given element type
func ArrayPropertyOf(itemType PropertyType) *PropertySpec {
	return &PropertySpec{Type: TypeArray, ItemType: itemType}
}

// AsID marks the property as the model identifier
func (p *PropertySpec) AsID() *PropertySpec {
	p.ID = true
	return p
}

// AsGenerated marks the property value as datasource generated
func (p *PropertySpec) AsGenerated() *PropertySpec {
	p.Generated = true
	return p
}

// AsRequired marks the property required
func (p *PropertySpec) AsRequired() *PropertySpec {
	p.Required = true
	return p
}

// Indexed requests a secondary index on the property
func (p *PropertySpec) Indexed() *PropertySpec {
	p.Index = true
	return p
}

// UniqueIndexed requests a unique index on the property
func (p *PropertySpec) UniqueIndexed() *PropertySpec {
	p.Unique = true
	return p
}

// WithDefault sets the property default value
func (p *PropertySpec) WithDefault(value interface{}) *PropertySpec {
	p.Default = value
	return p
}

// WithDescription sets the property description
func (p *PropertySpec) WithDescription(description string) *PropertySpec {
	p.Description = description
	return p
}

// Kind reports the property metadata kind
func (p *PropertySpec) Kind() gild.Kind { return gild.KindProperty }

// Apply records the spec on a property site
func (p *PropertySpec) Apply(reg gild.MetadataRegistry, site gild.Site) error {
	return reg.Annotate(site, p)
}

// Well-known Go types with a direct property type mapping
var (
	timeType = reflect.TypeOf(time.Time{})
	uuidType = reflect.TypeOf(uuid.UUID{})
)

// InferProperty derives the property type for a Go field type. It implements
// the defaulting rule for property specs stored with the inference sentinel.
func InferProperty(t reflect.Type) (PropertyType, error) {
	if t == nil {
		return 0, fmt.Errorf("cannot infer a property type for a nil type")
	}
	switch t {
	case timeType:
		return TypeDate, nil
	case uuidType:
		return TypeString, nil
	}
	switch t.Kind() {
	case reflect.Bool:
		return TypeBoolean, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return TypeInteger, nil
	case reflect.Float32, reflect.Float64:
		return TypeNumber, nil
	case reflect.String:
		return TypeString, nil
	case reflect.Ptr:
		return InferProperty(t.Elem())
	case reflect.Slice, reflect.Array:
		return TypeArray, nil
	case reflect.Map, reflect.Struct:
		return TypeObject, nil
	default:
		return 0, fmt.Errorf("cannot infer a property type for Go kind %s", t.Kind())
	}
}

// ResolveType returns the property type, running inference against the given
// Go type when the spec carries the omitted-type sentinel
func (p *PropertySpec) ResolveType(goType reflect.Type) (PropertyType, error) {
	if !p.Infer {
		return p.Type, nil
	}
	return InferProperty(goType)
}

// RepositorySpec is the repository metadata payload attached to a repository
// class: which model it serves and which datasource backs it. Persistence
// behavior belongs to the data access layer consuming this.
type RepositorySpec struct {
	Model      string
	DataSource string
}

// For creates a repository spec binding a model to a datasource
func For(model, dataSource string) *RepositorySpec {
	return &RepositorySpec{Model: model, DataSource: dataSource}
}

// Kind reports the repository metadata kind
func (r *RepositorySpec) Kind() gild.Kind { return gild.KindRepository }

// Validate checks the spec names a model and a datasource
func (r *RepositorySpec) Validate() error {
	if r.Model == "" {
		return fmt.Errorf("repository spec needs a model name")
	}
	if r.DataSource == "" {
		return fmt.Errorf("repository spec needs a datasource name")
	}
	return nil
}

// Apply records the spec on the class site
func (r *RepositorySpec) Apply(reg gild.MetadataRegistry, site gild.Site) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("repository at %s: %w", site, err)
	}
	return reg.Annotate(site.ClassSite(), r)
}

// RelationSpec is the relation metadata payload. The full relation surface
// types and parses, but registration is not available: every path into the
// registry fails with an unsupported error.
type RelationSpec struct {
	Type       RelationType
	Target     string // Related model
	Through    string // Join model for hasManyThrough
	ForeignKey string
}

// Relation creates a relation spec of the given type targeting a model
func Relation(relationType RelationType, target string) *RelationSpec {
	return &RelationSpec{Type: relationType, Target: target}
}

// ThroughModel sets the join model for a hasManyThrough relation
func (r *RelationSpec) ThroughModel(join string) *RelationSpec {
	r.Through = join
	return r
}

// WithForeignKey sets the foreign key property name
func (r *RelationSpec) WithForeignKey(key string) *RelationSpec {
	r.ForeignKey = key
	return r
}

// Kind reports the relation metadata kind
func (r *RelationSpec) Kind() gild.Kind { return gild.KindRelation }

// Apply always fails: relation registration is not available yet. The error
// is the same one the registry itself returns for relation payloads.
func (r *RelationSpec) Apply(reg gild.MetadataRegistry, site gild.Site) error {
	return &gild.UnsupportedError{
		Feature: fmt.Sprintf("%s relation registration", r.Type),
		Site:    site.ClassSite(),
		Hint:    "Define the relation on the data access layer directly until relation metadata is released",
	}
}
