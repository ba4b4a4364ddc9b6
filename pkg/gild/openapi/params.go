package openapi

import (
	"fmt"
	"reflect"

	"github.com/gildlabs/gild/pkg/gild"
)

// Parameter locations
const (
	InPath   = "path"
	InQuery  = "query"
	InHeader = "header"
	InCookie = "cookie" // Recognized but not supported
)

// ContentTypeJSON is the default request and response content type
const ContentTypeJSON = "application/json"

// ParameterSpec is the parameter metadata payload attached to one method
// parameter site
type ParameterSpec struct {
	Name        string
	In          string
	Required    bool
	Description string
	Deprecated  bool
	Schema      *Schema
}

// Kind reports the parameter metadata kind
func (p *ParameterSpec) Kind() gild.Kind { return gild.KindParameter }

// WithDescription sets the parameter description
func (p *ParameterSpec) WithDescription(description string) *ParameterSpec {
	p.Description = description
	return p
}

// AsRequired marks the parameter required
func (p *ParameterSpec) AsRequired() *ParameterSpec {
	p.Required = true
	return p
}

// MarkDeprecated flags the parameter as deprecated
func (p *ParameterSpec) MarkDeprecated() *ParameterSpec {
	p.Deprecated = true
	return p
}

// Validate checks the spec is complete and its location supported
func (p *ParameterSpec) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("parameter spec needs a name")
	}
	switch p.In {
	case InPath, InQuery, InHeader:
		return nil
	case InCookie:
		return &gild.UnsupportedError{
			Feature: "cookie parameters",
			Hint:    "Use a header parameter or read the cookie from the request directly",
		}
	default:
		return fmt.Errorf("parameter %s has unknown location %q", p.Name, p.In)
	}
}

// Apply records the spec on a method parameter site
func (p *ParameterSpec) Apply(reg gild.MetadataRegistry, site gild.Site) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return reg.Annotate(site, p)
}

// ParamShortcuts builds canonical parameter specs for one location. The
// shortcut forms expand through the canonical schema constructors, so
// Param.Query.Integer("limit") stores exactly the payload a hand-built
// ParameterSpec with IntegerSchema would.
type ParamShortcuts struct {
	in string
}

// Param groups the parameter shortcut builders by location
var Param = struct {
	Path   ParamShortcuts
	Query  ParamShortcuts
	Header ParamShortcuts
	Cookie ParamShortcuts
}{
	Path:   ParamShortcuts{in: InPath},
	Query:  ParamShortcuts{in: InQuery},
	Header: ParamShortcuts{in: InHeader},
	Cookie: ParamShortcuts{in: InCookie},
}

// With builds a parameter at this location with an explicit schema. Path
// parameters are always required.
func (l ParamShortcuts) With(name string, schema *Schema) *ParameterSpec {
	return &ParameterSpec{
		Name:     name,
		In:       l.in,
		Required: l.in == InPath,
		Schema:   schema,
	}
}

// String builds a string parameter
func (l ParamShortcuts) String(name string) *ParameterSpec {
	return l.With(name, StringSchema())
}

// Integer builds an integer parameter
func (l ParamShortcuts) Integer(name string) *ParameterSpec {
	return l.With(name, IntegerSchema())
}

// Number builds a floating point parameter
func (l ParamShortcuts) Number(name string) *ParameterSpec {
	return l.With(name, NumberSchema())
}

// Boolean builds a boolean parameter
func (l ParamShortcuts) Boolean(name string) *ParameterSpec {
	return l.With(name, BooleanSchema())
}

// DateTime builds an RFC 3339 date-time parameter
func (l ParamShortcuts) DateTime(name string) *ParameterSpec {
	return l.With(name, DateTimeSchema())
}

// UUID builds a UUID parameter
func (l ParamShortcuts) UUID(name string) *ParameterSpec {
	return l.With(name, UUIDSchema())
}

// Array builds an array parameter with the given item schema
func (l ParamShortcuts) Array(name string, items *Schema) *ParameterSpec {
	return l.With(name, ArrayOf(items))
}

// RequestBodySpec is the request body metadata payload attached to one method
// parameter site. At most one request body exists per method.
//
// A spec with a nil Schema and Infer set records that the schema was omitted
// and should be derived by the consumer: from Model when present, otherwise
// from whatever type information the consumer has.
type RequestBodySpec struct {
	Description string
	Required    bool
	ContentType string
	Schema      *Schema
	Infer       bool
	Model       reflect.Type `json:"-"`
}

// Kind reports the request body metadata kind
func (b *RequestBodySpec) Kind() gild.Kind { return gild.KindRequestBody }

// Body creates a request body spec with the schema left to inference
func Body() *RequestBodySpec {
	return &RequestBodySpec{ContentType: ContentTypeJSON, Required: true, Infer: true}
}

// BodyOf creates a request body spec whose schema is inferred from the Go
// type of model
func BodyOf(model interface{}) *RequestBodySpec {
	spec := Body()
	spec.Model = reflect.TypeOf(model)
	return spec
}

// BodyWithSchema creates a request body spec with an explicit schema
func BodyWithSchema(schema *Schema) *RequestBodySpec {
	return &RequestBodySpec{ContentType: ContentTypeJSON, Required: true, Schema: schema}
}

// WithDescription sets the request body description
func (b *RequestBodySpec) WithDescription(description string) *RequestBodySpec {
	b.Description = description
	return b
}

// AsOptional marks the request body optional
func (b *RequestBodySpec) AsOptional() *RequestBodySpec {
	b.Required = false
	return b
}

// WithContentType overrides the request body content type
func (b *RequestBodySpec) WithContentType(contentType string) *RequestBodySpec {
	b.ContentType = contentType
	return b
}

// ResolveSchema returns the schema, running inference when the spec carries
// the omitted-schema sentinel. A sentinel without a model resolves to the
// unconstrained schema.
func (b *RequestBodySpec) ResolveSchema() (*Schema, error) {
	if b.Schema != nil {
		return b.Schema, nil
	}
	if !b.Infer {
		return &Schema{}, nil
	}
	if b.Model == nil {
		return &Schema{}, nil
	}
	return InferSchema(b.Model)
}

// Apply records the spec on a method parameter site
func (b *RequestBodySpec) Apply(reg gild.MetadataRegistry, site gild.Site) error {
	return reg.Annotate(site, b)
}
