package openapi

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Schema is the canonical schema form stored in metadata payloads. It covers
// the subset of OpenAPI schemas the annotation surface can express and
// converts loss-free to an openapi3.Schema at document build time.
type Schema struct {
	Type                 string             `json:"type,omitempty"`
	Format               string             `json:"format,omitempty"`
	Name                 string             `json:"name,omitempty"` // Component name for hoisting
	Description          string             `json:"description,omitempty"`
	Nullable             bool               `json:"nullable,omitempty"`
	Enum                 []string           `json:"enum,omitempty"`
	Default              interface{}        `json:"default,omitempty"`
	Items                *Schema            `json:"items,omitempty"`
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties *Schema            `json:"additionalProperties,omitempty"`
}

// Canonical schema constructors. Shortcut builders expand through these, so a
// shortcut and the equivalent long form store identical payloads.

// StringSchema returns the canonical string schema
func StringSchema() *Schema { return &Schema{Type: "string"} }

// IntegerSchema returns the canonical integer schema
func IntegerSchema() *Schema { return &Schema{Type: "integer", Format: "int64"} }

// Int32Schema returns the canonical 32-bit integer schema
func Int32Schema() *Schema { return &Schema{Type: "integer", Format: "int32"} }

// NumberSchema returns the canonical number schema
func NumberSchema() *Schema { return &Schema{Type: "number", Format: "double"} }

// BooleanSchema returns the canonical boolean schema
func BooleanSchema() *Schema { return &Schema{Type: "boolean"} }

// DateTimeSchema returns the canonical RFC 3339 date-time schema
func DateTimeSchema() *Schema { return &Schema{Type: "string", Format: "date-time"} }

// UUIDSchema returns the canonical UUID string schema
func UUIDSchema() *Schema { return &Schema{Type: "string", Format: "uuid"} }

// ArrayOf returns the canonical array schema with the given item schema
func ArrayOf(items *Schema) *Schema { return &Schema{Type: "array", Items: items} }

// ObjectSchema returns an object schema with the given properties
func ObjectSchema(properties map[string]*Schema, required ...string) *Schema {
	return &Schema{Type: "object", Properties: properties, Required: required}
}

// Clone returns a deep copy of the schema
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	clone := *s
	clone.Items = s.Items.Clone()
	clone.AdditionalProperties = s.AdditionalProperties.Clone()
	if s.Properties != nil {
		clone.Properties = make(map[string]*Schema, len(s.Properties))
		for name, prop := range s.Properties {
			clone.Properties[name] = prop.Clone()
		}
	}
	if s.Enum != nil {
		clone.Enum = append([]string(nil), s.Enum...)
	}
	if s.Required != nil {
		clone.Required = append([]string(nil), s.Required...)
	}
	return &clone
}

// Well-known Go types mapped directly instead of walking their fields
var (
	timeType = reflect.TypeOf(time.Time{})
	uuidType = reflect.TypeOf(uuid.UUID{})
)

// InferSchema derives the canonical schema for a Go type. It implements the
// defaulting rule applied to payloads stored with an inference sentinel: the
// registry stores "schema omitted", consumers call InferSchema when they need
// the concrete shape.
func InferSchema(t reflect.Type) (*Schema, error) {
	return inferSchema(t, make(map[reflect.Type]bool))
}

func inferSchema(t reflect.Type, visiting map[reflect.Type]bool) (*Schema, error) {
	if t == nil {
		return nil, fmt.Errorf("cannot infer a schema for a nil type")
	}

	switch t {
	case timeType:
		return DateTimeSchema(), nil
	case uuidType:
		return UUIDSchema(), nil
	}

	switch t.Kind() {
	case reflect.Bool:
		return BooleanSchema(), nil
	case reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint32, reflect.Uint64:
		return IntegerSchema(), nil
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Uint8, reflect.Uint16:
		return Int32Schema(), nil
	case reflect.Float32:
		return &Schema{Type: "number", Format: "float"}, nil
	case reflect.Float64:
		return NumberSchema(), nil
	case reflect.String:
		return StringSchema(), nil
	case reflect.Ptr:
		inner, err := inferSchema(t.Elem(), visiting)
		if err != nil {
			return nil, err
		}
		inner.Nullable = true
		return inner, nil
	case reflect.Slice, reflect.Array:
		items, err := inferSchema(t.Elem(), visiting)
		if err != nil {
			return nil, err
		}
		return ArrayOf(items), nil
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return nil, fmt.Errorf("cannot infer a schema for map with %s keys", t.Key().Kind())
		}
		values, err := inferSchema(t.Elem(), visiting)
		if err != nil {
			return nil, err
		}
		return &Schema{Type: "object", AdditionalProperties: values}, nil
	case reflect.Struct:
		return inferStructSchema(t, visiting)
	case reflect.Interface:
		// Anything goes; an unconstrained schema
		return &Schema{}, nil
	default:
		return nil, fmt.Errorf("cannot infer a schema for Go kind %s", t.Kind())
	}
}

// inferStructSchema maps exported struct fields to object properties,
// honoring json tags for names, omission and optionality
func inferStructSchema(t reflect.Type, visiting map[reflect.Type]bool) (*Schema, error) {
	if visiting[t] {
		// Recursive type, refer to the component instead of expanding forever
		return &Schema{Name: t.Name(), Type: "object"}, nil
	}
	visiting[t] = true
	defer delete(visiting, t)

	schema := &Schema{Type: "object", Name: t.Name(), Properties: make(map[string]*Schema)}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		// Embedded structs without their own json tag flatten the way
		// encoding/json promotes their fields, exported type or not
		if field.Anonymous && field.Tag.Get("json") == "" {
			embeddedType := field.Type
			if embeddedType.Kind() == reflect.Ptr {
				embeddedType = embeddedType.Elem()
			}
			if embeddedType.Kind() == reflect.Struct {
				embedded, err := inferStructSchema(embeddedType, visiting)
				if err != nil {
					return nil, err
				}
				for name, prop := range embedded.Properties {
					schema.Properties[name] = prop
				}
				schema.Required = append(schema.Required, embedded.Required...)
				continue
			}
		}
		if !field.IsExported() {
			continue
		}

		name, optional, skip := jsonFieldName(field)
		if skip {
			continue
		}
		prop, err := inferSchema(field.Type, visiting)
		if err != nil {
			return nil, fmt.Errorf("field %s.%s: %w", t.Name(), field.Name, err)
		}
		schema.Properties[name] = prop
		if !optional && !prop.Nullable {
			schema.Required = append(schema.Required, name)
		}
	}
	// Stable required order for canonical comparison
	sort.Strings(schema.Required)
	return schema, nil
}

// jsonFieldName resolves the wire name of a struct field from its json tag
func jsonFieldName(field reflect.StructField) (name string, optional, skip bool) {
	tag := field.Tag.Get("json")
	if tag == "-" {
		return "", false, true
	}
	name = field.Name
	parts := strings.Split(tag, ",")
	if parts[0] != "" {
		name = parts[0]
	}
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			optional = true
		}
	}
	return name, optional, false
}
