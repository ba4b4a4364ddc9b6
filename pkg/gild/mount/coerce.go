package mount

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gildlabs/gild/pkg/gild/openapi"
)

// Coercer converts one raw request value into its typed form
type Coercer func(raw string) (interface{}, error)

// CoercerSet maps schema type and format pairs to coercers. Lookup tries the
// exact "type/format" pair first, then falls back to the bare type.
type CoercerSet struct {
	mu       sync.RWMutex
	coercers map[string]Coercer
}

// NewCoercerSet creates a set preloaded with the built-in coercers
func NewCoercerSet() *CoercerSet {
	s := &CoercerSet{coercers: make(map[string]Coercer)}
	for key, fn := range builtinCoercers {
		s.coercers[key] = fn
	}
	return s
}

// Register adds or replaces the coercer for a type and format. An empty
// format registers the fallback for the type.
func (s *CoercerSet) Register(schemaType, format string, fn Coercer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coercers[coercerKey(schemaType, format)] = fn
}

// Lookup finds the coercer for a schema
func (s *CoercerSet) Lookup(schema *openapi.Schema) (Coercer, bool) {
	if schema == nil {
		return coerceString, true
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if fn, ok := s.coercers[coercerKey(schema.Type, schema.Format)]; ok {
		return fn, true
	}
	if fn, ok := s.coercers[coercerKey(schema.Type, "")]; ok {
		return fn, true
	}
	return nil, false
}

// CoerceValue converts a single raw value according to the schema
func (s *CoercerSet) CoerceValue(schema *openapi.Schema, raw string) (interface{}, error) {
	fn, ok := s.Lookup(schema)
	if !ok {
		return nil, fmt.Errorf("no coercer registered for type %q format %q", schema.Type, schema.Format)
	}
	return fn(raw)
}

// CoerceParam reads a declared parameter from the request and converts it.
// Missing optional parameters return nil with no error; missing required
// parameters return an error.
func (s *CoercerSet) CoerceParam(c Ctx, spec *openapi.ParameterSpec) (interface{}, error) {
	switch spec.In {
	case openapi.InPath:
		raw := c.PathParam(spec.Name)
		if raw == "" {
			return nil, fmt.Errorf("missing path parameter %q", spec.Name)
		}
		return s.CoerceValue(spec.Schema, raw)

	case openapi.InQuery:
		values := c.QueryValues(spec.Name)
		if len(values) == 0 {
			if spec.Required {
				return nil, fmt.Errorf("missing required query parameter %q", spec.Name)
			}
			return nil, nil
		}
		if spec.Schema != nil && spec.Schema.Type == "array" {
			return s.coerceArray(spec.Schema.Items, values)
		}
		return s.CoerceValue(spec.Schema, values[0])

	case openapi.InHeader:
		raw := c.Header(spec.Name)
		if raw == "" {
			if spec.Required {
				return nil, fmt.Errorf("missing required header %q", spec.Name)
			}
			return nil, nil
		}
		return s.CoerceValue(spec.Schema, raw)

	default:
		return nil, fmt.Errorf("cannot read parameter %q from location %q", spec.Name, spec.In)
	}
}

// coerceArray converts repeated query values. A single value containing
// commas is split, so both ?tag=a&tag=b and ?tag=a,b work.
func (s *CoercerSet) coerceArray(items *openapi.Schema, values []string) (interface{}, error) {
	if len(values) == 1 && strings.Contains(values[0], ",") {
		values = strings.Split(values[0], ",")
	}

	out := make([]interface{}, 0, len(values))
	for _, raw := range values {
		v, err := s.CoerceValue(items, strings.TrimSpace(raw))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func coercerKey(schemaType, format string) string {
	return schemaType + "/" + format
}

var builtinCoercers = map[string]Coercer{
	coercerKey("string", ""):          coerceString,
	coercerKey("string", "uuid"):      coerceUUID,
	coercerKey("string", "date-time"): coerceDateTime,
	coercerKey("integer", ""):         coerceInt64,
	coercerKey("integer", "int64"):    coerceInt64,
	coercerKey("integer", "int32"):    coerceInt32,
	coercerKey("number", ""):          coerceFloat64,
	coercerKey("number", "double"):    coerceFloat64,
	coercerKey("number", "float"):     coerceFloat32,
	coercerKey("boolean", ""):         coerceBool,
}

func coerceString(raw string) (interface{}, error) {
	return raw, nil
}

func coerceUUID(raw string) (interface{}, error) {
	return uuid.Parse(raw)
}

func coerceDateTime(raw string) (interface{}, error) {
	return time.Parse(time.RFC3339, raw)
}

func coerceInt64(raw string) (interface{}, error) {
	return strconv.ParseInt(raw, 10, 64)
}

func coerceInt32(raw string) (interface{}, error) {
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return nil, err
	}
	return int32(v), nil
}

func coerceFloat64(raw string) (interface{}, error) {
	return strconv.ParseFloat(raw, 64)
}

func coerceFloat32(raw string) (interface{}, error) {
	v, err := strconv.ParseFloat(raw, 32)
	if err != nil {
		return nil, err
	}
	return float32(v), nil
}

func coerceBool(raw string) (interface{}, error) {
	return strconv.ParseBool(raw)
}
