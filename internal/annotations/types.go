package annotations

import "fmt"

// AnnotationType represents the kind of annotation
type AnnotationType int

const (
	ControllerAnnotation AnnotationType = iota
	RouteAnnotation
	ParamAnnotation
	BodyAnnotation
	InjectAnnotation
	AuthenticateAnnotation
	ModelAnnotation
	PropertyAnnotation
	RepositoryAnnotation
	RelationAnnotation
)

// String returns the string representation of the annotation type
func (a AnnotationType) String() string {
	switch a {
	case ControllerAnnotation:
		return "controller"
	case RouteAnnotation:
		return "route"
	case ParamAnnotation:
		return "param"
	case BodyAnnotation:
		return "body"
	case InjectAnnotation:
		return "inject"
	case AuthenticateAnnotation:
		return "authenticate"
	case ModelAnnotation:
		return "model"
	case PropertyAnnotation:
		return "property"
	case RepositoryAnnotation:
		return "repository"
	case RelationAnnotation:
		return "relation"
	default:
		return "unknown"
	}
}

// ParseAnnotationType converts a kind string to an AnnotationType
func ParseAnnotationType(s string) (AnnotationType, error) {
	switch s {
	case "controller":
		return ControllerAnnotation, nil
	case "route":
		return RouteAnnotation, nil
	case "param":
		return ParamAnnotation, nil
	case "body":
		return BodyAnnotation, nil
	case "inject":
		return InjectAnnotation, nil
	case "authenticate":
		return AuthenticateAnnotation, nil
	case "model":
		return ModelAnnotation, nil
	case "property":
		return PropertyAnnotation, nil
	case "repository":
		return RepositoryAnnotation, nil
	case "relation":
		return RelationAnnotation, nil
	default:
		return 0, fmt.Errorf("unknown annotation kind: %s", s)
	}
}

// SourceLocation represents the location of an annotation in source code
type SourceLocation struct {
	File   string // File path
	Line   int    // Line number (1-based)
	Column int    // Column number (1-based)
}

// ParsedAnnotation represents a fully parsed annotation with typed parameters
type ParsedAnnotation struct {
	Type       AnnotationType         // Annotation kind
	Target     string                 // Declaration the annotation is attached to
	Parameters map[string]interface{} // Typed parameters, positional and named
	Location   SourceLocation         // Source location
	Raw        string                 // Original annotation text
}

// GetString returns a string parameter value with optional default
func (p *ParsedAnnotation) GetString(paramName string, defaultValue ...string) string {
	if value, exists := p.Parameters[paramName]; exists {
		if strValue, ok := value.(string); ok {
			return strValue
		}
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

// GetBool returns a boolean parameter value with optional default
func (p *ParsedAnnotation) GetBool(paramName string, defaultValue ...bool) bool {
	if value, exists := p.Parameters[paramName]; exists {
		if boolValue, ok := value.(bool); ok {
			return boolValue
		}
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return false
}

// GetInt returns an integer parameter value with optional default
func (p *ParsedAnnotation) GetInt(paramName string, defaultValue ...int) int {
	if value, exists := p.Parameters[paramName]; exists {
		if intValue, ok := value.(int); ok {
			return intValue
		}
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return 0
}

// GetStringSlice returns a string slice parameter value with optional default
func (p *ParsedAnnotation) GetStringSlice(paramName string, defaultValue ...[]string) []string {
	if value, exists := p.Parameters[paramName]; exists {
		if sliceValue, ok := value.([]string); ok {
			return sliceValue
		}
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return nil
}

// HasParameter checks if a parameter exists
func (p *ParsedAnnotation) HasParameter(paramName string) bool {
	_, exists := p.Parameters[paramName]
	return exists
}

// ParameterType represents the type of a parameter
type ParameterType int

const (
	StringType ParameterType = iota
	BoolType
	IntType
	StringSliceType
)

// String returns the string representation of the parameter type
func (p ParameterType) String() string {
	switch p {
	case StringType:
		return "string"
	case BoolType:
		return "bool"
	case IntType:
		return "int"
	case StringSliceType:
		return "[]string"
	default:
		return "unknown"
	}
}

// ParameterSpec defines the specification for an annotation parameter
type ParameterSpec struct {
	Type         ParameterType           // Parameter type
	Required     bool                    // Whether parameter is required
	DefaultValue interface{}             // Default value if not provided
	Description  string                  // Parameter description
	Validator    func(interface{}) error // Custom validator function
}

// CustomValidator represents a whole-annotation validation function
type CustomValidator func(*ParsedAnnotation) error

// AnnotationSchema defines the schema for an annotation kind
type AnnotationSchema struct {
	Type        AnnotationType           // Annotation kind
	Description string                   // Human-readable description
	Parameters  map[string]ParameterSpec // Parameter specifications
	Validators  []CustomValidator        // Whole-annotation validation functions
	Examples    []string                 // Usage examples
}
