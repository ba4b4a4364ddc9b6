package annotations

import (
	"fmt"

	"github.com/gildlabs/gild/internal/utils"
)

// AnnotationRegistry defines the interface for managing annotation schemas
type AnnotationRegistry interface {
	// Register a new annotation kind with its schema
	Register(annotationType AnnotationType, schema AnnotationSchema) error

	// GetSchema retrieves the schema for an annotation kind
	GetSchema(annotationType AnnotationType) (AnnotationSchema, error)

	// ListTypes returns all registered annotation kinds
	ListTypes() []AnnotationType

	// IsRegistered checks if an annotation kind is registered
	IsRegistered(annotationType AnnotationType) bool
}

// registry is the concrete implementation of AnnotationRegistry
type registry struct {
	schemas *utils.BaseRegistry[AnnotationType, AnnotationSchema]
}

// NewRegistry creates a new, empty annotation registry
func NewRegistry() AnnotationRegistry {
	base := utils.NewBaseRegistry[AnnotationType, AnnotationSchema]("annotation schema", "annotation kind")
	base.SetValidator(utils.NoDuplicateValidator[AnnotationType, AnnotationSchema]("annotation kind"))
	return &registry{schemas: base}
}

// BuiltinRegistry returns a fresh registry with every builtin schema
// registered. The builtin schemas are package constants, so a registration
// failure is a schema definition bug and panics.
func BuiltinRegistry() AnnotationRegistry {
	r := NewRegistry()
	if err := RegisterBuiltinSchemas(r); err != nil {
		panic(fmt.Sprintf("annotations: builtin schema registration failed: %v", err))
	}
	return r
}

// Register adds a new annotation kind with its schema to the registry
func (r *registry) Register(annotationType AnnotationType, schema AnnotationSchema) error {
	if schema.Type != annotationType {
		return &RegistrationError{
			Msg:  fmt.Sprintf("schema kind %s does not match annotation kind %s", schema.Type.String(), annotationType.String()),
			Hint: "Register the schema under its own Type",
		}
	}

	if err := validateSchema(schema); err != nil {
		return &RegistrationError{
			Msg:  fmt.Sprintf("invalid schema for %s: %v", annotationType.String(), err),
			Hint: "Fix the schema's parameter specifications",
		}
	}

	return r.schemas.Register(annotationType, schema)
}

// GetSchema retrieves the schema for an annotation kind
func (r *registry) GetSchema(annotationType AnnotationType) (AnnotationSchema, error) {
	return r.schemas.GetOrError(annotationType)
}

// ListTypes returns all registered annotation kinds
func (r *registry) ListTypes() []AnnotationType {
	return r.schemas.List()
}

// IsRegistered checks if an annotation kind is registered
func (r *registry) IsRegistered(annotationType AnnotationType) bool {
	return r.schemas.Has(annotationType)
}

// validateSchema performs basic validation on a schema definition
func validateSchema(schema AnnotationSchema) error {
	for paramName, paramSpec := range schema.Parameters {
		if paramName == "" {
			return fmt.Errorf("parameter name cannot be empty")
		}

		if paramSpec.Type < StringType || paramSpec.Type > StringSliceType {
			return fmt.Errorf("invalid parameter type for %s: %d", paramName, paramSpec.Type)
		}

		if paramSpec.DefaultValue != nil {
			if err := validateDefaultValue(paramName, paramSpec.Type, paramSpec.DefaultValue); err != nil {
				return err
			}
		}
	}

	return nil
}

// validateDefaultValue checks that a default value matches its parameter type
func validateDefaultValue(paramName string, paramType ParameterType, defaultValue interface{}) error {
	switch paramType {
	case StringType:
		if _, ok := defaultValue.(string); !ok {
			return fmt.Errorf("default value for string parameter %s must be string, got %T", paramName, defaultValue)
		}
	case BoolType:
		if _, ok := defaultValue.(bool); !ok {
			return fmt.Errorf("default value for bool parameter %s must be bool, got %T", paramName, defaultValue)
		}
	case IntType:
		if _, ok := defaultValue.(int); !ok {
			return fmt.Errorf("default value for int parameter %s must be int, got %T", paramName, defaultValue)
		}
	case StringSliceType:
		if _, ok := defaultValue.([]string); !ok {
			return fmt.Errorf("default value for []string parameter %s must be []string, got %T", paramName, defaultValue)
		}
	default:
		return fmt.Errorf("unknown parameter type for %s: %d", paramName, paramType)
	}

	return nil
}
