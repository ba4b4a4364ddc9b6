package annotations

import (
	"fmt"
	"strconv"
	"strings"
)

// SchemaValidator defines the interface for validating annotations against their schemas
type SchemaValidator interface {
	// Validate annotation against its schema
	Validate(annotation *ParsedAnnotation, schema AnnotationSchema) error

	// ApplyDefaults applies default values for missing optional parameters
	ApplyDefaults(annotation *ParsedAnnotation, schema AnnotationSchema) error

	// TransformParameters transforms parameter values to their declared types
	TransformParameters(annotation *ParsedAnnotation, schema AnnotationSchema) error
}

// validator is the concrete implementation of SchemaValidator
type validator struct{}

// NewValidator creates a new schema validator
func NewValidator() SchemaValidator {
	return &validator{}
}

// ValidateAnnotation runs the full schema pipeline for a parsed annotation:
// defaults, type transformation, then validation
func ValidateAnnotation(registry AnnotationRegistry, annotation *ParsedAnnotation) error {
	schema, err := registry.GetSchema(annotation.Type)
	if err != nil {
		return &SchemaError{
			Msg:  err.Error(),
			Loc:  annotation.Location,
			Hint: generateSchemaSuggestion(err.Error(), annotation.Type),
		}
	}

	v := NewValidator()
	if err := v.ApplyDefaults(annotation, schema); err != nil {
		return err
	}
	if err := v.TransformParameters(annotation, schema); err != nil {
		return err
	}
	return v.Validate(annotation, schema)
}

// Validate validates an annotation against its schema
func (v *validator) Validate(annotation *ParsedAnnotation, schema AnnotationSchema) error {
	var errors []AnnotationError

	// Required parameters must be present
	for paramName, paramSpec := range schema.Parameters {
		if !paramSpec.Required {
			continue
		}
		if _, exists := annotation.Parameters[paramName]; !exists {
			expected := fmt.Sprintf("required parameter of type %s", paramSpec.Type)
			errors = append(errors, &ValidationError{
				Parameter: paramName,
				Expected:  expected,
				Actual:    "missing",
				Loc:       annotation.Location,
				Hint:      generateValidationSuggestion(paramName, expected, "missing", annotation.Type),
			})
		}
	}

	// Parameter types and values
	for paramName, paramValue := range annotation.Parameters {
		paramSpec, exists := schema.Parameters[paramName]
		if !exists {
			errors = append(errors, &ValidationError{
				Parameter: paramName,
				Expected:  "known parameter",
				Actual:    fmt.Sprintf("unknown parameter '%s'", paramName),
				Loc:       annotation.Location,
				Hint:      fmt.Sprintf("Remove -%s or check the spelling; flag names are case-sensitive", paramName),
			})
			continue
		}

		if err := v.validateParameterType(paramName, paramSpec.Type, paramValue, annotation.Location); err != nil {
			errors = append(errors, err)
			continue
		}

		if paramSpec.Validator != nil {
			if err := paramSpec.Validator(paramValue); err != nil {
				errors = append(errors, &ValidationError{
					Parameter: paramName,
					Expected:  "valid value",
					Actual:    fmt.Sprintf("%v", paramValue),
					Loc:       annotation.Location,
					Hint:      err.Error(),
				})
			}
		}
	}

	// Whole-annotation validators read parameters through the typed
	// accessors, so they are safe to run even when individual parameters
	// failed above
	for _, customValidator := range schema.Validators {
		if err := customValidator(annotation); err != nil {
			if annotationErr, ok := err.(AnnotationError); ok {
				errors = append(errors, annotationErr)
				continue
			}
			errors = append(errors, &SchemaError{
				Msg:  err.Error(),
				Loc:  annotation.Location,
				Hint: "Check the annotation parameters and their combination",
			})
		}
	}

	if len(errors) == 1 {
		return errors[0]
	}
	if len(errors) > 0 {
		return &MultipleAnnotationErrors{Errors: errors}
	}
	return nil
}

// ApplyDefaults applies default values for missing optional parameters
func (v *validator) ApplyDefaults(annotation *ParsedAnnotation, schema AnnotationSchema) error {
	if annotation.Parameters == nil {
		annotation.Parameters = make(map[string]interface{})
	}

	for paramName, paramSpec := range schema.Parameters {
		if _, exists := annotation.Parameters[paramName]; !exists && paramSpec.DefaultValue != nil {
			annotation.Parameters[paramName] = paramSpec.DefaultValue
		}
	}

	return nil
}

// TransformParameters transforms parameter values to their declared types.
// Values arrive from the parser as strings or bools; anything else is a bug
// in the grammar and surfaces as a validation error.
func (v *validator) TransformParameters(annotation *ParsedAnnotation, schema AnnotationSchema) error {
	for paramName, paramValue := range annotation.Parameters {
		paramSpec, exists := schema.Parameters[paramName]
		if !exists {
			continue // unknown parameters are reported by Validate
		}

		if v.isCorrectType(paramValue, paramSpec.Type) {
			continue
		}

		strValue, ok := paramValue.(string)
		if !ok {
			return v.transformError(paramName, paramSpec.Type, paramValue, annotation.Location)
		}
		transformed, err := v.convertFromString(strValue, paramSpec.Type)
		if err != nil {
			return v.transformError(paramName, paramSpec.Type, paramValue, annotation.Location)
		}
		annotation.Parameters[paramName] = transformed
	}

	return nil
}

func (v *validator) transformError(paramName string, targetType ParameterType, value interface{}, loc SourceLocation) error {
	return &ValidationError{
		Parameter: paramName,
		Expected:  fmt.Sprintf("value convertible to %s", targetType),
		Actual:    fmt.Sprintf("%v (%T)", value, value),
		Loc:       loc,
		Hint:      fmt.Sprintf("Provide a %s value for -%s", targetType, paramName),
	}
}

// validateParameterType validates that a parameter value matches the expected type
func (v *validator) validateParameterType(paramName string, expectedType ParameterType, value interface{}, location SourceLocation) AnnotationError {
	if v.isCorrectType(value, expectedType) {
		return nil
	}

	hints := map[ParameterType]string{
		StringType:      "Provide a string value",
		BoolType:        "Use true/false or give the flag bare",
		IntType:         "Provide an integer value",
		StringSliceType: "Provide comma-separated values",
	}
	hint, known := hints[expectedType]
	if !known {
		hint = "The schema declares a parameter type this tool does not know"
	}
	return &ValidationError{
		Parameter: paramName,
		Expected:  expectedType.String(),
		Actual:    fmt.Sprintf("%T", value),
		Loc:       location,
		Hint:      hint,
	}
}

// isCorrectType checks if a value already has the target type
func (v *validator) isCorrectType(value interface{}, targetType ParameterType) bool {
	switch targetType {
	case StringType:
		_, ok := value.(string)
		return ok
	case BoolType:
		_, ok := value.(bool)
		return ok
	case IntType:
		_, ok := value.(int)
		return ok
	case StringSliceType:
		_, ok := value.([]string)
		return ok
	default:
		return false
	}
}

// convertFromString converts a string value to the target type
func (v *validator) convertFromString(strValue string, targetType ParameterType) (interface{}, error) {
	switch targetType {
	case StringType:
		return strValue, nil
	case BoolType:
		return strconv.ParseBool(strValue)
	case IntType:
		return strconv.Atoi(strValue)
	case StringSliceType:
		if strValue == "" {
			return []string{}, nil
		}
		parts := strings.Split(strValue, ",")
		result := make([]string, len(parts))
		for i, part := range parts {
			result[i] = strings.TrimSpace(part)
		}
		return result, nil
	default:
		return nil, fmt.Errorf("unsupported target type: %d", targetType)
	}
}
