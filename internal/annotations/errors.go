package annotations

import (
	"fmt"
	"strings"
)

// AnnotationError defines the interface for annotation-related errors
type AnnotationError interface {
	error
	Location() SourceLocation
	Suggestion() string
	Code() ErrorCode
}

// ErrorCode represents different types of annotation errors
type ErrorCode int

const (
	SyntaxErrorCode ErrorCode = iota
	ValidationErrorCode
	SchemaErrorCode
	RegistrationErrorCode
	UnsupportedErrorCode
)

// String returns the string representation of the error code
func (e ErrorCode) String() string {
	switch e {
	case SyntaxErrorCode:
		return "SyntaxError"
	case ValidationErrorCode:
		return "ValidationError"
	case SchemaErrorCode:
		return "SchemaError"
	case RegistrationErrorCode:
		return "RegistrationError"
	case UnsupportedErrorCode:
		return "UnsupportedError"
	default:
		return "UnknownError"
	}
}

// ValidationError represents a parameter validation error
type ValidationError struct {
	Parameter string         // Parameter name that failed validation
	Expected  string         // What was expected
	Actual    string         // What was provided
	Loc       SourceLocation // Where the error occurred
	Hint      string         // Suggested fix
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s:%d:%d: parameter '%s' validation failed: expected %s, got %s. %s",
		e.Loc.File, e.Loc.Line, e.Loc.Column,
		e.Parameter, e.Expected, e.Actual, e.Hint)
}

func (e *ValidationError) Location() SourceLocation { return e.Loc }
func (e *ValidationError) Suggestion() string       { return e.Hint }
func (e *ValidationError) Code() ErrorCode          { return ValidationErrorCode }

// SyntaxError represents a syntax parsing error
type SyntaxError struct {
	Msg  string         // Error message
	Loc  SourceLocation // Where the error occurred
	Hint string         // Suggested fix
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: syntax error: %s. %s",
		e.Loc.File, e.Loc.Line, e.Loc.Column, e.Msg, e.Hint)
}

func (e *SyntaxError) Location() SourceLocation { return e.Loc }
func (e *SyntaxError) Suggestion() string       { return e.Hint }
func (e *SyntaxError) Code() ErrorCode          { return SyntaxErrorCode }

// SchemaError represents a schema-related error
type SchemaError struct {
	Msg  string         // Error message
	Loc  SourceLocation // Where the error occurred
	Hint string         // Suggested fix
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s:%d:%d: schema error: %s. %s",
		e.Loc.File, e.Loc.Line, e.Loc.Column, e.Msg, e.Hint)
}

func (e *SchemaError) Location() SourceLocation { return e.Loc }
func (e *SchemaError) Suggestion() string       { return e.Hint }
func (e *SchemaError) Code() ErrorCode          { return SchemaErrorCode }

// RegistrationError represents an error during annotation schema registration
type RegistrationError struct {
	Msg  string         // Error message
	Loc  SourceLocation // Where the error occurred (optional)
	Hint string         // Suggested fix
}

func (e *RegistrationError) Error() string {
	if e.Loc.File != "" {
		return fmt.Sprintf("%s:%d:%d: registration error: %s. %s",
			e.Loc.File, e.Loc.Line, e.Loc.Column, e.Msg, e.Hint)
	}
	return fmt.Sprintf("registration error: %s. %s", e.Msg, e.Hint)
}

func (e *RegistrationError) Location() SourceLocation { return e.Loc }
func (e *RegistrationError) Suggestion() string       { return e.Hint }
func (e *RegistrationError) Code() ErrorCode          { return RegistrationErrorCode }

// UnsupportedError marks an annotation that is recognized but deliberately
// rejected, such as relation annotations and cookie parameters
type UnsupportedError struct {
	Feature string         // Which surface is unsupported
	Msg     string         // Error message
	Loc     SourceLocation // Where the error occurred
	Hint    string         // What to do instead
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s:%d:%d: unsupported %s: %s. %s",
		e.Loc.File, e.Loc.Line, e.Loc.Column, e.Feature, e.Msg, e.Hint)
}

func (e *UnsupportedError) Location() SourceLocation { return e.Loc }
func (e *UnsupportedError) Suggestion() string       { return e.Hint }
func (e *UnsupportedError) Code() ErrorCode          { return UnsupportedErrorCode }

// MultipleAnnotationErrors represents multiple annotation errors collected together
type MultipleAnnotationErrors struct {
	Errors []AnnotationError
}

func (e *MultipleAnnotationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}

	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var messages []string
	for i, err := range e.Errors {
		messages = append(messages, fmt.Sprintf("  %d. %s", i+1, err.Error()))
	}

	return fmt.Sprintf("multiple annotation errors (%d total):\n%s", len(e.Errors), strings.Join(messages, "\n"))
}

// Unwrap returns the underlying errors for error inspection
func (e *MultipleAnnotationErrors) Unwrap() []error {
	errors := make([]error, len(e.Errors))
	for i, err := range e.Errors {
		errors[i] = err
	}
	return errors
}

// GetByType returns all errors of a specific type
func (e *MultipleAnnotationErrors) GetByType(code ErrorCode) []AnnotationError {
	var result []AnnotationError
	for _, err := range e.Errors {
		if err.Code() == code {
			result = append(result, err)
		}
	}
	return result
}

// HasType returns true if any error of the specified type exists
func (e *MultipleAnnotationErrors) HasType(code ErrorCode) bool {
	for _, err := range e.Errors {
		if err.Code() == code {
			return true
		}
	}
	return false
}

// NewSyntaxErrorWithContext creates a syntax error with a context-aware suggestion
func NewSyntaxErrorWithContext(msg string, loc SourceLocation, context string) *SyntaxError {
	return &SyntaxError{
		Msg:  msg,
		Loc:  loc,
		Hint: generateSyntaxSuggestion(msg, context),
	}
}

// generateSyntaxSuggestion provides context-aware suggestions for syntax errors
func generateSyntaxSuggestion(msg, context string) string {
	msg = strings.ToLower(msg)
	context = strings.ToLower(context)

	switch {
	case strings.Contains(msg, "missing annotation kind"):
		return "Provide a kind after 'gild::', e.g. //gild::route GET /books"
	case strings.Contains(msg, "must start with"):
		return "Annotations start with '//gild::' (note the double colon)"
	case strings.Contains(msg, "unterminated") || strings.Contains(msg, "literal not terminated"):
		return "Make sure quoted strings are closed with a matching quote"
	case strings.Contains(context, "route"):
		return "Route format: //gild::route VERB /path [-Summary=\"...\"] [-Tags=a,b] [-Deprecated]"
	case strings.Contains(context, "param"):
		return "Param format: //gild::param location name [type] [-Required] [-Description=\"...\"]"
	case strings.Contains(context, "authenticate"):
		return "Authenticate format: //gild::authenticate strategy [-Options=name:value,...] or //gild::authenticate -Skip"
	default:
		return "Check the annotation syntax; parameters are -Name=value and flags are -Name"
	}
}

// generateValidationSuggestion provides per-kind suggestions for validation errors
func generateValidationSuggestion(parameter, expected, actual string, annotationType AnnotationType) string {
	switch annotationType {
	case RouteAnnotation:
		switch parameter {
		case "verb":
			return "HTTP verb must be one of GET, POST, PUT, DELETE, PATCH, HEAD, OPTIONS. Example: //gild::route GET /books"
		case "path":
			return "Route path must start with '/'. Examples: /books, /books/{id}"
		}
	case ParamAnnotation:
		switch parameter {
		case "location":
			return "Parameter location must be path, query, or header. Example: //gild::param query limit integer"
		case "name":
			return "Give the parameter a name. Example: //gild::param path id uuid"
		case "type":
			return "Use one of: string, integer, int32, number, boolean, uuid, date-time, array, or omit it to infer from the Go parameter"
		}
	case ControllerAnnotation:
		if parameter == "Path" {
			return "Controller base path must start with '/'. Example: -Path=/api/books"
		}
	case AuthenticateAnnotation:
		if parameter == "strategy" {
			return "Name the authentication strategy, e.g. //gild::authenticate jwt, or use -Skip to opt a method out"
		}
	case RepositoryAnnotation:
		switch parameter {
		case "model":
			return "Name the model the repository serves. Example: //gild::repository Book"
		case "datasource":
			return "Datasource names a configured backing store; it defaults to 'default'"
		}
	case PropertyAnnotation:
		if parameter == "Type" {
			return "Use one of: string, integer, number, boolean, date, object, array, or omit it to infer from the Go field"
		}
	}
	return fmt.Sprintf("Parameter '%s' should be %s, not '%s'", parameter, expected, actual)
}

// generateSchemaSuggestion provides context-aware suggestions for schema errors
func generateSchemaSuggestion(msg string, annotationType AnnotationType) string {
	msg = strings.ToLower(msg)

	switch {
	case strings.Contains(msg, "unknown annotation kind"):
		return "Supported kinds: controller, route, param, body, inject, authenticate, model, property, repository, relation"
	case strings.Contains(msg, "not registered"):
		return fmt.Sprintf("Annotation kind '%s' has no registered schema", annotationType.String())
	default:
		return "Check the annotation parameters against the kind's schema"
	}
}

// ErrorSummary groups errors by type for reporting
type ErrorSummary struct {
	SyntaxErrors      []AnnotationError
	ValidationErrors  []AnnotationError
	SchemaErrors      []AnnotationError
	UnsupportedErrors []AnnotationError
	OtherErrors       []AnnotationError
	TotalCount        int
}

// SummarizeErrors creates an error summary from a collection of errors
func SummarizeErrors(errors []AnnotationError) ErrorSummary {
	summary := ErrorSummary{
		TotalCount: len(errors),
	}

	for _, err := range errors {
		switch err.Code() {
		case SyntaxErrorCode:
			summary.SyntaxErrors = append(summary.SyntaxErrors, err)
		case ValidationErrorCode:
			summary.ValidationErrors = append(summary.ValidationErrors, err)
		case SchemaErrorCode:
			summary.SchemaErrors = append(summary.SchemaErrors, err)
		case UnsupportedErrorCode:
			summary.UnsupportedErrors = append(summary.UnsupportedErrors, err)
		default:
			summary.OtherErrors = append(summary.OtherErrors, err)
		}
	}

	return summary
}

// String returns a formatted summary of errors
func (s ErrorSummary) String() string {
	if s.TotalCount == 0 {
		return "No errors found"
	}

	var parts []string
	if len(s.SyntaxErrors) > 0 {
		parts = append(parts, fmt.Sprintf("%d syntax error(s)", len(s.SyntaxErrors)))
	}
	if len(s.ValidationErrors) > 0 {
		parts = append(parts, fmt.Sprintf("%d validation error(s)", len(s.ValidationErrors)))
	}
	if len(s.SchemaErrors) > 0 {
		parts = append(parts, fmt.Sprintf("%d schema error(s)", len(s.SchemaErrors)))
	}
	if len(s.UnsupportedErrors) > 0 {
		parts = append(parts, fmt.Sprintf("%d unsupported feature(s)", len(s.UnsupportedErrors)))
	}
	if len(s.OtherErrors) > 0 {
		parts = append(parts, fmt.Sprintf("%d other error(s)", len(s.OtherErrors)))
	}

	return fmt.Sprintf("Found %d total error(s): %s", s.TotalCount, strings.Join(parts, ", "))
}
