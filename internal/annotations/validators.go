package annotations

import (
	"fmt"
	"go/token"
	"strings"
)

// Shared parameter validators used by the builtin schemas. These run after
// type transformation, so the interface{} assertions are safe.

// ValidateHTTPVerb validates HTTP verb names case-insensitively
func ValidateHTTPVerb(v interface{}) error {
	verb := strings.ToUpper(v.(string))
	validVerbs := []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"}
	for _, valid := range validVerbs {
		if verb == valid {
			return nil
		}
	}
	return fmt.Errorf("must be one of: %s, got '%s'", strings.Join(validVerbs, ", "), v.(string))
}

// ValidateRoutePath validates URL path format
func ValidateRoutePath(v interface{}) error {
	path := v.(string)
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("path must start with '/', got '%s'", path)
	}
	return nil
}

// ValidateParamLocation validates a parameter location. Cookie is recognized
// so it gets its own rejection message instead of the generic one.
func ValidateParamLocation(v interface{}) error {
	location := v.(string)
	switch location {
	case "path", "query", "header":
		return nil
	case "cookie":
		return fmt.Errorf("cookie parameters are not supported; use path, query, or header")
	default:
		return fmt.Errorf("must be one of: path, query, header, got '%s'", location)
	}
}

// paramTypeAliases maps annotation type tokens, including friendly synonyms,
// to their canonical form
var paramTypeAliases = map[string]string{
	"string":    "string",
	"integer":   "integer",
	"int":       "integer",
	"int64":     "integer",
	"int32":     "int32",
	"number":    "number",
	"double":    "number",
	"float":     "number",
	"boolean":   "boolean",
	"bool":      "boolean",
	"uuid":      "uuid",
	"date-time": "date-time",
	"datetime":  "date-time",
	"array":     "array",
}

// CanonicalParamType resolves a parameter type token to its canonical name
func CanonicalParamType(typeToken string) (string, bool) {
	canonical, ok := paramTypeAliases[strings.ToLower(typeToken)]
	return canonical, ok
}

// ValidateParamType validates a request parameter type token
func ValidateParamType(v interface{}) error {
	if _, ok := CanonicalParamType(v.(string)); !ok {
		return fmt.Errorf("must be one of: string, integer, int32, number, boolean, uuid, date-time, array, got '%s'", v.(string))
	}
	return nil
}

// ValidateParamItemType validates an array item type token (anything but array)
func ValidateParamItemType(v interface{}) error {
	canonical, ok := CanonicalParamType(v.(string))
	if !ok || canonical == "array" {
		return fmt.Errorf("array items must be a scalar type, got '%s'", v.(string))
	}
	return nil
}

// propertyTypeAliases maps model property type tokens to their canonical form
var propertyTypeAliases = map[string]string{
	"string":   "string",
	"number":   "number",
	"double":   "number",
	"float":    "number",
	"integer":  "integer",
	"int":      "integer",
	"boolean":  "boolean",
	"bool":     "boolean",
	"date":     "date",
	"datetime": "date",
	"object":   "object",
	"array":    "array",
}

// CanonicalPropertyType resolves a property type token to its canonical name
func CanonicalPropertyType(typeToken string) (string, bool) {
	canonical, ok := propertyTypeAliases[strings.ToLower(typeToken)]
	return canonical, ok
}

// ValidatePropertyType validates a model property type token
func ValidatePropertyType(v interface{}) error {
	if _, ok := CanonicalPropertyType(v.(string)); !ok {
		return fmt.Errorf("must be one of: string, number, integer, boolean, date, object, array, got '%s'", v.(string))
	}
	return nil
}

// ValidateTypeName validates a bare or package-qualified Go type name
func ValidateTypeName(v interface{}) error {
	name := v.(string)
	if name == "" {
		return fmt.Errorf("type name cannot be empty")
	}
	for _, part := range strings.Split(name, ".") {
		if !token.IsIdentifier(part) {
			return fmt.Errorf("'%s' is not a valid type name", name)
		}
	}
	return nil
}

// ValidateNotEmpty validates that a string value is not empty
func ValidateNotEmpty(v interface{}) error {
	if v.(string) == "" {
		return fmt.Errorf("cannot be empty")
	}
	return nil
}

// ValidateNonNegative validates that an int value is zero or positive
func ValidateNonNegative(v interface{}) error {
	if v.(int) < 0 {
		return fmt.Errorf("must not be negative, got %d", v.(int))
	}
	return nil
}

// Shared parameter specifications used by the builtin schemas

// VerbParameterSpec returns the HTTP verb parameter specification
func VerbParameterSpec() ParameterSpec {
	return ParameterSpec{
		Type:        StringType,
		Required:    true,
		Description: "HTTP verb (GET, POST, PUT, DELETE, PATCH, HEAD, OPTIONS)",
		Validator:   ValidateHTTPVerb,
	}
}

// RoutePathParameterSpec returns the route path parameter specification
func RoutePathParameterSpec() ParameterSpec {
	return ParameterSpec{
		Type:        StringType,
		Required:    true,
		Description: "URL path template (e.g. /books, /books/{id})",
		Validator:   ValidateRoutePath,
	}
}

// TagsParameterSpec returns a tags parameter specification
func TagsParameterSpec(description string) ParameterSpec {
	return ParameterSpec{
		Type:        StringSliceType,
		Required:    false,
		Description: description,
	}
}

// DescriptionParameterSpec returns a free-text description parameter specification
func DescriptionParameterSpec(description string) ParameterSpec {
	return ParameterSpec{
		Type:        StringType,
		Required:    false,
		Description: description,
	}
}

// FlagParameterSpec returns a boolean flag parameter specification
func FlagParameterSpec(description string) ParameterSpec {
	return ParameterSpec{
		Type:         BoolType,
		Required:     false,
		DefaultValue: false,
		Description:  description,
	}
}

// Custom validators that check parameter combinations on a whole annotation.
// They run after every per-parameter validator has passed.

// ValidateRouteParameters validates the {name} placeholders in a route path
func ValidateRouteParameters(annotation *ParsedAnnotation) error {
	path := annotation.GetString("path")
	if path == "" {
		return nil
	}
	seen := make(map[string]bool)
	rest := path
	for {
		open := strings.IndexByte(rest, '{')
		closing := strings.IndexByte(rest, '}')
		if open == -1 && closing == -1 {
			return nil
		}
		if open == -1 || (closing != -1 && closing < open) {
			return &ValidationError{
				Parameter: "path",
				Expected:  "balanced {name} placeholders",
				Actual:    fmt.Sprintf("'%s' has an unmatched '}'", path),
				Loc:       annotation.Location,
				Hint:      "Write path parameters as {name}, e.g. /books/{id}",
			}
		}
		if closing == -1 {
			return &ValidationError{
				Parameter: "path",
				Expected:  "balanced {name} placeholders",
				Actual:    fmt.Sprintf("'%s' has an unmatched '{'", path),
				Loc:       annotation.Location,
				Hint:      "Write path parameters as {name}, e.g. /books/{id}",
			}
		}
		name := rest[open+1 : closing]
		if !token.IsIdentifier(name) {
			return &ValidationError{
				Parameter: "path",
				Expected:  "identifier inside {} placeholder",
				Actual:    fmt.Sprintf("'{%s}'", name),
				Loc:       annotation.Location,
				Hint:      "Path parameter names must be valid identifiers, e.g. {id} or {bookId}",
			}
		}
		if seen[name] {
			return &ValidationError{
				Parameter: "path",
				Expected:  "unique placeholder names",
				Actual:    fmt.Sprintf("'{%s}' appears more than once", name),
				Loc:       annotation.Location,
				Hint:      "Each path parameter may appear only once in the template",
			}
		}
		seen[name] = true
		rest = rest[closing+1:]
	}
}

// ValidateParamCombination rejects parameter settings that contradict the
// resolved location
func ValidateParamCombination(annotation *ParsedAnnotation) error {
	if annotation.GetString("location") != "path" {
		return nil
	}
	if annotation.HasParameter("Required") && !annotation.GetBool("Required") {
		return &ValidationError{
			Parameter: "Required",
			Expected:  "true for path parameters",
			Actual:    "false",
			Loc:       annotation.Location,
			Hint:      "Path parameters are always required; drop -Required=false or move the parameter to query",
		}
	}
	return nil
}

// ValidateInjectParameters validates the injection variant flags and key
func ValidateInjectParameters(annotation *ParsedAnnotation) error {
	variants := 0
	for _, flag := range []string{"Getter", "Setter", "Context"} {
		if annotation.GetBool(flag) {
			variants++
		}
	}
	if variants > 1 {
		return &ValidationError{
			Parameter: "Getter",
			Expected:  "at most one of -Getter, -Setter, -Context",
			Actual:    "multiple variant flags",
			Loc:       annotation.Location,
			Hint:      "Pick a single injection variant per parameter",
		}
	}
	hasKey := annotation.GetString("key") != ""
	hasTag := annotation.GetString("Tag") != ""
	if annotation.GetBool("Context") {
		if hasKey || hasTag {
			return &ValidationError{
				Parameter: "Context",
				Expected:  "no key or -Tag with -Context",
				Actual:    "key or -Tag given",
				Loc:       annotation.Location,
				Hint:      "-Context injects the request context itself and takes no binding key",
			}
		}
		return nil
	}
	if hasKey && hasTag {
		return &ValidationError{
			Parameter: "Tag",
			Expected:  "a binding key or -Tag, not both",
			Actual:    "both given",
			Loc:       annotation.Location,
			Hint:      "Use a key for a single binding or -Tag to inject everything under a tag",
		}
	}
	if !hasKey && !hasTag {
		return &ValidationError{
			Parameter: "key",
			Expected:  "a binding key, -Tag, or -Context",
			Actual:    "none given",
			Loc:       annotation.Location,
			Hint:      "Name the binding to inject, e.g. gild::inject bookService",
		}
	}
	return nil
}

// ValidateAuthenticateParameters validates the strategy name against -Skip
func ValidateAuthenticateParameters(annotation *ParsedAnnotation) error {
	strategy := annotation.GetString("strategy")
	if annotation.GetBool("Skip") {
		if strategy != "" || annotation.HasParameter("Options") {
			return &ValidationError{
				Parameter: "Skip",
				Expected:  "no strategy or -Options with -Skip",
				Actual:    "strategy or -Options given",
				Loc:       annotation.Location,
				Hint:      "-Skip disables authentication for the method and takes nothing else",
			}
		}
		return nil
	}
	if strategy == "" {
		return &ValidationError{
			Parameter: "strategy",
			Expected:  "a strategy name or -Skip",
			Actual:    "none given",
			Loc:       annotation.Location,
			Hint:      "Name the strategy to enforce, e.g. gild::authenticate jwt",
		}
	}
	for _, option := range annotation.GetStringSlice("Options") {
		if !strings.Contains(option, ":") {
			return &ValidationError{
				Parameter: "Options",
				Expected:  "name:value entries",
				Actual:    fmt.Sprintf("'%s'", option),
				Loc:       annotation.Location,
				Hint:      "Write strategy options as name:value, e.g. -Options=scope:admin",
			}
		}
	}
	return nil
}

// ValidateRelationUnsupported rejects every relation annotation. Relations are
// recognized so they fail with a targeted message instead of an unknown-kind
// error.
func ValidateRelationUnsupported(annotation *ParsedAnnotation) error {
	return &UnsupportedError{
		Feature: "relation",
		Msg:     "model relations cannot be registered",
		Loc:     annotation.Location,
		Hint:    "Define the related model with its own gild::model annotation and resolve the link in repository code",
	}
}
