package annotations

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Prefix marks a comment as a gild annotation, as in //gild::route
const Prefix = "gild::"

// ParserEngine defines the core parsing functionality
type ParserEngine interface {
	ParseAnnotation(comment string, location SourceLocation) (*ParsedAnnotation, error)
	ValidateAnnotation(annotation *ParsedAnnotation) error
}

type parser struct {
	registry AnnotationRegistry
}

// NewParser creates a parser that validates against the given registry.
// A nil registry yields a parse-only engine.
func NewParser(registry AnnotationRegistry) ParserEngine {
	return &parser{registry: registry}
}

// The annotation body grammar, applied after the //gild:: prefix is stripped.
// Number precedes Flag so negative numbers lex as values rather than flags.
var (
	annotationLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "String", Pattern: `"(\\"|[^"])*"`},
		{Name: "Path", Pattern: `/[^\s]*`},
		{Name: "Number", Pattern: `-?[0-9]+`},
		{Name: "Flag", Pattern: `-[A-Za-z][A-Za-z0-9]*`},
		{Name: "Equals", Pattern: `=`},
		{Name: "Comma", Pattern: `,`},
		{Name: "Value", Pattern: `[^\s=,"]+`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	annotationParser = participle.MustBuild[annotationExpr](
		participle.Lexer(annotationLexer),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)
)

// annotationExpr is the root of the annotation grammar
type annotationExpr struct {
	Kind string     `parser:"@Value"`
	Args []*argExpr `parser:"@@*"`
}

// argExpr is a single argument, either a -Flag or a positional value
type argExpr struct {
	Flag       *flagExpr  `parser:"  @@"`
	Positional *valueExpr `parser:"| @@"`
}

// flagExpr is a -Name or -Name=value argument
type flagExpr struct {
	Name  string     `parser:"@Flag"`
	Value *valueExpr `parser:"(Equals @@)?"`
}

// valueExpr is a bare, quoted, or comma-separated value
type valueExpr struct {
	Parts []string `parser:"@(String | Path | Number | Value) (Comma @(String | Path | Number | Value))*"`
}

// decode returns the value as a string, or as []string when comma-separated
func (v *valueExpr) decode() interface{} {
	if len(v.Parts) == 1 {
		return unquote(v.Parts[0])
	}
	parts := make([]string, len(v.Parts))
	for i, part := range v.Parts {
		parts[i] = unquote(strings.TrimSpace(part))
	}
	return parts
}

func unquote(raw string) string {
	if len(raw) >= 2 && strings.HasPrefix(raw, `"`) && strings.HasSuffix(raw, `"`) {
		if unquoted, err := strconv.Unquote(raw); err == nil {
			return unquoted
		}
		return raw[1 : len(raw)-1]
	}
	return raw
}

// IsAnnotation reports whether a comment line carries the gild prefix
func IsAnnotation(comment string) bool {
	trimmed := strings.TrimSpace(comment)
	if !strings.HasPrefix(trimmed, "//") {
		return false
	}
	return strings.HasPrefix(strings.TrimLeftFunc(trimmed[2:], unicode.IsSpace), Prefix)
}

// ParseAnnotation parses a single comment line into a ParsedAnnotation and,
// when a registry is attached, validates it against its schema
func (p *parser) ParseAnnotation(comment string, location SourceLocation) (*ParsedAnnotation, error) {
	body, err := p.normalizeCommentPrefix(comment, location)
	if err != nil {
		return nil, err
	}
	if body == "" {
		return nil, NewSyntaxErrorWithContext("missing annotation kind", location, comment)
	}

	expr, err := annotationParser.ParseString(location.File, body)
	if err != nil {
		return nil, NewSyntaxErrorWithContext(err.Error(), location, comment)
	}

	annotationType, err := ParseAnnotationType(expr.Kind)
	if err != nil {
		return nil, &SchemaError{
			Msg:  err.Error(),
			Loc:  location,
			Hint: generateSchemaSuggestion(err.Error(), annotationType),
		}
	}

	annotation := &ParsedAnnotation{
		Type:       annotationType,
		Parameters: make(map[string]interface{}),
		Location:   location,
		Raw:        comment,
	}

	var positionals []interface{}
	for _, arg := range expr.Args {
		switch {
		case arg.Flag != nil:
			if err := p.applyFlag(annotation, arg.Flag); err != nil {
				return nil, err
			}
		case arg.Positional != nil:
			positionals = append(positionals, arg.Positional.decode())
		}
	}
	if err := p.applyPositionals(annotation, positionals); err != nil {
		return nil, err
	}

	if p.registry != nil {
		if err := p.ValidateAnnotation(annotation); err != nil {
			return nil, err
		}
	}

	return annotation, nil
}

// ValidateAnnotation validates an already parsed annotation against the
// registry schema
func (p *parser) ValidateAnnotation(annotation *ParsedAnnotation) error {
	if p.registry == nil {
		return nil
	}
	return ValidateAnnotation(p.registry, annotation)
}

// normalizeCommentPrefix strips the comment markers and gild prefix, leaving
// the annotation body for the grammar
func (p *parser) normalizeCommentPrefix(comment string, location SourceLocation) (string, error) {
	input := strings.TrimSpace(comment)
	if !strings.HasPrefix(input, "//") {
		return "", NewSyntaxErrorWithContext("annotation must start with '//'", location, comment)
	}
	rest := strings.TrimLeftFunc(input[2:], unicode.IsSpace)
	if !strings.HasPrefix(rest, Prefix) {
		return "", NewSyntaxErrorWithContext(
			fmt.Sprintf("annotation must start with '%s'", Prefix), location, comment)
	}
	return strings.TrimSpace(rest[len(Prefix):]), nil
}

// applyFlag stores a -Flag or -Flag=value argument, rejecting duplicates
func (p *parser) applyFlag(annotation *ParsedAnnotation, flag *flagExpr) error {
	name := strings.TrimPrefix(flag.Name, "-")
	if _, exists := annotation.Parameters[name]; exists {
		return &SyntaxError{
			Msg:  fmt.Sprintf("parameter '%s' given more than once", name),
			Loc:  annotation.Location,
			Hint: fmt.Sprintf("Remove the duplicate -%s", name),
		}
	}
	if flag.Value == nil {
		annotation.Parameters[name] = true
		return nil
	}
	annotation.Parameters[name] = flag.Value.decode()
	return nil
}

// applyPositionals maps positional values onto the named parameters the
// annotation kind declares
func (p *parser) applyPositionals(annotation *ParsedAnnotation, values []interface{}) error {
	if len(values) == 0 {
		return nil
	}
	// Relation annotations fail wholesale in validation, which gives a more
	// useful message than rejecting their arguments one by one
	if annotation.Type == RelationAnnotation {
		return nil
	}

	names := positionalParameterNames(annotation.Type)
	if names == nil {
		return &SyntaxError{
			Msg:  fmt.Sprintf("%s annotations take no positional parameters", annotation.Type),
			Loc:  annotation.Location,
			Hint: fmt.Sprintf("Pass settings as flags, e.g. //gild::%s -Name=value", annotation.Type),
		}
	}
	if len(values) > len(names) {
		return &SyntaxError{
			Msg:  fmt.Sprintf("too many positional parameters for %s annotation (at most %d)", annotation.Type, len(names)),
			Loc:  annotation.Location,
			Hint: fmt.Sprintf("Expected: %s", strings.Join(names, " ")),
		}
	}
	for i, value := range values {
		name := names[i]
		if _, exists := annotation.Parameters[name]; exists {
			return &SyntaxError{
				Msg:  fmt.Sprintf("parameter '%s' given both positionally and as a flag", name),
				Loc:  annotation.Location,
				Hint: fmt.Sprintf("Drop either the positional value or -%s", name),
			}
		}
		annotation.Parameters[name] = value
	}
	return nil
}

// positionalParameterNames returns the parameter names positional values bind
// to, in order, for kinds that accept them
func positionalParameterNames(annotationType AnnotationType) []string {
	switch annotationType {
	case RouteAnnotation:
		return []string{"verb", "path"}
	case ParamAnnotation:
		return []string{"location", "name", "type"}
	case InjectAnnotation:
		return []string{"key"}
	case AuthenticateAnnotation:
		return []string{"strategy"}
	case RepositoryAnnotation:
		return []string{"model", "datasource"}
	default:
		return nil
	}
}
