package generator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gildlabs/gild/internal/models"
	"github.com/gildlabs/gild/pkg/gild/inject"
	"github.com/gildlabs/gild/pkg/gild/openapi"
)

// Renderers for the payload builder calls the generated registration files
// make. Shortcut forms are preferred wherever one exists; they expand to the
// same payloads as the long forms, so the generated file reads the way a
// hand-annotated one would.

func classSite(class string) string {
	return fmt.Sprintf("gild.Class(%s)", strconv.Quote(class))
}

func methodSite(class, method string) string {
	return fmt.Sprintf("%s.Method(%s)", classSite(class), strconv.Quote(method))
}

func paramSite(class, method string, index int) string {
	return fmt.Sprintf("%s.Param(%d)", methodSite(class, method), index)
}

func propertySite(class, field string) string {
	return fmt.Sprintf("%s.Property(%s)", classSite(class), strconv.Quote(field))
}

func constructorSite(class string, index int) string {
	return fmt.Sprintf("%s.Constructor(%d)", classSite(class), index)
}

func withTags(tags []string) string {
	quoted := make([]string, len(tags))
	for i, tag := range tags {
		quoted[i] = strconv.Quote(tag)
	}
	return fmt.Sprintf(".WithTags(%s)", strings.Join(quoted, ", "))
}

// apiExpr renders the class-level api payload of a controller
func apiExpr(c *models.ControllerMetadata) string {
	expr := fmt.Sprintf("openapi.Api(%s)", strconv.Quote(c.BasePath))
	if len(c.Tags) > 0 {
		expr += withTags(c.Tags)
	}
	return expr
}

// verbShortcuts maps canonical HTTP verbs to their route builder shortcuts
var verbShortcuts = map[string]string{
	"GET":     "Get",
	"POST":    "Post",
	"PUT":     "Put",
	"PATCH":   "Patch",
	"DELETE":  "Delete",
	"HEAD":    "Head",
	"OPTIONS": "Options",
}

// routeExpr renders the route payload of one handler method
func routeExpr(route *models.RouteMetadata) string {
	var builder strings.Builder
	if shortcut, ok := verbShortcuts[route.Verb]; ok {
		fmt.Fprintf(&builder, "openapi.%s(%s)", shortcut, strconv.Quote(route.Path))
	} else {
		fmt.Fprintf(&builder, "openapi.Route(%s, %s)", strconv.Quote(route.Verb), strconv.Quote(route.Path))
	}
	if route.OperationID != "" {
		fmt.Fprintf(&builder, ".WithOperationID(%s)", strconv.Quote(route.OperationID))
	}
	if route.Summary != "" {
		fmt.Fprintf(&builder, ".WithSummary(%s)", strconv.Quote(route.Summary))
	}
	if route.Description != "" {
		fmt.Fprintf(&builder, ".WithDescription(%s)", strconv.Quote(route.Description))
	}
	if len(route.Tags) > 0 {
		builder.WriteString(withTags(route.Tags))
	}
	if route.Deprecated {
		builder.WriteString(".MarkDeprecated()")
	}
	return builder.String()
}

// paramGroups maps parameter locations to their shortcut groups
var paramGroups = map[string]string{
	openapi.InPath:   "Path",
	openapi.InQuery:  "Query",
	openapi.InHeader: "Header",
}

// paramShortcuts maps canonical type tokens to shortcut builder methods
var paramShortcuts = map[string]string{
	"string":    "String",
	"integer":   "Integer",
	"number":    "Number",
	"boolean":   "Boolean",
	"uuid":      "UUID",
	"date-time": "DateTime",
}

// schemaCtors maps canonical scalar type tokens to schema constructor calls
var schemaCtors = map[string]string{
	"string":    "openapi.StringSchema()",
	"integer":   "openapi.IntegerSchema()",
	"int32":     "openapi.Int32Schema()",
	"number":    "openapi.NumberSchema()",
	"boolean":   "openapi.BooleanSchema()",
	"uuid":      "openapi.UUIDSchema()",
	"date-time": "openapi.DateTimeSchema()",
}

// paramExpr renders the parameter payload of one declared request parameter
func paramExpr(parameter *models.ParameterMetadata) (string, error) {
	group, ok := paramGroups[parameter.Location]
	if !ok {
		return "", fmt.Errorf("parameter %s has unsupported location %q", parameter.Name, parameter.Location)
	}
	name := strconv.Quote(parameter.Name)

	var builder strings.Builder
	switch {
	case parameter.Type == "":
		fmt.Fprintf(&builder, "openapi.Param.%s.With(%s, nil)", group, name)
	case parameter.Type == "array":
		items, ok := schemaCtors[parameter.Items]
		if !ok {
			return "", fmt.Errorf("parameter %s has unsupported item type %q", parameter.Name, parameter.Items)
		}
		fmt.Fprintf(&builder, "openapi.Param.%s.Array(%s, %s)", group, name, items)
	case paramShortcuts[parameter.Type] != "":
		fmt.Fprintf(&builder, "openapi.Param.%s.%s(%s)", group, paramShortcuts[parameter.Type], name)
	default:
		ctor, ok := schemaCtors[parameter.Type]
		if !ok {
			return "", fmt.Errorf("parameter %s has unsupported type %q", parameter.Name, parameter.Type)
		}
		fmt.Fprintf(&builder, "openapi.Param.%s.With(%s, %s)", group, name, ctor)
	}
	if parameter.Required && parameter.Location != openapi.InPath {
		builder.WriteString(".AsRequired()")
	}
	if parameter.Description != "" {
		fmt.Fprintf(&builder, ".WithDescription(%s)", strconv.Quote(parameter.Description))
	}
	return builder.String(), nil
}

// bodyExpr renders the request body payload, resolving the model reference
// against the run's model index and recording any import it needs
func (g *Generator) bodyExpr(body *models.BodyMetadata, pkg *models.PackageMetadata, imports *importSet) (string, error) {
	var builder strings.Builder
	if body.Model == "" {
		builder.WriteString("openapi.Body()")
	} else {
		ref, err := g.index.resolve(body.Model, pkg)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&builder, "openapi.BodyOf(%s)", ref.expr)
		if ref.importPath != "" {
			imports.addAliased(ref.alias, ref.importPath)
		}
	}
	if !body.Required {
		builder.WriteString(".AsOptional()")
	}
	if body.ContentType != "" && body.ContentType != openapi.ContentTypeJSON {
		fmt.Fprintf(&builder, ".WithContentType(%s)", strconv.Quote(body.ContentType))
	}
	if body.Description != "" {
		fmt.Fprintf(&builder, ".WithDescription(%s)", strconv.Quote(body.Description))
	}
	return builder.String(), nil
}

// bindingExpr renders the injection payload of a field or constructor
// parameter. Validation happens through the value builder so the rendered
// call matches what Populate records.
func bindingExpr(injection *models.InjectionMetadata, class string) (string, error) {
	binding, err := bindingOf(injection, class)
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	switch binding.Variant {
	case inject.TagMatch:
		fmt.Fprintf(&builder, "inject.Tag(%s)", strconv.Quote(binding.TagPattern))
	case inject.Context:
		builder.WriteString("inject.CurrentContext()")
	case inject.Getter:
		fmt.Fprintf(&builder, "inject.GetterOf(%s)", strconv.Quote(binding.BindingKey))
	case inject.Setter:
		fmt.Fprintf(&builder, "inject.SetterOf(%s)", strconv.Quote(binding.BindingKey))
	default:
		fmt.Fprintf(&builder, "inject.Key(%s)", strconv.Quote(binding.BindingKey))
	}
	if binding.Optional {
		builder.WriteString(".AsOptional()")
	}
	return builder.String(), nil
}

// requirementExpr renders an authentication payload
func requirementExpr(auth *models.AuthMetadata) string {
	if auth.Skip {
		return "authenticate.Skip()"
	}
	var builder strings.Builder
	fmt.Fprintf(&builder, "authenticate.Strategy(%s)", strconv.Quote(auth.Strategy))
	for _, option := range auth.Options {
		fmt.Fprintf(&builder, ".WithOption(%s, %s)", strconv.Quote(option.Name), strconv.Quote(option.Value))
	}
	return builder.String()
}

// modelExpr renders the model payload of an annotated model struct. The
// name is only set when it differs from the struct name, the consumer falls
// back to the class name otherwise.
func modelExpr(model *models.ModelMetadata) string {
	var builder strings.Builder
	builder.WriteString("repository.Model()")
	if model.ModelName != "" && model.ModelName != model.StructName {
		fmt.Fprintf(&builder, ".WithName(%s)", strconv.Quote(model.ModelName))
	}
	if model.Description != "" {
		fmt.Fprintf(&builder, ".WithDescription(%s)", strconv.Quote(model.Description))
	}
	if model.Strict {
		builder.WriteString(".AsStrict()")
	}
	return builder.String()
}

// propertyTypeConsts maps canonical property type tokens to their constants
var propertyTypeConsts = map[string]string{
	"string":  "repository.TypeString",
	"number":  "repository.TypeNumber",
	"integer": "repository.TypeInteger",
	"boolean": "repository.TypeBoolean",
	"date":    "repository.TypeDate",
	"object":  "repository.TypeObject",
}

// propertyExpr renders the property payload of one annotated model field
func propertyExpr(property *models.PropertyMetadata) (string, error) {
	var builder strings.Builder
	switch {
	case property.Type == "":
		builder.WriteString("repository.Property()")
	case property.Type == "array":
		item, err := arrayItemConst(property)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&builder, "repository.ArrayPropertyOf(%s)", item)
	default:
		typeConst, ok := propertyTypeConsts[property.Type]
		if !ok {
			return "", fmt.Errorf("property %s has unsupported type %q", property.FieldName, property.Type)
		}
		fmt.Fprintf(&builder, "repository.PropertyOf(%s)", typeConst)
	}
	if property.ID {
		builder.WriteString(".AsID()")
	}
	if property.Generated {
		builder.WriteString(".AsGenerated()")
	}
	if property.Required {
		builder.WriteString(".AsRequired()")
	}
	if property.Unique {
		builder.WriteString(".UniqueIndexed()")
	} else if property.Indexed {
		builder.WriteString(".Indexed()")
	}
	if property.Default != "" {
		fmt.Fprintf(&builder, ".WithDefault(%s)", strconv.Quote(property.Default))
	}
	if property.Description != "" {
		fmt.Fprintf(&builder, ".WithDescription(%s)", strconv.Quote(property.Description))
	}
	return builder.String(), nil
}

// arrayItemConst resolves the item type of an array property, falling back
// to the element of the declared Go type when no item token was given
func arrayItemConst(property *models.PropertyMetadata) (string, error) {
	token := property.Items
	if token == "" {
		token = goElementToken(property.GoType)
	}
	item, ok := propertyTypeConsts[token]
	if !ok {
		return "", fmt.Errorf("property %s has unsupported item type %q", property.FieldName, token)
	}
	return item, nil
}

// goElementToken derives a property type token from the element type of a
// declared Go slice
func goElementToken(goType string) string {
	element := strings.TrimPrefix(goType, "*")
	element = strings.TrimPrefix(element, "[]")
	element = strings.TrimPrefix(element, "*")
	switch element {
	case "string":
		return "string"
	case "bool":
		return "boolean"
	case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64", "byte", "rune":
		return "integer"
	case "float32", "float64":
		return "number"
	case "time.Time":
		return "date"
	default:
		return "object"
	}
}

// repositoryExpr renders the repository payload binding a repository class
// to its model and data source
func repositoryExpr(repo *models.RepositoryMetadata) string {
	return fmt.Sprintf("repository.For(%s, %s)", strconv.Quote(repo.ModelName), strconv.Quote(repo.DataSource))
}
