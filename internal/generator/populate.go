package generator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gildlabs/gild/internal/models"
	"github.com/gildlabs/gild/pkg/gild"
	"github.com/gildlabs/gild/pkg/gild/authenticate"
	"github.com/gildlabs/gild/pkg/gild/inject"
	"github.com/gildlabs/gild/pkg/gild/openapi"
	"github.com/gildlabs/gild/pkg/gild/repository"
)

// Populate records the scanned annotation metadata into a live registry,
// mirroring what the generated registration files do at runtime. It lets the
// document command aggregate metadata without compiling the annotated code
// first.
func Populate(reg gild.MetadataRegistry, pkgs ...*models.PackageMetadata) error {
	index := indexModels(pkgs)
	for _, pkg := range pkgs {
		if pkg == nil {
			continue
		}
		if err := populatePackage(reg, pkg, index); err != nil {
			return err
		}
	}
	return nil
}

func populatePackage(reg gild.MetadataRegistry, pkg *models.PackageMetadata, index *modelIndex) error {
	for i := range pkg.Controllers {
		if err := populateController(reg, &pkg.Controllers[i], pkg, index); err != nil {
			return err
		}
	}
	for i := range pkg.Models {
		if err := populateModel(reg, &pkg.Models[i]); err != nil {
			return err
		}
	}
	for i := range pkg.Repositories {
		repo := &pkg.Repositories[i]
		if err := repository.For(repo.ModelName, repo.DataSource).Apply(reg, gild.Class(repo.StructName)); err != nil {
			return err
		}
	}
	return nil
}

func populateController(reg gild.MetadataRegistry, c *models.ControllerMetadata, pkg *models.PackageMetadata, index *modelIndex) error {
	class := gild.Class(c.StructName)

	api := openapi.Api(c.BasePath)
	if len(c.Tags) > 0 {
		api.WithTags(c.Tags...)
	}
	if err := api.Apply(reg, class); err != nil {
		return err
	}
	if c.Authentication != nil {
		if err := requirementOf(c.Authentication).Apply(reg, class); err != nil {
			return err
		}
	}

	for i := range c.Injections {
		injection := &c.Injections[i]
		binding, err := bindingOf(injection, c.StructName)
		if err != nil {
			return err
		}
		site := class.Property(injection.FieldName)
		if injection.Target == models.InjectConstructorParam {
			site = class.Constructor(injection.ParamIndex)
		}
		if err := binding.Apply(reg, site); err != nil {
			return err
		}
	}

	for i := range c.Routes {
		if err := populateRoute(reg, c, &c.Routes[i], pkg, index); err != nil {
			return err
		}
	}
	return nil
}

func populateRoute(reg gild.MetadataRegistry, c *models.ControllerMetadata, route *models.RouteMetadata, pkg *models.PackageMetadata, index *modelIndex) error {
	method := gild.Class(c.StructName).Method(route.HandlerName)
	if err := routeSpecOf(route).Apply(reg, method); err != nil {
		return err
	}
	if route.Authentication != nil {
		if err := requirementOf(route.Authentication).Apply(reg, method); err != nil {
			return err
		}
	}

	// Parameter and body entries record in ordinal order, matching the
	// registration order of the generated file
	type argument struct {
		index int
		apply func(gild.Site) error
	}
	arguments := make([]argument, 0, len(route.Parameters)+1)
	for i := range route.Parameters {
		parameter := &route.Parameters[i]
		spec, err := parameterSpecOf(parameter)
		if err != nil {
			return generationError(parameter.Source, err)
		}
		arguments = append(arguments, argument{index: parameter.Index, apply: func(site gild.Site) error {
			return spec.Apply(reg, site)
		}})
	}
	if route.Body != nil {
		spec := index.bodySpecOf(route.Body, pkg)
		arguments = append(arguments, argument{index: route.Body.Index, apply: func(site gild.Site) error {
			return spec.Apply(reg, site)
		}})
	}
	sort.SliceStable(arguments, func(i, j int) bool { return arguments[i].index < arguments[j].index })

	for _, arg := range arguments {
		if err := arg.apply(method.Param(arg.index)); err != nil {
			return err
		}
	}
	return nil
}

func populateModel(reg gild.MetadataRegistry, model *models.ModelMetadata) error {
	class := gild.Class(model.StructName)
	if err := modelSpecOf(model).Apply(reg, class); err != nil {
		return err
	}
	for i := range model.Properties {
		property := &model.Properties[i]
		spec, err := propertySpecOf(property)
		if err != nil {
			return generationError(property.Source, err)
		}
		if err := spec.Apply(reg, class.Property(property.FieldName)); err != nil {
			return err
		}
	}
	return nil
}

// Value builders for the metadata payloads. The expression renderers in
// payloads.go emit the equivalent builder calls into generated code; keep
// the two in step.

func routeSpecOf(route *models.RouteMetadata) *openapi.RouteSpec {
	spec := openapi.Route(route.Verb, route.Path)
	if route.OperationID != "" {
		spec.WithOperationID(route.OperationID)
	}
	if route.Summary != "" {
		spec.WithSummary(route.Summary)
	}
	if route.Description != "" {
		spec.WithDescription(route.Description)
	}
	if len(route.Tags) > 0 {
		spec.WithTags(route.Tags...)
	}
	if route.Deprecated {
		spec.MarkDeprecated()
	}
	return spec
}

func parameterSpecOf(parameter *models.ParameterMetadata) (*openapi.ParameterSpec, error) {
	shortcuts, err := locationShortcuts(parameter.Location)
	if err != nil {
		return nil, err
	}
	schema, err := paramSchema(parameter.Type, parameter.Items)
	if err != nil {
		return nil, fmt.Errorf("parameter %s: %w", parameter.Name, err)
	}
	spec := shortcuts.With(parameter.Name, schema)
	if parameter.Required {
		spec.AsRequired()
	}
	if parameter.Description != "" {
		spec.WithDescription(parameter.Description)
	}
	return spec, nil
}

func locationShortcuts(location string) (openapi.ParamShortcuts, error) {
	switch location {
	case openapi.InPath:
		return openapi.Param.Path, nil
	case openapi.InQuery:
		return openapi.Param.Query, nil
	case openapi.InHeader:
		return openapi.Param.Header, nil
	default:
		return openapi.ParamShortcuts{}, fmt.Errorf("parameter location %q is not mountable", location)
	}
}

// paramSchema maps a canonical parameter type token to its schema. An empty
// token returns nil, the inference sentinel.
func paramSchema(token, items string) (*openapi.Schema, error) {
	switch token {
	case "":
		return nil, nil
	case "string":
		return openapi.StringSchema(), nil
	case "integer":
		return openapi.IntegerSchema(), nil
	case "int32":
		return openapi.Int32Schema(), nil
	case "number":
		return openapi.NumberSchema(), nil
	case "boolean":
		return openapi.BooleanSchema(), nil
	case "uuid":
		return openapi.UUIDSchema(), nil
	case "date-time":
		return openapi.DateTimeSchema(), nil
	case "array":
		item, err := paramSchema(items, "")
		if err != nil {
			return nil, err
		}
		if item == nil {
			item = openapi.StringSchema()
		}
		return openapi.ArrayOf(item), nil
	default:
		return nil, fmt.Errorf("unsupported type token %q", token)
	}
}

// bodySpecOf builds the request body payload. Bodies naming a scanned model
// carry its schema; everything else records the inference sentinel.
func (ix *modelIndex) bodySpecOf(body *models.BodyMetadata, pkg *models.PackageMetadata) *openapi.RequestBodySpec {
	spec := openapi.Body()
	if body.Model != "" {
		if ref, err := ix.resolve(body.Model, pkg); err == nil && ref.model != nil {
			spec = openapi.BodyWithSchema(modelSchema(ref.model))
		}
	}
	if !body.Required {
		spec.AsOptional()
	}
	if body.ContentType != "" {
		spec.WithContentType(body.ContentType)
	}
	if body.Description != "" {
		spec.WithDescription(body.Description)
	}
	return spec
}

func bindingOf(injection *models.InjectionMetadata, class string) (*inject.Binding, error) {
	target := injectionTargetName(injection, class)
	var binding *inject.Binding
	switch {
	case injection.Tag != "" && injection.Key != "":
		return nil, generationError(injection.Source,
			fmt.Errorf("injection at %s declares both a key and a tag pattern", target))
	case injection.Tag != "":
		binding = inject.Tag(injection.Tag)
	case injection.Variant == models.InjectionContext:
		if injection.Key != "" {
			return nil, generationError(injection.Source,
				fmt.Errorf("injection at %s cannot combine a key with -Context", target))
		}
		binding = inject.CurrentContext()
	case injection.Key == "":
		return nil, generationError(injection.Source,
			fmt.Errorf("injection at %s needs a key, a -Tag pattern, or -Context", target))
	case injection.Variant == models.InjectionGetter:
		binding = inject.GetterOf(injection.Key)
	case injection.Variant == models.InjectionSetter:
		binding = inject.SetterOf(injection.Key)
	default:
		binding = inject.Key(injection.Key)
	}
	if injection.Optional {
		binding.AsOptional()
	}
	return binding, nil
}

func injectionTargetName(injection *models.InjectionMetadata, class string) string {
	if injection.Target == models.InjectConstructorParam {
		return fmt.Sprintf("%s constructor parameter %d", class, injection.ParamIndex)
	}
	return class + "." + injection.FieldName
}

func requirementOf(auth *models.AuthMetadata) *authenticate.Requirement {
	if auth.Skip {
		return authenticate.Skip()
	}
	requirement := authenticate.Strategy(auth.Strategy)
	for _, option := range auth.Options {
		requirement.WithOption(option.Name, option.Value)
	}
	return requirement
}

func modelSpecOf(model *models.ModelMetadata) *repository.ModelSpec {
	spec := repository.Model()
	if model.ModelName != "" && model.ModelName != model.StructName {
		spec.WithName(model.ModelName)
	}
	if model.Description != "" {
		spec.WithDescription(model.Description)
	}
	if model.Strict {
		spec.AsStrict()
	}
	return spec
}

func propertySpecOf(property *models.PropertyMetadata) (*repository.PropertySpec, error) {
	var spec *repository.PropertySpec
	switch {
	case property.Type == "":
		spec = repository.Property()
	case property.Type == "array":
		token := property.Items
		if token == "" {
			token = goElementToken(property.GoType)
		}
		item, err := repository.ParsePropertyType(token)
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", property.FieldName, err)
		}
		spec = repository.ArrayPropertyOf(item)
	default:
		propertyType, err := repository.ParsePropertyType(property.Type)
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", property.FieldName, err)
		}
		spec = repository.PropertyOf(propertyType)
	}
	if property.ID {
		spec.AsID()
	}
	if property.Generated {
		spec.AsGenerated()
	}
	if property.Required {
		spec.AsRequired()
	}
	if property.Unique {
		spec.UniqueIndexed()
	} else if property.Indexed {
		spec.Indexed()
	}
	if property.Default != "" {
		spec.WithDefault(property.Default)
	}
	if property.Description != "" {
		spec.WithDescription(property.Description)
	}
	return spec, nil
}

// modelSchema builds the canonical schema of an annotated model. The schema
// carries the struct name so the document builder hoists it into the
// components section, the same way runtime inference names it.
func modelSchema(model *models.ModelMetadata) *openapi.Schema {
	properties := make(map[string]*openapi.Schema, len(model.Properties))
	var required []string
	for i := range model.Properties {
		property := &model.Properties[i]
		properties[property.JSONName] = propertySchema(property)
		if property.Required {
			required = append(required, property.JSONName)
		}
	}
	sort.Strings(required)

	schema := openapi.ObjectSchema(properties, required...)
	schema.Name = model.StructName
	schema.Description = model.Description
	return schema
}

func propertySchema(property *models.PropertyMetadata) *openapi.Schema {
	schema := propertyTokenSchema(property.Type, property.Items, property.GoType)
	schema.Description = property.Description
	if property.Default != "" {
		schema.Default = property.Default
	}
	return schema
}

func propertyTokenSchema(token, items, goType string) *openapi.Schema {
	switch token {
	case "string":
		return openapi.StringSchema()
	case "number":
		return openapi.NumberSchema()
	case "integer":
		return openapi.IntegerSchema()
	case "boolean":
		return openapi.BooleanSchema()
	case "date":
		return openapi.DateTimeSchema()
	case "object":
		return &openapi.Schema{Type: "object"}
	case "array":
		if items != "" {
			return openapi.ArrayOf(propertyTokenSchema(items, "", ""))
		}
		element := strings.TrimPrefix(strings.TrimPrefix(goType, "*"), "[]")
		return openapi.ArrayOf(goTypeSchema(element))
	default:
		return goTypeSchema(goType)
	}
}

// goTypeSchema maps a declared Go type to its schema the way runtime
// reflection would, as far as source text allows
func goTypeSchema(goType string) *openapi.Schema {
	nullable := strings.HasPrefix(goType, "*")
	bare := strings.TrimPrefix(goType, "*")

	var schema *openapi.Schema
	switch {
	case strings.HasPrefix(bare, "[]"):
		schema = openapi.ArrayOf(goTypeSchema(bare[2:]))
	case strings.HasPrefix(bare, "map["):
		schema = &openapi.Schema{Type: "object"}
	default:
		switch bare {
		case "string":
			schema = openapi.StringSchema()
		case "bool":
			schema = openapi.BooleanSchema()
		case "int", "int64", "uint", "uint32", "uint64":
			schema = openapi.IntegerSchema()
		case "int8", "int16", "int32", "uint8", "uint16", "byte", "rune":
			schema = openapi.Int32Schema()
		case "float64":
			schema = openapi.NumberSchema()
		case "float32":
			schema = &openapi.Schema{Type: "number", Format: "float"}
		case "time.Time":
			schema = openapi.DateTimeSchema()
		case "uuid.UUID":
			schema = openapi.UUIDSchema()
		case "interface{}", "any":
			schema = &openapi.Schema{}
		default:
			schema = &openapi.Schema{Type: "object"}
		}
	}
	schema.Nullable = nullable
	return schema
}
