package openapi

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/gildlabs/gild/pkg/gild"
)

// Info carries the document-level metadata of a built OpenAPI document
type Info struct {
	Title       string
	Version     string
	Description string
}

// BuildDocument assembles an OpenAPI 3 document from the aggregated route
// metadata of the given controller classes. Inference sentinels are resolved
// here; the registry content is not modified.
func BuildDocument(reg gild.MetadataRegistry, info Info, classes ...gild.Site) (*openapi3.T, error) {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       info.Title,
			Version:     info.Version,
			Description: info.Description,
		},
		Paths: &openapi3.Paths{},
		Components: &openapi3.Components{
			Schemas: make(openapi3.Schemas),
		},
	}

	for _, class := range classes {
		controller, err := ControllerSpec(reg, class)
		if err != nil {
			return nil, fmt.Errorf("controller %s: %w", class.Class, err)
		}
		for _, bound := range controller.Operations {
			if err := addOperation(doc, controller, bound); err != nil {
				return nil, fmt.Errorf("controller %s, operation %s: %w",
					class.Class, bound.Route.Key(), err)
			}
		}
	}

	return doc, nil
}

// addOperation converts one bound operation into an openapi3.Operation on the
// document's path item
func addOperation(doc *openapi3.T, controller *ControllerOperations, bound *BoundOperation) error {
	route := bound.Route
	op := &openapi3.Operation{
		OperationID: route.OperationID,
		Summary:     route.Summary,
		Description: route.Description,
		Tags:        route.Tags,
		Deprecated:  route.Deprecated,
	}
	if op.Tags == nil {
		op.Tags = controller.Tags
	}
	if op.OperationID == "" && bound.Handler != "" {
		op.OperationID = controller.Class + "." + bound.Handler
	}

	for _, param := range bound.Parameters {
		spec := param.Spec
		op.Parameters = append(op.Parameters, &openapi3.ParameterRef{
			Value: &openapi3.Parameter{
				Name:        spec.Name,
				In:          spec.In,
				Required:    spec.Required,
				Description: spec.Description,
				Deprecated:  spec.Deprecated,
				Schema:      schemaRef(spec.Schema, doc.Components.Schemas),
			},
		})
	}

	if bound.Body != nil {
		schema, err := bound.Body.Spec.ResolveSchema()
		if err != nil {
			return fmt.Errorf("request body schema: %w", err)
		}
		contentType := bound.Body.Spec.ContentType
		if contentType == "" {
			contentType = ContentTypeJSON
		}
		op.RequestBody = &openapi3.RequestBodyRef{
			Value: &openapi3.RequestBody{
				Description: bound.Body.Spec.Description,
				Required:    bound.Body.Spec.Required,
				Content: openapi3.Content{
					contentType: &openapi3.MediaType{
						Schema: schemaRef(schema, doc.Components.Schemas),
					},
				},
			},
		}
	}

	responses := &openapi3.Responses{}
	for status, spec := range route.Responses {
		response := &openapi3.Response{}
		description := spec.Description
		response.Description = &description
		if spec.Schema != nil || spec.Model != nil {
			schema := spec.Schema
			if schema == nil {
				inferred, err := InferSchema(spec.Model)
				if err != nil {
					return fmt.Errorf("response %d schema: %w", status, err)
				}
				schema = inferred
			}
			contentType := spec.ContentType
			if contentType == "" {
				contentType = ContentTypeJSON
			}
			response.Content = openapi3.Content{
				contentType: &openapi3.MediaType{
					Schema: schemaRef(schema, doc.Components.Schemas),
				},
			}
		}
		responses.Set(strconv.Itoa(status), &openapi3.ResponseRef{Value: response})
	}
	if responses.Len() == 0 {
		description := "Successful response"
		responses.Set("200", &openapi3.ResponseRef{
			Value: &openapi3.Response{Description: &description},
		})
	}
	op.Responses = responses

	fullPath := JoinPath(controller.BasePath, route.Path)
	item := doc.Paths.Value(fullPath)
	if item == nil {
		item = &openapi3.PathItem{}
		doc.Paths.Set(fullPath, item)
	}
	if item.GetOperation(route.Verb) != nil {
		return fmt.Errorf("path %s already has a %s operation", fullPath, route.Verb)
	}
	item.SetOperation(route.Verb, op)
	return nil
}

// JoinPath joins a base path and an operation path, normalizing slashes.
// Template segments like {id} pass through untouched.
func JoinPath(base, path string) string {
	base = strings.TrimSuffix(base, "/")
	if path == "" || path == "/" {
		if base == "" {
			return "/"
		}
		return base
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

// schemaRef converts a canonical schema to an openapi3 schema reference,
// hoisting named schemas into the components section. References carry the
// resolved value so an in-memory document validates without a loader pass.
func schemaRef(s *Schema, components openapi3.Schemas) *openapi3.SchemaRef {
	if s == nil {
		return nil
	}
	if s.Name != "" {
		component, done := components[s.Name]
		if !done {
			// Reserve the slot first so recursive types terminate, then
			// fill the shared value in place
			placeholder := &openapi3.Schema{}
			component = openapi3.NewSchemaRef("", placeholder)
			components[s.Name] = component
			*placeholder = *convertSchema(s, components)
		}
		return openapi3.NewSchemaRef("#/components/schemas/"+s.Name, component.Value)
	}
	return openapi3.NewSchemaRef("", convertSchema(s, components))
}

// convertSchema maps the canonical schema onto kin-openapi's schema type
func convertSchema(s *Schema, components openapi3.Schemas) *openapi3.Schema {
	out := &openapi3.Schema{
		Format:      s.Format,
		Description: s.Description,
		Nullable:    s.Nullable,
		Default:     s.Default,
		Required:    s.Required,
	}
	if s.Type != "" {
		out.Type = &openapi3.Types{s.Type}
	}
	for _, value := range s.Enum {
		out.Enum = append(out.Enum, value)
	}
	if s.Items != nil {
		out.Items = schemaRef(s.Items, components)
	}
	if s.Properties != nil {
		out.Properties = make(openapi3.Schemas, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = schemaRef(prop, components)
		}
	}
	if s.AdditionalProperties != nil {
		out.AdditionalProperties = openapi3.AdditionalProperties{
			Schema: schemaRef(s.AdditionalProperties, components),
		}
	}
	return out
}
