package openapi

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/gildlabs/gild/pkg/gild"
)

// RouteSpec is the route metadata payload attached to a controller method.
// Verb and Path form the operation key; everything else describes the
// operation for documentation and mounting.
type RouteSpec struct {
	Verb        string
	Path        string
	OperationID string
	Summary     string
	Description string
	Tags        []string
	Deprecated  bool
	Responses   map[int]*ResponseSpec

	// Handler is the controller method bound to the operation. Method-level
	// annotation fills it from the site; class-level api specs set it via
	// WithOperation.
	Handler string
}

// ResponseSpec describes one documented response of an operation
type ResponseSpec struct {
	Description string
	ContentType string
	Schema      *Schema
	Model       reflect.Type // Go type for schema inference, optional
}

// Route creates a route spec for an arbitrary verb
func Route(verb, path string) *RouteSpec {
	return &RouteSpec{Verb: strings.ToUpper(verb), Path: path}
}

// Get creates a GET route spec
func Get(path string) *RouteSpec { return Route("GET", path) }

// Post creates a POST route spec
func Post(path string) *RouteSpec { return Route("POST", path) }

// Put creates a PUT route spec
func Put(path string) *RouteSpec { return Route("PUT", path) }

// Patch creates a PATCH route spec
func Patch(path string) *RouteSpec { return Route("PATCH", path) }

// Delete creates a DELETE route spec
func Delete(path string) *RouteSpec { return Route("DELETE", path) }

// Head creates a HEAD route spec
func Head(path string) *RouteSpec { return Route("HEAD", path) }

// Options creates an OPTIONS route spec
func Options(path string) *RouteSpec { return Route("OPTIONS", path) }

// WithOperationID sets the OpenAPI operation id
func (r *RouteSpec) WithOperationID(id string) *RouteSpec {
	r.OperationID = id
	return r
}

// WithSummary sets the operation summary
func (r *RouteSpec) WithSummary(summary string) *RouteSpec {
	r.Summary = summary
	return r
}

// WithDescription sets the operation description
func (r *RouteSpec) WithDescription(description string) *RouteSpec {
	r.Description = description
	return r
}

// WithTags sets the operation tags
func (r *RouteSpec) WithTags(tags ...string) *RouteSpec {
	r.Tags = tags
	return r
}

// MarkDeprecated flags the operation as deprecated
func (r *RouteSpec) MarkDeprecated() *RouteSpec {
	r.Deprecated = true
	return r
}

// WithResponse documents a response without a body schema
func (r *RouteSpec) WithResponse(status int, description string) *RouteSpec {
	if r.Responses == nil {
		r.Responses = make(map[int]*ResponseSpec)
	}
	r.Responses[status] = &ResponseSpec{Description: description}
	return r
}

// WithJSONResponse documents a JSON response whose schema is inferred from the
// Go type of model
func (r *RouteSpec) WithJSONResponse(status int, description string, model interface{}) *RouteSpec {
	if r.Responses == nil {
		r.Responses = make(map[int]*ResponseSpec)
	}
	r.Responses[status] = &ResponseSpec{
		Description: description,
		ContentType: ContentTypeJSON,
		Model:       reflect.TypeOf(model),
	}
	return r
}

// WithSchemaResponse documents a response with an explicit schema
func (r *RouteSpec) WithSchemaResponse(status int, description string, schema *Schema) *RouteSpec {
	if r.Responses == nil {
		r.Responses = make(map[int]*ResponseSpec)
	}
	r.Responses[status] = &ResponseSpec{
		Description: description,
		ContentType: ContentTypeJSON,
		Schema:      schema,
	}
	return r
}

// Kind reports the route metadata kind
func (r *RouteSpec) Kind() gild.Kind { return gild.KindRoute }

// Key returns the operation key, "VERB path"
func (r *RouteSpec) Key() string {
	return r.Verb + " " + r.Path
}

// Merge combines this spec with an earlier one at the same site. Fields set
// here win; zero fields inherit the previous value.
func (r *RouteSpec) Merge(prev gild.Payload) gild.Payload {
	old, ok := prev.(*RouteSpec)
	if !ok {
		return r
	}
	merged := *r
	if merged.Verb == "" {
		merged.Verb = old.Verb
	}
	if merged.Path == "" {
		merged.Path = old.Path
	}
	if merged.OperationID == "" {
		merged.OperationID = old.OperationID
	}
	if merged.Summary == "" {
		merged.Summary = old.Summary
	}
	if merged.Description == "" {
		merged.Description = old.Description
	}
	if merged.Tags == nil {
		merged.Tags = old.Tags
	}
	if merged.Handler == "" {
		merged.Handler = old.Handler
	}
	merged.Deprecated = merged.Deprecated || old.Deprecated
	if old.Responses != nil {
		combined := make(map[int]*ResponseSpec, len(old.Responses)+len(merged.Responses))
		for status, resp := range old.Responses {
			combined[status] = resp
		}
		for status, resp := range merged.Responses {
			combined[status] = resp
		}
		merged.Responses = combined
	}
	return &merged
}

// Apply records the spec on a class or method site
func (r *RouteSpec) Apply(reg gild.MetadataRegistry, site gild.Site) error {
	if r.Verb == "" || r.Path == "" {
		return fmt.Errorf("route spec for %s needs a verb and a path", site)
	}
	spec := *r
	if site.HasMember() && spec.Handler == "" {
		spec.Handler = site.Member
	}
	return reg.Annotate(site, &spec)
}

// ApiSpec is the class-level route metadata payload: shared base path and
// tags for every operation of the controller, plus operations declared at
// class level. Method-level route specs override class-level operations with
// the same operation key.
type ApiSpec struct {
	BasePath   string
	Tags       []string
	Operations []*RouteSpec
}

// Api creates a class-level api spec with a base path
func Api(basePath string) *ApiSpec {
	return &ApiSpec{BasePath: basePath}
}

// WithTags sets tags shared by every operation of the controller
func (a *ApiSpec) WithTags(tags ...string) *ApiSpec {
	a.Tags = tags
	return a
}

// WithOperation declares an operation at class level, bound to the named
// controller method
func (a *ApiSpec) WithOperation(handler string, route *RouteSpec) *ApiSpec {
	route.Handler = handler
	a.Operations = append(a.Operations, route)
	return a
}

// Kind reports the route metadata kind
func (a *ApiSpec) Kind() gild.Kind { return gild.KindRoute }

// Merge combines this api spec with an earlier one at the same class site.
// Fields set here win; operations append, with the later declaration winning
// at aggregation when keys collide.
func (a *ApiSpec) Merge(prev gild.Payload) gild.Payload {
	old, ok := prev.(*ApiSpec)
	if !ok {
		return a
	}
	merged := *a
	if merged.BasePath == "" {
		merged.BasePath = old.BasePath
	}
	if merged.Tags == nil {
		merged.Tags = old.Tags
	}
	if len(old.Operations) > 0 {
		ops := make([]*RouteSpec, 0, len(old.Operations)+len(merged.Operations))
		ops = append(ops, old.Operations...)
		ops = append(ops, merged.Operations...)
		merged.Operations = ops
	}
	return &merged
}

// Apply records the api spec on the class site
func (a *ApiSpec) Apply(reg gild.MetadataRegistry, site gild.Site) error {
	for _, op := range a.Operations {
		if op.Verb == "" || op.Path == "" {
			return fmt.Errorf("api spec for %s has an operation without a verb or path", site)
		}
		if op.Handler == "" {
			return fmt.Errorf("api spec operation %s on %s is not bound to a method", op.Key(), site)
		}
	}
	return reg.Annotate(site.ClassSite(), a)
}
