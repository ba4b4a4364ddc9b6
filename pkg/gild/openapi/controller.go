package openapi

import (
	"fmt"

	"github.com/gildlabs/gild/pkg/gild"
)

// ControllerOperations is the aggregated route surface of one controller
// class: the class-level api spec combined with every method-level route,
// parameter and request body entry, in declaration order.
type ControllerOperations struct {
	Class      string
	BasePath   string
	Tags       []string
	Operations []*BoundOperation
}

// BoundOperation is one mountable operation: the route spec plus the
// parameter and request body entries of the handler method
type BoundOperation struct {
	Handler    string
	Route      *RouteSpec
	Parameters []BoundParameter
	Body       *BoundBody
	FromClass  bool // Declared only by the class-level api spec
}

// BoundParameter pairs a parameter spec with its parameter index
type BoundParameter struct {
	Index int
	Spec  *ParameterSpec
}

// BoundBody pairs a request body spec with its parameter index
type BoundBody struct {
	Index int
	Spec  *RequestBodySpec
}

// ControllerSpec aggregates the route metadata of the site's class. Method
// route specs override class-level operations with the same operation key;
// the overridden class operation still contributes its fields as defaults.
func ControllerSpec(reg gild.MetadataRegistry, site gild.Site) (*ControllerOperations, error) {
	entries := reg.ResolveAggregate(site)
	class := site.Class

	result := &ControllerOperations{Class: class}

	// Parameter and request body entries grouped by member, declaration order
	params := make(map[string][]BoundParameter)
	bodies := make(map[string]*BoundBody)
	for _, entry := range entries {
		switch entry.Kind {
		case gild.KindParameter:
			spec, ok := entry.Payload.(*ParameterSpec)
			if !ok {
				return nil, fmt.Errorf("parameter entry at %s holds %T, want *openapi.ParameterSpec",
					entry.Site, entry.Payload)
			}
			if err := spec.Validate(); err != nil {
				return nil, fmt.Errorf("parameter entry at %s: %w", entry.Site, err)
			}
			member := entry.Site.Member
			params[member] = append(params[member], BoundParameter{Index: entry.Site.ParamIndex, Spec: spec})
		case gild.KindRequestBody:
			spec, ok := entry.Payload.(*RequestBodySpec)
			if !ok {
				return nil, fmt.Errorf("request body entry at %s holds %T, want *openapi.RequestBodySpec",
					entry.Site, entry.Payload)
			}
			bodies[entry.Site.Member] = &BoundBody{Index: entry.Site.ParamIndex, Spec: spec}
		}
	}

	// Class-level operations queue up, method-level routes claim their keys
	var classOps []*RouteSpec
	taken := make(map[string]string) // Operation key -> handler that declared it

	for _, entry := range entries {
		if entry.Kind != gild.KindRoute {
			continue
		}
		if !entry.Site.HasMember() {
			api, ok := entry.Payload.(*ApiSpec)
			if !ok {
				return nil, fmt.Errorf("class-level route entry on %s holds %T, want *openapi.ApiSpec",
					class, entry.Payload)
			}
			result.BasePath = api.BasePath
			result.Tags = api.Tags
			classOps = appendClassOps(classOps, api.Operations)
			continue
		}

		route, ok := entry.Payload.(*RouteSpec)
		if !ok {
			return nil, fmt.Errorf("route entry at %s holds %T, want *openapi.RouteSpec",
				entry.Site, entry.Payload)
		}
		member := entry.Site.Member
		bound := *route
		if bound.Handler == "" {
			bound.Handler = member
		}

		// A class operation with the same key turns into defaults
		if base := takeClassOp(&classOps, bound.Key()); base != nil {
			merged := (&bound).Merge(base).(*RouteSpec)
			bound = *merged
			bound.Handler = member
		}

		if owner, dup := taken[bound.Key()]; dup {
			return nil, fmt.Errorf("controller %s declares %s twice: %s and %s",
				class, bound.Key(), owner, member)
		}
		taken[bound.Key()] = member

		result.Operations = append(result.Operations, &BoundOperation{
			Handler:    member,
			Route:      &bound,
			Parameters: params[member],
			Body:       bodies[member],
		})
	}

	// Operations only the api spec declares mount against their named handler
	for _, op := range classOps {
		if owner, dup := taken[op.Key()]; dup {
			return nil, fmt.Errorf("controller %s declares %s twice: %s and %s",
				class, op.Key(), owner, op.Handler)
		}
		taken[op.Key()] = op.Handler
		result.Operations = append(result.Operations, &BoundOperation{
			Handler:    op.Handler,
			Route:      op,
			Parameters: params[op.Handler],
			Body:       bodies[op.Handler],
			FromClass:  true,
		})
	}

	return result, nil
}

// appendClassOps queues class-level operations, later declarations replacing
// earlier ones with the same key
func appendClassOps(queue []*RouteSpec, ops []*RouteSpec) []*RouteSpec {
	for _, op := range ops {
		replaced := false
		for i, existing := range queue {
			if existing.Key() == op.Key() {
				queue[i] = op
				replaced = true
				break
			}
		}
		if !replaced {
			queue = append(queue, op)
		}
	}
	return queue
}

// takeClassOp removes and returns the queued class operation with the key
func takeClassOp(queue *[]*RouteSpec, key string) *RouteSpec {
	for i, op := range *queue {
		if op.Key() == key {
			*queue = append((*queue)[:i], (*queue)[i+1:]...)
			return op
		}
	}
	return nil
}
