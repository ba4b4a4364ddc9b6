package inject

import (
	"fmt"
	"sort"

	"github.com/gildlabs/gild/pkg/gild"
)

// InjectionPlan is the aggregated injection surface of one class: what the
// container has to provide to construct and populate an instance
type InjectionPlan struct {
	Class       string
	Constructor []ConstructorBinding // Dense, ordered by parameter index
	Properties  []PropertyBinding    // Declaration order
}

// ConstructorBinding pairs a constructor parameter index with its binding
type ConstructorBinding struct {
	Index   int
	Binding *Binding
}

// PropertyBinding pairs a property name with its binding
type PropertyBinding struct {
	Property string
	Binding  *Binding
}

// Plan aggregates the injection metadata of the site's class. Constructor
// bindings must cover a dense index range starting at zero; a gap means a
// parameter the container could not resolve.
//
// Method parameter injection sites are not part of the plan: request-time
// argument binding owns those.
func Plan(reg gild.MetadataRegistry, site gild.Site) (*InjectionPlan, error) {
	entries := reg.ResolveAggregate(site)
	plan := &InjectionPlan{Class: site.Class}

	for _, entry := range entries {
		if entry.Kind != gild.KindInjection {
			continue
		}
		binding, ok := entry.Payload.(*Binding)
		if !ok {
			return nil, fmt.Errorf("injection entry at %s holds %T, want *inject.Binding",
				entry.Site, entry.Payload)
		}
		if err := binding.Validate(); err != nil {
			return nil, fmt.Errorf("injection entry at %s: %w", entry.Site, err)
		}

		switch {
		case !entry.Site.HasMember() && entry.Site.HasParam():
			plan.Constructor = append(plan.Constructor, ConstructorBinding{
				Index:   entry.Site.ParamIndex,
				Binding: binding,
			})
		case entry.Site.HasMember() && !entry.Site.HasParam():
			plan.Properties = append(plan.Properties, PropertyBinding{
				Property: entry.Site.Member,
				Binding:  binding,
			})
		}
	}

	sort.Slice(plan.Constructor, func(i, j int) bool {
		return plan.Constructor[i].Index < plan.Constructor[j].Index
	})
	for i, binding := range plan.Constructor {
		if binding.Index != i {
			return nil, fmt.Errorf("constructor of %s: parameter %d has no injection binding",
				plan.Class, i)
		}
	}

	return plan, nil
}
