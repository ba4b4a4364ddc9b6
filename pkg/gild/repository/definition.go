package repository

import (
	"fmt"

	"github.com/gildlabs/gild/pkg/gild"
)

// Definition is the aggregated model surface of one class: the model spec
// plus every property entry, in declaration order
type Definition struct {
	Class      string
	Name       string // Effective model name
	Model      *ModelSpec
	Properties []PropertyDefinition
}

// PropertyDefinition pairs a property name with its spec
type PropertyDefinition struct {
	Name string
	Spec *PropertySpec
}

// ModelDefinition aggregates the model metadata of the site's class. The
// class must carry a model entry; property entries without one are a wiring
// mistake worth failing on.
func ModelDefinition(reg gild.MetadataRegistry, site gild.Site) (*Definition, error) {
	entries := reg.ResolveAggregate(site)
	definition := &Definition{Class: site.Class}

	for _, entry := range entries {
		switch entry.Kind {
		case gild.KindModel:
			model, ok := entry.Payload.(*ModelSpec)
			if !ok {
				return nil, fmt.Errorf("model entry on %s holds %T, want *repository.ModelSpec",
					site.Class, entry.Payload)
			}
			definition.Model = model
		case gild.KindProperty:
			property, ok := entry.Payload.(*PropertySpec)
			if !ok {
				return nil, fmt.Errorf("property entry at %s holds %T, want *repository.PropertySpec",
					entry.Site, entry.Payload)
			}
			definition.Properties = append(definition.Properties, PropertyDefinition{
				Name: entry.Site.Member,
				Spec: property,
			})
		}
	}

	if definition.Model == nil {
		if len(definition.Properties) > 0 {
			return nil, fmt.Errorf("class %s has property metadata but no model metadata", site.Class)
		}
		return nil, fmt.Errorf("class %s has no model metadata", site.Class)
	}

	definition.Name = definition.Model.Name
	if definition.Name == "" {
		definition.Name = site.Class
	}
	return definition, nil
}

// IDProperty returns the identifier property of the definition, if one is
// declared
func (d *Definition) IDProperty() (PropertyDefinition, bool) {
	for _, property := range d.Properties {
		if property.Spec.ID {
			return property, true
		}
	}
	return PropertyDefinition{}, false
}

// RepositoryBinding resolves the repository metadata of the site's class.
// A nil spec means the class is not a repository.
func RepositoryBinding(reg gild.MetadataRegistry, site gild.Site) (*RepositorySpec, error) {
	payload, ok := reg.Resolve(site.ClassSite(), gild.KindRepository)
	if !ok {
		return nil, nil
	}
	spec, ok := payload.(*RepositorySpec)
	if !ok {
		return nil, fmt.Errorf("repository entry on %s holds %T, want *repository.RepositorySpec",
			site.Class, payload)
	}
	return spec, nil
}
