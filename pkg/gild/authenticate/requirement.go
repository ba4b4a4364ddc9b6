package authenticate

import (
	"fmt"

	"github.com/gildlabs/gild/pkg/gild"
)

// Requirement is the authentication metadata payload attached to a controller
// class or method. The class-level requirement is the default for every
// method; a method-level requirement, including an explicit skip, overrides
// it. Strategy execution belongs to the security layer consuming this.
type Requirement struct {
	StrategyName string                 // Registered strategy to run
	Options      map[string]interface{} // Strategy options, opaque here
	SkipAuth     bool                   // Explicitly unauthenticated
}

// Strategy creates a requirement for the named strategy
func Strategy(name string) *Requirement {
	return &Requirement{StrategyName: name}
}

// Skip creates a requirement that turns authentication off for its site,
// overriding a class-level default
func Skip() *Requirement {
	return &Requirement{SkipAuth: true}
}

// WithOption attaches one strategy option
func (r *Requirement) WithOption(name string, value interface{}) *Requirement {
	if r.Options == nil {
		r.Options = make(map[string]interface{})
	}
	r.Options[name] = value
	return r
}

// WithOptions replaces the strategy options
func (r *Requirement) WithOptions(options map[string]interface{}) *Requirement {
	r.Options = options
	return r
}

// Kind reports the authentication metadata kind
func (r *Requirement) Kind() gild.Kind { return gild.KindAuthentication }

// Validate checks the requirement names a strategy unless it is a skip
func (r *Requirement) Validate() error {
	if r.SkipAuth {
		if r.StrategyName != "" {
			return fmt.Errorf("skip requirement cannot name a strategy")
		}
		return nil
	}
	if r.StrategyName == "" {
		return fmt.Errorf("authentication requirement needs a strategy name")
	}
	return nil
}

// Apply records the requirement on a class or method site
func (r *Requirement) Apply(reg gild.MetadataRegistry, site gild.Site) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("authentication at %s: %w", site, err)
	}
	return reg.Annotate(site, r)
}

// MetadataFor resolves the effective authentication requirement for one
// method of the site's class. A method-level entry wins over the class-level
// default; nil means the method runs unauthenticated.
func MetadataFor(reg gild.MetadataRegistry, site gild.Site, method string) (*Requirement, error) {
	class := site.ClassSite()

	if payload, ok := reg.Resolve(class.Method(method), gild.KindAuthentication); ok {
		return effective(payload, class.Class, method)
	}
	if payload, ok := reg.Resolve(class, gild.KindAuthentication); ok {
		return effective(payload, class.Class, method)
	}
	return nil, nil
}

// effective unwraps a resolved payload, folding skips to nil
func effective(payload gild.Payload, class, method string) (*Requirement, error) {
	requirement, ok := payload.(*Requirement)
	if !ok {
		return nil, fmt.Errorf("authentication entry for %s.%s holds %T, want *authenticate.Requirement",
			class, method, payload)
	}
	if requirement.SkipAuth {
		return nil, nil
	}
	return requirement, nil
}
