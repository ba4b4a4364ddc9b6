package inject

import (
	"fmt"

	"github.com/gildlabs/gild/pkg/gild"
)

// Variant selects how a binding is resolved by the container
type Variant int

const (
	// Direct resolves the binding key to its value at injection time
	Direct Variant = iota
	// Getter injects a function that resolves the key on every call
	Getter
	// Setter injects a function that writes a value under the key
	Setter
	// TagMatch injects every binding whose tags match the pattern
	TagMatch
	// Context injects the resolution context itself
	Context
)

// String returns the canonical name of the variant
func (v Variant) String() string {
	switch v {
	case Direct:
		return "direct"
	case Getter:
		return "getter"
	case Setter:
		return "setter"
	case TagMatch:
		return "tag-match"
	case Context:
		return "context"
	default:
		return "unknown"
	}
}

// ParseVariant converts a canonical variant name to a Variant
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "direct":
		return Direct, nil
	case "getter":
		return Getter, nil
	case "setter":
		return Setter, nil
	case "tag-match":
		return TagMatch, nil
	case "context":
		return Context, nil
	default:
		return 0, fmt.Errorf("unknown injection variant: %s", s)
	}
}

// Binding is the injection metadata payload attached to a constructor
// parameter or property site. The container consuming the plan performs the
// actual resolution.
type Binding struct {
	BindingKey string                 // Key into the container, empty for TagMatch and Context
	Variant    Variant                // Resolution flavor
	TagPattern string                 // Tag filter for TagMatch bindings
	Optional   bool                   // Missing binding resolves to the zero value
	Options    map[string]interface{} // Extra resolver options, opaque here
}

// Key creates a direct binding for the given key
func Key(bindingKey string) *Binding {
	return &Binding{BindingKey: bindingKey, Variant: Direct}
}

// GetterOf creates a getter binding for the given key
func GetterOf(bindingKey string) *Binding {
	return &Binding{BindingKey: bindingKey, Variant: Getter}
}

// SetterOf creates a setter binding for the given key
func SetterOf(bindingKey string) *Binding {
	return &Binding{BindingKey: bindingKey, Variant: Setter}
}

// Tag creates a binding matching every entry tagged like the pattern
func Tag(pattern string) *Binding {
	return &Binding{Variant: TagMatch, TagPattern: pattern}
}

// CurrentContext creates a binding for the resolution context itself
func CurrentContext() *Binding {
	return &Binding{Variant: Context}
}

// AsOptional marks the binding optional
func (b *Binding) AsOptional() *Binding {
	b.Optional = true
	return b
}

// WithOption attaches one resolver option
func (b *Binding) WithOption(name string, value interface{}) *Binding {
	if b.Options == nil {
		b.Options = make(map[string]interface{})
	}
	b.Options[name] = value
	return b
}

// Kind reports the injection metadata kind
func (b *Binding) Kind() gild.Kind { return gild.KindInjection }

// Validate checks the binding is complete for its variant
func (b *Binding) Validate() error {
	switch b.Variant {
	case Direct, Getter, Setter:
		if b.BindingKey == "" {
			return fmt.Errorf("%s binding needs a binding key", b.Variant)
		}
	case TagMatch:
		if b.TagPattern == "" {
			return fmt.Errorf("tag-match binding needs a tag pattern")
		}
	case Context:
		if b.BindingKey != "" {
			return fmt.Errorf("context binding cannot carry a binding key")
		}
	default:
		return fmt.Errorf("unknown injection variant %d", b.Variant)
	}
	return nil
}

// Apply records the binding on a constructor parameter or property site
func (b *Binding) Apply(reg gild.MetadataRegistry, site gild.Site) error {
	if err := b.Validate(); err != nil {
		return fmt.Errorf("injection at %s: %w", site, err)
	}
	return reg.Annotate(site, b)
}
