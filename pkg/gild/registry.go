package gild

import (
	"fmt"
	"sync"
)

// MetadataRegistry defines the interface for recording and resolving
// declaration-site metadata. Writes happen during application wiring; Freeze
// ends the write phase and reads stay available for the process lifetime.
type MetadataRegistry interface {
	// Annotate attaches a payload to a site. The kind is taken from the
	// payload. Returns *DuplicateEntryError, *UnsupportedError or
	// *FrozenError on the corresponding violations.
	Annotate(site Site, payload Payload) error

	// Resolve returns the payload of the given kind at exactly this site
	Resolve(site Site, kind Kind) (Payload, bool)

	// ResolveAggregate returns every entry recorded under the site's class,
	// in annotate order. The returned slice is a copy.
	ResolveAggregate(site Site) []Entry

	// Freeze ends the write phase. Annotate fails afterwards; Resolve and
	// ResolveAggregate keep working. There is no unfreeze.
	Freeze()

	// Frozen reports whether Freeze has been called
	Frozen() bool

	// Size returns the number of recorded entries
	Size() int
}

// entryKey identifies one (site, kind) slot in the registry
type entryKey struct {
	site Site
	kind Kind
}

// memberKey identifies a (class, member) pair regardless of parameter index
type memberKey struct {
	class  string
	member string
}

// metadataRegistry is the concrete implementation of MetadataRegistry
type metadataRegistry struct {
	mu      sync.RWMutex
	entries map[entryKey]*Entry   // Slot storage
	byClass map[string][]*Entry   // Per-class entries in annotate order
	bodies  map[memberKey]Site    // Request-body sites, one per member
	frozen  bool
	seq     int
}

// NewRegistry creates an empty metadata registry
func NewRegistry() MetadataRegistry {
	return &metadataRegistry{
		entries: make(map[entryKey]*Entry),
		byClass: make(map[string][]*Entry),
		bodies:  make(map[memberKey]Site),
	}
}

// defaultRegistry is the process-wide registry instance. Application code
// should prefer passing an explicit registry; the default exists for small
// programs and generated wiring.
var (
	defaultRegistry     MetadataRegistry
	defaultRegistryOnce sync.Once
)

// Default returns the process-wide metadata registry
func Default() MetadataRegistry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Annotate attaches a payload to a site
func (r *metadataRegistry) Annotate(site Site, payload Payload) error {
	if payload == nil {
		return fmt.Errorf("cannot annotate %s with a nil payload", site)
	}
	kind := payload.Kind()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return &FrozenError{Site: site, Kind: kind}
	}

	// Relation metadata is recognized but cannot be registered yet
	if kind == KindRelation {
		return &UnsupportedError{
			Feature: "relation registration",
			Site:    site,
			Hint:    "Define the relation on the data access layer directly until relation metadata is released",
		}
	}

	if err := site.Validate(); err != nil {
		return err
	}
	if err := validateTarget(site, kind); err != nil {
		return err
	}

	// One request body per member, regardless of parameter index
	if kind == KindRequestBody {
		mk := memberKey{class: site.Class, member: site.Member}
		if existing, ok := r.bodies[mk]; ok {
			return &DuplicateEntryError{Kind: kind, Site: site, Existing: existing}
		}
	}

	key := entryKey{site: site, kind: kind}
	if existing, ok := r.entries[key]; ok {
		// Parameter slots never accept a second write
		if kind == KindParameter {
			return &DuplicateEntryError{Kind: kind, Site: site, Existing: existing.Site}
		}
		// Mergeable payloads combine with the stored entry, everything else
		// replaces it. Either way the entry keeps its declaration position.
		if m, ok := payload.(Merger); ok {
			payload = m.Merge(existing.Payload)
		}
		existing.Payload = payload
		return nil
	}

	entry := &Entry{Site: site, Kind: kind, Payload: payload, Seq: r.seq}
	r.seq++
	r.entries[key] = entry
	r.byClass[site.Class] = append(r.byClass[site.Class], entry)
	if kind == KindRequestBody {
		r.bodies[memberKey{class: site.Class, member: site.Member}] = site
	}
	return nil
}

// Resolve returns the payload of the given kind at exactly this site
func (r *metadataRegistry) Resolve(site Site, kind Kind) (Payload, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[entryKey{site: site, kind: kind}]
	if !ok {
		return nil, false
	}
	return entry.Payload, true
}

// ResolveAggregate returns every entry recorded under the site's class,
// in annotate order
func (r *metadataRegistry) ResolveAggregate(site Site) []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.byClass[site.Class]
	entries := make([]Entry, len(stored))
	for i, entry := range stored {
		entries[i] = *entry
	}
	return entries
}

// Freeze ends the write phase
func (r *metadataRegistry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

// Frozen reports whether Freeze has been called
func (r *metadataRegistry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

// Size returns the number of recorded entries
func (r *metadataRegistry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// validateTarget checks that the site shape is valid for the metadata kind
func validateTarget(site Site, kind Kind) error {
	switch kind {
	case KindRoute:
		if site.HasParam() {
			return fmt.Errorf("%w: %s applies to classes and methods, not parameters (got %s)",
				ErrInvalidSite, kind, site)
		}
	case KindParameter, KindRequestBody:
		if !site.HasMember() || !site.HasParam() {
			return fmt.Errorf("%w: %s applies to method parameters (got %s)",
				ErrInvalidSite, kind, site)
		}
	case KindInjection:
		if !site.HasMember() && !site.HasParam() {
			return fmt.Errorf("%w: %s applies to constructor parameters and properties (got %s)",
				ErrInvalidSite, kind, site)
		}
	case KindAuthentication:
		if site.HasParam() {
			return fmt.Errorf("%w: %s applies to classes and methods, not parameters (got %s)",
				ErrInvalidSite, kind, site)
		}
	case KindModel, KindRepository:
		if site.HasMember() || site.HasParam() {
			return fmt.Errorf("%w: %s applies to classes (got %s)", ErrInvalidSite, kind, site)
		}
	case KindProperty:
		if !site.HasMember() || site.HasParam() {
			return fmt.Errorf("%w: %s applies to properties (got %s)", ErrInvalidSite, kind, site)
		}
	}
	return nil
}
