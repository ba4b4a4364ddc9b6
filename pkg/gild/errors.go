package gild

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks against the typed error values below
var (
	ErrDuplicateEntry = errors.New("duplicate metadata entry")
	ErrUnsupported    = errors.New("unsupported metadata feature")
	ErrFrozen         = errors.New("metadata registry is frozen")
	ErrInvalidSite    = errors.New("invalid annotation site")
)

// DuplicateEntryError reports a second annotation that would violate a
// uniqueness rule. The entry at Existing is left untouched.
type DuplicateEntryError struct {
	Kind     Kind // Metadata kind of both entries
	Site     Site // Site of the rejected annotation
	Existing Site // Site of the entry that stays
}

func (e *DuplicateEntryError) Error() string {
	if e.Site == e.Existing {
		return fmt.Sprintf("duplicate %s entry at %s", e.Kind, e.Site)
	}
	return fmt.Sprintf("duplicate %s entry at %s: already declared at %s", e.Kind, e.Site, e.Existing)
}

// Is matches ErrDuplicateEntry
func (e *DuplicateEntryError) Is(target error) bool {
	return target == ErrDuplicateEntry
}

// UnsupportedError reports a request for a feature the registry recognizes but
// does not implement. Hint names the closest supported alternative.
type UnsupportedError struct {
	Feature string // What was requested
	Site    Site   // Where it was requested (optional)
	Hint    string // Suggested alternative
}

func (e *UnsupportedError) Error() string {
	msg := fmt.Sprintf("%s is not supported", e.Feature)
	if e.Site.Class != "" {
		msg = fmt.Sprintf("%s is not supported at %s", e.Feature, e.Site)
	}
	if e.Hint != "" {
		msg += ". " + e.Hint
	}
	return msg
}

// Is matches ErrUnsupported
func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}

// FrozenError reports an annotation attempted after Freeze
type FrozenError struct {
	Site Site
	Kind Kind
}

func (e *FrozenError) Error() string {
	return fmt.Sprintf("cannot annotate %s with %s: registry is frozen", e.Site, e.Kind)
}

// Is matches ErrFrozen
func (e *FrozenError) Is(target error) bool {
	return target == ErrFrozen
}
