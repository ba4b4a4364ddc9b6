package gild

import "fmt"

// Kind identifies the category of metadata a payload carries
type Kind int

const (
	KindRoute Kind = iota
	KindParameter
	KindRequestBody
	KindInjection
	KindAuthentication
	KindModel
	KindProperty
	KindRepository
	KindRelation
)

// String returns the canonical name of the kind
func (k Kind) String() string {
	switch k {
	case KindRoute:
		return "route-spec"
	case KindParameter:
		return "parameter-spec"
	case KindRequestBody:
		return "request-body-spec"
	case KindInjection:
		return "injection-spec"
	case KindAuthentication:
		return "authentication-spec"
	case KindModel:
		return "model-spec"
	case KindProperty:
		return "property-spec"
	case KindRepository:
		return "repository-spec"
	case KindRelation:
		return "relation-spec"
	default:
		return "unknown"
	}
}

// ParseKind converts a canonical kind name to a Kind
func ParseKind(s string) (Kind, error) {
	switch s {
	case "route-spec":
		return KindRoute, nil
	case "parameter-spec":
		return KindParameter, nil
	case "request-body-spec":
		return KindRequestBody, nil
	case "injection-spec":
		return KindInjection, nil
	case "authentication-spec":
		return KindAuthentication, nil
	case "model-spec":
		return KindModel, nil
	case "property-spec":
		return KindProperty, nil
	case "repository-spec":
		return KindRepository, nil
	case "relation-spec":
		return KindRelation, nil
	default:
		return 0, fmt.Errorf("unknown metadata kind: %s", s)
	}
}

// Payload is the metadata value attached to a site. Each kind has one payload
// type, defined in the sub-package that owns the concern (openapi, inject,
// authenticate, repository).
type Payload interface {
	// Kind reports which metadata category the payload belongs to
	Kind() Kind
}

// Merger is implemented by payloads that combine with an earlier payload of
// the same kind at the same site instead of replacing it. Merge returns the
// payload to store; prev is the entry currently held by the registry.
type Merger interface {
	Merge(prev Payload) Payload
}

// Entry is a single recorded annotation: a payload of some kind attached to a
// site, with the registry-assigned declaration sequence number.
type Entry struct {
	Site    Site
	Kind    Kind
	Payload Payload
	Seq     int // Position in annotate order, stable across re-annotation
}
