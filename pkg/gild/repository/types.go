package repository

import "fmt"

// PropertyType is the persistence-neutral type of a model property
type PropertyType int

const (
	TypeString PropertyType = iota
	TypeNumber
	TypeInteger
	TypeBoolean
	TypeDate
	TypeObject
	TypeArray
)

// String returns the canonical name of the property type
func (t PropertyType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeNumber:
		return "number"
	case TypeInteger:
		return "integer"
	case TypeBoolean:
		return "boolean"
	case TypeDate:
		return "date"
	case TypeObject:
		return "object"
	case TypeArray:
		return "array"
	default:
		return "unknown"
	}
}

// ParsePropertyType converts a canonical name to a PropertyType
func ParsePropertyType(s string) (PropertyType, error) {
	switch s {
	case "string":
		return TypeString, nil
	case "number":
		return TypeNumber, nil
	case "integer":
		return TypeInteger, nil
	case "boolean":
		return TypeBoolean, nil
	case "date":
		return TypeDate, nil
	case "object":
		return TypeObject, nil
	case "array":
		return TypeArray, nil
	default:
		return 0, fmt.Errorf("unknown property type: %s", s)
	}
}

// RelationType is the flavor of a model relation. The type system mirrors the
// full relation surface even though registration is not available yet.
type RelationType int

const (
	BelongsTo RelationType = iota
	HasOne
	HasMany
	HasManyThrough
	ReferencesMany
)

// String returns the canonical name of the relation type
func (t RelationType) String() string {
	switch t {
	case BelongsTo:
		return "belongsTo"
	case HasOne:
		return "hasOne"
	case HasMany:
		return "hasMany"
	case HasManyThrough:
		return "hasManyThrough"
	case ReferencesMany:
		return "referencesMany"
	default:
		return "unknown"
	}
}

// ParseRelationType converts a canonical name to a RelationType
func ParseRelationType(s string) (RelationType, error) {
	switch s {
	case "belongsTo":
		return BelongsTo, nil
	case "hasOne":
		return HasOne, nil
	case "hasMany":
		return HasMany, nil
	case "hasManyThrough":
		return HasManyThrough, nil
	case "referencesMany":
		return ReferencesMany, nil
	default:
		return 0, fmt.Errorf("unknown relation type: %s", s)
	}
}
