package models

import "fmt"

// SourceRef points at the declaration an annotation was read from
type SourceRef struct {
	File string // file path
	Line int    // line number (1-based)
}

// String formats the reference for diagnostics
func (s SourceRef) String() string {
	if s.File == "" {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d", s.File, s.Line)
}

// InjectionVariant represents how an injection site wants its binding delivered
type InjectionVariant int

const (
	InjectionValue InjectionVariant = iota
	InjectionGetter
	InjectionSetter
	InjectionContext
)

// String returns the canonical variant name
func (v InjectionVariant) String() string {
	switch v {
	case InjectionValue:
		return "value"
	case InjectionGetter:
		return "getter"
	case InjectionSetter:
		return "setter"
	case InjectionContext:
		return "context"
	default:
		return "unknown"
	}
}

// InjectionTarget represents the kind of declaration an injection attaches to
type InjectionTarget int

const (
	InjectField InjectionTarget = iota
	InjectConstructorParam
)

// String returns the target description
func (t InjectionTarget) String() string {
	switch t {
	case InjectField:
		return "field"
	case InjectConstructorParam:
		return "constructor parameter"
	default:
		return "unknown"
	}
}

// ErrorType represents the stage a toolchain error came from
type ErrorType int

const (
	ErrorTypeAnnotationSyntax ErrorType = iota
	ErrorTypeValidation
	ErrorTypeGeneration
	ErrorTypeFileSystem
	ErrorTypeSource
)
