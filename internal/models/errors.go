package models

import "fmt"

// GeneratorError represents an error from the scan or generation pipeline
type GeneratorError struct {
	Type    ErrorType // stage that produced the error
	File    string    // file where the error occurred
	Line    int       // line number where the error occurred
	Message string    // error message
	Cause   error     // underlying cause
}

// Error implements the error interface
func (e *GeneratorError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("%s: %s", e.File, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying cause
func (e *GeneratorError) Unwrap() error {
	return e.Cause
}
