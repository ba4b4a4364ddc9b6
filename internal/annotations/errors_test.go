package annotations

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorFormatsIncludeLocation(t *testing.T) {
	loc := SourceLocation{File: "books.go", Line: 7, Column: 3}

	tests := []struct {
		name string
		err  AnnotationError
		want string
	}{
		{
			name: "validation",
			err:  &ValidationError{Parameter: "verb", Expected: "an HTTP verb", Actual: "FETCH", Loc: loc, Hint: "Use GET"},
			want: "books.go:7:3: parameter 'verb' validation failed: expected an HTTP verb, got FETCH. Use GET",
		},
		{
			name: "syntax",
			err:  &SyntaxError{Msg: "missing annotation kind", Loc: loc, Hint: "Add a kind"},
			want: "books.go:7:3: syntax error: missing annotation kind. Add a kind",
		},
		{
			name: "schema",
			err:  &SchemaError{Msg: "unknown annotation kind: widget", Loc: loc, Hint: "Pick a supported kind"},
			want: "books.go:7:3: schema error: unknown annotation kind: widget. Pick a supported kind",
		},
		{
			name: "unsupported",
			err:  &UnsupportedError{Feature: "relation", Msg: "cannot be registered", Loc: loc, Hint: "Remove it"},
			want: "books.go:7:3: unsupported relation: cannot be registered. Remove it",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if tt.err.Location() != loc {
				t.Errorf("Location() = %+v, want %+v", tt.err.Location(), loc)
			}
			if tt.err.Suggestion() == "" {
				t.Error("expected a suggestion")
			}
		})
	}
}

func TestRegistrationErrorWithoutLocation(t *testing.T) {
	err := &RegistrationError{Msg: "duplicate schema", Hint: "Register once"}
	if got := err.Error(); got != "registration error: duplicate schema. Register once" {
		t.Errorf("unexpected format: %q", got)
	}
}

func TestMultipleAnnotationErrorsFormatting(t *testing.T) {
	loc := SourceLocation{File: "books.go", Line: 1, Column: 1}
	multi := &MultipleAnnotationErrors{
		Errors: []AnnotationError{
			&SyntaxError{Msg: "first", Loc: loc, Hint: "a"},
			&ValidationError{Parameter: "verb", Expected: "x", Actual: "y", Loc: loc, Hint: "b"},
		},
	}

	msg := multi.Error()
	if !strings.Contains(msg, "multiple annotation errors (2 total)") {
		t.Errorf("expected the total count, got %q", msg)
	}
	if !strings.Contains(msg, "  1. ") || !strings.Contains(msg, "  2. ") {
		t.Errorf("expected a numbered list, got %q", msg)
	}

	// A single wrapped error reads as itself
	single := &MultipleAnnotationErrors{Errors: multi.Errors[:1]}
	if single.Error() != multi.Errors[0].Error() {
		t.Errorf("single error should not be wrapped in a list, got %q", single.Error())
	}
}

func TestMultipleAnnotationErrorsUnwrap(t *testing.T) {
	loc := SourceLocation{File: "books.go", Line: 1, Column: 1}
	target := &UnsupportedError{Feature: "relation", Msg: "no", Loc: loc, Hint: "remove"}
	multi := &MultipleAnnotationErrors{
		Errors: []AnnotationError{
			&SyntaxError{Msg: "first", Loc: loc, Hint: "a"},
			target,
		},
	}

	var unsupported *UnsupportedError
	if !errors.As(multi, &unsupported) {
		t.Fatal("errors.As should reach wrapped errors through Unwrap")
	}
	if unsupported != target {
		t.Error("expected the wrapped instance")
	}
}

func TestMultipleAnnotationErrorsByType(t *testing.T) {
	loc := SourceLocation{File: "books.go", Line: 1, Column: 1}
	multi := &MultipleAnnotationErrors{
		Errors: []AnnotationError{
			&SyntaxError{Msg: "first", Loc: loc},
			&SyntaxError{Msg: "second", Loc: loc},
			&SchemaError{Msg: "third", Loc: loc},
		},
	}

	if got := len(multi.GetByType(SyntaxErrorCode)); got != 2 {
		t.Errorf("expected 2 syntax errors, got %d", got)
	}
	if !multi.HasType(SchemaErrorCode) {
		t.Error("expected a schema error")
	}
	if multi.HasType(UnsupportedErrorCode) {
		t.Error("did not expect an unsupported error")
	}
}

func TestSummarizeErrors(t *testing.T) {
	loc := SourceLocation{File: "books.go", Line: 1, Column: 1}
	summary := SummarizeErrors([]AnnotationError{
		&SyntaxError{Msg: "a", Loc: loc},
		&ValidationError{Parameter: "p", Loc: loc},
		&ValidationError{Parameter: "q", Loc: loc},
		&UnsupportedError{Feature: "relation", Msg: "no", Loc: loc},
	})

	if summary.TotalCount != 4 {
		t.Errorf("expected total 4, got %d", summary.TotalCount)
	}
	if len(summary.ValidationErrors) != 2 {
		t.Errorf("expected 2 validation errors, got %d", len(summary.ValidationErrors))
	}
	if len(summary.UnsupportedErrors) != 1 {
		t.Errorf("expected 1 unsupported error, got %d", len(summary.UnsupportedErrors))
	}

	text := summary.String()
	for _, want := range []string{"4 total", "1 syntax error", "2 validation error", "1 unsupported feature"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q in summary, got %q", want, text)
		}
	}

	if got := SummarizeErrors(nil).String(); got != "No errors found" {
		t.Errorf("expected empty summary message, got %q", got)
	}
}

func TestErrorCodeString(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want string
	}{
		{SyntaxErrorCode, "SyntaxError"},
		{ValidationErrorCode, "ValidationError"},
		{SchemaErrorCode, "SchemaError"},
		{RegistrationErrorCode, "RegistrationError"},
		{UnsupportedErrorCode, "UnsupportedError"},
		{ErrorCode(42), "UnknownError"},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("ErrorCode(%d).String() = %q, want %q", tt.code, got, tt.want)
		}
	}
}
