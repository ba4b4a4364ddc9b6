package adapters

import (
	"testing"

	"github.com/gildlabs/gild/pkg/gild/mount"
)

func TestConvertBracePath(t *testing.T) {
	colon := func(name string) string { return ":" + name }

	tests := []struct {
		path     string
		expected string
	}{
		{"/books", "/books"},
		{"/books/{id}", "/books/:id"},
		{"/shelves/{shelf}/books/{id}", "/shelves/:shelf/books/:id"},
		{"/{id}", "/:id"},
		{"/books/{id}/cover", "/books/:id/cover"},
		{"/broken/{id", "/broken/{id"},
		{"/", "/"},
	}

	for _, tt := range tests {
		if got := convertBracePath(tt.path, colon); got != tt.expected {
			t.Errorf("convertBracePath(%q) = %q, expected %q", tt.path, got, tt.expected)
		}
	}
}

func TestErrorBody(t *testing.T) {
	body := errorBody(mount.NewHttpErrorWithDetails(400, "invalid request", "limit must be a number"))
	if body["error"] != "invalid request" {
		t.Errorf("Expected message in error field, got '%v'", body["error"])
	}
	if body["details"] != "limit must be a number" {
		t.Errorf("Expected details field, got '%v'", body["details"])
	}

	body = errorBody(mount.ErrNotFound("gone"))
	if _, ok := body["details"]; ok {
		t.Error("Expected no details field for an error without details")
	}
}
