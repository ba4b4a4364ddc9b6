package adapters

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/gildlabs/gild/pkg/gild/mount"
)

func TestChiAdapter_BasicFunctionality(t *testing.T) {
	r := chi.NewRouter()
	adapter := NewChiAdapter(r)

	if adapter.Name() != "Chi" {
		t.Errorf("Expected adapter name 'Chi', got '%s'", adapter.Name())
	}

	handler := func(c mount.Ctx) error {
		return c.JSON(200, map[string]string{"message": "hello"})
	}
	adapter.RegisterRoute("GET", "/test", handler)

	req := httptest.NewRequest("GET", "/test", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
	expectedBody := `{"message":"hello"}`
	if body := strings.TrimSpace(rec.Body.String()); body != expectedBody {
		t.Errorf("Expected body '%s', got '%s'", expectedBody, body)
	}
}

func TestChiAdapter_PathTemplates(t *testing.T) {
	r := chi.NewRouter()
	adapter := NewChiAdapter(r)

	// Chi routes the canonical template form directly
	handler := func(c mount.Ctx) error {
		return c.JSON(200, map[string]string{"id": c.PathParam("id")})
	}
	adapter.RegisterRoute("GET", "/books/{id}", handler)

	req := httptest.NewRequest("GET", "/books/abc-123", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"id":"abc-123"`) {
		t.Errorf("Expected path parameter in body, got '%s'", rec.Body.String())
	}
}

func TestChiAdapter_ErrorMapping(t *testing.T) {
	r := chi.NewRouter()
	adapter := NewChiAdapter(r)

	adapter.RegisterRoute("GET", "/missing", func(mount.Ctx) error {
		return mount.NewHttpErrorWithDetails(404, "book not found", map[string]string{"id": "9"})
	})

	req := httptest.NewRequest("GET", "/missing", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != 404 {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected JSON content type, got '%s'", ct)
	}
	if !strings.Contains(rec.Body.String(), "book not found") {
		t.Errorf("Expected error message in body, got '%s'", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"details"`) {
		t.Errorf("Expected error details in body, got '%s'", rec.Body.String())
	}
}

func TestChiAdapter_ContextValues(t *testing.T) {
	r := chi.NewRouter()
	adapter := NewChiAdapter(r)

	middleware := func(next mount.Handler) mount.Handler {
		return func(c mount.Ctx) error {
			c.Set("tenant", "acme")
			return next(c)
		}
	}
	handler := func(c mount.Ctx) error {
		tenant, _ := c.Get("tenant").(string)
		return c.JSON(200, map[string]string{"tenant": tenant})
	}
	adapter.RegisterRoute("GET", "/tenant", handler, middleware)

	req := httptest.NewRequest("GET", "/tenant", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if !strings.Contains(rec.Body.String(), `"tenant":"acme"`) {
		t.Errorf("Expected middleware value in body, got '%s'", rec.Body.String())
	}
}

func TestChiAdapter_QueryValues(t *testing.T) {
	r := chi.NewRouter()
	adapter := NewChiAdapter(r)

	adapter.RegisterRoute("GET", "/search", func(c mount.Ctx) error {
		return c.JSON(200, map[string]interface{}{
			"first": c.QueryParam("tag"),
			"all":   c.QueryValues("tag"),
		})
	})

	req := httptest.NewRequest("GET", "/search?tag=scifi&tag=classic", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if !strings.Contains(rec.Body.String(), `"first":"scifi"`) {
		t.Errorf("Expected first query value, got '%s'", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"all":["scifi","classic"]`) {
		t.Errorf("Expected all query values, got '%s'", rec.Body.String())
	}
}

func TestChiAdapter_GlobalMiddleware(t *testing.T) {
	r := chi.NewRouter()
	adapter := NewChiAdapter(r)

	adapter.Use(func(next mount.Handler) mount.Handler {
		return func(c mount.Ctx) error {
			if c.Header("X-Api-Key") == "" {
				return mount.ErrForbidden("missing api key")
			}
			return next(c)
		}
	})
	adapter.RegisterRoute("GET", "/guarded", func(c mount.Ctx) error {
		return c.NoContent(204)
	})

	req := httptest.NewRequest("GET", "/guarded", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != 403 {
		t.Errorf("Expected status 403 without key, got %d", rec.Code)
	}

	req = httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("X-Api-Key", "secret")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != 204 {
		t.Errorf("Expected status 204 with key, got %d", rec.Code)
	}
}
