package mount

import (
	"context"
	"fmt"
	"net/http"
)

// Handler processes one request through the framework-agnostic context
type Handler func(Ctx) error

// Middleware wraps a handler with cross-cutting behavior
type Middleware func(Handler) Handler

// Ctx is the narrow request context handlers receive. One implementation
// exists per supported engine; handlers never see the engine type.
type Ctx interface {
	// Context returns the request-scoped context
	Context() context.Context

	// Method returns the HTTP method
	Method() string

	// Path returns the request path
	Path() string

	// PathParam returns a path parameter by name
	PathParam(name string) string

	// QueryParam returns the first query value for the name
	QueryParam(name string) string

	// QueryValues returns every query value for the name
	QueryValues(name string) []string

	// Header returns a request header value
	Header(name string) string

	// Body returns the raw request body. Implementations buffer it, so
	// repeated calls return the same bytes.
	Body() ([]byte, error)

	// JSON writes a JSON response
	JSON(status int, v interface{}) error

	// String writes a plain text response
	String(status int, s string) error

	// NoContent writes an empty response
	NoContent(status int) error

	// Set stores a request-scoped value
	Set(key string, value interface{})

	// Get retrieves a request-scoped value
	Get(key string) interface{}
}

// Server abstracts the HTTP engine routes are mounted on. Paths use the
// canonical template form, "/books/{id}"; adapters translate to the engine's
// syntax.
type Server interface {
	// RegisterRoute registers one route on the engine
	RegisterRoute(verb, path string, handler Handler, middlewares ...Middleware)

	// Use adds engine-global middleware
	Use(middleware Middleware)

	// Start starts the server on the address
	Start(addr string) error

	// Stop shuts the server down
	Stop(ctx context.Context) error

	// Name identifies the engine for diagnostics
	Name() string
}

// HttpError is an error with an HTTP status. Adapters translate it to the
// engine's error rendering; any other error becomes a 500.
type HttpError struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Details    any    `json:"details,omitempty"`
}

// Error implements the error interface
func (e *HttpError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// NewHttpError creates a new HttpError with the given status code and message
func NewHttpError(statusCode int, message string) *HttpError {
	return &HttpError{StatusCode: statusCode, Message: message}
}

// NewHttpErrorWithDetails creates a new HttpError with additional details
func NewHttpErrorWithDetails(statusCode int, message string, details any) *HttpError {
	return &HttpError{StatusCode: statusCode, Message: message, Details: details}
}

// ErrBadRequest creates a 400 Bad Request error
func ErrBadRequest(message string) *HttpError {
	return NewHttpError(http.StatusBadRequest, message)
}

// ErrUnauthorized creates a 401 Unauthorized error
func ErrUnauthorized(message string) *HttpError {
	return NewHttpError(http.StatusUnauthorized, message)
}

// ErrForbidden creates a 403 Forbidden error
func ErrForbidden(message string) *HttpError {
	return NewHttpError(http.StatusForbidden, message)
}

// ErrNotFound creates a 404 Not Found error
func ErrNotFound(message string) *HttpError {
	return NewHttpError(http.StatusNotFound, message)
}

// ErrUnprocessableEntity creates a 422 Unprocessable Entity error
func ErrUnprocessableEntity(message string) *HttpError {
	return NewHttpError(http.StatusUnprocessableEntity, message)
}

// ErrInternalServerError creates a 500 Internal Server Error
func ErrInternalServerError(message string) *HttpError {
	return NewHttpError(http.StatusInternalServerError, message)
}

// StatusOf extracts the HTTP status of an error, defaulting to 500
func StatusOf(err error) int {
	if httpErr, ok := err.(*HttpError); ok {
		return httpErr.StatusCode
	}
	return http.StatusInternalServerError
}
