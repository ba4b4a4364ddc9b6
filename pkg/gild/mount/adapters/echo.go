package adapters

import (
	"context"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/gildlabs/gild/pkg/gild/mount"
)

// EchoAdapter implements mount.Server for the Echo framework
type EchoAdapter struct {
	engine *echo.Echo
}

// NewEchoAdapter creates a new Echo adapter
func NewEchoAdapter(e *echo.Echo) *EchoAdapter {
	return &EchoAdapter{engine: e}
}

// NewDefaultEchoAdapter creates a new Echo adapter with a default Echo instance
func NewDefaultEchoAdapter() *EchoAdapter {
	return &EchoAdapter{engine: echo.New()}
}

// RegisterRoute registers a route with the Echo server
func (ea *EchoAdapter) RegisterRoute(verb, path string, handler mount.Handler, middlewares ...mount.Middleware) {
	echoPath := convertBracePath(path, func(name string) string {
		return ":" + name
	})
	ea.engine.Add(verb, echoPath, ea.convertHandler(wrap(handler, middlewares)))
}

// Use registers a global middleware with the Echo server. It applies to
// routes registered before and after the call.
func (ea *EchoAdapter) Use(m mount.Middleware) {
	ea.engine.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := m(func(mount.Ctx) error {
				return next(c)
			})
			return h(&EchoCtx{ctx: c})
		}
	})
}

// Start starts the Echo server
func (ea *EchoAdapter) Start(addr string) error {
	return ea.engine.Start(addr)
}

// Stop stops the Echo server gracefully
func (ea *EchoAdapter) Stop(ctx context.Context) error {
	return ea.engine.Shutdown(ctx)
}

// Name returns the adapter name
func (ea *EchoAdapter) Name() string {
	return "Echo"
}

// GetEngine returns the underlying Echo instance
func (ea *EchoAdapter) GetEngine() *echo.Echo {
	return ea.engine
}

// convertHandler converts mount.Handler to echo.HandlerFunc
func (ea *EchoAdapter) convertHandler(handler mount.Handler) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := handler(&EchoCtx{ctx: c}); err != nil {
			return c.JSON(mount.StatusOf(err), errorBody(err))
		}
		return nil
	}
}

// EchoCtx implements mount.Ctx for Echo
type EchoCtx struct {
	ctx  echo.Context
	body []byte
	read bool
}

// Context returns the request-scoped context
func (ec *EchoCtx) Context() context.Context {
	return ec.ctx.Request().Context()
}

// Method returns the HTTP method
func (ec *EchoCtx) Method() string {
	return ec.ctx.Request().Method
}

// Path returns the request path
func (ec *EchoCtx) Path() string {
	return ec.ctx.Request().URL.Path
}

// PathParam returns a path parameter
func (ec *EchoCtx) PathParam(name string) string {
	return ec.ctx.Param(name)
}

// QueryParam returns the first query value for the name
func (ec *EchoCtx) QueryParam(name string) string {
	return ec.ctx.QueryParam(name)
}

// QueryValues returns every query value for the name
func (ec *EchoCtx) QueryValues(name string) []string {
	return ec.ctx.QueryParams()[name]
}

// Header returns a request header
func (ec *EchoCtx) Header(name string) string {
	return ec.ctx.Request().Header.Get(name)
}

// Body returns the buffered request body
func (ec *EchoCtx) Body() ([]byte, error) {
	if ec.read {
		return ec.body, nil
	}
	body, err := io.ReadAll(ec.ctx.Request().Body)
	if err != nil {
		return nil, err
	}
	ec.body = body
	ec.read = true
	return body, nil
}

// JSON writes a JSON response
func (ec *EchoCtx) JSON(status int, v interface{}) error {
	return ec.ctx.JSON(status, v)
}

// String writes a plain text response
func (ec *EchoCtx) String(status int, s string) error {
	return ec.ctx.String(status, s)
}

// NoContent writes an empty response
func (ec *EchoCtx) NoContent(status int) error {
	return ec.ctx.NoContent(status)
}

// Set stores a request-scoped value
func (ec *EchoCtx) Set(key string, value interface{}) {
	ec.ctx.Set(key, value)
}

// Get retrieves a request-scoped value
func (ec *EchoCtx) Get(key string) interface{} {
	return ec.ctx.Get(key)
}
