package adapters

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/gildlabs/gild/pkg/gild/mount"
)

// FiberAdapter implements mount.Server for the Fiber framework
type FiberAdapter struct {
	app *fiber.App
}

// NewFiberAdapter creates a new Fiber adapter
func NewFiberAdapter() *FiberAdapter {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})
	return &FiberAdapter{app: app}
}

// NewDefaultFiberAdapter creates a new Fiber adapter with logging and panic
// recovery middleware
func NewDefaultFiberAdapter() *FiberAdapter {
	adapter := NewFiberAdapter()
	adapter.app.Use(logger.New())
	adapter.app.Use(recover.New())
	return adapter
}

// RegisterRoute registers a route with the Fiber app
func (fa *FiberAdapter) RegisterRoute(verb, path string, handler mount.Handler, middlewares ...mount.Middleware) {
	fiberPath := convertBracePath(path, func(name string) string {
		return ":" + name
	})
	fiberHandler := fa.convertHandler(wrap(handler, middlewares))

	switch strings.ToUpper(verb) {
	case "GET":
		fa.app.Get(fiberPath, fiberHandler)
	case "POST":
		fa.app.Post(fiberPath, fiberHandler)
	case "PUT":
		fa.app.Put(fiberPath, fiberHandler)
	case "DELETE":
		fa.app.Delete(fiberPath, fiberHandler)
	case "PATCH":
		fa.app.Patch(fiberPath, fiberHandler)
	case "OPTIONS":
		fa.app.Options(fiberPath, fiberHandler)
	case "HEAD":
		fa.app.Head(fiberPath, fiberHandler)
	default:
		fa.app.Add(strings.ToUpper(verb), fiberPath, fiberHandler)
	}
}

// Use registers a global middleware with the Fiber app
func (fa *FiberAdapter) Use(m mount.Middleware) {
	fa.app.Use(func(c *fiber.Ctx) error {
		h := m(func(mount.Ctx) error {
			return c.Next()
		})
		return h(&FiberCtx{ctx: c})
	})
}

// Start starts the Fiber server
func (fa *FiberAdapter) Start(addr string) error {
	return fa.app.Listen(addr)
}

// Stop stops the Fiber server
func (fa *FiberAdapter) Stop(ctx context.Context) error {
	return fa.app.Shutdown()
}

// Name returns the adapter name
func (fa *FiberAdapter) Name() string {
	return "Fiber"
}

// GetApp returns the underlying Fiber app
func (fa *FiberAdapter) GetApp() *fiber.App {
	return fa.app
}

// convertHandler converts mount.Handler to fiber.Handler
func (fa *FiberAdapter) convertHandler(handler mount.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := handler(&FiberCtx{ctx: c}); err != nil {
			return c.Status(mount.StatusOf(err)).JSON(errorBody(err))
		}
		return nil
	}
}

// FiberCtx implements mount.Ctx for Fiber
type FiberCtx struct {
	ctx *fiber.Ctx
}

// Context returns the request-scoped context
func (fc *FiberCtx) Context() context.Context {
	return fc.ctx.UserContext()
}

// Method returns the HTTP method
func (fc *FiberCtx) Method() string {
	return fc.ctx.Method()
}

// Path returns the request path
func (fc *FiberCtx) Path() string {
	return fc.ctx.Path()
}

// PathParam returns a path parameter
func (fc *FiberCtx) PathParam(name string) string {
	return fc.ctx.Params(name)
}

// QueryParam returns the first query value for the name
func (fc *FiberCtx) QueryParam(name string) string {
	return fc.ctx.Query(name)
}

// QueryValues returns every query value for the name
func (fc *FiberCtx) QueryValues(name string) []string {
	raw := fc.ctx.Context().QueryArgs().PeekMulti(name)
	if len(raw) == 0 {
		return nil
	}
	values := make([]string, len(raw))
	for i, v := range raw {
		values[i] = string(v)
	}
	return values
}

// Header returns a request header
func (fc *FiberCtx) Header(name string) string {
	return fc.ctx.Get(name)
}

// Body returns the request body. Fiber buffers it internally.
func (fc *FiberCtx) Body() ([]byte, error) {
	return fc.ctx.Body(), nil
}

// JSON writes a JSON response
func (fc *FiberCtx) JSON(status int, v interface{}) error {
	return fc.ctx.Status(status).JSON(v)
}

// String writes a plain text response
func (fc *FiberCtx) String(status int, s string) error {
	return fc.ctx.Status(status).SendString(s)
}

// NoContent writes an empty response
func (fc *FiberCtx) NoContent(status int) error {
	return fc.ctx.SendStatus(status)
}

// Set stores a request-scoped value
func (fc *FiberCtx) Set(key string, value interface{}) {
	fc.ctx.Locals(key, value)
}

// Get retrieves a request-scoped value
func (fc *FiberCtx) Get(key string) interface{} {
	return fc.ctx.Locals(key)
}
