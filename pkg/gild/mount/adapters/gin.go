package adapters

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/gildlabs/gild/pkg/gild/mount"
)

// GinAdapter implements mount.Server for the Gin framework
type GinAdapter struct {
	engine *gin.Engine
}

// NewGinAdapter creates a new Gin adapter
func NewGinAdapter(g *gin.Engine) *GinAdapter {
	return &GinAdapter{engine: g}
}

// NewDefaultGinAdapter creates a new Gin adapter with a default Gin instance
func NewDefaultGinAdapter() *GinAdapter {
	return &GinAdapter{engine: gin.Default()}
}

// RegisterRoute registers a route with the Gin server
func (ga *GinAdapter) RegisterRoute(verb, path string, handler mount.Handler, middlewares ...mount.Middleware) {
	ginPath := convertBracePath(path, func(name string) string {
		return ":" + name
	})
	ga.engine.Handle(verb, ginPath, ga.convertHandler(wrap(handler, middlewares)))
}

// Use registers a global middleware with the Gin server
func (ga *GinAdapter) Use(m mount.Middleware) {
	ga.engine.Use(func(c *gin.Context) {
		h := m(func(mount.Ctx) error {
			c.Next()
			return nil
		})
		if err := h(&GinCtx{ctx: c}); err != nil {
			c.AbortWithStatusJSON(mount.StatusOf(err), errorBody(err))
		}
	})
}

// Start starts the Gin server
func (ga *GinAdapter) Start(addr string) error {
	return ga.engine.Run(addr)
}

// Stop stops the Gin server. Gin has no shutdown of its own; wrap the
// engine in an http.Server for graceful stops.
func (ga *GinAdapter) Stop(ctx context.Context) error {
	return nil
}

// Name returns the adapter name
func (ga *GinAdapter) Name() string {
	return "Gin"
}

// GetEngine returns the underlying Gin engine
func (ga *GinAdapter) GetEngine() *gin.Engine {
	return ga.engine
}

// convertHandler converts mount.Handler to gin.HandlerFunc
func (ga *GinAdapter) convertHandler(handler mount.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := handler(&GinCtx{ctx: c}); err != nil {
			c.JSON(mount.StatusOf(err), errorBody(err))
		}
	}
}

// GinCtx implements mount.Ctx for Gin
type GinCtx struct {
	ctx  *gin.Context
	body []byte
	read bool
}

// Context returns the request-scoped context
func (gc *GinCtx) Context() context.Context {
	return gc.ctx.Request.Context()
}

// Method returns the HTTP method
func (gc *GinCtx) Method() string {
	return gc.ctx.Request.Method
}

// Path returns the request path
func (gc *GinCtx) Path() string {
	return gc.ctx.Request.URL.Path
}

// PathParam returns a path parameter
func (gc *GinCtx) PathParam(name string) string {
	return gc.ctx.Param(name)
}

// QueryParam returns the first query value for the name
func (gc *GinCtx) QueryParam(name string) string {
	return gc.ctx.Query(name)
}

// QueryValues returns every query value for the name
func (gc *GinCtx) QueryValues(name string) []string {
	return gc.ctx.Request.URL.Query()[name]
}

// Header returns a request header
func (gc *GinCtx) Header(name string) string {
	return gc.ctx.GetHeader(name)
}

// Body returns the buffered request body
func (gc *GinCtx) Body() ([]byte, error) {
	if gc.read {
		return gc.body, nil
	}
	body, err := io.ReadAll(gc.ctx.Request.Body)
	if err != nil {
		return nil, err
	}
	gc.body = body
	gc.read = true
	return body, nil
}

// JSON writes a JSON response
func (gc *GinCtx) JSON(status int, v interface{}) error {
	gc.ctx.JSON(status, v)
	return nil
}

// String writes a plain text response
func (gc *GinCtx) String(status int, s string) error {
	gc.ctx.String(status, "%s", s)
	return nil
}

// NoContent writes an empty response
func (gc *GinCtx) NoContent(status int) error {
	gc.ctx.Status(status)
	return nil
}

// Set stores a request-scoped value
func (gc *GinCtx) Set(key string, value interface{}) {
	gc.ctx.Set(key, value)
}

// Get retrieves a request-scoped value
func (gc *GinCtx) Get(key string) interface{} {
	value, _ := gc.ctx.Get(key)
	return value
}
