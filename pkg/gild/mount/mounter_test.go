package mount

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gildlabs/gild/pkg/gild"
	"github.com/gildlabs/gild/pkg/gild/authenticate"
	"github.com/gildlabs/gild/pkg/gild/openapi"
)

// fakeServer records registrations instead of serving
type fakeServer struct {
	routes []fakeRoute
}

type fakeRoute struct {
	verb    string
	path    string
	handler Handler
}

func (s *fakeServer) RegisterRoute(verb, path string, handler Handler, middlewares ...Middleware) {
	h := handler
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	s.routes = append(s.routes, fakeRoute{verb: verb, path: path, handler: h})
}

func (s *fakeServer) Use(Middleware)             {}
func (s *fakeServer) Start(string) error         { return nil }
func (s *fakeServer) Stop(context.Context) error { return nil }
func (s *fakeServer) Name() string               { return "Fake" }

func (s *fakeServer) route(t *testing.T, verb, path string) fakeRoute {
	t.Helper()
	for _, r := range s.routes {
		if r.verb == verb && r.path == path {
			return r
		}
	}
	t.Fatalf("no route registered for %s %s", verb, path)
	return fakeRoute{}
}

// fakeCtx implements Ctx over plain maps
type fakeCtx struct {
	method     string
	path       string
	pathParams map[string]string
	query      url.Values
	headers    http.Header
	body       []byte
	values     map[string]interface{}

	status int
	sent   interface{}
}

func newFakeCtx() *fakeCtx {
	return &fakeCtx{
		pathParams: map[string]string{},
		query:      url.Values{},
		headers:    http.Header{},
		values:     map[string]interface{}{},
	}
}

func (c *fakeCtx) Context() context.Context         { return context.Background() }
func (c *fakeCtx) Method() string                   { return c.method }
func (c *fakeCtx) Path() string                     { return c.path }
func (c *fakeCtx) PathParam(name string) string     { return c.pathParams[name] }
func (c *fakeCtx) QueryParam(name string) string    { return c.query.Get(name) }
func (c *fakeCtx) QueryValues(name string) []string { return c.query[name] }
func (c *fakeCtx) Header(name string) string        { return c.headers.Get(name) }
func (c *fakeCtx) Body() ([]byte, error)            { return c.body, nil }

func (c *fakeCtx) JSON(status int, v interface{}) error {
	c.status = status
	c.sent = v
	return nil
}

func (c *fakeCtx) String(status int, s string) error {
	c.status = status
	c.sent = s
	return nil
}

func (c *fakeCtx) NoContent(status int) error {
	c.status = status
	return nil
}

func (c *fakeCtx) Set(key string, value interface{}) { c.values[key] = value }
func (c *fakeCtx) Get(key string) interface{}        { return c.values[key] }

// bookRegistry registers a small controller: list with an optional limit,
// lookup by uuid, create with a required body.
func bookRegistry(t *testing.T) gild.MetadataRegistry {
	t.Helper()
	reg := gild.NewRegistry()
	site := gild.Class("BookController")

	require.NoError(t, openapi.Api("/books").WithTags("books").Apply(reg, site))
	require.NoError(t, openapi.Get("/").Apply(reg, site.Method("find")))
	require.NoError(t, openapi.Param.Query.Integer("limit").Apply(reg, site.Method("find").Param(0)))
	require.NoError(t, openapi.Get("/{id}").Apply(reg, site.Method("findById")))
	require.NoError(t, openapi.Param.Path.UUID("id").Apply(reg, site.Method("findById").Param(0)))
	require.NoError(t, openapi.Post("/").Apply(reg, site.Method("create")))
	require.NoError(t, openapi.Body().Apply(reg, site.Method("create").Param(0)))
	return reg
}

func noopHandler(Ctx) error { return nil }

func bookHandlers() map[string]Handler {
	return map[string]Handler{
		"find":     noopHandler,
		"findById": noopHandler,
		"create":   noopHandler,
	}
}

func TestMounter_MountRegistersRoutes(t *testing.T) {
	reg := bookRegistry(t)
	server := &fakeServer{}

	err := NewMounter(reg, server).Mount(Bind("BookController", bookHandlers()))
	require.NoError(t, err)

	require.Len(t, server.routes, 3)
	server.route(t, "GET", "/books")
	server.route(t, "GET", "/books/{id}")
	server.route(t, "POST", "/books")
}

func TestMounter_MissingHandlerFails(t *testing.T) {
	reg := bookRegistry(t)
	server := &fakeServer{}

	handlers := bookHandlers()
	delete(handlers, "create")

	err := NewMounter(reg, server).Mount(Bind("BookController", handlers))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no handler bound for create")
	assert.Empty(t, server.routes, "no route should be registered when a binding is incomplete")
}

func TestMounter_BindsCoercedArguments(t *testing.T) {
	reg := bookRegistry(t)
	server := &fakeServer{}

	var gotLimit int64
	var gotID uuid.UUID
	handlers := bookHandlers()
	handlers["find"] = func(c Ctx) error {
		gotLimit = ArgOr[int64](c, "limit", -1)
		return c.JSON(200, nil)
	}
	handlers["findById"] = func(c Ctx) error {
		var err error
		gotID, err = Arg[uuid.UUID](c, "id")
		require.NoError(t, err)
		return c.JSON(200, nil)
	}

	require.NoError(t, NewMounter(reg, server).Mount(Bind("BookController", handlers)))

	c := newFakeCtx()
	c.query.Set("limit", "25")
	require.NoError(t, server.route(t, "GET", "/books").handler(c))
	assert.Equal(t, int64(25), gotLimit)

	id := uuid.New()
	c = newFakeCtx()
	c.pathParams["id"] = id.String()
	require.NoError(t, server.route(t, "GET", "/books/{id}").handler(c))
	assert.Equal(t, id, gotID)
}

func TestMounter_OptionalParameterAbsent(t *testing.T) {
	reg := bookRegistry(t)
	server := &fakeServer{}

	handlers := bookHandlers()
	handlers["find"] = func(c Ctx) error {
		_, ok := Args(c)["limit"]
		assert.False(t, ok, "absent optional parameter must not be bound")
		assert.Equal(t, int64(10), ArgOr[int64](c, "limit", 10))
		return nil
	}

	require.NoError(t, NewMounter(reg, server).Mount(Bind("BookController", handlers)))
	require.NoError(t, server.route(t, "GET", "/books").handler(newFakeCtx()))
}

func TestMounter_CoercionFailureIsBadRequest(t *testing.T) {
	reg := bookRegistry(t)
	server := &fakeServer{}

	handlerRan := false
	handlers := bookHandlers()
	handlers["findById"] = func(Ctx) error {
		handlerRan = true
		return nil
	}

	require.NoError(t, NewMounter(reg, server).Mount(Bind("BookController", handlers)))

	c := newFakeCtx()
	c.pathParams["id"] = "not-a-uuid"
	err := server.route(t, "GET", "/books/{id}").handler(c)

	var httpErr *HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.StatusCode)
	details, ok := httpErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "id", details["parameter"])
	assert.False(t, handlerRan)
}

func TestMounter_MissingRequiredQueryParameter(t *testing.T) {
	reg := gild.NewRegistry()
	site := gild.Class("SearchController")
	require.NoError(t, openapi.Get("/search").Apply(reg, site.Method("search")))
	require.NoError(t, openapi.Param.Query.String("q").AsRequired().Apply(reg, site.Method("search").Param(0)))

	server := &fakeServer{}
	require.NoError(t, NewMounter(reg, server).Mount(Bind("SearchController", map[string]Handler{
		"search": noopHandler,
	})))

	err := server.route(t, "GET", "/search").handler(newFakeCtx())
	var httpErr *HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.StatusCode)
}

func TestMounter_RequiredBodyEnforced(t *testing.T) {
	reg := bookRegistry(t)
	server := &fakeServer{}

	type payload struct {
		Title string `json:"title"`
	}
	var got payload
	handlers := bookHandlers()
	handlers["create"] = func(c Ctx) error {
		if err := DecodeJSON(c, &got); err != nil {
			return err
		}
		return c.JSON(201, got)
	}

	require.NoError(t, NewMounter(reg, server).Mount(Bind("BookController", handlers)))
	create := server.route(t, "POST", "/books")

	err := create.handler(newFakeCtx())
	var httpErr *HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 422, httpErr.StatusCode)

	c := newFakeCtx()
	c.body = []byte(`{"title":"Dune"}`)
	require.NoError(t, create.handler(c))
	assert.Equal(t, "Dune", got.Title)
	assert.Equal(t, 201, c.status)
}

func TestMounter_AuthWithoutAuthenticatorFails(t *testing.T) {
	reg := bookRegistry(t)
	site := gild.Class("BookController")
	require.NoError(t, authenticate.Strategy("jwt").Apply(reg, site.Method("create")))

	server := &fakeServer{}
	require.NoError(t, NewMounter(reg, server).Mount(Bind("BookController", bookHandlers())))

	c := newFakeCtx()
	c.body = []byte(`{}`)
	err := server.route(t, "POST", "/books").handler(c)

	var httpErr *HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 500, httpErr.StatusCode)
}

func TestMounter_AuthRejectionIsUnauthorized(t *testing.T) {
	reg := bookRegistry(t)
	site := gild.Class("BookController")
	require.NoError(t, authenticate.Strategy("jwt").Apply(reg, site.Method("create")))

	server := &fakeServer{}
	mounter := NewMounter(reg, server).
		WithAuthenticator(AuthenticatorFunc(func(Ctx, *authenticate.Requirement) error {
			return assert.AnError
		}))
	require.NoError(t, mounter.Mount(Bind("BookController", bookHandlers())))

	err := server.route(t, "POST", "/books").handler(newFakeCtx())
	var httpErr *HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 401, httpErr.StatusCode)
}

func TestMounter_AuthHttpErrorPassesThrough(t *testing.T) {
	reg := bookRegistry(t)
	site := gild.Class("BookController")
	require.NoError(t, authenticate.Strategy("jwt").Apply(reg, site.Method("create")))

	server := &fakeServer{}
	mounter := NewMounter(reg, server).
		WithAuthenticator(AuthenticatorFunc(func(Ctx, *authenticate.Requirement) error {
			return ErrForbidden("token lacks the books:write scope")
		}))
	require.NoError(t, mounter.Mount(Bind("BookController", bookHandlers())))

	err := server.route(t, "POST", "/books").handler(newFakeCtx())
	var httpErr *HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 403, httpErr.StatusCode)
}

func TestMounter_AuthSuccessRunsHandler(t *testing.T) {
	reg := bookRegistry(t)
	site := gild.Class("BookController")
	require.NoError(t, authenticate.Strategy("jwt").Apply(reg, site.Method("create")))

	var gotStrategy string
	handlerRan := false
	handlers := bookHandlers()
	handlers["create"] = func(Ctx) error {
		handlerRan = true
		return nil
	}

	server := &fakeServer{}
	mounter := NewMounter(reg, server).
		WithAuthenticator(AuthenticatorFunc(func(_ Ctx, req *authenticate.Requirement) error {
			gotStrategy = req.StrategyName
			return nil
		}))
	require.NoError(t, mounter.Mount(Bind("BookController", handlers)))

	c := newFakeCtx()
	c.body = []byte(`{}`)
	require.NoError(t, server.route(t, "POST", "/books").handler(c))
	assert.True(t, handlerRan)
	assert.Equal(t, "jwt", gotStrategy)
}

func TestMounter_SkipBypassesAuthenticator(t *testing.T) {
	reg := bookRegistry(t)
	site := gild.Class("BookController")
	require.NoError(t, authenticate.Strategy("jwt").Apply(reg, site))
	require.NoError(t, authenticate.Skip().Apply(reg, site.Method("find")))

	authCalls := 0
	server := &fakeServer{}
	mounter := NewMounter(reg, server).
		WithAuthenticator(AuthenticatorFunc(func(Ctx, *authenticate.Requirement) error {
			authCalls++
			return nil
		}))
	require.NoError(t, mounter.Mount(Bind("BookController", bookHandlers())))

	require.NoError(t, server.route(t, "GET", "/books").handler(newFakeCtx()))
	assert.Zero(t, authCalls, "skip must bypass the class-level requirement")

	c := newFakeCtx()
	c.body = []byte(`{}`)
	require.NoError(t, server.route(t, "POST", "/books").handler(c))
	assert.Equal(t, 1, authCalls, "other operations inherit the class requirement")
}

func TestMounter_CustomCoercer(t *testing.T) {
	reg := gild.NewRegistry()
	site := gild.Class("IsbnController")
	require.NoError(t, openapi.Get("/isbn/{code}").Apply(reg, site.Method("lookup")))
	require.NoError(t, openapi.Param.Path.With("code",
		&openapi.Schema{Type: "string", Format: "isbn"}).Apply(reg, site.Method("lookup").Param(0)))

	var got string
	server := &fakeServer{}
	mounter := NewMounter(reg, server)
	mounter.Coercers().Register("string", "isbn", func(raw string) (interface{}, error) {
		if len(raw) != 13 {
			return nil, assert.AnError
		}
		return raw, nil
	})
	require.NoError(t, mounter.Mount(Bind("IsbnController", map[string]Handler{
		"lookup": func(c Ctx) error {
			got = ArgOr[string](c, "code", "")
			return nil
		},
	})))

	c := newFakeCtx()
	c.pathParams["code"] = "9780441013593"
	require.NoError(t, server.route(t, "GET", "/isbn/{code}").handler(c))
	assert.Equal(t, "9780441013593", got)

	c = newFakeCtx()
	c.pathParams["code"] = "123"
	err := server.route(t, "GET", "/isbn/{code}").handler(c)
	var httpErr *HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.StatusCode)
}
