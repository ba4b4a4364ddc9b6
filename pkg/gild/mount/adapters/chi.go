package adapters

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gildlabs/gild/pkg/gild/mount"
)

// ChiAdapter implements mount.Server for the chi router. Chi routes with
// "{name}" templates natively, so paths pass through unconverted.
type ChiAdapter struct {
	router *chi.Mux
	server *http.Server
}

// NewChiAdapter creates a new chi adapter
func NewChiAdapter(r *chi.Mux) *ChiAdapter {
	return &ChiAdapter{router: r}
}

// NewDefaultChiAdapter creates a new chi adapter with logging and panic
// recovery middleware
func NewDefaultChiAdapter() *ChiAdapter {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	return &ChiAdapter{router: r}
}

// RegisterRoute registers a route with the chi router
func (ca *ChiAdapter) RegisterRoute(verb, path string, handler mount.Handler, middlewares ...mount.Middleware) {
	ca.router.MethodFunc(verb, path, ca.convertHandler(wrap(handler, middlewares)))
}

// Use registers a global middleware with the chi router
func (ca *ChiAdapter) Use(m mount.Middleware) {
	ca.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cc := &ChiCtx{w: w, r: r}
			h := m(func(mount.Ctx) error {
				next.ServeHTTP(w, cc.r)
				return nil
			})
			if err := h(cc); err != nil {
				writeChiError(w, err)
			}
		})
	})
}

// Start starts an http.Server over the chi router
func (ca *ChiAdapter) Start(addr string) error {
	ca.server = &http.Server{Addr: addr, Handler: ca.router}
	return ca.server.ListenAndServe()
}

// Stop stops the chi server gracefully
func (ca *ChiAdapter) Stop(ctx context.Context) error {
	if ca.server == nil {
		return nil
	}
	return ca.server.Shutdown(ctx)
}

// Name returns the adapter name
func (ca *ChiAdapter) Name() string {
	return "Chi"
}

// GetRouter returns the underlying chi router
func (ca *ChiAdapter) GetRouter() *chi.Mux {
	return ca.router
}

// convertHandler converts mount.Handler to http.HandlerFunc
func (ca *ChiAdapter) convertHandler(handler mount.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := handler(&ChiCtx{w: w, r: r}); err != nil {
			writeChiError(w, err)
		}
	}
}

func writeChiError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(mount.StatusOf(err))
	_ = json.NewEncoder(w).Encode(errorBody(err))
}

// chiValueKey namespaces request-scoped values in the request context
type chiValueKey string

// ChiCtx implements mount.Ctx for chi
type ChiCtx struct {
	w    http.ResponseWriter
	r    *http.Request
	body []byte
	read bool
}

// Context returns the request-scoped context
func (cc *ChiCtx) Context() context.Context {
	return cc.r.Context()
}

// Method returns the HTTP method
func (cc *ChiCtx) Method() string {
	return cc.r.Method
}

// Path returns the request path
func (cc *ChiCtx) Path() string {
	return cc.r.URL.Path
}

// PathParam returns a path parameter
func (cc *ChiCtx) PathParam(name string) string {
	return chi.URLParam(cc.r, name)
}

// QueryParam returns the first query value for the name
func (cc *ChiCtx) QueryParam(name string) string {
	return cc.r.URL.Query().Get(name)
}

// QueryValues returns every query value for the name
func (cc *ChiCtx) QueryValues(name string) []string {
	return cc.r.URL.Query()[name]
}

// Header returns a request header
func (cc *ChiCtx) Header(name string) string {
	return cc.r.Header.Get(name)
}

// Body returns the buffered request body
func (cc *ChiCtx) Body() ([]byte, error) {
	if cc.read {
		return cc.body, nil
	}
	body, err := io.ReadAll(cc.r.Body)
	if err != nil {
		return nil, err
	}
	cc.body = body
	cc.read = true
	return body, nil
}

// JSON writes a JSON response
func (cc *ChiCtx) JSON(status int, v interface{}) error {
	cc.w.Header().Set("Content-Type", "application/json")
	cc.w.WriteHeader(status)
	return json.NewEncoder(cc.w).Encode(v)
}

// String writes a plain text response
func (cc *ChiCtx) String(status int, s string) error {
	cc.w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	cc.w.WriteHeader(status)
	_, err := io.WriteString(cc.w, s)
	return err
}

// NoContent writes an empty response
func (cc *ChiCtx) NoContent(status int) error {
	cc.w.WriteHeader(status)
	return nil
}

// Set stores a request-scoped value on the request context
func (cc *ChiCtx) Set(key string, value interface{}) {
	cc.r = cc.r.WithContext(context.WithValue(cc.r.Context(), chiValueKey(key), value))
}

// Get retrieves a request-scoped value
func (cc *ChiCtx) Get(key string) interface{} {
	return cc.r.Context().Value(chiValueKey(key))
}
