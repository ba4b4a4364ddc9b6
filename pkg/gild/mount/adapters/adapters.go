// Package adapters provides mount.Server implementations for the supported
// HTTP engines. Routes are registered with canonical "{name}" path templates
// and converted to each engine's parameter syntax.
package adapters

import (
	"strings"

	"github.com/gildlabs/gild/pkg/gild/mount"
)

// wrap composes route-level middlewares around a handler, first middleware
// outermost
func wrap(handler mount.Handler, middlewares []mount.Middleware) mount.Handler {
	h := handler
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// convertBracePath rewrites "{name}" segments using the engine's parameter
// syntax
func convertBracePath(path string, param func(name string) string) string {
	var b strings.Builder
	rest := path
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			return b.String()
		}
		closing := strings.IndexByte(rest[open:], '}')
		if closing < 0 {
			b.WriteString(rest)
			return b.String()
		}
		b.WriteString(rest[:open])
		b.WriteString(param(rest[open+1 : open+closing]))
		rest = rest[open+closing+1:]
	}
}

// errorBody is the JSON shape adapters render for handler errors
func errorBody(err error) map[string]interface{} {
	body := map[string]interface{}{"error": err.Error()}
	if httpErr, ok := err.(*mount.HttpError); ok {
		body["error"] = httpErr.Message
		if httpErr.Details != nil {
			body["details"] = httpErr.Details
		}
	}
	return body
}
