package mount

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/gildlabs/gild/pkg/gild"
	"github.com/gildlabs/gild/pkg/gild/authenticate"
	"github.com/gildlabs/gild/pkg/gild/openapi"
)

// Authenticator checks a request against an authentication requirement.
// Returning an error rejects the request; return an HttpError to control
// the status, anything else becomes a 401.
type Authenticator interface {
	Authenticate(c Ctx, requirement *authenticate.Requirement) error
}

// AuthenticatorFunc adapts a function to the Authenticator interface
type AuthenticatorFunc func(c Ctx, requirement *authenticate.Requirement) error

// Authenticate implements Authenticator
func (f AuthenticatorFunc) Authenticate(c Ctx, requirement *authenticate.Requirement) error {
	return f(c, requirement)
}

// ControllerBinding pairs a registered class with the handlers that
// implement its operations, keyed by member name.
type ControllerBinding struct {
	Site     gild.Site
	Handlers map[string]Handler
}

// Bind creates a binding for a class
func Bind(class string, handlers map[string]Handler) ControllerBinding {
	return ControllerBinding{Site: gild.Class(class), Handlers: handlers}
}

// Mounter turns registered route metadata into live routes on a server.
// Each mounted handler runs behind middleware that authenticates the
// request and coerces its declared parameters.
type Mounter struct {
	registry gild.MetadataRegistry
	server   Server
	log      logrus.FieldLogger
	auth     Authenticator
	coercers *CoercerSet
}

// NewMounter creates a mounter over a registry and server
func NewMounter(registry gild.MetadataRegistry, server Server) *Mounter {
	return &Mounter{
		registry: registry,
		server:   server,
		log:      logrus.StandardLogger(),
		coercers: NewCoercerSet(),
	}
}

// WithLogger sets the logger used for mount and request diagnostics
func (m *Mounter) WithLogger(log logrus.FieldLogger) *Mounter {
	m.log = log
	return m
}

// WithAuthenticator sets the authenticator consulted for operations that
// carry an authentication requirement
func (m *Mounter) WithAuthenticator(auth Authenticator) *Mounter {
	m.auth = auth
	return m
}

// Coercers exposes the coercer set for custom registrations
func (m *Mounter) Coercers() *CoercerSet {
	return m.coercers
}

// Mount registers every operation of each bound controller on the server.
// Every operation needs a handler in its binding, and mounting fails before
// any route is registered on the first incomplete binding.
func (m *Mounter) Mount(bindings ...ControllerBinding) error {
	type plannedRoute struct {
		verb    string
		path    string
		class   string
		handler string
		wrapped Handler
	}

	var routes []plannedRoute
	for _, binding := range bindings {
		controller, err := openapi.ControllerSpec(m.registry, binding.Site)
		if err != nil {
			return fmt.Errorf("mount %s: %w", binding.Site.Class, err)
		}

		for _, op := range controller.Operations {
			handler, ok := binding.Handlers[op.Handler]
			if !ok {
				return fmt.Errorf("mount %s: no handler bound for %s (%s)",
					controller.Class, op.Handler, op.Route.Key())
			}

			requirement, err := authenticate.MetadataFor(m.registry, binding.Site, op.Handler)
			if err != nil {
				return fmt.Errorf("mount %s.%s: %w", controller.Class, op.Handler, err)
			}

			wrapped := m.bindArguments(op)(handler)
			if requirement != nil {
				wrapped = m.authGate(requirement, controller.Class, op.Handler)(wrapped)
			}

			routes = append(routes, plannedRoute{
				verb:    op.Route.Verb,
				path:    openapi.JoinPath(controller.BasePath, op.Route.Path),
				class:   controller.Class,
				handler: op.Handler,
				wrapped: wrapped,
			})
		}
	}

	for _, route := range routes {
		m.server.RegisterRoute(route.verb, route.path, route.wrapped)
		m.log.WithFields(logrus.Fields{
			"verb":       route.verb,
			"path":       route.path,
			"controller": route.class,
			"handler":    route.handler,
			"engine":     m.server.Name(),
		}).Debug("mounted route")
	}
	return nil
}

// bindArguments builds the middleware that coerces declared parameters and
// enforces body requiredness before the handler runs
func (m *Mounter) bindArguments(op *openapi.BoundOperation) Middleware {
	return func(next Handler) Handler {
		return func(c Ctx) error {
			args := make(map[string]interface{}, len(op.Parameters))
			for _, p := range op.Parameters {
				value, err := m.coercers.CoerceParam(c, p.Spec)
				if err != nil {
					return NewHttpErrorWithDetails(400, "invalid request parameters", map[string]string{
						"parameter": p.Spec.Name,
						"in":        p.Spec.In,
						"reason":    err.Error(),
					})
				}
				if value != nil {
					args[p.Spec.Name] = value
				}
			}
			c.Set(argsContextKey, args)

			if op.Body != nil && op.Body.Spec.Required {
				raw, err := c.Body()
				if err != nil {
					return ErrBadRequest("cannot read request body")
				}
				if len(raw) == 0 {
					return ErrUnprocessableEntity("request body is required")
				}
			}

			return next(c)
		}
	}
}

// authGate builds the middleware that runs the authenticator for an
// operation carrying a requirement
func (m *Mounter) authGate(requirement *authenticate.Requirement, class, handler string) Middleware {
	return func(next Handler) Handler {
		return func(c Ctx) error {
			if m.auth == nil {
				m.log.WithFields(logrus.Fields{
					"controller": class,
					"handler":    handler,
					"strategy":   requirement.StrategyName,
				}).Error("operation requires authentication but no authenticator is configured")
				return ErrInternalServerError("authentication is not configured")
			}

			if err := m.auth.Authenticate(c, requirement); err != nil {
				m.log.WithFields(logrus.Fields{
					"controller": class,
					"handler":    handler,
					"strategy":   requirement.StrategyName,
				}).WithError(err).Warn("authentication failed")

				var httpErr *HttpError
				if errors.As(err, &httpErr) {
					return httpErr
				}
				return ErrUnauthorized("authentication failed")
			}
			return next(c)
		}
	}
}
