package router

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNoResolver is returned when a middleware is referenced by name but the
// dispatcher has no Resolver configured.
var ErrNoResolver = errors.New("router: no resolver configured for named middleware")

// Resolver maps a middleware identifier to a middleware reference. The
// returned value may be any shape Normalize accepts, including another
// identifier.
type Resolver func(name string) (any, error)

// Dispatcher normalizes polymorphic middleware references into the single
// Middleware contract the router dispatches. Accepted shapes:
//
//   - Middleware (including *DispatchStack and *Router)
//   - func(http.ResponseWriter, *http.Request, http.Handler)
//   - http.Handler, adapted as a terminal middleware
//   - func(http.ResponseWriter, *http.Request), likewise terminal
//   - string, resolved through the configured Resolver
//
// Anything else is a construction-time error: normalization happens at
// registration, never at request time.
type Dispatcher struct {
	resolver Resolver
}

// NewDispatcher returns a dispatcher with no resolver. Named references fail
// with ErrNoResolver until WithResolver is called.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// WithResolver sets the resolver used for string references and returns the
// dispatcher for chaining.
func (d *Dispatcher) WithResolver(fn Resolver) *Dispatcher {
	d.resolver = fn
	return d
}

// Normalize converts ref into a Middleware or reports why it cannot.
func (d *Dispatcher) Normalize(ref any) (Middleware, error) {
	switch v := ref.(type) {
	case Middleware:
		return v, nil
	case func(http.ResponseWriter, *http.Request, http.Handler):
		return MiddlewareFunc(v), nil
	case http.Handler:
		return HandlerMiddleware(v), nil
	case func(http.ResponseWriter, *http.Request):
		return HandlerMiddleware(http.HandlerFunc(v)), nil
	case string:
		return d.resolve(v)
	case nil:
		return nil, errors.New("router: nil middleware reference")
	default:
		return nil, fmt.Errorf("router: unsupported middleware reference type %T", ref)
	}
}

// resolve looks up a named middleware and normalizes the result. Resolution
// chains of names are followed; a name resolving to itself would loop, so
// depth is bounded.
func (d *Dispatcher) resolve(name string) (Middleware, error) {
	if d.resolver == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoResolver, name)
	}

	const maxDepth = 8

	ref := any(name)
	for i := 0; i < maxDepth; i++ {
		s, ok := ref.(string)
		if !ok {
			return d.Normalize(ref)
		}

		resolved, err := d.resolver(s)
		if err != nil {
			return nil, fmt.Errorf("router: resolving middleware %q: %w", s, err)
		}
		ref = resolved
	}

	return nil, fmt.Errorf("router: middleware %q: resolution chain too deep", name)
}
