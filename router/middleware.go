package router

import (
	"errors"
	"net/http"
)

// Middleware is the unit of request processing. ServeMiddleware receives the
// continuation representing everything after this middleware in the chain.
// Invoking next exactly once continues processing; not invoking it terminates
// the chain with whatever this middleware wrote to the response.
//
// A middleware that invokes next and keeps writing afterwards produces
// last-write-wins behaviour; this is caller discipline, not a guarded
// invariant.
type Middleware interface {
	ServeMiddleware(w http.ResponseWriter, r *http.Request, next http.Handler)
}

// MiddlewareFunc adapts an ordinary function to the Middleware interface.
type MiddlewareFunc func(w http.ResponseWriter, r *http.Request, next http.Handler)

// ServeMiddleware implements the Middleware interface.
func (f MiddlewareFunc) ServeMiddleware(w http.ResponseWriter, r *http.Request, next http.Handler) {
	f(w, r, next)
}

// HandlerMiddleware adapts a terminal http.Handler to the Middleware
// interface. The adapted middleware never invokes its continuation: the
// handler is expected to fully respond to the request.
func HandlerMiddleware(h http.Handler) Middleware {
	return handlerMiddleware{h: h}
}

type handlerMiddleware struct {
	h http.Handler
}

func (m handlerMiddleware) ServeMiddleware(w http.ResponseWriter, r *http.Request, _ http.Handler) {
	m.h.ServeHTTP(w, r)
}

// noopHandler is the default top-of-chain continuation: it leaves the
// response exactly as the chain produced it.
var noopHandler = http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {})

// ErrNotFound is the sentinel for a path that matches no registered route.
// Triggers 404 Not Found per RFC 9110 Section 15.5.5.
var ErrNotFound = errors.New("no matching route was found")

// ErrMethodNotAllowed is the sentinel for a matched path whose MethodMap has
// no entry for the request method. Triggers 405 Method Not Allowed per
// RFC 9110 Section 15.5.6.
var ErrMethodNotAllowed = errors.New("method is not allowed")
