package router

import "net/http"

// DispatchStack is an ordered, append-only sequence of middleware dispatched
// as a continuation-passing chain. Insertion order defines execution order.
// A DispatchStack is itself a Middleware, so stacks nest inside other stacks.
type DispatchStack struct {
	middlewares []Middleware
}

// NewDispatchStack returns a stack pre-populated with the given middleware
// in order.
func NewDispatchStack(middlewares ...Middleware) *DispatchStack {
	return &DispatchStack{middlewares: middlewares}
}

// Add appends a middleware to the stack and returns the stack for chaining.
// There is no removal operation: once added, a middleware stays in the stack
// for its lifetime.
func (s *DispatchStack) Add(m Middleware) *DispatchStack {
	s.middlewares = append(s.middlewares, m)
	return s
}

// Len returns the number of middleware in the stack.
func (s *DispatchStack) Len() int {
	return len(s.middlewares)
}

// Dispatch runs the stack against the request. Each middleware receives a
// continuation bound to the remainder of the stack; the continuation of the
// last middleware is next itself. An empty stack degenerates to invoking
// next directly. When next is nil, a no-op continuation is used, so a chain
// that falls all the way through leaves the response untouched.
//
// Panics raised by middleware are not recovered here; recovery is the
// surrounding harness's concern.
func (s *DispatchStack) Dispatch(w http.ResponseWriter, r *http.Request, next http.Handler) {
	if next == nil {
		next = noopHandler
	}

	h := next
	for i := len(s.middlewares) - 1; i >= 0; i-- {
		h = link(s.middlewares[i], h)
	}

	h.ServeHTTP(w, r)
}

// ServeMiddleware implements the Middleware interface.
func (s *DispatchStack) ServeMiddleware(w http.ResponseWriter, r *http.Request, next http.Handler) {
	s.Dispatch(w, r, next)
}

// link binds a middleware to its continuation, producing the handler that
// represents "this middleware and everything after it".
func link(m Middleware, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.ServeMiddleware(w, r, next)
	})
}
