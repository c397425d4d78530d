package router

import (
	"net/http"
	"strings"
	"sync"
)

// Router owns the registered routes and dispatches requests through their
// middleware. It implements both http.Handler, for use as a server's root
// handler, and Middleware, so a router can sit inside another DispatchStack.
//
// Matching considers the path component only (net/http never places the
// query string or fragment in URL.Path). Resolution order is fixed:
// an exact static match wins outright; otherwise the longest matching
// prefix route; otherwise the first matching pattern route in registration
// order. Registration order is the documented priority among overlapping
// patterns.
type Router struct {
	// NotFoundHandler is called when no route matches.
	// If nil, http.NotFoundHandler() is used.
	// Corresponds to 404 Not Found per RFC 9110 Section 15.5.5.
	NotFoundHandler http.Handler

	// MethodNotAllowedHandler is called when a route matches the path but
	// its MethodMap has no entry for the method. If nil, a default 405
	// handler is used. Per RFC 9110 Section 15.5.6, the Allow header is
	// always set before this handler is invoked.
	MethodNotAllowedHandler http.Handler

	dispatcher *Dispatcher
	stack      *DispatchStack

	// mu guards the route indexes. Dispatch takes the read side, and each
	// MethodMap guards its own entries, so runtime registration is safe,
	// if unusual; normally all routes are registered before the first
	// request.
	mu       sync.RWMutex
	routes   []*Route
	byTarget map[string]*Route
	static   map[string]*Route
	prefixes []*Route
	patterns []*Route

	varsAttr  string
	skipClean bool
}

// NewRouter returns a new router instance.
func NewRouter() *Router {
	return &Router{
		dispatcher: NewDispatcher(),
		stack:      NewDispatchStack(),
		byTarget:   make(map[string]*Route),
		static:     make(map[string]*Route),
	}
}

// WithResolver sets the resolver the router's dispatcher uses for named
// middleware references. Returns the router for chaining.
func (r *Router) WithResolver(fn Resolver) *Router {
	r.dispatcher.WithResolver(fn)
	return r
}

// PathVarsAttribute switches the router to attach all path variables as one
// request attribute under the given name, instead of one attribute per
// variable. This is a router-wide choice, not per-route. See Attr.
func (r *Router) PathVarsAttribute(name string) *Router {
	r.varsAttr = name
	return r
}

// SkipClean disables dot-segment removal (RFC 3986 Section 5.2.4) on
// request paths before matching.
func (r *Router) SkipClean(value bool) *Router {
	r.skipClean = value
	return r
}

// Use appends middleware to the router-level dispatch stack. Router-level
// middleware runs before the matched route's middleware within the same
// continuation chain, for every request that reaches the router, matched
// or not. Unlike Register, Use is not safe to call once the router is
// serving requests; add router-level middleware before serving begins.
func (r *Router) Use(middlewares ...Middleware) *Router {
	for _, m := range middlewares {
		r.stack.Add(m)
	}
	return r
}

// Register adds middleware for the given methods and target. The target is
// classified on first registration (see NewRoute); registering the same
// target string again reuses the existing Route and adds or overwrites
// method entries, so registration is idempotent per exact target. The
// middleware reference may be any shape the router's Dispatcher accepts.
//
// Malformed pattern targets and unresolvable references fail here, at
// registration time, never at request time.
func (r *Router) Register(methodSpec, target string, ref any) (*Route, error) {
	middleware, err := r.dispatcher.Normalize(ref)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	route, ok := r.byTarget[target]
	if !ok {
		route, err = NewRoute(target)
		if err != nil {
			return nil, err
		}

		r.byTarget[target] = route
		r.routes = append(r.routes, route)

		switch route.kind {
		case StaticRoute:
			r.static[target] = route
		case PrefixRoute:
			r.prefixes = append(r.prefixes, route)
		case PatternRoute:
			r.patterns = append(r.patterns, route)
		}
	}

	route.methods.Register(methodSpec, middleware)

	return route, nil
}

// Routes returns the registered routes in registration order.
func (r *Router) Routes() []*Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Route(nil), r.routes...)
}

// resolve selects the best-matching route for a path. Static beats prefix
// beats pattern regardless of registration order; among prefixes the
// longest match wins with ties going to the first registered; among
// patterns the first registered match wins.
func (r *Router) resolve(path string) (*Route, map[string]string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if route, ok := r.static[path]; ok {
		return route, nil, true
	}

	var best *Route
	bestLen := -1
	for _, route := range r.prefixes {
		prefix := route.prefix()
		if len(prefix) > bestLen && strings.HasPrefix(path, prefix) {
			best = route
			bestLen = len(prefix)
		}
	}
	if best != nil {
		return best, nil, true
	}

	for _, route := range r.patterns {
		if vars, ok := route.Match(path); ok {
			return route, vars, true
		}
	}

	return nil, nil, false
}

// ServeMiddleware dispatches the request through the router-level stack and
// the matched route's middleware, with next as the continuation for the
// whole router. Implements the Middleware interface, so routers nest.
func (r *Router) ServeMiddleware(w http.ResponseWriter, req *http.Request, next http.Handler) {
	if next == nil {
		next = noopHandler
	}

	// Normalize the request path per RFC 3986 Section 5.2.4 (remove dot
	// segments) unless SkipClean is enabled.
	if !r.skipClean {
		if cleaned := cleanPath(req.URL.Path); cleaned != req.URL.Path {
			u := *req.URL
			u.Path = cleaned
			u.RawPath = ""
			req = req.Clone(req.Context())
			req.URL = &u
		}
	}

	r.stack.Dispatch(w, req, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r.dispatchRoute(w, req, next)
	}))
}

// ServeHTTP dispatches the request with a top-level continuation that marks
// the response not-found, so a chain that falls all the way through yields
// 404. Implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.ServeMiddleware(w, req, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r.notFound(w, req)
	}))
}

// dispatchRoute resolves the route for the request and runs its middleware.
// 404 and 405 are normal terminal states here, not errors.
func (r *Router) dispatchRoute(w http.ResponseWriter, req *http.Request, next http.Handler) {
	route, vars, ok := r.resolve(req.URL.Path)
	if !ok {
		r.notFound(w, req)
		return
	}

	middleware, ok := route.Methods().Middleware(req.Method)
	if !ok {
		// RFC 9110 Section 15.5.6: the origin server MUST generate an
		// Allow header field in a 405 response.
		w.Header().Set("Allow", strings.Join(route.Methods().Methods(), ", "))
		r.methodNotAllowed(w, req)
		return
	}

	req = setRouteContext(req, route, vars, r.varsAttr)

	middleware.ServeMiddleware(w, req, next)
}

func (r *Router) notFound(w http.ResponseWriter, req *http.Request) {
	handler := r.NotFoundHandler
	if handler == nil {
		handler = defaultNotFoundHandler
	}
	handler.ServeHTTP(w, req)
}

func (r *Router) methodNotAllowed(w http.ResponseWriter, req *http.Request) {
	handler := r.MethodNotAllowedHandler
	if handler == nil {
		handler = defaultMethodNotAllowedHandler
	}
	handler.ServeHTTP(w, req)
}
