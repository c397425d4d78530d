// Package router implements an HTTP request router with chained middleware
// dispatch. An incoming request is matched against registered routes by path
// and method, path variables are extracted and attached to the request, and
// the selected middleware runs as a continuation-passing chain with explicit
// short-circuit and fall-through control.
//
// Routing semantics are based on:
//   - RFC 9110 (HTTP Semantics)
//   - RFC 3986 (URIs)
//
// # Router
//
// Create a router and register middleware for method/target pairs:
//
//	r := router.NewRouter()
//	r.Register("GET", "/cats/", listCats)
//	r.Register("GET,POST", "/cats/{id}", catHandler)
//	http.ListenAndServe(":8080", r)
//
// Register accepts several middleware reference shapes: the Middleware
// interface, a func(http.ResponseWriter, *http.Request, http.Handler), an
// http.Handler or plain handler func (adapted as a terminal middleware that
// never calls its continuation), a *DispatchStack, another *Router, or a
// string identifier resolved through a configured Resolver.
//
// # Route Targets
//
// Targets beginning with "/" are path targets, classified once at
// registration:
//
//	/cats/           static: matches exactly this path
//	/static/*        prefix: matches any path starting with /static/
//	/cats/{id}       pattern: URI template, {id} captures one segment
//
// Template variables accept an optional pattern or macro after a colon, as
// in {id:int} or {id:[0-9a-f]+}. Available macros: uuid, int, slug, alpha,
// alphanum, date, hex.
//
// Targets not beginning with "/" are regular expressions, optionally
// wrapped in a matching delimiter pair:
//
//	~/cat/([0-9]+)~            positional group, variable "1"
//	~/cat/(?P<id>[0-9]+)~      named group, variable "id"
//
// # Resolution Priority
//
// A static match wins outright. Otherwise the longest matching prefix route
// wins, with ties going to the first registered. Otherwise pattern routes
// are tried in registration order and the first match wins; order among
// overlapping patterns is the documented priority mechanism. When nothing
// matches the result is 404; when the path matches but the method has no
// entry the result is 405 with an Allow header.
//
// # Path Variables
//
// Variables extracted by a pattern route are attached to the request
// context and read with Vars or VarGet:
//
//	func catHandler(w http.ResponseWriter, r *http.Request, next http.Handler) {
//	    id, _ := router.VarGet(r, "id")
//	    ...
//	}
//
// By default each variable is an individual request attribute; configure
// PathVarsAttribute("pathVars") to attach the whole map as one attribute
// instead. Attr reads attributes under whichever mode is active.
//
// # Middleware Dispatch
//
// A DispatchStack is an append-only ordered middleware sequence. Dispatch
// builds one continuation per middleware, last to first, so every
// middleware receives a handler representing everything after it:
//
//	stack := router.NewDispatchStack().
//	    Add(router.MiddlewareFunc(logRequests)).
//	    Add(router.MiddlewareFunc(serveCat))
//	r.Register("GET", "/cats/{id}", stack)
//
// A middleware that calls next continues the chain and may act both before
// and after downstream processing; one that returns without calling next
// terminates the chain with its own response. Dispatching an empty stack
// invokes the caller-supplied continuation directly.
//
// # Method Maps
//
// Each route owns a MethodMap from method token to middleware. Several
// methods can share one registration ("GET,POST"), "*" registers a
// wildcard fallback consulted only when no exact entry exists, and HEAD
// falls back to the GET entry.
//
// # Named Middleware
//
// String references are resolved at registration time through a Resolver:
//
//	r := router.NewRouter().WithResolver(func(name string) (any, error) {
//	    return registry.Lookup(name)
//	})
//	r.Register("GET", "/cats/", "cats.list")
//
// # Nesting
//
// Router implements Middleware, so a router can be a link in another
// router's chain; its continuation is then whatever follows it there.
// Served directly via http.Handler, the top-level continuation marks the
// response 404, so a chain that falls all the way through reports not
// found.
package router
