package router

import (
	"context"
	"net/http"
)

// routeContextKey is an unexported type for the single context key.
type routeContextKey struct{}

var ctxKey = routeContextKey{}

// routeContext holds the matched route and the variables its matcher
// extracted, together with the router-wide attachment mode.
type routeContext struct {
	route *Route
	vars  map[string]string

	// varsAttr is the single attribute name holding the whole variable
	// mapping, or "" when each variable is its own attribute.
	varsAttr string
}

// Vars returns the path variables extracted for the current request, if any.
func Vars(r *http.Request) map[string]string {
	if rc, ok := r.Context().Value(ctxKey).(*routeContext); ok {
		return rc.vars
	}
	return nil
}

// VarGet returns the value of a single path variable by name and a boolean
// indicating whether the variable exists.
func VarGet(r *http.Request, name string) (string, bool) {
	if rc, ok := r.Context().Value(ctxKey).(*routeContext); ok && rc.vars != nil {
		val, exists := rc.vars[name]
		return val, exists
	}
	return "", false
}

// Attr returns a request attribute derived from the matched route's path
// variables, honoring the router's attachment mode. In the default mode
// every variable is its own attribute, so Attr(r, "id") yields the string
// value of {id}. When the router was configured with PathVarsAttribute(name),
// the only attribute is name, holding the full map[string]string.
func Attr(r *http.Request, key string) (any, bool) {
	rc, ok := r.Context().Value(ctxKey).(*routeContext)
	if !ok || rc.vars == nil {
		return nil, false
	}

	if rc.varsAttr != "" {
		if key == rc.varsAttr {
			return rc.vars, true
		}
		return nil, false
	}

	val, exists := rc.vars[key]
	if !exists {
		return nil, false
	}
	return val, true
}

// CurrentRoute returns the matched route for the current request, if any.
// This only works when called from middleware dispatched by the router,
// because the matched route is stored in the request context.
func CurrentRoute(r *http.Request) *Route {
	if rc, ok := r.Context().Value(ctxKey).(*routeContext); ok {
		return rc.route
	}
	return nil
}

// SetPathVars sets the path variables for the given request, returning the
// modified request. This is intended for testing middleware in isolation.
func SetPathVars(r *http.Request, vars map[string]string) *http.Request {
	var route *Route
	var varsAttr string
	if rc, ok := r.Context().Value(ctxKey).(*routeContext); ok {
		route = rc.route
		varsAttr = rc.varsAttr
	}
	return setRouteContext(r, route, vars, varsAttr)
}

// setRouteContext stores the matched route and variables in the request
// context using a single WithContext call.
func setRouteContext(r *http.Request, route *Route, vars map[string]string, varsAttr string) *http.Request {
	rc := &routeContext{route: route, vars: vars, varsAttr: varsAttr}
	ctx := context.WithValue(r.Context(), ctxKey, rc)
	return r.WithContext(ctx)
}
