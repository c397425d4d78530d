// Package routerhandlers provides middleware for the router package's
// continuation-passing dispatch chain. Every middleware here follows the
// same contract: it receives the continuation for the rest of the chain and
// either invokes it (possibly wrapping work around it) or short-circuits
// with its own response.
//
// # Recovery Middleware
//
// RecoveryMiddleware recovers from panics raised anywhere downstream and
// returns 500 Internal Server Error. The dispatch chain itself never
// recovers, so place this first in the stack:
//
//	stack := router.NewDispatchStack().
//	    Add(routerhandlers.RecoveryMiddleware(routerhandlers.RecoveryConfig{})).
//	    Add(appMiddleware)
//
// # Request ID Middleware
//
// RequestIDMiddleware generates or propagates an X-Request-ID header and
// stores the ID in the request context:
//
//	mw := routerhandlers.RequestIDMiddleware(routerhandlers.RequestIDConfig{
//	    TrustIncoming: true,
//	})
//	id := routerhandlers.RequestIDFromContext(r.Context())
//
// # Basic Auth Middleware
//
// BasicAuthMiddleware implements HTTP Basic Authentication per RFC 7617.
// Credentials can be validated via a dynamic callback or a static map.
// Static credential comparison uses constant-time comparison to prevent
// timing attacks. Invalid credentials short-circuit with 401.
//
// # Cache Control Middleware
//
// CacheControlMiddleware sets Cache-Control and Expires response headers
// based on the Content-Type produced downstream. The first matching
// content-type prefix rule wins; headers set downstream are not
// overwritten.
//
// # Security Headers Middleware
//
// SecurityHeadersMiddleware sets common security response headers
// (X-Content-Type-Options, X-Frame-Options, Referrer-Policy, HSTS, CSP)
// before the continuation runs.
//
// # Timeout Middleware
//
// TimeoutMiddleware bounds how long the rest of the chain may run,
// answering 503 Service Unavailable on expiry.
//
// # Server Helpers
//
// ServerMiddleware stamps responses with an X-Server-Hostname header.
// ListenAndServe runs an http.Server with optional connection limiting
// (netutil.LimitListener) and graceful shutdown driven by a context.
package routerhandlers
