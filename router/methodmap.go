package router

import (
	"net/http"
	"sort"
	"strings"
	"sync"
)

// MethodAny is the wildcard method token. A wildcard entry is consulted only
// when no exact method entry exists.
const MethodAny = "*"

// MethodMap maps HTTP method tokens (RFC 9110 Section 9.1) to middleware.
// Multiple methods may be registered in one call via a comma-separated list.
// A MethodMap is safe for concurrent use: Register may run while requests
// are being dispatched through Middleware and Methods.
type MethodMap struct {
	mu      sync.RWMutex
	entries map[string]Middleware
}

// NewMethodMap returns an empty method map.
func NewMethodMap() *MethodMap {
	return &MethodMap{
		entries: make(map[string]Middleware),
	}
}

// Register stores the middleware for each method token in methodSpec, a
// comma-separated list such as "GET,POST". Tokens are trimmed and
// uppercased; MethodAny registers the wildcard fallback. Registering a
// method that already has an entry overwrites it.
func (m *MethodMap) Register(methodSpec string, middleware Middleware) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, token := range strings.Split(methodSpec, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		m.entries[strings.ToUpper(token)] = middleware
	}
}

// Middleware returns the middleware registered for the given method. Lookup
// order: the exact method entry, then the GET entry for HEAD requests
// (RFC 9110 Section 9.3.2: HEAD is GET without a body), then the wildcard.
// The GET entry deliberately outranks the wildcard for HEAD, since GET is
// the more specific registration for that method. The second return value
// reports whether any entry applied; absence is a value, not an error, and
// the caller maps it to a 405-class outcome.
func (m *MethodMap) Middleware(method string) (Middleware, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	method = strings.ToUpper(method)

	if mw, ok := m.entries[method]; ok {
		return mw, true
	}

	if method == http.MethodHead {
		if mw, ok := m.entries[http.MethodGet]; ok {
			return mw, true
		}
	}

	if mw, ok := m.entries[MethodAny]; ok {
		return mw, true
	}

	return nil, false
}

// Methods returns the registered method tokens sorted alphabetically, with
// the wildcard excluded. Used to populate the Allow header field required by
// RFC 9110 Section 15.5.6 on 405 responses.
func (m *MethodMap) Methods() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	methods := make([]string, 0, len(m.entries))
	for method := range m.entries {
		if method == MethodAny {
			continue
		}
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return methods
}
