package router

import (
	"regexp"
	"strconv"
	"strings"
)

// RouteKind classifies how a route's target matches request paths. The kind
// is determined once at creation and never changes.
type RouteKind int

const (
	// StaticRoute matches exactly one literal path.
	StaticRoute RouteKind = iota
	// PrefixRoute matches any path beginning with a literal prefix.
	PrefixRoute
	// PatternRoute matches via a compiled template or regular expression
	// and may capture path variables.
	PatternRoute
)

// String returns the kind name for diagnostics.
func (k RouteKind) String() string {
	switch k {
	case StaticRoute:
		return "static"
	case PrefixRoute:
		return "prefix"
	case PatternRoute:
		return "pattern"
	default:
		return "unknown"
	}
}

// matcher tests a request path against a route target. Match is pure: any
// captured variables are returned, never stored, so a single route is safe
// to match from concurrent requests.
type matcher interface {
	Match(path string) (vars map[string]string, ok bool)
}

// staticMatcher matches by exact string equality.
type staticMatcher string

func (m staticMatcher) Match(path string) (map[string]string, bool) {
	return nil, path == string(m)
}

// prefixMatcher matches any path beginning with the literal prefix (the
// registration target with its trailing "*" removed).
type prefixMatcher string

func (m prefixMatcher) Match(path string) (map[string]string, bool) {
	return nil, strings.HasPrefix(path, string(m))
}

// patternMatcher matches against a compiled regexp. For template routes,
// vars holds the ordered variable names from the template; for raw regexp
// routes vars is nil and capture names come from the regexp's own groups,
// with unnamed groups keyed by ordinal.
type patternMatcher struct {
	regexp *regexp.Regexp
	vars   []string
}

func (m *patternMatcher) Match(path string) (map[string]string, bool) {
	matches := m.regexp.FindStringSubmatch(path)
	if matches == nil {
		return nil, false
	}

	if m.vars != nil {
		vars := make(map[string]string, len(m.vars))
		for i, name := range m.vars {
			if i+1 < len(matches) {
				vars[name] = matches[i+1]
			}
		}
		return vars, true
	}

	names := m.regexp.SubexpNames()
	vars := make(map[string]string, len(matches)-1)
	for i := 1; i < len(matches); i++ {
		name := ""
		if i < len(names) {
			name = names[i]
		}
		if name == "" {
			name = strconv.Itoa(i)
		}
		vars[name] = matches[i]
	}
	return vars, true
}

// Route is one routing entry: a classified target, its compiled matcher,
// and the per-method middleware map. The target string doubles as the
// router's deduplication key: registering the same target twice reuses the
// existing Route. Matcher and kind are immutable after construction.
type Route struct {
	target  string
	kind    RouteKind
	matcher matcher
	methods *MethodMap
}

// Target returns the original registration string.
func (r *Route) Target() string {
	return r.target
}

// Kind returns the route's classification.
func (r *Route) Kind() RouteKind {
	return r.kind
}

// Methods returns the route's method map.
func (r *Route) Methods() *MethodMap {
	return r.methods
}

// Match tests the route against a request path, returning any extracted
// path variables. Safe for concurrent use.
func (r *Route) Match(path string) (map[string]string, bool) {
	return r.matcher.Match(path)
}

// prefix returns the literal prefix for PrefixRoute entries, or "" for
// other kinds.
func (r *Route) prefix() string {
	if m, ok := r.matcher.(prefixMatcher); ok {
		return string(m)
	}
	return ""
}
