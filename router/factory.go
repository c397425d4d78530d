package router

import (
	"fmt"
	"strings"
)

// NewRoute classifies a raw target string and returns a Route of the
// matching kind:
//
//   - Targets beginning with "/" are path targets. A brace-delimited
//     segment ("/cats/{id}") makes a PatternRoute compiled from the
//     template; a trailing "*" ("/static/*") makes a PrefixRoute; anything
//     else is a StaticRoute matched by exact equality.
//   - Any other target is a PatternRoute compiled as a regular expression.
//     A matching non-alphanumeric delimiter pair around the expression
//     (e.g. "~/cat/[0-9]+~") is stripped before compiling. Named capture
//     groups become named path variables; unnamed groups are keyed by
//     ordinal. Regexp targets are not anchored: anchor explicitly with
//     ^ and $ to match the full path.
//
// Construction fails only on malformed template or regexp syntax; every
// other string is accepted.
func NewRoute(target string) (*Route, error) {
	m, kind, err := classify(target)
	if err != nil {
		return nil, err
	}

	return &Route{
		target:  target,
		kind:    kind,
		matcher: m,
		methods: NewMethodMap(),
	}, nil
}

func classify(target string) (matcher, RouteKind, error) {
	if strings.HasPrefix(target, "/") {
		if strings.Contains(target, "{") {
			m, err := compileTemplate(target)
			if err != nil {
				return nil, PatternRoute, err
			}
			return m, PatternRoute, nil
		}

		if strings.HasSuffix(target, "*") {
			return prefixMatcher(strings.TrimSuffix(target, "*")), PrefixRoute, nil
		}

		return staticMatcher(target), StaticRoute, nil
	}

	expr := trimDelimiters(target)

	re, err := compileRegexp(expr)
	if err != nil {
		return nil, PatternRoute, fmt.Errorf("router: pattern %q: %w", target, err)
	}

	return &patternMatcher{regexp: re}, PatternRoute, nil
}

// trimDelimiters strips a matching delimiter pair from a regexp target.
// A delimiter is any non-alphanumeric character other than backslash and
// whitespace, in the style of PCRE pattern delimiters.
func trimDelimiters(target string) string {
	if len(target) < 2 {
		return target
	}

	first, last := target[0], target[len(target)-1]
	if first != last || !isDelimiter(first) {
		return target
	}

	return target[1 : len(target)-1]
}

func isDelimiter(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return false
	case c == '\\', c == ' ', c == '\t':
		return false
	}
	return true
}
