package router

import (
	"bytes"
	"fmt"
	"regexp"
	"sync"
)

// compileTemplate parses a URI template such as "/cats/{id}" and returns a
// patternMatcher anchored to the full path. Each {name} segment becomes a
// capturing group matching one or more non-slash characters; {name:expr}
// uses a macro or raw regexp instead. Literal text between variables is
// quoted, so templates never accidentally contain metacharacters.
func compileTemplate(tpl string) (*patternMatcher, error) {
	idxs, err := braceIndices(tpl)
	if err != nil {
		return nil, err
	}

	var (
		pattern bytes.Buffer
		varsN   []string
		end     int
	)

	pattern.WriteByte('^')

	for i := 0; i < len(idxs); i += 2 {
		raw := tpl[end:idxs[i]]
		end = idxs[i+1]

		name, patt, err := parseVariable(tpl[idxs[i]+1 : end-1])
		if err != nil {
			return nil, fmt.Errorf("router: template %q: %w", tpl, err)
		}

		fmt.Fprintf(&pattern, "%s(%s)", regexp.QuoteMeta(raw), patt)
		varsN = append(varsN, name)
	}

	pattern.WriteString(regexp.QuoteMeta(tpl[end:]))
	pattern.WriteByte('$')

	if err := checkDuplicateVars(varsN); err != nil {
		return nil, err
	}

	re, err := compileRegexp(pattern.String())
	if err != nil {
		return nil, fmt.Errorf("router: template %q: %w", tpl, err)
	}

	return &patternMatcher{regexp: re, vars: varsN}, nil
}

// parseVariable splits a brace body ("name" or "name:pattern") into the
// variable name and its regexp pattern, expanding macros.
func parseVariable(body string) (name, pattern string, err error) {
	name = body
	pattern = defaultVarPattern

	for i := 0; i < len(body); i++ {
		if body[i] == ':' {
			name = body[:i]
			pattern = expandMacro(body[i+1:])
			break
		}
	}

	if name == "" {
		return "", "", fmt.Errorf("missing variable name in {%s}", body)
	}

	return name, pattern, nil
}

// defaultVarPattern matches one path segment: one or more non-slash
// characters.
const defaultVarPattern = `[^/]+`

// patternMacros maps macro names to regexp snippets, usable in variable
// definitions as {name:macro}. Unknown names fall through as raw regexps.
var patternMacros = map[string]string{
	"uuid":     `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`,
	"int":      `[0-9]+`,
	"slug":     `[a-zA-Z0-9]+(?:-[a-zA-Z0-9]+)*`,
	"alpha":    `[a-zA-Z]+`,
	"alphanum": `[a-zA-Z0-9]+`,
	"date":     `[0-9]{4}-[0-9]{2}-[0-9]{2}`,
	"hex":      `[0-9a-fA-F]+`,
}

// expandMacro returns the regexp snippet for a macro name, or the input
// unchanged when it is not a known macro.
func expandMacro(s string) string {
	if pattern, ok := patternMacros[s]; ok {
		return pattern
	}
	return s
}

// braceIndices returns the start and end+1 indices of each top-level {...}
// pair in s. Returns an error if braces are unbalanced.
func braceIndices(s string) ([]int, error) {
	var (
		idxs  []int
		level int
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			if level++; level == 1 {
				idxs = append(idxs, i)
			}
		case '}':
			if level--; level == 0 {
				idxs = append(idxs, i+1)
			} else if level < 0 {
				return nil, fmt.Errorf("router: unbalanced braces in %q", s)
			}
		}
	}
	if level != 0 {
		return nil, fmt.Errorf("router: unbalanced braces in %q", s)
	}
	return idxs, nil
}

// checkDuplicateVars returns an error if any variable name is repeated.
func checkDuplicateVars(vars []string) error {
	seen := make(map[string]bool, len(vars))
	for _, v := range vars {
		if seen[v] {
			return fmt.Errorf("router: duplicated route variable %q", v)
		}
		seen[v] = true
	}
	return nil
}

// regexpCache caches compiled regular expressions by pattern string. The
// number of unique patterns is bounded by the number of registered routes,
// so the cache grows to a fixed size and stays there.
var regexpCache sync.Map

// compileRegexp returns a cached *regexp.Regexp for the given pattern,
// compiling and caching it on first use.
func compileRegexp(pattern string) (*regexp.Regexp, error) {
	if v, ok := regexpCache.Load(pattern); ok {
		return v.(*regexp.Regexp), nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}

	actual, _ := regexpCache.LoadOrStore(pattern, re)

	return actual.(*regexp.Regexp), nil
}
