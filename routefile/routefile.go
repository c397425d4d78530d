// Package routefile loads declarative route tables from YAML and registers
// them on a router. Middleware is referenced by name and resolved through a
// router.Resolver at load time, so a bad table fails before the first
// request.
//
// Table format:
//
//	routes:
//	  - methods: GET
//	    target: /cats/
//	    middleware: [cats.list]
//	  - methods: GET,POST
//	    target: /cats/{id}
//	    middleware: [auth, cats.show]
//
// Entries with several middleware names are chained into a DispatchStack in
// listed order.
package routefile

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/MatiasNAmendola/wellrested/router"
)

// ErrNoTarget is returned for an entry with an empty target.
var ErrNoTarget = errors.New("routefile: entry has no target")

// ErrNoMiddleware is returned for an entry with no middleware names.
var ErrNoMiddleware = errors.New("routefile: entry has no middleware")

// Entry is one route table row.
type Entry struct {
	// Methods is a comma-separated method list, "*" if empty.
	Methods string `yaml:"methods"`

	// Target is the registration target: static path, prefix, template,
	// or regexp, classified by the router.
	Target string `yaml:"target"`

	// Middleware lists middleware names in execution order. Required.
	Middleware []string `yaml:"middleware"`
}

// File is a parsed route table.
type File struct {
	Routes []Entry `yaml:"routes"`
}

// Parse decodes a YAML route table and validates every entry.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("routefile: %w", err)
	}

	for i, e := range f.Routes {
		if e.Target == "" {
			return nil, fmt.Errorf("%w (entry %d)", ErrNoTarget, i)
		}
		if len(e.Middleware) == 0 {
			return nil, fmt.Errorf("%w (entry %d, target %q)", ErrNoMiddleware, i, e.Target)
		}
	}

	return &f, nil
}

// Load reads and parses a route table from disk.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("routefile: %w", err)
	}
	return Parse(data)
}

// Apply registers every entry on the router, resolving middleware names
// through resolve. Entries listing several names are chained into a
// DispatchStack in order. The first bad target or unresolvable name aborts
// with an error; entries before it stay registered.
func (f *File) Apply(r *router.Router, resolve router.Resolver) error {
	dispatcher := router.NewDispatcher().WithResolver(resolve)

	for _, e := range f.Routes {
		methods := e.Methods
		if methods == "" {
			methods = router.MethodAny
		}

		ref, err := chain(dispatcher, e.Middleware)
		if err != nil {
			return fmt.Errorf("routefile: target %q: %w", e.Target, err)
		}

		if _, err := r.Register(methods, e.Target, ref); err != nil {
			return fmt.Errorf("routefile: target %q: %w", e.Target, err)
		}
	}

	return nil
}

// chain normalizes the named middleware, collapsing a single name to the
// middleware itself and several names to a DispatchStack.
func chain(d *router.Dispatcher, names []string) (router.Middleware, error) {
	if len(names) == 1 {
		return d.Normalize(names[0])
	}

	stack := router.NewDispatchStack()
	for _, name := range names {
		m, err := d.Normalize(name)
		if err != nil {
			return nil, err
		}
		stack.Add(m)
	}
	return stack, nil
}
