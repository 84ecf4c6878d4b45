package router

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultMaxRedirects is the redirect hop limit used when WithMaxRedirects
// is not given.
const DefaultMaxRedirects = 10

// Table is an immutable, ordered list of routes. The first route whose
// template matches a path wins; later routes are not considered.
//
// A Table is safe for concurrent use.
type Table struct {
	routes       []*Route
	named        map[string]*Route
	strictSlash  bool
	maxRedirects int
}

// Option configures a Table.
type Option func(*Table)

// WithStrictSlash requires a path's trailing slash to match the template
// exactly. By default a single trailing slash is tolerated.
func WithStrictSlash() Option {
	return func(t *Table) {
		t.strictSlash = true
	}
}

// WithMaxRedirects sets the number of redirect hops Resolve follows before
// failing with ErrRedirectLimit.
func WithMaxRedirects(n int) Option {
	return func(t *Table) {
		t.maxRedirects = n
	}
}

// NewTable validates routes and returns them as a table. It reports every
// route error, duplicated name, duplicated template and unresolvable
// static redirect at once.
func NewTable(routes []*Route, opts ...Option) (*Table, error) {
	t := &Table{
		routes:       append([]*Route(nil), routes...),
		named:        make(map[string]*Route),
		maxRedirects: DefaultMaxRedirects,
	}
	for _, opt := range opts {
		opt(t)
	}

	if t.maxRedirects < 0 {
		return nil, fmt.Errorf("router: redirect limit must not be negative, got %d", t.maxRedirects)
	}

	var errs []error
	templates := make(map[string]int, len(t.routes))

	for i, r := range t.routes {
		if r == nil {
			errs = append(errs, fmt.Errorf("router: route #%d is nil", i))
			continue
		}
		if r.err != nil {
			errs = append(errs, fmt.Errorf("route #%d: %w", i, r.err))
			continue
		}
		if (r.view == "") == (r.redirect == nil) {
			errs = append(errs, fmt.Errorf("router: route #%d %q must have exactly one of view or redirect", i, r.pattern.template))
			continue
		}
		if prev, ok := templates[r.pattern.template]; ok {
			errs = append(errs, fmt.Errorf("router: route #%d duplicates template %q of route #%d", i, r.pattern.template, prev))
			continue
		}
		templates[r.pattern.template] = i

		if r.name != "" {
			if _, ok := t.named[r.name]; ok {
				errs = append(errs, fmt.Errorf("router: duplicated route name %q", r.name))
				continue
			}
			t.named[r.name] = r
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	// Redirect targets without parameters are fixed, so a dangling,
	// looping or overlong one is a table error rather than a runtime
	// surprise. The hop out of the redirect route itself counts.
	for _, r := range t.routes {
		if r.redirect == nil || len(r.redirect.varsN) > 0 {
			continue
		}
		m, err := t.Resolve(r.redirect.template)
		if err == nil && len(m.RedirectedFrom) >= t.maxRedirects {
			err = fmt.Errorf("router: %w: more than %d hops from %q", ErrRedirectLimit, t.maxRedirects, r.pattern.template)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("router: redirect %s: %w", r, err))
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return t, nil
}

// MustTable is like NewTable but panics on error. It is intended for
// tables declared in code and built once at startup.
func MustTable(routes []*Route, opts ...Option) *Table {
	t, err := NewTable(routes, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// Match attempts a single-step match of path against the table. The
// query and fragment, if any, are ignored. When the winning route is a
// redirect, match.Redirect holds the target built from the bound
// parameters; the redirect is not followed.
//
// On failure match.MatchErr is set to ErrMalformedPath or ErrNotFound.
func (t *Table) Match(path string, match *Match) bool {
	loc, err := parseLocation(path)
	if err != nil {
		match.MatchErr = err
		return false
	}
	return t.match(loc, match)
}

func (t *Table) match(loc location, match *Match) bool {
	for _, r := range t.routes {
		params, ok := r.pattern.match(loc.path, t.strictSlash)
		if !ok {
			continue
		}

		*match = Match{
			Route:    r,
			View:     r.view,
			Params:   params,
			Path:     loc.path,
			RawQuery: loc.rawQuery,
			Hash:     loc.hash,
		}

		if r.redirect != nil {
			target, err := r.redirectTarget(params)
			if err != nil {
				match.MatchErr = err
				return false
			}
			match.Redirect = target
		}

		return true
	}

	match.MatchErr = fmt.Errorf("router: %w: %q", ErrNotFound, loc.path)
	return false
}

// Resolve matches path and follows redirect routes until a view route is
// reached. The query and fragment of the requested path are kept across
// redirects. A redirect chain that revisits a path fails with
// ErrRedirectCycle; one longer than the redirect limit fails with
// ErrRedirectLimit.
func (t *Table) Resolve(path string) (*Match, error) {
	loc, err := parseLocation(path)
	if err != nil {
		return nil, err
	}

	var chain []string
	visited := make(map[string]struct{})

	for {
		if _, seen := visited[loc.path]; seen {
			return nil, fmt.Errorf("router: %w: %s", ErrRedirectCycle, strings.Join(append(chain, loc.path), " -> "))
		}
		visited[loc.path] = struct{}{}

		var m Match
		if !t.match(loc, &m) {
			return nil, m.MatchErr
		}

		if m.Redirect == "" {
			m.RedirectedFrom = chain
			return &m, nil
		}

		if len(chain) >= t.maxRedirects {
			return nil, fmt.Errorf("router: %w: more than %d hops from %q", ErrRedirectLimit, t.maxRedirects, path)
		}

		chain = append(chain, loc.path)
		loc.path = m.Redirect
	}
}

// URL builds the path of the route registered under name.
func (t *Table) URL(name string, pairs ...string) (string, error) {
	r, ok := t.named[name]
	if !ok {
		return "", fmt.Errorf("router: %w %q", ErrUnknownRoute, name)
	}
	return r.URL(pairs...)
}

// Get returns the route registered with the given name, or nil.
func (t *Table) Get(name string) *Route {
	return t.named[name]
}

// Routes returns the routes in table order.
func (t *Table) Routes() []*Route {
	return append([]*Route(nil), t.routes...)
}

// Len returns the number of routes.
func (t *Table) Len() int {
	return len(t.routes)
}

// MaxRedirects returns the number of redirect hops Resolve follows.
func (t *Table) MaxRedirects() int {
	return t.maxRedirects
}

// StrictSlash reports whether the table compares trailing slashes exactly.
func (t *Table) StrictSlash() bool {
	return t.strictSlash
}

// WalkFunc is the type of the function called for each route visited by
// Walk, with the route's position in the table.
type WalkFunc func(route *Route, index int) error

// Walk calls walkFn for every route in table order. It stops at the first
// error; returning SkipAll stops without an error.
func (t *Table) Walk(walkFn WalkFunc) error {
	for i, r := range t.routes {
		if err := walkFn(r, i); err != nil {
			if errors.Is(err, SkipAll) {
				return nil
			}
			return err
		}
	}
	return nil
}
