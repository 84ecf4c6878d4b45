package router

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Params maps parameter names to their decoded values.
type Params map[string]string

// Get returns the value of a single parameter and whether it was bound.
func (p Params) Get(name string) (string, bool) {
	v, ok := p[name]
	return v, ok
}

// Clone returns a copy of p. The copy of a nil Params is an empty,
// non-nil map.
func (p Params) Clone() Params {
	c := make(Params, len(p))
	for k, v := range p {
		c[k] = v
	}
	return c
}

// Pairs returns the parameters as name/value pairs sorted by name, the
// form accepted by Route.URL.
func (p Params) Pairs() []string {
	names := make([]string, 0, len(p))
	for k := range p {
		names = append(names, k)
	}
	sort.Strings(names)

	pairs := make([]string, 0, 2*len(names))
	for _, k := range names {
		pairs = append(pairs, k, p[k])
	}
	return pairs
}

// location is a requested path split into its components.
type location struct {
	path     string
	rawQuery string
	hash     string
}

// full reassembles the location.
func (l location) full() string {
	s := l.path
	if l.rawQuery != "" {
		s += "?" + l.rawQuery
	}
	if l.hash != "" {
		s += "#" + l.hash
	}
	return s
}

// parseLocation validates a requested path and splits off the query and
// fragment. The path component stays percent-encoded.
func parseLocation(raw string) (location, error) {
	if raw == "" || raw[0] != '/' {
		return location{}, fmt.Errorf("router: %w: %q must start with a slash", ErrMalformedPath, raw)
	}

	for i := 0; i < len(raw); i++ {
		if c := raw[i]; c < 0x20 || c == 0x7f {
			return location{}, fmt.Errorf("router: %w: %q contains a control character", ErrMalformedPath, raw)
		}
	}

	var loc location
	rest := raw
	if i := strings.IndexByte(rest, '#'); i != -1 {
		loc.hash = rest[i+1:]
		rest = rest[:i]
	}
	if i := strings.IndexByte(rest, '?'); i != -1 {
		loc.rawQuery = rest[i+1:]
		rest = rest[:i]
	}
	loc.path = rest

	if _, err := url.PathUnescape(loc.path); err != nil {
		return location{}, fmt.Errorf("router: %w: %q: %v", ErrMalformedPath, raw, err)
	}

	return loc, nil
}

// checkPairs returns an error if the list of key/value pairs has odd length.
func checkPairs(pairs ...string) (int, error) {
	if len(pairs)%2 != 0 {
		return 0, fmt.Errorf("router: number of parameters must be multiple of 2, got %v", pairs)
	}
	return len(pairs) / 2, nil
}

// mapFromPairsToString converts variadic string parameters to a string map.
func mapFromPairsToString(pairs ...string) (map[string]string, error) {
	length, err := checkPairs(pairs...)
	if err != nil {
		return nil, err
	}
	m := make(map[string]string, length)
	for i := 0; i < len(pairs); i += 2 {
		m[pairs[i]] = pairs[i+1]
	}
	return m, nil
}

// containsAll reports whether every element of want is in have.
func containsAll(have, want []string) (string, bool) {
	set := make(map[string]struct{}, len(have))
	for _, h := range have {
		set[h] = struct{}{}
	}
	for _, w := range want {
		if _, ok := set[w]; !ok {
			return w, false
		}
	}
	return "", true
}
