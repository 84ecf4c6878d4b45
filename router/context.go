package router

import (
	"context"
	"net/url"
)

// Match stores the outcome of matching a path against a Table.
type Match struct {
	// Route is the matched route.
	Route *Route

	// View is the view identifier of the matched route. Empty when the
	// route is a redirect.
	View string

	// Params holds the decoded path parameters. Absent optional
	// parameters have no key.
	Params Params

	// Redirect is the target built for a redirect route by Table.Match.
	// Resolve follows it, so it is always empty in a resolved match.
	Redirect string

	// Path is the escaped path that was matched.
	Path string

	// RawQuery is the query string of the requested path, without '?'.
	RawQuery string

	// Hash is the fragment of the requested path, without '#'.
	Hash string

	// RedirectedFrom lists the paths that redirected to Path, oldest first.
	RedirectedFrom []string

	// MatchErr is set when Table.Match fails.
	MatchErr error
}

// FullPath returns the path with its query and fragment.
func (m *Match) FullPath() string {
	return location{path: m.Path, rawQuery: m.RawQuery, hash: m.Hash}.full()
}

// Query parses RawQuery. Malformed pairs are dropped.
func (m *Match) Query() url.Values {
	q, _ := url.ParseQuery(m.RawQuery)
	return q
}

// Redirected reports whether the match was reached through a redirect.
func (m *Match) Redirected() bool {
	return len(m.RedirectedFrom) > 0
}

// matchContextKey is an unexported type for the context key.
type matchContextKey struct{}

// WithMatch returns a copy of ctx carrying m.
func WithMatch(ctx context.Context, m *Match) context.Context {
	return context.WithValue(ctx, matchContextKey{}, m)
}

// MatchFromContext returns the match stored by WithMatch, or nil.
func MatchFromContext(ctx context.Context) *Match {
	m, _ := ctx.Value(matchContextKey{}).(*Match)
	return m
}

// ParamsFromContext returns the parameters of the match stored in ctx,
// or nil.
func ParamsFromContext(ctx context.Context) Params {
	if m := MatchFromContext(ctx); m != nil {
		return m.Params
	}
	return nil
}

// ParamFromContext returns a single parameter of the match stored in ctx
// and whether it was bound.
func ParamFromContext(ctx context.Context, name string) (string, bool) {
	if m := MatchFromContext(ctx); m != nil {
		return m.Params.Get(name)
	}
	return "", false
}
