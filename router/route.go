package router

import (
	"errors"
	"fmt"
)

// Route is a single table entry: a path template bound to either a view
// identifier or a redirect target. Routes are built with View or Redirect
// and are not modified once added to a Table.
type Route struct {
	pattern  *routePattern
	redirect *routePattern
	view     string
	name     string
	err      error
}

// View returns a route that activates view for paths matching tpl.
func View(tpl, view string) *Route {
	r := &Route{view: view}
	if view == "" {
		r.err = fmt.Errorf("router: route %q has an empty view", tpl)
		return r
	}
	r.pattern, r.err = newRoutePattern(tpl)
	return r
}

// Redirect returns a route that sends paths matching tpl to target.
// Parameters of tpl referenced in target as :name are carried over.
func Redirect(tpl, target string) *Route {
	r := &Route{}
	if r.pattern, r.err = newRoutePattern(tpl); r.err != nil {
		return r
	}
	if target == "" {
		r.err = fmt.Errorf("router: route %q has an empty redirect target", tpl)
		return r
	}
	if r.redirect, r.err = newRoutePattern(target); r.err != nil {
		return r
	}
	if name, ok := containsAll(r.pattern.varsN, r.redirect.requiredVars()); !ok {
		r.err = fmt.Errorf("router: redirect target %q requires parameter %q not bound by %q", target, name, tpl)
	}
	return r
}

// Name sets the name for the route, used to build paths with Table.URL.
func (r *Route) Name(name string) *Route {
	if r.name != "" {
		r.err = fmt.Errorf("router: route already has name %q, can't set %q", r.name, name)
		return r
	}
	if r.err == nil {
		r.name = name
	}
	return r
}

// GetName returns the name for the route, if any.
func (r *Route) GetName() string {
	return r.name
}

// GetView returns the view identifier. It is empty for redirect routes.
func (r *Route) GetView() string {
	return r.view
}

// IsRedirect reports whether the route redirects instead of activating a view.
func (r *Route) IsRedirect() bool {
	return r.redirect != nil
}

// GetRedirectTemplate returns the redirect target template.
func (r *Route) GetRedirectTemplate() (string, error) {
	if r.err != nil {
		return "", r.err
	}
	if r.redirect == nil {
		return "", errors.New("router: route doesn't redirect")
	}
	return r.redirect.template, nil
}

// GetPathTemplate returns the template for the route path.
func (r *Route) GetPathTemplate() (string, error) {
	if r.err != nil {
		return "", r.err
	}
	return r.pattern.template, nil
}

// GetPathRegexp returns the compiled regexp for the route path.
func (r *Route) GetPathRegexp() (string, error) {
	if r.err != nil {
		return "", r.err
	}
	return r.pattern.regexp.String(), nil
}

// GetVarNames returns the parameter names of the route path in order.
func (r *Route) GetVarNames() ([]string, error) {
	if r.err != nil {
		return nil, r.err
	}
	return append([]string(nil), r.pattern.varsN...), nil
}

// GetError returns any error that was set on the route.
func (r *Route) GetError() error {
	return r.err
}

// URL builds the escaped path for the route. It accepts a sequence of
// key/value pairs for the route parameters; optional parameters may be
// left out.
func (r *Route) URL(pairs ...string) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	values, err := mapFromPairsToString(pairs...)
	if err != nil {
		return "", err
	}
	return r.pattern.url(values)
}

// redirectTarget builds the redirect path from the parameters bound by
// the route's own pattern.
func (r *Route) redirectTarget(params Params) (string, error) {
	return r.redirect.url(params)
}

// String returns a short description used in logs and diagnostics.
func (r *Route) String() string {
	if r.pattern == nil {
		return "<invalid route>"
	}
	if r.redirect != nil {
		return r.pattern.template + " -> " + r.redirect.template
	}
	return r.pattern.template + " => " + r.view
}
