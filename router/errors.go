package router

import "errors"

// Resolution errors. They are wrapped together with the offending path, so
// callers should test for them with errors.Is.
var (
	// ErrNotFound is returned when no route in the table matches the path.
	ErrNotFound = errors.New("no matching route was found")

	// ErrMalformedPath is returned when the requested path does not start
	// with a slash, carries control characters, or holds an invalid
	// percent-encoding.
	ErrMalformedPath = errors.New("malformed path")

	// ErrRedirectCycle is returned when a redirect chain revisits a path it
	// has already passed through.
	ErrRedirectCycle = errors.New("redirect cycle detected")

	// ErrRedirectLimit is returned when a redirect chain is longer than the
	// table's redirect limit.
	ErrRedirectLimit = errors.New("too many redirects")
)

// Build errors.
var (
	// ErrMissingParam is returned when building a path without a value for
	// a required parameter.
	ErrMissingParam = errors.New("missing route parameter")

	// ErrInvalidParam is returned when a parameter value does not satisfy
	// the constraint declared in the template.
	ErrInvalidParam = errors.New("route parameter does not match its constraint")

	// ErrUnknownRoute is returned by Table.URL when no route carries the
	// requested name.
	ErrUnknownRoute = errors.New("unknown route name")
)

// SkipAll is used as a return value from WalkFunc to stop walking the
// remaining routes without reporting an error.
var SkipAll = errors.New("skip remaining routes") //nolint:revive,staticcheck // mirrors fs.SkipAll
