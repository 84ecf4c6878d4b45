// Package router resolves application paths to view identifiers for a
// single-page application running in path-based (history) mode.
//
// # Routes
//
// A route binds a path template to either a view or a redirect target:
//
//	routes := []*router.Route{
//	    router.View("/", "Dashboard").Name("dashboard"),
//	    router.View("/transactions/blocks/:height?", "Transactions"),
//	    router.Redirect("/firmware-security", "/firmware-security/available-firmware"),
//	    router.View("/firmware-security/firmware/:sha256", "FirmwareDetail"),
//	}
//	table, err := router.NewTable(routes)
//
// # Templates
//
// A template is a sequence of slash-separated segments. A segment is
// either literal text, compared case-sensitively, or a parameter:
//
//	:name              required, binds exactly one non-empty segment
//	:name?             optional, binds zero or one segment
//	:name(constraint)  required, the segment must fully match constraint
//	:name(constraint)? optional and constrained
//
// A constraint is either a macro name or a raw regular expression:
//
//	uuid     - RFC 4122 UUID (e.g. 550e8400-e29b-41d4-a716-446655440000)
//	int      - unsigned integer (e.g. 42)
//	slug     - URL-safe slug (e.g. my-post-title)
//	alpha    - alphabetic characters (e.g. hello)
//	alphanum - alphanumeric characters (e.g. abc123)
//	date     - ISO 8601 date (e.g. 2024-01-15)
//	hex      - hexadecimal string (e.g. deadBEEF)
//	sha256   - 64 hexadecimal characters
//
// Parameter values are percent-decoded. Absent optional parameters are
// left out of Params rather than set to an empty string.
//
// # Matching
//
// Routes are tried in table order and the first structural match wins, so
// two templates that could both match a path are disambiguated by their
// position alone. By default a single trailing slash is tolerated
// ("/accounts/" matches "/accounts"); WithStrictSlash turns that off. A
// trailing slash never satisfies a required parameter.
//
// Table.Match performs one step and reports a redirect route through
// Match.Redirect. Table.Resolve follows redirects until a view route is
// reached, keeping the query and fragment of the original path:
//
//	m, err := table.Resolve("/firmware-security?tab=2")
//	// m.View == "FirmwareAvailable", m.FullPath() == "/firmware-security/available-firmware?tab=2"
//
// # Errors
//
// Resolve fails with ErrMalformedPath, ErrNotFound, ErrRedirectCycle or
// ErrRedirectLimit, each wrapped with the offending path:
//
//	if errors.Is(err, router.ErrNotFound) {
//	    // render the not-found view
//	}
//
// # Building Paths
//
// Named routes can be turned back into paths:
//
//	p, err := table.URL("firmware-detail", "sha256", digest)
//
// Optional parameters may be omitted; constrained parameters are checked
// against their constraint.
package router
