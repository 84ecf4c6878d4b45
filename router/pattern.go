package router

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"sync"
)

// defaultParamPattern binds exactly one non-empty path segment.
const defaultParamPattern = `[^/]+`

// paramName is the accepted syntax for a parameter name. Names double as
// regexp group names, so they follow Go's identifier rules.
var paramName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// segment is one slash-separated element of a path template.
type segment struct {
	// literal is the exact text of a literal segment. Empty for parameters.
	literal string
	// name is the parameter name. Empty for literal segments.
	name string
	// optional marks a :name? parameter.
	optional bool
	// constraint is the macro name or raw regexp from :name(constraint).
	constraint string
	// pattern is the regexp fragment the parameter value must match.
	pattern string
	// matcher validates values when building paths. Nil for
	// unconstrained parameters.
	matcher paramMatcher
}

func (s segment) isParam() bool {
	return s.name != ""
}

// routePattern stores a compiled path template.
type routePattern struct {
	// template is the original template string.
	template string
	// segments are the parsed template segments in order.
	segments []segment
	// trailingSlash reports whether the template ends with a slash.
	trailingSlash bool
	// regexp is the compiled, anchored regular expression.
	regexp *regexp.Regexp
	// varsN are the parameter names in order.
	varsN []string
	// varsI are the regexp group indices of each parameter.
	varsI []int
}

// newRoutePattern parses a path template such as
// "/transactions/blocks/:height?" and compiles it.
func newRoutePattern(tpl string) (*routePattern, error) {
	if tpl == "" || tpl[0] != '/' {
		return nil, fmt.Errorf("router: template %q must start with a slash", tpl)
	}

	raw, err := splitTemplate(tpl)
	if err != nil {
		return nil, err
	}

	p := &routePattern{template: tpl}

	if n := len(raw); n > 0 && raw[n-1] == "" {
		p.trailingSlash = true
		raw = raw[:n-1]
	}

	var pattern strings.Builder
	pattern.WriteByte('^')

	for _, s := range raw {
		if s == "" {
			return nil, fmt.Errorf("router: empty segment in %q", tpl)
		}

		seg, err := parseSegment(s, tpl)
		if err != nil {
			return nil, err
		}

		switch {
		case !seg.isParam():
			pattern.WriteByte('/')
			pattern.WriteString(regexp.QuoteMeta(seg.literal))
		case seg.optional:
			fmt.Fprintf(&pattern, "(?:/(?P<%s>%s))?", seg.name, seg.pattern)
		default:
			fmt.Fprintf(&pattern, "/(?P<%s>%s)", seg.name, seg.pattern)
		}

		if seg.isParam() {
			p.varsN = append(p.varsN, seg.name)
		}
		p.segments = append(p.segments, seg)
	}

	if err := checkDuplicateVars(p.varsN); err != nil {
		return nil, fmt.Errorf("%w in %q", err, tpl)
	}

	// A single trailing slash is always accepted by the regexp; strict
	// tables compare it separately in match.
	if len(p.segments) == 0 {
		pattern.WriteByte('/')
	} else {
		pattern.WriteString("/?")
	}
	pattern.WriteByte('$')

	reg, err := compileRegexp(pattern.String())
	if err != nil {
		return nil, fmt.Errorf("router: invalid template %q: %w", tpl, err)
	}
	p.regexp = reg

	for _, name := range p.varsN {
		p.varsI = append(p.varsI, reg.SubexpIndex(name))
	}

	return p, nil
}

// splitTemplate splits a template on slashes that are not inside a
// parenthesized constraint. The leading slash is dropped.
func splitTemplate(tpl string) ([]string, error) {
	if tpl == "/" {
		return nil, nil
	}

	var (
		parts []string
		level int
		start = 1
	)
	for i := 1; i < len(tpl); i++ {
		switch tpl[i] {
		case '(':
			level++
		case ')':
			if level--; level < 0 {
				return nil, fmt.Errorf("router: unbalanced parentheses in %q", tpl)
			}
		case '/':
			if level == 0 {
				parts = append(parts, tpl[start:i])
				start = i + 1
			}
		}
	}
	if level != 0 {
		return nil, fmt.Errorf("router: unbalanced parentheses in %q", tpl)
	}

	return append(parts, tpl[start:]), nil
}

// parseSegment parses a single template segment: a literal, :name,
// :name?, :name(constraint) or :name(constraint)?.
func parseSegment(s, tpl string) (segment, error) {
	if s[0] != ':' {
		if strings.ContainsAny(s, "()") {
			return segment{}, fmt.Errorf("router: unexpected parenthesis in segment %q of %q", s, tpl)
		}
		return segment{literal: s}, nil
	}

	body := s[1:]
	end := strings.IndexAny(body, "(?")
	if end == -1 {
		end = len(body)
	}

	seg := segment{name: body[:end], pattern: defaultParamPattern}
	if !paramName.MatchString(seg.name) {
		return segment{}, fmt.Errorf("router: invalid parameter name %q in %q", seg.name, tpl)
	}

	rest := body[end:]
	if strings.HasPrefix(rest, "(") {
		closing := matchingParen(rest)
		if closing <= 1 {
			return segment{}, fmt.Errorf("router: empty or unterminated constraint for %q in %q", seg.name, tpl)
		}

		seg.constraint = rest[1:closing]
		rest = rest[closing+1:]

		patt, matcher := lookupConstraint(seg.constraint)
		if matcher == nil {
			compiled, err := compileRegexp(fmt.Sprintf("^(?:%s)$", patt))
			if err != nil {
				return segment{}, fmt.Errorf("router: invalid constraint %q for %q: %w", patt, seg.name, err)
			}
			matcher = compiled
		}
		seg.pattern = patt
		seg.matcher = matcher
	}

	switch rest {
	case "":
	case "?":
		seg.optional = true
	default:
		return segment{}, fmt.Errorf("router: unexpected %q after parameter %q in %q", rest, seg.name, tpl)
	}

	return seg, nil
}

// matchingParen returns the index of the parenthesis closing s[0], or -1.
func matchingParen(s string) int {
	level := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			level++
		case ')':
			if level--; level == 0 {
				return i
			}
		}
	}
	return -1
}

// checkDuplicateVars returns an error if any parameter name is repeated.
func checkDuplicateVars(vars []string) error {
	seen := make(map[string]bool, len(vars))
	for _, v := range vars {
		if seen[v] {
			return fmt.Errorf("router: duplicated route parameter %q", v)
		}
		seen[v] = true
	}
	return nil
}

// match reports whether the escaped path p matches the pattern and
// returns the decoded parameters. Absent optional parameters are omitted.
func (p *routePattern) match(path string, strictSlash bool) (Params, bool) {
	if strictSlash && len(p.segments) > 0 {
		hasSlash := len(path) > 1 && path[len(path)-1] == '/'
		if hasSlash != p.trailingSlash {
			return nil, false
		}
	}

	idx := p.regexp.FindStringSubmatchIndex(path)
	if idx == nil {
		return nil, false
	}

	params := make(Params, len(p.varsN))
	for i, name := range p.varsN {
		g := p.varsI[i]
		start, end := idx[2*g], idx[2*g+1]
		if start < 0 {
			continue
		}
		v := path[start:end]
		if unescaped, err := url.PathUnescape(v); err == nil {
			v = unescaped
		}
		params[name] = v
	}

	return params, true
}

// url builds an escaped path from the template and the given values.
// Optional parameters without a value are left out.
func (p *routePattern) url(values map[string]string) (string, error) {
	var b strings.Builder

	for _, seg := range p.segments {
		if !seg.isParam() {
			b.WriteByte('/')
			b.WriteString(seg.literal)
			continue
		}

		v, ok := values[seg.name]
		if !ok || v == "" {
			if seg.optional {
				continue
			}
			return "", fmt.Errorf("router: %w %q in %q", ErrMissingParam, seg.name, p.template)
		}

		if seg.matcher != nil && !seg.matcher.MatchString(v) {
			return "", fmt.Errorf("router: %w: %q=%q, expected %q", ErrInvalidParam, seg.name, v, seg.matcher.String())
		}

		b.WriteByte('/')
		b.WriteString(url.PathEscape(v))
	}

	if b.Len() == 0 || p.trailingSlash {
		b.WriteByte('/')
	}

	return b.String(), nil
}

// requiredVars returns the names of the parameters that must be present.
func (p *routePattern) requiredVars() []string {
	var names []string
	for _, seg := range p.segments {
		if seg.isParam() && !seg.optional {
			names = append(names, seg.name)
		}
	}
	return names
}

// regexpCache caches compiled regular expressions by pattern string.
// The number of unique patterns is bounded by the registered templates.
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
