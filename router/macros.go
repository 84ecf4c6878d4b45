package router

import "regexp"

// paramMatcher validates one parameter value. *regexp.Regexp implements it.
type paramMatcher interface {
	MatchString(string) bool
	String() string
}

// namedConstraints are the shorthands accepted inside :name(...). Anything
// else in the parentheses is taken as a raw regular expression.
var namedConstraints = map[string]string{
	"uuid":     `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`,
	"int":      `[0-9]+`,
	"slug":     `[a-zA-Z0-9]+(?:-[a-zA-Z0-9]+)*`,
	"alpha":    `[a-zA-Z]+`,
	"alphanum": `[a-zA-Z0-9]+`,
	"date":     `[0-9]{4}-[0-9]{2}-[0-9]{2}`,
	"hex":      `[0-9a-fA-F]+`,
	"sha256":   `[0-9a-fA-F]{64}`,
}

var compiledConstraints = func() map[string]*regexp.Regexp {
	out := make(map[string]*regexp.Regexp, len(namedConstraints))
	for name, expr := range namedConstraints {
		out[name] = regexp.MustCompile(`^(?:` + expr + `)$`)
	}
	return out
}()

// lookupConstraint returns the expression and the anchored matcher of a
// named constraint. A raw expression comes back unchanged with a nil
// matcher and has to be compiled by the caller.
func lookupConstraint(c string) (string, paramMatcher) {
	re, ok := compiledConstraints[c]
	if !ok {
		return c, nil
	}
	return namedConstraints[c], re
}
