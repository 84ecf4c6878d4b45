package navigator

import (
	"github.com/vitalvas/navroute/router"
)

// State is the committed outcome of a navigation. A new navigation
// replaces it entirely; nothing carries over from the previous state.
type State struct {
	// Path is the full path, with query and fragment, written to history.
	Path string
	// View is the activated view identifier.
	View string
	// Route is the matched table entry.
	Route *router.Route
	// Params holds the bound path parameters.
	Params router.Params
	// RawQuery and Hash are the query and fragment of Path.
	RawQuery string
	Hash     string
	// RedirectedFrom lists the paths that redirected to Path, oldest first.
	RedirectedFrom []string
}

// IsZero reports whether no navigation has committed yet.
func (s State) IsZero() bool {
	return s.Route == nil
}

func (s State) clone() State {
	s.Params = s.Params.Clone()
	s.RedirectedFrom = append([]string(nil), s.RedirectedFrom...)
	return s
}

func stateFromMatch(m *router.Match) State {
	return State{
		Path:           m.FullPath(),
		View:           m.View,
		Route:          m.Route,
		Params:         m.Params.Clone(),
		RawQuery:       m.RawQuery,
		Hash:           m.Hash,
		RedirectedFrom: m.RedirectedFrom,
	}
}

// Kind identifies how a navigation was requested.
type Kind int

const (
	// KindPush appends a history entry.
	KindPush Kind = iota
	// KindReplace overwrites the current history entry.
	KindReplace
	// KindTraverse moves through existing history entries.
	KindTraverse
)

func (k Kind) String() string {
	switch k {
	case KindPush:
		return "push"
	case KindReplace:
		return "replace"
	case KindTraverse:
		return "traverse"
	}
	return "unknown"
}

// Event is delivered to listeners after every navigation attempt. On
// failure Err is set and To is the zero State.
type Event struct {
	Kind Kind
	From State
	To   State
	Err  error
}

// Listener observes navigation events. Listeners may start new
// navigations; those are queued behind the one being reported.
type Listener func(Event)
