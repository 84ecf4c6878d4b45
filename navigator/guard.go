package navigator

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNavigationAborted is returned when a guard rejects a navigation.
	// The guard's own error is wrapped alongside it.
	ErrNavigationAborted = errors.New("navigator: navigation aborted")

	// ErrDuplicateNavigation is returned when pushing or replacing the
	// path that is already current. History is left untouched.
	ErrDuplicateNavigation = errors.New("navigator: already at this path")

	// ErrNoHistoryEntry is returned when traversing past either end of
	// the history.
	ErrNoHistoryEntry = errors.New("navigator: no history entry")
)

// Guard inspects a navigation before it commits. Returning nil lets it
// proceed, returning Redirect(path) restarts it at path, and any other
// error aborts it.
type Guard func(ctx context.Context, to, from State) error

// RedirectError asks the navigator to restart a navigation at Path.
type RedirectError struct {
	Path string
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("navigator: redirect to %q", e.Path)
}

// Redirect returns the error a Guard uses to send a navigation elsewhere.
func Redirect(path string) error {
	return &RedirectError{Path: path}
}
