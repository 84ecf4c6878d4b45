// Package navigator keeps the navigation state of one application session
// on top of a router.Table: the current view and parameters, the
// back/forward history, guards that may veto or redirect a navigation, and
// listeners that activate views.
//
// One Navigator is created per session and passed to the code that needs
// it; there is no package-level instance.
//
//	table, _ := dashboard.NewTable()
//	nav := navigator.New(table, navigator.WithLogger(logger))
//	if err := nav.Navigate(ctx, "/transactions/blocks/500"); err != nil {
//	    // state is unchanged
//	}
//	height, _ := nav.CurrentParams().Get("height")
//
// Navigations are atomic: the path is resolved and every guard consulted
// before state and history change. A navigation requested while another
// is in progress, from a listener, a guard or another goroutine, is queued
// and runs after it; the queued call returns nil at once and its outcome
// reaches listeners.
package navigator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/vitalvas/navroute/router"
)

// Navigator resolves and commits navigations for a single session.
type Navigator struct {
	table     *router.Table
	history   History
	logger    *zap.Logger
	metrics   *Metrics
	guards    []Guard
	listeners []Listener

	mu    sync.Mutex
	state State
	busy  bool
	queue []pending
}

type request struct {
	kind  Kind
	path  string
	delta int
}

type pending struct {
	ctx context.Context
	req request
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithHistory sets the history stack. The default is a MemoryHistory
// starting at "/".
func WithHistory(h History) Option {
	return func(n *Navigator) {
		n.history = h
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(n *Navigator) {
		n.logger = l
	}
}

// WithMetrics records navigation outcomes in m.
func WithMetrics(m *Metrics) Option {
	return func(n *Navigator) {
		n.metrics = m
	}
}

// WithGuards appends guards, consulted in order before every commit.
func WithGuards(guards ...Guard) Option {
	return func(n *Navigator) {
		n.guards = append(n.guards, guards...)
	}
}

// WithListeners appends listeners, called in order after every attempt.
func WithListeners(listeners ...Listener) Option {
	return func(n *Navigator) {
		n.listeners = append(n.listeners, listeners...)
	}
}

// New returns a Navigator over table. No navigation has committed until
// Start or Navigate is called.
func New(table *router.Table, opts ...Option) *Navigator {
	n := &Navigator{table: table}
	for _, opt := range opts {
		opt(n)
	}
	if n.history == nil {
		n.history = NewMemoryHistory("/")
	}
	if n.logger == nil {
		n.logger = zap.NewNop()
	}
	return n
}

// Start resolves the history's current location and commits it in place,
// the way a page load does.
func (n *Navigator) Start(ctx context.Context) error {
	return n.submit(ctx, request{kind: KindReplace, path: n.history.Location()})
}

// Navigate resolves path and pushes it onto the history.
func (n *Navigator) Navigate(ctx context.Context, path string) error {
	return n.submit(ctx, request{kind: KindPush, path: path})
}

// Replace resolves path and overwrites the current history entry.
func (n *Navigator) Replace(ctx context.Context, path string) error {
	return n.submit(ctx, request{kind: KindReplace, path: path})
}

// Go moves delta entries through the history and restores the state of
// the entry found there.
func (n *Navigator) Go(ctx context.Context, delta int) error {
	return n.submit(ctx, request{kind: KindTraverse, delta: delta})
}

// Back is Go(ctx, -1).
func (n *Navigator) Back(ctx context.Context) error {
	return n.Go(ctx, -1)
}

// Forward is Go(ctx, 1).
func (n *Navigator) Forward(ctx context.Context) error {
	return n.Go(ctx, 1)
}

// Current returns a copy of the committed state.
func (n *Navigator) Current() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state.clone()
}

// CurrentParams returns a copy of the committed parameters. It is empty,
// never nil, when the current route has none or nothing has committed.
func (n *Navigator) CurrentParams() router.Params {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state.Params.Clone()
}

// Resolve resolves path against the table without navigating.
func (n *Navigator) Resolve(path string) (*router.Match, error) {
	return n.table.Resolve(path)
}

// History returns the history stack.
func (n *Navigator) History() History {
	return n.history
}

// submit runs req, or queues it when another navigation is in progress.
// The caller that finds the navigator idle drains the queue before
// returning. If a guard or listener panics, the queue is dropped and the
// navigator is idle again when the panic reaches the caller.
func (n *Navigator) submit(ctx context.Context, req request) error {
	n.mu.Lock()
	if n.busy {
		n.queue = append(n.queue, pending{ctx: ctx, req: req})
		n.mu.Unlock()
		n.logger.Debug("navigation queued",
			zap.Stringer("kind", req.kind),
			zap.String("path", req.path),
			zap.Int("delta", req.delta),
		)
		return nil
	}
	n.busy = true
	n.mu.Unlock()

	drained := false
	defer func() {
		if drained {
			return
		}
		n.mu.Lock()
		dropped := len(n.queue)
		n.queue = nil
		n.busy = false
		n.mu.Unlock()
		n.logger.Error("navigation panicked",
			zap.Stringer("kind", req.kind),
			zap.String("path", req.path),
			zap.Int("dropped", dropped),
		)
	}()

	err := n.run(ctx, req)

	for {
		n.mu.Lock()
		if len(n.queue) == 0 {
			n.busy = false
			drained = true
			n.mu.Unlock()
			return err
		}
		next := n.queue[0]
		n.queue = n.queue[1:]
		n.mu.Unlock()

		_ = n.run(next.ctx, next.req)
	}
}

// run performs one navigation and reports it.
func (n *Navigator) run(ctx context.Context, req request) error {
	from := n.Current()

	to, err := n.prepare(ctx, req, from)
	if err == nil {
		err = n.commit(ctx, req, to)
	}

	ev := Event{Kind: req.kind, From: from, Err: err}
	if err == nil {
		ev.To = to
		n.logger.Debug("navigation committed",
			zap.Stringer("kind", req.kind),
			zap.String("path", to.Path),
			zap.String("view", to.View),
			zap.Any("params", to.Params),
			zap.Strings("redirected_from", to.RedirectedFrom),
		)
	} else {
		n.logger.Info("navigation failed",
			zap.Stringer("kind", req.kind),
			zap.String("path", req.path),
			zap.Int("delta", req.delta),
			zap.String("result", ResultLabel(err)),
			zap.Error(err),
		)
	}

	n.metrics.observe(ev)
	for _, l := range n.listeners {
		l(ev)
	}

	return err
}

// prepare resolves the target of req and runs the guards. Nothing is
// modified.
func (n *Navigator) prepare(ctx context.Context, req request, from State) (State, error) {
	path := req.path
	if req.kind == KindTraverse {
		p, ok := n.history.Peek(req.delta)
		if !ok {
			return State{}, fmt.Errorf("%w at offset %d", ErrNoHistoryEntry, req.delta)
		}
		path = p
	}

	var guardedFrom []string

	for hops := 0; ; hops++ {
		if err := ctx.Err(); err != nil {
			return State{}, err
		}

		m, err := n.table.Resolve(path)
		if err != nil {
			return State{}, err
		}

		to := stateFromMatch(m)
		if len(guardedFrom) > 0 {
			to.RedirectedFrom = append(append([]string(nil), guardedFrom...), to.RedirectedFrom...)
		}

		if req.kind != KindTraverse && !from.IsZero() && to.Path == from.Path {
			return State{}, fmt.Errorf("%w: %q", ErrDuplicateNavigation, to.Path)
		}

		redirect, err := n.runGuards(ctx, to, from)
		if err != nil {
			return State{}, err
		}
		if redirect == "" {
			return to, nil
		}

		if hops >= n.table.MaxRedirects() {
			return State{}, fmt.Errorf("navigator: %w: guards redirected more than %d times", router.ErrRedirectLimit, n.table.MaxRedirects())
		}

		guardedFrom = append(append([]string(nil), to.RedirectedFrom...), m.Path)
		path = redirect
	}
}

// runGuards returns the redirect requested by the first redirecting
// guard, or the abort error of the first rejecting one.
func (n *Navigator) runGuards(ctx context.Context, to, from State) (string, error) {
	for _, g := range n.guards {
		err := g(ctx, to, from)
		if err == nil {
			continue
		}

		var redirect *RedirectError
		if errors.As(err, &redirect) {
			return redirect.Path, nil
		}

		return "", fmt.Errorf("%w: %w", ErrNavigationAborted, err)
	}
	return "", nil
}

// commit writes history and state together.
func (n *Navigator) commit(ctx context.Context, req request, to State) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	switch req.kind {
	case KindPush:
		n.history.Push(to.Path)
	case KindReplace:
		n.history.Replace(to.Path)
	case KindTraverse:
		if !n.history.Go(req.delta) {
			return fmt.Errorf("%w at offset %d", ErrNoHistoryEntry, req.delta)
		}
		if n.history.Location() != to.Path {
			n.history.Replace(to.Path)
		}
	}

	n.state = to
	return nil
}
