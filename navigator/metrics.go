package navigator

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vitalvas/navroute/router"
)

// Metrics counts navigation outcomes. A nil *Metrics records nothing.
type Metrics struct {
	navigations *prometheus.CounterVec
	redirects   prometheus.Counter
	views       *prometheus.CounterVec
}

// NewMetrics creates the navigation collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		navigations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "navroute",
				Name:      "navigations_total",
				Help:      "Navigation attempts by kind and result.",
			},
			[]string{"kind", "result"},
		),
		redirects: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "navroute",
				Name:      "redirects_total",
				Help:      "Redirect hops followed by committed navigations.",
			},
		),
		views: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "navroute",
				Name:      "view_activations_total",
				Help:      "Committed navigations by activated view.",
			},
			[]string{"view"},
		),
	}

	for _, c := range []prometheus.Collector{m.navigations, m.redirects, m.views} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Metrics) observe(ev Event) {
	if m == nil {
		return
	}

	m.navigations.WithLabelValues(ev.Kind.String(), ResultLabel(ev.Err)).Inc()
	if ev.Err != nil {
		return
	}

	m.redirects.Add(float64(len(ev.To.RedirectedFrom)))
	m.views.WithLabelValues(ev.To.View).Inc()
}

// ResultLabel maps a navigation or resolution error to a short, bounded
// label for metrics and logs.
func ResultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, router.ErrNotFound):
		return "not_found"
	case errors.Is(err, router.ErrMalformedPath):
		return "malformed"
	case errors.Is(err, router.ErrRedirectCycle):
		return "redirect_cycle"
	case errors.Is(err, router.ErrRedirectLimit):
		return "redirect_limit"
	case errors.Is(err, ErrNavigationAborted):
		return "aborted"
	case errors.Is(err, ErrDuplicateNavigation):
		return "duplicate"
	case errors.Is(err, ErrNoHistoryEntry):
		return "no_entry"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	}
	return "error"
}
