package routehandlers

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts HTTP requests and the outcome of every path the shell
// resolves. A nil *Metrics records nothing.
type Metrics struct {
	requests    *prometheus.CounterVec
	resolutions *prometheus.CounterVec
}

// NewMetrics creates the HTTP collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "navroute",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "HTTP requests by method and status code.",
			},
			[]string{"method", "code"},
		),
		resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "navroute",
				Subsystem: "http",
				Name:      "resolutions_total",
				Help:      "Paths resolved by the shell handler, by result.",
			},
			[]string{"result"},
		),
	}

	for _, c := range []prometheus.Collector{m.requests, m.resolutions} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Middleware counts every request once the handler returns.
func (m *Metrics) Middleware() Middleware {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sr := newStatusRecorder(w)
			next.ServeHTTP(sr, r)
			m.requests.WithLabelValues(r.Method, strconv.Itoa(sr.status)).Inc()
		})
	}
}

func (m *Metrics) resolved(result string) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(result).Inc()
}
