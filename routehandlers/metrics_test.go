package routehandlers

import (
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	t.Run("counts requests", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		m, err := NewMetrics(reg)
		require.NoError(t, err)

		h := m.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/missing" {
				w.WriteHeader(http.StatusNotFound)
			}
		}))

		serve(h, http.MethodGet, "/")
		serve(h, http.MethodGet, "/")
		serve(h, http.MethodGet, "/missing")

		assert.InDelta(t, 2, testutil.ToFloat64(m.requests.WithLabelValues("GET", "200")), 0)
		assert.InDelta(t, 1, testutil.ToFloat64(m.requests.WithLabelValues("GET", "404")), 0)
	})

	t.Run("duplicate registration", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		_, err := NewMetrics(reg)
		require.NoError(t, err)
		_, err = NewMetrics(reg)
		assert.Error(t, err)
	})

	t.Run("nil metrics", func(t *testing.T) {
		var m *Metrics
		ok := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
		w := serve(m.Middleware()(ok), http.MethodGet, "/")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotPanics(t, func() { m.resolved("ok") })
	})
}
