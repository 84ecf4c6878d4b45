package navigator

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/navroute/dashboard"
	"github.com/vitalvas/navroute/router"
)

func TestMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("counts outcomes", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		m, err := NewMetrics(reg)
		require.NoError(t, err)

		nav := newTestNavigator(t, WithMetrics(m))
		require.NoError(t, nav.Navigate(ctx, "/firmware-security"))
		require.NoError(t, nav.Navigate(ctx, "/accounts"))
		require.Error(t, nav.Navigate(ctx, "/missing"))
		require.NoError(t, nav.Back(ctx))

		assert.InDelta(t, 2, testutil.ToFloat64(m.navigations.WithLabelValues("push", "ok")), 0)
		assert.InDelta(t, 1, testutil.ToFloat64(m.navigations.WithLabelValues("push", "not_found")), 0)
		assert.InDelta(t, 1, testutil.ToFloat64(m.navigations.WithLabelValues("traverse", "ok")), 0)
		assert.InDelta(t, 1, testutil.ToFloat64(m.redirects), 0)
		assert.InDelta(t, 2, testutil.ToFloat64(m.views.WithLabelValues(dashboard.FirmwareAvailable)), 0)
		assert.InDelta(t, 1, testutil.ToFloat64(m.views.WithLabelValues(dashboard.Accounts)), 0)
	})

	t.Run("double registration fails", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		_, err := NewMetrics(reg)
		require.NoError(t, err)

		_, err = NewMetrics(reg)
		assert.Error(t, err)
	})

	t.Run("nil metrics is a no-op", func(t *testing.T) {
		var m *Metrics
		assert.NotPanics(t, func() {
			m.observe(Event{Kind: KindPush})
		})
	})
}

func TestResultLabel(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{fmt.Errorf("router: %w: %q", router.ErrNotFound, "/x"), "not_found"},
		{router.ErrMalformedPath, "malformed"},
		{router.ErrRedirectCycle, "redirect_cycle"},
		{router.ErrRedirectLimit, "redirect_limit"},
		{fmt.Errorf("%w: %w", ErrNavigationAborted, errors.New("no")), "aborted"},
		{ErrDuplicateNavigation, "duplicate"},
		{ErrNoHistoryEntry, "no_entry"},
		{context.Canceled, "canceled"},
		{context.DeadlineExceeded, "canceled"},
		{errors.New("other"), "error"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, ResultLabel(tt.err))
		})
	}
}
