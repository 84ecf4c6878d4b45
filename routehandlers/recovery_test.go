package routehandlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRecoveryMiddleware(t *testing.T) {
	t.Run("recovers and logs", func(t *testing.T) {
		core, logs := observer.New(zapcore.ErrorLevel)
		h := RecoveryMiddleware(zap.New(core))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("boom")
		}))

		w := serve(h, http.MethodGet, "/accounts")
		assert.Equal(t, http.StatusInternalServerError, w.Code)

		entries := logs.FilterMessage("handler panic").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "boom", entries[0].ContextMap()["panic"])
		assert.Equal(t, "/accounts", entries[0].ContextMap()["path"])
	})

	t.Run("passes through", func(t *testing.T) {
		h := RecoveryMiddleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusAccepted)
		}))

		w := serve(h, http.MethodGet, "/")
		assert.Equal(t, http.StatusAccepted, w.Code)
	})

	t.Run("re-raises abort", func(t *testing.T) {
		h := RecoveryMiddleware(nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic(http.ErrAbortHandler)
		}))

		assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
			serve(h, http.MethodGet, "/")
		})
	})
}
