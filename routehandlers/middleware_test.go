package routehandlers

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChain(t *testing.T) {
	var order []string

	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), mw("outer"), nil, mw("inner"))

	serve(h, http.MethodGet, "/")
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestResponseJSON(t *testing.T) {
	t.Run("encodes value", func(t *testing.T) {
		w := httptest.NewRecorder()
		ResponseJSON(w, http.StatusCreated, map[string]string{"a": "b"})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"a":"b"}`, w.Body.String())
	})

	t.Run("encode failure", func(t *testing.T) {
		w := httptest.NewRecorder()
		ResponseJSON(w, http.StatusOK, math.Inf(1))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestStatusRecorder(t *testing.T) {
	w := httptest.NewRecorder()
	sr := newStatusRecorder(w)

	assert.Equal(t, http.StatusOK, sr.status)

	sr.WriteHeader(http.StatusTeapot)
	n, err := sr.Write([]byte("abc"))
	assert.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, http.StatusTeapot, sr.status)
	assert.Equal(t, 3, sr.bytes)
	assert.Equal(t, w, sr.Unwrap())
}
