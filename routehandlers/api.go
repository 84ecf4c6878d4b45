package routehandlers

import (
	"net/http"
	"sort"

	"go.uber.org/zap"

	"github.com/vitalvas/navroute/navigator"
	"github.com/vitalvas/navroute/router"
)

// APIError is the body of every failed API response.
type APIError struct {
	Error  string `json:"error"`
	Result string `json:"result"`
}

// URLResponse is the body of a successful reverse build.
type URLResponse struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// APIHandler exposes the table as JSON:
//
//	GET /api/routes              every route, in table order
//	GET /api/resolve?path=...    the match for path
//	GET /api/url/{name}?k=v      the path of a named route
//
// Failures answer the status StatusCode assigns to the error.
func APIHandler(table *router.Table, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/routes", func(w http.ResponseWriter, _ *http.Request) {
		ResponseJSON(w, http.StatusOK, table.Manifest())
	})

	mux.HandleFunc("GET /api/resolve", func(w http.ResponseWriter, r *http.Request) {
		p := r.URL.Query().Get("path")
		if p == "" {
			ResponseJSON(w, http.StatusBadRequest, APIError{Error: "path query parameter is required", Result: "malformed"})
			return
		}

		m, err := table.Resolve(p)
		if err != nil {
			logger.Debug("api resolve failed", zap.String("path", p), zap.Error(err))
			responseError(w, err)
			return
		}

		ResponseJSON(w, http.StatusOK, m.Info())
	})

	mux.HandleFunc("GET /api/url/{name}", func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")

		query := r.URL.Query()
		keys := make([]string, 0, len(query))
		for k := range query {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		pairs := make([]string, 0, 2*len(keys))
		for _, k := range keys {
			pairs = append(pairs, k, query.Get(k))
		}

		p, err := table.URL(name, pairs...)
		if err != nil {
			responseError(w, err)
			return
		}

		ResponseJSON(w, http.StatusOK, URLResponse{Name: name, Path: p})
	})

	return mux
}

func responseError(w http.ResponseWriter, err error) {
	ResponseJSON(w, StatusCode(err), APIError{Error: err.Error(), Result: navigator.ResultLabel(err)})
}
