package routehandlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrInvalidFrameOption is returned for a frame option other than DENY,
// SAMEORIGIN or empty.
var ErrInvalidFrameOption = errors.New("routehandlers: frame option must be DENY, SAMEORIGIN, or empty")

// SecurityHeadersConfig configures SecurityHeadersMiddleware.
type SecurityHeadersConfig struct {
	// FrameOption is the X-Frame-Options value. Defaults to "DENY".
	FrameOption string

	// ReferrerPolicy defaults to "strict-origin-when-cross-origin".
	ReferrerPolicy string

	// ContentSecurityPolicy is omitted when empty.
	ContentSecurityPolicy string

	// HSTSMaxAge in seconds. Zero omits Strict-Transport-Security.
	HSTSMaxAge int
}

// SecurityHeadersMiddleware sets the usual hardening headers on every
// response before calling the next handler.
func SecurityHeadersMiddleware(cfg SecurityHeadersConfig) (Middleware, error) {
	switch cfg.FrameOption {
	case "":
		cfg.FrameOption = "DENY"
	case "DENY", "SAMEORIGIN":
	default:
		return nil, ErrInvalidFrameOption
	}

	if cfg.ReferrerPolicy == "" {
		cfg.ReferrerPolicy = "strict-origin-when-cross-origin"
	}

	var hsts string
	if cfg.HSTSMaxAge > 0 {
		hsts = fmt.Sprintf("max-age=%d; includeSubDomains", cfg.HSTSMaxAge)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", cfg.FrameOption)
			h.Set("Referrer-Policy", cfg.ReferrerPolicy)

			if cfg.ContentSecurityPolicy != "" {
				h.Set("Content-Security-Policy", cfg.ContentSecurityPolicy)
			}
			if hsts != "" {
				h.Set("Strict-Transport-Security", hsts)
			}

			next.ServeHTTP(w, r)
		})
	}, nil
}

// CacheControlConfig chooses a Cache-Control value by response type.
type CacheControlConfig struct {
	// Document applies to text/html responses, the rendered shell.
	// Defaults to "no-cache".
	Document string

	// Assets applies to every other successful response. Defaults to
	// "public, max-age=3600".
	Assets string
}

// CacheControlMiddleware sets Cache-Control when the handler writes its
// header, unless the handler set one itself. Error responses get
// "no-store".
func CacheControlMiddleware(cfg CacheControlConfig) Middleware {
	if cfg.Document == "" {
		cfg.Document = "no-cache"
	}
	if cfg.Assets == "" {
		cfg.Assets = "public, max-age=3600"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(&cacheControlWriter{ResponseWriter: w, cfg: cfg}, r)
		})
	}
}

type cacheControlWriter struct {
	http.ResponseWriter
	cfg         CacheControlConfig
	wroteHeader bool
}

func (cw *cacheControlWriter) WriteHeader(code int) {
	if cw.wroteHeader {
		return
	}
	cw.wroteHeader = true

	h := cw.Header()
	if h.Get("Cache-Control") == "" {
		ct := strings.ToLower(h.Get("Content-Type"))
		switch {
		case code >= http.StatusBadRequest:
			h.Set("Cache-Control", "no-store")
		case strings.HasPrefix(ct, "text/html"):
			h.Set("Cache-Control", cw.cfg.Document)
		case code < http.StatusMultipleChoices || code == http.StatusNotModified:
			h.Set("Cache-Control", cw.cfg.Assets)
		}
	}

	cw.ResponseWriter.WriteHeader(code)
}

func (cw *cacheControlWriter) Write(b []byte) (int, error) {
	if !cw.wroteHeader {
		cw.WriteHeader(http.StatusOK)
	}
	return cw.ResponseWriter.Write(b)
}

// Unwrap returns the underlying ResponseWriter.
func (cw *cacheControlWriter) Unwrap() http.ResponseWriter {
	return cw.ResponseWriter
}
