package routehandlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type requestIDKey struct{}

// RequestIDFromContext returns the request ID stored by LoggingMiddleware,
// or an empty string.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}

	return ""
}

// LoggingConfig configures LoggingMiddleware.
type LoggingConfig struct {
	// Logger receives one entry per request. Defaults to a no-op logger.
	Logger *zap.Logger

	// HeaderName carries the request ID on the request and the response.
	// Defaults to "X-Request-ID".
	HeaderName string

	// TrustIncoming reuses a request ID sent by the client.
	TrustIncoming bool
}

// LoggingMiddleware assigns every request a time-ordered UUID v7 request
// ID and logs the request once the handler returns.
func LoggingMiddleware(cfg LoggingConfig) Middleware {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	headerName := cfg.HeaderName
	if headerName == "" {
		headerName = "X-Request-ID"
	}

	trustIncoming := cfg.TrustIncoming

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			id := ""
			if trustIncoming {
				id = r.Header.Get(headerName)
			}
			if id == "" {
				id = newRequestID()
			}

			w.Header().Set(headerName, id)
			r = r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id))

			sr := newStatusRecorder(w)
			next.ServeHTTP(sr, r)

			level := zap.InfoLevel
			if sr.status >= http.StatusInternalServerError {
				level = zap.ErrorLevel
			}

			logger.Log(level, "http request",
				zap.String("request_id", id),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("query", r.URL.RawQuery),
				zap.Int("status", sr.status),
				zap.Int("bytes", sr.bytes),
				zap.Duration("duration", time.Since(start)),
				zap.String("remote_addr", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
			)
		})
	}
}

func newRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
