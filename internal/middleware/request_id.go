package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"badgetrack/pkg/logger"
)

type contextKey string

// RequestIDContextKey is the context key holding the request ID.
const RequestIDContextKey contextKey = "request_id"

// RequestID creates a middleware that adds a unique request ID to each request
func RequestID(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := generateRequestID()

			ctx := context.WithValue(r.Context(), RequestIDContextKey, requestID)
			r = r.WithContext(ctx)

			w.Header().Set("X-Request-ID", requestID)

			log.WithField("request_id", requestID).
				WithField("method", r.Method).
				WithField("path", r.URL.Path).
				Debug("Request received")

			next.ServeHTTP(w, r)
		})
	}
}

func generateRequestID() string {
	now := time.Now()
	return fmt.Sprintf("%d-%d", now.Unix(), now.Nanosecond())
}
