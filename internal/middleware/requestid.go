package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// maxRequestIDLength caps incoming request ID size so a hostile client cannot
// grow log lines without bound.
const maxRequestIDLength = 128

// validRequestID reports whether an incoming request ID is safe to log.
// Only printable ASCII (0x20-0x7E) is allowed; control characters and high
// bytes are rejected to prevent log injection.
func validRequestID(id string) bool {
	if len(id) == 0 || len(id) > maxRequestIDLength {
		return false
	}
	for i := range len(id) {
		c := id[i]
		if c < 0x20 || c > 0x7E {
			return false
		}
	}
	return true
}

// RequestID returns middleware that assigns each request a UUIDv4 identifier.
// A valid incoming X-Request-Id header is reused so callers can correlate
// retries; invalid values are replaced. The identifier is stored under chi's
// request ID context key and echoed on the response.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := r.Header.Get(middleware.RequestIDHeader)
			if !validRequestID(reqID) {
				reqID = uuid.NewString()
			}

			r = r.WithContext(context.WithValue(r.Context(), middleware.RequestIDKey, reqID))
			w.Header().Set(middleware.RequestIDHeader, reqID)
			next.ServeHTTP(w, r)
		})
	}
}
