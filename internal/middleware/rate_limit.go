package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// RateLimitMiddleware limits each client IP to "limit" requests per "window".
// Rejected requests are counted and answered with 429.
func RateLimitMiddleware(limit int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(
		limit,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			rateLimitRejects.Inc()
			writeJSONError(w, http.StatusTooManyRequests, "too many requests")
		}),
	)
}
