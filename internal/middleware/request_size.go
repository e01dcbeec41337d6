package middleware

import (
	"fmt"
	"net/http"
)

// RequestSizeLimitMiddleware rejects bodies larger than maxBytes.
// A declared Content-Length over the limit is refused up front; otherwise the
// body is capped so handlers see a read error once the limit is crossed.
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	tooLarge := fmt.Sprintf("request body exceeds %d bytes", maxBytes)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body == nil || r.Body == http.NoBody {
				next.ServeHTTP(w, r)
				return
			}
			if r.ContentLength > maxBytes {
				writeJSONError(w, http.StatusRequestEntityTooLarge, tooLarge)
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
