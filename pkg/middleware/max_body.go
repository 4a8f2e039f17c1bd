package middleware

import (
	"net/http"
	"strings"
)

// MaxRequestSize caps the request body. Oversized bodies fail inside
// the handler's decode with a read error rather than exhausting memory.
// Multipart requests are exempt; the upload handler enforces its own,
// larger limit.
func MaxRequestSize(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
