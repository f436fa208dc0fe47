package middleware

import (
	"net/http"

	"github.com/garrettladley/boldrelay/internal/xhttp"
)

const cacheControl = "Cache-Control"

// SecurityHeaders also marks every response as non-cacheable: signed payment
// payloads and lookup results must never be served from a shared cache.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set(xhttp.XContentTypeOpts, "nosniff")
		h.Set(xhttp.XFrameOpts, "DENY")
		h.Set(xhttp.XXSSProtection, "1; mode=block")
		h.Set(xhttp.ReferrerPolicy, "strict-origin-when-cross-origin")
		h.Set(cacheControl, "no-store")
		next.ServeHTTP(w, r)
	})
}
