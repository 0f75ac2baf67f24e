package middleware

import "net/http"

// Vary appends headers to the Vary response header (RFC 9110 Section 12.5.5).
// With no arguments it adds Accept, which selects between JSON and CBOR.
// Origin is left to the CORS middleware.
func Vary(headers ...string) func(http.Handler) http.Handler {
	if len(headers) == 0 {
		headers = []string{"Accept"}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, h := range headers {
				w.Header().Add("Vary", h)
			}
			next.ServeHTTP(w, r)
		})
	}
}
