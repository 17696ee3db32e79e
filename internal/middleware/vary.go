package middleware

import "net/http"

// Vary returns middleware that adds Accept to the Vary header on all
// responses. Per RFC 9110 Section 12.5.5, Vary lists the request headers that
// influence response selection; content negotiation here picks JSON or CBOR
// based on Accept. The CORS middleware adds "Origin" separately.
func Vary() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Vary", "Accept")
			next.ServeHTTP(w, r)
		})
	}
}
