package handlers

import (
	"net/http"
	"strings"
)

// CORS allows the dashboard origin to make credentialed requests. The
// origin list is deliberately explicit; a wildcard cannot be combined
// with cookies.
func CORS(allowedOrigin string) func(http.Handler) http.Handler {
	allowed := strings.TrimSuffix(strings.ToLower(allowedOrigin), "/")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && strings.TrimSuffix(strings.ToLower(origin), "/") == allowed {
				header := w.Header()
				header.Set("Access-Control-Allow-Origin", origin)
				header.Set("Access-Control-Allow-Credentials", "true")
				header.Add("Vary", "Origin")

				if r.Method == http.MethodOptions {
					header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
					header.Set("Access-Control-Allow-Headers", "Content-Type")
					header.Set("Access-Control-Max-Age", "86400")
					w.WriteHeader(http.StatusNoContent)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
