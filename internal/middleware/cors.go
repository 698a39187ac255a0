package middleware

import (
	"net/http"

	"arcana/internal/config"
	"arcana/pkg/utils"
)

// CorsMiddleware handles Cross-Origin Resource Sharing with wildcard
// subdomain support for the configured origin whitelist.
func CorsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestOrigin := r.Header.Get("Origin")
		origin := requestOrigin
		if origin == "" {
			origin = r.Header.Get("Referer")
		}

		if utils.MatchAnyOrigin(origin, config.AppConfig.Security.CorsOrigins) {
			w.Header().Set("Access-Control-Allow-Origin", requestOrigin)
			w.Header().Set("Vary", "Origin")
		}

		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
