package middleware

import (
	"net/http"
	"os"

	"go.uber.org/zap"

	"p9e.in/inspectly/config"
)

// RequireGatewayKey protects the session-exchange endpoint. Identity
// assertions are verified upstream by the identity gateway; this key
// proves the request came through it and not straight off the internet.
func RequireGatewayKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := os.Getenv("GATEWAY_API_KEY")
		if key == "" || r.Header.Get("x-api-key") != key {
			config.Log.Warn("session exchange blocked, bad gateway key",
				zap.String("path", r.URL.Path))
			http.Error(w, "invalid or missing API key", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
