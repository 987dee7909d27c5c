package middleware

import (
	"net/http"

	"github.com/flexnit/flexnit/internal/auth"
	"github.com/flexnit/flexnit/internal/logging"
)

// RequireAuth rejects requests without a valid session cookie and stores
// the session claims in the request context for handlers.
func RequireAuth(sessions *auth.Sessions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := sessions.Current(r)
			if err != nil {
				logging.FromContext(r.Context()).Warn("unauthenticated request",
					"path", r.URL.Path,
					"method", r.Method,
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthorized"}`))
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
		})
	}
}
