package common

import (
	"encoding/json"
	"net/http"
	"strings"
)

// AuthMiddleware validates the Bearer token on every request and injects the
// caller's identity into the request context. Requests without a resolvable
// identity are rejected with 401 before any handler runs.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeAuthError(w, "authorization required")
			return
		}

		// header is "Bearer <token>"
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			writeAuthError(w, "invalid auth header")
			return
		}

		claims, err := ValidToken(parts[1])
		if err != nil {
			writeAuthError(w, "invalid or expired token")
			return
		}

		ctx := WithActor(r.Context(), claims.UserID, claims.Handle)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeAuthError(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{
		"error":   "not_authenticated",
		"message": msg,
	})
}
