package middleware

import (
	"context"
	"net/http"
	"strings"
)

type ContextKey string

const UserIDKey ContextKey = "user_id"

// AuthVerifier validates a Firebase ID token and returns the user's UID.
type AuthVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (string, error)
}

// Auth requires a valid Firebase ID token in the Authorization header and
// stores the authenticated UID in the request context.
func Auth(verifier AuthVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authentication required", http.StatusUnauthorized)
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "Invalid authorization header format", http.StatusUnauthorized)
				return
			}

			uid, err := verifier.VerifyIDToken(r.Context(), parts[1])
			if err != nil {
				http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, uid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID extracts the authenticated user's UID from the request context.
func UserID(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value(UserIDKey).(string)
	return uid, ok && uid != ""
}
