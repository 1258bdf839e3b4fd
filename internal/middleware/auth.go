package middleware

import (
	"context"
	"net/http"
	"strings"

	"supaportal/backend/internal/app"
	"supaportal/backend/internal/supabase"
)

// TokenVerifier resolves a bearer token to a user. *supabase.Client satisfies it.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*app.User, error)
}

// WithAuth rejects requests without a valid bearer token and stores the
// verified user in the request locals.
func WithAuth(v TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				fail(w, http.StatusUnauthorized, "missing Authorization: Bearer <token>")
				return
			}

			u, err := v.VerifyToken(r.Context(), token)
			if err != nil && !supabase.IsErrUnauthorized(err) {
				fail(w, http.StatusBadGateway, "auth service unavailable")
				return
			}
			if err != nil || u == nil {
				fail(w, http.StatusUnauthorized, "invalid token")
				return
			}

			ctx := app.WithLocals(r.Context(), &app.Locals{User: u, AccessToken: token})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithPlatform attaches the platform bindings to every request.
func WithPlatform(p app.Platform) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(app.WithPlatform(r.Context(), p)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if h == "" || !strings.HasPrefix(strings.ToLower(h), "bearer ") {
		return "", false
	}
	token := strings.TrimSpace(h[len("Bearer "):])
	return token, token != ""
}

// IsAdmin reports whether the user's app metadata grants the admin role.
func IsAdmin(u *app.User) bool {
	if u == nil || u.AppMetadata == nil {
		return false
	}
	if admin, ok := u.AppMetadata["admin"].(bool); ok && admin {
		return true
	}
	if role, ok := u.AppMetadata["role"].(string); ok && role == "admin" {
		return true
	}
	if roles, ok := u.AppMetadata["roles"].([]interface{}); ok {
		for _, r := range roles {
			if s, ok := r.(string); ok && s == "admin" {
				return true
			}
		}
	}
	return false
}
