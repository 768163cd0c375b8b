package middleware

import (
	"context"
	"net/http"

	"library-auth/internal/auth/gateway"
	"library-auth/internal/metrics"
	"library-auth/internal/session"
	"library-auth/internal/user"
)

// unexported, collision-proof context key
type userContextKeyType struct{}

var userKey = userContextKeyType{}

// UserFromContext extracts the authenticated user from context.
func UserFromContext(ctx context.Context) (*user.User, bool) {
	u, ok := ctx.Value(userKey).(*user.User)
	return u, ok
}

// AuthMiddleware restores the session identity on each request. The
// restore is an explicit per-request store round trip; an invalid or
// stale token is treated as logged-out, never as a server error.
type AuthMiddleware struct {
	gateway *gateway.Gateway
	metrics *metrics.Collector
}

func NewAuthMiddleware(gw *gateway.Gateway, collector *metrics.Collector) *AuthMiddleware {
	return &AuthMiddleware{gateway: gw, metrics: collector}
}

func (a *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(session.CookieName)
		if err != nil || cookie.Value == "" {
			a.metrics.RecordRestore("anonymous")
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		u, err := a.gateway.CurrentUser(r.Context(), cookie.Value)
		if err != nil {
			http.Error(w, "service unavailable", http.StatusServiceUnavailable)
			return
		}
		if u == nil {
			a.metrics.RecordRestore("anonymous")
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		a.metrics.RecordRestore("authenticated")

		ctx := context.WithValue(r.Context(), userKey, u)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
