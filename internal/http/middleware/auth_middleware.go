package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/acadverify/student-auth-service/internal/domain"
	"github.com/acadverify/student-auth-service/internal/http/response"
	"github.com/acadverify/student-auth-service/internal/observability"
	"github.com/acadverify/student-auth-service/internal/security"
	"github.com/acadverify/student-auth-service/internal/service"
)

type contextKey string

const (
	ClaimsContextKey  contextKey = "claims"
	AccountContextKey contextKey = "account"
)

// AuthMiddleware extracts the bearer token, verifies signature and
// expiry, and injects the resolved claims into the request context.
func AuthMiddleware(jwtMgr *security.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			var raw string
			if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
				raw = strings.TrimSpace(auth[7:])
			}
			if raw == "" {
				observability.RecordTokenValidation(r.Context(), "missing")
				response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "missing access token", nil)
				return
			}
			claims, err := jwtMgr.Parse(raw)
			if err != nil {
				outcome := "invalid"
				if errors.Is(err, security.ErrTokenExpired) {
					outcome = "expired"
				}
				observability.RecordTokenValidation(r.Context(), outcome)
				response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token", nil)
				return
			}
			observability.RecordTokenValidation(r.Context(), "valid")
			ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole resolves the authenticated account and rejects requests
// whose role is outside the allowed set. The resolved account is placed
// in the context so handlers do not re-fetch it.
func RequireRole(accounts service.AccountResolver, roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "missing auth context", nil)
				return
			}
			account, err := accounts.GetByID(claims.Subject)
			if err != nil {
				response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "account no longer exists", nil)
				return
			}
			if _, ok := allowed[account.Role]; !ok {
				response.Error(w, r, http.StatusForbidden, "FORBIDDEN", "not authorized for this resource", map[string]any{"required": roles})
				return
			}
			ctx := context.WithValue(r.Context(), AccountContextKey, account)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func ClaimsFromContext(ctx context.Context) (*security.Claims, bool) {
	c, ok := ctx.Value(ClaimsContextKey).(*security.Claims)
	return c, ok
}

func AccountFromContext(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(AccountContextKey).(*domain.User)
	return u, ok
}
