package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/egotransfert/auth-api/internal/domain"
	jwtinfra "github.com/egotransfert/auth-api/internal/infrastructure/jwt"
)

type contextKey string

const ClaimsKey contextKey = "claims"

// TokenVerifier validates an access token and returns its claims.
type TokenVerifier interface {
	VerifyAccess(tokenStr string) (*jwtinfra.Claims, error)
}

// Auth returns middleware that validates the Bearer access token and injects
// its claims into the request context. A missing or malformed header is a 401;
// a token that fails verification is a 403 carrying the InvalidToken code.
func Auth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeJSONError(w, http.StatusUnauthorized, "access denied, no token provided", 0)
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := verifier.VerifyAccess(tokenStr)
			if err != nil {
				writeJSONError(w, http.StatusForbidden, "invalid token", domain.CodeInvalidToken)
				return
			}
			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext extracts JWT claims from the request context.
func ClaimsFromContext(ctx context.Context) (*jwtinfra.Claims, bool) {
	c, ok := ctx.Value(ClaimsKey).(*jwtinfra.Claims)
	return c, ok
}
