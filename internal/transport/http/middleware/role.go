package middleware

import (
	"net/http"

	"github.com/egotransfert/auth-api/internal/domain"
)

// RequireSuperAdmin allows only requests whose JWT carries the superadmin
// role. The check runs to completion before the next handler is ever invoked;
// a rejected request never reaches the gated resource.
func RequireSuperAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			writeJSONError(w, http.StatusUnauthorized, "access denied, no token provided", 0)
			return
		}
		if claims.Role != domain.RoleSuperAdmin {
			writeJSONError(w, http.StatusForbidden, "access denied", domain.CodeAccessDenied)
			return
		}
		next.ServeHTTP(w, r)
	})
}
