package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/egotransfert/auth-api/internal/domain"
	jwtinfra "github.com/egotransfert/auth-api/internal/infrastructure/jwt"
	"github.com/stretchr/testify/assert"
)

func requestWithRole(role string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	claims := &jwtinfra.Claims{Role: role}
	return req.WithContext(context.WithValue(req.Context(), ClaimsKey, claims))
}

func TestRequireSuperAdmin_NoClaims_Returns401(t *testing.T) {
	rr := httptest.NewRecorder()
	RequireSuperAdmin(http.HandlerFunc(okHandler)).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRequireSuperAdmin_UserRole_Returns403AndBlocksHandler(t *testing.T) {
	handlerCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	RequireSuperAdmin(next).ServeHTTP(rr, requestWithRole(domain.RoleUser))

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.False(t, handlerCalled)
	body := decodeErrorBody(t, rr)
	assert.Equal(t, float64(domain.CodeAccessDenied), body["errorCode"])
}

func TestRequireSuperAdmin_AdminRole_Returns403(t *testing.T) {
	rr := httptest.NewRecorder()
	RequireSuperAdmin(http.HandlerFunc(okHandler)).ServeHTTP(rr, requestWithRole(domain.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestRequireSuperAdmin_SuperAdmin_Passes(t *testing.T) {
	rr := httptest.NewRecorder()
	RequireSuperAdmin(http.HandlerFunc(okHandler)).ServeHTTP(rr, requestWithRole(domain.RoleSuperAdmin))
	assert.Equal(t, http.StatusOK, rr.Code)
}
