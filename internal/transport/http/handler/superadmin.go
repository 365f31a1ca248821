package handler

import (
	"encoding/json"
	"net/http"

	"github.com/egotransfert/auth-api/internal/application/auth"
	"github.com/egotransfert/auth-api/internal/domain"
	"github.com/egotransfert/auth-api/internal/pkg/validate"
)

// SuperAdminHandler handles the superadmin login and admin management.
type SuperAdminHandler struct {
	svc auth.Service
}

func NewSuperAdminHandler(svc auth.Service) *SuperAdminHandler {
	return &SuperAdminHandler{svc: svc}
}

type adminLoginData struct {
	Email        string `json:"email"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func (h *SuperAdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadBody(w)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}
	result, err := h.svc.SuperAdminLogin(r.Context(), req)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "login successful", adminLoginData{
		Email:        result.Email,
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	})
}

// Gate answers on the role-gated root resource; reaching it at all means the
// caller passed the superadmin check.
func (h *SuperAdminHandler) Gate(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, http.StatusOK, "superadmin access granted", nil)
}

func (h *SuperAdminHandler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadBody(w)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}
	created, err := h.svc.CreateAdmin(r.Context(), req)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "admin account created", created)
}
