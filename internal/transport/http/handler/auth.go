package handler

import (
	"encoding/json"
	"net/http"

	"github.com/egotransfert/auth-api/internal/application/auth"
	"github.com/egotransfert/auth-api/internal/domain"
	"github.com/egotransfert/auth-api/internal/pkg/validate"
)

// AuthHandler handles registration, verification and login endpoints.
type AuthHandler struct {
	svc auth.Service
}

func NewAuthHandler(svc auth.Service) *AuthHandler { return &AuthHandler{svc: svc} }

type loginData struct {
	User         *domain.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadBody(w)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}
	if err := h.svc.Register(r.Context(), req); err != nil {
		writeAPIError(w, err)
		return
	}
	writePending(w, http.StatusCreated, "an otp has been sent to your email, please verify your account")
}

func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadBody(w)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}
	if err := h.svc.VerifyOTP(r.Context(), req); err != nil {
		writeAPIError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "your account has been verified successfully", nil)
}

func (h *AuthHandler) ResendOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.ResendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadBody(w)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}
	if err := h.svc.ResendOTP(r.Context(), req); err != nil {
		writeAPIError(w, err)
		return
	}
	writePending(w, http.StatusOK, "a new otp has been sent")
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadBody(w)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}
	result, err := h.svc.Login(r.Context(), req)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "login successful", loginData{
		User:         result.User,
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	})
}

type requestResetBody struct {
	Email string `json:"email" validate:"required,email"`
}

func (h *AuthHandler) RequestResetPassword(w http.ResponseWriter, r *http.Request) {
	var req requestResetBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadBody(w)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}
	if err := h.svc.RequestPasswordReset(r.Context(), req.Email); err != nil {
		writeAPIError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "a reset link has been sent to your email", nil)
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req domain.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadBody(w)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}
	if err := h.svc.ResetPassword(r.Context(), req); err != nil {
		writeAPIError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "your password has been reset successfully", nil)
}
