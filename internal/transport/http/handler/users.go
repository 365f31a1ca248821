package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/egotransfert/auth-api/internal/application/user"
	"github.com/egotransfert/auth-api/internal/domain"
	"github.com/egotransfert/auth-api/internal/pkg/validate"
	"github.com/egotransfert/auth-api/internal/transport/http/middleware"
)

// UserHandler handles the authenticated account endpoints.
type UserHandler struct {
	svc user.Service
}

func NewUserHandler(svc user.Service) *UserHandler { return &UserHandler{svc: svc} }

type listData struct {
	AllUser    []domain.User `json:"allUser"`
	TotalUsers int           `json:"totalUsers"`
	Page       int           `json:"page"`
	TotalPages int           `json:"totalPages"`
}

// callerID resolves the account behind the request. Admin-variant tokens
// carry no subject and cannot address account endpoints.
func callerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok || claims.UserID == "" {
		writeJSON(w, http.StatusUnauthorized, ErrorEnvelope{Message: "unauthorized"})
		return "", false
	}
	return claims.UserID, true
}

func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	u, err := h.svc.Profile(r.Context(), userID)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", u)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.svc.List(r.Context(), page, limit)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", listData{
		AllUser:    result.Users,
		TotalUsers: result.TotalUsers,
		Page:       result.Page,
		TotalPages: result.TotalPages,
	})
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	var req domain.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadBody(w)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}
	u, err := h.svc.Update(r.Context(), userID, req)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "user updated successfully", u)
}

func (h *UserHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	var req domain.UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadBody(w)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}
	if err := h.svc.UpdatePassword(r.Context(), userID, req); err != nil {
		writeAPIError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "password updated successfully", nil)
}

func (h *UserHandler) PhotoProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	var req domain.PhotoProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadBody(w)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}
	url, err := h.svc.UpdatePhoto(r.Context(), userID, req)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "profile photo updated", map[string]string{"profilePhoto": url})
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), userID); err != nil {
		writeAPIError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "your account has been deleted", nil)
}

func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Logout(r.Context(), userID); err != nil {
		writeAPIError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "logged out successfully", nil)
}
