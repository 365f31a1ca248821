package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/egotransfert/auth-api/internal/domain"
)

// Envelope statuses. "pending" marks flows awaiting a follow-up action from
// the client (OTP confirmation).
const (
	StatusSuccess = "success"
	StatusPending = "pending"
)

// Envelope is the generic success wrapper.
type Envelope struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorEnvelope is the failure wrapper carrying the numeric business code.
type ErrorEnvelope struct {
	Message   string           `json:"message"`
	ErrorCode domain.ErrorCode `json:"errorCode,omitempty"`
	Errors    interface{}      `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, Envelope{Status: StatusSuccess, Message: message, Data: data})
}

func writePending(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Envelope{Status: StatusPending, Message: message})
}

// writeAPIError maps a typed business error to its carried HTTP status and
// code. Anything else becomes a generic 500 so storage details never leak.
func writeAPIError(w http.ResponseWriter, err error) {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		writeJSON(w, apiErr.Status, ErrorEnvelope{
			Message:   apiErr.Message,
			ErrorCode: apiErr.Code,
			Errors:    apiErr.Errors,
		})
		return
	}
	slog.Error("request failed", "err", err)
	writeJSON(w, http.StatusInternalServerError, ErrorEnvelope{Message: "internal server error"})
}

func writeValidationError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, ErrorEnvelope{
		Message: "validation failed",
		Errors:  err.Error(),
	})
}

func writeBadBody(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, ErrorEnvelope{Message: "invalid request body"})
}
