package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/egotransfert/auth-api/internal/domain"
)

type errorBody struct {
	Message   string           `json:"message"`
	ErrorCode domain.ErrorCode `json:"errorCode,omitempty"`
	Errors    interface{}      `json:"errors"`
}

// writeJSONError writes the API error envelope with the correct Content-Type.
func writeJSONError(w http.ResponseWriter, status int, msg string, code domain.ErrorCode) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Message: msg, ErrorCode: code})
}
