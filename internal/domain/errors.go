package domain

import (
	"errors"
	"net/http"
)

// Sentinel errors for repository-level discrimination. Services wrap these so
// flow code can distinguish "absent" from infrastructure failure without
// leaking storage details.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// ErrorCode is the numeric business-error taxonomy exposed to API clients.
type ErrorCode int

const (
	CodeUserNotFound             ErrorCode = 1001
	CodeUserAlreadyExists        ErrorCode = 1002
	CodeIncorrectPassword        ErrorCode = 1003
	CodePhoneNumberAlreadyExists ErrorCode = 1004
	CodeIncorrectEmail           ErrorCode = 1005
	CodeNoDataToUpdate           ErrorCode = 1006
	CodeEmailAlreadyUsed         ErrorCode = 1007
	CodeIncorrectOTP             ErrorCode = 1008
	CodeInvalidOTP               ErrorCode = 1009
	CodeInvalidEmailFormat       ErrorCode = 1010
	CodeAccountNotVerified       ErrorCode = 1011
	CodeSuperAdminNotFound       ErrorCode = 1012
	CodeAdminEmailNotFound       ErrorCode = 1013
	CodeSuperAdminInit           ErrorCode = 1014
	CodeInvalidToken             ErrorCode = 1015
	CodeAccessDenied             ErrorCode = 1016
)

// APIError carries a message, a business error code and the HTTP status to
// respond with. Handlers map any APIError to its carried status; everything
// else becomes a generic 500 with no code leakage.
type APIError struct {
	Message string      `json:"message"`
	Code    ErrorCode   `json:"errorCode"`
	Status  int         `json:"-"`
	Errors  interface{} `json:"errors"`
}

func (e *APIError) Error() string { return e.Message }

// BadRequest builds an APIError with the default 400 status.
func BadRequest(message string, code ErrorCode) *APIError {
	return &APIError{Message: message, Code: code, Status: http.StatusBadRequest}
}

// NewAPIError builds an APIError with an explicit HTTP status.
func NewAPIError(message string, code ErrorCode, status int) *APIError {
	return &APIError{Message: message, Code: code, Status: status}
}
