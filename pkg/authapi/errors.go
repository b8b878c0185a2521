package authapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/salescrm/auth/pkg/httpx"
)

// Error codes used in ErrorResponse.Error.
const (
	ErrorCodeValidation         = "validation_error"
	ErrorCodeConflict           = "conflict"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeInvalidToken       = "invalid_token"
	ErrorCodeServerError        = "server_error"
)

// APIError is a fixed status+message pair written at the operation
// boundary. It implements the error interface so the client SDK can return
// it directly.
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine-readable error code
	Code string `json:"error"`

	// Message is the human-readable description
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: e.Code, Message: e.Message})
}

// NewValidationError builds a 400 with a field-specific message.
func NewValidationError(message string) *APIError {
	return &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeValidation,
		Message:    message,
	}
}

var (
	// ErrInvalidBody is returned when the request body is not valid JSON.
	ErrInvalidBody = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeValidation,
		Message:    "invalid request body",
	}

	// ErrEmailTaken is returned when registering an already-used email.
	ErrEmailTaken = &APIError{
		StatusCode: http.StatusConflict,
		Code:       ErrorCodeConflict,
		Message:    "email already registered",
	}

	// ErrInvalidCredentials is returned on login failure. Wrong password
	// and unknown email produce this exact same response on purpose.
	ErrInvalidCredentials = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeInvalidCredentials,
		Message:    "invalid credentials",
	}

	// ErrMissingToken is returned when no bearer token is presented.
	ErrMissingToken = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeInvalidToken,
		Message:    "not authorized, no token",
	}

	// ErrInvalidToken is returned for any unusable token. Expired and
	// forged tokens are indistinguishable from the outside.
	ErrInvalidToken = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeInvalidToken,
		Message:    "not authorized, token invalid or expired",
	}

	// ErrServerError is the generic internal failure. Details stay in the
	// server logs.
	ErrServerError = &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       ErrorCodeServerError,
		Message:    "internal server error",
	}
)
