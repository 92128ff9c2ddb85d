// Package apperror defines the structured application error that service
// responses carry across the module boundary. Expected domain failures
// travel as data inside response DTOs so their code, status and field
// details survive serialization; only transport failures travel as plain
// Go errors.
package apperror

import (
	"net/http"
)

// Error codes understood by the API layer.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeTokenExpired       = "TOKEN_EXPIRED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeEmailExists        = "EMAIL_EXISTS"
	CodeUsernameExists     = "USERNAME_EXISTS"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeTaskNotFound       = "TASK_NOT_FOUND"
	CodeRateLimited        = "RATE_LIMITED"
	CodeInternal           = "INTERNAL_ERROR"
)

// FieldError describes a validation failure for a single input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a structured application error. It serializes directly into
// the response envelope's error object.
type Error struct {
	Code       string       `json:"code"`
	Message    string       `json:"message"`
	StatusCode int          `json:"statusCode"`
	Details    []FieldError `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// New creates an Error with the given code, HTTP status and message.
func New(code string, statusCode int, message string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// Validation creates a 400 error carrying per-field messages.
func Validation(fields []FieldError) *Error {
	return &Error{
		Code:       CodeValidation,
		Message:    "Validation failed",
		StatusCode: http.StatusBadRequest,
		Details:    fields,
	}
}

// Unauthorized creates a 401 error with the given code and message.
// The code distinguishes missing, invalid and expired tokens so clients
// can special-case expiry.
func Unauthorized(code, message string) *Error {
	return New(code, http.StatusUnauthorized, message)
}

// Conflict creates a 409 error for a duplicate unique field.
func Conflict(code, message string) *Error {
	return New(code, http.StatusConflict, message)
}

// NotFound creates a 404 error. A resource owned by another account is
// reported identically to one that does not exist.
func NotFound(code, message string) *Error {
	return New(code, http.StatusNotFound, message)
}

// Internal creates a 500 error with a generic message.
func Internal() *Error {
	return New(CodeInternal, http.StatusInternalServerError, "Internal server error")
}
