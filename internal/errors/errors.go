// Package errors provides custom error types for the Mensa API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Storage errors.
var (
	// ErrStorageUnavailable covers failures to open or initialize the
	// underlying database. Fatal to every operation; never retried internally.
	ErrStorageUnavailable = &AppError{Code: "STORAGE_UNAVAILABLE", Message: "Storage could not be opened", StatusCode: http.StatusServiceUnavailable}

	// ErrConstraintViolation covers a line item that encodes neither a
	// catalog reference nor custom fields, or encodes both. Writes carrying
	// one are rejected with a descriptive message, never silently guessed.
	ErrConstraintViolation = &AppError{Code: "CONSTRAINT_VIOLATION", Message: "Line item encoding is invalid", StatusCode: http.StatusBadRequest}
)

// Plan errors.
var (
	ErrPlanNotFound = &AppError{Code: "PLAN_NOT_FOUND", Message: "No plan exists for this date", StatusCode: http.StatusNotFound}
)
