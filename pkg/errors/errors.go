package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Standard sentinel errors for common cases.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInternal     = errors.New("internal error")
	ErrUnavailable  = errors.New("storage unavailable")
	ErrCorrupt      = errors.New("corrupt payload")
	ErrConflict     = errors.New("conflict")
)

// AppError represents a structured application error with HTTP status mapping
// for the REST client edge.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound creates a not-found error.
func NotFound(resource, id string) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s with id %s not found", resource, id),
		Status:  http.StatusNotFound,
		Err:     ErrNotFound,
	}
}

// InvalidInput creates a bad-input error.
func InvalidInput(message string) *AppError {
	return &AppError{
		Code:    "INVALID_INPUT",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidInput,
	}
}

// Unauthorized creates an authentication error.
func Unauthorized(message string) *AppError {
	return &AppError{
		Code:    "UNAUTHORIZED",
		Message: message,
		Status:  http.StatusUnauthorized,
		Err:     ErrUnauthorized,
	}
}

// Forbidden creates an authorization error.
func Forbidden(message string) *AppError {
	return &AppError{
		Code:    "FORBIDDEN",
		Message: message,
		Status:  http.StatusForbidden,
		Err:     ErrForbidden,
	}
}

// Conflict creates a conflict error.
func Conflict(message string) *AppError {
	return &AppError{
		Code:    "CONFLICT",
		Message: message,
		Status:  http.StatusConflict,
		Err:     ErrConflict,
	}
}

// Unavailable creates an error for a backing store that cannot be reached or
// has run out of quota. Store operations degrade rather than propagate it to
// UI paths.
func Unavailable(err error) *AppError {
	return &AppError{
		Code:    "STORAGE_UNAVAILABLE",
		Message: "local storage is unavailable",
		Status:  http.StatusServiceUnavailable,
		Err:     fmt.Errorf("%w: %w", ErrUnavailable, err),
	}
}

// Corrupt creates an error for a persisted payload that cannot be decoded.
// Readers treat it identically to absence.
func Corrupt(key string, err error) *AppError {
	return &AppError{
		Code:    "CORRUPT_PAYLOAD",
		Message: fmt.Sprintf("stored payload under %q is not decodable", key),
		Status:  http.StatusInternalServerError,
		Err:     fmt.Errorf("%w: %w", ErrCorrupt, err),
	}
}

// Internal creates an internal error.
func Internal(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// HTTPStatus returns the HTTP status code for the given error.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// FromHTTPStatus translates a backend response status into an AppError,
// preserving the message for the caller. Used when the backend replies with
// a non-2xx status and no structured error body.
func FromHTTPStatus(status int, message string) error {
	switch status {
	case http.StatusNotFound:
		return &AppError{Code: "NOT_FOUND", Message: message, Status: status, Err: ErrNotFound}
	case http.StatusBadRequest:
		return &AppError{Code: "INVALID_INPUT", Message: message, Status: status, Err: ErrInvalidInput}
	case http.StatusUnauthorized:
		return &AppError{Code: "UNAUTHORIZED", Message: message, Status: status, Err: ErrUnauthorized}
	case http.StatusForbidden:
		return &AppError{Code: "FORBIDDEN", Message: message, Status: status, Err: ErrForbidden}
	case http.StatusConflict:
		return &AppError{Code: "CONFLICT", Message: message, Status: status, Err: ErrConflict}
	default:
		return &AppError{Code: "UPSTREAM_ERROR", Message: message, Status: status, Err: ErrInternal}
	}
}
