package apperror

import (
	"errors"
	"net/http"
)

// Kind groups errors by what the caller can do about them
type Kind string

const (
	KindGeneric    Kind = "generic"
	KindPermission Kind = "permission"
	KindNetwork    Kind = "network"
	KindSchema     Kind = "schema"
	KindValidation Kind = "validation"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Kind    Kind         `json:"kind,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
	cause   error
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying store or library error, if any
func (e *AppError) Unwrap() error {
	return e.cause
}

// ErrTooManyRequest is returned when a caller exceeds its request budget
var ErrTooManyRequest = &AppError{Code: http.StatusTooManyRequests, Message: "Too many requests. Please slow down."}

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap attaches cause to a copy of e
func (e *AppError) Wrap(cause error) *AppError {
	cp := *e
	cp.cause = cause
	return &cp
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Kind:    KindValidation,
		Errors:  fieldErrors,
	}
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
		Kind:    KindGeneric,
		cause:   err,
	}
}
