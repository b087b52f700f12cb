package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents an error code
type ErrorCode string

const (
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized  ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden     ErrorCode = "FORBIDDEN"
	ErrCodeBadRequest    ErrorCode = "BAD_REQUEST"
	ErrCodeInternalError ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeState         ErrorCode = "STATE_ERROR"
	ErrCodeConflict      ErrorCode = "CONFLICT"
)

// AppError represents an application error
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with an AppError
func Wrap(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NotFound creates a NOT_FOUND error with a formatted message
func NotFound(format string, args ...any) *AppError {
	return New(ErrCodeNotFound, fmt.Sprintf(format, args...))
}

// Validation creates a VALIDATION_ERROR with a formatted message
func Validation(format string, args ...any) *AppError {
	return New(ErrCodeValidation, fmt.Sprintf(format, args...))
}

// State creates a STATE_ERROR with a formatted message
func State(format string, args ...any) *AppError {
	return New(ErrCodeState, fmt.Sprintf(format, args...))
}

// CodeOf returns the code of the first AppError in err's chain, or
// ErrCodeInternalError when there is none.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternalError
}

// MessageOf returns the user-facing message of err.
func MessageOf(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal server error"
}

func hasCode(err error, code ErrorCode) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// IsNotFound checks if error is NotFound
func IsNotFound(err error) bool {
	return hasCode(err, ErrCodeNotFound)
}

// IsValidation checks if error is a validation failure
func IsValidation(err error) bool {
	return hasCode(err, ErrCodeValidation)
}

// IsState checks if error is a state failure
func IsState(err error) bool {
	return hasCode(err, ErrCodeState)
}

// IsConflict checks if error is a uniqueness conflict
func IsConflict(err error) bool {
	return hasCode(err, ErrCodeConflict)
}

// IsUnauthorized checks if error is Unauthorized
func IsUnauthorized(err error) bool {
	return hasCode(err, ErrCodeUnauthorized)
}

// IsForbidden checks if error is Forbidden
func IsForbidden(err error) bool {
	return hasCode(err, ErrCodeForbidden)
}
