// Package errors defines the application error type shared by repositories,
// services and the HTTP error renderer.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes an AppError.
type ErrorCode string

const (
	ErrCodeNotFound   ErrorCode = "not_found"
	ErrCodeConflict   ErrorCode = "conflict"
	ErrCodeValidation ErrorCode = "validation"
	ErrCodeForeignKey ErrorCode = "foreign_key"
	ErrCodeInternal   ErrorCode = "internal"
	ErrCodeTimeout    ErrorCode = "timeout"
	ErrCodeCanceled   ErrorCode = "canceled"
	// ErrCodeForbidden marks an operation the resource's current state does not allow.
	ErrCodeForbidden ErrorCode = "forbidden"
)

// AppError carries a code, a client-safe message and an optional cause.
type AppError struct {
	Code    ErrorCode
	Message string
	Cause   error
	// Field names the offending input, when known.
	Field string
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

func newError(code ErrorCode, msg string) *AppError {
	return &AppError{Code: code, Message: msg}
}

func NotFound(message string) *AppError { return newError(ErrCodeNotFound, message) }

func NotFoundf(format string, args ...any) *AppError {
	return newError(ErrCodeNotFound, fmt.Sprintf(format, args...))
}

func Conflict(message string) *AppError { return newError(ErrCodeConflict, message) }

func Validation(message string) *AppError { return newError(ErrCodeValidation, message) }

func Validationf(format string, args ...any) *AppError {
	return newError(ErrCodeValidation, fmt.Sprintf(format, args...))
}

// ValidationField reports an invalid input field.
func ValidationField(field, message string) *AppError {
	e := newError(ErrCodeValidation, message)
	e.Field = field
	return e
}

func ForeignKey(message string) *AppError { return newError(ErrCodeForeignKey, message) }

// Forbidden wraps cause, typically a lifecycle refusal.
func Forbidden(cause error, message string) *AppError {
	e := newError(ErrCodeForbidden, message)
	e.Cause = cause
	return e
}

func Internal(message string) *AppError { return newError(ErrCodeInternal, message) }

// HasCode reports whether any AppError in err's chain carries code.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code && code != ""
}

func IsNotFound(err error) bool   { return HasCode(err, ErrCodeNotFound) }
func IsValidation(err error) bool { return HasCode(err, ErrCodeValidation) }
func IsForbidden(err error) bool  { return HasCode(err, ErrCodeForbidden) }

// GetCode returns the code of the first AppError in err's chain, or "".
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetField returns the Field of the first AppError in err's chain, or "".
func GetField(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}
