// Package errors defines the coded error type shared by the service and CLI.
package errors

import (
	"errors"
	"fmt"
)

// Error codes for the application.
const (
	CodeUnknown       = "UNKNOWN_ERROR"
	CodeLoadFailure   = "LOAD_FAILURE"
	CodeParseError    = "PARSE_ERROR"
	CodeNotFound      = "NOT_FOUND"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeConfigError   = "CONFIG_ERROR"
	CodeStorageError  = "STORAGE_ERROR"
	CodeDatabaseError = "DATABASE_ERROR"
	CodeExportError   = "EXPORT_ERROR"
)

// AppError represents an application error with a code and message.
type AppError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches any AppError with the same code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new AppError.
func New(code string, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an AppError.
func Wrap(code string, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Wrapf wraps err with a formatted message.
func Wrapf(code string, err error, format string, args ...interface{}) *AppError {
	return Wrap(code, fmt.Sprintf(format, args...), err)
}

// Sentinels for errors.Is comparisons by code.
var (
	ErrLoadFailure   = New(CodeLoadFailure, "load failed")
	ErrParseError    = New(CodeParseError, "parse error")
	ErrNotFound      = New(CodeNotFound, "resource not found")
	ErrInvalidInput  = New(CodeInvalidInput, "invalid input")
	ErrConfigError   = New(CodeConfigError, "configuration error")
	ErrStorageError  = New(CodeStorageError, "storage error")
	ErrDatabaseError = New(CodeDatabaseError, "database error")
	ErrExportError   = New(CodeExportError, "export error")
)

// IsLoadFailure checks if the error is a load failure.
func IsLoadFailure(err error) bool {
	return errors.Is(err, ErrLoadFailure)
}

// IsNotFound checks if the error is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDatabaseError checks if the error is a database error.
func IsDatabaseError(err error) bool {
	return errors.Is(err, ErrDatabaseError)
}

// IsStorageError checks if the error is a storage error.
func IsStorageError(err error) bool {
	return errors.Is(err, ErrStorageError)
}

// GetErrorCode extracts the error code from an error.
func GetErrorCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// GetErrorMessage extracts the error message from an error.
func GetErrorMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
