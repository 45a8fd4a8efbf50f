// Package apperrors defines the application error taxonomy. Three kinds of
// failure leave the engine: a client-correctable input defect, a durable
// store failure, and a text-generation collaborator failure.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
)

// ErrorType partitions failures by who can fix them.
type ErrorType string

const (
	// TypeInvalidPayload: the client sent something we refuse to store.
	// No side effect has happened.
	TypeInvalidPayload ErrorType = "invalid_payload"
	// TypeStorageUnavailable: the durable store failed. The operation is
	// not considered applied; the caller may retry.
	TypeStorageUnavailable ErrorType = "storage_unavailable"
	// TypeSummaryUnavailable: the text-generation collaborator failed or
	// timed out. Any numeric aggregate already computed is still valid.
	TypeSummaryUnavailable ErrorType = "summary_unavailable"
	// TypeInternal: anything else.
	TypeInternal ErrorType = "internal"
)

// AppError carries the failure type alongside the wrapped cause and the
// source location it was raised from.
type AppError struct {
	Type     ErrorType
	Message  string
	Internal error
	Source   string
}

func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Internal
}

// Is matches on error type, so callers can test against the sentinel
// constructors without caring about message text.
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Type == t.Type
	}
	return false
}

func caller() string {
	_, file, line, _ := runtime.Caller(2)
	return fmt.Sprintf("%s:%d", file, line)
}

// New creates an AppError with no underlying cause.
func New(t ErrorType, message string) *AppError {
	return &AppError{Type: t, Message: message, Source: caller()}
}

// Wrap attaches a cause to a typed error.
func Wrap(err error, t ErrorType, message string) *AppError {
	return &AppError{Type: t, Message: message, Internal: err, Source: caller()}
}

// InvalidPayload reports a client input defect.
func InvalidPayload(message string) *AppError {
	return &AppError{Type: TypeInvalidPayload, Message: message, Source: caller()}
}

// StorageUnavailable reports a durable store failure.
func StorageUnavailable(err error) *AppError {
	return &AppError{Type: TypeStorageUnavailable, Message: "storage operation failed", Internal: err, Source: caller()}
}

// SummaryUnavailable reports a text-generation collaborator failure.
func SummaryUnavailable(err error) *AppError {
	return &AppError{Type: TypeSummaryUnavailable, Message: "summary generation failed", Internal: err, Source: caller()}
}

// TypeOf extracts the error type; plain errors map to TypeInternal.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return TypeInternal
}

// HTTPStatus maps an error to the status code its type is surfaced with.
func HTTPStatus(err error) int {
	switch TypeOf(err) {
	case TypeInvalidPayload:
		return http.StatusBadRequest
	case TypeStorageUnavailable:
		return http.StatusServiceUnavailable
	case TypeSummaryUnavailable:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
