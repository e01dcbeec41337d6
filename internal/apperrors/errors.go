// Package apperrors provides classified errors shared by services and handlers
package apperrors

import (
	"errors"
	"fmt"
)

// Kind represents an error classification
type Kind string

const (
	// KindValidation indicates missing or malformed input
	KindValidation Kind = "VALIDATION"
	// KindConflict indicates a uniqueness violation, e.g. an email already in use
	KindConflict Kind = "CONFLICT"
	// KindAuth indicates bad credentials
	KindAuth Kind = "AUTH"
	// KindNotFound indicates a requested record does not exist
	KindNotFound Kind = "NOT_FOUND"
	// KindStorage is the catch-all for persistence and other unexpected failures
	KindStorage Kind = "STORAGE"
)

// Error is a classified error with a client-safe message and an optional cause
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is and errors.As support
func (e *Error) Unwrap() error {
	return e.Cause
}

// Validation creates a validation error
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Conflict creates a conflict error
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Auth creates an authentication error
func Auth(message string) *Error {
	return &Error{Kind: KindAuth, Message: message}
}

// NotFound creates a not found error
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Storage wraps a persistence failure
func Storage(message string, cause error) *Error {
	return &Error{Kind: KindStorage, Message: message, Cause: cause}
}

// KindOf returns the classification of err.
// Errors that carry no classification are reported as KindStorage.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStorage
}

// MessageOf returns the client-safe message of a classified error, or fallback
// if err carries no classification
func MessageOf(err error, fallback string) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return fallback
}

// Is reports whether err is classified as kind
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
