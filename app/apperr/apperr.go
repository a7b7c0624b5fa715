// Package apperr defines the error kinds returned by entity operations.
package apperr

import (
	"errors"
	"fmt"
)

// Kind sentinels. Match them with errors.Is.
var (
	ErrValidation       = errors.New("validation error")
	ErrConflict         = errors.New("conflict")
	ErrNotFound         = errors.New("not found")
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrTooLarge         = errors.New("request too large")
	ErrUnexpected       = errors.New("unexpected error")
)

// Error carries a client facing message, its kind and an optional cause.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func Validation(msg string) error {
	return &Error{Kind: ErrValidation, Message: msg}
}

func Conflict(msg string) error {
	return &Error{Kind: ErrConflict, Message: msg}
}

func NotFound(msg string) error {
	return &Error{Kind: ErrNotFound, Message: msg}
}

func MethodNotAllowed(msg string) error {
	return &Error{Kind: ErrMethodNotAllowed, Message: msg}
}

func TooLarge(msg string) error {
	return &Error{Kind: ErrTooLarge, Message: msg}
}

// Unexpected wraps an infrastructure failure. The cause is kept for logging
// but never shown to clients.
func Unexpected(msg string, err error) error {
	return &Error{Kind: ErrUnexpected, Message: msg, Err: err}
}

// Message returns the client facing message of err.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "error inesperado"
}
