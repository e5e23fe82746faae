// Package apperror defines the operational errors surfaced to API clients.
package apperror

import (
	"errors"
	"net/http"
)

// Error is an operational error carrying the HTTP status it should be
// reported with. Anything that is not an *Error propagates as a 500.
type Error struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Is allows matching with errors.Is regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Status == e.Status
}

// New creates an operational error with an explicit status.
func New(message string, status int) *Error {
	return &Error{Status: status, Message: message}
}

// NewNotFound creates a 404 error.
func NewNotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

// NewBadRequest creates a 400 error.
func NewBadRequest(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// IsNotFound checks whether err is an operational 404.
func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Status == http.StatusNotFound
}

// StatusOf returns the HTTP status for err, defaulting to 500 for
// unexpected errors.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return http.StatusInternalServerError
}

// MessageOf returns the client-facing message for err. Unexpected errors
// are masked behind a generic message.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Server Error"
}
