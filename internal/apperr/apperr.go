// Package apperr holds the typed errors services return to handlers.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error несёт HTTP-статус и сообщение, которое уходит клиенту как есть.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func NotFound(format string, args ...any) *Error {
	return New(http.StatusNotFound, fmt.Sprintf(format, args...))
}

func BadRequest(format string, args ...any) *Error {
	return New(http.StatusBadRequest, fmt.Sprintf(format, args...))
}

func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

// StatusOf returns the status carried by err, or 0 when err is not an *Error.
func StatusOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Status
	}
	return 0
}
