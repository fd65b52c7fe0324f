// Package apperr defines the error kinds every expected failure maps to.
// Handlers pass errors to a single response writer which reads the kind's
// HTTP status; anything that is not an *Error becomes a 500.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an expected failure.
type Kind int

const (
	ValidationFailed Kind = iota // malformed or rule-violating input
	Unauthorized                 // missing/invalid token or bad credentials
	Forbidden                    // authenticated but not the resource owner
	NotFound                     // id does not resolve
	Conflict                     // duplicate email/ISBN/review
	ServerError                  // unexpected failure
)

// Error is an expected failure with a client-facing message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Status maps the kind to its HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case ValidationFailed, Conflict:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// New constructs an expected failure of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
