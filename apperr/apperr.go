// Package apperr defines the closed set of failure kinds the API can produce.
// Handlers and the authorization layer return these; the HTTP boundary maps
// each kind to a status code exactly once.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	Unauthenticated Kind = iota + 1
	Forbidden
	InvalidInput
	NotFound
	Conflict
	Unexpected
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap marks err as an unexpected failure. The message is what the client
// sees; err is kept for logging.
func Wrap(err error, message string) *Error {
	return &Error{Kind: Unexpected, Message: message, Err: err}
}

// KindOf extracts the kind from err, defaulting to Unexpected for anything
// outside the taxonomy.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unexpected
}

func StatusCode(kind Kind) int {
	switch kind {
	case Unauthenticated:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case InvalidInput:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
