// Package apperr carries the stable error kinds the services return.
// Controllers map kinds to HTTP statuses; services and tests branch on
// kinds, never on message text.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

type Kind string

const (
	NotFound          Kind = "not_found"
	InvalidState      Kind = "invalid_state"
	ValidationFailed  Kind = "validation_failed"
	Forbidden         Kind = "forbidden"
	InvalidTransition Kind = "invalid_transition"
	WindowExpired     Kind = "window_expired"
	AlreadyRated      Kind = "already_rated"
	AlreadyExists     Kind = "already_exists"
	NotYetDelivered   Kind = "not_yet_delivered"
	PaymentFailed     Kind = "payment_failed"
	NotSupported      Kind = "not_supported"
)

type Error struct {
	Kind    Kind
	Message string
	// Details itemizes validation failures (one entry per bad cart line etc.).
	Details []string
}

func (e *Error) Error() string {
	if len(e.Details) > 0 {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, strings.Join(e.Details, "; "))
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func WithDetails(kind Kind, msg string, details []string) *Error {
	return &Error{Kind: kind, Message: msg, Details: details}
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// KindOf returns the kind of err, or "" for non-app errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
