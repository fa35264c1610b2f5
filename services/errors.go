package services

import (
	"errors"
	"fmt"
)

// Kind classifies a service failure so the request layer can map it to an
// HTTP status without parsing messages.
type Kind string

const (
	KindNotFound   Kind = "NOT_FOUND"
	KindConflict   Kind = "CONFLICT"
	KindValidation Kind = "VALIDATION_ERROR"
	KindForbidden  Kind = "FORBIDDEN"
	KindInternal   Kind = "INTERNAL_ERROR"
)

// Error is the failure type returned by every service operation.
type Error struct {
	Kind    Kind
	Message string
	Err     error // wrapped cause, set for internal failures
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound reports an absent entity (user, item, table, cart, reservation, receipt).
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflict reports a state collision (table booked, duplicate reservation,
// receipt not in the required source state).
func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Validation reports a malformed or illegal input value.
func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Forbidden reports a caller lacking the required role.
func Forbidden(format string, args ...interface{}) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps an unexpected store failure.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "unexpected internal error", Err: err}
}

// KindOf extracts the failure kind from an error. Unclassified errors count
// as internal.
func KindOf(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindInternal
}
