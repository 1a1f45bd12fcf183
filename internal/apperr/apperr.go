// Package apperr carries the error kinds the HTTP layer translates to
// status codes. Services return these; handlers never invent their own.
package apperr

import "errors"

type Kind string

const (
	KindInvalidArgument   Kind = "invalid-argument"
	KindNotFound          Kind = "not-found"
	KindResourceExhausted Kind = "resource-exhausted"
	KindInternal          Kind = "internal"
)

// Error is a classified failure. FieldErrors is populated only for
// submission validation failures.
type Error struct {
	Kind        Kind
	Message     string
	FieldErrors map[string]string
}

func (e *Error) Error() string { return e.Message }

func InvalidArgument(msg string) *Error {
	return &Error{Kind: KindInvalidArgument, Message: msg}
}

func ValidationFailed(fieldErrors map[string]string) *Error {
	return &Error{
		Kind:        KindInvalidArgument,
		Message:     "Validation failed",
		FieldErrors: fieldErrors,
	}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func ResourceExhausted(msg string) *Error {
	return &Error{Kind: KindResourceExhausted, Message: msg}
}

func Internal(msg string) *Error {
	return &Error{Kind: KindInternal, Message: msg}
}

// KindOf classifies any error; wrapping is followed, unknown errors are
// internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Fields returns the per-field detail of a validation failure, or nil.
func Fields(err error) map[string]string {
	var e *Error
	if errors.As(err, &e) {
		return e.FieldErrors
	}
	return nil
}
