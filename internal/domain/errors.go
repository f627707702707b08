package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is missing or malformed.
	ErrInvalidID = errors.New("invalid ID")

	// ErrEmptyFirstName is returned when an employee has no first name.
	ErrEmptyFirstName = fmt.Errorf("%w: first_name is required", ErrValidation)

	// ErrEmptyLastName is returned when an employee has no last name.
	ErrEmptyLastName = fmt.Errorf("%w: last_name is required", ErrValidation)
)

// ErrorKind classifies a failure into the stable taxonomy exposed to callers.
type ErrorKind int

const (
	// KindInternal is an unexpected store, hashing or signing failure.
	// It is the zero value so unclassified errors are never reported as
	// caller mistakes.
	KindInternal ErrorKind = iota
	// KindInvalidInput means caller-supplied arguments failed a precondition.
	KindInvalidInput
	// KindUnauthenticated means a credential check failed.
	KindUnauthenticated
	// KindNotFound means a record targeted by id does not exist.
	KindNotFound
	// KindConflict means a uniqueness constraint was violated.
	KindConflict
)

// String returns the kind name used in logs.
func (k ErrorKind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error is the classified error returned by every operation handler.
// Message is safe to show to callers; Err carries the underlying cause
// and is only ever logged.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewInvalidInputError creates an InvalidInput error.
func NewInvalidInputError(message string) *Error {
	return &Error{Kind: KindInvalidInput, Message: message}
}

// NewUnauthenticatedError creates an Unauthenticated error wrapping the
// concrete reason, which never reaches the caller.
func NewUnauthenticatedError(message string, reason error) *Error {
	return &Error{Kind: KindUnauthenticated, Message: message, Err: reason}
}

// NewNotFoundError creates a NotFound error.
func NewNotFoundError(message string, err error) *Error {
	return &Error{Kind: KindNotFound, Message: message, Err: err}
}

// NewConflictError creates a Conflict error.
func NewConflictError(message string, err error) *Error {
	return &Error{Kind: KindConflict, Message: message, Err: err}
}

// NewInternalError creates an Internal error.
func NewInternalError(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf reports the kind of err. Errors that are not a *Error are Internal.
func KindOf(err error) ErrorKind {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err is a *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var domainErr *Error
	return errors.As(err, &domainErr) && domainErr.Kind == kind
}
