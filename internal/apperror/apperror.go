// Package apperror defines the typed error kinds returned by the service layer.
// Handlers translate a Kind into an HTTP status; nothing matches on message text.
package apperror

import (
	"context"
	"errors"
	"net/http"
)

type Kind string

const (
	KindValidation  Kind = "validation"
	KindAuth        Kind = "auth"
	KindNotFound    Kind = "not_found"
	KindConflict    Kind = "conflict"
	KindPersistence Kind = "persistence"
)

// HTTPStatus maps a kind to its response status code.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error is the service-layer error. Message is safe to show to the caller;
// Cause is for logs only.
type Error struct {
	Kind      Kind
	Message   string
	Fields    map[string]string
	Retryable bool
	Cause     error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error by kind, so errors.Is(err, apperror.ErrNotFound) works.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return t.Message == "" && e.Kind == t.Kind
	}
	return false
}

// Sentinels for errors.Is checks.
var (
	ErrValidation  = &Error{Kind: KindValidation}
	ErrAuth        = &Error{Kind: KindAuth}
	ErrNotFound    = &Error{Kind: KindNotFound}
	ErrConflict    = &Error{Kind: KindConflict}
	ErrPersistence = &Error{Kind: KindPersistence}
)

func Validation(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

func Auth(message string) *Error {
	return &Error{Kind: KindAuth, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Persistence wraps a storage failure. The caller-facing message stays generic;
// deadline and cancellation causes are marked retryable.
func Persistence(message string, cause error) *Error {
	return &Error{
		Kind:      KindPersistence,
		Message:   message,
		Cause:     cause,
		Retryable: IsRetryable(cause),
	}
}

// From returns err as *Error, wrapping unknown errors as persistence failures.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Persistence("internal server error", err)
}

// KindOf reports the kind of err, KindPersistence for foreign errors.
func KindOf(err error) Kind {
	return From(err).Kind
}

// retryable is implemented by storage errors that know they are transient.
type retryable interface {
	Retryable() bool
}

func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var r retryable
	if errors.As(err, &r) {
		return r.Retryable()
	}
	return false
}
