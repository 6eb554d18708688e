package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies a failure so the HTTP boundary can map it to a status code
// in one place instead of scattering status decisions through handlers.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindCredentials
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
)

var statusByKind = map[Kind]int{
	KindInternal:        http.StatusInternalServerError,
	KindValidation:      http.StatusUnprocessableEntity,
	KindCredentials:     http.StatusUnprocessableEntity,
	KindUnauthenticated: http.StatusUnauthorized,
	KindForbidden:       http.StatusForbidden,
	KindNotFound:        http.StatusNotFound,
	KindConflict:        http.StatusUnprocessableEntity,
}

// Error is the discriminated failure value returned by services. Fields is
// populated for validation-class failures only.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string][]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status returns the HTTP status code for the error kind.
func (e *Error) Status() int {
	if s, ok := statusByKind[e.Kind]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Validation wraps a per-field error map produced by the validation layer.
func Validation(fields map[string][]string) *Error {
	return &Error{Kind: KindValidation, Message: "Validation errors", Fields: fields}
}

// Credentials is the deliberately generic login failure. A single message is
// used for both unknown-phone and wrong-password so callers cannot enumerate
// registered accounts.
func Credentials() *Error {
	return &Error{
		Kind:    KindCredentials,
		Message: "The provided credentials are incorrect.",
		Fields:  map[string][]string{"phone_number": {"The provided credentials are incorrect."}},
	}
}

func Unauthenticated() *Error {
	return &Error{Kind: KindUnauthenticated, Message: "Unauthenticated."}
}

func Forbidden() *Error {
	return &Error{Kind: KindForbidden, Message: "Unauthorized access. You do not have the required permissions."}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "An unexpected error occurred", Err: err}
}

// From coerces any error into an *Error, wrapping unknown errors as internal.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
