package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure for propagation: transport failures become
// notifications, not-found becomes an empty result, validation blocks the call,
// preconditions redirect the user.
type Kind string

const (
	KindTransport       Kind = "transport"
	KindNotFound        Kind = "not_found"
	KindValidation      Kind = "validation"
	KindPrecondition    Kind = "precondition"
	KindUnauthenticated Kind = "unauthenticated"
)

// Sentinels for errors.Is.
var (
	ErrTransport       = errors.New("transport failure")
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrPrecondition    = errors.New("precondition not met")
	ErrUnauthenticated = errors.New("not authenticated")
)

// Error carries the failing operation, its kind and a user-facing message.
type Error struct {
	Op       string // e.g. "gateway.PlaceOrder"
	Kind     Kind
	Message  string // shown to the user
	Redirect string // screen that resolves a precondition
	Err      error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.Message != "":
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error's kind.
func (e *Error) Is(target error) bool {
	return target == sentinel(e.Kind)
}

func sentinel(k Kind) error {
	switch k {
	case KindTransport:
		return ErrTransport
	case KindNotFound:
		return ErrNotFound
	case KindValidation:
		return ErrValidation
	case KindPrecondition:
		return ErrPrecondition
	case KindUnauthenticated:
		return ErrUnauthenticated
	}
	return nil
}

func Validation(op, message string) *Error {
	return &Error{Op: op, Kind: KindValidation, Message: message}
}

func Precondition(op, message, redirect string) *Error {
	return &Error{Op: op, Kind: KindPrecondition, Message: message, Redirect: redirect}
}

func Transport(op string, err error) *Error {
	return &Error{Op: op, Kind: KindTransport, Err: err}
}

func NotFound(op string, err error) *Error {
	return &Error{Op: op, Kind: KindNotFound, Err: err}
}

func Unauthenticated(op, message string) *Error {
	return &Error{Op: op, Kind: KindUnauthenticated, Message: message}
}

// KindOf returns the kind of the first *Error in err's chain. Unclassified
// errors are treated as transport failures.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindTransport
}

// MessageOf returns the user-facing message of err, or fallback.
func MessageOf(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return fallback
}

// RedirectOf returns the redirect target of a precondition failure.
func RedirectOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Redirect
	}
	return ""
}

// HTTPStatus maps err to the status code the storefront API answers with.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindPrecondition:
		return http.StatusConflict
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}
