// Package upstream defines the error taxonomy shared by all vendor adapters.
//
// Every adapter failure is classified into a Kind so the HTTP layer can map
// it to a status code without inspecting vendor-specific error types.
package upstream

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an upstream failure.
type Kind int

const (
	// KindUnknown is any failure that fits no other category.
	KindUnknown Kind = iota
	// KindInvalid indicates the upstream rejected the request as malformed.
	KindInvalid
	// KindUnauthorized indicates a bad or missing upstream credential.
	KindUnauthorized
	// KindNotFound indicates the upstream resource does not exist.
	KindNotFound
	// KindUnavailable indicates a timeout, network failure or upstream 5xx.
	KindUnavailable
)

// String returns the lowercase name of the kind for logging and responses.
func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Error is a classified upstream failure. Service names the vendor
// ("github", "jira", "slack") and Err carries the underlying cause.
type Error struct {
	Kind    Kind
	Service string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Service, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Service, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a classified error without an underlying cause.
func New(kind Kind, service, message string) *Error {
	return &Error{Kind: kind, Service: service, Message: message}
}

// Wrap creates a classified error wrapping an underlying cause.
func Wrap(kind Kind, service, message string, err error) *Error {
	return &Error{Kind: kind, Service: service, Message: message, Err: err}
}

// FromStatusCode classifies an upstream HTTP status code.
func FromStatusCode(service string, statusCode int, message string, err error) *Error {
	var kind Kind
	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		kind = KindUnauthorized
	case statusCode == http.StatusNotFound:
		kind = KindNotFound
	case statusCode == http.StatusBadRequest || statusCode == http.StatusUnprocessableEntity:
		kind = KindInvalid
	case statusCode == http.StatusTooManyRequests || statusCode >= 500:
		kind = KindUnavailable
	default:
		kind = KindUnknown
	}
	return &Error{Kind: kind, Service: service, Message: message, Err: err}
}

// KindOf extracts the Kind from an error chain, or KindUnknown if the
// error was never classified.
func KindOf(err error) Kind {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Kind
	}
	return KindUnknown
}
