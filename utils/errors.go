package utils

import (
	"errors"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
)

// Error kinds. Every ServiceError wraps exactly one of these so callers can
// use errors.Is without caring about the message.
var (
	ErrAuth                = errors.New("authentication failed")
	ErrNotFound            = errors.New("resource not found")
	ErrInvalidIdentifier   = errors.New("invalid identifier")
	ErrBadRequest          = errors.New("bad request")
	ErrRateLimited         = errors.New("rate limited")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrInternal            = errors.New("internal error")
)

// ServiceError represents a service-level error with context
type ServiceError struct {
	Kind    error
	Message string
	Cause   error // Original error, not exposed to clients
}

func (e ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes both the kind and the underlying cause to errors.Is/As.
func (e ServiceError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// GetServiceError extracts a ServiceError from an error chain
func GetServiceError(err error) (ServiceError, bool) {
	var serviceErr ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr, true
	}
	return ServiceError{}, false
}

// Authentication errors
func NewMissingTokenError() error {
	return ServiceError{Kind: ErrAuth, Message: "Token is missing"}
}

func NewTokenExpiredError() error {
	return ServiceError{Kind: ErrAuth, Message: "Token has expired"}
}

func NewInvalidTokenError(cause error) error {
	return ServiceError{Kind: ErrAuth, Message: "Token is invalid", Cause: cause}
}

func NewInvalidCredentialsError() error {
	return ServiceError{Kind: ErrAuth, Message: "Invalid credentials"}
}

func NewNotFoundError(resource string) error {
	return ServiceError{Kind: ErrNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

// NewInvalidIdentifierError is reported to clients as a plain not-found.
func NewInvalidIdentifierError(resource, id string) error {
	return ServiceError{
		Kind:    ErrInvalidIdentifier,
		Message: fmt.Sprintf("%s not found", resource),
		Cause:   fmt.Errorf("malformed id %q", id),
	}
}

func NewBadRequestError(message string) error {
	return ServiceError{Kind: ErrBadRequest, Message: message}
}

func NewRateLimitError() error {
	return ServiceError{Kind: ErrRateLimited, Message: "Rate limit exceeded"}
}

func NewInternalError(message string, cause error) error {
	return ServiceError{Kind: ErrInternal, Message: message, Cause: cause}
}

// NewDatabaseError classifies a driver error. Network failures and timeouts
// mean the store is unreachable; everything else is internal.
func NewDatabaseError(operation string, cause error) error {
	kind := ErrInternal
	if mongo.IsNetworkError(cause) || mongo.IsTimeout(cause) {
		kind = ErrUpstreamUnavailable
	}
	return ServiceError{
		Kind:    kind,
		Message: fmt.Sprintf("Database operation failed: %s", operation),
		Cause:   cause,
	}
}

// HTTPStatus maps an error to the status code sent to clients. Only the
// outermost ServiceError kind counts, so an internal error wrapping a
// not-found cause is still a 500.
func HTTPStatus(err error) int {
	serviceErr, ok := GetServiceError(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch {
	case errors.Is(serviceErr.Kind, ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(serviceErr.Kind, ErrNotFound), errors.Is(serviceErr.Kind, ErrInvalidIdentifier):
		return http.StatusNotFound
	case errors.Is(serviceErr.Kind, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(serviceErr.Kind, ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message safe to show to clients. Internal and
// upstream failures never expose their cause.
func PublicMessage(err error) string {
	serviceErr, ok := GetServiceError(err)
	if !ok {
		return "Internal server error"
	}
	switch {
	case errors.Is(serviceErr.Kind, ErrUpstreamUnavailable):
		return "Database unavailable"
	case errors.Is(serviceErr.Kind, ErrInternal):
		return "Internal server error"
	default:
		return serviceErr.Message
	}
}
