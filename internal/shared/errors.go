package shared

import (
	"errors"
	"fmt"
)

var (
	// Request errors, detected before any upstream call
	ErrMethodNotAllowed = fmt.Errorf("method not allowed")
	ErrInvalidInput     = fmt.Errorf("invalid input")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")
	ErrNotConfigured = fmt.Errorf("API key not configured")

	// Upstream and lookup errors
	ErrUpstream = fmt.Errorf("upstream request failed")
	ErrNotFound = fmt.Errorf("not found")
)

// UpstreamError describes a failed call to the catalog API: a transport failure, a non-2xx status,
// or an error object declared by the upstream.
type UpstreamError struct {
	Status  int    // HTTP status reported by the upstream, 0 for transport failures
	Message string // Message safe to surface to callers
	Err     error  // Underlying cause
}

// NewUpstreamError builds an [UpstreamError], falling back to fallback when msg is empty.
func NewUpstreamError(status int, msg, fallback string, err error) *UpstreamError {
	if msg == "" {
		msg = fallback
	}
	return &UpstreamError{Status: status, Message: msg, Err: err}
}

func (e *UpstreamError) Error() string {
	return e.Message
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Is matches [ErrUpstream] so callers can test the kind without a type assertion.
func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}

// NotFoundError reports that a lookup matched nothing. Message is what callers see.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// PublicMessage returns the text to surface for err at an operation boundary.
//
// Upstream and not-found errors carry their own message; configuration errors use the fixed notice.
// Anything else falls back to its Error string, or fallback when that is empty.
func PublicMessage(err error, fallback string) string {
	var upstream *UpstreamError
	var notFound *NotFoundError
	switch {
	case err == nil:
		return fallback
	case errors.Is(err, ErrNotConfigured):
		return ErrNotConfigured.Error()
	case errors.As(err, &upstream):
		return upstream.Message
	case errors.As(err, &notFound):
		return notFound.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
