package llmprovider

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrAllProvidersFailed indicates all providers failed to generate content
	ErrAllProvidersFailed = errors.New("all providers failed")

	// ErrNoProvidersConfigured indicates no providers are enabled
	ErrNoProvidersConfigured = errors.New("no providers configured")

	// ErrInvalidRequest indicates the request is malformed
	ErrInvalidRequest = errors.New("invalid request")

	// ErrModelNotSupported indicates no configured provider serves the requested model
	ErrModelNotSupported = errors.New("model not supported by any provider")

	// ErrAuthentication indicates the API rejected the credentials (401/403)
	ErrAuthentication = errors.New("authentication failed")

	// ErrProviderRateLimited indicates rate limit exceeded (429)
	ErrProviderRateLimited = errors.New("provider rate limited")

	// ErrConnection indicates the API could not be reached, the stream broke,
	// or a deadline expired
	ErrConnection = errors.New("connection failed")

	// ErrUnclassified covers every other API failure
	ErrUnclassified = errors.New("unclassified API error")
)

// ErrorKind is the failure class of a provider error.
type ErrorKind int

const (
	KindUnclassified ErrorKind = iota
	KindAuthentication
	KindRateLimit
	KindConnection
)

func (k ErrorKind) String() string {
	switch k {
	case KindAuthentication:
		return "authentication"
	case KindRateLimit:
		return "rate_limit"
	case KindConnection:
		return "connection"
	default:
		return "unclassified"
	}
}

// ProviderError wraps provider-specific errors with their failure class.
type ProviderError struct {
	Provider string
	Kind     error // one of ErrAuthentication, ErrProviderRateLimited, ErrConnection, ErrUnclassified
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() []error {
	if e.Kind == nil {
		return []error{e.Err}
	}
	return []error{e.Kind, e.Err}
}

// KindOf classifies err. Context expiry and cancellation count as
// connection failures.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindUnclassified
	case errors.Is(err, ErrAuthentication):
		return KindAuthentication
	case errors.Is(err, ErrProviderRateLimited):
		return KindRateLimit
	case errors.Is(err, ErrConnection),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return KindConnection
	default:
		return KindUnclassified
	}
}

// IsRetryable reports whether err is worth another attempt.
func IsRetryable(err error) bool {
	return err != nil && KindOf(err) == KindConnection && !errors.Is(err, context.Canceled)
}
