package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for cross-provider error classification.
// Providers wrap these so the CLI can handle error categories
// uniformly without knowing the provider's wire format.
//
//	return fmt.Errorf("failed to delete node: %w", domain.ErrNotFound)
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthorized indicates the request was rejected due to
	// invalid, expired, or missing credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited indicates the provider throttled the request.
	ErrRateLimited = errors.New("rate limited")

	// ErrConflict indicates a state or uniqueness conflict, such as
	// an operation on a node in a transitional state.
	ErrConflict = errors.New("conflict")
)

// ProviderError is a non-2xx response the client gave no special meaning.
type ProviderError struct {
	StatusCode int
	Reason     string

	// Message is the text extracted from the error body.
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%d %s %s", e.StatusCode, e.Reason, e.Message)
}

// Unwrap maps the status code onto a sentinel so callers can use errors.Is.
// The v1.0 API reports exhausted rate limits with 413 (overLimit).
func (e *ProviderError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusRequestEntityTooLarge, http.StatusTooManyRequests:
		return ErrRateLimited
	}
	return nil
}
