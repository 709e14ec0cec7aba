package mflix

import (
	"errors"
	"fmt"
)

// Sentinel errors. Use errors.Is() to check.
var (
	// ErrNotFound indicates the requested movie does not exist.
	ErrNotFound = errors.New("mflix: not found")
	// ErrInvalidID indicates a malformed object id.
	ErrInvalidID = errors.New("mflix: invalid id")
	// ErrValidation indicates the server rejected the request input.
	ErrValidation = errors.New("mflix: validation failed")
	// ErrUnavailable indicates a dependency (embedding provider) is not configured or unreachable.
	ErrUnavailable = errors.New("mflix: service unavailable")
	// ErrTimeout indicates an aggregation call exceeded its deadline.
	ErrTimeout = errors.New("mflix: request timed out")
)

// APIError carries the error payload returned by the server.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("mflix: %s (code=%s, status=%d)", e.Message, e.Code, e.Status)
}

// Unwrap maps well-known error codes to sentinel errors.
func (e *APIError) Unwrap() error {
	switch e.Code {
	case "MOVIE_NOT_FOUND":
		return ErrNotFound
	case "INVALID_OBJECT_ID":
		return ErrInvalidID
	case "VALIDATION_FAILED", "BAD_REQUEST", "EMPTY_BATCH":
		return ErrValidation
	case "SERVICE_UNAVAILABLE", "EMBEDDING_AUTH_ERROR", "EMBEDDING_RATE_LIMITED", "EMBEDDING_PROVIDER_ERROR":
		return ErrUnavailable
	default:
		return nil
	}
}
