package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing movie.
	ErrNotFound = errors.New("movie not found")
	// ErrInvalidID signals a malformed object id.
	ErrInvalidID = errors.New("invalid movie id")
	// ErrValidation signals rejected client input.
	ErrValidation = errors.New("validation failed")
	// ErrEmptyBatch signals a batch request with no items.
	ErrEmptyBatch = errors.New("batch must not be empty")
	// ErrEmbeddingUnavailable signals that no embedding provider is configured.
	ErrEmbeddingUnavailable = errors.New("embedding provider not configured")
	// ErrEmbeddingProvider signals an embedding provider failure.
	ErrEmbeddingProvider = errors.New("embedding provider error")
	// ErrEmbeddingAuth signals a rejected embedding provider credential.
	ErrEmbeddingAuth = errors.New("embedding provider authentication failed")
	// ErrEmbeddingRateLimited signals an embedding provider rate limit.
	ErrEmbeddingRateLimited = errors.New("embedding provider rate limited")
)

// Field-level validation errors, all matching ErrValidation via errors.Is.
var (
	ErrTitleRequired  = fmt.Errorf("%w: title is required", ErrValidation)
	ErrRuntimeInvalid = fmt.Errorf("%w: runtime must be a positive integer", ErrValidation)
)
