package domain

import "errors"

var (
	// ErrEmbeddingUnavailable signals that the embedding provider is
	// unreachable, misconfigured, or returned a non-success status.
	// Recoverable: the search cascade degrades to lexical-only.
	ErrEmbeddingUnavailable = errors.New("embedding unavailable")
	// ErrEmbeddingNotConfigured signals a missing embedding credential.
	ErrEmbeddingNotConfigured = errors.New("embedding not configured")
	// ErrQueryTooLong signals query text over the allowed length.
	ErrQueryTooLong = errors.New("query too long")
	// ErrInvalidWeights signals a negative fusion weight.
	ErrInvalidWeights = errors.New("invalid fusion weights")
)
