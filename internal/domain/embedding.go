package domain

import (
	"context"
	"fmt"
)

// Embedder is the shared text vectorization contract between layers.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// HealthChecker verifies embedding provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// EmbeddingResult carries the embedding vector and token usage through the decorator chain.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// InstructionEmbedder is a domain decorator that prepends instruction text before embedding.
// Some retrieval models want a task prefix on queries but not on documents.
type InstructionEmbedder struct {
	inner       Embedder
	instruction string
}

// NewInstructionEmbedder creates a decorator that prepends instruction text.
func NewInstructionEmbedder(inner Embedder, instruction string) *InstructionEmbedder {
	return &InstructionEmbedder{inner: inner, instruction: instruction}
}

// Embed prepends the instruction and delegates to the inner embedder.
func (e *InstructionEmbedder) Embed(ctx context.Context, text string) (EmbeddingResult, error) {
	result, err := e.inner.Embed(ctx, e.instruction+text)
	if err != nil {
		return EmbeddingResult{}, fmt.Errorf("instruction embed: %w", err)
	}
	return result, nil
}

// UnconfiguredEmbedder is the typed "no provider configured" variant.
// Every Embed call fails with ErrEmbeddingUnavailable, which the search
// cascade treats as a recoverable degradation, not a fatal error.
type UnconfiguredEmbedder struct{}

// NewUnconfiguredEmbedder creates an embedder placeholder for deployments without a provider.
func NewUnconfiguredEmbedder() *UnconfiguredEmbedder {
	return &UnconfiguredEmbedder{}
}

// Embed always fails with the recoverable unavailability sentinel.
func (e *UnconfiguredEmbedder) Embed(_ context.Context, _ string) (EmbeddingResult, error) {
	return EmbeddingResult{}, fmt.Errorf("%w: %w", ErrEmbeddingUnavailable, ErrEmbeddingNotConfigured)
}

// HealthCheck reports the missing configuration.
func (e *UnconfiguredEmbedder) HealthCheck(_ context.Context) error {
	return ErrEmbeddingNotConfigured
}
