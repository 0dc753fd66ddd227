package search

import (
	"context"

	"github.com/kailas-cloud/notedex/internal/domain"
	"github.com/kailas-cloud/notedex/internal/domain/search/match"
)

// LexicalSearcher is the full-text store contract. Ranking order of
// the returned slice is the contract, not raw scores.
type LexicalSearcher interface {
	SearchLexical(ctx context.Context, text, scopeDocumentID string, limit int) ([]match.Match, error)
}

// VectorSearcher is the vector store contract. Matches arrive ordered
// by similarity descending, already thresholded.
type VectorSearcher interface {
	SearchVector(ctx context.Context, vector []float32, scopeDocumentID string, limit int, threshold float64) ([]match.Match, error)
}

// DocumentLister reads the document directory for the last-resort
// substring fallback.
type DocumentLister interface {
	ListDocuments(ctx context.Context, scopeDocumentID string) ([]domain.Document, error)
}

// Extractor flattens a structured document body into plain text.
type Extractor interface {
	ExtractPlainText(body []byte) string
}

// Embedder vectorizes query text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
