package query

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/notedex/internal/domain"
)

// Query parameter limits and defaults.
const (
	// MaxTextLength is the maximum allowed query text length.
	MaxTextLength = 1000
	DefaultLimit  = 10
	MaxLimit      = 100

	DefaultLexicalWeight = 0.5
	DefaultVectorWeight  = 0.5
)

// Query is a validated, immutable search query.
// Empty text is legal: the cascade short-circuits it to a no-results
// outcome without touching any store.
type Query struct {
	text            string
	scopeDocumentID string
	limit           int
	lexicalWeight   float64
	vectorWeight    float64
}

// New validates and normalizes query parameters.
// Text is trimmed. Defaults: limit=10, weights 0.5/0.5. Weights need
// not sum to 1; both zero means "use defaults", negatives are rejected.
func New(text, scopeDocumentID string, limit int, lexicalWeight, vectorWeight float64) (Query, error) {
	text = strings.TrimSpace(text)
	if len(text) > MaxTextLength {
		return Query{}, fmt.Errorf("%w (max %d chars)", domain.ErrQueryTooLong, MaxTextLength)
	}
	if lexicalWeight < 0 || vectorWeight < 0 {
		return Query{}, fmt.Errorf("%w: %g/%g", domain.ErrInvalidWeights, lexicalWeight, vectorWeight)
	}
	if lexicalWeight == 0 && vectorWeight == 0 {
		lexicalWeight = DefaultLexicalWeight
		vectorWeight = DefaultVectorWeight
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Query{
		text:            text,
		scopeDocumentID: scopeDocumentID,
		limit:           limit,
		lexicalWeight:   lexicalWeight,
		vectorWeight:    vectorWeight,
	}, nil
}

// Text returns the trimmed query text.
func (q *Query) Text() string { return q.text }

// ScopeDocumentID returns the document the search is restricted to ("" = all).
func (q *Query) ScopeDocumentID() string { return q.scopeDocumentID }

// Limit returns the maximum results to return.
func (q *Query) Limit() int { return q.limit }

// LexicalWeight returns the lexical score weight.
func (q *Query) LexicalWeight() float64 { return q.lexicalWeight }

// VectorWeight returns the vector score weight.
func (q *Query) VectorWeight() float64 { return q.vectorWeight }

// IsEmpty reports whether the query has no text.
func (q *Query) IsEmpty() bool { return q.text == "" }
