package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/notedex/internal/db"
	"github.com/kailas-cloud/notedex/internal/domain/search/match"
)

// store is the consumer interface for passage search operations (ISP).
type store interface {
	SearchBM25(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

// Repo runs lexical and vector passage searches against the store.
// Passages live under <prefix>passage:<id> and are indexed by
// <prefix>passage:idx with __content TEXT, document_id TAG and a
// vector field.
type Repo struct {
	store  store
	prefix string
}

// New creates a passage search repository.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, prefix: keyPrefix}
}

// SearchLexical performs ranked BM25 matching. The store's ranking
// order is the contract; it is preserved as the 0-based lexical rank.
func (r *Repo) SearchLexical(
	ctx context.Context, text, scopeDocumentID string, limit int,
) ([]match.Match, error) {
	q := &db.TextQuery{
		IndexName:    r.indexName(),
		Query:        text,
		Filter:       r.scopeFilter(scopeDocumentID),
		TopK:         limit,
		ReturnFields: []string{"__content", "document_id"},
	}

	sr, err := r.store.SearchBM25(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search lexical: %w", err)
	}
	if sr == nil || len(sr.Entries) == 0 {
		return nil, nil
	}

	matches := make([]match.Match, 0, len(sr.Entries))
	for rank, entry := range sr.Entries {
		matches = append(matches, match.Lexical(
			r.passageID(entry.Key),
			entry.Fields["document_id"],
			entry.Fields["__content"],
			rank,
		))
	}
	return matches, nil
}

// SearchVector performs KNN similarity search, keeping only hits whose
// similarity exceeds the threshold. Entries arrive ordered by
// similarity descending.
func (r *Repo) SearchVector(
	ctx context.Context, vector []float32, scopeDocumentID string, limit int, threshold float64,
) ([]match.Match, error) {
	q := &db.KNNQuery{
		IndexName:    r.indexName(),
		Vector:       vector,
		Filter:       r.scopeFilter(scopeDocumentID),
		K:            limit,
		ReturnFields: []string{"__content", "document_id"},
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search vector: %w", err)
	}
	if sr == nil || len(sr.Entries) == 0 {
		return nil, nil
	}

	matches := make([]match.Match, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		if entry.Score <= threshold {
			continue
		}
		matches = append(matches, match.Vector(
			r.passageID(entry.Key),
			entry.Fields["document_id"],
			entry.Fields["__content"],
			entry.Score,
		))
	}
	return matches, nil
}

func (r *Repo) indexName() string {
	return r.prefix + "passage:idx"
}

func (r *Repo) passageID(key string) string {
	return strings.TrimPrefix(key, r.prefix+"passage:")
}

// scopeFilter builds the TAG pre-filter restricting search to one document.
func (r *Repo) scopeFilter(scopeDocumentID string) string {
	if scopeDocumentID == "" {
		return ""
	}
	return fmt.Sprintf("@document_id:{%s}", escapeTag(scopeDocumentID))
}

var tagEscaper = strings.NewReplacer(
	`,`, `\,`,
	`.`, `\.`,
	`<`, `\<`,
	`>`, `\>`,
	`{`, `\{`,
	`}`, `\}`,
	`[`, `\[`,
	`]`, `\]`,
	`"`, `\"`,
	`'`, `\'`,
	`:`, `\:`,
	`;`, `\;`,
	`!`, `\!`,
	`@`, `\@`,
	`#`, `\#`,
	`$`, `\$`,
	`%`, `\%`,
	`^`, `\^`,
	`&`, `\&`,
	`*`, `\*`,
	`(`, `\(`,
	`)`, `\)`,
	`-`, `\-`,
	`+`, `\+`,
	`=`, `\=`,
	`~`, `\~`,
	`|`, `\|`,
	` `, `\ `,
)

func escapeTag(s string) string {
	return tagEscaper.Replace(s)
}
