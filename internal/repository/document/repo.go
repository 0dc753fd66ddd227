package document

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/notedex/internal/domain"
)

// store is the consumer interface for document directory reads (ISP).
type store interface {
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo reads the document directory. Documents live under
// <prefix>doc:<id> as hashes with title and body fields.
// Only the document-fallback executor consumes this repository.
type Repo struct {
	store  store
	prefix string
}

// New creates a document directory repository.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, prefix: keyPrefix}
}

// ListDocuments returns the scoped document, or all documents when
// scopeDocumentID is empty. Missing scoped documents return an empty
// list, not an error.
func (r *Repo) ListDocuments(ctx context.Context, scopeDocumentID string) ([]domain.Document, error) {
	if scopeDocumentID != "" {
		doc, ok, err := r.get(ctx, scopeDocumentID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		return []domain.Document{doc}, nil
	}

	keys, err := r.store.Scan(ctx, r.prefix+"doc:*")
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	docs := make([]domain.Document, 0, len(keys))
	for _, key := range keys {
		id := strings.TrimPrefix(key, r.prefix+"doc:")
		doc, ok, err := r.get(ctx, id)
		if err != nil {
			return nil, err
		}
		if ok {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func (r *Repo) get(ctx context.Context, id string) (domain.Document, bool, error) {
	fields, err := r.store.HGetAll(ctx, r.prefix+"doc:"+id)
	if err != nil {
		return domain.Document{}, false, fmt.Errorf("get document %s: %w", id, err)
	}
	if len(fields) == 0 {
		return domain.Document{}, false, nil
	}
	return domain.NewDocument(id, fields["title"], []byte(fields["body"])), true, nil
}
