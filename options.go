package notedex

import "time"

// SearchOption configures a single search attempt.
type SearchOption func(*searchOptions)

type searchOptions struct {
	scopeDocumentID string
	limit           int
	lexicalWeight   float64
	vectorWeight    float64
}

// WithDocumentScope restricts the search to one document.
func WithDocumentScope(documentID string) SearchOption {
	return func(o *searchOptions) { o.scopeDocumentID = documentID }
}

// WithLimit caps the number of returned results.
func WithLimit(limit int) SearchOption {
	return func(o *searchOptions) { o.limit = limit }
}

// WithWeights sets raw fusion weights. They need not sum to 1.
func WithWeights(lexical, vector float64) SearchOption {
	return func(o *searchOptions) {
		o.lexicalWeight = lexical
		o.vectorWeight = vector
	}
}

func applySearchOptions(opts []SearchOption) searchOptions {
	var o searchOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// SessionOption configures a Session.
type SessionOption func(*sessionOptions)

type sessionOptions struct {
	debounce time.Duration
}

// WithSessionDebounce overrides the 300ms debounce window.
func WithSessionDebounce(d time.Duration) SessionOption {
	return func(o *sessionOptions) { o.debounce = d }
}

func applySessionOptions(opts []SessionOption) sessionOptions {
	var o sessionOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
