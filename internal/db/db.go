package db

import (
	"context"
	"time"
)

// TextQuery describes a BM25 full-text search.
type TextQuery struct {
	IndexName    string
	Query        string
	Filter       string // optional pre-filter clause, e.g. @document_id:{x}
	TopK         int
	ReturnFields []string
}

// KNNQuery describes a vector similarity search.
type KNNQuery struct {
	IndexName    string
	Vector       []float32
	Filter       string
	K            int
	ReturnFields []string
}

// SearchEntry is a single FT.SEARCH hit.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}

// SearchResult is a parsed FT.SEARCH reply.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// Store is the storage contract the repositories consume.
type Store interface {
	SearchBM25(ctx context.Context, q *TextQuery) (*SearchResult, error)
	SearchKNN(ctx context.Context, q *KNNQuery) (*SearchResult, error)
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
	Ping(ctx context.Context) error
	WaitForReady(ctx context.Context, timeout time.Duration) error
	Close()
}
