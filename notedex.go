// Package notedex is an in-process hybrid retrieval engine: it fuses
// lexical (BM25) and vector similarity search over a Redis/RediSearch
// store into one ranked passage list, degrading gracefully when the
// embedding provider or a store is unavailable.
package notedex

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/notedex/internal/db"
	dbRedis "github.com/kailas-cloud/notedex/internal/db/redis"
	"github.com/kailas-cloud/notedex/internal/domain"
	"github.com/kailas-cloud/notedex/internal/domain/search/outcome"
	"github.com/kailas-cloud/notedex/internal/domain/search/query"
	"github.com/kailas-cloud/notedex/internal/extract"
	documentrepo "github.com/kailas-cloud/notedex/internal/repository/document"
	searchrepo "github.com/kailas-cloud/notedex/internal/repository/search"
	openaiEmb "github.com/kailas-cloud/notedex/internal/transport/openai"
	searchuc "github.com/kailas-cloud/notedex/internal/usecase/search"
	"github.com/kailas-cloud/notedex/internal/usecase/session"
)

// Result is a single fused search hit.
type Result struct {
	ID           string
	DocumentID   string
	Text         string
	LexicalScore float64
	VectorScore  float64
	HybridScore  float64
}

// Outcome is the result of one completed search attempt.
type Outcome struct {
	Success    bool
	Results    []Result
	Total      int
	Method     string
	DurationMs int64
	Error      string
}

// Config wires an Engine to its stores and embedding provider.
type Config struct {
	RedisAddrs    []string
	RedisPassword string
	// KeyPrefix namespaces passage and document keys (default "notedex:").
	KeyPrefix string

	// Embedding provider. An empty APIKey leaves the engine in degraded
	// mode: every search falls back to lexical and document tiers.
	EmbeddingAPIKey     string
	EmbeddingBaseURL    string
	EmbeddingModel      string
	EmbeddingDimensions int
	QueryInstruction    string

	// SimilarityThreshold drops weak vector hits (default 0.5; lower it
	// for low-fidelity vectors).
	SimilarityThreshold float64

	Logger *zap.Logger
}

// Engine is the in-process hybrid search API.
type Engine struct {
	svc    *searchuc.Service
	store  db.Store
	embed  domain.Embedder
	health domain.HealthChecker
	logger *zap.Logger
}

// New creates an engine connected to its stores.
func New(cfg Config) (*Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	keyPrefix := cfg.KeyPrefix
	if keyPrefix == "" {
		keyPrefix = "notedex:"
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.RedisAddrs,
		Password: cfg.RedisPassword,
	})
	if err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}

	var embed domain.Embedder
	var health domain.HealthChecker
	if cfg.EmbeddingAPIKey == "" {
		unconfigured := domain.NewUnconfiguredEmbedder()
		embed, health = unconfigured, unconfigured
	} else {
		provider := openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:     cfg.EmbeddingAPIKey,
			BaseURL:    cfg.EmbeddingBaseURL,
			Model:      cfg.EmbeddingModel,
			Dimensions: cfg.EmbeddingDimensions,
			Provider:   "openai",
			Logger:     logger,
		})
		embed, health = provider, provider
		if cfg.QueryInstruction != "" {
			embed = domain.NewInstructionEmbedder(provider, cfg.QueryInstruction)
		}
	}

	svc := searchuc.New(
		searchrepo.New(store, keyPrefix),
		searchrepo.New(store, keyPrefix),
		documentrepo.New(store, keyPrefix),
		extract.New(),
		embed,
		cfg.SimilarityThreshold,
		logger,
	)

	return &Engine{svc: svc, store: store, embed: embed, health: health, logger: logger}, nil
}

// HybridSearch runs one search attempt through the fallback cascade.
func (e *Engine) HybridSearch(ctx context.Context, text string, opts ...SearchOption) Outcome {
	o := applySearchOptions(opts)
	q, err := query.New(text, o.scopeDocumentID, o.limit, o.lexicalWeight, o.vectorWeight)
	if err != nil {
		return toOutcome(outcome.Failure(err.Error(), 0))
	}
	return toOutcome(e.svc.Search(ctx, q))
}

// SearchKeywords is HybridSearch with keyword-leaning weights (0.8/0.2).
func (e *Engine) SearchKeywords(ctx context.Context, text string, opts ...SearchOption) Outcome {
	return e.HybridSearch(ctx, text, append(opts, WithWeights(0.8, 0.2))...)
}

// SearchSemantic is HybridSearch with semantic-leaning weights (0.2/0.8).
func (e *Engine) SearchSemantic(ctx context.Context, text string, opts ...SearchOption) Outcome {
	return e.HybridSearch(ctx, text, append(opts, WithWeights(0.2, 0.8))...)
}

// NewSession creates a debounced search session bound to this engine.
func (e *Engine) NewSession(opts ...SessionOption) *Session {
	o := applySessionOptions(opts)
	ctrlOpts := []session.Option{session.WithLogger(e.logger)}
	if o.debounce > 0 {
		ctrlOpts = append(ctrlOpts, session.WithDebounce(o.debounce))
	}
	return &Session{ctrl: session.New(e.svc, ctrlOpts...)}
}

// Ready reports whether the store answers and whether the embedding
// provider is healthy. A failing embedder does not fail readiness:
// search still works in degraded mode.
func (e *Engine) Ready(ctx context.Context, timeout time.Duration) error {
	if err := e.store.WaitForReady(ctx, timeout); err != nil {
		return err
	}
	if err := e.health.HealthCheck(ctx); err != nil {
		e.logger.Warn("embedding provider unhealthy, search will degrade", zap.Error(err))
	}
	return nil
}

// Close releases store connections.
func (e *Engine) Close() {
	e.store.Close()
}

// Session is a stateful, debounced search handle for interactive callers.
type Session struct {
	ctrl *session.Controller
}

// SessionState is the published snapshot of the latest attempt.
type SessionState struct {
	Searching bool
	QueryText string
	Outcome   Outcome
}

// Submit schedules a debounced search; bursts coalesce into one attempt.
func (s *Session) Submit(text string) {
	s.ctrl.Submit(text)
}

// SubmitNow bypasses debouncing, cancelling any in-flight attempt.
func (s *Session) SubmitNow(text string, opts ...SearchOption) {
	s.ctrl.SubmitNow(text, toSessionOptions(opts))
}

// SearchKeywords is SubmitNow with keyword-leaning weights.
func (s *Session) SearchKeywords(text string, opts ...SearchOption) {
	s.ctrl.SearchKeywords(text, toSessionOptions(opts))
}

// SearchSemantic is SubmitNow with semantic-leaning weights.
func (s *Session) SearchSemantic(text string, opts ...SearchOption) {
	s.ctrl.SearchSemantic(text, toSessionOptions(opts))
}

// Cancel aborts pending and in-flight work and clears published state.
func (s *Session) Cancel() {
	s.ctrl.Cancel()
}

// Snapshot returns the current published state.
func (s *Session) Snapshot() SessionState {
	st := s.ctrl.Snapshot()
	return SessionState{
		Searching: st.Searching,
		QueryText: st.QueryText,
		Outcome:   toOutcome(st.Outcome),
	}
}

func toSessionOptions(opts []SearchOption) session.Options {
	o := applySearchOptions(opts)
	return session.Options{
		ScopeDocumentID: o.scopeDocumentID,
		Limit:           o.limit,
		LexicalWeight:   o.lexicalWeight,
		VectorWeight:    o.vectorWeight,
	}
}

func toOutcome(out outcome.Outcome) Outcome {
	results := make([]Result, 0, out.Total())
	for _, r := range out.Results() {
		results = append(results, Result{
			ID:           r.ID(),
			DocumentID:   r.DocumentID(),
			Text:         r.Text(),
			LexicalScore: r.LexicalScore(),
			VectorScore:  r.VectorScore(),
			HybridScore:  r.HybridScore(),
		})
	}
	return Outcome{
		Success:    out.Success(),
		Results:    results,
		Total:      out.Total(),
		Method:     out.Method().String(),
		DurationMs: out.Duration().Milliseconds(),
		Error:      out.Err(),
	}
}
