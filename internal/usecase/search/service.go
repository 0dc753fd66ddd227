package search

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/notedex/internal/domain/search/match"
	"github.com/kailas-cloud/notedex/internal/domain/search/method"
	"github.com/kailas-cloud/notedex/internal/domain/search/outcome"
	"github.com/kailas-cloud/notedex/internal/domain/search/query"
	"github.com/kailas-cloud/notedex/internal/domain/search/result"
	"github.com/kailas-cloud/notedex/internal/metrics"
)

// DefaultSimilarityThreshold drops weak vector hits. Callers lower it
// (to ~0.1) when they know the stored vectors are low-fidelity.
const DefaultSimilarityThreshold = 0.5

// Service orchestrates the fallback cascade: fused lexical+vector
// search when embedding works, lexical-only when it does not, and a
// document title/body substring scan when the stores come back empty.
//
// Store and embedding failures never escape: each is absorbed at its
// tier and degrades to zero results from that source, so a transient
// outage lowers search quality instead of making search unavailable.
type Service struct {
	lexical   LexicalSearcher
	vector    VectorSearcher
	docs      DocumentLister
	extract   Extractor
	embed     Embedder
	threshold float64
	logger    *zap.Logger
}

// New creates a search service. A threshold of 0 selects the default.
func New(
	lexical LexicalSearcher,
	vector VectorSearcher,
	docs DocumentLister,
	extract Extractor,
	embed Embedder,
	threshold float64,
	logger *zap.Logger,
) *Service {
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		lexical:   lexical,
		vector:    vector,
		docs:      docs,
		extract:   extract,
		embed:     embed,
		threshold: threshold,
		logger:    logger,
	}
}

// Search runs one attempt through the cascade and always returns an
// outcome. Empty query text short-circuits to a no-results success
// without touching any store.
func (s *Service) Search(ctx context.Context, q query.Query) outcome.Outcome {
	start := time.Now()

	if q.IsEmpty() {
		return s.done(outcome.Success(nil, method.NoResults, time.Since(start)))
	}

	emb, err := s.embed.Embed(ctx, q.Text())
	if err != nil {
		if ctx.Err() != nil {
			return s.done(outcome.Failure(ctx.Err().Error(), time.Since(start)))
		}
		s.logger.Warn("embedding unavailable, degrading to lexical search", zap.Error(err))
		return s.searchDegraded(ctx, q, start)
	}

	return s.searchFused(ctx, q, emb.Embedding, start)
}

// searchFused runs the lexical and vector executors concurrently and
// merges both rankings. When both come back empty it falls through to
// the document substring scan.
func (s *Service) searchFused(
	ctx context.Context, q query.Query, vector []float32, start time.Time,
) outcome.Outcome {
	var lex, vec []match.Match

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lex = s.runLexical(gctx, q)
		return gctx.Err()
	})
	g.Go(func() error {
		vec = s.runVector(gctx, q, vector)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return s.done(outcome.Failure(err.Error(), time.Since(start)))
	}

	if len(lex) == 0 && len(vec) == 0 {
		return s.searchDocuments(ctx, q, start)
	}

	fused := truncate(fuse(lex, vec, q.LexicalWeight(), q.VectorWeight()), q.Limit())
	return s.done(outcome.Success(fused, method.Fused, time.Since(start)))
}

// searchDegraded is the no-embedding tier: lexical alone, then the
// document substring scan.
func (s *Service) searchDegraded(ctx context.Context, q query.Query, start time.Time) outcome.Outcome {
	lex := s.runLexical(ctx, q)
	if ctx.Err() != nil {
		return s.done(outcome.Failure(ctx.Err().Error(), time.Since(start)))
	}

	if len(lex) > 0 {
		metrics.SearchDegradedTotal.WithLabelValues("lexical").Inc()
		// Rank-decay scores are still computed so consumers always see
		// a populated hybrid score; vector scores are all zero here.
		fused := truncate(fuse(lex, nil, q.LexicalWeight(), q.VectorWeight()), q.Limit())
		return s.done(outcome.Success(fused, method.LexicalFallback, time.Since(start)))
	}

	return s.searchDocuments(ctx, q, start)
}

// searchDocuments is the lowest tier: case-insensitive substring match
// against document titles and flattened bodies. Precision traded for
// availability; never reached when any store produced results.
func (s *Service) searchDocuments(ctx context.Context, q query.Query, start time.Time) outcome.Outcome {
	matches := s.runDocumentScan(ctx, q)
	if ctx.Err() != nil {
		return s.done(outcome.Failure(ctx.Err().Error(), time.Since(start)))
	}

	if len(matches) == 0 {
		return s.done(outcome.Success(nil, method.NoResults, time.Since(start)))
	}

	metrics.SearchDegradedTotal.WithLabelValues("document").Inc()
	fused := truncate(fuse(matches, nil, q.LexicalWeight(), q.VectorWeight()), q.Limit())
	return s.done(outcome.Success(fused, method.DocumentFallback, time.Since(start)))
}

// runLexical absorbs store failures: lexical search degrading to empty
// is never fatal to the overall search.
func (s *Service) runLexical(ctx context.Context, q query.Query) []match.Match {
	matches, err := s.lexical.SearchLexical(ctx, q.Text(), q.ScopeDocumentID(), q.Limit())
	if err != nil {
		s.logger.Warn("lexical search failed, treating as empty", zap.Error(err))
		return nil
	}
	return matches
}

// runVector absorbs store failures, mirroring runLexical.
func (s *Service) runVector(ctx context.Context, q query.Query, vector []float32) []match.Match {
	matches, err := s.vector.SearchVector(ctx, vector, q.ScopeDocumentID(), q.Limit(), s.threshold)
	if err != nil {
		s.logger.Warn("vector search failed, treating as empty", zap.Error(err))
		return nil
	}
	return matches
}

// runDocumentScan loads candidate documents and tests the query as a
// case-insensitive substring of title and flattened body. Matching
// documents become single-passage results with the title as text.
func (s *Service) runDocumentScan(ctx context.Context, q query.Query) []match.Match {
	docs, err := s.docs.ListDocuments(ctx, q.ScopeDocumentID())
	if err != nil {
		s.logger.Warn("document scan failed, treating as empty", zap.Error(err))
		return nil
	}

	needle := strings.ToLower(q.Text())
	var matches []match.Match
	for i := range docs {
		doc := &docs[i]
		if len(matches) >= q.Limit() {
			break
		}
		if strings.Contains(strings.ToLower(doc.Title()), needle) ||
			strings.Contains(strings.ToLower(s.extract.ExtractPlainText(doc.Body())), needle) {
			matches = append(matches, match.Lexical(doc.ID(), doc.ID(), doc.Title(), len(matches)))
		}
	}
	return matches
}

func (s *Service) done(o outcome.Outcome) outcome.Outcome {
	m := string(o.Method())
	metrics.SearchRequestsTotal.WithLabelValues(m).Inc()
	metrics.SearchDuration.WithLabelValues(m).Observe(o.Duration().Seconds())
	return o
}

func truncate(results []result.Result, limit int) []result.Result {
	if len(results) > limit {
		return results[:limit]
	}
	return results
}
