package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/notedex/internal/domain/search/outcome"
	"github.com/kailas-cloud/notedex/internal/domain/search/query"
	"github.com/kailas-cloud/notedex/internal/domain/search/result"
	logpkg "github.com/kailas-cloud/notedex/internal/logger"
	"github.com/kailas-cloud/notedex/internal/metrics"
)

// Searcher runs one search attempt. Implemented by usecase/search.Service.
type Searcher interface {
	Search(ctx context.Context, q query.Query) outcome.Outcome
}

// HealthChecker reports embedding provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Pinger reports store availability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server exposes the search engine over HTTP for the presentation layer.
type Server struct {
	searcher Searcher
	health   HealthChecker
	store    Pinger
	logger   *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(searcher Searcher, health HealthChecker, store Pinger, logger *zap.Logger) *Server {
	return &Server{searcher: searcher, health: health, store: store, logger: logger}
}

// Router builds the chi router with logging and metrics middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(metrics.Middleware())

	r.Get("/v1/search", s.handleSearch)
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// searchResponse mirrors the session-level search outcome.
type searchResponse struct {
	Success    bool             `json:"success"`
	Results    []resultResponse `json:"results"`
	Total      int              `json:"total"`
	Method     string           `json:"method"`
	DurationMs int64            `json:"duration_ms"`
	Error      string           `json:"error,omitempty"`
}

type resultResponse struct {
	ID           string  `json:"id"`
	DocumentID   string  `json:"document_id"`
	Text         string  `json:"text"`
	LexicalScore float64 `json:"lexical_score"`
	VectorScore  float64 `json:"vector_score"`
	HybridScore  float64 `json:"hybrid_score"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	limit, err := intParam(params.Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}
	lexicalWeight, err := floatParam(params.Get("lexical_weight"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid lexical_weight")
		return
	}
	vectorWeight, err := floatParam(params.Get("vector_weight"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid vector_weight")
		return
	}

	q, err := query.New(params.Get("q"), params.Get("document_id"), limit, lexicalWeight, vectorWeight)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	out := s.searcher.Search(r.Context(), q)

	status := http.StatusOK
	if !out.Success() {
		status = http.StatusInternalServerError
		logpkg.FromContext(r.Context()).Warn("search attempt failed",
			zap.String("query", q.Text()),
			zap.String("error", out.Err()),
		)
	}
	writeJSON(w, status, toSearchResponse(out))
}

// requestLogger stores a request-scoped logger carrying the request id.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l := s.logger.With(zap.String("request_id", chiMiddleware.GetReqID(r.Context())))
		next.ServeHTTP(w, r.WithContext(logpkg.ContextWithLogger(r.Context(), l)))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	type healthResponse struct {
		Status    string `json:"status"`
		Store     string `json:"store"`
		Embedding string `json:"embedding"`
	}

	resp := healthResponse{Status: "ok", Store: "ok", Embedding: "ok"}
	status := http.StatusOK

	if err := s.store.Ping(r.Context()); err != nil {
		// Store down means search is down: fail the check.
		resp.Status = "unavailable"
		resp.Store = err.Error()
		status = http.StatusServiceUnavailable
	}
	if err := s.health.HealthCheck(r.Context()); err != nil {
		// Embedding down only degrades search, so the check stays green.
		resp.Embedding = "degraded: " + err.Error()
	}

	writeJSON(w, status, resp)
}

func toSearchResponse(out outcome.Outcome) searchResponse {
	return searchResponse{
		Success:    out.Success(),
		Results:    toResultResponses(out.Results()),
		Total:      out.Total(),
		Method:     out.Method().String(),
		DurationMs: out.Duration().Milliseconds(),
		Error:      out.Err(),
	}
}

func toResultResponses(results []result.Result) []resultResponse {
	out := make([]resultResponse, 0, len(results))
	for i := range results {
		r := &results[i]
		out = append(out, resultResponse{
			ID:           r.ID(),
			DocumentID:   r.DocumentID(),
			Text:         r.Text(),
			LexicalScore: r.LexicalScore(),
			VectorScore:  r.VectorScore(),
			HybridScore:  r.HybridScore(),
		})
	}
	return out
}

func intParam(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func floatParam(raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseFloat(raw, 64)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
