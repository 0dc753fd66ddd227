package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/notedex/internal/domain/search/method"
	"github.com/kailas-cloud/notedex/internal/domain/search/outcome"
	"github.com/kailas-cloud/notedex/internal/domain/search/query"
	"github.com/kailas-cloud/notedex/internal/domain/search/result"
)

type mockSearcher struct {
	out  outcome.Outcome
	last query.Query
}

func (m *mockSearcher) Search(_ context.Context, q query.Query) outcome.Outcome {
	m.last = q
	return m.out
}

type mockHealth struct{ err error }

func (m *mockHealth) HealthCheck(_ context.Context) error { return m.err }

type mockPinger struct{ err error }

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

func newTestServer(searcher *mockSearcher, health *mockHealth, store *mockPinger) http.Handler {
	return NewServer(searcher, health, store, zap.NewNop()).Router()
}

func TestHandleSearch_OK(t *testing.T) {
	searcher := &mockSearcher{out: outcome.Success(
		[]result.Result{result.New("p1", "d1", "hello", 1, 0.9, 0.95)},
		method.Fused,
		5*time.Millisecond,
	)}
	srv := newTestServer(searcher, &mockHealth{}, &mockPinger{})

	req := httptest.NewRequest(http.MethodGet,
		"/v1/search?q=hello&limit=5&lexical_weight=0.7&vector_weight=0.3", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success bool   `json:"success"`
		Total   int    `json:"total"`
		Method  string `json:"method"`
		Results []struct {
			ID          string  `json:"id"`
			HybridScore float64 `json:"hybrid_score"`
		} `json:"results"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !resp.Success || resp.Total != 1 || resp.Method != "fused" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if resp.Results[0].ID != "p1" || resp.Results[0].HybridScore != 0.95 {
		t.Errorf("result not mapped: %+v", resp.Results[0])
	}

	if searcher.last.Limit() != 5 {
		t.Errorf("limit not passed through: %d", searcher.last.Limit())
	}
	if searcher.last.LexicalWeight() != 0.7 || searcher.last.VectorWeight() != 0.3 {
		t.Errorf("weights not passed through: %g/%g",
			searcher.last.LexicalWeight(), searcher.last.VectorWeight())
	}
}

func TestHandleSearch_BadParams(t *testing.T) {
	srv := newTestServer(&mockSearcher{}, &mockHealth{}, &mockPinger{})

	for _, target := range []string{
		"/v1/search?q=x&limit=abc",
		"/v1/search?q=x&lexical_weight=nope",
		"/v1/search?q=x&vector_weight=nope",
		"/v1/search?q=x&lexical_weight=-1",
		"/v1/search?q=" + strings.Repeat("x", query.MaxTextLength+1),
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, rec.Code)
		}
	}
}

func TestHandleSearch_FailureOutcome(t *testing.T) {
	searcher := &mockSearcher{out: outcome.Failure("orchestration broke", time.Millisecond)}
	srv := newTestServer(searcher, &mockHealth{}, &mockPinger{})

	req := httptest.NewRequest(http.MethodGet, "/v1/search?q=x", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "orchestration broke") {
		t.Errorf("error message missing from body: %s", rec.Body.String())
	}
}

func TestHandleHealth(t *testing.T) {
	t.Run("all healthy", func(t *testing.T) {
		srv := newTestServer(&mockSearcher{}, &mockHealth{}, &mockPinger{})
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("embedding down stays green", func(t *testing.T) {
		srv := newTestServer(&mockSearcher{}, &mockHealth{err: errors.New("no key")}, &mockPinger{})
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("degraded embedding must not fail readiness, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "degraded") {
			t.Errorf("expected degraded marker in body: %s", rec.Body.String())
		}
	})

	t.Run("store down fails", func(t *testing.T) {
		srv := newTestServer(&mockSearcher{}, &mockHealth{}, &mockPinger{err: errors.New("refused")})
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}
	})
}
