package notedex

import (
	"testing"
	"time"

	"github.com/kailas-cloud/notedex/internal/domain/search/method"
	"github.com/kailas-cloud/notedex/internal/domain/search/outcome"
	"github.com/kailas-cloud/notedex/internal/domain/search/result"
)

func TestSearchOptions(t *testing.T) {
	o := applySearchOptions([]SearchOption{
		WithDocumentScope("d1"),
		WithLimit(25),
		WithWeights(0.8, 0.2),
	})

	if o.scopeDocumentID != "d1" {
		t.Errorf("scope not applied: %q", o.scopeDocumentID)
	}
	if o.limit != 25 {
		t.Errorf("limit not applied: %d", o.limit)
	}
	if o.lexicalWeight != 0.8 || o.vectorWeight != 0.2 {
		t.Errorf("weights not applied: %g/%g", o.lexicalWeight, o.vectorWeight)
	}
}

func TestSearchOptions_LastWeightsWin(t *testing.T) {
	// SearchKeywords/SearchSemantic append their preset after caller
	// options, so a later WithWeights must override an earlier one.
	o := applySearchOptions([]SearchOption{
		WithWeights(0.5, 0.5),
		WithWeights(0.8, 0.2),
	})
	if o.lexicalWeight != 0.8 || o.vectorWeight != 0.2 {
		t.Errorf("expected last weights to win, got %g/%g", o.lexicalWeight, o.vectorWeight)
	}
}

func TestSessionOptions(t *testing.T) {
	o := applySessionOptions([]SessionOption{WithSessionDebounce(50 * time.Millisecond)})
	if o.debounce != 50*time.Millisecond {
		t.Errorf("debounce not applied: %v", o.debounce)
	}
}

func TestToOutcome(t *testing.T) {
	out := toOutcome(outcome.Success(
		[]result.Result{result.New("p1", "d1", "text", 0.75, 0.9, 0.825)},
		method.Fused,
		12*time.Millisecond,
	))

	if !out.Success || out.Total != 1 || out.Method != "fused" || out.DurationMs != 12 {
		t.Errorf("outcome not mapped: %+v", out)
	}
	r := out.Results[0]
	if r.ID != "p1" || r.DocumentID != "d1" || r.HybridScore != 0.825 {
		t.Errorf("result not mapped: %+v", r)
	}

	failed := toOutcome(outcome.Failure("query too long", time.Millisecond))
	if failed.Success || failed.Error != "query too long" || failed.Method != "error" {
		t.Errorf("failure not mapped: %+v", failed)
	}
}
