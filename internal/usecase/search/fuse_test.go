package search

import (
	"math"
	"testing"

	"github.com/kailas-cloud/notedex/internal/domain/search/match"
)

func lexMatch(id string, rank int) match.Match {
	return match.Lexical(id, "doc-"+id, "text-"+id, rank)
}

func vecMatch(id string, similarity float64) match.Match {
	return match.Vector(id, "doc-"+id, "text-"+id, similarity)
}

func TestFuse_WeightedScenario(t *testing.T) {
	// One lexical hit, two vector hits, one overlapping id.
	lexical := []match.Match{lexMatch("1", 0)}
	vector := []match.Match{vecMatch("1", 0.9), vecMatch("2", 0.6)}

	results := fuse(lexical, vector, 0.5, 0.5)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	if results[0].ID() != "1" || results[1].ID() != "2" {
		t.Fatalf("expected order [1 2], got [%s %s]", results[0].ID(), results[1].ID())
	}
	// id 1: 0.5*1.0 + 0.5*0.9 = 0.95; id 2: 0.5*0 + 0.5*0.6 = 0.3
	if math.Abs(results[0].HybridScore()-0.95) > 1e-9 {
		t.Errorf("expected hybrid 0.95, got %f", results[0].HybridScore())
	}
	if math.Abs(results[1].HybridScore()-0.3) > 1e-9 {
		t.Errorf("expected hybrid 0.3, got %f", results[1].HybridScore())
	}
}

func TestFuse_RankDecay(t *testing.T) {
	lexical := []match.Match{lexMatch("a", 0), lexMatch("b", 1), lexMatch("c", 2), lexMatch("d", 3)}

	results := fuse(lexical, nil, 1, 0)

	want := []float64{1.0, 0.75, 0.5, 0.25}
	for i, r := range results {
		if math.Abs(r.LexicalScore()-want[i]) > 1e-9 {
			t.Errorf("rank %d: expected lexical score %f, got %f", i, want[i], r.LexicalScore())
		}
		if r.VectorScore() != 0 {
			t.Errorf("rank %d: expected zero vector score, got %f", i, r.VectorScore())
		}
	}
}

func TestFuse_NoDuplicateIDs(t *testing.T) {
	lexical := []match.Match{lexMatch("a", 0), lexMatch("b", 1)}
	vector := []match.Match{vecMatch("b", 0.8), vecMatch("a", 0.7), vecMatch("c", 0.6)}

	results := fuse(lexical, vector, 0.5, 0.5)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	seen := make(map[string]bool)
	for _, r := range results {
		if seen[r.ID()] {
			t.Errorf("duplicate id %s in fused output", r.ID())
		}
		seen[r.ID()] = true
	}
}

func TestFuse_OrderingNonIncreasing(t *testing.T) {
	lexical := []match.Match{lexMatch("a", 0), lexMatch("b", 1), lexMatch("c", 2)}
	vector := []match.Match{vecMatch("c", 0.95), vecMatch("d", 0.4), vecMatch("e", 0.9)}

	results := fuse(lexical, vector, 0.3, 0.7)
	for i := 1; i < len(results); i++ {
		if results[i].HybridScore() > results[i-1].HybridScore() {
			t.Errorf("hybrid score increased at %d: %f > %f",
				i, results[i].HybridScore(), results[i-1].HybridScore())
		}
	}
}

func TestFuse_WeightMonotonicity(t *testing.T) {
	// Same lexical score, one has vector support. Raising the vector
	// weight must never rank the vector-backed passage lower.
	lexical := []match.Match{lexMatch("plain", 0), lexMatch("boosted", 0)}
	vector := []match.Match{vecMatch("boosted", 0.9)}

	rankOf := func(vectorWeight float64) int {
		results := fuse(lexical, vector, 0.5, vectorWeight)
		for i, r := range results {
			if r.ID() == "boosted" {
				return i
			}
		}
		t.Fatal("boosted passage missing from fused output")
		return -1
	}

	prev := rankOf(0.1)
	for _, w := range []float64{0.3, 0.5, 0.8, 1.0} {
		cur := rankOf(w)
		if cur > prev {
			t.Errorf("vector weight %f ranked boosted passage lower (%d > %d)", w, cur, prev)
		}
		prev = cur
	}
}

func TestFuse_EmptyInputs(t *testing.T) {
	t.Run("both empty", func(t *testing.T) {
		if results := fuse(nil, nil, 0.5, 0.5); len(results) != 0 {
			t.Fatalf("expected 0 results, got %d", len(results))
		}
	})

	t.Run("lexical empty reduces to vector order", func(t *testing.T) {
		vector := []match.Match{vecMatch("a", 0.9), vecMatch("b", 0.5), vecMatch("c", 0.7)}
		results := fuse(nil, vector, 0.5, 0.5)
		if len(results) != 3 {
			t.Fatalf("expected 3 results, got %d", len(results))
		}
		want := []string{"a", "c", "b"}
		for i, id := range want {
			if results[i].ID() != id {
				t.Errorf("position %d: expected %s, got %s", i, id, results[i].ID())
			}
			if results[i].LexicalScore() != 0 {
				t.Errorf("position %d: expected zero lexical score", i)
			}
		}
	})

	t.Run("vector empty reduces to lexical order", func(t *testing.T) {
		lexical := []match.Match{lexMatch("a", 0), lexMatch("b", 1)}
		results := fuse(lexical, nil, 0.5, 0.5)
		if results[0].ID() != "a" || results[1].ID() != "b" {
			t.Fatalf("expected lexical order preserved, got [%s %s]", results[0].ID(), results[1].ID())
		}
	})
}

func TestFuse_TieKeepsInputOrder(t *testing.T) {
	// Zero lexical weight collapses every hybrid score to 0: insertion
	// order must survive the sort.
	lexical := []match.Match{lexMatch("first", 0), lexMatch("second", 1)}

	results := fuse(lexical, nil, 0, 0.5)
	if results[0].ID() != "first" || results[1].ID() != "second" {
		t.Fatalf("tie broke input order: [%s %s]", results[0].ID(), results[1].ID())
	}
}
