package search

import (
	"sort"

	"github.com/kailas-cloud/notedex/internal/domain/search/match"
	"github.com/kailas-cloud/notedex/internal/domain/search/result"
)

// fuse merges lexical and vector matches into a single ranking.
//
// Lexical rank r of N maps to max(0, 1-r/N): linear decay from 1.0 at
// rank 0 to just above 0 at the last rank. Vector matches keep their
// cosine similarity. Both land on a common [0,1] scale before the
// weighted sum, which avoids comparing raw BM25 scores against cosine
// similarity. Reciprocal-rank decay would also work here; the linear
// mapping is kept for parity with the shipped ranking.
//
// A passage appearing in both lists is merged into one entry, never
// duplicated. Output is sorted by hybrid score descending; ties keep
// input order (lexical matches first, then unseen vector matches).
func fuse(lexical, vector []match.Match, lexicalWeight, vectorWeight float64) []result.Result {
	type entry struct {
		id           string
		documentID   string
		text         string
		lexicalScore float64
		vectorScore  float64
	}

	order := make([]*entry, 0, len(lexical)+len(vector))
	byID := make(map[string]*entry, len(lexical)+len(vector))

	n := len(lexical)
	for rank, m := range lexical {
		score := 1 - float64(rank)/float64(n)
		if score < 0 {
			score = 0
		}
		e := &entry{
			id:           m.ID(),
			documentID:   m.DocumentID(),
			text:         m.Text(),
			lexicalScore: score,
		}
		if _, seen := byID[m.ID()]; seen {
			continue
		}
		byID[m.ID()] = e
		order = append(order, e)
	}

	for _, m := range vector {
		if e, ok := byID[m.ID()]; ok {
			e.vectorScore = m.Similarity()
			continue
		}
		e := &entry{
			id:          m.ID(),
			documentID:  m.DocumentID(),
			text:        m.Text(),
			vectorScore: m.Similarity(),
		}
		byID[m.ID()] = e
		order = append(order, e)
	}

	results := make([]result.Result, 0, len(order))
	for _, e := range order {
		hybrid := lexicalWeight*e.lexicalScore + vectorWeight*e.vectorScore
		results = append(results, result.New(
			e.id, e.documentID, e.text,
			e.lexicalScore, e.vectorScore, hybrid,
		))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].HybridScore() > results[j].HybridScore()
	})

	return results
}
