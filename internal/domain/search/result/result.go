package result

// Result is a single fused search hit.
type Result struct {
	id           string
	documentID   string
	text         string
	lexicalScore float64
	vectorScore  float64
	hybridScore  float64
}

// New creates a fused result.
func New(id, documentID, text string, lexicalScore, vectorScore, hybridScore float64) Result {
	return Result{
		id: id, documentID: documentID, text: text,
		lexicalScore: lexicalScore, vectorScore: vectorScore, hybridScore: hybridScore,
	}
}

// ID returns the passage identifier.
func (r *Result) ID() string { return r.id }

// DocumentID returns the owning document identifier.
func (r *Result) DocumentID() string { return r.documentID }

// Text returns the passage content.
func (r *Result) Text() string { return r.text }

// LexicalScore returns the rank-derived full-text score in [0,1].
func (r *Result) LexicalScore() float64 { return r.lexicalScore }

// VectorScore returns the cosine similarity in [0,1].
func (r *Result) VectorScore() float64 { return r.vectorScore }

// HybridScore returns the weighted sum used for final ranking.
func (r *Result) HybridScore() float64 { return r.hybridScore }
