package match

// NoRank marks a match that did not come from lexical search.
const NoRank = -1

// Match is a passage hit from a single retrieval source, before fusion.
type Match struct {
	id          string
	documentID  string
	text        string
	lexicalRank int
	similarity  float64
}

// Lexical creates a match from full-text search. Rank is the 0-based
// position in the store's ranking order (0 = best).
func Lexical(id, documentID, text string, rank int) Match {
	return Match{id: id, documentID: documentID, text: text, lexicalRank: rank, similarity: 0}
}

// Vector creates a match from vector similarity search.
func Vector(id, documentID, text string, similarity float64) Match {
	return Match{id: id, documentID: documentID, text: text, lexicalRank: NoRank, similarity: similarity}
}

// ID returns the passage identifier.
func (m *Match) ID() string { return m.id }

// DocumentID returns the owning document identifier.
func (m *Match) DocumentID() string { return m.documentID }

// Text returns the passage content.
func (m *Match) Text() string { return m.text }

// LexicalRank returns the 0-based full-text rank, or NoRank.
func (m *Match) LexicalRank() int { return m.lexicalRank }

// Similarity returns the cosine similarity in [0,1], 0 for lexical-only matches.
func (m *Match) Similarity() float64 { return m.similarity }
