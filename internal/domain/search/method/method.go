package method

// Method identifies which tier of the fallback cascade produced an outcome.
type Method string

const (
	// Fused means lexical and vector results were merged into one ranking.
	Fused Method = "fused"
	// LexicalFallback means embedding was unavailable and full-text matched.
	LexicalFallback Method = "lexical-fallback"
	// DocumentFallback means the stores were empty and a title/body
	// substring scan matched.
	DocumentFallback Method = "document-fallback"
	// NoResults means every tier came back empty.
	NoResults Method = "no-results"
	// Error means the orchestration itself failed.
	Error Method = "error"
)

// IsValid reports whether m is a known method.
func (m Method) IsValid() bool {
	switch m {
	case Fused, LexicalFallback, DocumentFallback, NoResults, Error:
		return true
	}
	return false
}

// Degraded reports whether the outcome came from a fallback tier.
func (m Method) Degraded() bool {
	return m == LexicalFallback || m == DocumentFallback
}

// String returns the wire value.
func (m Method) String() string { return string(m) }
