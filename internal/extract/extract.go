// Package extract flattens structured rich-text document bodies into
// plain text for the document-fallback substring scan.
package extract

import (
	"encoding/json"
	"strings"
)

// node mirrors the stored rich-text tree: nested content nodes with
// leaf text fields.
type node struct {
	Type    string `json:"type"`
	Text    string `json:"text"`
	Content []node `json:"content"`
}

// Extractor flattens structured document bodies.
type Extractor struct{}

// New creates a content extractor.
func New() *Extractor {
	return &Extractor{}
}

// ExtractPlainText flattens a structured body into a single string.
// Block-level nodes are separated by newlines. Bodies that are not
// valid JSON are returned as-is: older documents stored plain text.
func (e *Extractor) ExtractPlainText(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var root node
	if err := json.Unmarshal(body, &root); err != nil {
		return string(body)
	}

	var blocks []string
	collectBlocks(root, &blocks)
	return strings.Join(blocks, "\n")
}

func collectBlocks(n node, blocks *[]string) {
	if n.Text != "" {
		*blocks = append(*blocks, n.Text)
		return
	}

	var sb strings.Builder
	flat := true
	for _, child := range n.Content {
		if len(child.Content) > 0 {
			flat = false
			break
		}
	}

	if flat && len(n.Content) > 0 {
		// Leaf block: concatenate inline text runs without separators.
		for _, child := range n.Content {
			sb.WriteString(child.Text)
		}
		if sb.Len() > 0 {
			*blocks = append(*blocks, sb.String())
		}
		return
	}

	for _, child := range n.Content {
		collectBlocks(child, blocks)
	}
}
