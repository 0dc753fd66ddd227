package extract

import "testing"

func TestExtractPlainText_RichTextTree(t *testing.T) {
	body := []byte(`{
		"type": "doc",
		"content": [
			{"type": "heading", "content": [{"type": "text", "text": "Title"}]},
			{"type": "paragraph", "content": [
				{"type": "text", "text": "Hello "},
				{"type": "text", "text": "world"}
			]}
		]
	}`)

	got := New().ExtractPlainText(body)
	want := "Title\nHello world"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestExtractPlainText_NestedBlocks(t *testing.T) {
	body := []byte(`{
		"type": "doc",
		"content": [
			{"type": "bulletList", "content": [
				{"type": "listItem", "content": [
					{"type": "paragraph", "content": [{"type": "text", "text": "first"}]}
				]},
				{"type": "listItem", "content": [
					{"type": "paragraph", "content": [{"type": "text", "text": "second"}]}
				]}
			]}
		]
	}`)

	got := New().ExtractPlainText(body)
	want := "first\nsecond"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestExtractPlainText_PlainTextPassthrough(t *testing.T) {
	// Older documents stored bodies as plain strings.
	got := New().ExtractPlainText([]byte("just plain text"))
	if got != "just plain text" {
		t.Fatalf("expected passthrough, got %q", got)
	}
}

func TestExtractPlainText_Empty(t *testing.T) {
	if got := New().ExtractPlainText(nil); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
	if got := New().ExtractPlainText([]byte(`{"type":"doc"}`)); got != "" {
		t.Fatalf("expected empty string for empty doc, got %q", got)
	}
}
