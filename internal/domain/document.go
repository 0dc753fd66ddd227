package domain

// Document is the read model served by the document directory.
// The body is the structured rich-text payload as stored; flattening
// it to plain text is the content extractor's job.
type Document struct {
	id    string
	title string
	body  []byte
}

// NewDocument creates a document read model.
func NewDocument(id, title string, body []byte) Document {
	return Document{id: id, title: title, body: body}
}

// ID returns the document identifier.
func (d *Document) ID() string { return d.id }

// Title returns the document title.
func (d *Document) Title() string { return d.title }

// Body returns the raw structured body.
func (d *Document) Body() []byte { return d.body }
