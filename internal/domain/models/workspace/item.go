package workspace

// ItemKind discriminates the two viewable item types.
type ItemKind string

const (
	ItemDocument ItemKind = "document"
	ItemText     ItemKind = "text"
)

// Item is a tagged union over Document and UserText. Exactly one of the two
// pointers is set, matching Kind.
type Item struct {
	Kind     ItemKind
	Document *Document
	Text     *UserText
}

// DocumentItem wraps a document as a workspace item.
func DocumentItem(d *Document) Item {
	return Item{Kind: ItemDocument, Document: d}
}

// TextItem wraps a text as a workspace item.
func TextItem(t *UserText) Item {
	return Item{Kind: ItemText, Text: t}
}

// ID returns the id of the underlying document or text.
func (i Item) ID() string {
	switch i.Kind {
	case ItemDocument:
		return i.Document.ID
	case ItemText:
		return i.Text.ID
	}
	return ""
}

// Ref returns the id+kind pair used for context selection.
func (i Item) Ref() ItemRef {
	return ItemRef{ID: i.ID(), Kind: i.Kind}
}

// ItemRef identifies an item for question-answering context scoping.
type ItemRef struct {
	ID   string   `json:"id"`
	Kind ItemKind `json:"type"`
}
