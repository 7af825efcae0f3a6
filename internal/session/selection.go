package session

import (
	"quill/internal/domain/models/workspace"
)

// Selection tracks the single open viewer item and the orthogonal
// multi-select set used for question-answering context.
type Selection struct {
	document *workspace.Document
	text     *workspace.UserText
	context  []workspace.ItemRef
}

// SelectedDocument returns the open document, if any.
func (s *Selection) SelectedDocument() *workspace.Document { return s.document }

// SelectedText returns the open text, if any.
func (s *Selection) SelectedText() *workspace.UserText { return s.text }

// ToggleItem opens an item in the viewer. Opening a document closes any open
// text and vice versa; toggling the already-open item closes it. At most one
// of document/text is ever non-nil.
func (s *Selection) ToggleItem(item workspace.Item) {
	switch item.Kind {
	case workspace.ItemDocument:
		if s.document != nil && s.document.ID == item.Document.ID {
			s.document = nil
			return
		}
		s.document = item.Document
		s.text = nil
	case workspace.ItemText:
		if s.text != nil && s.text.ID == item.Text.ID {
			s.text = nil
			return
		}
		s.text = item.Text
		s.document = nil
	}
}

// rebindText re-points the open text to a fresh list entry with the same id,
// keeping the viewer valid after the in-memory list entry was replaced.
func (s *Selection) rebindText(t *workspace.UserText) {
	if s.text != nil && s.text.ID == t.ID {
		s.text = t
	}
}

// CloseViewer clears the open item.
func (s *Selection) CloseViewer() {
	s.document = nil
	s.text = nil
}

// ToggleContextItem adds or removes an item from the question-answering
// context set. Independent of the viewer selection.
func (s *Selection) ToggleContextItem(ref workspace.ItemRef) {
	for i, existing := range s.context {
		if existing == ref {
			s.context = append(s.context[:i], s.context[i+1:]...)
			return
		}
	}
	s.context = append(s.context, ref)
}

// ContextItems returns a copy of the context selection.
func (s *Selection) ContextItems() []workspace.ItemRef {
	out := make([]workspace.ItemRef, len(s.context))
	copy(out, s.context)
	return out
}

// InContext reports whether an item is part of the context selection.
func (s *Selection) InContext(ref workspace.ItemRef) bool {
	for _, existing := range s.context {
		if existing == ref {
			return true
		}
	}
	return false
}

// SelectAll replaces the context selection with every given item.
func (s *Selection) SelectAll(refs []workspace.ItemRef) {
	s.context = append(s.context[:0:0], refs...)
}

// ClearContext empties the context selection.
func (s *Selection) ClearContext() {
	s.context = nil
}

// Reset discards viewer and context selection, e.g. on project deselect.
func (s *Selection) Reset() {
	s.CloseViewer()
	s.ClearContext()
}
