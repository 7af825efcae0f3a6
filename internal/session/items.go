package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"quill/internal/api"
	"quill/internal/config"
	"quill/internal/domain"
	"quill/internal/domain/models/workspace"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var folderNamePattern = regexp.MustCompile(`^[^/]+$`)

// AllItems returns the root-level documents and texts as a flat item list:
// documents first, then texts, in list order.
func (s *Session) AllItems() []workspace.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]workspace.Item, 0, len(s.documents)+len(s.texts))
	for i := range s.documents {
		if s.documents[i].FolderID == nil {
			items = append(items, workspace.DocumentItem(&s.documents[i]))
		}
	}
	for i := range s.texts {
		if s.texts[i].FolderID == nil {
			items = append(items, workspace.TextItem(&s.texts[i]))
		}
	}
	return items
}

// ToggleItem opens or closes an item in the viewer by id+kind.
func (s *Session) ToggleItem(ref workspace.ItemRef) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch ref.Kind {
	case workspace.ItemDocument:
		for i := range s.documents {
			if s.documents[i].ID == ref.ID {
				s.sel.ToggleItem(workspace.DocumentItem(&s.documents[i]))
				return nil
			}
		}
	case workspace.ItemText:
		for i := range s.texts {
			if s.texts[i].ID == ref.ID {
				s.sel.ToggleItem(workspace.TextItem(&s.texts[i]))
				return nil
			}
		}
	}
	return domain.ErrNotFound
}

// SelectedDocument returns the document open in the viewer, if any.
func (s *Session) SelectedDocument() *workspace.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel.SelectedDocument()
}

// SelectedText returns the text open in the viewer, if any.
func (s *Session) SelectedText() *workspace.UserText {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel.SelectedText()
}

// ToggleContextItem adds or removes an item from the question context.
func (s *Session) ToggleContextItem(ref workspace.ItemRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.ToggleContextItem(ref)
}

// ContextItems returns the current question context selection.
func (s *Session) ContextItems() []workspace.ItemRef {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel.ContextItems()
}

// SelectAllDocuments puts every document in the project into the question
// context, replacing the current set.
func (s *Session) SelectAllDocuments() {
	s.mu.Lock()
	defer s.mu.Unlock()
	refs := make([]workspace.ItemRef, 0, len(s.documents))
	for i := range s.documents {
		refs = append(refs, workspace.ItemRef{ID: s.documents[i].ID, Kind: workspace.ItemDocument})
	}
	s.sel.SelectAll(refs)
}

// ClearContext empties the question context selection.
func (s *Session) ClearContext() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.ClearContext()
}

// EditText applies an edit to a text and routes it through the auto-save
// pipeline. The local copy is updated immediately (the user keeps typing
// against their own edits); persistence happens after the debounce window.
func (s *Session) EditText(textID, title, content string) error {
	s.mu.Lock()
	text := s.textByIDLocked(textID)
	if text == nil {
		s.mu.Unlock()
		return domain.ErrNotFound
	}
	text.Title = title
	text.Content = content
	snapshot := *text
	s.mu.Unlock()

	s.saver.Schedule(&snapshot)
	return nil
}

// CreateText creates a text in the selected project, placed in the current
// folder when one is open.
func (s *Session) CreateText(ctx context.Context, title, content string) (*workspace.UserText, error) {
	s.mu.Lock()
	if s.project == nil {
		s.mu.Unlock()
		return nil, domain.ErrNoSelection
	}
	req := &api.TextRequest{
		Title:      strings.TrimSpace(title),
		Content:    content,
		ProjectIDs: []string{s.project.ID},
	}
	if cur := s.nav.Current(); cur != nil {
		req.FolderID = &cur.ID
	}
	s.mu.Unlock()

	if err := validation.Validate(req.Title,
		validation.Required,
		validation.Length(1, config.MaxTextTitleLength),
	); err != nil {
		return nil, fmt.Errorf("%w: title: %v", domain.ErrValidation, err)
	}

	text, err := s.api.CreateText(ctx, req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts = append(s.texts, *text)
	s.rebuildTreeLocked()
	return text, nil
}

// DeleteText removes a text. An already-deleted text (not found) is simply
// reconciled out of the local list.
func (s *Session) DeleteText(ctx context.Context, textID string) error {
	err := s.api.DeleteText(ctx, textID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.texts {
		if s.texts[i].ID == textID {
			s.texts = append(s.texts[:i], s.texts[i+1:]...)
			break
		}
	}
	if open := s.sel.SelectedText(); open != nil && open.ID == textID {
		s.sel.CloseViewer()
	}
	s.rebuildTreeLocked()
	return err
}

// UploadDocument validates a file client-side and uploads it into the
// selected project, placed in the current folder when one is open. A
// rejected file never reaches the network layer.
func (s *Session) UploadDocument(ctx context.Context, filename string, size int64, content io.Reader) (*workspace.Document, error) {
	if err := s.validator.Validate(filename, size); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.project == nil {
		s.mu.Unlock()
		return nil, domain.ErrNoSelection
	}
	projectID := s.project.ID
	var folderID *string
	if cur := s.nav.Current(); cur != nil {
		folderID = &cur.ID
	}
	s.mu.Unlock()

	doc, err := s.api.UploadDocument(ctx, projectID, folderID, filename, content)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents = append(s.documents, *doc)
	s.rebuildTreeLocked()
	return doc, nil
}

// DeleteDocument removes a document, reconciling an already-deleted one out
// of the local list.
func (s *Session) DeleteDocument(ctx context.Context, documentID string) error {
	s.mu.Lock()
	if s.project == nil {
		s.mu.Unlock()
		return domain.ErrNoSelection
	}
	projectID := s.project.ID
	s.mu.Unlock()

	err := s.api.DeleteDocument(ctx, projectID, documentID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.documents {
		if s.documents[i].ID == documentID {
			s.documents = append(s.documents[:i], s.documents[i+1:]...)
			break
		}
	}
	if open := s.sel.SelectedDocument(); open != nil && open.ID == documentID {
		s.sel.CloseViewer()
	}
	s.rebuildTreeLocked()
	return err
}

// CreateFolder creates a folder, nested under the given parent (nil = root).
func (s *Session) CreateFolder(ctx context.Context, name string, parentID *string) (*workspace.Folder, error) {
	s.mu.Lock()
	if s.project == nil {
		s.mu.Unlock()
		return nil, domain.ErrNoSelection
	}
	projectID := s.project.ID
	s.mu.Unlock()

	name = strings.TrimSpace(name)
	if err := validation.Validate(name,
		validation.Required,
		validation.Length(1, config.MaxFolderNameLength),
		validation.Match(folderNamePattern).Error("folder name cannot contain slashes"),
	); err != nil {
		return nil, fmt.Errorf("%w: name: %v", domain.ErrValidation, err)
	}

	folder, err := s.api.CreateFolder(ctx, projectID, &api.CreateFolderRequest{
		Name:           name,
		ParentFolderID: parentID,
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.folders = append(s.folders, *folder)
	s.rebuildTreeLocked()
	return folder, nil
}

// MoveFolder re-parents a folder. A folder may not become its own parent or
// a child of one of its descendants; both are rejected before any network
// call to keep the tree acyclic.
func (s *Session) MoveFolder(ctx context.Context, folderID string, newParentID *string) error {
	s.mu.Lock()
	if s.project == nil {
		s.mu.Unlock()
		return domain.ErrNoSelection
	}
	projectID := s.project.ID
	folder := s.folderByIDLocked(folderID)
	if folder == nil {
		s.mu.Unlock()
		return domain.ErrNotFound
	}
	name := folder.Name
	if newParentID != nil {
		if err := s.validateNoCycleLocked(folderID, *newParentID); err != nil {
			s.mu.Unlock()
			return err
		}
	}
	s.mu.Unlock()

	updated, err := s.api.UpdateFolder(ctx, projectID, folderID, &api.UpdateFolderRequest{
		Name:           name,
		ParentFolderID: newParentID,
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.folders {
		if s.folders[i].ID == folderID {
			s.folders[i] = *updated
			break
		}
	}
	s.rebuildTreeLocked()
	return nil
}

// RenameFolder renames a folder in place.
func (s *Session) RenameFolder(ctx context.Context, folderID, name string) error {
	s.mu.Lock()
	if s.project == nil {
		s.mu.Unlock()
		return domain.ErrNoSelection
	}
	projectID := s.project.ID
	folder := s.folderByIDLocked(folderID)
	if folder == nil {
		s.mu.Unlock()
		return domain.ErrNotFound
	}
	parentID := folder.ParentID
	s.mu.Unlock()

	name = strings.TrimSpace(name)
	if err := validation.Validate(name,
		validation.Required,
		validation.Length(1, config.MaxFolderNameLength),
		validation.Match(folderNamePattern).Error("folder name cannot contain slashes"),
	); err != nil {
		return fmt.Errorf("%w: name: %v", domain.ErrValidation, err)
	}

	updated, err := s.api.UpdateFolder(ctx, projectID, folderID, &api.UpdateFolderRequest{
		Name:           name,
		ParentFolderID: parentID,
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.folders {
		if s.folders[i].ID == folderID {
			s.folders[i] = *updated
			break
		}
	}
	s.rebuildTreeLocked()
	return nil
}

// DeleteFolder deletes a folder and everything in it, then refreshes local
// lists from the server (the cascade removes descendants server-side).
func (s *Session) DeleteFolder(ctx context.Context, folderID string) error {
	s.mu.Lock()
	if s.project == nil {
		s.mu.Unlock()
		return domain.ErrNoSelection
	}
	projectID := s.project.ID
	s.mu.Unlock()

	err := s.api.DeleteFolder(ctx, projectID, folderID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	// The cascade touched an unknown set of descendants; rebuild from the
	// server rather than guessing locally.
	if refreshErr := s.Refresh(ctx); refreshErr != nil {
		s.logger.Warn("refresh after folder delete failed", "error", refreshErr)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if cur := s.nav.Current(); cur != nil && s.folderByIDLocked(cur.ID) == nil {
		s.nav.GoHome()
	}
	return err
}

// validateNoCycleLocked walks ancestors of the proposed parent; if the walk
// reaches the folder being moved the move would create a cycle. Callers hold
// s.mu.
func (s *Session) validateNoCycleLocked(folderID, newParentID string) error {
	if folderID == newParentID {
		return fmt.Errorf("%w: cannot move folder to be its own parent", domain.ErrValidation)
	}

	byID := make(map[string]*workspace.Folder, len(s.folders))
	for i := range s.folders {
		byID[s.folders[i].ID] = &s.folders[i]
	}

	currentID := newParentID
	for {
		parent, exists := byID[currentID]
		if !exists {
			return domain.ErrNotFound
		}
		if parent.ParentID == nil {
			return nil // reached root, no cycle
		}
		if *parent.ParentID == folderID {
			return fmt.Errorf("%w: cannot move folder into one of its own descendants", domain.ErrValidation)
		}
		currentID = *parent.ParentID
	}
}

func (s *Session) textByIDLocked(textID string) *workspace.UserText {
	for i := range s.texts {
		if s.texts[i].ID == textID {
			return &s.texts[i]
		}
	}
	return nil
}
