// Package session holds the client-side workspace model: the content tree
// derived from the server's flat lists, navigation and selection state, the
// auto-save pipeline and the summarization task tracker. A Session is the
// explicit value object UI layers hold a single mutable reference to.
package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"quill/internal/api"
	"quill/internal/autosave"
	"quill/internal/domain"
	"quill/internal/domain/models/workspace"
	"quill/internal/summarize"
	"quill/internal/upload"
)

// API is the Workspace API surface the session depends on. *api.Client
// satisfies it; tests substitute fakes.
type API interface {
	GetProject(ctx context.Context, projectID string) (*workspace.Project, error)
	DeleteProject(ctx context.Context, projectID string) error

	ListFolders(ctx context.Context, projectID string) ([]workspace.Folder, error)
	CreateFolder(ctx context.Context, projectID string, req *api.CreateFolderRequest) (*workspace.Folder, error)
	UpdateFolder(ctx context.Context, projectID, folderID string, req *api.UpdateFolderRequest) (*workspace.Folder, error)
	DeleteFolder(ctx context.Context, projectID, folderID string) error

	ListDocuments(ctx context.Context, projectID string) ([]workspace.Document, error)
	UploadDocument(ctx context.Context, projectID string, folderID *string, filename string, content io.Reader) (*workspace.Document, error)
	DeleteDocument(ctx context.Context, projectID, documentID string) error

	ListTexts(ctx context.Context, projectID string) ([]workspace.UserText, error)
	CreateText(ctx context.Context, req *api.TextRequest) (*workspace.UserText, error)
	UpdateText(ctx context.Context, textID string, req *api.TextRequest) (*workspace.UserText, error)
	DeleteText(ctx context.Context, textID string) error

	Ask(ctx context.Context, projectID string, req *api.AskRequest) (*api.AskResponse, error)
	Transcribe(ctx context.Context, textID *string, filename string, audio io.Reader) (*api.TranscribeResponse, error)

	summarize.API
}

// Options tune session behavior. Zero values use the defaults.
type Options struct {
	AutoSaveDelay time.Duration
	PollInterval  time.Duration

	// KeepContextAfterAsk keeps the question-answering context selection
	// after a successful ask instead of clearing it (policy, not contract).
	KeepContextAfterAsk bool

	// OnSummarizeResult is invoked after a completed summarization has
	// refreshed the content tree. The UI layer renders it however it wants.
	OnSummarizeResult func(result workspace.SummarizeResult)
}

// Session owns the workspace state for a single selected project. All state
// is rebuilt or discarded when the user switches projects; nothing aliases
// across projects. Methods are safe for interleaved use by UI events and the
// session's own timer callbacks.
type Session struct {
	api       API
	logger    *slog.Logger
	validator *upload.Validator
	opts      Options

	mu        sync.Mutex
	project   *workspace.Project
	folders   []workspace.Folder
	documents []workspace.Document
	texts     []workspace.UserText
	tree      []*workspace.ContentTreeNode
	nav       Navigation
	sel       Selection

	saver   *autosave.Saver
	tracker *summarize.Tracker
}

// New creates a session bound to a Workspace API client.
func New(apiClient API, logger *slog.Logger, opts Options) *Session {
	s := &Session{
		api:       apiClient,
		logger:    logger,
		validator: upload.NewValidator(),
		opts:      opts,
	}
	s.saver = autosave.NewSaver(opts.AutoSaveDelay, s.persistText, s.applySavedText, logger)
	s.tracker = summarize.NewTracker(apiClient, opts.PollInterval, s.summarizeCompleted, logger)
	return s
}

// SelectProject loads a project's flat lists and derives the content tree.
// Any previously selected project's state is discarded first.
func (s *Session) SelectProject(ctx context.Context, projectID string) error {
	project, err := s.api.GetProject(ctx, projectID)
	if err != nil {
		return err
	}
	folders, documents, texts, err := s.fetchLists(ctx, projectID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.project = project
	s.folders = folders
	s.documents = documents
	s.texts = texts
	s.rebuildTreeLocked()
	s.nav.GoHome()
	s.sel.Reset()

	s.logger.Info("project selected",
		"project_id", project.ID,
		"folder_count", len(folders),
		"document_count", len(documents),
		"text_count", len(texts),
	)
	return nil
}

// Refresh refetches the flat lists and rebuilds the tree wholesale. The tree
// is never patched in place across refreshes, so the client cache cannot
// diverge from server state.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.project == nil {
		s.mu.Unlock()
		return domain.ErrNoSelection
	}
	projectID := s.project.ID
	s.mu.Unlock()

	folders, documents, texts, err := s.fetchLists(ctx, projectID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.project == nil || s.project.ID != projectID {
		// Project switched while the fetch was in flight; drop the result.
		return nil
	}
	s.folders = folders
	s.documents = documents
	s.texts = texts
	s.rebuildTreeLocked()
	return nil
}

// DeselectProject flushes any pending auto-save, stops any summarization
// polling and discards all per-project state.
func (s *Session) DeselectProject() {
	s.saver.Flush()
	s.tracker.Close()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.project = nil
	s.folders = nil
	s.documents = nil
	s.texts = nil
	s.tree = nil
	s.nav.GoHome()
	s.sel.Reset()
}

// DeleteProject removes a project on the server. When the deleted project is
// the selected one, all per-project state is discarded as well. A not-found
// response still clears local state: the project is gone either way.
func (s *Session) DeleteProject(ctx context.Context, projectID string) error {
	err := s.api.DeleteProject(ctx, projectID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	s.mu.Lock()
	selected := s.project != nil && s.project.ID == projectID
	s.mu.Unlock()
	if selected {
		s.DeselectProject()
	}

	s.logger.Info("project deleted", "project_id", projectID)
	return err
}

// Close disposes the session's timers. No auto-save or polling callback can
// fire afterwards.
func (s *Session) Close() {
	s.saver.Flush()
	s.saver.Close()
	s.tracker.Close()
}

// Project returns the selected project, nil when none is selected.
func (s *Session) Project() *workspace.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.project
}

// Tree returns the derived content tree roots.
func (s *Session) Tree() []*workspace.ContentTreeNode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree
}

// Folders returns the flat folder list.
func (s *Session) Folders() []workspace.Folder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]workspace.Folder(nil), s.folders...)
}

// Documents returns the flat document list.
func (s *Session) Documents() []workspace.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]workspace.Document(nil), s.documents...)
}

// Texts returns the flat text list.
func (s *Session) Texts() []workspace.UserText {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]workspace.UserText(nil), s.texts...)
}

// CurrentFolder returns the folder being viewed, nil at project root.
func (s *Session) CurrentFolder() *workspace.Folder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.Current()
}

// SelectFolder navigates into a folder by id.
func (s *Session) SelectFolder(folderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	folder := s.folderByIDLocked(folderID)
	if folder == nil {
		return domain.ErrNotFound
	}
	s.nav.SelectFolder(folder)
	return nil
}

// GoBack navigates back through folder history.
func (s *Session) GoBack() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav.GoBack()
}

// GoForward navigates forward through folder history.
func (s *Session) GoForward() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav.GoForward()
}

// GoHome returns to project root and clears folder history.
func (s *Session) GoHome() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav.GoHome()
}

func (s *Session) fetchLists(ctx context.Context, projectID string) ([]workspace.Folder, []workspace.Document, []workspace.UserText, error) {
	folders, err := s.api.ListFolders(ctx, projectID)
	if err != nil {
		return nil, nil, nil, err
	}
	documents, err := s.api.ListDocuments(ctx, projectID)
	if err != nil {
		return nil, nil, nil, err
	}
	texts, err := s.api.ListTexts(ctx, projectID)
	if err != nil {
		return nil, nil, nil, err
	}
	return folders, documents, texts, nil
}

// ToggleExpanded flips a folder's expansion state in the rendered tree.
func (s *Session) ToggleExpanded(folderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	node := FindFolderByID(s.tree, folderID)
	if node == nil {
		return domain.ErrNotFound
	}
	node.IsExpanded = !node.IsExpanded
	return nil
}

// rebuildTreeLocked derives the tree from the flat lists. Expansion state is
// the one piece of UI state carried across rebuilds; everything else is a
// pure function of the lists. Callers hold s.mu.
func (s *Session) rebuildTreeLocked() {
	expanded := make(map[string]bool)
	walkTree(s.tree, func(node *workspace.ContentTreeNode) {
		if node.IsExpanded {
			expanded[node.Folder.ID] = true
		}
	})

	s.tree = BuildTree(s.folders, s.logger)
	AttachItems(s.tree, s.documents, s.texts, s.logger)

	if len(expanded) > 0 {
		walkTree(s.tree, func(node *workspace.ContentTreeNode) {
			node.IsExpanded = expanded[node.Folder.ID]
		})
	}
}

func (s *Session) folderByIDLocked(folderID string) *workspace.Folder {
	for i := range s.folders {
		if s.folders[i].ID == folderID {
			return &s.folders[i]
		}
	}
	return nil
}
