package session

import (
	"context"
	"fmt"
	"io"
	"strings"

	"quill/internal/api"
	"quill/internal/autosave"
	"quill/internal/domain"
	"quill/internal/domain/models/workspace"
	"quill/internal/summarize"
)

// persistText is the auto-save pipeline's save function: it shapes the
// captured payload into an update request. The payload, not the current
// selection, decides what is written.
func (s *Session) persistText(ctx context.Context, p autosave.Payload) (*workspace.UserText, error) {
	return s.api.UpdateText(ctx, p.TextID, &api.TextRequest{
		Title:      p.Title,
		Content:    p.Content,
		ProjectIDs: p.ProjectIDs,
		FolderID:   p.FolderID,
	})
}

// applySavedText adopts the server's canonical record after a successful
// auto-save, replacing the in-memory entry wholesale so server-side
// normalization (timestamps, derived fields) is reflected immediately.
func (s *Session) applySavedText(text *workspace.UserText) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.texts {
		if s.texts[i].ID == text.ID {
			s.texts[i] = *text
			s.sel.rebindText(&s.texts[i])
			s.rebuildTreeLocked()
			return
		}
	}
	// Text vanished locally (deleted or project switched); nothing to adopt.
}

// Ask submits a question scoped to the current folder when one is open,
// otherwise to the whole project, narrowed to the selected context items.
// After a successful ask the context selection is cleared unless the session
// was configured to keep it.
func (s *Session) Ask(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("%w: question must not be empty", domain.ErrValidation)
	}

	s.mu.Lock()
	if s.project == nil {
		s.mu.Unlock()
		return "", domain.ErrNoSelection
	}
	projectID := s.project.ID
	req := &api.AskRequest{
		Question:     question,
		ContextItems: s.sel.ContextItems(),
	}
	if cur := s.nav.Current(); cur != nil {
		req.FolderID = &cur.ID
	}
	s.mu.Unlock()

	resp, err := s.api.Ask(ctx, projectID, req)
	if err != nil {
		return "", err
	}

	if !s.opts.KeepContextAfterAsk {
		s.ClearContext()
	}
	return resp.Answer, nil
}

// StartSummarize starts a summarization over the current folder when one is
// open, otherwise over the whole project. At most one task may be tracked at
// a time; a second start is rejected with ErrTaskActive.
func (s *Session) StartSummarize(ctx context.Context) error {
	s.mu.Lock()
	if s.project == nil {
		s.mu.Unlock()
		return domain.ErrNoSelection
	}
	scope := workspace.SummarizeScope{ProjectID: s.project.ID}
	if cur := s.nav.Current(); cur != nil {
		scope.FolderID = &cur.ID
	}
	s.mu.Unlock()

	return s.tracker.Start(ctx, scope)
}

// CancelSummarize stops watching the active summarization. Idempotent; the
// local poll timer stops even if the remote cancel fails.
func (s *Session) CancelSummarize(ctx context.Context) {
	s.tracker.Cancel(ctx)
}

// SummarizeStatus returns the tracker state and a human-readable line.
func (s *Session) SummarizeStatus() (summarize.State, string) {
	return s.tracker.Status()
}

// SummarizeResult returns the result URL once a task completed.
func (s *Session) SummarizeResult() string {
	return s.tracker.Result()
}

// SummarizeError returns the failure detail once a task errored.
func (s *Session) SummarizeError() string {
	return s.tracker.ErrorMessage()
}

// summarizeCompleted refreshes the content tree (the summarization produced
// a new document) before handing the result to the UI layer.
func (s *Session) summarizeCompleted(result workspace.SummarizeResult) {
	if err := s.Refresh(context.Background()); err != nil {
		s.logger.Warn("refresh after summarization failed", "error", err)
	}
	if s.opts.OnSummarizeResult != nil {
		s.opts.OnSummarizeResult(result)
	}
}

// InsertTranscript uploads a recorded audio clip, inserts the transcribed
// text into the open text at the given rune offset and schedules a save.
func (s *Session) InsertTranscript(ctx context.Context, filename string, audio io.Reader, cursor int) (string, error) {
	s.mu.Lock()
	open := s.sel.SelectedText()
	if open == nil {
		s.mu.Unlock()
		return "", domain.ErrNoSelection
	}
	textID := open.ID
	s.mu.Unlock()

	resp, err := s.api.Transcribe(ctx, &textID, filename, audio)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	text := s.textByIDLocked(textID)
	if text == nil {
		s.mu.Unlock()
		return resp.Text, nil
	}
	text.Content = insertAt(text.Content, resp.Text, cursor)
	snapshot := *text
	s.mu.Unlock()

	s.saver.Schedule(&snapshot)
	return resp.Text, nil
}

// insertAt splices insert into content at a rune offset, clamped to the
// content bounds.
func insertAt(content, insert string, cursor int) string {
	runes := []rune(content)
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(runes) {
		cursor = len(runes)
	}
	return string(runes[:cursor]) + insert + string(runes[cursor:])
}
