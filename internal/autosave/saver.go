// Package autosave debounces rapid text edits into a single persisted update.
package autosave

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"quill/internal/domain"
	"quill/internal/domain/models/workspace"
)

// Payload is the snapshot persisted by a save. It is captured at schedule
// time so a later selection switch cannot change what gets written: a stale
// timer firing after the user moved to another text still saves the text
// that was being edited.
type Payload struct {
	TextID     string
	Title      string
	Content    string
	FolderID   *string
	ProjectIDs []string
}

// SaveFunc persists a payload and returns the server's canonical record.
type SaveFunc func(ctx context.Context, p Payload) (*workspace.UserText, error)

// AppliedFunc receives the canonical record after a successful save so the
// owner can replace (not patch) its in-memory copy.
type AppliedFunc func(text *workspace.UserText)

// Saver coalesces Schedule calls into at most one save per debounce window.
// Exactly one pending timer exists; each call resets the delay, so only the
// schedule that survives the full window unsuperseded fires.
type Saver struct {
	delay   time.Duration
	save    SaveFunc
	applied AppliedFunc
	logger  *slog.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending *Payload
	closed  bool
}

// NewSaver creates a saver. delay <= 0 falls back to one second.
func NewSaver(delay time.Duration, save SaveFunc, applied AppliedFunc, logger *slog.Logger) *Saver {
	if delay <= 0 {
		delay = time.Second
	}
	return &Saver{
		delay:   delay,
		save:    save,
		applied: applied,
		logger:  logger,
	}
}

// Schedule captures the text's current values and (re)starts the debounce
// timer. A newer schedule always supersedes a pending one.
func (s *Saver) Schedule(text *workspace.UserText) {
	payload := Payload{
		TextID:     text.ID,
		Title:      text.Title,
		Content:    text.Content,
		FolderID:   text.FolderID,
		ProjectIDs: append([]string(nil), text.ProjectIDs...),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.pending = &payload
	if s.timer == nil {
		s.timer = time.AfterFunc(s.delay, s.onTimer)
		return
	}
	s.timer.Reset(s.delay)
}

// Flush fires any pending save immediately, without waiting out the window.
func (s *Saver) Flush() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.mu.Unlock()
	s.onTimer()
}

// Pending reports whether an unsaved payload is waiting on the timer.
func (s *Saver) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// Close cancels the pending timer so no stale callback can fire after the
// owning session is gone. Pending edits are dropped; call Flush first to
// persist them.
func (s *Saver) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.pending = nil
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Saver) onTimer() {
	s.mu.Lock()
	if s.closed || s.pending == nil {
		s.mu.Unlock()
		return
	}
	payload := *s.pending
	s.pending = nil
	s.mu.Unlock()

	text, err := s.save(context.Background(), payload)
	if err != nil {
		// Non-fatal: local edits are kept and the next schedule retries.
		s.logger.Warn("auto-save failed",
			"text_id", payload.TextID,
			"transient", domain.Transient(err),
			"error", err,
		)
		return
	}

	s.logger.Debug("auto-save persisted", "text_id", text.ID)
	if s.applied != nil {
		s.applied(text)
	}
}
