// Package summarize drives the create/poll/cancel lifecycle of server-side
// summarization jobs.
package summarize

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"quill/internal/domain"
	"quill/internal/domain/models/workspace"
)

// API is the slice of the Workspace API the tracker needs.
type API interface {
	StartSummarize(ctx context.Context, scope workspace.SummarizeScope) (string, error)
	SummarizeStatus(ctx context.Context, taskID string) (*workspace.SummarizeTask, error)
	CancelSummarize(ctx context.Context, taskID string) error
}

// State is the tracker's local state machine:
// Idle -> Starting -> Polling -> {Completed, Errored, Cancelled}.
type State string

const (
	StateIdle      State = "idle"
	StateStarting  State = "starting"
	StatePolling   State = "polling"
	StateCompleted State = "completed"
	StateErrored   State = "errored"
	StateCancelled State = "cancelled"
)

// Terminal reports whether no further automatic transition occurs.
func (s State) Terminal() bool {
	switch s {
	case StateCompleted, StateErrored, StateCancelled:
		return true
	}
	return false
}

// ResultFunc is invoked once a tracked task completes. The session uses it to
// refresh the content tree (the summarization produced a new document) before
// presenting the result.
type ResultFunc func(result workspace.SummarizeResult)

// Tracker watches at most one summarization job at a time. The polling loop
// is the single source of truth for "a job is in flight": exactly one loop
// exists while the state is Polling, and every transition out of Polling
// stops it.
type Tracker struct {
	api      API
	interval time.Duration
	onResult ResultFunc
	logger   *slog.Logger

	mu         sync.Mutex
	state      State
	taskID     string
	statusLine string
	errMessage string
	resultURL  string
	stop       chan struct{} // non-nil exactly while a polling loop runs
}

// NewTracker creates a tracker. interval <= 0 falls back to two seconds.
func NewTracker(api API, interval time.Duration, onResult ResultFunc, logger *slog.Logger) *Tracker {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Tracker{
		api:      api,
		interval: interval,
		onResult: onResult,
		logger:   logger,
		state:    StateIdle,
	}
}

// Start creates a summarization job and begins polling it. Only one job may
// be tracked per tracker; starting while one is active returns ErrTaskActive
// so no second polling loop can ever exist.
func (t *Tracker) Start(ctx context.Context, scope workspace.SummarizeScope) error {
	t.mu.Lock()
	if t.state == StateStarting || t.state == StatePolling {
		t.mu.Unlock()
		return domain.ErrTaskActive
	}
	t.reset()
	t.state = StateStarting
	t.statusLine = "starting summarization"
	t.mu.Unlock()

	taskID, err := t.api.StartSummarize(ctx, scope)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != StateStarting {
		// Cancelled or disposed while the create request was in flight.
		return nil
	}
	if err != nil {
		t.state = StateErrored
		t.errMessage = err.Error()
		t.statusLine = "summarization failed to start"
		t.logger.Warn("summarization start failed", "error", err)
		return err
	}

	t.taskID = taskID
	t.state = StatePolling
	t.statusLine = "summarization in progress"
	t.stop = make(chan struct{})
	go t.pollLoop(t.stop, taskID)
	return nil
}

// Cancel stops watching the current job. Valid (meaningful) only from
// Polling or Starting; idempotent and safe after terminal states. The remote
// cancel is best-effort: the local timer always stops and local state always
// reflects the user's intent to stop watching.
func (t *Tracker) Cancel(ctx context.Context) {
	t.mu.Lock()
	if t.state != StatePolling && t.state != StateStarting {
		t.mu.Unlock()
		return
	}
	taskID := t.taskID
	t.haltLocked()
	t.state = StateCancelled
	t.statusLine = "summarization cancelled"
	t.mu.Unlock()

	if taskID == "" {
		return
	}
	if err := t.api.CancelSummarize(ctx, taskID); err != nil {
		t.logger.Warn("remote cancel failed, local tracking stopped anyway",
			"task_id", taskID,
			"error", err,
		)
	}
}

// Close stops any polling loop without a remote cancel. It is the single
// dispose path: after Close no tracker timer can outlive the session.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == StatePolling || t.state == StateStarting {
		t.state = StateCancelled
		t.statusLine = "summarization cancelled"
	}
	t.haltLocked()
}

// Status returns the current state and a human-readable status line.
func (t *Tracker) Status() (State, string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state, t.statusLine
}

// Result returns the result URL once the state is Completed.
func (t *Tracker) Result() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.resultURL
}

// ErrorMessage returns the failure detail once the state is Errored.
func (t *Tracker) ErrorMessage() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.errMessage
}

func (t *Tracker) reset() {
	t.taskID = ""
	t.statusLine = ""
	t.errMessage = ""
	t.resultURL = ""
}

// haltLocked stops the polling loop. Callers must hold t.mu.
func (t *Tracker) haltLocked() {
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
}

func (t *Tracker) pollLoop(stop chan struct{}, taskID string) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if done := t.pollOnce(stop, taskID); done {
				return
			}
		}
	}
}

// pollOnce issues one status request and applies its outcome. It returns
// true when the loop should stop. Transitions are applied only while this
// loop is still the active one (t.stop == stop), so a tick that raced with
// Cancel cannot overwrite the cancelled state.
func (t *Tracker) pollOnce(stop chan struct{}, taskID string) bool {
	task, err := t.api.SummarizeStatus(context.Background(), taskID)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop != stop {
		return true
	}

	if err != nil {
		t.state = StateErrored
		t.errMessage = err.Error()
		t.statusLine = "summarization status check failed"
		t.haltLocked()
		t.logger.Warn("summarization poll failed", "task_id", taskID, "error", err)
		return true
	}

	switch {
	case task.Status == workspace.TaskCompleted || task.ResultURL != "":
		t.state = StateCompleted
		t.resultURL = task.ResultURL
		t.statusLine = "summarization completed"
		t.haltLocked()
		t.logger.Info("summarization completed", "task_id", taskID)
		if t.onResult != nil {
			result := workspace.SummarizeResult{TaskID: taskID, ResultURL: task.ResultURL}
			// Deliver outside the lock; the callback refreshes the tree.
			go t.onResult(result)
		}
		return true

	case task.Status == workspace.TaskError:
		t.state = StateErrored
		t.errMessage = task.ErrorMessage
		t.statusLine = "summarization failed"
		t.haltLocked()
		t.logger.Warn("summarization errored", "task_id", taskID, "detail", task.ErrorMessage)
		return true

	case task.Status == workspace.TaskCancelled:
		t.state = StateCancelled
		t.statusLine = "summarization cancelled"
		t.haltLocked()
		return true

	default:
		if task.Detail != "" {
			t.statusLine = task.Detail
		} else {
			t.statusLine = "summarization in progress"
		}
		return false
	}
}
