package summarize

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"quill/internal/domain"
	"quill/internal/domain/models/workspace"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeAPI scripts the summarize endpoints and counts calls.
type fakeAPI struct {
	mu          sync.Mutex
	startErr    error
	statusQueue []*workspace.SummarizeTask
	statusErr   error
	cancelErr   error

	startCalls  int
	statusCalls int
	cancelCalls int
	cancelledID string
}

func (f *fakeAPI) StartSummarize(_ context.Context, _ workspace.SummarizeScope) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.startCalls++
	if f.startErr != nil {
		return "", f.startErr
	}
	return "task-1", nil
}

func (f *fakeAPI) SummarizeStatus(_ context.Context, taskID string) (*workspace.SummarizeTask, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusCalls++
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	if len(f.statusQueue) == 0 {
		return &workspace.SummarizeTask{TaskID: taskID, Status: workspace.TaskProcessing}, nil
	}
	task := f.statusQueue[0]
	if len(f.statusQueue) > 1 {
		f.statusQueue = f.statusQueue[1:]
	}
	return task, nil
}

func (f *fakeAPI) CancelSummarize(_ context.Context, taskID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelCalls++
	f.cancelledID = taskID
	return f.cancelErr
}

func (f *fakeAPI) counts() (start, status, cancel int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.startCalls, f.statusCalls, f.cancelCalls
}

func scope() workspace.SummarizeScope {
	return workspace.SummarizeScope{ProjectID: "p1"}
}

func waitForState(t *testing.T, tracker *Tracker, want State) {
	t.Helper()
	require.Eventually(t, func() bool {
		state, _ := tracker.Status()
		return state == want
	}, 2*time.Second, 5*time.Millisecond, "tracker never reached %s", want)
}

func TestStart_PollsUntilCompleted(t *testing.T) {
	api := &fakeAPI{statusQueue: []*workspace.SummarizeTask{
		{TaskID: "task-1", Status: workspace.TaskProcessing, Detail: "chunk 1/3"},
		{TaskID: "task-1", Status: workspace.TaskProcessing, Detail: "chunk 2/3"},
		{TaskID: "task-1", Status: workspace.TaskCompleted, ResultURL: "/documents/sum-1"},
	}}

	var mu sync.Mutex
	var results []workspace.SummarizeResult
	tracker := NewTracker(api, 10*time.Millisecond, func(r workspace.SummarizeResult) {
		mu.Lock()
		results = append(results, r)
		mu.Unlock()
	}, testLogger())
	defer tracker.Close()

	require.NoError(t, tracker.Start(context.Background(), scope()))
	waitForState(t, tracker, StateCompleted)

	assert.Equal(t, "/documents/sum-1", tracker.Result())

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(results) == 1
	}, time.Second, 5*time.Millisecond)
	mu.Lock()
	assert.Equal(t, "task-1", results[0].TaskID)
	mu.Unlock()

	// Loop stopped: no further status calls after the terminal poll.
	_, after, _ := api.counts()
	time.Sleep(50 * time.Millisecond)
	_, later, _ := api.counts()
	assert.Equal(t, after, later, "polling must stop at a terminal status")
}

func TestStart_SingleFlight(t *testing.T) {
	api := &fakeAPI{}
	tracker := NewTracker(api, 10*time.Millisecond, nil, testLogger())
	defer tracker.Close()

	require.NoError(t, tracker.Start(context.Background(), scope()))
	err := tracker.Start(context.Background(), scope())
	assert.ErrorIs(t, err, domain.ErrTaskActive)

	starts, _, _ := api.counts()
	assert.Equal(t, 1, starts, "second start must not create a second job")
}

func TestStart_RestartAfterTerminal(t *testing.T) {
	api := &fakeAPI{statusQueue: []*workspace.SummarizeTask{
		{TaskID: "task-1", Status: workspace.TaskCompleted, ResultURL: "/documents/sum-1"},
	}}
	tracker := NewTracker(api, 10*time.Millisecond, nil, testLogger())
	defer tracker.Close()

	require.NoError(t, tracker.Start(context.Background(), scope()))
	waitForState(t, tracker, StateCompleted)

	// A finished tracker accepts a new job and clears the old result.
	api.mu.Lock()
	api.statusQueue = []*workspace.SummarizeTask{
		{TaskID: "task-1", Status: workspace.TaskProcessing},
	}
	api.mu.Unlock()

	require.NoError(t, tracker.Start(context.Background(), scope()))
	state, _ := tracker.Status()
	assert.Equal(t, StatePolling, state)
	assert.Empty(t, tracker.Result())
}

func TestStart_CreateFailureErrors(t *testing.T) {
	api := &fakeAPI{startErr: errors.New("server unavailable")}
	tracker := NewTracker(api, 10*time.Millisecond, nil, testLogger())
	defer tracker.Close()

	err := tracker.Start(context.Background(), scope())
	require.Error(t, err)

	state, _ := tracker.Status()
	assert.Equal(t, StateErrored, state)
	assert.Contains(t, tracker.ErrorMessage(), "server unavailable")
}

func TestPoll_ErrorStatusStopsPolling(t *testing.T) {
	api := &fakeAPI{statusQueue: []*workspace.SummarizeTask{
		{TaskID: "task-1", Status: workspace.TaskError, ErrorMessage: "model overloaded"},
	}}
	tracker := NewTracker(api, 10*time.Millisecond, nil, testLogger())
	defer tracker.Close()

	require.NoError(t, tracker.Start(context.Background(), scope()))
	waitForState(t, tracker, StateErrored)
	assert.Equal(t, "model overloaded", tracker.ErrorMessage())
}

func TestPoll_TransportFailureErrors(t *testing.T) {
	api := &fakeAPI{statusErr: errors.New("connection refused")}
	tracker := NewTracker(api, 10*time.Millisecond, nil, testLogger())
	defer tracker.Close()

	require.NoError(t, tracker.Start(context.Background(), scope()))
	waitForState(t, tracker, StateErrored)

	_, after, _ := api.counts()
	time.Sleep(50 * time.Millisecond)
	_, later, _ := api.counts()
	assert.Equal(t, after, later, "polling must stop on a failed status check")
}

func TestCancel_StopsPollingAndNotifiesServer(t *testing.T) {
	api := &fakeAPI{}
	tracker := NewTracker(api, 10*time.Millisecond, nil, testLogger())
	defer tracker.Close()

	require.NoError(t, tracker.Start(context.Background(), scope()))
	tracker.Cancel(context.Background())

	state, _ := tracker.Status()
	assert.Equal(t, StateCancelled, state)

	api.mu.Lock()
	assert.Equal(t, "task-1", api.cancelledID)
	api.mu.Unlock()

	_, after, _ := api.counts()
	time.Sleep(50 * time.Millisecond)
	_, later, cancels := api.counts()
	assert.Equal(t, after, later, "no polls after cancel")
	assert.Equal(t, 1, cancels)
}

func TestCancel_Idempotent(t *testing.T) {
	api := &fakeAPI{}
	tracker := NewTracker(api, 10*time.Millisecond, nil, testLogger())
	defer tracker.Close()

	require.NoError(t, tracker.Start(context.Background(), scope()))
	tracker.Cancel(context.Background())
	tracker.Cancel(context.Background())
	tracker.Cancel(context.Background())

	_, _, cancels := api.counts()
	assert.Equal(t, 1, cancels, "repeat cancels must not re-notify the server")

	state, _ := tracker.Status()
	assert.Equal(t, StateCancelled, state)
}

func TestCancel_NoOpWhenIdleOrTerminal(t *testing.T) {
	api := &fakeAPI{statusQueue: []*workspace.SummarizeTask{
		{TaskID: "task-1", Status: workspace.TaskCompleted, ResultURL: "/documents/sum-1"},
	}}
	tracker := NewTracker(api, 10*time.Millisecond, nil, testLogger())
	defer tracker.Close()

	// Idle: nothing to cancel.
	tracker.Cancel(context.Background())
	_, _, cancels := api.counts()
	assert.Zero(t, cancels)

	require.NoError(t, tracker.Start(context.Background(), scope()))
	waitForState(t, tracker, StateCompleted)

	// Completed stays completed.
	tracker.Cancel(context.Background())
	state, _ := tracker.Status()
	assert.Equal(t, StateCompleted, state)
	_, _, cancels = api.counts()
	assert.Zero(t, cancels)
}

func TestCancel_LocalStateWinsWhenRemoteCancelFails(t *testing.T) {
	api := &fakeAPI{cancelErr: errors.New("gateway timeout")}
	tracker := NewTracker(api, 10*time.Millisecond, nil, testLogger())
	defer tracker.Close()

	require.NoError(t, tracker.Start(context.Background(), scope()))
	tracker.Cancel(context.Background())

	state, _ := tracker.Status()
	assert.Equal(t, StateCancelled, state)

	_, after, _ := api.counts()
	time.Sleep(50 * time.Millisecond)
	_, later, _ := api.counts()
	assert.Equal(t, after, later, "timer stops even when the remote cancel fails")
}

func TestPoll_RemoteCancellationObserved(t *testing.T) {
	api := &fakeAPI{statusQueue: []*workspace.SummarizeTask{
		{TaskID: "task-1", Status: workspace.TaskCancelled},
	}}
	tracker := NewTracker(api, 10*time.Millisecond, nil, testLogger())
	defer tracker.Close()

	require.NoError(t, tracker.Start(context.Background(), scope()))
	waitForState(t, tracker, StateCancelled)
}

func TestClose_StopsWithoutRemoteCancel(t *testing.T) {
	api := &fakeAPI{}
	tracker := NewTracker(api, 10*time.Millisecond, nil, testLogger())

	require.NoError(t, tracker.Start(context.Background(), scope()))
	tracker.Close()

	_, after, cancels := api.counts()
	time.Sleep(50 * time.Millisecond)
	_, later, _ := api.counts()
	assert.Equal(t, after, later)
	assert.Zero(t, cancels, "dispose never cancels the server-side job")
}
