package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quill/internal/domain/models/workspace"
)

// TestSummarizeCommand_InterruptCancelsRemoteTask exercises the full command
// path: an interrupt cancels the root context, and the command must still
// reach the server's cancel endpoint before exiting cleanly.
func TestSummarizeCommand_InterruptCancelsRemoteTask(t *testing.T) {
	var (
		once      sync.Once
		polled    = make(chan struct{})
		cancelled = make(chan struct{}, 1)
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/projects/p1":
			json.NewEncoder(w).Encode(workspace.Project{ID: "p1", Name: "demo"})
		case r.Method == http.MethodGet && r.URL.Path == "/projects/p1/folders":
			json.NewEncoder(w).Encode([]workspace.Folder{})
		case r.Method == http.MethodGet && r.URL.Path == "/projects/p1/documents":
			json.NewEncoder(w).Encode([]workspace.Document{})
		case r.Method == http.MethodGet && r.URL.Path == "/texts":
			json.NewEncoder(w).Encode([]workspace.UserText{})
		case r.Method == http.MethodPost && r.URL.Path == "/summarize":
			json.NewEncoder(w).Encode(map[string]string{"task_id": "task-1"})
		case r.Method == http.MethodGet && r.URL.Path == "/summarize/task-1":
			once.Do(func() { close(polled) })
			json.NewEncoder(w).Encode(workspace.SummarizeTask{
				TaskID: "task-1",
				Status: workspace.TaskProcessing,
			})
		case r.Method == http.MethodPost && r.URL.Path == "/summarize/task-1/cancel":
			select {
			case cancelled <- struct{}{}:
			default:
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("poll_interval: 25ms\n"), 0o600))
	t.Setenv("QUILL_CONFIG", cfgPath)
	t.Setenv("QUILL_API_URL", server.URL)
	t.Setenv("QUILL_TOKEN", "test-token")
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("DEBUG", "false")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cmd := newRootCommand()
	cmd.SetArgs([]string{"summarize", "p1"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	select {
	case <-polled:
	case <-time.After(5 * time.Second):
		t.Fatal("task was never polled")
	}
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("command did not exit after interrupt")
	}

	select {
	case <-cancelled:
	case <-time.After(5 * time.Second):
		t.Fatal("remote cancel was never issued")
	}
}
