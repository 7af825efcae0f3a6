package api

import (
	"context"
	"fmt"
	"net/http"

	"quill/internal/domain/models/workspace"
)

// StartSummarize starts a server-side summarization job over a project or
// folder and returns the task id to poll.
func (c *Client) StartSummarize(ctx context.Context, scope workspace.SummarizeScope) (string, error) {
	var resp struct {
		TaskID string `json:"task_id"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/summarize", scope, &resp); err != nil {
		return "", err
	}
	c.logger.Info("summarization started",
		"task_id", resp.TaskID,
		"project_id", scope.ProjectID,
		"folder_id", scope.FolderID,
	)
	return resp.TaskID, nil
}

// SummarizeStatus polls a summarization job by task id.
func (c *Client) SummarizeStatus(ctx context.Context, taskID string) (*workspace.SummarizeTask, error) {
	var task workspace.SummarizeTask
	path := fmt.Sprintf("/summarize/%s", taskID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &task); err != nil {
		return nil, err
	}
	if task.TaskID == "" {
		task.TaskID = taskID
	}
	return &task, nil
}

// CancelSummarize asks the server to cancel a summarization job. Callers
// treat this as best-effort: local tracking stops regardless of the outcome.
func (c *Client) CancelSummarize(ctx context.Context, taskID string) error {
	path := fmt.Sprintf("/summarize/%s/cancel", taskID)
	return c.doJSON(ctx, http.MethodPost, path, nil, nil)
}
