package api

import (
	"context"
	"fmt"
	"net/http"

	"quill/internal/domain/models/workspace"
)

// AskRequest scopes a natural-language question to a project or one of its
// folders, optionally narrowed to explicitly selected context items.
type AskRequest struct {
	Question     string              `json:"question"`
	FolderID     *string             `json:"folder_id,omitempty"`
	ContextItems []workspace.ItemRef `json:"context_items,omitempty"`
}

// AskResponse carries the answer string.
type AskResponse struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources,omitempty"`
}

// Ask submits a question scoped to a project.
func (c *Client) Ask(ctx context.Context, projectID string, req *AskRequest) (*AskResponse, error) {
	var resp AskResponse
	path := fmt.Sprintf("/projects/%s/ask", projectID)
	if err := c.doJSON(ctx, http.MethodPost, path, req, &resp); err != nil {
		return nil, err
	}
	c.logger.Debug("question answered",
		"project_id", projectID,
		"context_items", len(req.ContextItems),
	)
	return &resp, nil
}
