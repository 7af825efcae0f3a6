package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"quill/internal/domain/models/workspace"
)

// TextRequest is the payload for creating or updating a text.
type TextRequest struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	ProjectIDs []string `json:"project_ids"`
	FolderID   *string  `json:"folder_id,omitempty"`
}

// CreateText creates a new text.
func (c *Client) CreateText(ctx context.Context, req *TextRequest) (*workspace.UserText, error) {
	var text workspace.UserText
	if err := c.doJSON(ctx, http.MethodPost, "/texts", req, &text); err != nil {
		return nil, err
	}
	c.logger.Info("text created", "id", text.ID, "title", text.Title)
	return &text, nil
}

// UpdateText updates a text and returns the server's canonical record, which
// callers must adopt wholesale (timestamps and derived fields included).
func (c *Client) UpdateText(ctx context.Context, textID string, req *TextRequest) (*workspace.UserText, error) {
	var text workspace.UserText
	path := fmt.Sprintf("/texts/%s", textID)
	if err := c.doJSON(ctx, http.MethodPut, path, req, &text); err != nil {
		return nil, err
	}
	return &text, nil
}

// ListTexts returns texts, optionally scoped to a project.
func (c *Client) ListTexts(ctx context.Context, projectID string) ([]workspace.UserText, error) {
	path := "/texts"
	if projectID != "" {
		path += "?project_id=" + url.QueryEscape(projectID)
	}
	var texts []workspace.UserText
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &texts); err != nil {
		return nil, err
	}
	return texts, nil
}

// DeleteText deletes a text.
func (c *Client) DeleteText(ctx context.Context, textID string) error {
	path := fmt.Sprintf("/texts/%s", textID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}
