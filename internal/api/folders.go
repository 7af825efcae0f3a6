package api

import (
	"context"
	"fmt"
	"net/http"

	"quill/internal/domain/models/workspace"
)

// CreateFolderRequest is the payload for creating a folder.
type CreateFolderRequest struct {
	Name           string  `json:"name"`
	ParentFolderID *string `json:"parent_folder_id,omitempty"`
}

// UpdateFolderRequest is the payload for renaming or moving a folder.
// ParentFolderID null moves the folder to the project root.
type UpdateFolderRequest struct {
	Name           string  `json:"name"`
	ParentFolderID *string `json:"parent_folder_id"`
}

// CreateFolder creates a folder inside a project.
func (c *Client) CreateFolder(ctx context.Context, projectID string, req *CreateFolderRequest) (*workspace.Folder, error) {
	var folder workspace.Folder
	path := fmt.Sprintf("/projects/%s/folders", projectID)
	if err := c.doJSON(ctx, http.MethodPost, path, req, &folder); err != nil {
		return nil, err
	}
	c.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"project_id", projectID,
		"parent_folder_id", folder.ParentID,
	)
	return &folder, nil
}

// ListFolders returns the flat folder list for a project. Nesting is a
// client-side concern (see session.BuildTree).
func (c *Client) ListFolders(ctx context.Context, projectID string) ([]workspace.Folder, error) {
	var folders []workspace.Folder
	path := fmt.Sprintf("/projects/%s/folders", projectID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &folders); err != nil {
		return nil, err
	}
	return folders, nil
}

// UpdateFolder renames or moves a folder.
func (c *Client) UpdateFolder(ctx context.Context, projectID, folderID string, req *UpdateFolderRequest) (*workspace.Folder, error) {
	var folder workspace.Folder
	path := fmt.Sprintf("/projects/%s/folders/%s", projectID, folderID)
	if err := c.doJSON(ctx, http.MethodPut, path, req, &folder); err != nil {
		return nil, err
	}
	return &folder, nil
}

// DeleteFolder deletes a folder and its contents.
func (c *Client) DeleteFolder(ctx context.Context, projectID, folderID string) error {
	path := fmt.Sprintf("/projects/%s/folders/%s", projectID, folderID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}
