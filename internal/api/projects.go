package api

import (
	"context"
	"fmt"
	"net/http"

	"quill/internal/domain/models/workspace"
)

// CreateProjectRequest is the payload for creating a project.
type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateProjectRequest is the payload for renaming/redescribing a project.
type UpdateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateProject creates a new project owned by the authenticated user.
func (c *Client) CreateProject(ctx context.Context, req *CreateProjectRequest) (*workspace.Project, error) {
	var project workspace.Project
	if err := c.doJSON(ctx, http.MethodPost, "/projects", req, &project); err != nil {
		return nil, err
	}
	c.logger.Info("project created", "id", project.ID, "name", project.Name)
	return &project, nil
}

// ListProjects returns the projects owned by or shared with the user.
func (c *Client) ListProjects(ctx context.Context) ([]workspace.Project, error) {
	var projects []workspace.Project
	if err := c.doJSON(ctx, http.MethodGet, "/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProject fetches a single project.
func (c *Client) GetProject(ctx context.Context, projectID string) (*workspace.Project, error) {
	var project workspace.Project
	path := fmt.Sprintf("/projects/%s", projectID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// UpdateProject updates a project's name and description.
func (c *Client) UpdateProject(ctx context.Context, projectID string, req *UpdateProjectRequest) (*workspace.Project, error) {
	var project workspace.Project
	path := fmt.Sprintf("/projects/%s", projectID)
	if err := c.doJSON(ctx, http.MethodPut, path, req, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// DeleteProject deletes a project. The server cascades to folders, documents
// and texts.
func (c *Client) DeleteProject(ctx context.Context, projectID string) error {
	path := fmt.Sprintf("/projects/%s", projectID)
	if err := c.doJSON(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return err
	}
	c.logger.Info("project deleted", "id", projectID)
	return nil
}
