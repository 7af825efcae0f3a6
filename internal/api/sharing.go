package api

import (
	"context"
	"fmt"
	"net/http"

	"quill/internal/domain/models/workspace"
)

type shareRequest struct {
	Email string `json:"email"`
}

// ShareProject grants a user access to a project by email.
func (c *Client) ShareProject(ctx context.Context, projectID, email string) error {
	path := fmt.Sprintf("/projects/%s/share", projectID)
	if err := c.doJSON(ctx, http.MethodPost, path, &shareRequest{Email: email}, nil); err != nil {
		return err
	}
	c.logger.Info("project shared", "project_id", projectID, "email", email)
	return nil
}

// UnshareProject revokes a user's access to a project.
func (c *Client) UnshareProject(ctx context.Context, projectID, userID string) error {
	path := fmt.Sprintf("/projects/%s/share/%s", projectID, userID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

// ListProjectShares returns the users a project is shared with.
func (c *Client) ListProjectShares(ctx context.Context, projectID string) ([]workspace.SharedUser, error) {
	var users []workspace.SharedUser
	path := fmt.Sprintf("/projects/%s/shared-users", projectID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ShareText grants a user access to a text by email.
func (c *Client) ShareText(ctx context.Context, textID, email string) error {
	path := fmt.Sprintf("/texts/%s/share", textID)
	if err := c.doJSON(ctx, http.MethodPost, path, &shareRequest{Email: email}, nil); err != nil {
		return err
	}
	c.logger.Info("text shared", "text_id", textID, "email", email)
	return nil
}

// UnshareText revokes a user's access to a text.
func (c *Client) UnshareText(ctx context.Context, textID, userID string) error {
	path := fmt.Sprintf("/texts/%s/share/%s", textID, userID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

// ListTextShares returns the users a text is shared with.
func (c *Client) ListTextShares(ctx context.Context, textID string) ([]workspace.SharedUser, error) {
	var users []workspace.SharedUser
	path := fmt.Sprintf("/texts/%s/shared-users", textID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}
