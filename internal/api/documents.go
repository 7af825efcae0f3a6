package api

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"quill/internal/domain/models/workspace"
)

// UploadDocument uploads a file into a project, optionally into a folder.
// Client-side validation (extension, size) is the caller's responsibility;
// see the upload package.
func (c *Client) UploadDocument(ctx context.Context, projectID string, folderID *string, filename string, content io.Reader) (*workspace.Document, error) {
	body, contentType, err := multipartBody(func(w *multipart.Writer) error {
		if folderID != nil {
			if err := w.WriteField("folder_id", *folderID); err != nil {
				return err
			}
		}
		part, err := w.CreateFormFile("file", filename)
		if err != nil {
			return err
		}
		_, err = io.Copy(part, content)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build upload body: %w", err)
	}

	path := fmt.Sprintf("/projects/%s/documents", projectID)
	req, err := c.newRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	var doc workspace.Document
	if err := c.do(req, &doc); err != nil {
		return nil, err
	}
	c.logger.Info("document uploaded",
		"id", doc.ID,
		"name", doc.Name,
		"project_id", projectID,
		"folder_id", folderID,
	)
	return &doc, nil
}

// ListDocuments returns the flat document list for a project.
func (c *Client) ListDocuments(ctx context.Context, projectID string) ([]workspace.Document, error) {
	var docs []workspace.Document
	path := fmt.Sprintf("/projects/%s/documents", projectID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// DeleteDocument deletes a document from a project.
func (c *Client) DeleteDocument(ctx context.Context, projectID, documentID string) error {
	path := fmt.Sprintf("/projects/%s/documents/%s", projectID, documentID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}
