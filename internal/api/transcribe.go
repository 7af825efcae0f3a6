package api

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// TranscribeResponse carries the transcript of an uploaded audio clip.
type TranscribeResponse struct {
	Text string `json:"text"`
}

// Transcribe uploads a recorded audio clip and returns the transcribed text,
// optionally tied to an existing text id so the server can associate the
// clip. Merging the transcript into the editor is the session's job.
func (c *Client) Transcribe(ctx context.Context, textID *string, filename string, audio io.Reader) (*TranscribeResponse, error) {
	body, contentType, err := multipartBody(func(w *multipart.Writer) error {
		if textID != nil {
			if err := w.WriteField("text_id", *textID); err != nil {
				return err
			}
		}
		part, err := w.CreateFormFile("file", filename)
		if err != nil {
			return err
		}
		_, err = io.Copy(part, audio)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build transcription body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/transcribe", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	var resp TranscribeResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	c.logger.Debug("audio transcribed", "text_id", textID, "chars", len(resp.Text))
	return &resp, nil
}
