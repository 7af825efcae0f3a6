package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"quill/internal/domain"
	"quill/internal/domain/models/workspace"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, "test-token", time.Second, testLogger())
}

func TestRequestHeaders(t *testing.T) {
	var gotAuth, gotRequestID string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		_ = json.NewEncoder(w).Encode([]workspace.Project{})
	})

	_, err := client.ListProjects(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.NotEmpty(t, gotRequestID, "every request carries a tracing id")
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		status int
		detail string
		want   error
	}{
		{http.StatusUnauthorized, "token expired", domain.ErrSessionExpired},
		{http.StatusForbidden, "not your project", domain.ErrForbidden},
		{http.StatusNotFound, "project not found", domain.ErrNotFound},
		{http.StatusConflict, "name taken", domain.ErrConflict},
		{http.StatusUnprocessableEntity, "name too long", domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_ = json.NewEncoder(w).Encode(map[string]string{"detail": tt.detail})
			})

			_, err := client.GetProject(context.Background(), "p1")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var apiErr *domain.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.detail, apiErr.Detail, "problem detail must surface")
		})
	}
}

func TestErrorClassification_NonJSONBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "upstream down")
	})

	_, err := client.ListProjects(context.Background())
	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "upstream down", apiErr.Detail)
	assert.True(t, domain.Transient(err))
}

func TestLogin_InstallsToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/token", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "password", r.PostForm.Get("grant_type"))
		assert.Equal(t, "alice", r.PostForm.Get("username"))
		assert.Equal(t, "hunter2", r.PostForm.Get("password"))
		_ = json.NewEncoder(w).Encode(AuthResponse{AccessToken: "fresh-token", TokenType: "bearer"})
	})
	client.SetToken("")

	auth, err := client.Login(context.Background(), "alice", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", auth.AccessToken)
	assert.Equal(t, "fresh-token", client.token)
}

func TestCheckToken(t *testing.T) {
	signingKey := []byte("irrelevant-for-unverified-parse")

	signedToken := func(exp time.Time) string {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   "alice",
			ExpiresAt: jwt.NewNumericDate(exp),
		})
		s, err := tok.SignedString(signingKey)
		require.NoError(t, err)
		return s
	}

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"empty token", "", domain.ErrSessionExpired},
		{"expired jwt", signedToken(time.Now().Add(-time.Hour)), domain.ErrSessionExpired},
		{"live jwt", signedToken(time.Now().Add(time.Hour)), nil},
		{"opaque token passes through", "not-a-jwt", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient("http://localhost", tt.token, time.Second, testLogger())
			err := client.CheckToken()
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestUploadDocument_Multipart(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/projects/p1/documents", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "f1", r.FormValue("folder_id"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "notes.pdf", header.Filename)
		content, _ := io.ReadAll(file)
		assert.Equal(t, "pdf bytes", string(content))

		_ = json.NewEncoder(w).Encode(workspace.Document{ID: "d1", Name: "notes.pdf"})
	})

	folderID := "f1"
	doc, err := client.UploadDocument(context.Background(), "p1", &folderID, "notes.pdf", strings.NewReader("pdf bytes"))
	require.NoError(t, err)
	assert.Equal(t, "d1", doc.ID)
}

func TestAsk_RequestShape(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/projects/p1/ask", r.URL.Path)

		var req AskRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "what changed?", req.Question)
		require.NotNil(t, req.FolderID)
		assert.Equal(t, "f1", *req.FolderID)
		require.Len(t, req.ContextItems, 1)
		assert.Equal(t, workspace.ItemDocument, req.ContextItems[0].Kind)

		_ = json.NewEncoder(w).Encode(AskResponse{Answer: "the summary", Sources: []string{"d1"}})
	})

	folderID := "f1"
	resp, err := client.Ask(context.Background(), "p1", &AskRequest{
		Question:     "what changed?",
		FolderID:     &folderID,
		ContextItems: []workspace.ItemRef{{ID: "d1", Kind: workspace.ItemDocument}},
	})
	require.NoError(t, err)
	assert.Equal(t, "the summary", resp.Answer)
}

func TestSummarizeLifecycleEndpoints(t *testing.T) {
	var cancelled string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/summarize":
			var scope workspace.SummarizeScope
			require.NoError(t, json.NewDecoder(r.Body).Decode(&scope))
			assert.Equal(t, "p1", scope.ProjectID)
			_ = json.NewEncoder(w).Encode(map[string]string{"task_id": "task-9"})
		case r.Method == http.MethodGet && r.URL.Path == "/summarize/task-9":
			_ = json.NewEncoder(w).Encode(workspace.SummarizeTask{
				Status: workspace.TaskProcessing,
				Detail: "processing chunk 2/5",
			})
		case r.Method == http.MethodPost && r.URL.Path == "/summarize/task-9/cancel":
			cancelled = "task-9"
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})

	ctx := context.Background()
	taskID, err := client.StartSummarize(ctx, workspace.SummarizeScope{ProjectID: "p1"})
	require.NoError(t, err)
	assert.Equal(t, "task-9", taskID)

	task, err := client.SummarizeStatus(ctx, taskID)
	require.NoError(t, err)
	assert.Equal(t, workspace.TaskProcessing, task.Status)
	assert.Equal(t, "task-9", task.TaskID, "task id is filled in when the server omits it")

	require.NoError(t, client.CancelSummarize(ctx, taskID))
	assert.Equal(t, "task-9", cancelled)
}

func TestListTexts_ProjectScope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "p1", r.URL.Query().Get("project_id"))
		_ = json.NewEncoder(w).Encode([]workspace.UserText{{ID: "t1", Title: "note"}})
	})

	texts, err := client.ListTexts(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, texts, 1)
	assert.Equal(t, "t1", texts[0].ID)
}

func TestDeleteProject_NoContent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})

	assert.NoError(t, client.DeleteProject(context.Background(), "p1"))
}
