package workspace

import (
	"time"
)

// Document is a binary file stored server-side. Its content is immutable
// from the client's perspective; only metadata and folder placement change.
type Document struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	FolderID    *string   `json:"folder_id"` // NULL = project root
	Name        string    `json:"name"`
	StoragePath string    `json:"file_path"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
