package workspace

import (
	"time"
)

// UserText is a rich-text note. Content is mutable and subject to auto-save.
type UserText struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Content     string       `json:"content"`
	FolderID    *string      `json:"folder_id"` // NULL = project root
	ProjectIDs  []string     `json:"project_ids"`
	SharedUsers []SharedUser `json:"shared_users,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
