package workspace

import (
	"time"
)

type Project struct {
	ID          string       `json:"id"`
	OwnerID     string       `json:"owner_id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	SharedUsers []SharedUser `json:"shared_users,omitempty"`
	IsShared    bool         `json:"is_shared,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
