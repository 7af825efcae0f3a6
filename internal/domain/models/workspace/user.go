package workspace

import (
	"time"
)

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// SharedUser is a user a project or text has been shared with.
type SharedUser struct {
	ID       string    `json:"id"`
	Email    string    `json:"email"`
	SharedAt time.Time `json:"shared_at"`
}
