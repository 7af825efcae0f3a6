package config

import "time"

const (
	// MaxProjectNameLength is the maximum length for project names.
	// Kept short for reasonable UX (names should be short and descriptive).
	MaxProjectNameLength = 255

	// MaxTextTitleLength is the maximum length for text titles.
	MaxTextTitleLength = 255

	// MaxFolderNameLength is the maximum length for folder names.
	// Same as text titles for consistency.
	MaxFolderNameLength = 255

	// MaxUploadBytes is the client-side ceiling for document uploads.
	// Larger files are rejected before any network call.
	MaxUploadBytes = 50 << 20 // 50 MiB

	// DefaultAutoSaveDelay is the debounce window for text edits: at most one
	// persist per second of continuous editing, exactly one shortly after
	// editing stops.
	DefaultAutoSaveDelay = 1000 * time.Millisecond

	// DefaultPollInterval is the summarization status polling cadence.
	DefaultPollInterval = 2000 * time.Millisecond

	// DefaultHTTPTimeout bounds every Workspace API call.
	DefaultHTTPTimeout = 30 * time.Second
)

// AllowedUploadExtensions is the upload allow-list, matched case-insensitively
// against the file name suffix.
var AllowedUploadExtensions = []string{".pdf", ".doc", ".docx", ".txt", ".md"}
