// Package upload gatekeeps files client-side before they reach the
// Workspace API: a rejected file never causes a network call.
package upload

import (
	"fmt"
	"path/filepath"
	"strings"

	"quill/internal/config"
	"quill/internal/domain"
)

// Reason discriminates why a file was rejected.
type Reason string

const (
	ReasonExtension Reason = "extension"
	ReasonSize      Reason = "size"
)

// RejectedError reports the first violated rule. Extension is checked before
// size, so a huge .exe is rejected for its extension.
type RejectedError struct {
	Filename string
	Reason   Reason
	Detail   string
}

// Error implements the error interface
func (e *RejectedError) Error() string {
	return fmt.Sprintf("upload rejected: %s: %s", e.Filename, e.Detail)
}

// Is allows errors.Is() to match against domain.ErrValidation.
func (e *RejectedError) Is(target error) bool {
	return target == domain.ErrValidation
}

// Validator applies the extension allow-list and size ceiling.
type Validator struct {
	allowed  []string
	maxBytes int64
}

// NewValidator creates a validator with the default limits.
func NewValidator() *Validator {
	return &Validator{
		allowed:  config.AllowedUploadExtensions,
		maxBytes: config.MaxUploadBytes,
	}
}

// Validate checks a file name and size. It returns nil when the file may be
// handed to the network layer, or a *RejectedError naming the first violated
// rule.
func (v *Validator) Validate(filename string, size int64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !v.extensionAllowed(ext) {
		return &RejectedError{
			Filename: filename,
			Reason:   ReasonExtension,
			Detail:   fmt.Sprintf("file type %q is not supported (allowed: %s)", ext, strings.Join(v.allowed, ", ")),
		}
	}
	if size > v.maxBytes {
		return &RejectedError{
			Filename: filename,
			Reason:   ReasonSize,
			Detail:   fmt.Sprintf("file is %d bytes, limit is %d", size, v.maxBytes),
		}
	}
	return nil
}

func (v *Validator) extensionAllowed(ext string) bool {
	for _, allowed := range v.allowed {
		if ext == allowed {
			return true
		}
	}
	return false
}
