package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for error classification - use with errors.Is()
var (
	// ErrValidation indicates invalid input rejected before any network call.
	ErrValidation = errors.New("validation failed")

	// ErrSessionExpired indicates the bearer token was rejected (HTTP 401).
	// The caller should redirect to login and discard in-memory session state;
	// the operation is never retried.
	ErrSessionExpired = errors.New("session expired")

	// ErrForbidden indicates the server refused the operation (HTTP 403).
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound indicates the resource no longer exists (HTTP 404).
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a resource conflict (HTTP 409).
	ErrConflict = errors.New("already exists")

	// ErrTaskActive rejects starting a summarization while one is polling.
	ErrTaskActive = errors.New("a summarization task is already active")

	// ErrNoSelection indicates an operation that requires an open text or a
	// selected project was invoked without one.
	ErrNoSelection = errors.New("nothing selected")
)

// APIError carries the problem detail returned by the Workspace API for a
// failed request. It wraps the matching sentinel so callers can classify with
// errors.Is without inspecting status codes.
type APIError struct {
	StatusCode int
	Detail     string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("workspace api: %s (status %d)", e.Detail, e.StatusCode)
	}
	return fmt.Sprintf("workspace api: status %d", e.StatusCode)
}

// Is allows errors.Is() to match APIErrors against the sentinel errors.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrSessionExpired:
		return e.StatusCode == http.StatusUnauthorized
	case ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrConflict:
		return e.StatusCode == http.StatusConflict
	case ErrValidation:
		return e.StatusCode >= 400 && e.StatusCode < 500 &&
			e.StatusCode != http.StatusUnauthorized &&
			e.StatusCode != http.StatusForbidden &&
			e.StatusCode != http.StatusNotFound &&
			e.StatusCode != http.StatusConflict
	}
	return false
}

// Transient reports whether an error is worth retrying on the next cycle
// (auto-save debounce, polling tick). Authorization and client errors are
// never transient.
func Transient(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	// Transport failures carry no status code.
	return !errors.Is(err, ErrValidation)
}
