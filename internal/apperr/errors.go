// Package apperr defines the sentinel error kinds shared across Numen.
// Callers classify failures with errors.Is and attach context with %w wrapping.
package apperr

import "errors"

var (
	// ErrNoteNotFound means the note identifier resolved to no file.
	ErrNoteNotFound = errors.New("note not found")

	// ErrSectionNotFound means the requested section ordinal is outside
	// the [1, section count] range of the note body.
	ErrSectionNotFound = errors.New("section not found")

	// ErrProviderUnavailable means no configured AI backend could service
	// the request (missing credential, unreachable local runtime).
	ErrProviderUnavailable = errors.New("no provider available")

	// ErrProviderFailure is the normalized form of any upstream provider
	// error: timeout, rate limit, malformed response.
	ErrProviderFailure = errors.New("provider failure")

	// ErrVersionNotFound means the requested history index does not exist.
	ErrVersionNotFound = errors.New("version not found")

	// ErrHistoryWriteFailure means a snapshot could not be persisted.
	// A transform must never write back after this.
	ErrHistoryWriteFailure = errors.New("history write failure")

	// ErrStorageFailure means the underlying read or write of a note body failed.
	ErrStorageFailure = errors.New("storage failure")
)
