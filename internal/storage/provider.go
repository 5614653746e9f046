// Package storage defines the file-system abstraction under the notes directory.
package storage

import "time"

// Entry is a single Markdown file found by List.
type Entry struct {
	Name    string // path relative to the root
	ModTime time.Time
}

// Provider is the interface for note file operations. All paths are
// relative to the provider root.
type Provider interface {
	// List returns every .md file under the root, most recently modified first.
	List() ([]Entry, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write atomically writes content to path.
	Write(path string, content []byte) error
	// Delete removes the file at path.
	Delete(path string) error
}
