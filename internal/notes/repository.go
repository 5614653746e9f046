// Package notes implements the note repository: creation, resolution,
// listing, tagging, and body write-back for Markdown notes with YAML
// frontmatter stored under a single directory.
package notes

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/gosimple/slug"

	"github.com/aguiarsc/numen/internal/apperr"
	"github.com/aguiarsc/numen/internal/parser"
	"github.com/aguiarsc/numen/internal/storage"
)

// Note is the full representation of a note. ID is the filename stem and is
// stable once assigned.
type Note struct {
	ID          string
	Title       string
	Date        time.Time
	Tags        []string
	Body        string
	Frontmatter map[string]interface{}
}

// Repository coordinates note file operations over a storage provider.
type Repository struct {
	store storage.Provider
}

// NewRepository creates a repository over the given provider.
func NewRepository(store storage.Provider) *Repository {
	return &Repository{store: store}
}

// NewID derives a filesystem-safe identifier from a title, prefixed with the
// creation date: 2025-03-01-my-note-title.
func NewID(title string, now time.Time) string {
	s := slug.Make(title)
	if s == "" {
		s = "note"
	}
	return now.Format("2006-01-02") + "-" + s
}

// Create writes a new note with frontmatter (title, date, empty tag list)
// and the given body, returning it. Fails if a note with the derived
// identifier already exists.
func (r *Repository) Create(title, body string, now time.Time) (*Note, error) {
	id := NewID(title, now)
	if _, err := r.store.Read(id + ".md"); err == nil {
		return nil, fmt.Errorf("notes: %s already exists", id)
	}
	fm := map[string]interface{}{
		"title": title,
		"date":  now.Format(time.RFC3339),
		"tags":  []interface{}{},
	}
	data, err := parser.Compose(fm, body)
	if err != nil {
		return nil, err
	}
	if err := r.store.Write(id+".md", data); err != nil {
		return nil, fmt.Errorf("notes: create %s: %w: %v", id, apperr.ErrStorageFailure, err)
	}
	return &Note{ID: id, Title: title, Date: now, Tags: []string{}, Body: body, Frontmatter: fm}, nil
}

// Resolve maps a user-supplied identifier to a stored note id. It tries the
// exact file name, then the name with .md appended, then falls back to the
// most recently modified note whose name contains the identifier.
func (r *Repository) Resolve(id string) (string, error) {
	name := strings.TrimSuffix(id, ".md")
	if _, err := r.store.Read(name + ".md"); err == nil {
		return name, nil
	}
	entries, err := r.store.List()
	if err != nil {
		return "", fmt.Errorf("notes: resolve %s: %w: %v", id, apperr.ErrStorageFailure, err)
	}
	// Entries come back newest first, so the first match wins.
	for _, e := range entries {
		stem := strings.TrimSuffix(e.Name, ".md")
		if strings.Contains(stem, name) {
			return stem, nil
		}
	}
	return "", fmt.Errorf("note %q: %w", id, apperr.ErrNoteNotFound)
}

// Get reads and parses a note by identifier (resolved first).
func (r *Repository) Get(id string) (*Note, error) {
	stem, err := r.Resolve(id)
	if err != nil {
		return nil, err
	}
	data, err := r.store.Read(stem + ".md")
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("note %q: %w", id, apperr.ErrNoteNotFound)
		}
		return nil, fmt.Errorf("notes: read %s: %w: %v", stem, apperr.ErrStorageFailure, err)
	}
	return buildNote(stem, data)
}

// WriteBody replaces the body of an existing note, preserving its
// frontmatter header byte layout via parse → compose.
func (r *Repository) WriteBody(id, body string) error {
	stem, err := r.Resolve(id)
	if err != nil {
		return err
	}
	data, err := r.store.Read(stem + ".md")
	if err != nil {
		return fmt.Errorf("notes: read %s: %w: %v", stem, apperr.ErrStorageFailure, err)
	}
	res, err := parser.Parse(data)
	if err != nil {
		return err
	}
	out, err := parser.Compose(res.Frontmatter, body)
	if err != nil {
		return err
	}
	if err := r.store.Write(stem+".md", out); err != nil {
		return fmt.Errorf("notes: write %s: %w: %v", stem, apperr.ErrStorageFailure, err)
	}
	return nil
}

// List returns all notes, newest first, optionally filtered by tag.
func (r *Repository) List(tag string) ([]*Note, error) {
	entries, err := r.store.List()
	if err != nil {
		return nil, fmt.Errorf("notes: list: %w: %v", apperr.ErrStorageFailure, err)
	}
	var out []*Note
	for _, e := range entries {
		data, err := r.store.Read(e.Name)
		if err != nil {
			continue
		}
		n, err := buildNote(strings.TrimSuffix(e.Name, ".md"), data)
		if err != nil {
			continue
		}
		if tag != "" && !hasTag(n.Tags, tag) {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

// Search returns notes whose raw content contains the query,
// case-insensitively, newest first.
func (r *Repository) Search(query string) ([]*Note, error) {
	entries, err := r.store.List()
	if err != nil {
		return nil, fmt.Errorf("notes: search: %w: %v", apperr.ErrStorageFailure, err)
	}
	needle := strings.ToLower(query)
	var out []*Note
	for _, e := range entries {
		data, err := r.store.Read(e.Name)
		if err != nil {
			continue
		}
		if !strings.Contains(strings.ToLower(string(data)), needle) {
			continue
		}
		n, err := buildNote(strings.TrimSuffix(e.Name, ".md"), data)
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

// UpdateTags adds and removes tags on a note. Membership is unique and the
// stored list is kept sorted.
func (r *Repository) UpdateTags(id string, add, remove []string) (*Note, error) {
	n, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(n.Tags))
	for _, t := range n.Tags {
		set[t] = struct{}{}
	}
	for _, t := range add {
		set[t] = struct{}{}
	}
	for _, t := range remove {
		delete(set, t)
	}
	tags := make([]string, 0, len(set))
	for t := range set {
		tags = append(tags, t)
	}
	sort.Strings(tags)

	if n.Frontmatter == nil {
		n.Frontmatter = map[string]interface{}{}
	}
	list := make([]interface{}, len(tags))
	for i, t := range tags {
		list[i] = t
	}
	n.Frontmatter["tags"] = list

	data, err := parser.Compose(n.Frontmatter, n.Body)
	if err != nil {
		return nil, err
	}
	if err := r.store.Write(n.ID+".md", data); err != nil {
		return nil, fmt.Errorf("notes: write %s: %w: %v", n.ID, apperr.ErrStorageFailure, err)
	}
	n.Tags = tags
	return n, nil
}

// Delete removes a note file.
func (r *Repository) Delete(id string) error {
	stem, err := r.Resolve(id)
	if err != nil {
		return err
	}
	if err := r.store.Delete(stem + ".md"); err != nil {
		return fmt.Errorf("notes: delete %s: %w: %v", stem, apperr.ErrStorageFailure, err)
	}
	return nil
}

func buildNote(stem string, data []byte) (*Note, error) {
	res, err := parser.Parse(data)
	if err != nil {
		return nil, err
	}
	title := res.Title
	if title == "" {
		title = stem
	}
	return &Note{
		ID:          stem,
		Title:       title,
		Date:        res.Date,
		Tags:        res.Tags,
		Body:        res.Body,
		Frontmatter: res.Frontmatter,
	}, nil
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
