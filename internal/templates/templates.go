// Package templates manages the note template library: Markdown files with
// frontmatter (title, description) and {{variable}} placeholders in the body.
package templates

import (
	"fmt"
	"strings"
	"time"

	"github.com/aguiarsc/numen/internal/parser"
	"github.com/aguiarsc/numen/internal/storage"
	"github.com/gosimple/slug"
)

// Template is one entry in the library.
type Template struct {
	Name        string
	Title       string
	Description string
	Content     string
}

// Library stores templates as Markdown files under a storage provider.
type Library struct {
	store storage.Provider
}

// NewLibrary creates a library over the given provider.
func NewLibrary(store storage.Provider) *Library {
	return &Library{store: store}
}

// EnsureDefaults materializes every built-in template that does not already
// exist. User edits to existing files are left alone.
func (l *Library) EnsureDefaults() error {
	for name, tpl := range defaults {
		if _, err := l.store.Read(name + ".md"); err == nil {
			continue
		}
		if err := l.write(name, tpl); err != nil {
			return err
		}
	}
	return nil
}

// List returns all templates sorted by the provider's listing order.
func (l *Library) List() ([]Template, error) {
	if err := l.EnsureDefaults(); err != nil {
		return nil, err
	}
	entries, err := l.store.List()
	if err != nil {
		return nil, fmt.Errorf("templates: list: %w", err)
	}
	var out []Template
	for _, e := range entries {
		t, err := l.Get(strings.TrimSuffix(e.Name, ".md"))
		if err != nil {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

// Get reads a template by name.
func (l *Library) Get(name string) (*Template, error) {
	data, err := l.store.Read(name + ".md")
	if err != nil {
		return nil, fmt.Errorf("template %q not found", name)
	}
	res, err := parser.Parse(data)
	if err != nil {
		return nil, err
	}
	t := &Template{Name: name, Content: res.Body, Title: res.Title}
	if d, ok := res.Frontmatter["description"].(string); ok {
		t.Description = d
	}
	return t, nil
}

// Create writes a new template. The name is slugified for the filename.
func (l *Library) Create(name, title, description, content string) (*Template, error) {
	name = slug.Make(name)
	if name == "" {
		return nil, fmt.Errorf("templates: empty name")
	}
	t := Template{Name: name, Title: title, Description: description, Content: content}
	if err := l.write(name, t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Delete removes a template file.
func (l *Library) Delete(name string) error {
	if err := l.store.Delete(name + ".md"); err != nil {
		return fmt.Errorf("templates: delete %s: %w", name, err)
	}
	return nil
}

// IsDefault reports whether name is one of the built-in templates.
func IsDefault(name string) bool {
	_, ok := defaults[name]
	return ok
}

// Reset restores a built-in template to its shipped content.
func (l *Library) Reset(name string) error {
	tpl, ok := defaults[name]
	if !ok {
		return fmt.Errorf("templates: no default template named %q", name)
	}
	return l.write(name, tpl)
}

// Apply renders a template body, substituting {{title}}, {{date}}, {{time}},
// and {{datetime}}.
func (l *Library) Apply(name, title string, now time.Time) (string, error) {
	if err := l.EnsureDefaults(); err != nil {
		return "", err
	}
	t, err := l.Get(name)
	if err != nil {
		return "", err
	}
	vars := map[string]string{
		"title":    title,
		"date":     now.Format("2006-01-02"),
		"time":     now.Format("15:04"),
		"datetime": now.Format("2006-01-02 15:04"),
	}
	content := t.Content
	for key, value := range vars {
		content = strings.ReplaceAll(content, "{{"+key+"}}", value)
	}
	return content, nil
}

func (l *Library) write(name string, t Template) error {
	fm := map[string]interface{}{
		"title":       t.Title,
		"description": t.Description,
		"template":    true,
	}
	data, err := parser.Compose(fm, t.Content)
	if err != nil {
		return err
	}
	if err := l.store.Write(name+".md", data); err != nil {
		return fmt.Errorf("templates: write %s: %w", name, err)
	}
	return nil
}
