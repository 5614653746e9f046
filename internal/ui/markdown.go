package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// defaultWrapWidth bounds rendered markdown line length.
const defaultWrapWidth = 100

// RenderMarkdown renders markdown for terminal display. When stdout is not
// a terminal the content is returned untouched so pipes see raw markdown.
func RenderMarkdown(content string) string {
	if !IsTerminal() {
		return content
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(defaultWrapWidth),
	)
	if err != nil {
		return content
	}
	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	// glamour pads with trailing newlines; keep exactly one.
	return strings.TrimRight(rendered, "\n") + "\n"
}
