// Package ui renders terminal output: lipgloss-styled listings and
// glamour-rendered markdown, degrading to plain text when piped.
package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	// Accent highlights note identifiers and interactive values.
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA"))

	// Muted styles secondary info: dates, counts, hints.
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold emphasizes headers and labels.
	Bold = lipgloss.NewStyle().Bold(true)

	// Added and Removed color diff lines.
	Added   = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))
	Removed = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8"))
)

// IsTerminal reports whether stdout is an interactive terminal. Piped
// output gets plain text.
func IsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
