package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Table renders a minimal bordered listing: a bold header row and one style
// pass over the body. Plain tab-separated output when piped.
func Table(headers []string, rows [][]string) string {
	if !IsTerminal() {
		return plainTable(headers, rows)
	}
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderHeader(true).
		BorderStyle(Muted).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().PaddingRight(2)
			if row == table.HeaderRow {
				return s.Bold(true)
			}
			if col == 0 {
				return s.Inherit(Accent)
			}
			return s
		}).
		Headers(headers...).
		Rows(rows...)
	return tbl.Render()
}

func plainTable(headers []string, rows [][]string) string {
	out := joinTabs(headers)
	for _, r := range rows {
		out += joinTabs(r)
	}
	return out
}

func joinTabs(cells []string) string {
	line := ""
	for i, c := range cells {
		if i > 0 {
			line += "\t"
		}
		line += c
	}
	return line + "\n"
}
