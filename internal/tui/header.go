package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/docsearch/internal/ui"
)

// RenderHeader shows the app name and the chosen document.
func RenderHeader(path string, width int) string {
	left := ui.StyleHeader.Render("docsearch")

	doc := ui.StyleMuted.Render("No file chosen. ")
	if path != "" {
		doc = lipgloss.NewStyle().Foreground(ui.ColorInfo).Render(path + " ")
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(doc)
	if gap < 0 {
		gap = 0
	}
	padding := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.NewStyle().
		Background(lipgloss.Color("#1F2937")).
		Width(width).
		Render(left + padding + doc)
}
