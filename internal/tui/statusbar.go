package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/docsearch/internal/ui"
)

func RenderStatusBar(status, hints string, width int) string {
	left := lipgloss.NewStyle().Foreground(ui.ColorMuted).Render("  " + status)
	help := hints + " "

	// Drop the hints before the status when space runs out.
	gap := width - lipgloss.Width(left) - lipgloss.Width(help)
	if gap < 0 {
		help = ""
		gap = max(width-lipgloss.Width(left), 0)
	}
	padding := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.NewStyle().
		Background(lipgloss.Color("#111827")).
		Width(width).
		Render(left + padding + help)
}
