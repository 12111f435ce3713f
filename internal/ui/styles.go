package ui

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary   = lipgloss.Color("#7C3AED")
	ColorSuccess   = lipgloss.Color("#10B981")
	ColorFailure   = lipgloss.Color("#EF4444")
	ColorWarning   = lipgloss.Color("#F59E0B")
	ColorInfo      = lipgloss.Color("#3B82F6")
	ColorMuted     = lipgloss.Color("#6B7280")
	ColorBorder    = lipgloss.Color("#374151")
	ColorHighlight = lipgloss.Color("#1F2937")

	StylePane = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	StylePaneFocused = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary)

	StyleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F9FAFB")).
			Background(ColorPrimary).
			Padding(0, 1)

	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleFailure = lipgloss.NewStyle().Foreground(ColorFailure)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleInfo    = lipgloss.NewStyle().Foreground(ColorInfo)
	StyleMuted   = lipgloss.NewStyle().Foreground(ColorMuted)

	// StylePlaceholder is the grey, italic hint shown in an empty box.
	StylePlaceholder = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
)

// Checkbox renders a labelled toggle.
func Checkbox(label string, checked bool) string {
	if checked {
		return StyleSuccess.Render("[x]") + " " + label
	}
	return StyleMuted.Render("[ ]") + " " + label
}

// ButtonStyle greys out disabled actions.
func ButtonStyle(enabled bool) lipgloss.Style {
	base := lipgloss.NewStyle().Padding(0, 1)
	if !enabled {
		return base.Foreground(ColorMuted).Background(ColorHighlight)
	}
	return base.Bold(true).Foreground(lipgloss.Color("#F9FAFB")).Background(ColorPrimary)
}
