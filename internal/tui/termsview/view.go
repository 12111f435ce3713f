package termsview

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/docsearch/internal/report"
	"github.com/altinukshini/docsearch/internal/terms"
	"github.com/altinukshini/docsearch/internal/ui"
)

const placeholder = "Enter search terms, one per line or separated by spaces or commas"

// Model is the terms box with its live term count and the case toggle.
type Model struct {
	input         textarea.Model
	caseSensitive bool
	delimiters    terms.DelimiterSet
	count         int
	width         int
}

func New(initial string, caseSensitive bool, delimiters terms.DelimiterSet) Model {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(8)
	ta.SetValue(initial)

	m := Model{
		input:         ta,
		caseSensitive: caseSensitive,
		delimiters:    delimiters,
	}
	m.recount()
	return m
}

// Focus hides the placeholder and starts the cursor.
func (m *Model) Focus() tea.Cmd {
	m.input.Placeholder = ""
	return m.input.Focus()
}

// Blur brings the placeholder back if the box was left empty.
func (m *Model) Blur() {
	m.input.Blur()
	if m.input.Value() == "" {
		m.input.Placeholder = placeholder
	}
}

func (m Model) Focused() bool { return m.input.Focused() }

func (m Model) Value() string { return m.input.Value() }

func (m Model) CaseSensitive() bool { return m.caseSensitive }

func (m *Model) ToggleCase() { m.caseSensitive = !m.caseSensitive }

func (m Model) Delimiters() terms.DelimiterSet { return m.delimiters }

func (m *Model) SetDelimiters(set terms.DelimiterSet) {
	m.delimiters = set
	m.recount()
}

// Count is the number shown by the live indicator.
func (m Model) Count() int { return m.count }

func (m *Model) SetWidth(w int) {
	m.width = w
	m.input.SetWidth(max(w-4, 10))
}

func (m *Model) recount() {
	m.count = terms.Count(m.input.Value(), m.delimiters)
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.recount()
	return m, cmd
}

func (m Model) View() string {
	box := ui.StylePane
	if m.input.Focused() {
		box = ui.StylePaneFocused
	}

	label := lipgloss.NewStyle().Bold(true).Render("Search terms")
	countLabel := ui.StyleInfo.Render(report.TermsLabel(m.count))
	delims := ui.StyleMuted.Render("split: " + m.delimiters.String())

	var b strings.Builder
	b.WriteString(label + "\n")
	b.WriteString(box.Render(m.input.View()) + "\n")
	b.WriteString(countLabel + "   " + ui.Checkbox("Case sensitive", m.caseSensitive) + "   " + delims)
	return b.String()
}
