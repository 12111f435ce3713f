package options

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/docsearch/internal/terms"
	"github.com/altinukshini/docsearch/internal/ui"
)

// Options are the search and display settings the overlay edits.
type Options struct {
	Delimiters  terms.DelimiterSet
	Display     string
	ShowMissing bool
	Watch       bool

	// CacheEnabled shows the clear-cache toggle; CacheSize is what it
	// would free.
	CacheEnabled bool
	CacheSize    int64
	ClearCache   bool
}

// ResultMsg is emitted when the user applies or cancels the overlay.
type ResultMsg struct {
	Applied bool
	Options Options
}

type field int

const (
	fieldDelimiters field = iota
	fieldDisplay
	fieldShowMissing
	fieldWatch
	fieldClearCache
	fieldCount
)

var displayOptions = []string{"styled", "plain"}

// Model is the options overlay. It starts active.
type Model struct {
	active  bool
	focused field
	opts    Options
	width   int
	height  int
}

func New(current Options) Model {
	return Model{active: true, opts: current}
}

func (m Model) IsActive() bool { return m.active }

func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.active {
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, ui.Keys.Down), keyMsg.String() == "tab":
		m.moveFocus(1)
	case key.Matches(keyMsg, ui.Keys.Up), keyMsg.String() == "shift+tab":
		m.moveFocus(-1)
	case key.Matches(keyMsg, ui.Keys.Back):
		m.active = false
		return m, emitResult(false, Options{})
	}

	switch keyMsg.String() {
	case "enter", "right", "l", "left", "h", " ":
		m.cycle()
	case "a":
		m.active = false
		return m, emitResult(true, m.opts)
	}
	return m, nil
}

func (m Model) View() string {
	if !m.active {
		return ""
	}

	labelStyle := lipgloss.NewStyle().Width(16).Foreground(ui.ColorMuted)
	focusedLabelStyle := lipgloss.NewStyle().Width(16).Bold(true).Foreground(ui.ColorPrimary)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F9FAFB"))

	rows := make([]string, 0, int(fieldCount))
	for _, f := range m.fields() {
		ls := labelStyle
		cursor := "  "
		if f == m.focused {
			ls = focusedLabelStyle
			cursor = lipgloss.NewStyle().Foreground(ui.ColorPrimary).Render("> ")
		}

		var label, value string
		switch f {
		case fieldDelimiters:
			label = "Split terms on:"
			value = valueStyle.Render(describeDelimiters(m.opts.Delimiters))
		case fieldDisplay:
			label = "Display:"
			value = valueStyle.Render(m.opts.Display)
		case fieldShowMissing:
			label = "Not found:"
			value = ui.Checkbox("list terms with no matches", m.opts.ShowMissing)
		case fieldWatch:
			label = "Watch file:"
			value = ui.Checkbox("re-run search when the document changes", m.opts.Watch)
		case fieldClearCache:
			label = "Cache:"
			value = ui.Checkbox(fmt.Sprintf("clear %.1f MB of converted text", float64(m.opts.CacheSize)/(1024*1024)), m.opts.ClearCache)
		}

		rows = append(rows, fmt.Sprintf("%s%s %s", cursor, ls.Render(label), value))
	}

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(ui.ColorPrimary).
		MarginBottom(1).
		Render("Options")

	help := lipgloss.NewStyle().
		Foreground(ui.ColorMuted).
		MarginTop(1).
		Render("enter: change  a: apply  esc: cancel")

	body := lipgloss.JoinVertical(lipgloss.Left,
		title,
		strings.Join(rows, "\n"),
		help,
	)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorPrimary).
		Padding(1, 2).
		Width(72).
		Render(body)

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

// fields lists the rows shown. The cache row needs a cache.
func (m Model) fields() []field {
	fs := []field{fieldDelimiters, fieldDisplay, fieldShowMissing, fieldWatch}
	if m.opts.CacheEnabled {
		fs = append(fs, fieldClearCache)
	}
	return fs
}

func (m *Model) moveFocus(delta int) {
	fs := m.fields()
	idx := 0
	for i, f := range fs {
		if f == m.focused {
			idx = i
		}
	}
	idx = (idx + delta + len(fs)) % len(fs)
	m.focused = fs[idx]
}

func (m *Model) cycle() {
	switch m.focused {
	case fieldDelimiters:
		m.opts.Delimiters = m.opts.Delimiters.Next()
	case fieldDisplay:
		m.opts.Display = nextDisplay(m.opts.Display)
	case fieldShowMissing:
		m.opts.ShowMissing = !m.opts.ShowMissing
	case fieldWatch:
		m.opts.Watch = !m.opts.Watch
	case fieldClearCache:
		m.opts.ClearCache = !m.opts.ClearCache
	}
}

func nextDisplay(current string) string {
	for i, d := range displayOptions {
		if d == current {
			return displayOptions[(i+1)%len(displayOptions)]
		}
	}
	return displayOptions[0]
}

func describeDelimiters(set terms.DelimiterSet) string {
	if set == terms.DelimitersLines {
		return "line breaks and tabs"
	}
	return "spaces, commas, line breaks and tabs"
}

func emitResult(applied bool, o Options) tea.Cmd {
	return func() tea.Msg {
		return ResultMsg{Applied: applied, Options: o}
	}
}
