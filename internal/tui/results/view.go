package results

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/docsearch/internal/document"
	"github.com/altinukshini/docsearch/internal/model"
	"github.com/altinukshini/docsearch/internal/report"
	"github.com/altinukshini/docsearch/internal/ui"
)

// ClosedMsg is emitted when the results window is dismissed.
type ClosedMsg struct{}

// Model is the modal results window.
type Model struct {
	viewport viewport.Model
	summary  *model.SearchSummary
	err      error
	active   bool
	ready    bool
	width    int
	height   int
}

func New() Model {
	return Model{}
}

// Show opens the window with a finished search. body is the formatter
// output for summary.
func (m *Model) Show(summary *model.SearchSummary, body string) {
	m.summary = summary
	m.err = nil
	m.active = true
	m.setContent(body)
}

// ShowError opens the window with a failed search.
func (m *Model) ShowError(err error) {
	m.summary = nil
	m.err = err
	m.active = true
	m.setContent(renderError(err))
}

func (m Model) IsActive() bool { return m.active }

func (m Model) Summary() *model.SearchSummary { return m.summary }

func (m Model) Err() error { return m.err }

func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	vw, vh := max(w-8, 10), max(h-10, 3)
	if !m.ready {
		m.viewport = viewport.New(vw, vh)
		m.ready = true
		return
	}
	m.viewport.Width = vw
	m.viewport.Height = vh
}

func (m *Model) setContent(body string) {
	if !m.ready {
		m.viewport = viewport.New(60, 12)
		m.ready = true
	}
	m.viewport.SetContent(body)
	m.viewport.GotoTop()
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.active {
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, ui.Keys.Back), key.Matches(keyMsg, ui.Keys.Enter):
			m.active = false
			return m, func() tea.Msg { return ClosedMsg{} }
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.active {
		return ""
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(ui.ColorPrimary).Render("Search Results")

	var header string
	switch {
	case m.err != nil:
		header = ui.StyleFailure.Render("Search failed")
	case m.summary != nil:
		doc := "no file"
		if m.summary.Document != "" {
			doc = filepath.Base(m.summary.Document)
		}
		unique := lipgloss.NewStyle().Bold(true).Render(report.UniqueFoundLabel(m.summary))
		header = fmt.Sprintf("Unique terms found: %s\n%s",
			unique,
			ui.StyleMuted.Render(fmt.Sprintf("%d terms searched in %s", m.summary.TotalTermsSearched, doc)))
	}

	hint := ui.StyleMuted.Render("j/k: scroll  enter/esc: close")

	body := lipgloss.JoinVertical(lipgloss.Left, title, "", header, "", m.viewport.View(), "", hint)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorPrimary).
		Padding(1, 2).
		Render(body)

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

func renderError(err error) string {
	var b strings.Builder
	b.WriteString(ui.StyleFailure.Render(err.Error()) + "\n\n")
	if errors.Is(err, document.ErrUnreadable) {
		b.WriteString("The document could not be read. Choose a different file.")
	} else {
		b.WriteString("The search did not finish.")
	}
	return b.String()
}
