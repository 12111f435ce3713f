package chooser

import (
	"os"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/docsearch/internal/ui"
)

// Model is the file chooser. Choosing a file or cancelling closes it and
// emits ui.FileChosenMsg; cancelling clears the selection.
type Model struct {
	picker filepicker.Model
	active bool
	width  int
	height int
}

func New(startDir string) Model {
	fp := filepicker.New()
	fp.AutoHeight = true
	fp.ShowPermissions = false
	fp.ShowHidden = false
	fp.FileAllowed = true
	fp.DirAllowed = false
	if startDir != "" {
		fp.CurrentDirectory = startDir
	} else if wd, err := os.Getwd(); err == nil {
		fp.CurrentDirectory = wd
	}

	return Model{picker: fp}
}

// Activate opens the chooser and starts reading the current directory.
func (m *Model) Activate() tea.Cmd {
	m.active = true
	if m.height > 0 {
		m.picker, _ = m.picker.Update(tea.WindowSizeMsg{Width: m.width, Height: m.pickerHeight()})
	}
	return m.picker.Init()
}

func (m Model) IsActive() bool { return m.active }

func (m Model) CurrentDirectory() string { return m.picker.CurrentDirectory }

func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.picker, _ = m.picker.Update(tea.WindowSizeMsg{Width: w, Height: m.pickerHeight()})
}

// pickerHeight leaves room for the title and hint lines.
func (m Model) pickerHeight() int {
	return max(m.height-4, 3)
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.active {
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, ui.Keys.Back) {
		m.active = false
		return m, chosen("")
	}
	if _, ok := msg.(tea.WindowSizeMsg); ok {
		// the parent sizes us through SetSize
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if didSelect, path := m.picker.DidSelectFile(msg); didSelect {
		m.active = false
		return m, chosen(path)
	}
	return m, cmd
}

func (m Model) View() string {
	if !m.active {
		return ""
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(ui.ColorPrimary).
		Render("Choose a document")
	dir := ui.StyleMuted.Render(m.CurrentDirectory())
	hint := ui.StyleMuted.Render("enter: open/select  backspace: up  esc: cancel")

	return lipgloss.JoinVertical(lipgloss.Left, title+"  "+dir, "", m.picker.View(), hint)
}

func chosen(path string) tea.Cmd {
	return func() tea.Msg {
		return ui.FileChosenMsg{Path: path}
	}
}
