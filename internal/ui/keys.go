package ui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit       key.Binding
	Help       key.Binding
	ChooseFile key.Binding
	Search     key.Binding
	ToggleCase key.Binding
	Options    key.Binding
	Focus      key.Binding
	Back       key.Binding
	Enter      key.Binding
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
}

var Keys = KeyMap{
	Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	Help:       key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
	ChooseFile: key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "choose file")),
	Search:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "search")),
	ToggleCase: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "case sensitive")),
	Options:    key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "options")),
	Focus:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus terms")),
	Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Enter:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k/up", "up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j/down", "down")),
	PageUp:     key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
	PageDown:   key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ChooseFile, k.Search, k.ToggleCase, k.Options, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ChooseFile, k.Search, k.ToggleCase, k.Options},
		{k.Focus, k.Enter, k.Back},
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Help, k.Quit},
	}
}
