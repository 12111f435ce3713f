package options

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/altinukshini/docsearch/internal/terms"
)

func press(m Model, keys ...string) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEscape}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, cmd = m.Update(msg)
	}
	return m, cmd
}

func TestApplyCyclesValues(t *testing.T) {
	m := New(Options{Delimiters: terms.DelimitersExtended, Display: "styled"})

	m, cmd := press(m, "enter", "down", "enter", "down", "enter", "a")
	if m.IsActive() {
		t.Fatal("overlay should close after apply")
	}
	if cmd == nil {
		t.Fatal("expected a result command")
	}

	res, ok := cmd().(ResultMsg)
	if !ok {
		t.Fatalf("expected ResultMsg, got %T", cmd())
	}
	if !res.Applied {
		t.Error("expected Applied")
	}
	want := Options{Delimiters: terms.DelimitersLines, Display: "plain", ShowMissing: true}
	if res.Options != want {
		t.Errorf("Options = %+v, want %+v", res.Options, want)
	}
}

func TestEscCancels(t *testing.T) {
	m := New(Options{Display: "plain"})
	m, cmd := press(m, "enter", "esc")
	if m.IsActive() {
		t.Fatal("overlay should close on esc")
	}
	res := cmd().(ResultMsg)
	if res.Applied {
		t.Error("esc should not apply")
	}
}

func TestFocusWraps(t *testing.T) {
	m := New(Options{Watch: false})
	_, cmd := press(m, "up", "enter", "a")
	if !cmd().(ResultMsg).Options.Watch {
		t.Error("moving up from the first field should wrap to the watch toggle")
	}
}

func TestViewListsFields(t *testing.T) {
	view := New(Options{Delimiters: terms.DelimitersLines, Display: "plain"}).View()
	for _, want := range []string{"Options", "Split terms on:", "line breaks and tabs", "Display:", "plain", "Watch file:"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestClearCacheHiddenWithoutCache(t *testing.T) {
	view := New(Options{}).View()
	if strings.Contains(view, "Cache:") {
		t.Error("cache row should be hidden when there is no cache")
	}
}

func TestClearCacheToggle(t *testing.T) {
	m := New(Options{CacheEnabled: true, CacheSize: 3 * 1024 * 1024})
	if !strings.Contains(m.View(), "clear 3.0 MB of converted text") {
		t.Errorf("view should show the cache size:\n%s", m.View())
	}

	// up from the first field wraps to the cache row when it is shown
	_, cmd := press(m, "up", "enter", "a")
	res := cmd().(ResultMsg)
	if !res.Options.ClearCache {
		t.Error("expected ClearCache")
	}
	if res.Options.Watch {
		t.Error("watch should be untouched")
	}
}
