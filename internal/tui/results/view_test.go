package results

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/altinukshini/docsearch/internal/document"
	"github.com/altinukshini/docsearch/internal/model"
	"github.com/altinukshini/docsearch/internal/report"
)

func TestShowRendersSummary(t *testing.T) {
	s := &model.SearchSummary{
		Document:           "/tmp/mat.txt",
		TotalTermsSearched: 3,
		UniqueTermsFound:   2,
		Found:              []model.TermResult{{Term: "the", Count: 2}, {Term: "cat", Count: 1}},
		Missing:            []string{"dog"},
	}

	m := New()
	m.SetSize(100, 40)
	m.Show(s, report.PlainFormatter{}.Format(s))

	view := m.View()
	for _, want := range []string{"Unique terms found: 2", "3 terms searched in mat.txt", "2:", "the", "cat"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestShowNoneFound(t *testing.T) {
	s := &model.SearchSummary{TotalTermsSearched: 1, Missing: []string{"x"}}

	m := New()
	m.SetSize(100, 40)
	m.Show(s, report.PlainFormatter{}.Format(s))

	if !strings.Contains(m.View(), report.NoneFoundMessage) {
		t.Errorf("expected fallback message:\n%s", m.View())
	}
}

func TestShowErrorSuggestsAnotherFile(t *testing.T) {
	m := New()
	m.SetSize(120, 40)
	m.ShowError(&document.ReadError{Path: "x.txt", Err: errors.New("permission denied")})

	view := m.View()
	if !strings.Contains(view, "Search failed") {
		t.Errorf("view should report the failure:\n%s", view)
	}
	if !strings.Contains(view, "Choose a different file") {
		t.Errorf("view should suggest another file:\n%s", view)
	}
}

func TestCloseKeys(t *testing.T) {
	for _, k := range []tea.KeyMsg{{Type: tea.KeyEscape}, {Type: tea.KeyEnter}} {
		m := New()
		m.Show(&model.SearchSummary{}, "")
		m, cmd := m.Update(k)
		if m.IsActive() {
			t.Errorf("%s should close the window", k)
		}
		if cmd == nil {
			t.Fatalf("%s should emit ClosedMsg", k)
		}
		if _, ok := cmd().(ClosedMsg); !ok {
			t.Errorf("expected ClosedMsg")
		}
	}
}
