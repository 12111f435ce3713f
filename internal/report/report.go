// Package report renders search summaries for people.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/docsearch/internal/model"
	"github.com/altinukshini/docsearch/internal/ui"
)

const (
	NoneFoundMessage = "None of the terms were found."
	BreakdownHeader  = "Count\tTerm"
)

// Formatter turns a summary into the breakdown text.
type Formatter interface {
	Format(s *model.SearchSummary) string
}

// TermsLabel is the live indicator under the terms box.
func TermsLabel(n int) string {
	return fmt.Sprintf("%d terms", n)
}

// UniqueFoundLabel is the headline number of the results window.
func UniqueFoundLabel(s *model.SearchSummary) string {
	return strconv.Itoa(s.UniqueTermsFound)
}

// BreakdownLine formats one found term.
func BreakdownLine(r model.TermResult) string {
	return fmt.Sprintf("%d:\t%s", r.Count, r.Term)
}

// PlainFormatter writes a header and one line per found term, or the
// fallback message when nothing matched.
type PlainFormatter struct{}

func (PlainFormatter) Format(s *model.SearchSummary) string {
	if s == nil || s.NoneFound() {
		return NoneFoundMessage
	}

	var b strings.Builder
	b.WriteString(BreakdownHeader + "\n")
	for _, r := range s.Found {
		b.WriteString(BreakdownLine(r) + "\n")
	}
	return b.String()
}

// StyledFormatter colours counts and, with ShowMissing, lists the terms that
// were not found in the failure colour.
type StyledFormatter struct {
	ShowMissing bool
}

func (f StyledFormatter) Format(s *model.SearchSummary) string {
	if s == nil {
		return ui.StyleMuted.Render(NoneFoundMessage)
	}

	var b strings.Builder
	if s.NoneFound() {
		b.WriteString(ui.StyleWarning.Render(NoneFoundMessage) + "\n")
	} else {
		// Tabs stay outside Render, which would expand them.
		b.WriteString(ui.StyleMuted.Render("Count") + "\t" + ui.StyleMuted.Render("Term") + "\n")
		countStyle := lipgloss.NewStyle().Bold(true).Foreground(ui.ColorSuccess)
		for _, r := range s.Found {
			b.WriteString(countStyle.Render(strconv.Itoa(r.Count)+":") + "\t" + r.Term + "\n")
		}
	}

	if f.ShowMissing && len(s.Missing) > 0 {
		b.WriteString("\n")
		for _, term := range s.Missing {
			b.WriteString(ui.StyleFailure.Render("0:") + "\t" + ui.StyleFailure.Render(term) + "\n")
		}
	}
	return b.String()
}

// NewFormatter maps a display name from the configuration to a Formatter.
func NewFormatter(display string, showMissing bool) (Formatter, error) {
	switch display {
	case "plain":
		return PlainFormatter{}, nil
	case "styled", "":
		return StyledFormatter{ShowMissing: showMissing}, nil
	default:
		return nil, fmt.Errorf("unknown display %q (want plain or styled)", display)
	}
}
