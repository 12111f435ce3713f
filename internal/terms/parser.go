// Package terms turns the raw text typed into the terms box into the ordered
// list of terms that get counted.
package terms

import (
	"fmt"
	"strings"
)

// DelimiterSet names the characters that separate terms.
type DelimiterSet string

const (
	// DelimitersExtended splits on whitespace and commas. It is the default.
	DelimitersExtended DelimiterSet = "extended"
	// DelimitersLines splits on line breaks and tabs only, so a term may
	// contain spaces ("new york").
	DelimitersLines DelimiterSet = "lines"
)

var delimiterChars = map[DelimiterSet]string{
	DelimitersExtended: " \n\r\t,",
	DelimitersLines:    "\n\r\t",
}

// ParseDelimiterSet validates a set name. An empty name selects the default.
func ParseDelimiterSet(name string) (DelimiterSet, error) {
	if name == "" {
		return DelimitersExtended, nil
	}
	set := DelimiterSet(strings.ToLower(name))
	if _, ok := delimiterChars[set]; !ok {
		return "", fmt.Errorf("unknown delimiter set %q (want %q or %q)", name, DelimitersExtended, DelimitersLines)
	}
	return set, nil
}

// Chars returns the separator characters of the set, falling back to the
// default set for unknown names.
func (d DelimiterSet) Chars() string {
	if chars, ok := delimiterChars[d]; ok {
		return chars
	}
	return delimiterChars[DelimitersExtended]
}

// Next returns the other delimiter set, for toggling in the UI.
func (d DelimiterSet) Next() DelimiterSet {
	if d == DelimitersLines {
		return DelimitersExtended
	}
	return DelimitersLines
}

func (d DelimiterSet) String() string {
	if d == "" {
		return string(DelimitersExtended)
	}
	return string(d)
}

// Parse splits raw into terms. When caseSensitive is false the whole input
// is lower-cased before it is split. Empty pieces are dropped; duplicates and
// order are kept. The result is never nil.
func Parse(raw string, caseSensitive bool, set DelimiterSet) []string {
	if !caseSensitive {
		raw = strings.ToLower(raw)
	}

	chars := set.Chars()
	return strings.FieldsFunc(raw, func(r rune) bool {
		return strings.ContainsRune(chars, r)
	})
}

// Count is the number of terms shown by the live indicator. It ignores the
// case toggle so the figure does not jump when the toggle changes.
func Count(raw string, set DelimiterSet) int {
	return len(Parse(raw, false, set))
}
