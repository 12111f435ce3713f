package model

import "github.com/altinukshini/docsearch/internal/terms"

// SearchQuery carries everything one search needs. The UI shell owns the
// current selections and passes them in on every invocation.
type SearchQuery struct {
	Path          string // empty when no file has been chosen
	Terms         string // raw, undelimited terms text
	CaseSensitive bool
	Delimiters    terms.DelimiterSet
}

type TermResult struct {
	Term  string
	Count int
}

type SearchSummary struct {
	Document           string
	TotalTermsSearched int
	UniqueTermsFound   int
	Found              []TermResult // Count > 0, in term order
	Missing            []string     // Count == 0, in term order
}

// NoneFound reports whether the breakdown is empty.
func (s SearchSummary) NoneFound() bool {
	return s.UniqueTermsFound == 0
}
