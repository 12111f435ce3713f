package search

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/altinukshini/docsearch/internal/model"
	"github.com/altinukshini/docsearch/internal/terms"
)

// DocumentLoader reads a whole document. *document.Loader implements it.
type DocumentLoader interface {
	Load(path string) (string, error)
}

type Engine struct {
	loader DocumentLoader
	log    *zap.Logger
}

func New(loader DocumentLoader, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{loader: loader, log: log}
}

// Run loads the document named by query.Path and counts every term in it.
// An empty path is not an error: the search runs against empty content and
// every term counts zero. Load failures are returned as-is so callers can
// tell them apart with errors.Is(err, document.ErrUnreadable).
func (e *Engine) Run(ctx context.Context, query model.SearchQuery) (*model.SearchSummary, error) {
	start := time.Now()

	content := ""
	if query.Path != "" {
		text, err := e.loader.Load(query.Path)
		if err != nil {
			e.log.Warn("search failed", zap.String("path", query.Path), zap.Error(err))
			return nil, err
		}
		content = text
	}
	if !query.CaseSensitive {
		content = strings.ToLower(content)
	}

	parsed := terms.Parse(query.Terms, query.CaseSensitive, query.Delimiters)
	counts := make([]int, len(parsed))
	for i, term := range parsed {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		counts[i] = CountOccurrences(content, term)
	}

	summary := Summarize(parsed, counts)
	summary.Document = query.Path

	e.log.Debug("search done",
		zap.String("path", query.Path),
		zap.Bool("case_sensitive", query.CaseSensitive),
		zap.Stringer("delimiters", query.Delimiters),
		zap.Int("terms", summary.TotalTermsSearched),
		zap.Int("found", summary.UniqueTermsFound),
		zap.Duration("took", time.Since(start)))

	return summary, nil
}

// Summarize pairs terms with their counts. counts[i] belongs to terms[i].
func Summarize(parsed []string, counts []int) *model.SearchSummary {
	summary := &model.SearchSummary{
		TotalTermsSearched: len(parsed),
		Found:              []model.TermResult{},
		Missing:            []string{},
	}

	for i, term := range parsed {
		if counts[i] == 0 {
			summary.Missing = append(summary.Missing, term)
			continue
		}
		summary.Found = append(summary.Found, model.TermResult{Term: term, Count: counts[i]})
		summary.UniqueTermsFound++
	}

	return summary
}

// CountOccurrences counts matches of term in text scanning left to right.
// After a match the scan resumes at the end of it, so "aa" occurs once in
// "aaa" and twice in "aaaa". An empty term never matches.
func CountOccurrences(text, term string) int {
	if term == "" {
		return 0
	}

	count := 0
	for i := 0; ; {
		idx := strings.Index(text[i:], term)
		if idx < 0 {
			return count
		}
		count++
		i += idx + len(term)
	}
}
