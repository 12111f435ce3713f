package search

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/altinukshini/docsearch/internal/document"
	"github.com/altinukshini/docsearch/internal/model"
	"github.com/altinukshini/docsearch/internal/terms"
)

type mockLoader struct {
	mock.Mock
}

func (m *mockLoader) Load(path string) (string, error) {
	args := m.Called(path)
	return args.String(0), args.Error(1)
}

func TestCountOccurrences(t *testing.T) {
	tests := []struct {
		text string
		term string
		want int
	}{
		{text: "aaa", term: "aa", want: 1},
		{text: "aaaa", term: "aa", want: 2},
		{text: "abc", term: "", want: 0},
		{text: "", term: "", want: 0},
		{text: "", term: "a", want: 0},
		{text: "ABC", term: "abc", want: 0},
		{text: "the catalog has a cat", term: "cat", want: 2},
		{text: "abababa", term: "aba", want: 2},
		{text: "short", term: "longer than text", want: 0},
		{text: "naïve naïve", term: "ï", want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.text+"/"+tt.term, func(t *testing.T) {
			assert.Equal(t, tt.want, CountOccurrences(tt.text, tt.term))
		})
	}
}

func TestRunEndToEnd(t *testing.T) {
	loader := new(mockLoader)
	loader.On("Load", "mat.txt").Return("the cat sat on the mat", nil)

	engine := New(loader, zap.NewNop())
	summary, err := engine.Run(context.Background(), model.SearchQuery{
		Path:          "mat.txt",
		Terms:         "the, cat, dog",
		CaseSensitive: false,
		Delimiters:    terms.DelimitersExtended,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalTermsSearched)
	assert.Equal(t, 2, summary.UniqueTermsFound)
	assert.Equal(t, []model.TermResult{{Term: "the", Count: 2}, {Term: "cat", Count: 1}}, summary.Found)
	assert.Equal(t, []string{"dog"}, summary.Missing)
	assert.Equal(t, "mat.txt", summary.Document)
	loader.AssertExpectations(t)
}

func TestRunCaseSensitivity(t *testing.T) {
	loader := new(mockLoader)
	loader.On("Load", "doc.txt").Return("Go go GO gopher", nil)

	engine := New(loader, nil)

	sensitive, err := engine.Run(context.Background(), model.SearchQuery{Path: "doc.txt", Terms: "go\nGO", CaseSensitive: true})
	require.NoError(t, err)
	assert.Equal(t, []model.TermResult{{Term: "go", Count: 2}, {Term: "GO", Count: 1}}, sensitive.Found)

	insensitive, err := engine.Run(context.Background(), model.SearchQuery{Path: "doc.txt", Terms: "go\nGO", CaseSensitive: false})
	require.NoError(t, err)
	assert.Equal(t, []model.TermResult{{Term: "go", Count: 4}, {Term: "go", Count: 4}}, insensitive.Found)
	assert.Equal(t, 2, insensitive.UniqueTermsFound)
}

func TestRunWithoutFile(t *testing.T) {
	loader := new(mockLoader)
	engine := New(loader, zap.NewNop())

	summary, err := engine.Run(context.Background(), model.SearchQuery{Terms: "alpha beta", CaseSensitive: true})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalTermsSearched)
	assert.Equal(t, 0, summary.UniqueTermsFound)
	assert.True(t, summary.NoneFound())
	assert.Empty(t, summary.Found)
	assert.Equal(t, []string{"alpha", "beta"}, summary.Missing)
	loader.AssertNotCalled(t, "Load", mock.Anything)
}

func TestRunEmptyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	engine := New(document.NewLoader(), zap.NewNop())
	summary, err := engine.Run(context.Background(), model.SearchQuery{Path: path, Terms: "anything at all"})
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalTermsSearched)
	assert.True(t, summary.NoneFound())
}

func TestRunReadFailureIsDistinct(t *testing.T) {
	engine := New(document.NewLoader(), zap.NewNop())

	summary, err := engine.Run(context.Background(), model.SearchQuery{
		Path:  filepath.Join(t.TempDir(), "missing.txt"),
		Terms: "x",
	})
	assert.Nil(t, summary)
	assert.ErrorIs(t, err, document.ErrUnreadable)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestRunPropagatesLoaderError(t *testing.T) {
	boom := errors.New("boom")
	loader := new(mockLoader)
	loader.On("Load", "bad.txt").Return("", boom)

	_, err := New(loader, zap.NewNop()).Run(context.Background(), model.SearchQuery{Path: "bad.txt", Terms: "x"})
	assert.ErrorIs(t, err, boom)
}

func TestRunCancelled(t *testing.T) {
	loader := new(mockLoader)
	loader.On("Load", "doc.txt").Return("text", nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(loader, zap.NewNop()).Run(ctx, model.SearchQuery{Path: "doc.txt", Terms: "a b"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunIsIdempotent(t *testing.T) {
	loader := new(mockLoader)
	loader.On("Load", "doc.txt").Return("one two two three three three", nil)

	engine := New(loader, zap.NewNop())
	query := model.SearchQuery{Path: "doc.txt", Terms: "one, two, three, four", CaseSensitive: true}

	first, err := engine.Run(context.Background(), query)
	require.NoError(t, err)
	second, err := engine.Run(context.Background(), query)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	loader.AssertNumberOfCalls(t, "Load", 2)
}

func TestSummarize(t *testing.T) {
	summary := Summarize([]string{}, []int{})
	assert.Equal(t, 0, summary.TotalTermsSearched)
	assert.NotNil(t, summary.Found)
	assert.NotNil(t, summary.Missing)
}
