package ui

import (
	"github.com/altinukshini/docsearch/internal/model"
)

// FileChosenMsg is sent when the chooser closes. Path is empty when the
// chooser was cancelled.
type FileChosenMsg struct {
	Path string
}

type SearchDoneMsg struct {
	Query   model.SearchQuery
	Summary *model.SearchSummary
	Err     error
}

// DocumentChangedMsg is sent when the chosen document changes on disk. Gen
// identifies the watcher that saw the change.
type DocumentChangedMsg struct {
	Path string
	Gen  int
}

// WatchStoppedMsg is sent when the document watcher of generation Gen goes
// away.
type WatchStoppedMsg struct {
	Path string
	Gen  int
}

// CacheClearedMsg reports the bytes freed by clearing the text cache.
type CacheClearedMsg struct {
	Freed int64
	Err   error
}

type StatusMsg struct {
	Text string
}
