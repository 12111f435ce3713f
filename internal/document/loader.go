// Package document loads the text of the file being searched and watches it
// for changes.
package document

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	// ErrUnreadable matches every *ReadError.
	ErrUnreadable = errors.New("document cannot be read")
	// ErrEncoding is wrapped by a ReadError when the file is not UTF-8 text.
	ErrEncoding = errors.New("document is not valid UTF-8 text")
)

// ReadError reports a document that was selected but could not be loaded.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

func (e *ReadError) Is(target error) bool { return target == ErrUnreadable }

// TextCache stores text extracted by the converting readers.
// *cache.TextCache implements it.
type TextCache interface {
	Get(path string) (string, bool)
	Put(path, text string) error
}

// Loader picks a Reader by file extension.
type Loader struct {
	readers  map[string]Reader
	fallback Reader
	cache    TextCache
}

// NewLoader returns a loader that knows plain text and the formats docconv
// understands. Anything else is read as plain text.
func NewLoader() *Loader {
	l := &Loader{
		readers:  make(map[string]Reader),
		fallback: &TxtReader{},
	}
	_ = l.RegisterReader(&TxtReader{}, &UniversalReader{})
	return l
}

// RegisterReader adds readers. Registering a second reader for an extension
// is an error.
func (l *Loader) RegisterReader(readers ...Reader) error {
	for _, r := range readers {
		for _, ext := range r.Exts() {
			ext = strings.ToLower(ext)
			if _, ok := l.readers[ext]; ok {
				return fmt.Errorf("reader already registered for type %s", ext)
			}
			l.readers[ext] = r
		}
	}

	return nil
}

// UseCache makes converted documents go through c. Plain text is always
// read directly.
func (l *Loader) UseCache(c TextCache) {
	l.cache = c
}

// Load reads the whole document into memory.
func (l *Loader) Load(path string) (string, error) {
	r, ok := l.readers[normalizeExt(path)]
	if !ok {
		r = l.fallback
	}

	_, plain := r.(*TxtReader)
	cached := l.cache != nil && !plain

	if cached {
		if text, hit := l.cache.Get(path); hit {
			return text, nil
		}
	}

	text, err := r.ReadText(path)
	if err != nil {
		return "", &ReadError{Path: path, Err: err}
	}
	if !utf8.ValidString(text) {
		return "", &ReadError{Path: path, Err: ErrEncoding}
	}

	if cached {
		// a failed write only costs the next conversion
		_ = l.cache.Put(path, text)
	}

	return text, nil
}
