package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv/v2"
)

// Reader extracts the text of one kind of document.
type Reader interface {
	Exts() []string
	ReadText(path string) (string, error)
}

// TxtReader returns the file bytes unchanged. It is the fallback for every
// extension no other reader claims.
type TxtReader struct{}

func (r *TxtReader) Exts() []string { return []string{".txt", ".md", ".csv", ".log"} }

func (r *TxtReader) ReadText(path string) (string, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading text file: %w", err)
	}

	return string(buf), nil
}

// UniversalReader converts office and markup documents to plain text.
type UniversalReader struct{}

func (r *UniversalReader) Exts() []string {
	return []string{".docx", ".odt", ".pdf", ".rtf", ".xml", ".html", ".htm"}
}

func (r *UniversalReader) ReadText(path string) (string, error) {
	// docconv reports a missing file as a conversion failure; stat first so
	// the caller still sees fs.ErrNotExist.
	if _, err := os.Stat(path); err != nil {
		return "", err
	}

	res, err := docconv.ConvertPath(path)
	if err != nil {
		return "", fmt.Errorf("failed to convert %s: %w", filepath.Base(path), err)
	}

	return res.Body, nil
}

func normalizeExt(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
