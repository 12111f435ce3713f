// Package cache keeps the extracted text of converted documents on disk so
// that re-searching a PDF or Word file skips the conversion.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
)

const (
	textFile = "text.txt"
	metaFile = "meta.json"
)

type TextCache struct {
	dir     string
	maxSize int64         // max total cache size in bytes
	ttl     time.Duration // cache entry TTL
}

// Meta describes the source a cached text was extracted from.
type Meta struct {
	Source   string    `json:"source"`
	Size     int64     `json:"size"`
	ModTime  time.Time `json:"mod_time"`
	StoredAt time.Time `json:"stored_at"`
}

func NewTextCache(dir string, maxSizeMB int, ttl time.Duration) (*TextCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create text cache dir: %w", err)
	}
	return &TextCache{
		dir:     dir,
		maxSize: int64(maxSizeMB) * 1024 * 1024,
		ttl:     ttl,
	}, nil
}

func (c *TextCache) Dir() string { return c.dir }

// entryDir names the entry for one version of a source file. Editing the
// source changes its size or mtime and so misses the old entry.
func (c *TextCache) entryDir(path string, info os.FileInfo) string {
	h := sha256.New()
	h.Write([]byte(path))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatInt(info.Size(), 10)))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatInt(info.ModTime().UnixNano(), 10)))
	return filepath.Join(c.dir, "doc-"+hex.EncodeToString(h.Sum(nil))[:32])
}

func (c *TextCache) lookup(path string) (string, os.FileInfo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", nil, err
	}
	return abs, info, nil
}

// Get returns the cached text for the current version of path.
func (c *TextCache) Get(path string) (string, bool) {
	abs, info, err := c.lookup(path)
	if err != nil {
		return "", false
	}
	dir := c.entryDir(abs, info)

	entry, err := os.Stat(dir)
	if err != nil || !entry.IsDir() || time.Since(entry.ModTime()) >= c.ttl {
		return "", false
	}
	data, err := os.ReadFile(filepath.Join(dir, textFile))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Put stores text extracted from path.
func (c *TextCache) Put(path, text string) error {
	abs, info, err := c.lookup(path)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	dir := c.entryDir(abs, info)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create entry dir: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, textFile), []byte(text), 0o644); err != nil {
		return fmt.Errorf("write cached text: %w", err)
	}

	data, err := json.Marshal(Meta{
		Source:   abs,
		Size:     info.Size(),
		ModTime:  info.ModTime(),
		StoredAt: time.Now(),
	})
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, metaFile), data, 0o644)
}

// Evict removes expired entries, then the oldest ones until the cache fits
// its size cap.
func (c *TextCache) Evict() error {
	type cacheEntry struct {
		path    string
		modTime time.Time
		size    int64
	}

	dirs, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var entries []cacheEntry
	var totalSize int64
	for _, d := range dirs {
		if !d.IsDir() {
			continue
		}
		path := filepath.Join(c.dir, d.Name())
		info, err := d.Info()
		if err != nil {
			continue
		}
		size := dirSize(path)
		entries = append(entries, cacheEntry{path: path, modTime: info.ModTime(), size: size})
		totalSize += size
	}

	// Evict expired entries
	now := time.Now()
	remaining := entries[:0]
	for _, e := range entries {
		if now.Sub(e.modTime) > c.ttl {
			os.RemoveAll(e.path)
			totalSize -= e.size
		} else {
			remaining = append(remaining, e)
		}
	}
	entries = remaining

	// Evict oldest entries if over size cap
	if totalSize > c.maxSize {
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].modTime.Before(entries[j].modTime)
		})
		for _, e := range entries {
			if totalSize <= c.maxSize {
				break
			}
			os.RemoveAll(e.path)
			totalSize -= e.size
		}
	}
	return nil
}

// TotalSize returns total cache size in bytes.
func (c *TextCache) TotalSize() (int64, error) {
	var total int64
	err := filepath.Walk(c.dir, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip errors
		}
		if !info.IsDir() {
			total += info.Size()
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return 0, err
	}
	return total, nil
}

// DeleteAll removes all cache entries.
func (c *TextCache) DeleteAll() error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			os.RemoveAll(filepath.Join(c.dir, e.Name()))
		}
	}
	return nil
}

func dirSize(path string) int64 {
	var size int64
	filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			size += info.Size()
		}
		return nil
	})
	return size
}
