package document

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reports changes to a single document. The parent directory is
// watched rather than the file so that editors which save by rename are
// still seen.
type Watcher struct {
	path    string
	delay   time.Duration
	log     *zap.Logger
	fsw     *fsnotify.Watcher
	changes chan string
}

// Watch starts watching path until ctx is done or Close is called. Bursts of
// events closer together than delay are merged into one notification.
func Watch(ctx context.Context, path string, delay time.Duration, log *zap.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:    abs,
		delay:   delay,
		log:     log,
		fsw:     fsw,
		changes: make(chan string, 1),
	}
	go w.loop(ctx)

	return w, nil
}

// Changes delivers the document path after each merged burst of writes. It
// is closed when the watcher stops.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

// Path is the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.changes)

	var (
		timer   *time.Timer
		timeout <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			w.fsw.Close()
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) {
				continue
			}
			w.log.Debug("document event", zap.String("path", ev.Name), zap.Stringer("op", ev.Op))
			if timer == nil {
				timer = time.NewTimer(w.delay)
			} else {
				timer.Reset(w.delay)
			}
			timeout = timer.C

		case <-timeout:
			timeout = nil
			select {
			case w.changes <- w.path:
			default:
				// a notification is already pending
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watcher error", zap.Error(err))
		}
	}
}
