package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"IRNotifier/internal/ports"
)

// DirWatcher reports newly created disclosure files in one directory.
type DirWatcher struct {
	extensions map[string]struct{}
	logger     *slog.Logger

	fs   *fsnotify.Watcher
	stop chan struct{}
}

var _ ports.Watcher = (*DirWatcher)(nil)

// NewDirWatcher filters events to the given extensions (lowercase, with
// leading dot). Logger may be nil.
func NewDirWatcher(extensions []string, logger *slog.Logger) *DirWatcher {
	if len(extensions) == 0 {
		extensions = []string{".txt", ".html", ".csv"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	set := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		set[strings.ToLower(ext)] = struct{}{}
	}
	return &DirWatcher{extensions: set, logger: logger}
}

// Start begins watching dir and invokes onCreate for every matching new
// file until the context ends or Stop is called.
func (w *DirWatcher) Start(ctx context.Context, dir string, onCreate func(path string)) error {
	if w.stop != nil {
		return fmt.Errorf("already watching")
	}

	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("watch dir %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch target %s is not a directory", dir)
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := fs.Add(dir); err != nil {
		_ = fs.Close()
		return fmt.Errorf("add watch dir %s: %w", dir, err)
	}

	// The goroutine reads a captured copy so Stop can clear the field
	// without racing the select loop.
	stop := make(chan struct{})
	w.fs = fs
	w.stop = stop
	w.logger.Info("watching directory", "dir", dir)

	go func() {
		defer fs.Close()
		for {
			select {
			case event, ok := <-fs.Events:
				if !ok {
					return
				}
				if !event.Op.Has(fsnotify.Create) {
					continue
				}
				ext := strings.ToLower(filepath.Ext(event.Name))
				if _, watched := w.extensions[ext]; !watched {
					continue
				}
				w.logger.Info("new file detected", "path", event.Name)
				onCreate(event.Name)

			case err, ok := <-fs.Errors:
				if !ok {
					return
				}
				w.logger.Error("watcher error", "error", err)

			case <-ctx.Done():
				return
			case <-stop:
				return
			}
		}
	}()

	return nil
}

// Stop halts the watch goroutine.
func (w *DirWatcher) Stop() error {
	if w.stop == nil {
		return fmt.Errorf("not watching")
	}
	close(w.stop)
	w.stop = nil
	w.fs = nil
	return nil
}
