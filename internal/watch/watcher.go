// Package watch provides a debounced content watcher and a local preview
// server for iterating on lesson content.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/lessonforge/internal/logfields"
)

// DefaultDebounce coalesces rapid editor save bursts into one rebuild.
const DefaultDebounce = 2 * time.Second

// Watcher monitors a content tree and triggers a rebuild callback on change.
type Watcher struct {
	contentDir string
	rebuild    func(context.Context) error
	watcher    *fsnotify.Watcher
	debounce   time.Duration

	mu       sync.Mutex
	stopOnce sync.Once
	stopChan chan struct{}
	trigger  chan struct{}
}

// New creates a Watcher over contentDir invoking rebuild after changes settle.
func New(contentDir string, rebuild func(context.Context) error) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	abs, err := filepath.Abs(contentDir)
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to resolve content path: %w", err)
	}
	return &Watcher{
		contentDir: abs,
		rebuild:    rebuild,
		watcher:    fw,
		debounce:   DefaultDebounce,
		stopChan:   make(chan struct{}),
		trigger:    make(chan struct{}, 1),
	}, nil
}

// Start begins monitoring. Directories are watched recursively; newly created
// directories are added as they appear.
func (w *Watcher) Start(ctx context.Context) error {
	err := filepath.WalkDir(w.contentDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.watcher.Add(p)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to watch content directory %s: %w", w.contentDir, err)
	}

	slog.Info("Watching content for changes", logfields.Path(w.contentDir))
	go w.watchLoop(ctx)
	go w.rebuildLoop(ctx)
	return nil
}

// AddPath watches an additional file or directory, typically the
// configuration file so edits to it also trigger a rebuild.
func (w *Watcher) AddPath(p string) error {
	abs, err := filepath.Abs(p)
	if err != nil {
		return fmt.Errorf("failed to resolve watch path: %w", err)
	}
	if err := w.watcher.Add(abs); err != nil {
		return fmt.Errorf("failed to watch %s: %w", abs, err)
	}
	return nil
}

// Stop stops the watcher. Safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopChan)
		if err := w.watcher.Close(); err != nil {
			slog.Error("Error closing file watcher", logfields.Error(err))
		}
	})
}

func (w *Watcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				// New directories need their own watch.
				if err := w.watcher.Add(event.Name); err == nil {
					slog.Debug("Watching new path", logfields.Path(event.Name))
				}
			}
			slog.Debug("Content change detected", logfields.Path(event.Name))
			select {
			case w.trigger <- struct{}{}:
			default:
				// Rebuild already pending.
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Content watcher error", logfields.Error(err))
		}
	}
}

// rebuildLoop debounces triggers and runs rebuilds in this goroutine, so a
// rebuild never overlaps another. Triggers arriving mid-rebuild stay queued
// in the trigger channel and restart the debounce afterwards.
func (w *Watcher) rebuildLoop(ctx context.Context) {
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false
	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-w.stopChan:
			timer.Stop()
			return
		case <-w.trigger:
			if pending && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(w.debounce)
			pending = true
		case <-timer.C:
			pending = false
			if err := w.rebuild(ctx); err != nil {
				slog.Error("Rebuild failed", logfields.Error(err))
			}
		}
	}
}
