// Package watcher reloads shell settings when settings.yaml changes on disk.
package watcher

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/aegis-privacy/aegis-desktop/internal/config"
	"github.com/aegis-privacy/aegis-desktop/internal/models"
)

const debounceDelay = 100 * time.Millisecond

// Watcher watches a settings file and reports each successfully parsed
// version of it.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	onChange  func(*models.Settings)
	done      chan struct{}
	stopOnce  sync.Once

	debounceMu sync.Mutex
	debounce   *time.Timer
}

// New creates a watcher for the settings file at path.
func New(path string, onChange func(*models.Settings)) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		fsWatcher: fsWatcher,
		path:      filepath.Clean(path),
		onChange:  onChange,
		done:      make(chan struct{}),
	}, nil
}

// Start starts watching. The parent directory is watched rather than the file
// so that atomic writes (write tmp → rename) are seen. On failure the
// watcher is stopped and cannot be restarted.
func (w *Watcher) Start() error {
	if err := w.fsWatcher.Add(filepath.Dir(w.path)); err != nil {
		w.Stop()
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}

	go w.processEvents()

	log.Printf("[watcher] Watching %s", w.path)
	return nil
}

// Stop stops the watcher. Safe to call multiple times.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		_ = w.fsWatcher.Close()

		w.debounceMu.Lock()
		if w.debounce != nil {
			w.debounce.Stop()
		}
		w.debounceMu.Unlock()
	})
}

func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Printf("Watcher error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}

	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(debounceDelay, w.reload)
}

func (w *Watcher) reload() {
	select {
	case <-w.done:
		return
	default:
	}

	settings, err := config.LoadSettingsFrom(w.path)
	if err != nil {
		log.Printf("Warning: ignoring invalid settings: %v", err)
		return
	}

	log.Printf("[watcher] Settings reloaded from %s", w.path)
	if w.onChange != nil {
		w.onChange(settings)
	}
}
