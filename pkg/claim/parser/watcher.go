package parser

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// defaultDebounce is how long the watcher waits after the last file event
// before triggering a reload. Editors often emit several events per save.
const defaultDebounce = 100 * time.Millisecond

// SpecWatcher watches a spec file or directory and triggers reloads on
// change. Rapid event bursts are debounced into a single reload.
type SpecWatcher struct {
	path     string
	debounce time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	timer   *time.Timer
	running bool
}

// NewSpecWatcher creates a watcher for the given spec path.
func NewSpecWatcher(path string, logger *slog.Logger) *SpecWatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &SpecWatcher{
		path:     path,
		debounce: defaultDebounce,
		logger:   logger.With("component", "spec_watcher"),
	}
}

// Watch blocks until the context is cancelled, invoking onReload after each
// debounced change to a spec file. Reload failures are logged and watching
// continues with the previous documents still in effect.
func (w *SpecWatcher) Watch(ctx context.Context, onReload func() error) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("spec watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		if w.timer != nil {
			w.timer.Stop()
			w.timer = nil
		}
		w.mu.Unlock()
	}()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	// Watching the parent directory survives the rename-then-create
	// pattern editors use when saving a single file.
	watchPath := w.path
	if filepath.Ext(watchPath) != "" {
		watchPath = filepath.Dir(watchPath)
	}
	if err := watcher.Add(watchPath); err != nil {
		return fmt.Errorf("failed to watch %q: %w", watchPath, err)
	}

	w.logger.Info("spec watcher started",
		"path", w.path,
		"debounce_ms", w.debounce.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("spec watcher stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.relevant(event) {
				continue
			}

			w.logger.Debug("spec file event",
				"path", event.Name,
				"op", event.Op.String(),
			)

			w.trigger(func() {
				if err := onReload(); err != nil {
					w.logger.Error("spec reload failed", "error", err)
					return
				}
				w.logger.Info("spec reloaded", "path", w.path)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("spec watcher error", "error", err)
		}
	}
}

// relevant filters events down to content changes on TOML spec files.
func (w *SpecWatcher) relevant(event fsnotify.Event) bool {
	if event.Op&fsnotify.Chmod == fsnotify.Chmod {
		return false
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return strings.EqualFold(filepath.Ext(event.Name), ".toml")
}

// trigger resets the debounce timer with a new callback.
func (w *SpecWatcher) trigger(callback func()) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, callback)
}
