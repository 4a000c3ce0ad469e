package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"tekqueue/pkg/logging"
)

// Watcher reloads the configuration file when it changes on disk and emits
// the validated result, so namespace patterns can be retuned without a
// restart.
//
// It watches the containing directory rather than the file itself, since
// editors and configmap mounts replace files by rename. Rapid successive
// writes are debounced into a single reload.
type Watcher struct {
	mu sync.RWMutex

	path     string
	debounce time.Duration

	watcher *fsnotify.Watcher
	timer   *time.Timer
	stopCh  chan struct{}
	running bool
}

// NewWatcher creates a configuration file watcher.
func NewWatcher(path string, debounce time.Duration) *Watcher {
	if debounce == 0 {
		debounce = 500 * time.Millisecond
	}
	return &Watcher{
		path:     path,
		debounce: debounce,
	}
}

// Start begins watching the configuration file and sends each successfully
// reloaded configuration to the given channel.
func (w *Watcher) Start(ctx context.Context, reloads chan<- QueueConfig) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.mu.Unlock()
		return err
	}

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		w.mu.Unlock()
		_ = watcher.Close()
		return err
	}

	w.watcher = watcher
	w.stopCh = make(chan struct{})
	w.running = true
	w.mu.Unlock()

	go w.processEvents(ctx, watcher, reloads)

	logging.Info("ConfigWatcher", "Watching %s for configuration changes", w.path)
	return nil
}

// processEvents handles filesystem events until the context is cancelled or
// the watcher is stopped.
func (w *Watcher) processEvents(ctx context.Context, watcher *fsnotify.Watcher, reloads chan<- QueueConfig) {
	for {
		select {
		case <-ctx.Done():
			w.cancelPending()
			return

		case <-w.stopCh:
			w.cancelPending()
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			w.handleFsEvent(event, reloads)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logging.Error("ConfigWatcher", err, "Filesystem watcher error")
		}
	}
}

// handleFsEvent debounces writes to the watched file into a single reload.
func (w *Watcher) handleFsEvent(event fsnotify.Event, reloads chan<- QueueConfig) {
	if filepath.Clean(event.Name) != filepath.Clean(w.path) {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.reload(reloads)
	})
}

// reload re-reads the file and emits the result. An unreadable or invalid
// file keeps the previous configuration in effect.
func (w *Watcher) reload(reloads chan<- QueueConfig) {
	cfg, err := LoadConfig(w.path)
	if err != nil {
		logging.Warn("ConfigWatcher", "Ignoring invalid configuration change in %s: %v", w.path, err)
		return
	}

	select {
	case reloads <- cfg:
		logging.Debug("ConfigWatcher", "Emitted reloaded configuration")
	default:
		logging.Warn("ConfigWatcher", "Reload channel full, dropping configuration change")
	}
}

func (w *Watcher) cancelPending() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

// Stop gracefully stops the watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}
	w.running = false
	close(w.stopCh)

	if w.watcher != nil {
		if err := w.watcher.Close(); err != nil {
			logging.Error("ConfigWatcher", err, "Error closing filesystem watcher")
		}
		w.watcher = nil
	}
	logging.Info("ConfigWatcher", "Stopped")
}
