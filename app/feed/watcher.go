package feed

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// ChangeFunc is called after a source config was reloaded or removed. config
// is nil for a removed source.
type ChangeFunc func(sourceName string, config *Config)

// Watcher keeps a ConfigCache in sync with the sources directory.
type Watcher struct {
	cache     *ConfigCache
	watcher   *fsnotify.Watcher
	callbacks []ChangeFunc
	mu        sync.RWMutex
	closeOnce sync.Once
}

func NewWatcher(cache *ConfigCache) (*Watcher, error) {
	if err := os.MkdirAll(cache.Dir(), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create sources directory: %w", err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := fsWatcher.Add(cache.Dir()); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch sources directory: %w", err)
	}

	return &Watcher{
		cache:   cache,
		watcher: fsWatcher,
	}, nil
}

func (w *Watcher) OnChange(callback ChangeFunc) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// Run processes file system events until ctx is cancelled or the watcher is
// closed.
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("Source watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	sourceName := SourceName(event.Name)
	if sourceName == "" {
		return
	}

	switch {
	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		if w.cache.RemoveConfig(sourceName) {
			slog.Info("Source configuration removed", "source", sourceName)
			w.notify(sourceName, nil)
		}

	case event.Has(fsnotify.Write) || event.Has(fsnotify.Create):
		config, err := w.cache.LoadConfig(sourceName)
		if err != nil {
			slog.Warn("Failed to reload source configuration", "source", sourceName, "error", err)
			return
		}
		slog.Info("Source configuration reloaded", "source", sourceName, "enabled", config.Settings.Enabled)
		w.notify(sourceName, config)
	}
}

func (w *Watcher) notify(sourceName string, config *Config) {
	w.mu.RLock()
	callbacks := make([]ChangeFunc, len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.RUnlock()

	for _, callback := range callbacks {
		callback(sourceName, config)
	}
}

func (w *Watcher) Close() error {
	var closeErr error
	w.closeOnce.Do(func() {
		if err := w.watcher.Close(); err != nil {
			closeErr = fmt.Errorf("failed to close watcher: %w", err)
		}
	})
	return closeErr
}
