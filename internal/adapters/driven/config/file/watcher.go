package file

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/rmayank-24/MarketForgeAI/internal/core/ports/driven"
	"github.com/rmayank-24/MarketForgeAI/internal/logger"
)

var watchLog = logger.New("prompts")

// PromptWatcher reloads a PromptStore whenever a template file changes.
// It is used by long-running surfaces such as the MCP server.
type PromptWatcher struct {
	store   driven.PromptStore
	dir     string
	watcher *fsnotify.Watcher
}

// NewPromptWatcher watches dir for template edits.
func NewPromptWatcher(store driven.PromptStore, dir string) (*PromptWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create prompt watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch prompt directory: %w", err)
	}
	return &PromptWatcher{store: store, dir: dir, watcher: w}, nil
}

// Run processes events until ctx is cancelled or the watcher is closed.
func (w *PromptWatcher) Run(ctx context.Context) error {
	defer w.watcher.Close()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if w.handleEvent(event) {
				watchLog.Debug("reloaded after %s on %s", event.Op, filepath.Base(event.Name))
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			watchLog.Warn("watch error: %v", err)
		}
	}
}

// Close stops the watcher.
func (w *PromptWatcher) Close() error {
	return w.watcher.Close()
}

// handleEvent reloads the store for template changes and reports whether it did.
func (w *PromptWatcher) handleEvent(event fsnotify.Event) bool {
	if !strings.HasSuffix(event.Name, promptExt) {
		return false
	}
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return false
	}
	w.store.Reload()
	return true
}
