package content

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses bursts of editor writes into one reload.
const DefaultDebounce = 250 * time.Millisecond

// Watcher reloads a Store whenever its content file changes on disk.
type Watcher struct {
	store    *Store
	path     string
	debounce time.Duration

	// onReload is called after every reload attempt; tests use it to synchronise.
	onReload func(error)
}

// NewWatcher watches path and reloads store on change.
func NewWatcher(store *Store, path string, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{store: store, path: path, debounce: debounce}
}

// Run blocks until ctx is done. The parent directory is watched rather than
// the file so atomic renames by editors are seen.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = fw.Close() }()

	abs, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", w.path, err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}
	log.Printf("[content] watching %s for changes", abs)

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() { w.reload(ctx) })
			mu.Unlock()
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Printf("[content] watcher error: %v", err)
		}
	}
}

func (w *Watcher) reload(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	_, err := w.store.Reload(ctx)
	if err != nil {
		log.Printf("[content] reload failed, keeping previous document: %v", err)
	}
	if w.onReload != nil {
		w.onReload(err)
	}
}
