// Package watch reloads the deck file while a presentation is running.
// Edits to the yaml show up in the deck without restarting the player;
// widget and gate state are untouched by a reload.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"pitchdeck/internal/config"
	"pitchdeck/internal/deck"
	"pitchdeck/internal/logging"
	"pitchdeck/internal/timing"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// debounceFor coalesces editor save bursts into one reload.
const debounceFor = 300 * time.Millisecond

// DeckWatcher monitors one deck file and delivers re-parsed decks.
// Decks that fail to parse are reported and skipped; the presentation
// keeps the last good deck.
type DeckWatcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	onDeck   func(*deck.Deck)
	debounce *timing.Task
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

// NewDeckWatcher creates a watcher for path. onDeck receives every deck
// that re-parses cleanly after a change.
func NewDeckWatcher(path string, onDeck func(*deck.Deck)) (*DeckWatcher, error) {
	if onDeck == nil {
		return nil, fmt.Errorf("watch: nil deck callback")
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	return &DeckWatcher{
		watcher:  fsw,
		path:     path,
		onDeck:   onDeck,
		debounce: timing.NewTask(timing.NewSystemClock()),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. Non-blocking; the watch loop runs until Stop or
// context cancellation.
func (w *DeckWatcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	// Watch the directory, not the file: editors replace files on save,
	// which drops a file-level watch.
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch: add %s: %w", filepath.Dir(w.path), err)
	}

	go w.run(ctx)
	return nil
}

func (w *DeckWatcher) run(ctx context.Context) {
	defer close(w.doneCh)
	log := logging.Named("watch")

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.debounce.Schedule(debounceFor, w.reload)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warn("watcher error", zap.Error(err))
		}
	}
}

func (w *DeckWatcher) reload() {
	log := logging.Named("watch")
	d, err := config.Load(w.path)
	if err != nil {
		// Half-saved or invalid file: keep presenting the last good deck.
		log.Warn("deck reload skipped", zap.Error(err))
		return
	}
	log.Info("deck reloaded")
	w.onDeck(d)
}

// Stop halts the watcher. After Stop returns, no further decks are
// delivered.
func (w *DeckWatcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	w.debounce.Cancel()
	close(w.stopCh)
	_ = w.watcher.Close()
	<-w.doneCh
}
