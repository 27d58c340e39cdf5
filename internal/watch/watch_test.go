package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"pitchdeck/internal/deck"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeDeck(t *testing.T, path, title string) {
	t.Helper()
	raw := `
title: "` + title + `"
gate:
  passphrases: [{ phrase: "x" }]
sections: [{ kind: hero, title: "h" }]
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write deck: %v", err)
	}
}

func TestDeckWatcher_DeliversReparsedDeck(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deck.yaml")
	writeDeck(t, path, "Original")

	decks := make(chan *deck.Deck, 4)
	w, err := NewDeckWatcher(path, func(d *deck.Deck) { decks <- d })
	if err != nil {
		t.Fatalf("NewDeckWatcher: %v", err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	writeDeck(t, path, "Edited")

	select {
	case d := <-decks:
		if d.Title != "Edited" {
			t.Errorf("reloaded title = %q, want Edited", d.Title)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no deck delivered after edit")
	}
}

func TestDeckWatcher_SkipsBrokenDeck(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deck.yaml")
	writeDeck(t, path, "Original")

	decks := make(chan *deck.Deck, 4)
	w, err := NewDeckWatcher(path, func(d *deck.Deck) { decks <- d })
	if err != nil {
		t.Fatalf("NewDeckWatcher: %v", err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	// A half-saved file must not reach the presentation.
	if err := os.WriteFile(path, []byte("title: ["), 0o644); err != nil {
		t.Fatalf("write broken deck: %v", err)
	}

	select {
	case d := <-decks:
		t.Fatalf("broken deck was delivered: %q", d.Title)
	case <-time.After(1 * time.Second):
	}
}

func TestDeckWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deck.yaml")
	writeDeck(t, path, "Original")

	decks := make(chan *deck.Deck, 4)
	w, err := NewDeckWatcher(path, func(d *deck.Deck) { decks <- d })
	if err != nil {
		t.Fatalf("NewDeckWatcher: %v", err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("unrelated"), 0o644); err != nil {
		t.Fatalf("write sibling: %v", err)
	}

	select {
	case <-decks:
		t.Fatal("sibling file edit triggered a reload")
	case <-time.After(1 * time.Second):
	}
}

func TestDeckWatcher_StopHaltsDelivery(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deck.yaml")
	writeDeck(t, path, "Original")

	decks := make(chan *deck.Deck, 4)
	w, err := NewDeckWatcher(path, func(d *deck.Deck) { decks <- d })
	if err != nil {
		t.Fatalf("NewDeckWatcher: %v", err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	w.Stop()

	writeDeck(t, path, "After stop")
	select {
	case <-decks:
		t.Fatal("stopped watcher delivered a deck")
	case <-time.After(1 * time.Second):
	}

	// Stop is idempotent.
	w.Stop()
}
