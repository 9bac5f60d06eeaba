package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType describes the nature of a persistence change notification.
type EventType int

const (
	// EventOverridesChanged indicates a day's completion override set was
	// written by some process (this one or another).
	EventOverridesChanged EventType = iota

	// EventStoreChanged covers any other persisted record (streak,
	// notification markers); consumers should refresh derived state.
	EventStoreChanged
)

// Event is emitted by Watch when the underlying storage changes.
type Event struct {
	Type EventType
	Day  string
}

// Watcher extends Persistence with change notification. The diskv-backed
// store implements it; test fakes usually do not need to.
type Watcher interface {
	Persistence
	Watch(ctx context.Context) (<-chan Event, error)
}

// Watch streams change events until ctx is cancelled. Callers should drain
// the channel; events are dropped rather than blocking the watcher when the
// consumer lags, since every consumer re-derives from the store anyway.
func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	for _, bucket := range []string{bucketOverrides, bucketNotified} {
		if err := os.MkdirAll(filepath.Join(p.basePath, bucket), 0o755); err != nil {
			return nil, fmt.Errorf("store: ensure bucket: %w", err)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "store: watcher close: %v\n", err)
			}
		})
	}

	dirs := []string{
		p.basePath,
		filepath.Join(p.basePath, bucketOverrides),
		filepath.Join(p.basePath, bucketNotified),
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			closeWatcher()
			return nil, fmt.Errorf("store: watch %s: %w", dir, err)
		}
	}

	events := make(chan Event, 16)

	go func() {
		defer close(events)
		defer closeWatcher()

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
			}
		}

		// Coalesce bursts of writes so consumers redraw once per change,
		// not once per temp-file rename.
		var (
			mu      sync.Mutex
			pending map[Event]struct{}
			timer   *time.Timer
		)
		enqueue := func(ev Event) {
			mu.Lock()
			if pending == nil {
				pending = make(map[Event]struct{})
			}
			pending[ev] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(100*time.Millisecond, func() {
					mu.Lock()
					batch := pending
					pending = nil
					timer = nil
					mu.Unlock()
					for ev := range batch {
						send(ev)
					}
				})
			}
			mu.Unlock()
		}
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
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				fmt.Fprintf(os.Stderr, "store: watcher: %v\n", err)
				enqueue(Event{Type: EventStoreChanged})
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				enqueue(p.classify(evt.Name))
			}
		}
	}()

	return events, nil
}

// classify maps a changed path back to a store event.
func (p *persistence) classify(path string) Event {
	rel, err := filepath.Rel(p.basePath, path)
	if err != nil || rel == "." {
		return Event{Type: EventStoreChanged}
	}
	parts := strings.Split(rel, string(os.PathSeparator))
	if parts[0] == bucketOverrides && len(parts) > 1 {
		return Event{Type: EventOverridesChanged, Day: parts[1]}
	}
	return Event{Type: EventStoreChanged}
}
