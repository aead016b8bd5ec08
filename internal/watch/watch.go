// Package watch reports changes to the note database made by other
// processes, such as a sticky note running in its own terminal.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDelay = 200 * time.Millisecond

// Event signals that the database changed on disk.
type Event struct {
	Path string
	At   time.Time
}

// Watch watches the directory holding dbPath until ctx is done. Writes to
// the database or its WAL are coalesced into one Event per quiet period.
func Watch(ctx context.Context, dbPath string) (<-chan Event, error) {
	return watch(ctx, dbPath, defaultDelay)
}

func watch(ctx context.Context, dbPath string, delay time.Duration) (<-chan Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(dbPath)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(dbPath), err)
	}

	base := filepath.Base(dbPath)
	relevant := map[string]bool{
		base:              true,
		base + "-wal":     true,
		base + "-journal": true,
	}

	events := make(chan Event, 8)

	go func() {
		defer watcher.Close()

		var debounceTimer *time.Timer

		// Protect against sending to closed channel from timer callback
		var closed bool
		var mu sync.Mutex

		defer func() {
			mu.Lock()
			closed = true
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			mu.Unlock()
			close(events)
		}()

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !relevant[filepath.Base(event.Name)] {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}

				mu.Lock()
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(delay, func() {
					mu.Lock()
					defer mu.Unlock()
					if closed {
						return
					}
					select {
					case events <- Event{Path: dbPath, At: time.Now()}:
					default:
					}
				})
				mu.Unlock()

			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return events, nil
}
