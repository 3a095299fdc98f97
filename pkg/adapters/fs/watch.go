package fs

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/bptrack/pkg/core"
)

// Watch emits an event each time the store file is created, written or removed.
// Config.WatchPattern widens the match to sibling files (e.g. "bp_*.json").
//
// The parent directory is watched rather than the file itself: atomic saves
// replace the file by rename, which would silently detach a file watch.
// The channel is closed when ctx is done.
func (r *Repository) Watch(ctx context.Context) (<-chan core.Event, error) {
	dir := filepath.Dir(r.Path)
	pattern := r.config.WatchPattern
	if pattern == "" {
		pattern = filepath.Base(r.Path)
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid watch pattern %q", pattern)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	events := make(chan core.Event)
	r.setWatcherActive(true)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(events)
		defer r.setWatcherActive(false)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return nil

			case ev, ok := <-watcher.Events:
				if !ok {
					if ctx.Err() != nil {
						return nil
					}
					return fmt.Errorf("watcher events channel closed")
				}
				e, ok := r.translate(ev, pattern)
				if !ok {
					continue
				}
				select {
				case events <- e:
				case <-ctx.Done():
					return nil
				}

			case wErr, ok := <-watcher.Errors:
				if !ok {
					if ctx.Err() != nil {
						return nil
					}
					return fmt.Errorf("watcher errors channel closed")
				}
				r.handleWatchError(wErr)
			}
		}
	}, lifecycle.WithErrorHandler(r.handleWatchError))

	return events, nil
}

// translate maps a raw fsnotify event to a store event, dropping events for
// other files (including the temp files of atomic writes).
func (r *Repository) translate(ev fsnotify.Event, pattern string) (core.Event, bool) {
	name := filepath.Base(ev.Name)
	if match, _ := doublestar.Match(pattern, name); !match {
		return core.Event{}, false
	}

	var t core.EventType
	switch {
	case ev.Has(fsnotify.Create):
		t = core.EventCreate
	case ev.Has(fsnotify.Write):
		t = core.EventModify
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		t = core.EventDelete
	default:
		return core.Event{}, false
	}

	if r.config.Logger != nil {
		r.config.Logger.Debug("store changed", "event", t, "name", name)
	}
	return core.Event{Type: t, ID: name, Timestamp: time.Now().Unix()}, true
}

func (r *Repository) handleWatchError(err error) {
	if r.config.Logger != nil {
		r.config.Logger.Error("watch error", "error", err)
	}
	if r.config.ErrorHandler != nil {
		r.config.ErrorHandler(err)
	}
}
