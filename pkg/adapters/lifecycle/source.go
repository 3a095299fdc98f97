// Package lifecycle exposes store change events as a lifecycle.Source.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/bptrack/pkg/core"
)

// storeSource forwards store events, dropping events of unknown type and
// repeats of the previous event within the same second. A single save can
// raise several identical notifications; consumers reload once per event.
type storeSource struct {
	events <-chan core.Event
	out    chan lifecycle.Event
	last   *core.Event
}

// NewSource wraps the channel returned by Service.Watch.
// Every value received from Events is a core.Event.
func NewSource(events <-chan core.Event) lifecycle.Source {
	return &storeSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
}

func (s *storeSource) Events() <-chan lifecycle.Event {
	return s.out
}

// Start forwards events until ctx is done or the store channel closes,
// then closes Events.
func (s *storeSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			var e core.Event
			select {
			case <-ctx.Done():
				return nil
			case ev, ok := <-s.events:
				if !ok {
					return nil
				}
				e = ev
			}

			if !s.accept(e) {
				continue
			}
			select {
			case s.out <- e:
			case <-ctx.Done():
				return nil
			}
		}
	})
	return nil
}

func (s *storeSource) accept(e core.Event) bool {
	switch e.Type {
	case core.EventCreate, core.EventModify, core.EventDelete:
	default:
		return false
	}
	if s.last != nil && *s.last == e {
		return false
	}
	s.last = &e
	return true
}
