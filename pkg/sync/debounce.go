package sync

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultDebounceWindow is how long notifications for a path are collected
// before a single event is emitted for it.
const DefaultDebounceWindow = 250 * time.Millisecond

type pendingEvent struct {
	RawEvent
	deadline time.Time
}

// Debounce collapses bursts of notifications for the same path into a single
// event. The window for a path opens at its first notification, and the event
// emitted when it closes carries the last kind observed, except that a Chmod
// doesn't replace an earlier kind that changes the file's contents. Events are
// emitted in the order their paths were first seen.
//
// When `in` is closed, any pending events are flushed immediately and the
// returned channel is closed.
func Debounce(clock clockwork.Clock, window time.Duration, in <-chan RawEvent) <-chan RawEvent {
	out := make(chan RawEvent)
	go func() {
		defer close(out)

		var queue []*pendingEvent
		byPath := map[string]*pendingEvent{}

		// The timer is only armed for the head of the queue, and is rearmed
		// after the head is emitted. This way there's at most one outstanding
		// timer.
		var timer <-chan time.Time
		var armedFor *pendingEvent

		for {
			if len(queue) != 0 && armedFor != queue[0] {
				wait := queue[0].deadline.Sub(clock.Now())
				if wait < 0 {
					wait = 0
				}
				timer = clock.After(wait)
				armedFor = queue[0]
			}

			select {
			case raw, ok := <-in:
				if !ok {
					for _, p := range queue {
						out <- p.RawEvent
					}
					return
				}

				if p, ok := byPath[raw.Path]; ok {
					if raw.Kind != KindChmod || !affectsContents(p.Kind) {
						p.Kind = raw.Kind
					}
					continue
				}

				p := &pendingEvent{RawEvent: raw, deadline: clock.Now().Add(window)}
				queue = append(queue, p)
				byPath[raw.Path] = p

			case <-timer:
				timer = nil
				armedFor = nil
				now := clock.Now()
				for len(queue) != 0 && !queue[0].deadline.After(now) {
					p := queue[0]
					queue = queue[1:]
					delete(byPath, p.Path)
					out <- p.RawEvent
				}
			}
		}
	}()
	return out
}
