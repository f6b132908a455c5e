package sync

import (
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"
)

type dispatcher interface {
	Dispatch(Event) error
}

// Engine turns raw file system notifications into remote updates.
type Engine struct {
	Whitelist  Whitelist
	Dispatcher dispatcher

	// Root is the mirror directory. Notifications for files in its
	// subdirectories are ignored, since the remote only has top-level files.
	// An empty Root disables the check.
	Root string

	// Window defaults to DefaultDebounceWindow, and Clock to the real clock.
	Window time.Duration
	Clock  clockwork.Clock
}

// Run debounces and classifies the notifications from `raw`, and dispatches
// each resulting event before looking at the next one. Dispatch failures are
// logged and the event is dropped. Run returns once `raw` is closed and all
// pending events have been handled.
func (e *Engine) Run(raw <-chan RawEvent) {
	window := e.Window
	if window == 0 {
		window = DefaultDebounceWindow
	}
	clock := e.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	for notification := range Debounce(clock, window, raw) {
		event := e.classify(notification)
		logger := log.WithField("path", notification.Path).WithField("kind", notification.Kind)
		if event.Type == Ignored {
			logger.Debug("Ignoring change")
			continue
		}

		if err := e.Dispatcher.Dispatch(event); err != nil {
			logger.WithError(err).Error("Failed to sync change")
		}
	}
}

func (e *Engine) classify(raw RawEvent) Event {
	if e.Root != "" && filepath.Dir(filepath.Clean(raw.Path)) != filepath.Clean(e.Root) {
		return Event{Type: Ignored}
	}
	return Classify(raw, e.Whitelist)
}
