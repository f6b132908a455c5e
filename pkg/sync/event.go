package sync

import (
	"fmt"
	"path/filepath"
)

// SentinelName is the name of the file that requests a remote restart when
// it's touched.
const SentinelName = "restart"

// Kind is the type of a raw file system notification.
type Kind int

const (
	// KindWrite is emitted when a file's contents change.
	KindWrite Kind = iota + 1

	// KindCreate is emitted when a path is created.
	KindCreate

	// KindChmod is emitted when a path's metadata or permissions change.
	KindChmod

	// KindNoticeWrite announces that a write is in progress.
	KindNoticeWrite

	// KindNoticeRemove announces that a path is being removed or renamed
	// away. Editors that save by renaming a temporary file over the original
	// produce this for the file being replaced.
	KindNoticeRemove
)

func (k Kind) String() string {
	switch k {
	case KindWrite:
		return "write"
	case KindCreate:
		return "create"
	case KindChmod:
		return "chmod"
	case KindNoticeWrite:
		return "notice-write"
	case KindNoticeRemove:
		return "notice-remove"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// RawEvent is a single notification from the file system watcher.
type RawEvent struct {
	Kind Kind
	Path string
}

// EventType is the result of classifying a RawEvent.
type EventType int

const (
	// Ignored events don't require any remote action.
	Ignored EventType = iota

	// Update events push the contents of a mirrored file.
	Update

	// RestartTrigger events restart the remote program.
	RestartTrigger
)

func (t EventType) String() string {
	switch t {
	case Ignored:
		return "ignored"
	case Update:
		return "update"
	case RestartTrigger:
		return "restart"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// Event is a classified change that the Dispatcher acts on.
type Event struct {
	Type EventType

	// File is the mirrored file name. It's only set for Update events.
	File string
}

// Classify decides what remote action, if any, a debounced notification
// requires. The sentinel always takes precedence over the whitelist.
func Classify(raw RawEvent, whitelist Whitelist) Event {
	name := filepath.Base(raw.Path)
	if name == SentinelName {
		if triggersRestart(raw.Kind) {
			return Event{Type: RestartTrigger}
		}
		return Event{Type: Ignored}
	}

	if affectsContents(raw.Kind) && whitelist.Contains(name) {
		return Event{Type: Update, File: name}
	}
	return Event{Type: Ignored}
}

// Removing the sentinel never restarts the program.
func triggersRestart(k Kind) bool {
	switch k {
	case KindWrite, KindCreate, KindChmod, KindNoticeWrite:
		return true
	}
	return false
}

func affectsContents(k Kind) bool {
	switch k {
	case KindWrite, KindCreate, KindNoticeRemove:
		return true
	}
	return false
}
