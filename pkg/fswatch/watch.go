package fswatch

import (
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/sidkik/editsync/pkg/errors"
	"github.com/sidkik/editsync/pkg/sync"
)

var fs = afero.NewOsFs()

// Watcher reports changes to the files within a directory tree.
type Watcher struct {
	watcher *fsnotify.Watcher
	events  chan sync.RawEvent
}

// Watch starts watching `dir` and all of its subdirectories. Directories
// created after the watch starts are watched as well.
func Watch(dir string) (*Watcher, error) {
	pathsToWatch, err := getPathsToWatch(dir)
	if err != nil {
		return nil, errors.WithContext(err, "get paths")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WithContext(err, "create watcher")
	}

	for _, path := range pathsToWatch {
		if err := watcher.Add(path); err != nil {
			// Close the watcher so that we release the file handlers for the
			// previously added paths.
			if err := watcher.Close(); err != nil {
				log.WithError(err).Warn("Failed to close file watcher")
			}

			return nil, errors.WithContext(err, fmt.Sprintf("watch %q", path))
		}
	}

	w := &Watcher{watcher: watcher, events: make(chan sync.RawEvent, 64)}
	go w.run()
	return w, nil
}

// Events returns the notifications for the watched directory. The channel is
// closed once the watcher is closed.
func (w *Watcher) Events() <-chan sync.RawEvent {
	return w.events
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) run() {
	defer close(w.events)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if event.Op&fsnotify.Create != 0 {
				w.watchIfDir(event.Name)
			}

			if raw, ok := toRawEvent(event); ok {
				w.events <- raw
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.WithError(err).Warn("File watcher error")
		}
	}
}

func (w *Watcher) watchIfDir(path string) {
	fi, err := fs.Stat(path)
	if err != nil || !fi.IsDir() {
		return
	}

	subpaths, err := getPathsToWatch(path)
	if err != nil {
		log.WithError(err).WithField("path", path).Warn("Failed to list new directory")
		return
	}
	for _, subpath := range subpaths {
		if err := w.watcher.Add(subpath); err != nil {
			log.WithError(err).WithField("path", subpath).Warn("Failed to watch new directory")
		}
	}
}

// toRawEvent converts an fsnotify event. fsnotify may set several bits in a
// single event, in which case the most significant one for syncing is used.
func toRawEvent(event fsnotify.Event) (sync.RawEvent, bool) {
	var kind sync.Kind
	switch {
	case event.Op&fsnotify.Create != 0:
		kind = sync.KindCreate
	case event.Op&fsnotify.Write != 0:
		kind = sync.KindWrite
	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		kind = sync.KindNoticeRemove
	case event.Op&fsnotify.Chmod != 0:
		kind = sync.KindChmod
	default:
		return sync.RawEvent{}, false
	}
	return sync.RawEvent{Kind: kind, Path: event.Name}, true
}

// getPathsToWatch returns `dir` and all the directories beneath it. Because
// fsnotify doesn't watch directories recursively, each one has to be added
// separately.
func getPathsToWatch(dir string) (paths []string, err error) {
	fi, err := fs.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.FileNotFound{Path: dir}
		}
		return nil, errors.WithContext(err, "stat")
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("%q is not a directory", dir)
	}

	err = afero.Walk(fs, dir, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			return errors.WithContext(err, "walk error")
		}

		if fi.IsDir() {
			paths = append(paths, path)
		}
		return nil
	})
	return paths, err
}
