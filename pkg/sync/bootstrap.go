package sync

import (
	"html"

	log "github.com/sirupsen/logrus"

	"github.com/sidkik/editsync/pkg/errors"
)

// SentinelPolicy controls whether the restart sentinel exists in the mirror
// when watching starts.
type SentinelPolicy int

const (
	// SentinelAbsent leaves the sentinel out of the freshly reset mirror.
	// Creating it, or touching it afterwards, restarts the program.
	SentinelAbsent SentinelPolicy = iota

	// SentinelPrecreated creates an empty sentinel during bootstrap so that
	// it can be touched right away. The mirror must not be watched yet, so
	// creating it doesn't restart the program.
	SentinelPrecreated
)

// Bootstrapper replaces the contents of the mirror with the files of a remote
// project.
type Bootstrapper struct {
	Remote Remote
	Mirror Mirror
	Policy SentinelPolicy
}

// Bootstrap resets the mirror, downloads every file in `project`, and returns
// the whitelist of mirrored file names. Any error leaves the mirror in an
// unspecified state and should be treated as fatal.
func (b Bootstrapper) Bootstrap(project string) (Whitelist, error) {
	if err := b.Mirror.Reset(); err != nil {
		return Whitelist{}, errors.WithContext(err, "reset mirror")
	}

	if b.Policy == SentinelPrecreated {
		if err := b.Mirror.Touch(SentinelName); err != nil {
			return Whitelist{}, errors.WithContext(err, "create sentinel")
		}
	}

	basenames, err := b.Remote.ListFiles(project)
	if err != nil {
		return Whitelist{}, errors.WithContext(err, "list files")
	}

	var names []string
	for _, basename := range basenames {
		encoded, err := b.Remote.FetchFile(project, basename)
		if err != nil {
			return Whitelist{}, errors.WithContext(err, "fetch "+basename)
		}

		name := LocalName(basename)
		if err := b.Mirror.Write(name, html.UnescapeString(encoded)); err != nil {
			return Whitelist{}, errors.WithContext(err, "mirror "+basename)
		}
		log.WithField("file", name).Debug("Mirrored file")
		names = append(names, name)
	}

	log.WithField("project", project).Infof("Mirrored %d files.", len(names))
	return NewWhitelist(names...), nil
}
