package sync

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/sidkik/editsync/pkg/errors"
)

// Dispatcher performs the remote action for classified events.
type Dispatcher struct {
	Project string
	Remote  Remote
	Mirror  Mirror
}

// Dispatch pushes the current contents of updated files, and restarts the
// remote program for restart triggers. The remote copy is always overwritten
// with the local contents.
func (d Dispatcher) Dispatch(event Event) error {
	switch event.Type {
	case Ignored:
		return nil
	case RestartTrigger:
		if err := d.Remote.Restart(d.Project); err != nil {
			return errors.WithContext(err, "restart")
		}
		log.WithField("project", d.Project).Info("Restarted")
		return nil
	case Update:
		contents, err := d.Mirror.Read(event.File)
		if err != nil {
			return errors.WithContext(err, "read")
		}

		if err := d.Remote.PushFile(d.Project, Basename(event.File), contents); err != nil {
			return errors.WithContext(err, "push "+event.File)
		}
		log.WithField("file", event.File).Info("Pushed file")
		return nil
	default:
		return fmt.Errorf("unknown event type: %s", event.Type)
	}
}
