// Package config reads and writes the editsync user config.
package config

import (
	"fmt"
	"os"

	"github.com/ghodss/yaml"
	"github.com/spf13/afero"

	"github.com/sidkik/editsync/pkg/errors"
)

// versioned is implemented by every config file format. Files record the
// version they were written for so that older binaries refuse newer formats.
type versioned interface {
	getVersion() string
}

type versionMismatchError struct {
	path, want, got string
}

func (err versionMismatchError) Error() string {
	return err.FriendlyMessage()
}

func (err versionMismatchError) FriendlyMessage() string {
	return fmt.Sprintf("%s was written for config version %q, "+
		"but this editsync binary reads version %q.\n"+
		"Run `editsync config` to write a new one.", err.path, err.got, err.want)
}

// badConfigError wraps a yaml error. The yaml library doesn't say which key
// was wrong in a structured way, so its message is shown as is.
type badConfigError struct {
	path string
	err  error
}

func (err badConfigError) Error() string {
	return err.FriendlyMessage()
}

func (err badConfigError) FriendlyMessage() string {
	return fmt.Sprintf("Failed to read %s.\n"+
		"The only keys it may contain are version, url, mirrorDir and debounce, "+
		"and debounce must be a duration like \"250ms\".\n\n"+
		"yaml: %s", err.path, err.err)
}

// readVersioned loads the yaml file at `path` into `dst`. The version is
// checked before unknown keys, so that a file from a newer release reports
// the version mismatch rather than the keys it added.
func readVersioned(path string, dst versioned, want string) error {
	raw, err := afero.ReadFile(fs, path)
	switch {
	case os.IsNotExist(err):
		return errors.FileNotFound{Path: path}
	case err != nil:
		return errors.WithContext(err, "read file")
	}

	if err := yaml.Unmarshal(raw, dst); err != nil {
		return badConfigError{path, err}
	}

	if got := dst.getVersion(); got != want {
		return versionMismatchError{path: path, want: want, got: got}
	}

	if err := yaml.UnmarshalStrict(raw, dst, yaml.DisallowUnknownFields); err != nil {
		return badConfigError{path, err}
	}
	return nil
}
