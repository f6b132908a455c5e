package config

import (
	"time"

	"github.com/ghodss/yaml"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"

	"github.com/sidkik/editsync/pkg/errors"
)

const (
	// UserConfigPath is the default path to the editsync user config.
	UserConfigPath = "~/.editsync.yaml"

	// InitialUserConfigVersion is the first version of the user config.
	// Config files that do not specify a version will default to this
	// version.
	InitialUserConfigVersion = "v1alpha1"

	// SupportedUserConfigVersion is the supported version of the user
	// config of the current editsync binary.
	SupportedUserConfigVersion = "v1alpha1"

	// DefaultMirrorDir is where projects are mirrored if the user doesn't
	// choose a directory.
	DefaultMirrorDir = "project"
)

// User contains the user's defaults for connecting to the remote editor.
type User struct {
	Version   string `json:"version,omitempty"`
	URL       string `json:"url,omitempty"`
	MirrorDir string `json:"mirrorDir,omitempty"`

	// Debounce is a duration string, such as "250ms".
	Debounce string `json:"debounce,omitempty"`
}

func (u User) getVersion() string {
	return u.Version
}

// GetDebounce returns the parsed debounce window, or zero if it isn't set.
func (u User) GetDebounce() (time.Duration, error) {
	if u.Debounce == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(u.Debounce)
	if err != nil {
		return 0, errors.NewFriendlyError("The debounce window %q in %s "+
			"isn't a valid duration. Try a value like \"250ms\".", u.Debounce, UserConfigPath)
	}
	return d, nil
}

// homedirExpand will be overridden in mock tests
var homedirExpand = homedir.Expand

// ParseUser attempts to parse the User stored in the default path. If the
// config doesn't exist, an errors.FileNotFound is returned.
func ParseUser() (User, error) {
	path, err := GetUserConfigPath()
	if err != nil {
		return User{}, errors.WithContext(err, "expand config path")
	}

	config := User{Version: InitialUserConfigVersion}
	if err := readVersioned(path, &config, SupportedUserConfigVersion); err != nil {
		if _, ok := err.(errors.FileNotFound); ok {
			return User{}, err
		}
		return User{}, errors.WithContext(err, "parse")
	}

	config.MirrorDir, err = homedir.Expand(config.MirrorDir)
	if err != nil {
		return User{}, errors.WithContext(err, "expand mirror path")
	}
	return config, nil
}

// WriteUser writes the given user config to disk.
func WriteUser(cfg User) error {
	cfg.Version = SupportedUserConfigVersion
	path, err := GetUserConfigPath()
	if err != nil {
		return errors.WithContext(err, "expand config path")
	}

	yamlBytes, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.WithContext(err, "marshal")
	}

	if err := afero.WriteFile(fs, path, yamlBytes, 0644); err != nil {
		return errors.WithContext(err, "write")
	}
	return nil
}

// GetUserConfigPath returns the path to the user's editsync configuration.
// The path is expanded, so it can be directly passed to file operations.
func GetUserConfigPath() (string, error) {
	return homedirExpand(UserConfigPath)
}
