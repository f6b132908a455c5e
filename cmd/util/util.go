package util

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/manifoldco/promptui"
	log "github.com/sirupsen/logrus"

	"github.com/sidkik/editsync/pkg/config"
	"github.com/sidkik/editsync/pkg/errors"
)

// Mocked for unit testing.
var (
	stderr          io.Writer = os.Stderr
	exit                      = os.Exit
	parseUserConfig           = config.ParseUser
)

// HandleFatalError prints the error and exits. Friendly errors are printed as
// is, since they're written to be read by the user.
func HandleFatalError(err error) {
	if friendlyErr, ok := errors.RootCause(err).(errors.FriendlyError); ok {
		fmt.Fprintln(stderr, friendlyErr.FriendlyMessage())
	} else {
		log.WithError(err).Debug("Fatal error")
		fmt.Fprintf(stderr, "ERROR: %s\n", err)
	}
	exit(1)
}

// HandlePanic logs the stack trace of a panic before exiting. It must be
// deferred.
func HandlePanic() {
	if r := recover(); r != nil {
		log.WithField("stack", string(debug.Stack())).Errorf("Panic: %v", r)
		fmt.Fprintf(stderr, "editsync crashed unexpectedly: %v\n", r)
		exit(1)
	}
}

// ParseUserConfig returns the user's config. A missing config file isn't an
// error since every setting can also be passed as a flag.
func ParseUserConfig() (config.User, error) {
	cfg, err := parseUserConfig()
	if err != nil {
		if _, ok := err.(errors.FileNotFound); ok {
			log.WithError(err).Debug("No user config")
			return config.User{}, nil
		}
		return config.User{}, err
	}
	return cfg, nil
}

// RemoteURL returns the address of the remote editor. The flag takes
// precedence over the user config.
func RemoteURL(flagValue string, cfg config.User) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if cfg.URL != "" {
		return cfg.URL, nil
	}
	return "", errors.NewFriendlyError("The address of the remote editor is required.\n" +
		"Pass it with --url, or run `editsync config` to save it.")
}

// SelectProject interactively asks the user to pick one of `projects`.
// Typing filters the list to the projects starting with the input.
func SelectProject(projects []string) (string, error) {
	if len(projects) == 0 {
		return "", errors.NewFriendlyError("The remote editor doesn't have any projects.")
	}

	prompt := promptui.Select{
		Label:             "Open project",
		Items:             projects,
		Size:              10,
		Searcher:          ProjectSearcher(projects),
		StartInSearchMode: true,
	}
	_, project, err := prompt.Run()
	if err != nil {
		return "", errors.WithContext(err, "prompt")
	}
	return project, nil
}

// ProjectSearcher returns a promptui searcher that matches projects whose
// name starts with the input.
func ProjectSearcher(projects []string) func(string, int) bool {
	return func(input string, index int) bool {
		return strings.HasPrefix(projects[index], input)
	}
}
