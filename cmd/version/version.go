package version

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sidkik/editsync/cmd/util"
	"github.com/sidkik/editsync/pkg/errors"
	"github.com/sidkik/editsync/pkg/remote"
	"github.com/sidkik/editsync/pkg/version"
)

// Mocked for unit testing.
var (
	stdout          io.Writer = os.Stdout
	parseUserConfig           = util.ParseUserConfig
)

// New creates a new `version` command.
func New() *cobra.Command {
	var url string
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version of editsync.",
		Long: "Print the local version of editsync, as a git commit hash,\n" +
			"and whether the remote editor is reachable.",
		Run: func(_ *cobra.Command, _ []string) {
			if err := run(url); err != nil {
				util.HandleFatalError(err)
			}
		},
	}
	cmd.Flags().StringVar(&url, "url", "",
		"The address of the remote editor. Defaults to the one in the user config.")
	return cmd
}

func run(urlFlag string) error {
	fmt.Fprintf(stdout, "local version:  %s\n", version.Version)

	cfg, err := parseUserConfig()
	if err != nil {
		return errors.WithContext(err, "parse user config")
	}

	url, err := util.RemoteURL(urlFlag, cfg)
	if err != nil {
		log.WithError(err).Debug("No remote editor configured")
		return nil
	}

	client, err := remote.New(url)
	if err != nil {
		return errors.WithContext(err, "create remote client")
	}

	projects, err := client.ListProjects()
	if err != nil {
		fmt.Fprintf(stdout, "remote editor:  %s (unreachable: %s)\n", url, err)
		return nil
	}

	fmt.Fprintf(stdout, "remote editor:  %s (%d projects)\n", url, len(projects))
	return nil
}
