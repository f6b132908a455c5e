package projects

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sidkik/editsync/cmd/util"
	"github.com/sidkik/editsync/pkg/errors"
	"github.com/sidkik/editsync/pkg/remote"
)

// Mocked for unit testing.
var (
	stdout          io.Writer = os.Stdout
	parseUserConfig           = util.ParseUserConfig
)

// New creates a new `projects` command.
func New() *cobra.Command {
	var url string
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List the projects on the remote editor",
		Run: func(_ *cobra.Command, _ []string) {
			if err := run(url); err != nil {
				util.HandleFatalError(err)
			}
		},
	}
	cmd.Flags().StringVar(&url, "url", "",
		"The address of the remote editor. Required unless set in the user config.")
	return cmd
}

func run(urlFlag string) error {
	cfg, err := parseUserConfig()
	if err != nil {
		return errors.WithContext(err, "parse user config")
	}

	url, err := util.RemoteURL(urlFlag, cfg)
	if err != nil {
		return err
	}

	client, err := remote.New(url)
	if err != nil {
		return errors.WithContext(err, "create remote client")
	}

	projects, err := client.ListProjects()
	if err != nil {
		return errors.WithContext(err, "list projects")
	}

	for _, project := range projects {
		fmt.Fprintln(stdout, project)
	}
	return nil
}
