package cmd

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	configCmd "github.com/sidkik/editsync/cmd/config"
	"github.com/sidkik/editsync/cmd/projects"
	syncCmd "github.com/sidkik/editsync/cmd/sync"
	"github.com/sidkik/editsync/cmd/util"
	"github.com/sidkik/editsync/cmd/version"
)

// verboseLogKey is the environment variable used to enable verbose logging.
// When it's set to `true`, Debug events are logged, rather than just Info and
// above.
const verboseLogKey = "EDITSYNC_LOG_VERBOSE"

// Execute runs the main CLI process.
func Execute() {
	if os.Getenv(verboseLogKey) == "true" {
		log.SetLevel(log.DebugLevel)
	}
	log.SetFormatter(&log.TextFormatter{
		// Show the full timestamp so that pushes can be matched up with the
		// remote program's output.
		FullTimestamp: true,
	})

	rootCmd := &cobra.Command{
		Use:          "editsync",
		Short:        "Mirror a remote editor project locally and push back every save",
		SilenceUsage: true,

		// The call to rootCmd.Execute prints the error, so we silence errors
		// here to avoid double printing.
		SilenceErrors: true,
	}
	rootCmd.AddCommand(
		configCmd.New(),
		projects.New(),
		syncCmd.New(),
		version.New(),
	)

	if err := rootCmd.Execute(); err != nil {
		util.HandleFatalError(err)
	}
}
