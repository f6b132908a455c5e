package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sidkik/editsync/cmd/util"
	"github.com/sidkik/editsync/pkg/config"
	"github.com/sidkik/editsync/pkg/errors"
	"github.com/sidkik/editsync/pkg/remote"
	"github.com/sidkik/editsync/pkg/sync"
)

// Mocked for unit testing.
var (
	stdout          io.Writer = os.Stdout
	stdin           io.Reader = os.Stdin
	parseUserConfig           = config.ParseUser
	writeUserConfig           = config.WriteUser
	getConfigPath             = config.GetUserConfigPath
)

// New creates a new `config` command.
func New() *cobra.Command {
	var cliOpts config.User
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Setup the editsync user configuration",
		Run: func(_ *cobra.Command, _ []string) {
			if err := SetupConfig(cliOpts); err != nil {
				err = errors.NewFriendlyError("Failed to setup configuration:\n%s", err)
				util.HandleFatalError(err)
			}
		},
	}
	cmd.Flags().StringVar(&cliOpts.URL, "url", "",
		"Set the address of the remote editor. "+
			"Optional: If not set, `editsync config` will interactively prompt.")
	cmd.Flags().StringVar(&cliOpts.MirrorDir, "dir", "",
		"Set the directory that projects are mirrored into. "+
			"Optional: If not set, `editsync config` will interactively prompt.")
	cmd.Flags().StringVar(&cliOpts.Debounce, "debounce", "",
		"Set how long to wait for a burst of changes to a file to settle. "+
			"Optional: If not set, `editsync config` will interactively prompt.")

	// Setup the commands for querying the contents of the user config.
	type getterSpec struct {
		use, short string
		fn         func(config.User) string
	}

	getters := []getterSpec{
		{
			use:   "get-url",
			short: "Get the currently configured remote editor address",
			fn:    func(cfg config.User) string { return cfg.URL },
		},
		{
			use:   "get-dir",
			short: "Get the currently configured mirror directory",
			fn:    func(cfg config.User) string { return cfg.MirrorDir },
		},
	}
	for _, getter := range getters {
		getter := getter
		cmd.AddCommand(&cobra.Command{
			Use:   getter.use,
			Short: getter.short,
			Run: func(_ *cobra.Command, _ []string) {
				cfg, err := parseUserConfig()
				if err != nil {
					err = errors.WithContext(err, "read config")
					util.HandleFatalError(err)
				}

				fmt.Fprintln(stdout, getter.fn(cfg))
			},
		})
	}

	return cmd
}

// SetupConfig prompts for any settings missing from `cliOpts`, and writes
// the result to the user config.
func SetupConfig(cliOpts config.User) error {
	if cliOpts.URL != "" {
		if msg, ok := urlValidationFn(cliOpts.URL); !ok {
			return errors.New(msg)
		}
	}
	if cliOpts.Debounce != "" {
		if msg, ok := debounceValidationFn(cliOpts.Debounce); !ok {
			return errors.New(msg)
		}
	}

	cfg, err := generateConfig(cliOpts)
	if err != nil {
		return errors.WithContext(err, "generate config")
	}

	if err := writeUserConfig(cfg); err != nil {
		return errors.WithContext(err, "write config")
	}

	path, err := getConfigPath()
	if err != nil {
		return errors.WithContext(err, "get user config path")
	}

	fmt.Fprintf(stdout, "Wrote config to %s\n", path)
	return nil
}

func urlValidationFn(url string) (string, bool) {
	if _, err := remote.New(url); err != nil {
		return fmt.Sprintf("%q isn't a valid address. "+
			"It should look like http://localhost:8080.", url), false
	}
	return "", true
}

func debounceValidationFn(debounce string) (string, bool) {
	d, err := time.ParseDuration(debounce)
	if err != nil || d <= 0 {
		return fmt.Sprintf("%q isn't a valid duration. "+
			"It should look like 250ms.", debounce), false
	}
	return "", true
}

type prompt struct {
	helpString, prompt, defaultAnswer, currAnswer string
	field                                         *string
	validationFn                                  func(string) (string, bool)
}

// generateConfig interacts with the user to decide what the user's desired
// configuration is.
func generateConfig(cliOpts config.User) (config.User, error) {
	currConfig, err := parseUserConfig()
	if err != nil {
		currConfig = config.User{}
		log.WithError(err).Debug("Failed to read current config")
	}

	cfg := cliOpts
	var prompts []prompt
	if cliOpts.URL == "" {
		prompts = append(prompts, prompt{
			helpString: "Enter the address of the remote editor.\n" +
				"This is the page that lists your projects.",
			prompt:       "Remote editor address",
			currAnswer:   currConfig.URL,
			field:        &cfg.URL,
			validationFn: urlValidationFn,
		})
	}

	if cliOpts.MirrorDir == "" {
		prompts = append(prompts, prompt{
			helpString: "Enter the directory to mirror projects into.\n" +
				"Its contents are replaced every time a project is opened.",
			prompt:        "Mirror directory",
			defaultAnswer: config.DefaultMirrorDir,
			currAnswer:    currConfig.MirrorDir,
			field:         &cfg.MirrorDir,
		})
	}

	if cliOpts.Debounce == "" {
		prompts = append(prompts, prompt{
			helpString: "Enter how long to wait for a burst of changes to a file to settle\n" +
				"before pushing it.",
			prompt:        "Debounce window",
			defaultAnswer: sync.DefaultDebounceWindow.String(),
			currAnswer:    currConfig.Debounce,
			field:         &cfg.Debounce,
			validationFn:  debounceValidationFn,
		})
	}

	stdinReader := bufio.NewReader(stdin)
	for _, prompt := range prompts {
		var resp string
		for {
			resp, err = promptUser(stdinReader, prompt.helpString, prompt.prompt,
				prompt.defaultAnswer, prompt.currAnswer)
			if err != nil {
				return config.User{}, errors.WithContext(err, "read response")
			}

			if prompt.validationFn == nil {
				break
			}

			validationErr, ok := prompt.validationFn(resp)
			if ok {
				break
			}

			fmt.Fprintln(stdout, validationErr)
		}

		*prompt.field = resp
	}

	return cfg, nil
}

func promptUser(stdinReader *bufio.Reader, helpString, prompt, defaultAnswer, currAnswer string) (string, error) {
	// Display a new line at the end to separate different fields to make it
	// look clearer.
	defer fmt.Fprintln(stdout)

	options := []string{}
	if defaultAnswer != "" {
		options = append(options, defaultAnswer)
	}
	if currAnswer != "" && currAnswer != defaultAnswer {
		options = append(options, currAnswer)
	}
	options = append(options, "(Enter manually)")

	fmt.Fprintln(stdout, helpString+"\n"+prompt+":")

	if nOptions := len(options); nOptions > 1 {
		fmt.Fprintln(stdout)
		for i, option := range options {
			if i == 0 {
				option = fmt.Sprintf("%s (recommended)", option)
			}
			fmt.Fprintf(stdout, "\t%d. %s\n", i+1, option)
		}
		fmt.Fprintln(stdout)

		for {
			fmt.Fprintf(stdout, "Please choose one [1-%d]: ", nOptions)
			choiceStr, err := stdinReader.ReadString('\n')
			if err != nil {
				return "", err
			}

			var choice int
			choiceStr = strings.TrimRight(choiceStr, "\n")

			// Default to the first choice if user doesn't enter anything.
			if choiceStr == "" {
				choice = 1
			} else {
				choice, err = strconv.Atoi(choiceStr)
				if err != nil || choice < 1 || choice > nOptions {
					continue
				}
			}

			if choice == nOptions {
				break
			}

			return options[choice-1], nil
		}
	}

	fmt.Fprint(stdout, "Please enter manually: ")
	resp, err := stdinReader.ReadString('\n')
	if err != nil {
		return "", err
	}

	return strings.TrimRight(resp, "\n"), nil
}
