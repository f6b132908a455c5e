package sync

import (
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/sidkik/editsync/cmd/util"
	"github.com/sidkik/editsync/pkg/config"
	"github.com/sidkik/editsync/pkg/errors"
	"github.com/sidkik/editsync/pkg/fswatch"
	"github.com/sidkik/editsync/pkg/mirror"
	"github.com/sidkik/editsync/pkg/remote"
	"github.com/sidkik/editsync/pkg/sync"
)

// Mocked for unit testing.
var (
	parseUserConfig = util.ParseUserConfig
	selectProject   = util.SelectProject
	fs              = afero.NewOsFs()
)

type options struct {
	url               string
	mirrorDir         string
	debounce          time.Duration
	precreateSentinel bool
}

// New creates a new `sync` command.
func New() *cobra.Command {
	var flags options
	cmd := &cobra.Command{
		Use:   "sync [project]",
		Short: "Mirror a remote project and push local changes back to it",
		Long: `Download every file of a remote project into the mirror directory, then
watch the directory and push each saved file back to the remote editor.

The mirror directory is wiped first, so local changes that haven't been pushed
are lost. Touch the "restart" file in the mirror directory to restart the
remote program.

If no project is given, the remote projects are listed and you're asked to
pick one.`,
		Args: cobra.MaximumNArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			if err := run(flags, args); err != nil {
				util.HandleFatalError(err)
			}
		},
	}
	cmd.Flags().StringVar(&flags.url, "url", "",
		"The address of the remote editor. Required unless set in the user config.")
	cmd.Flags().StringVar(&flags.mirrorDir, "dir", "",
		"The directory to mirror the project into. Defaults to ./"+config.DefaultMirrorDir)
	cmd.Flags().DurationVar(&flags.debounce, "debounce", 0,
		"How long to collect changes to a file before pushing it. "+
			"Defaults to "+sync.DefaultDebounceWindow.String())
	cmd.Flags().BoolVar(&flags.precreateSentinel, "precreate-sentinel", false,
		"Create the restart file during setup so that it can be touched right away.")
	return cmd
}

func run(flags options, args []string) error {
	opts, err := resolveOptions(flags)
	if err != nil {
		return err
	}

	client, err := remote.New(opts.url)
	if err != nil {
		return errors.WithContext(err, "create remote client")
	}

	project, err := chooseProject(client, args)
	if err != nil {
		return err
	}

	watcher, engine, err := startSync(client, project, opts)
	if err != nil {
		return err
	}
	defer watcher.Close()

	engine.Run(watcher.Events())
	return nil
}

// startSync mirrors `project` and starts watching the mirror. The mirror is
// only watched once bootstrapping is done, so the files it writes never reach
// the engine.
func startSync(rem sync.Remote, project string, opts options) (*fswatch.Watcher, *sync.Engine, error) {
	policy := sync.SentinelAbsent
	if opts.precreateSentinel {
		policy = sync.SentinelPrecreated
	}

	store := mirror.New(fs, opts.mirrorDir)
	log.WithField("project", project).WithField("dir", opts.mirrorDir).Info("Mirroring project")
	whitelist, err := sync.Bootstrapper{
		Remote: rem,
		Mirror: store,
		Policy: policy,
	}.Bootstrap(project)
	if err != nil {
		return nil, nil, errors.WithContext(err, "bootstrap "+project)
	}

	watcher, err := fswatch.Watch(opts.mirrorDir)
	if err != nil {
		return nil, nil, errors.WithContext(err, "watch mirror")
	}

	log.Infof("Watching %s for changes. Touch %s to restart the program.",
		opts.mirrorDir, store.Path(sync.SentinelName))

	engine := &sync.Engine{
		Whitelist: whitelist,
		Dispatcher: sync.Dispatcher{
			Project: project,
			Remote:  rem,
			Mirror:  store,
		},
		Root:   opts.mirrorDir,
		Window: opts.debounce,
	}
	return watcher, engine, nil
}

// resolveOptions fills in the settings that weren't passed as flags from the
// user config, and then from the defaults.
func resolveOptions(flags options) (options, error) {
	cfg, err := parseUserConfig()
	if err != nil {
		return options{}, errors.WithContext(err, "parse user config")
	}

	opts := flags
	opts.url, err = util.RemoteURL(flags.url, cfg)
	if err != nil {
		return options{}, err
	}

	if opts.mirrorDir == "" {
		opts.mirrorDir = cfg.MirrorDir
	}
	if opts.mirrorDir == "" {
		opts.mirrorDir = config.DefaultMirrorDir
	}

	if opts.debounce == 0 {
		opts.debounce, err = cfg.GetDebounce()
		if err != nil {
			return options{}, err
		}
	}
	if opts.debounce == 0 {
		opts.debounce = sync.DefaultDebounceWindow
	}
	return opts, nil
}

type projectLister interface {
	ListProjects() ([]string, error)
}

func chooseProject(client projectLister, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	projects, err := client.ListProjects()
	if err != nil {
		return "", errors.WithContext(err, "list projects")
	}
	return selectProject(projects)
}
