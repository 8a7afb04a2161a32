package main

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hyperifyio/google/internal/app"
	"github.com/hyperifyio/google/internal/catalog"
	"github.com/hyperifyio/google/internal/launch"
	"github.com/hyperifyio/google/internal/search"
)

// streams are the process endpoints an invocation talks to. A nil opener
// lets the app pick one from its config.
type streams struct {
	in     io.Reader
	out    io.Writer
	opener launch.Opener
}

// flags holds parsed flag values shared by all commands.
type flags struct {
	raw        bool
	site       string
	createNew  bool
	verbose    bool
	wait       time.Duration
	configPath string
	envFiles   []string
}

const (
	rawUsage  = "Write URL to stdout instead of opening the default browser."
	siteUsage = "Search one site (e.g., wikipedia.org)."
)

func newRootCmd(s streams) *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:           "google [query...]",
		Short:         "Launch Google from the command line.",
		Long:          "Launch Google from the command line.\n\nThe query is taken from the arguments, or from stdin when none are given:\n  echo 'golang generics' | google -r",
		Version:       app.VersionString(),
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          runSearch(f, s, catalog.DefaultSearch),
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", errUsage, err)
	})

	pf := root.PersistentFlags()
	pf.BoolVarP(&f.raw, "raw", "r", false, rawUsage)
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "Verbose logging")
	pf.DurationVar(&f.wait, "wait", 0, "How long to wait for piped input (default 10ms)")
	pf.StringVar(&f.configPath, "config", "", "Path to a YAML or JSON config file")
	pf.StringArrayVar(&f.envFiles, "env-file", nil, "Load KEY=VALUE pairs from a dotenv file (repeatable)")
	root.Flags().StringVarP(&f.site, "site", "s", "", siteUsage)

	for _, c := range catalog.Searches() {
		sub := &cobra.Command{
			Use:   c.Name + " [query...]",
			Short: c.Summary(),
			Args:  cobra.ArbitraryArgs,
			RunE:  runSearch(f, s, c),
		}
		sub.Flags().StringVarP(&f.site, "site", "s", "", siteUsage)
		root.AddCommand(sub)
	}
	for _, sc := range catalog.Shortcuts() {
		sub := &cobra.Command{
			Use:   sc.Name,
			Short: sc.Summary(),
			Args:  usageArgs(cobra.NoArgs),
			RunE:  runShortcut(f, s, sc),
		}
		sub.Flags().BoolVarP(&f.createNew, "new", "n", false, "Create a new entity.")
		root.AddCommand(sub)
	}
	return root
}

func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", errUsage, err)
		}
		return nil
	}
}

func runSearch(f *flags, s streams, c catalog.Search) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := f.newApp(cmd, s)
		if err != nil {
			return err
		}
		return a.Search(cmd.Context(), c, args, search.Options{Site: f.site, Raw: a.Config().Raw})
	}
}

func runShortcut(f *flags, s streams, sc catalog.Shortcut) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		a, err := f.newApp(cmd, s)
		if err != nil {
			return err
		}
		return a.Shortcut(cmd.Context(), sc, f.createNew, a.Config().Raw)
	}
}

// newApp loads config and lets explicitly set flags take precedence over it.
func (f *flags) newApp(cmd *cobra.Command, s streams) (*app.App, error) {
	fs := cmd.Flags()
	// Level is set before loading so config loading itself can be traced,
	// then again once the file and env have had their say.
	if fs.Changed("verbose") {
		setLogLevel(f.verbose)
	} else {
		setLogLevel(app.VerboseFromEnv())
	}
	cfg, err := app.LoadConfig(f.configPath, f.envFiles)
	if err != nil {
		return nil, err
	}
	if fs.Changed("raw") {
		cfg.Raw = f.raw
	}
	if fs.Changed("verbose") {
		cfg.Verbose = f.verbose
	}
	if fs.Changed("wait") {
		cfg.StdinWait = f.wait
	}
	setLogLevel(cfg.Verbose)
	log.Debug().Str("command", cmd.Name()).Str("config", cfg.ConfigPath).Dur("wait", cfg.StdinWait).Msg("config resolved")

	a, err := app.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errUsage, err)
	}
	if s.in != nil {
		a.Stdin = s.in
	}
	if s.out != nil {
		a.Stdout = s.out
	}
	if s.opener != nil {
		a.Opener = s.opener
	}
	return a, nil
}

func setLogLevel(verbose bool) {
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
