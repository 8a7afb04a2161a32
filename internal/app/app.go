package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/google/internal/catalog"
	"github.com/hyperifyio/google/internal/launch"
	"github.com/hyperifyio/google/internal/query"
	"github.com/hyperifyio/google/internal/search"
	"github.com/hyperifyio/google/internal/shortcut"
)

// ErrMissingQuery is returned when neither positional arguments nor piped
// input supplied a query. The CLI maps it to a usage exit code.
var ErrMissingQuery = errors.New("missing query: must provide as an argument or via stdin")

// App runs one command against a configuration. Stdin, Stdout and Opener
// default to the process streams and the configured browser; tests replace
// them after New.
type App struct {
	cfg     Config
	builder search.Builder

	Stdin  io.Reader
	Stdout io.Writer
	Opener launch.Opener

	// IsTerminal reports whether Stdin is interactive, in which case no
	// input is waited for.
	IsTerminal func(io.Reader) bool
}

func New(cfg Config) (*App, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	a := &App{
		cfg:     cfg,
		builder: search.Builder{BaseURL: cfg.BaseURL},
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,

		IsTerminal: isTerminal,
	}
	if c, ok := launch.ParseCommand(cfg.Browser); ok {
		c.Output = os.Stderr
		a.Opener = c
		log.Debug().Str("browser", c.Name).Msg("using browser command")
	} else {
		a.Opener = launch.NewBrowser(os.Stderr)
	}
	return a, nil
}

// Config returns the configuration the app was built with.
func (a *App) Config() Config { return a.cfg }

// Search resolves the query, builds the URL for cmd and performs the
// terminal action.
func (a *App) Search(ctx context.Context, cmd catalog.Search, args []string, opts search.Options) error {
	site, err := search.ValidateSite(opts.Site)
	if err != nil {
		log.Warn().Err(err).Msg("site filter does not look like a domain; using it as given")
	}
	opts.Site = site

	q, err := a.resolveQuery(ctx, args)
	if err != nil {
		return err
	}
	u, err := a.builder.URL(cmd, q, opts)
	if err != nil {
		return fmt.Errorf("build url: %w", err)
	}
	log.Debug().Str("command", cmd.Name).Str("url", u.String()).Bool("raw", opts.Raw).Msg("search url")
	return launch.Perform(ctx, a.Stdout, a.Opener, u.String(), opts.Raw)
}

// Shortcut opens (or prints) a Workspace app URL.
func (a *App) Shortcut(ctx context.Context, sc catalog.Shortcut, createNew, raw bool) error {
	u := shortcut.URL(sc, createNew)
	log.Debug().Str("command", sc.Name).Str("url", u.String()).Bool("raw", raw).Msg("shortcut url")
	return launch.Perform(ctx, a.Stdout, a.Opener, u.String(), raw)
}

func (a *App) resolveQuery(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 && a.IsTerminal != nil && a.IsTerminal(a.Stdin) {
		log.Debug().Msg("stdin is a terminal; not waiting for input")
		return "", fmt.Errorf("%w (%w)", ErrMissingQuery, query.ErrInputTimeout)
	}
	q, err := query.Resolve(ctx, args, a.Stdin, a.cfg.StdinWait)
	if errors.Is(err, query.ErrInputTimeout) {
		return "", fmt.Errorf("%w (%w)", ErrMissingQuery, err)
	}
	if err != nil {
		return "", err
	}
	src := "args"
	if len(args) == 0 {
		src = "stdin"
		// Piped blank lines carry no query.
		if strings.TrimSpace(q) == "" {
			q = ""
		}
	}
	if q == "" {
		return "", ErrMissingQuery
	}
	log.Debug().Str("source", src).Int("chars", len(q)).Msg("query resolved")
	return query.Normalize(q), nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
