package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/google/internal/app"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	root := newRootCmd(streams{in: os.Stdin, out: os.Stdout})
	err := root.ExecuteContext(ctx)
	stop()
	if err != nil {
		log.Error().Err(err).Msg("google failed")
		os.Exit(exitCode(err))
	}
}

// errUsage marks flag and argument errors reported by the command tree.
var errUsage = errors.New("usage")

// exitCode maps an error to the process exit status: 2 for anything the user
// can fix by changing the invocation, 1 for everything else, including a
// browser that failed to launch.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, app.ErrMissingQuery),
		errors.Is(err, errUsage):
		return 2
	default:
		return 1
	}
}
