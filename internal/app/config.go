package app

import (
	"time"

	"github.com/hyperifyio/google/internal/query"
	"github.com/hyperifyio/google/internal/search"
)

// Config holds runtime configuration for one invocation.
type Config struct {
	// Search
	BaseURL string

	// Input
	StdinWait time.Duration

	// Output
	Raw     bool
	Browser string // command line of a browser to use instead of the system default

	// Behavior
	Verbose bool

	// Sources that produced this config, for logging.
	ConfigPath string
	EnvFiles   []string
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		BaseURL:   search.DefaultBaseURL,
		StdinWait: query.DefaultWait,
	}
}
