package app

import (
	"os"
	"strings"
	"time"
)

// ApplyEnvOverrides overrides cfg fields with environment variables when they
// are set. Env takes precedence over the config file; flags are applied
// afterwards by the caller and win over both.
func ApplyEnvOverrides(cfg *Config) {
	if cfg == nil {
		return
	}

	if v := strings.TrimSpace(os.Getenv("GOOGLE_BASE_URL")); v != "" {
		cfg.BaseURL = v
	}
	if s := os.Getenv("GOOGLE_STDIN_WAIT"); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			cfg.StdinWait = d
		}
	}
	if v := strings.TrimSpace(os.Getenv("BROWSER")); v != "" {
		cfg.Browser = v
	}

	setBool := func(dst *bool, envKey string) {
		if v, ok := envBool(envKey); ok {
			*dst = v
		}
	}
	setBool(&cfg.Raw, "GOOGLE_RAW")
	setBool(&cfg.Verbose, "VERBOSE")
}

// VerboseFromEnv reports whether VERBOSE asks for debug logging.
func VerboseFromEnv() bool {
	v, _ := envBool("VERBOSE")
	return v
}

// envBool parses a truthy/falsey env var; ok is false when it is unset or
// not recognised.
func envBool(key string) (v, ok bool) {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	}
	return false, false
}
