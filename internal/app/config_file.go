package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the config file schema. Durations are strings in
// time.ParseDuration syntax so YAML and JSON read the same way.
type FileConfig struct {
	Base string `yaml:"base" json:"base"`

	Stdin struct {
		Wait string `yaml:"wait" json:"wait"`
	} `yaml:"stdin" json:"stdin"`

	Raw     bool   `yaml:"raw" json:"raw"`
	Browser string `yaml:"browser" json:"browser"`
	Verbose bool   `yaml:"verbose" json:"verbose"`
}

// DefaultConfigPath returns <user config dir>/google/config.yaml, or "" when
// the user config dir is unknown.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return ""
	}
	return filepath.Join(dir, "google", "config.yaml")
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays the values set in fc onto cfg.
func ApplyFileConfig(cfg *Config, fc FileConfig) error {
	if cfg == nil {
		return nil
	}
	if s := strings.TrimSpace(fc.Base); s != "" {
		cfg.BaseURL = s
	}
	if s := strings.TrimSpace(fc.Stdin.Wait); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("config: stdin.wait: %w", err)
		}
		cfg.StdinWait = d
	}
	if fc.Raw {
		cfg.Raw = true
	}
	if s := strings.TrimSpace(fc.Browser); s != "" {
		cfg.Browser = s
	}
	if fc.Verbose {
		cfg.Verbose = true
	}
	return nil
}

// LoadConfig builds the configuration from defaults, the config file and the
// environment, in increasing order of precedence. Dotenv files are loaded
// into the environment first. A missing default config file is not an
// error; a missing explicit one is.
func LoadConfig(configPath string, envFiles []string) (Config, error) {
	cfg := DefaultConfig()
	if err := LoadEnvFiles(envFiles...); err != nil {
		return cfg, fmt.Errorf("load env files: %w", err)
	}
	cfg.EnvFiles = append([]string(nil), envFiles...)

	path := strings.TrimSpace(configPath)
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}
	if path != "" {
		fc, err := LoadConfigFile(path)
		switch {
		case err == nil:
			if err := ApplyFileConfig(&cfg, fc); err != nil {
				return cfg, err
			}
			cfg.ConfigPath = path
			log.Debug().Str("path", path).Msg("config file loaded")
		case !explicit && errors.Is(err, os.ErrNotExist):
		default:
			return cfg, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	ApplyEnvOverrides(&cfg)
	return cfg, nil
}

// ValidateConfig checks the settings New depends on.
func ValidateConfig(cfg Config) error {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return fmt.Errorf("config: base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config: base url must be an absolute http(s) url, got %q", cfg.BaseURL)
	}
	if cfg.StdinWait <= 0 {
		return errors.New("config: stdin wait must be positive")
	}
	return nil
}
