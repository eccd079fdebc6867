// Package config defines site configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a .env file, an optional YAML file and env vars on top.
// - Validation errors wrap ErrInvalidConfig.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`
	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`
	// DataSource is the directory or http(s) base URL the JSON documents live under.
	DataSource string `koanf:"data_source"`
	// EventsPath and LeaderboardPath are resolved against DataSource.
	EventsPath      string `koanf:"events_path"`
	LeaderboardPath string `koanf:"leaderboard_path"`
	// Location is the IANA zone event dates are interpreted in; "Local" uses the host zone.
	Location string `koanf:"location"`
	// FetchTimeoutMS bounds each data source read.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`
	// ReloadIntervalS re-fetches both documents periodically; 0 disables.
	ReloadIntervalS int `koanf:"reload_interval_s"`
	// PreviewLimit caps the home page events preview.
	PreviewLimit int `koanf:"preview_limit"`
}

// New creates a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		Addr:            ":8080",
		DataSource:      ".",
		EventsPath:      "data/events.json",
		LeaderboardPath: "data/leaderboard.json",
		Location:        "Local",
		FetchTimeoutMS:  10_000,
		ReloadIntervalS: 0,
		PreviewLimit:    3,
	}
}

// FetchTimeout returns FetchTimeoutMS as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMS) * time.Millisecond
}

// ReloadInterval returns ReloadIntervalS as a duration.
func (c *Config) ReloadInterval() time.Duration {
	return time.Duration(c.ReloadIntervalS) * time.Second
}

// LoadLocation resolves the configured time zone.
func (c *Config) LoadLocation() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: location %q: %v", ErrInvalidConfig, c.Location, err)
	}
	return loc, nil
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.DataSource) == "":
		return fmt.Errorf("%w: data_source must not be empty", ErrInvalidConfig)
	case c.EventsPath == "" || c.LeaderboardPath == "":
		return fmt.Errorf("%w: events_path and leaderboard_path must be set", ErrInvalidConfig)
	case c.FetchTimeoutMS < 0:
		return fmt.Errorf("%w: fetch_timeout_ms must not be negative", ErrInvalidConfig)
	case c.ReloadIntervalS < 0:
		return fmt.Errorf("%w: reload_interval_s must not be negative", ErrInvalidConfig)
	case c.PreviewLimit < 1:
		return fmt.Errorf("%w: preview_limit must be at least 1", ErrInvalidConfig)
	}
	if strings.Contains(c.DataSource, "://") {
		u, err := url.Parse(c.DataSource)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("%w: data_source must be a directory or an http(s) URL", ErrInvalidConfig)
		}
	}
	if _, err := c.LoadLocation(); err != nil {
		return err
	}
	return nil
}
