package app

import (
	"time"

	"fleetctl/internal/config"
)

// Config holds the settings for one fleetctl run. The override fields come
// from command line flags; zero values keep what the config files and
// environment resolved to.
type Config struct {
	// Debug forces debug logging and shows debug entries in the activity log.
	Debug bool

	ServerURL      string
	PollInterval   time.Duration
	RequestTimeout time.Duration
	LogLevel       string
	LogFile        string
	Theme          string

	// FleetctlConfig is the merged configuration, set by NewApplication.
	FleetctlConfig *config.FleetctlConfig
}

// NewConfig creates a new application configuration
func NewConfig(debug bool) *Config {
	return &Config{Debug: debug}
}

// apply layers the command line overrides on top of fc.
func (c *Config) apply(fc config.FleetctlConfig) config.FleetctlConfig {
	if c.ServerURL != "" {
		fc.Server.URL = c.ServerURL
	}
	if c.RequestTimeout > 0 {
		fc.Server.RequestTimeout = c.RequestTimeout
	}
	if c.PollInterval > 0 {
		fc.Dashboard.PollInterval = c.PollInterval
	}
	if c.Theme != "" {
		fc.Dashboard.Theme = config.Theme(c.Theme)
	}
	if c.LogLevel != "" {
		fc.Logging.Level = c.LogLevel
	}
	if c.LogFile != "" {
		fc.Logging.File = c.LogFile
	}
	if c.Debug {
		fc.Logging.Level = "debug"
	}
	return fc
}
