package config

import (
	"time"
)

// FleetctlConfig is the top-level configuration structure for fleetctl.
type FleetctlConfig struct {
	Server    ServerConfig    `yaml:"server"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig describes how to reach the fleet API server.
type ServerConfig struct {
	URL            string        `yaml:"url,omitempty"`            // Base URL; "/api" is appended by the client
	RequestTimeout time.Duration `yaml:"requestTimeout,omitempty"` // Per request, applies to polls and commands
}

// DashboardConfig tunes the synchronization engine and its presentation.
type DashboardConfig struct {
	PollInterval         time.Duration `yaml:"pollInterval,omitempty"`
	NotificationDuration time.Duration `yaml:"notificationDuration,omitempty"`
	Theme                Theme         `yaml:"theme,omitempty"`
}

// LoggingConfig controls the log level and the optional log file used in TUI mode.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty"`
	File  string `yaml:"file,omitempty"`
}

// Theme is the persisted colour preference.
type Theme string

const (
	ThemeAuto  Theme = "auto"
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

const (
	DefaultServerURL            = "http://localhost:5000"
	DefaultPollInterval         = 5 * time.Second
	DefaultRequestTimeout       = 10 * time.Second
	DefaultNotificationDuration = 5 * time.Second
)

// GetDefaultConfig returns the built-in configuration.
func GetDefaultConfig() FleetctlConfig {
	return FleetctlConfig{
		Server: ServerConfig{
			URL:            DefaultServerURL,
			RequestTimeout: DefaultRequestTimeout,
		},
		Dashboard: DashboardConfig{
			PollInterval:         DefaultPollInterval,
			NotificationDuration: DefaultNotificationDuration,
			Theme:                ThemeAuto,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
