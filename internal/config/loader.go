package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd

const (
	userConfigDir    = ".config/fleetctl"
	projectConfigDir = ".fleetctl"
	configFileName   = "config.yaml"
	dotEnvFileName   = ".env"
)

// Environment variables that override file configuration.
const (
	EnvServerURL            = "FLEETCTL_SERVER"
	EnvPollInterval         = "FLEETCTL_POLL_INTERVAL"
	EnvRequestTimeout       = "FLEETCTL_REQUEST_TIMEOUT"
	EnvNotificationDuration = "FLEETCTL_NOTIFICATION_DURATION"
	EnvLogFile              = "FLEETCTL_LOG_FILE"
	EnvLogLevel             = "FLEETCTL_LOG_LEVEL"
	EnvTheme                = "FLEETCTL_THEME"
)

// LoadConfig loads the fleetctl configuration by layering default, user,
// project and environment settings, then validates the result.
func LoadConfig() (FleetctlConfig, error) {
	// 1. Start with the default configuration
	config := GetDefaultConfig()

	// 2. User-specific configuration
	userConfigPath, err := getUserConfigPath()
	if err != nil {
		// Log this error but don't fail; user config is optional
		fmt.Fprintf(os.Stderr, "Warning: Could not determine user config path: %v\n", err)
	} else if _, err := os.Stat(userConfigPath); !os.IsNotExist(err) {
		userConfig, err := loadConfigFromFile(userConfigPath)
		if err != nil {
			return FleetctlConfig{}, fmt.Errorf("error loading user config from %s: %w", userConfigPath, err)
		}
		config = mergeConfigs(config, userConfig)
	}

	// 3. Project-specific configuration
	projectConfigPath, err := getProjectConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not determine project config path: %v\n", err)
	} else if _, err := os.Stat(projectConfigPath); !os.IsNotExist(err) {
		projectConfig, err := loadConfigFromFile(projectConfigPath)
		if err != nil {
			return FleetctlConfig{}, fmt.Errorf("error loading project config from %s: %w", projectConfigPath, err)
		}
		config = mergeConfigs(config, projectConfig)
	}

	// 4. Environment, optionally seeded from a .env file in the working directory.
	if wd, err := osGetwd(); err == nil {
		envPath := filepath.Join(wd, dotEnvFileName)
		if _, statErr := os.Stat(envPath); statErr == nil {
			if err := godotenv.Load(envPath); err != nil {
				return FleetctlConfig{}, fmt.Errorf("error loading %s: %w", envPath, err)
			}
		}
	}
	config, err = applyEnv(config)
	if err != nil {
		return FleetctlConfig{}, err
	}

	if err := config.Validate(); err != nil {
		return FleetctlConfig{}, err
	}
	return config, nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

// loadConfigFromFile loads a FleetctlConfig from a YAML file.
func loadConfigFromFile(filePath string) (FleetctlConfig, error) {
	var config FleetctlConfig
	data, err := os.ReadFile(filePath)
	if err != nil {
		return FleetctlConfig{}, err
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return FleetctlConfig{}, err
	}
	return config, nil
}

// mergeConfigs merges 'overlay' config into 'base' config. Zero values in
// overlay leave base untouched.
func mergeConfigs(base, overlay FleetctlConfig) FleetctlConfig {
	merged := base

	if overlay.Server.URL != "" {
		merged.Server.URL = overlay.Server.URL
	}
	if overlay.Server.RequestTimeout != 0 {
		merged.Server.RequestTimeout = overlay.Server.RequestTimeout
	}

	if overlay.Dashboard.PollInterval != 0 {
		merged.Dashboard.PollInterval = overlay.Dashboard.PollInterval
	}
	if overlay.Dashboard.NotificationDuration != 0 {
		merged.Dashboard.NotificationDuration = overlay.Dashboard.NotificationDuration
	}
	if overlay.Dashboard.Theme != "" {
		merged.Dashboard.Theme = overlay.Dashboard.Theme
	}

	if overlay.Logging.Level != "" {
		merged.Logging.Level = overlay.Logging.Level
	}
	if overlay.Logging.File != "" {
		merged.Logging.File = overlay.Logging.File
	}

	return merged
}

func applyEnv(config FleetctlConfig) (FleetctlConfig, error) {
	if v := os.Getenv(EnvServerURL); v != "" {
		config.Server.URL = v
	}
	durations := []struct {
		env    string
		target *time.Duration
	}{
		{EnvPollInterval, &config.Dashboard.PollInterval},
		{EnvRequestTimeout, &config.Server.RequestTimeout},
		{EnvNotificationDuration, &config.Dashboard.NotificationDuration},
	}
	for _, d := range durations {
		v := os.Getenv(d.env)
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return FleetctlConfig{}, fmt.Errorf("invalid %s %q: %w", d.env, v, err)
		}
		*d.target = parsed
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		config.Logging.File = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		config.Logging.Level = v
	}
	if v := os.Getenv(EnvTheme); v != "" {
		config.Dashboard.Theme = Theme(v)
	}
	return config, nil
}

// Validate checks the merged configuration.
func (c FleetctlConfig) Validate() error {
	var errs []error

	u, err := url.Parse(c.Server.URL)
	switch {
	case c.Server.URL == "":
		errs = append(errs, errors.New("server.url must be set"))
	case err != nil:
		errs = append(errs, fmt.Errorf("server.url: %w", err))
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, fmt.Errorf("server.url: unsupported scheme %q", u.Scheme))
	case u.Host == "":
		errs = append(errs, errors.New("server.url: missing host"))
	}

	if c.Dashboard.PollInterval <= 0 {
		errs = append(errs, errors.New("dashboard.pollInterval must be positive"))
	}
	if c.Server.RequestTimeout <= 0 {
		errs = append(errs, errors.New("server.requestTimeout must be positive"))
	}
	if c.Dashboard.NotificationDuration <= 0 {
		errs = append(errs, errors.New("dashboard.notificationDuration must be positive"))
	}
	switch c.Dashboard.Theme {
	case ThemeAuto, ThemeDark, ThemeLight:
	default:
		errs = append(errs, fmt.Errorf("dashboard.theme: unknown theme %q", c.Dashboard.Theme))
	}

	return errors.Join(errs...)
}

// GetUserConfigDir returns the user configuration directory path
func GetUserConfigDir() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir), nil
}
