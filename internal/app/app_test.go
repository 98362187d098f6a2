package app

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetctl/internal/config"
)

func stubLoadConfig(t *testing.T, fc config.FleetctlConfig, err error) {
	t.Helper()
	original := loadConfig
	t.Cleanup(func() { loadConfig = original })
	loadConfig = func() (config.FleetctlConfig, error) { return fc, err }
}

func TestConfigApply(t *testing.T) {
	tests := []struct {
		name  string
		cfg   *Config
		check func(*testing.T, config.FleetctlConfig)
	}{
		{
			name: "no overrides keeps loaded values",
			cfg:  NewConfig(false),
			check: func(t *testing.T, fc config.FleetctlConfig) {
				assert.Equal(t, config.GetDefaultConfig(), fc)
			},
		},
		{
			name: "flags override",
			cfg: &Config{
				ServerURL:      "http://fleet.lan:5000",
				PollInterval:   2 * time.Second,
				RequestTimeout: 3 * time.Second,
				Theme:          "light",
				LogFile:        "/tmp/fleetctl.log",
				LogLevel:       "warn",
			},
			check: func(t *testing.T, fc config.FleetctlConfig) {
				assert.Equal(t, "http://fleet.lan:5000", fc.Server.URL)
				assert.Equal(t, 2*time.Second, fc.Dashboard.PollInterval)
				assert.Equal(t, 3*time.Second, fc.Server.RequestTimeout)
				assert.Equal(t, config.ThemeLight, fc.Dashboard.Theme)
				assert.Equal(t, "/tmp/fleetctl.log", fc.Logging.File)
				assert.Equal(t, "warn", fc.Logging.Level)
			},
		},
		{
			name: "debug wins over log level",
			cfg:  &Config{Debug: true, LogLevel: "error"},
			check: func(t *testing.T, fc config.FleetctlConfig) {
				assert.Equal(t, "debug", fc.Logging.Level)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, tt.cfg.apply(config.GetDefaultConfig()))
		})
	}
}

func TestNewApplication(t *testing.T) {
	stubLoadConfig(t, config.GetDefaultConfig(), nil)

	cfg := NewConfig(false)
	cfg.ServerURL = "http://fleet.lan:5000"
	application, err := NewApplication(cfg)
	require.NoError(t, err)

	assert.Equal(t, "http://fleet.lan:5000", application.Config().Server.URL)
	require.NotNil(t, application.Services())
	assert.NotNil(t, application.Services().Client)
	assert.NotNil(t, application.Services().Engine)
	assert.True(t, application.Services().Engine.View().Loading, "engine is built but not started")
}

func TestNewApplication_InvalidOverride(t *testing.T) {
	stubLoadConfig(t, config.GetDefaultConfig(), nil)

	cfg := NewConfig(false)
	cfg.ServerURL = "ftp://fleet.lan"
	_, err := NewApplication(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported scheme")

	cfg = NewConfig(false)
	cfg.LogLevel = "loud"
	_, err = NewApplication(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestNewApplication_LoadError(t *testing.T) {
	stubLoadConfig(t, config.FleetctlConfig{}, errors.New("bad yaml"))

	_, err := NewApplication(NewConfig(false))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad yaml")
}
