package app

import (
	"context"
	"fmt"
	"os"

	"fleetctl/internal/config"
	"fleetctl/pkg/logging"
)

var loadConfig = config.LoadConfig

// Application is the main application structure that bootstraps and runs fleetctl
type Application struct {
	config   *Config
	services *Services
	logLevel logging.LogLevel
}

// NewApplication loads and validates the configuration, sets up CLI logging
// and builds the services.
func NewApplication(cfg *Config) (*Application, error) {
	fleetCfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load fleetctl configuration: %w", err)
	}
	fleetCfg = cfg.apply(fleetCfg)
	if err := fleetCfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	cfg.FleetctlConfig = &fleetCfg

	level, err := logging.ParseLevel(fleetCfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	// Stdout belongs to command output and, for the MCP server, to the protocol.
	logging.InitForCLI(level, os.Stderr)
	logging.Debug("Bootstrap", "Using fleet server %s", fleetCfg.Server.URL)

	return &Application{
		config:   cfg,
		services: InitializeServices(fleetCfg),
		logLevel: level,
	}, nil
}

// Services returns the client and engine.
func (a *Application) Services() *Services {
	return a.services
}

// Config returns the merged configuration.
func (a *Application) Config() config.FleetctlConfig {
	return *a.config.FleetctlConfig
}

// RunDashboard runs the interactive terminal dashboard until the user quits.
func (a *Application) RunDashboard(ctx context.Context) error {
	return runTUIMode(ctx, a.config, a.services, a.logLevel)
}

// RunMCP serves the fleet tools over stdio until the client disconnects.
func (a *Application) RunMCP(ctx context.Context, version string) error {
	return runMCPMode(ctx, a.services, version)
}
