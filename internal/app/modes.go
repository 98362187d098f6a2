package app

import (
	"context"

	"fleetctl/internal/color"
	"fleetctl/internal/tools"
	"fleetctl/internal/tui/controller"
	"fleetctl/internal/tui/model"
	"fleetctl/pkg/logging"
)

// runTUIMode executes the interactive terminal UI mode
func runTUIMode(ctx context.Context, cfg *Config, services *Services, level logging.LogLevel) error {
	fc := cfg.FleetctlConfig
	logging.Info("CLI", "Starting TUI mode...")

	isDark := color.ResolveDarkMode(string(fc.Dashboard.Theme))
	color.Initialize(isDark)

	// Switch logging to the channel the activity log drains.
	logChan := logging.InitForTUI(level, fc.Logging.File)
	defer logging.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	services.Engine.Start(ctx)
	defer services.Engine.Stop()

	p := controller.NewProgram(ctx, model.TUIConfig{
		Engine:    services.Engine,
		ServerURL: fc.Server.URL,
		DebugMode: cfg.Debug,
		DarkMode:  isDark,
	}, logChan)

	if _, err := p.Run(); err != nil {
		logging.Error("TUI-Lifecycle", err, "Error running TUI program")
		return err
	}
	logging.Info("TUI-Lifecycle", "TUI exited.")
	return nil
}

// runMCPMode serves MCP tools on stdio. The engine is not polled; each tool
// call refreshes the snapshot it needs.
func runMCPMode(ctx context.Context, services *Services, version string) error {
	logging.Info("CLI", "Starting MCP server on stdio...")
	return tools.ServeStdio(ctx, services.Engine, version)
}
