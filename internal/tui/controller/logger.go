package controller

import (
	"fleetctl/internal/tui/model"
	"fleetctl/pkg/logging"
)

const controllerSubsystem = "Controller"

// LogDebug logs only while the TUI runs in debug mode.
func LogDebug(m *model.Model, format string, a ...interface{}) {
	if m != nil && m.DebugMode {
		logging.Debug(controllerSubsystem, format, a...)
	}
}
