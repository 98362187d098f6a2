package controller

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"fleetctl/internal/tui/model"
	"fleetctl/pkg/logging"
)

// NewProgram creates the Bubble Tea program for the fleet dashboard. The
// engine in cfg must already be started by the caller, who also stops it
// after the program exits.
func NewProgram(ctx context.Context, cfg model.TUIConfig, logChannel <-chan logging.LogEntry) *tea.Program {
	m := model.InitializeModel(ctx, cfg, logChannel)
	app := NewAppModel(m)
	return tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
}
